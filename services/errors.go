package services

import "errors"

var (
	ErrValidation            = errors.New("validation failed")
	ErrDuplicateAccount      = errors.New("account already exists")
	ErrInvalidToken          = errors.New("invalid verification token")
	ErrExpiredOrInvalidToken = errors.New("reset token is invalid or has expired")
	ErrAuthentication        = errors.New("invalid login key or password")
	ErrUnverifiedAccount     = errors.New("account is not verified")
	ErrNoSuchAccount         = errors.New("no account with that login key")
	ErrNotFound              = errors.New("not found")
	ErrNotificationDelivery  = errors.New("failed to deliver notification")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrConcurrentUpdate      = errors.New("account was modified concurrently")
)
