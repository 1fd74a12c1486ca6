package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Account is a shopper identity with its embedded cart. A non-nil
// ResetPasswordToken together with a future ResetPasswordExpires marks a
// pending password reset.
type Account struct {
	ID                   string     `json:"id"`
	FullName             string     `json:"full_name"`
	LoginKey             string     `json:"login_key"`
	Password             string     `json:"-"`
	Address              *string    `json:"address,omitempty"`
	Role                 string     `json:"role"`
	IsVerified           bool       `json:"is_verified"`
	VerificationToken    *string    `json:"-"`
	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	Cart                 Cart       `json:"cart"`
	Version              int        `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasPendingReset reports whether a reset token is set and still valid at now.
func (a *Account) HasPendingReset(now time.Time) bool {
	return a.ResetPasswordToken != nil && a.ResetPasswordExpires != nil && a.ResetPasswordExpires.After(now)
}
