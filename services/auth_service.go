package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PhanMy23520965/LaLuneBakery/libs"
	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/repositories"
	"github.com/PhanMy23520965/LaLuneBakery/utils"
	"go.uber.org/zap"
)

const (
	verificationTokenBytes = 32
	resetTokenBytes        = 20
	accountWriteAttempts   = 3
)

type AuthService struct {
	accounts AccountStore
	hasher   PasswordHasher
	mailer   libs.Mailer
	resetTTL time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewAuthService(accounts AccountStore, hasher PasswordHasher, mailer libs.Mailer, resetTTL time.Duration, logger *zap.Logger) *AuthService {
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		mailer:   mailer,
		resetTTL: resetTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// updateAccount loads a fresh account, applies fn and writes it back guarded
// by the account version, reloading on conflict. Load errors end the loop.
func (s *AuthService) updateAccount(ctx context.Context, load func(context.Context) (*models.Account, error), fn func(*models.Account)) (*models.Account, error) {
	for attempt := 1; attempt <= accountWriteAttempts; attempt++ {
		account, err := load(ctx)
		if err != nil {
			return nil, err
		}

		fn(account)

		err = s.accounts.Update(ctx, account)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return nil, err
		}
		s.logger.Debug("Account write conflict, retrying",
			zap.String("account_id", account.ID), zap.Int("attempt", attempt))
	}
	return nil, ErrConcurrentUpdate
}

// Register creates an unverified account and mails its verification link.
// A login key held by an account that never verified is taken over: name and
// password are replaced and a fresh token is issued.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest, baseURL string) (*models.Account, error) {
	loginKey := strings.TrimSpace(req.LoginKey)
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: password confirmation does not match", ErrValidation)
	}

	existing, err := s.accounts.FindByLoginKey(ctx, loginKey)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.IsVerified {
		return nil, ErrDuplicateAccount
	}

	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, err
	}
	token, err := utils.RandomToken(verificationTokenBytes)
	if err != nil {
		return nil, err
	}

	account := existing
	if account == nil {
		account = &models.Account{
			FullName:          req.FullName,
			LoginKey:          loginKey,
			Password:          hash,
			Role:              models.RoleCustomer,
			VerificationToken: &token,
			Cart:              models.Cart{},
		}
		err = s.accounts.Create(ctx, account)
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateAccount
		}
	} else {
		account.FullName = req.FullName
		account.Password = hash
		account.VerificationToken = &token
		err = s.accounts.Update(ctx, account)
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrConcurrentUpdate
		}
	}
	if err != nil {
		return nil, err
	}

	msg, err := libs.VerificationEmail(account.LoginKey, account.FullName, baseURL+"/verify/"+token)
	if err != nil {
		return account, err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return account, fmt.Errorf("%w: %v", ErrNotificationDelivery, err)
	}

	s.logger.Info("Account registered", zap.String("account_id", account.ID))
	return account, nil
}

// VerifyEmail consumes a verification token. Tokens are single use.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	return s.updateAccount(ctx, func(ctx context.Context) (*models.Account, error) {
		account, err := s.accounts.FindByVerificationToken(ctx, token)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return account, err
	}, func(account *models.Account) {
		account.IsVerified = true
		account.VerificationToken = nil
	})
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Account, error) {
	account, err := s.accounts.FindByLoginKey(ctx, strings.TrimSpace(req.LoginKey))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrAuthentication
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Verify(ctx, account.Password, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthentication
	}
	if !account.IsVerified {
		return nil, ErrUnverifiedAccount
	}
	return account, nil
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, loginKey, baseURL string) error {
	token, err := utils.RandomToken(resetTokenBytes)
	if err != nil {
		return err
	}

	account, err := s.updateAccount(ctx, func(ctx context.Context) (*models.Account, error) {
		account, err := s.accounts.FindByLoginKey(ctx, strings.TrimSpace(loginKey))
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoSuchAccount
		}
		return account, err
	}, func(account *models.Account) {
		expires := s.now().Add(s.resetTTL)
		account.ResetPasswordToken = &token
		account.ResetPasswordExpires = &expires
	})
	if err != nil {
		return err
	}

	msg, err := libs.PasswordResetEmail(account.LoginKey, account.FullName, baseURL+"/reset/"+token)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationDelivery, err)
	}
	return nil
}

// CheckResetToken returns the account owning a reset token that has not expired.
func (s *AuthService) CheckResetToken(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, ErrExpiredOrInvalidToken
	}
	account, err := s.accounts.FindByResetToken(ctx, token, s.now())
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrExpiredOrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !account.HasPendingReset(s.now()) {
		return nil, ErrExpiredOrInvalidToken
	}
	return account, nil
}

// ResetPassword redeems a reset token. The token is looked up again for the
// write, so a token redeemed concurrently is rejected.
func (s *AuthService) ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) error {
	if _, err := s.CheckResetToken(ctx, token); err != nil {
		return err
	}
	if req.Password != req.Confirm {
		return fmt.Errorf("%w: password confirmation does not match", ErrValidation)
	}

	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return err
	}

	account, err := s.updateAccount(ctx, func(ctx context.Context) (*models.Account, error) {
		return s.CheckResetToken(ctx, token)
	}, func(account *models.Account) {
		account.Password = hash
		account.ResetPasswordToken = nil
		account.ResetPasswordExpires = nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Password reset", zap.String("account_id", account.ID))
	return nil
}

func (s *AuthService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	return account, err
}

func (s *AuthService) UpdateProfile(ctx context.Context, accountID string, req models.UpdateProfileRequest) (*models.Account, error) {
	return s.updateAccount(ctx, func(ctx context.Context) (*models.Account, error) {
		return s.GetAccount(ctx, accountID)
	}, func(account *models.Account) {
		if name := strings.TrimSpace(req.FullName); name != "" {
			account.FullName = name
		}
		if req.Address != nil {
			if addr := strings.TrimSpace(*req.Address); addr != "" {
				account.Address = &addr
			} else {
				account.Address = nil
			}
		}
	})
}
