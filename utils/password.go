package utils

import (
	"context"
	"fmt"
	"runtime"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/sync/semaphore"
)

// PasswordHasher runs argon2 hashing with bounded parallelism so a burst of
// logins cannot occupy every CPU at once.
type PasswordHasher struct {
	config   argon2.Config
	slots    *semaphore.Weighted
	capacity int64
}

func NewPasswordHasher() *PasswordHasher {
	capacity := int64(runtime.GOMAXPROCS(0))
	return &PasswordHasher{
		config:   argon2.DefaultConfig(),
		slots:    semaphore.NewWeighted(capacity),
		capacity: capacity,
	}
}

func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.slots.Release(1)

	encoded, err := h.config.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(encoded), nil
}

// Verify reports whether password matches encodedHash. A malformed hash is
// treated as a mismatch.
func (h *PasswordHasher) Verify(ctx context.Context, encodedHash, password string) (bool, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.slots.Release(1)

	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return false, nil
	}
	return ok, nil
}
