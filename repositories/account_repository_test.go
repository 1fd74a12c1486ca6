package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestAccount(key string) *models.Account {
	return &models.Account{
		FullName:          "Nguyễn Lan",
		LoginKey:          key,
		Password:          "hash",
		VerificationToken: strPtr("verify-" + key),
	}
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewAccountRepository(pool)
	ctx := context.Background()

	a := newTestAccount("0900000000")
	require.NoError(t, repo.Create(ctx, a))
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, models.RoleCustomer, a.Role)
	assert.Equal(t, 1, a.Version)

	byKey, err := repo.FindByLoginKey(ctx, "0900000000")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byKey.ID)
	assert.False(t, byKey.IsVerified)
	assert.NotNil(t, byKey.Cart)

	byToken, err := repo.FindByVerificationToken(ctx, "verify-0900000000")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byToken.ID)

	_, err = repo.FindByLoginKey(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_DuplicateLoginKey(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewAccountRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAccount("lan@example.com")))
	dup := newTestAccount("lan@example.com")
	dup.VerificationToken = strPtr("other")
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrDuplicateKey)
}

func TestAccountRepository_FindByResetTokenHonoursExpiry(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewAccountRepository(pool)
	ctx := context.Background()

	a := newTestAccount("reset@example.com")
	require.NoError(t, repo.Create(ctx, a))

	now := time.Now()
	expires := now.Add(time.Hour)
	a.ResetPasswordToken = strPtr("reset-token")
	a.ResetPasswordExpires = &expires
	require.NoError(t, repo.Update(ctx, a))

	got, err := repo.FindByResetToken(ctx, "reset-token", now)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.FindByResetToken(ctx, "reset-token", now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_UpdateCartUsesVersion(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewAccountRepository(pool)
	ctx := context.Background()

	a := newTestAccount("cart@example.com")
	require.NoError(t, repo.Create(ctx, a))

	cart := models.Cart{{ProductName: "Tiramisu Ý", Price: 55000, Image: "/images/tiramisu.png", Quantity: 2}}
	version, err := repo.UpdateCart(ctx, a.ID, cart, a.Version)
	require.NoError(t, err)
	assert.Equal(t, a.Version+1, version)

	_, err = repo.UpdateCart(ctx, a.ID, models.Cart{}, a.Version)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.Cart, 1)
	assert.Equal(t, 2, got.Cart[0].Quantity)
	assert.Equal(t, version, got.Version)
}

func TestAccountRepository_UpdateRejectsStaleSnapshot(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewAccountRepository(pool)
	ctx := context.Background()

	a := newTestAccount("stale@example.com")
	require.NoError(t, repo.Create(ctx, a))
	stale := *a

	a.Password = "new-hash"
	require.NoError(t, repo.Update(ctx, a))

	stale.FullName = "Tên mới"
	assert.ErrorIs(t, repo.Update(ctx, &stale), ErrVersionConflict)

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.Password)
	assert.Equal(t, "Nguyễn Lan", got.FullName)

	ghost := newTestAccount("ghost@example.com")
	ghost.ID = "00000000-0000-0000-0000-000000000000"
	assert.ErrorIs(t, repo.Update(ctx, ghost), ErrNotFound)
}

func TestAccountRepository_ListAndDelete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewAccountRepository(pool)
	ctx := context.Background()

	first := newTestAccount("a@example.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, newTestAccount("b@example.com")))

	accounts, total, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, accounts, 1)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "bogus"), ErrNotFound)
}
