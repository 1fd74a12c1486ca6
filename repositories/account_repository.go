package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, full_name, login_key, password, address, role, is_verified,
	verification_token, reset_password_token, reset_password_expires, cart, version, created_at, updated_at`

const uniqueViolation = "23505"

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	var cart []byte
	err := row.Scan(&a.ID, &a.FullName, &a.LoginKey, &a.Password, &a.Address, &a.Role, &a.IsVerified,
		&a.VerificationToken, &a.ResetPasswordToken, &a.ResetPasswordExpires, &cart, &a.Version,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(cart) > 0 {
		if err := json.Unmarshal(cart, &a.Cart); err != nil {
			return nil, fmt.Errorf("failed to decode cart: %w", err)
		}
	}
	if a.Cart == nil {
		a.Cart = models.Cart{}
	}
	return &a, nil
}

func encodeCart(c models.Cart) ([]byte, error) {
	if c == nil {
		c = models.Cart{}
	}
	return json.Marshal(c)
}

func (r *AccountRepository) findOne(ctx context.Context, where string, args ...interface{}) (*models.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE `+where, args...)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, `id = $1`, id)
}

func (r *AccountRepository) FindByLoginKey(ctx context.Context, loginKey string) (*models.Account, error) {
	return r.findOne(ctx, `login_key = $1`, loginKey)
}

func (r *AccountRepository) FindByVerificationToken(ctx context.Context, token string) (*models.Account, error) {
	return r.findOne(ctx, `verification_token = $1`, token)
}

// FindByResetToken only matches tokens whose expiry is after now.
func (r *AccountRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*models.Account, error) {
	return r.findOne(ctx, `reset_password_token = $1 AND reset_password_expires > $2`, token, now)
}

func (r *AccountRepository) Create(ctx context.Context, a *models.Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Role == "" {
		a.Role = models.RoleCustomer
	}
	cart, err := encodeCart(a.Cart)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO accounts (id, full_name, login_key, password, address, role, is_verified,
			verification_token, reset_password_token, reset_password_expires, cart)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING version, created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query,
		a.ID, a.FullName, a.LoginKey, a.Password, a.Address, a.Role, a.IsVerified,
		a.VerificationToken, a.ResetPasswordToken, a.ResetPasswordExpires, cart,
	).Scan(&a.Version, &a.CreatedAt, &a.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Update writes identity and credential fields if the account is still at
// a.Version. The cart is left alone; use UpdateCart for cart changes.
func (r *AccountRepository) Update(ctx context.Context, a *models.Account) error {
	if _, err := uuid.Parse(a.ID); err != nil {
		return ErrNotFound
	}

	query := `
		UPDATE accounts
		SET full_name = $1, password = $2, address = $3, role = $4, is_verified = $5,
		    verification_token = $6, reset_password_token = $7, reset_password_expires = $8,
		    version = version + 1, updated_at = NOW()
		WHERE id = $9 AND version = $10
		RETURNING version, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		a.FullName, a.Password, a.Address, a.Role, a.IsVerified,
		a.VerificationToken, a.ResetPasswordToken, a.ResetPasswordExpires, a.ID, a.Version,
	).Scan(&a.Version, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.missingOrStale(ctx, a.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

func (r *AccountRepository) missingOrStale(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrVersionConflict
}

// UpdateCart stores the cart only if the account is still at version.
func (r *AccountRepository) UpdateCart(ctx context.Context, id string, cart models.Cart, version int) (int, error) {
	payload, err := encodeCart(cart)
	if err != nil {
		return 0, err
	}

	var newVersion int
	err = r.db.QueryRow(ctx, `
		UPDATE accounts
		SET cart = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
		RETURNING version
	`, payload, id, version).Scan(&newVersion)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, fmt.Errorf("failed to update cart: %w", err)
	}
	return newVersion, nil
}

func (r *AccountRepository) List(ctx context.Context, page, limit int) ([]models.Account, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, total, rows.Err()
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	result, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
