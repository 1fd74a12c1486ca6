package services

import (
	"context"
	"time"

	"github.com/PhanMy23520965/LaLuneBakery/models"
)

type AccountStore interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByLoginKey(ctx context.Context, loginKey string) (*models.Account, error)
	FindByVerificationToken(ctx context.Context, token string) (*models.Account, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*models.Account, error)
	Create(ctx context.Context, a *models.Account) error
	Update(ctx context.Context, a *models.Account) error
	UpdateCart(ctx context.Context, id string, cart models.Cart, version int) (int, error)
	List(ctx context.Context, page, limit int) ([]models.Account, int, error)
	Delete(ctx context.Context, id string) error
}

type ProductStore interface {
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, products []models.Product) error
}

type SearchCache interface {
	Get(ctx context.Context, keyword string) ([]models.Product, error)
	Set(ctx context.Context, keyword string, products []models.Product) error
	Invalidate(ctx context.Context) error
}

type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, encodedHash, password string) (bool, error)
}
