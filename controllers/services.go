package controllers

import (
	"context"

	"github.com/PhanMy23520965/LaLuneBakery/models"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest, baseURL string) (*models.Account, error)
	VerifyEmail(ctx context.Context, token string) (*models.Account, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.Account, error)
	RequestPasswordReset(ctx context.Context, loginKey, baseURL string) error
	CheckResetToken(ctx context.Context, token string) (*models.Account, error)
	ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) error
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	UpdateProfile(ctx context.Context, accountID string, req models.UpdateProfileRequest) (*models.Account, error)
}

type CartService interface {
	View(ctx context.Context, accountID string) (models.Cart, error)
	Add(ctx context.Context, accountID string, req models.AddToCartRequest) (models.Cart, error)
	Adjust(ctx context.Context, accountID string, req models.UpdateCartRequest) (models.Cart, error)
	Remove(ctx context.Context, accountID, productName string) (models.Cart, error)
	Checkout(ctx context.Context, accountID string) (models.Cart, int64, error)
}

type ProductService interface {
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context) ([]models.Product, error)
}

type AccountService interface {
	GetAllAccounts(ctx context.Context, page, limit int) (*models.PaginationResponse, error)
	DeleteAccount(ctx context.Context, id string) error
}
