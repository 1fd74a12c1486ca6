package services

import (
	"context"
	"errors"

	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/repositories"
	"go.uber.org/zap"
)

const cartWriteAttempts = 3

type CartService struct {
	accounts AccountStore
	logger   *zap.Logger
}

func NewCartService(accounts AccountStore, logger *zap.Logger) *CartService {
	return &CartService{accounts: accounts, logger: logger}
}

func (s *CartService) load(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	account.Cart = account.Cart.Normalize()
	return account, nil
}

func (s *CartService) View(ctx context.Context, accountID string) (models.Cart, error) {
	account, err := s.load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Cart, nil
}

// mutate applies fn to a fresh copy of the cart and writes it back guarded by
// the account version, rereading on conflict.
func (s *CartService) mutate(ctx context.Context, accountID string, fn func(*models.Cart)) (models.Cart, error) {
	for attempt := 1; attempt <= cartWriteAttempts; attempt++ {
		account, err := s.load(ctx, accountID)
		if err != nil {
			return nil, err
		}

		cart := account.Cart
		fn(&cart)

		_, err = s.accounts.UpdateCart(ctx, account.ID, cart, account.Version)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return nil, err
		}
		s.logger.Debug("Cart write conflict, retrying",
			zap.String("account_id", accountID), zap.Int("attempt", attempt))
	}
	return nil, ErrConcurrentUpdate
}

func (s *CartService) Add(ctx context.Context, accountID string, req models.AddToCartRequest) (models.Cart, error) {
	line := models.CartLine{ProductName: req.ProductName, Price: req.Price, Image: req.Image}
	return s.mutate(ctx, accountID, func(c *models.Cart) { c.AddItem(line) })
}

func (s *CartService) Adjust(ctx context.Context, accountID string, req models.UpdateCartRequest) (models.Cart, error) {
	return s.mutate(ctx, accountID, func(c *models.Cart) { c.AdjustQuantity(req.ProductName, req.Action) })
}

func (s *CartService) Remove(ctx context.Context, accountID, productName string) (models.Cart, error) {
	return s.mutate(ctx, accountID, func(c *models.Cart) { c.RemoveItem(productName) })
}

// Checkout returns the cart for the payment summary. An empty cart, or one
// totalling zero, yields ErrEmptyCart.
func (s *CartService) Checkout(ctx context.Context, accountID string) (models.Cart, int64, error) {
	cart, err := s.View(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	total := cart.Total()
	if total == 0 {
		return cart, 0, ErrEmptyCart
	}
	return cart, total, nil
}
