package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/PhanMy23520965/LaLuneBakery/libs"
	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/repositories"
	"github.com/PhanMy23520965/LaLuneBakery/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type ProductService struct {
	products ProductStore
	cache    SearchCache
	images   libs.ImageStore
	group    singleflight.Group
	logger   *zap.Logger
}

// NewProductService wires the catalog. cache and images may be nil: searches
// then go straight to the store and uploads are rejected.
func NewProductService(products ProductStore, cache SearchCache, images libs.ImageStore, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		cache:    cache,
		images:   images,
		logger:   logger,
	}
}

// Search returns products whose name contains keyword, ignoring case.
func (s *ProductService) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	keyword = strings.TrimSpace(keyword)

	if s.cache != nil {
		products, err := s.cache.Get(ctx, keyword)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("Product cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(strings.ToLower(keyword), func() (interface{}, error) {
		products, err := s.products.Search(ctx, keyword)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, keyword, products); err != nil {
				s.logger.Warn("Product cache write failed", zap.Error(err))
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Product), nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	return product, err
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Image:       req.Image,
		Origin:      req.Origin,
		Weight:      req.Weight,
		Ingredients: req.Ingredients,
		Meaning:     req.Meaning,
		Description: req.Description,
	}

	if req.ImageFile != nil {
		url, err := s.upload(ctx, req.ImageFile)
		if err != nil {
			return nil, err
		}
		product.Image = url
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Origin != nil {
		product.Origin = *req.Origin
	}
	if req.Weight != nil {
		product.Weight = *req.Weight
	}
	if req.Ingredients != nil {
		product.Ingredients = *req.Ingredients
	}
	if req.Meaning != nil {
		product.Meaning = *req.Meaning
	}
	if req.Description != nil {
		product.Description = *req.Description
	}

	oldImage := ""
	if req.ImageFile != nil {
		url, err := s.upload(ctx, req.ImageFile)
		if err != nil {
			return nil, err
		}
		oldImage = product.Image
		product.Image = url
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if oldImage != "" {
		s.deleteImage(ctx, oldImage)
	}
	s.invalidate(ctx)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.deleteImage(ctx, product.Image)
	s.invalidate(ctx)
	return nil
}

// Seed replaces the whole catalog with the house cakes.
func (s *ProductService) Seed(ctx context.Context) ([]models.Product, error) {
	products := seedProducts()
	if err := s.products.ReplaceAll(ctx, products); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("Catalog seeded", zap.Int("count", len(products)))
	return products, nil
}

func (s *ProductService) upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("%w: image upload is not configured", ErrValidation)
	}
	url, err := s.images.Save(ctx, file)
	if errors.Is(err, utils.ErrFileTooLarge) || errors.Is(err, utils.ErrInvalidImageType) {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return url, err
}

func (s *ProductService) deleteImage(ctx context.Context, ref string) {
	if s.images == nil || ref == "" {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		s.logger.Warn("Failed to delete product image", zap.String("image", ref), zap.Error(err))
	}
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Product cache invalidation failed", zap.Error(err))
	}
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Tiramisu Ý",
			Price:       55000,
			Image:       "/images/tiramisu.png",
			Origin:      "Ý (Italy)",
			Weight:      "200g",
			Ingredients: "Phô mai Mascarpone, Rượu Rum, Cafe Espresso",
			Meaning:     "Trong tiếng Ý, Tiramisu nghĩa là 'Hãy mang em đi'.",
			Description: "Hương vị đăng đắng của cafe hòa quyện cùng sự béo ngậy của phô mai.",
		},
		{
			Name:        "Red Velvet",
			Price:       60000,
			Image:       "/images/redvelvet.png",
			Origin:      "Mỹ",
			Weight:      "250g",
			Ingredients: "Cacao, Cream Cheese, Màu đỏ thực vật",
			Meaning:     "Biểu tượng của tình yêu nồng cháy và sự quyến rũ.",
			Description: "Chiếc bánh nhung đỏ rực rỡ với lớp kem trắng mịn màng.",
		},
		{
			Name:        "Mousse Chanh Dây",
			Price:       45000,
			Image:       "/images/mousse.png",
			Origin:      "Pháp",
			Weight:      "180g",
			Ingredients: "Chanh dây tươi, Gelatin, Whipping Cream",
			Meaning:     "Sự tươi mát, khởi đầu mới đầy năng lượng.",
			Description: "Vị chua thanh mát lạnh tan ngay trong miệng.",
		},
	}
}
