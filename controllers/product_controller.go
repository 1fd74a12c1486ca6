package controllers

import (
	"errors"
	"net/http"

	"github.com/PhanMy23520965/LaLuneBakery/middleware"
	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	productService ProductService
	sessions       *middleware.SessionManager
	logger         *zap.Logger
}

func NewProductController(productService ProductService, sessions *middleware.SessionManager, logger *zap.Logger) *ProductController {
	return &ProductController{productService: productService, sessions: sessions, logger: logger}
}

// GetProducts godoc
// @Summary List products
// @Description Catalog, optionally filtered by a case-insensitive name substring, plus the pending flash message
// @Tags Products
// @Produce json
// @Param search query string false "Name contains"
// @Success 200 {object} models.Response{data=[]models.Product}
// @Router /products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	var req models.SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	products, err := ctrl.productService.Search(c.Request.Context(), req.Search)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Products retrieved successfully",
		Data:    products,
		Flash:   ctrl.sessions.TakeFlash(c),
	})
}

// GetProductByID godoc
// @Summary Product detail
// @Description Unknown or malformed ids redirect to the catalog
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response{data=models.Product}
// @Success 302 {string} string "Redirect"
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.productService.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved successfully",
		Data:    product,
		Flash:   ctrl.sessions.TakeFlash(c),
	})
}

// CreateProduct godoc
// @Summary Create product
// @Tags Admin Products
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param price formData int true "Price (VND)"
// @Param origin formData string false "Origin"
// @Param weight formData string false "Weight"
// @Param ingredients formData string false "Ingredients"
// @Param meaning formData string false "Meaning"
// @Param description formData string false "Description"
// @Param image_url formData string false "Image URL"
// @Param image formData file false "Image file"
// @Success 201 {object} models.Response{data=models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct godoc
// @Summary Update product
// @Tags Admin Products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param name formData string false "Name"
// @Param price formData int false "Price (VND)"
// @Param image formData file false "Image file"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct godoc
// @Summary Delete product
// @Tags Admin Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	if err := ctrl.productService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// SeedProducts godoc
// @Summary Seed catalog
// @Description Replace the whole catalog with the three house cakes
// @Tags Admin Products
// @Produce json
// @Success 201 {object} models.Response{data=[]models.Product}
// @Router /admin/seed [post]
func (ctrl *ProductController) SeedProducts(c *gin.Context) {
	products, err := ctrl.productService.Seed(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Đã tạo dữ liệu bánh thành công!",
		Data:    products,
	})
}
