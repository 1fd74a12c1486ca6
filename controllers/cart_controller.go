package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/PhanMy23520965/LaLuneBakery/middleware"
	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	cartService CartService
	sessions    *middleware.SessionManager
	logger      *zap.Logger
}

func NewCartController(cartService CartService, sessions *middleware.SessionManager, logger *zap.Logger) *CartController {
	return &CartController{cartService: cartService, sessions: sessions, logger: logger}
}

// GetCart godoc
// @Summary View cart
// @Description Cart lines, item count and total, plus the pending flash message
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.cartService.View(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved successfully",
		Data:    models.NewCartView(cart),
		Flash:   ctrl.sessions.TakeFlash(c),
	})
}

// AddToCart godoc
// @Summary Add to cart
// @Description Add one unit of a product, then redirect back to the referring page
// @Tags Cart
// @Accept x-www-form-urlencoded,json
// @Param request body models.AddToCartRequest true "Cart item"
// @Success 303 {string} string "Redirect"
// @Failure 400 {object} models.ErrorResponse
// @Router /add-to-cart [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := ctrl.cartService.Add(c.Request.Context(), middleware.UserID(c), req); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	ctrl.sessions.SetFlash(c, models.FlashSuccess, "Đã thêm "+req.ProductName+" vào giỏ hàng!")
	c.Redirect(http.StatusSeeOther, backTo(c))
}

// UpdateCart godoc
// @Summary Change quantity
// @Description Increase or decrease a line by one; a line reaching zero is removed
// @Tags Cart
// @Accept x-www-form-urlencoded,json
// @Param request body models.UpdateCartRequest true "Quantity change"
// @Success 303 {string} string "Redirect"
// @Router /update-cart [post]
func (ctrl *CartController) UpdateCart(c *gin.Context) {
	var req models.UpdateCartRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := ctrl.cartService.Adjust(c.Request.Context(), middleware.UserID(c), req); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// RemoveFromCart godoc
// @Summary Remove from cart
// @Tags Cart
// @Accept x-www-form-urlencoded,json
// @Param request body models.RemoveFromCartRequest true "Product"
// @Success 303 {string} string "Redirect"
// @Router /remove-from-cart [post]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	var req models.RemoveFromCartRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := ctrl.cartService.Remove(c.Request.Context(), middleware.UserID(c), req.ProductName); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// Checkout godoc
// @Summary Checkout summary
// @Description Payment summary for the current cart. An empty cart redirects to /cart.
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response{data=models.CheckoutView}
// @Success 302 {string} string "Redirect"
// @Router /checkout [get]
func (ctrl *CartController) Checkout(c *gin.Context) {
	cart, total, err := ctrl.cartService.Checkout(c.Request.Context(), middleware.UserID(c))
	if errors.Is(err, services.ErrEmptyCart) {
		c.Redirect(http.StatusFound, "/cart")
		return
	}
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Checkout summary",
		Data: models.CheckoutView{
			Account: middleware.CurrentSession(c).User,
			Cart:    models.NewCartView(cart),
			Total:   total,
		},
	})
}

// backTo returns the Referer path when it points at this site, otherwise "/".
func backTo(c *gin.Context) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) {
		return "/"
	}
	if u.Path == "" || u.Path[0] != '/' {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
