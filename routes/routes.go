package routes

import (
	"net/http"

	"github.com/PhanMy23520965/LaLuneBakery/controllers"
	"github.com/PhanMy23520965/LaLuneBakery/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Profile  *controllers.ProfileController
	Cart     *controllers.CartController
	Product  *controllers.ProductController
	Account  *controllers.AccountController
	Sessions *middleware.SessionManager
	Health   http.HandlerFunc
}

func SetupRoutes(router *gin.Engine, ctrl Controllers, uploadDir string) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", gin.WrapF(ctrl.Health))
	router.Static("/uploads", uploadDir)

	router.Use(ctrl.Sessions.Sessions())

	router.GET("/", ctrl.Product.GetProducts)
	router.GET("/products", ctrl.Product.GetProducts)
	router.GET("/products/:id", ctrl.Product.GetProductByID)

	router.POST("/register", ctrl.Auth.Register)
	router.GET("/verify/:token", ctrl.Auth.VerifyEmail)
	router.GET("/login", ctrl.Auth.LoginPage)
	router.POST("/login", ctrl.Auth.Login)
	router.POST("/logout", ctrl.Auth.Logout)
	router.POST("/forgot-password", ctrl.Auth.ForgotPassword)
	router.GET("/reset/:token", ctrl.Auth.CheckResetToken)
	router.POST("/reset/:token", ctrl.Auth.ResetPassword)

	auth := router.Group("/")
	auth.Use(middleware.RequireAuth())
	{
		auth.GET("/me", ctrl.Profile.Me)
		auth.PATCH("/profile", ctrl.Profile.UpdateProfile)

		auth.GET("/cart", ctrl.Cart.GetCart)
		auth.POST("/add-to-cart", ctrl.Cart.AddToCart)
		auth.POST("/update-cart", ctrl.Cart.UpdateCart)
		auth.POST("/remove-from-cart", ctrl.Cart.RemoveFromCart)
		auth.GET("/checkout", ctrl.Cart.Checkout)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/products", ctrl.Product.CreateProduct)
		admin.PATCH("/products/:id", ctrl.Product.UpdateProduct)
		admin.DELETE("/products/:id", ctrl.Product.DeleteProduct)
		admin.POST("/seed", ctrl.Product.SeedProducts)

		admin.GET("/accounts", ctrl.Account.GetAllAccounts)
		admin.DELETE("/accounts/:id", ctrl.Account.DeleteAccount)
	}
}
