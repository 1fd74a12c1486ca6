package models

import "mime/multipart"

// LoginKey accepts either an email address or a phone number, so only
// presence and length are checked at the binding layer.
type RegisterRequest struct {
	FullName        string `json:"fullname" form:"fullname" binding:"required,min=2,max=150"`
	LoginKey        string `json:"email" form:"email" binding:"required,max=255"`
	Password        string `json:"password" form:"password" binding:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required,max=100"`
}

type LoginRequest struct {
	LoginKey string `json:"email" form:"email" binding:"required,max=255"`
	Password string `json:"password" form:"password" binding:"required,max=100"`
	Remember string `json:"remember" form:"remember"`
}

// RememberMe follows the HTML checkbox convention ("on") as well as JSON booleans.
func (r LoginRequest) RememberMe() bool {
	switch r.Remember {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

type ForgotPasswordRequest struct {
	LoginKey string `json:"email" form:"email" binding:"required,max=255"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" form:"password" binding:"required,min=6,max=100"`
	Confirm  string `json:"confirm" form:"confirm" binding:"required,max=100"`
}

type UpdateProfileRequest struct {
	FullName string  `json:"fullname" form:"fullname" binding:"omitempty,min=2,max=150"`
	Address  *string `json:"address" form:"address" binding:"omitempty,max=500"`
}

type AddToCartRequest struct {
	ProductName string `json:"productName" form:"productName" binding:"required,max=150"`
	Price       int64  `json:"price" form:"price" binding:"gte=0"`
	Image       string `json:"img" form:"img" binding:"max=500"`
}

type UpdateCartRequest struct {
	ProductName string `json:"productName" form:"productName" binding:"required,max=150"`
	Action      string `json:"action" form:"action" binding:"max=20"`
}

type RemoveFromCartRequest struct {
	ProductName string `json:"productName" form:"productName" binding:"required,max=150"`
}

type SearchProductsRequest struct {
	Search string `form:"search" binding:"max=100"`
}

type CreateProductRequest struct {
	Name        string                `form:"name" binding:"required,min=2,max=150"`
	Price       int64                 `form:"price" binding:"required,gt=0"`
	Image       string                `form:"image_url" binding:"max=500"`
	Origin      string                `form:"origin" binding:"max=150"`
	Weight      string                `form:"weight" binding:"max=50"`
	Ingredients string                `form:"ingredients"`
	Meaning     string                `form:"meaning"`
	Description string                `form:"description"`
	ImageFile   *multipart.FileHeader `form:"image" swaggerignore:"true"`
}

type UpdateProductRequest struct {
	Name        *string               `form:"name" binding:"omitempty,min=2,max=150"`
	Price       *int64                `form:"price" binding:"omitempty,gt=0"`
	Image       *string               `form:"image_url" binding:"omitempty,max=500"`
	Origin      *string               `form:"origin" binding:"omitempty,max=150"`
	Weight      *string               `form:"weight" binding:"omitempty,max=50"`
	Ingredients *string               `form:"ingredients"`
	Meaning     *string               `form:"meaning"`
	Description *string               `form:"description"`
	ImageFile   *multipart.FileHeader `form:"image" swaggerignore:"true"`
}
