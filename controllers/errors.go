package controllers

import (
	"errors"
	"net/http"

	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{services.ErrValidation, http.StatusBadRequest, "Dữ liệu không hợp lệ"},
	{services.ErrDuplicateAccount, http.StatusConflict, "Email đã tồn tại!"},
	{services.ErrInvalidToken, http.StatusBadRequest, "Link xác thực không hợp lệ hoặc đã được sử dụng"},
	{services.ErrExpiredOrInvalidToken, http.StatusBadRequest, "Link đặt lại mật khẩu không hợp lệ hoặc đã hết hạn"},
	{services.ErrAuthentication, http.StatusUnauthorized, "Sai email hoặc mật khẩu!"},
	{services.ErrUnverifiedAccount, http.StatusForbidden, "Tài khoản chưa được xác thực. Vui lòng kiểm tra email!"},
	{services.ErrNoSuchAccount, http.StatusNotFound, "Email không tồn tại!"},
	{services.ErrNotFound, http.StatusNotFound, "Không tìm thấy"},
	{services.ErrNotificationDelivery, http.StatusBadGateway, "Không thể gửi email, vui lòng thử lại sau"},
	{services.ErrEmptyCart, http.StatusBadRequest, "Giỏ hàng đang trống"},
	{services.ErrConcurrentUpdate, http.StatusConflict, "Dữ liệu vừa được cập nhật ở nơi khác, vui lòng thử lại"},
}

// respondError maps a service error to its status and message. Unknown errors
// are logged and reported as 500 without internal detail.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			c.JSON(m.status, models.ErrorResponse{
				Success: false,
				Message: m.message,
				Error:   err.Error(),
			})
			return
		}
	}

	logger.Error("Request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Message: "Internal server error",
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request",
		Error:   err.Error(),
	})
}
