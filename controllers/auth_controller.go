package controllers

import (
	"errors"
	"net/http"

	"github.com/PhanMy23520965/LaLuneBakery/middleware"
	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/services"
	"github.com/PhanMy23520965/LaLuneBakery/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	authService AuthService
	sessions    *middleware.SessionManager
	logger      *zap.Logger
}

func NewAuthController(authService AuthService, sessions *middleware.SessionManager, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, sessions: sessions, logger: logger}
}

// Register godoc
// @Summary Register new account
// @Description Create an unverified account and email a verification link. Re-registering a key that was never verified replaces the pending account.
// @Tags Authentication
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := ctrl.authService.Register(c.Request.Context(), req, utils.BaseURL(c.Request))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Đăng ký thành công! Vui lòng kiểm tra email để xác thực tài khoản.",
		Data:    gin.H{"id": account.ID, "email": account.LoginKey},
	})
}

// VerifyEmail godoc
// @Summary Verify email
// @Description Consume a verification token and redirect to the login page
// @Tags Authentication
// @Produce json
// @Param token path string true "Verification token"
// @Success 303 {string} string "Redirect"
// @Failure 400 {object} models.ErrorResponse
// @Router /verify/{token} [get]
func (ctrl *AuthController) VerifyEmail(c *gin.Context) {
	if _, err := ctrl.authService.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	ctrl.sessions.SetFlash(c, models.FlashSuccess, "Xác thực thành công! Bạn có thể đăng nhập.")
	c.Redirect(http.StatusSeeOther, "/login")
}

// LoginPage godoc
// @Summary Login page
// @Description Pending flash message for the login form, shown once. Signed-in users are sent to the catalog.
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.Response
// @Success 302 {string} string "Redirect"
// @Router /login [get]
func (ctrl *AuthController) LoginPage(c *gin.Context) {
	if middleware.CurrentSession(c).IsAuthenticated() {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Đăng nhập",
		Flash:   ctrl.sessions.TakeFlash(c),
	})
}

// Login godoc
// @Summary Login
// @Description Open a session. With remember=on the session cookie lasts 30 days, otherwise it ends with the browser.
// @Tags Authentication
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 303 {string} string "Redirect"
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := ctrl.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	if err := ctrl.sessions.Login(c, account, req.RememberMe()); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout godoc
// @Summary Logout
// @Description Destroy the session and redirect to the catalog
// @Tags Authentication
// @Success 303 {string} string "Redirect"
// @Router /logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	if err := ctrl.sessions.Logout(c); err != nil {
		ctrl.logger.Warn("Failed to delete session", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ForgotPassword godoc
// @Summary Request password reset
// @Description Email a one-hour password reset link
// @Tags Authentication
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Forgot Password Request"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /forgot-password [post]
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctrl.authService.RequestPasswordReset(c.Request.Context(), req.LoginKey, utils.BaseURL(c.Request)); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Đã gửi link đặt lại mật khẩu vào email của bạn.",
	})
}

// CheckResetToken godoc
// @Summary Check reset token
// @Tags Authentication
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /reset/{token} [get]
func (ctrl *AuthController) CheckResetToken(c *gin.Context) {
	token := c.Param("token")
	if _, err := ctrl.authService.CheckResetToken(c.Request.Context(), token); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Token hợp lệ",
		Data:    gin.H{"token": token},
	})
}

// ResetPassword godoc
// @Summary Reset password
// @Description Set a new password with a valid reset token
// @Tags Authentication
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body models.ResetPasswordRequest true "Reset Password Request"
// @Success 303 {string} string "Redirect"
// @Failure 400 {object} models.ErrorResponse
// @Router /reset/{token} [post]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	err := ctrl.authService.ResetPassword(c.Request.Context(), c.Param("token"), req)
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Mật khẩu không khớp!",
			Error:   err.Error(),
		})
		return
	}
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	ctrl.sessions.SetFlash(c, models.FlashSuccess, "Đổi mật khẩu thành công! Hãy đăng nhập lại.")
	c.Redirect(http.StatusSeeOther, "/login")
}
