package controllers

import (
	"net/http"

	"github.com/PhanMy23520965/LaLuneBakery/middleware"
	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileController struct {
	authService AuthService
	sessions    *middleware.SessionManager
	logger      *zap.Logger
}

func NewProfileController(authService AuthService, sessions *middleware.SessionManager, logger *zap.Logger) *ProfileController {
	return &ProfileController{authService: authService, sessions: sessions, logger: logger}
}

// Me godoc
// @Summary Current account
// @Description Return the logged-in account and the pending flash message, which is cleared once read
// @Tags Profile
// @Produce json
// @Success 200 {object} models.Response
// @Router /me [get]
func (ctrl *ProfileController) Me(c *gin.Context) {
	account, err := ctrl.authService.GetAccount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile retrieved successfully",
		Data:    account,
		Flash:   ctrl.sessions.TakeFlash(c),
	})
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Update full name and postal address
// @Tags Profile
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [patch]
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := ctrl.authService.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	if err := ctrl.sessions.Refresh(c, account); err != nil {
		ctrl.logger.Warn("Failed to refresh session", zap.Error(err))
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    account,
	})
}
