package controllers

import (
	"net/http"
	"strconv"

	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AccountController struct {
	accountService AccountService
	logger         *zap.Logger
}

func NewAccountController(accountService AccountService, logger *zap.Logger) *AccountController {
	return &AccountController{accountService: accountService, logger: logger}
}

// GetAllAccounts godoc
// @Summary List accounts
// @Tags Admin Accounts
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /admin/accounts [get]
func (ctrl *AccountController) GetAllAccounts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := ctrl.accountService.GetAllAccounts(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteAccount godoc
// @Summary Delete account
// @Tags Admin Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/accounts/{id} [delete]
func (ctrl *AccountController) DeleteAccount(c *gin.Context) {
	if err := ctrl.accountService.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Account deleted successfully",
	})
}
