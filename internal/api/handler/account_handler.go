package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesai/dashboard-system/internal/api/metrics"
	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/core/ports"
)

// AccountHandler serves the account deletion endpoint.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type deleteAccountRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type deleteAccountResponse struct {
	Success            bool   `json:"success"`
	Message            string `json:"message,omitempty"`
	UsersDeleted       int64  `json:"users_deleted"`
	PredictionsDeleted int64  `json:"predictions_deleted"`
}

// Delete removes a user account and every prediction it owns.
//
// @Summary      Delete an account
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      deleteAccountRequest  true  "Account to delete"
// @Success      200   {object}  deleteAccountResponse
// @Failure      400   {object}  deleteAccountResponse
// @Failure      404   {object}  deleteAccountResponse
// @Router       /delete-account [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	var req deleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, deleteAccountResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, deleteAccountResponse{Message: err.Error()})
	}

	result, err := h.service.DeleteAccount(c.Request().Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, deleteAccountResponse{Message: "user not found"})
		case errors.Is(err, domain.ErrInvalidUserID):
			return c.JSON(http.StatusBadRequest, deleteAccountResponse{Message: "invalid user id"})
		}
		return err
	}

	metrics.AccountsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, deleteAccountResponse{
		Success:            true,
		Message:            "Account deleted",
		UsersDeleted:       result.UsersDeleted,
		PredictionsDeleted: result.PredictionsDeleted,
	})
}
