package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/salesai/dashboard-system/internal/api/metrics"
	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/core/ports"
)

// AuthHandler handles signup, login and profile requests.
type AuthHandler struct {
	authService ports.AuthService
	predictions ports.PredictionRepository
}

func NewAuthHandler(authService ports.AuthService, predictions ports.PredictionRepository) *AuthHandler {
	return &AuthHandler{authService: authService, predictions: predictions}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type signupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type loginResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	User    *userResponse `json:"user,omitempty"`
}

type profileResponse struct {
	Success         bool          `json:"success"`
	Message         string        `json:"message,omitempty"`
	User            *userResponse `json:"user,omitempty"`
	PredictionCount int64         `json:"prediction_count"`
}

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  signupResponse
// @Failure      409   {object}  signupResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, signupResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, signupResponse{Message: err.Error()})
	}

	_, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusConflict, signupResponse{Message: "An account with this email already exists"})
		}
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, signupResponse{Success: true, Message: "Account created"})
}

// Login authenticates a user.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  loginResponse
// @Failure      401   {object}  loginResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Message: err.Error()})
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.JSON(http.StatusUnauthorized, loginResponse{Message: "Invalid email or password"})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Success: true, User: toUserResponse(user)})
}

// Profile returns the account details for a user id.
//
// @Summary      Get user profile
// @Tags         auth
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  profileResponse
// @Router       /profile/{id} [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	userID := c.Param("id")

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, profileResponse{Message: "user not found"})
		}
		return err
	}

	count, err := h.predictions.CountByUser(c.Request().Context(), userID)
	if err != nil {
		// A failed count degrades to zero rather than failing the page.
		count = 0
	}

	return c.JSON(http.StatusOK, profileResponse{
		Success:         true,
		User:            toUserResponse(user),
		PredictionCount: count,
	})
}
