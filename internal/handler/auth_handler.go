package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/service"
)

// AuthHandler handles token issuing.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// TokenRequest is the identity a token is issued for.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// TokenResponse carries a signed access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken godoc
// @Summary Issue an access token
// @Description Signs a short-lived token carrying the caller's email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Identity"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req TokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := h.authService.IssueToken(c.Request().Context(), req.Email, req.Name)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
