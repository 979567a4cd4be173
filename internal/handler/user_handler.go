package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/model"
	"foodparadise/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRequest is a new user's profile.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photoUrl"`
}

// AdminCheckResponse reports whether the caller is an admin.
type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

// CreateUser godoc
// @Summary Register user
// @Description Idempotent by email; a repeat returns "already exists" with a null insertedId
// @Tags users
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User payload"
// @Success 201 {object} model.InsertResult
// @Success 200 {object} model.InsertResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := h.svc.Register(c.Request().Context(), &model.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return apperrors.ToEcho(err)
	}
	if result.InsertedID == nil {
		return c.JSON(http.StatusOK, result)
	}
	return c.JSON(http.StatusCreated, result)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, users)
}

// CheckAdmin godoc
// @Summary Check own admin role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Caller email"
// @Success 200 {object} AdminCheckResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/admin/{email} [get]
func (h *UserHandler) CheckAdmin(c echo.Context) error {
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return apperrors.ToEcho(apperrors.ErrInvalidInput)
	}
	admin, err := h.svc.IsAdmin(c.Request().Context(), email)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, AdminCheckResponse{Admin: admin})
}

// MakeAdmin godoc
// @Summary Promote user to admin
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} model.UpdateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/admin/{id} [patch]
func (h *UserHandler) MakeAdmin(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.svc.Promote(c.Request().Context(), id)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} model.DeleteResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, result)
}
