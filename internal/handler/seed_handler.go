package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/seed"
	"foodparadise/internal/service"
)

// SeedHandler handles fixture import.
type SeedHandler struct {
	menu service.MenuService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(menu service.MenuService) *SeedHandler {
	return &SeedHandler{menu: menu}
}

// SeedMenu godoc
// @Summary Import menu and reviews
// @Description Body is {"menu": [...], "reviews": [...]}; invalid menu entries are skipped
// @Tags seed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body seed.Data true "Fixtures"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /seed [post]
func (h *SeedHandler) SeedMenu(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.ToEcho(apperrors.ErrInvalidInput)
	}
	data, err := seed.Parse(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	items, reviews, skipped := data.Models()
	result, err := h.menu.Import(c.Request().Context(), items, reviews)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	result.Skipped = skipped
	return c.JSON(http.StatusOK, result)
}
