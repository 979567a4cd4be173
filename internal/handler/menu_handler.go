package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/model"
	"foodparadise/internal/service"
)

// MenuHandler handles menu and review endpoints.
type MenuHandler struct {
	menu service.MenuService
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(menu service.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// MenuItemRequest creates a menu item.
type MenuItemRequest struct {
	Name     string          `json:"name" validate:"required"`
	Recipe   string          `json:"recipe"`
	Image    string          `json:"image"`
	Category string          `json:"category" validate:"required"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
}

// MenuPatchRequest updates some fields of a menu item.
type MenuPatchRequest struct {
	Name     *string          `json:"name,omitempty"`
	Recipe   *string          `json:"recipe,omitempty"`
	Image    *string          `json:"image,omitempty"`
	Category *string          `json:"category,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty" swaggertype:"string"`
}

// ListMenu godoc
// @Summary List menu
// @Tags menu
// @Produce json
// @Success 200 {array} model.MenuItem
// @Router /menu [get]
func (h *MenuHandler) ListMenu(c echo.Context) error {
	items, err := h.menu.List(c.Request().Context())
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetMenuItem godoc
// @Summary Get menu item
// @Tags menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} model.MenuItem
// @Failure 404 {object} errors.ErrorResponse
// @Router /menu/{id} [get]
func (h *MenuHandler) GetMenuItem(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.menu.Get(c.Request().Context(), id)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, item)
}

// CreateMenuItem godoc
// @Summary Create menu item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MenuItemRequest true "Menu item"
// @Success 201 {object} model.InsertResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /menu [post]
func (h *MenuHandler) CreateMenuItem(c echo.Context) error {
	var req MenuItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := h.menu.Create(c.Request().Context(), &model.MenuItem{
		Name:     req.Name,
		Recipe:   req.Recipe,
		Image:    req.Image,
		Category: req.Category,
		Price:    req.Price,
	})
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// UpdateMenuItem godoc
// @Summary Update menu item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Param request body MenuPatchRequest true "Fields to change"
// @Success 200 {object} model.UpdateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /menu/{id} [patch]
func (h *MenuHandler) UpdateMenuItem(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req MenuPatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := h.menu.Update(c.Request().Context(), id, service.MenuPatch{
		Name:     req.Name,
		Recipe:   req.Recipe,
		Image:    req.Image,
		Category: req.Category,
		Price:    req.Price,
	})
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteMenuItem godoc
// @Summary Delete menu item
// @Tags menu
// @Produce json
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Success 200 {object} model.DeleteResult
// @Failure 403 {object} errors.ErrorResponse
// @Router /menu/{id} [delete]
func (h *MenuHandler) DeleteMenuItem(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.menu.Delete(c.Request().Context(), id)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, result)
}

// ListReviews godoc
// @Summary List reviews
// @Tags menu
// @Produce json
// @Success 200 {array} model.Review
// @Router /reviews [get]
func (h *MenuHandler) ListReviews(c echo.Context) error {
	reviews, err := h.menu.Reviews(c.Request().Context())
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, reviews)
}
