package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"foodparadise/internal/auth"
	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/model"
	"foodparadise/internal/service"
)

// CartHandler handles cart endpoints.
type CartHandler struct {
	carts     service.CartService
	authority *auth.Authority
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts service.CartService, authority *auth.Authority) *CartHandler {
	return &CartHandler{carts: carts, authority: authority}
}

// AddCartRequest is a menu item placed in a cart.
type AddCartRequest struct {
	Email      string          `json:"email" validate:"required,email"`
	MenuItemID string          `json:"menuId" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Image      string          `json:"image"`
	Price      decimal.Decimal `json:"price" swaggertype:"string"`
	Quantity   int             `json:"quantity" validate:"omitempty,min=1"`
}

// ListCart godoc
// @Summary List own cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param email query string false "Owner email, must match the token"
// @Success 200 {array} model.CartItem
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /carts [get]
func (h *CartHandler) ListCart(c echo.Context) error {
	cl, err := claims(c)
	if err != nil {
		return err
	}
	if email := c.QueryParam("email"); email != "" {
		if err := h.authority.MatchIdentity(cl, email); err != nil {
			return apperrors.ToEcho(err)
		}
	}

	items, err := h.carts.List(c.Request().Context(), cl.Email)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, items)
}

// AddToCart godoc
// @Summary Add item to cart
// @Tags carts
// @Accept json
// @Produce json
// @Param request body AddCartRequest true "Cart item"
// @Success 201 {object} model.InsertResult
// @Failure 400 {object} errors.ErrorResponse
// @Router /carts [post]
func (h *CartHandler) AddToCart(c echo.Context) error {
	var req AddCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.carts.Add(c.Request().Context(), &model.CartItem{
		Email:      req.Email,
		MenuItemID: req.MenuItemID,
		Name:       req.Name,
		Image:      req.Image,
		Price:      req.Price,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// RemoveFromCart godoc
// @Summary Remove own cart item
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Success 200 {object} model.DeleteResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /carts/{id} [delete]
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	cl, err := claims(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.carts.Remove(c.Request().Context(), cl.Email, id)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, result)
}
