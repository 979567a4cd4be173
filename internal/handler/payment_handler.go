package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/service"
)

// PaymentHandler handles checkout and settlement endpoints.
type PaymentHandler struct {
	checkout   service.CheckoutService
	settlement service.SettlementService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(checkout service.CheckoutService, settlement service.SettlementService) *PaymentHandler {
	return &PaymentHandler{checkout: checkout, settlement: settlement}
}

// PaymentIntentRequest asks for a processor payment intent.
type PaymentIntentRequest struct {
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
	Currency string          `json:"currency,omitempty"`
}

// PaymentIntentResponse carries the client secret used to confirm the payment.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// SettleRequest represents a payment the client confirmed with the processor.
type SettleRequest struct {
	Email         string          `json:"email" validate:"required,email"`
	Price         decimal.Decimal `json:"price" swaggertype:"string"`
	Currency      string          `json:"currency,omitempty"`
	TransactionID string          `json:"transactionId"`
	CartIDs       []string        `json:"cartIds"`
	MenuItemIDs   []string        `json:"menuItemIds"`
}

// CreatePaymentIntent godoc
// @Summary Create a payment intent
// @Description Converts price to the minor unit and opens an intent with the configured processor
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentIntentRequest true "Price"
// @Success 200 {object} PaymentIntentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req PaymentIntentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	intent, err := h.checkout.CreatePaymentIntent(c.Request().Context(), req.Price, req.Currency)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, PaymentIntentResponse{ClientSecret: intent.ClientSecret})
}

// SettlePayment godoc
// @Summary Settle a payment
// @Description Records the payment and removes the paid cart items. A short deleteResult.deletedCount is reported with partial=true.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body SettleRequest true "Payment"
// @Success 200 {object} service.SettlementResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) SettlePayment(c echo.Context) error {
	var req SettleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.settlement.Settle(c.Request().Context(), service.SettleInput{
		Email:         req.Email,
		Amount:        req.Price,
		Currency:      req.Currency,
		TransactionID: req.TransactionID,
		CartIDs:       req.CartIDs,
		MenuItemIDs:   req.MenuItemIDs,
	})
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, result)
}

// ListPayments godoc
// @Summary List a user's payments
// @Tags payments
// @Produce json
// @Param email path string true "Payer email"
// @Success 200 {array} model.Payment
// @Router /payments/{email} [get]
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return apperrors.ToEcho(apperrors.ErrInvalidInput)
	}
	payments, err := h.settlement.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, payments)
}
