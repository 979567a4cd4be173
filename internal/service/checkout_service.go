package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/processor"
)

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit price to the integer minor unit processors expect.
// Fractions of a minor unit are truncated.
func ToMinorUnits(price decimal.Decimal) int64 {
	return price.Mul(hundred).IntPart()
}

// CheckoutService opens payment intents with the configured processor.
type CheckoutService interface {
	CreatePaymentIntent(ctx context.Context, price decimal.Decimal, currency string) (*processor.Intent, error)
}

type checkoutService struct {
	processor       processor.Processor
	defaultCurrency string
	logger          *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(p processor.Processor, defaultCurrency string, logger *slog.Logger) CheckoutService {
	if defaultCurrency == "" {
		defaultCurrency = "usd"
	}
	return &checkoutService{processor: p, defaultCurrency: defaultCurrency, logger: resolveLogger(logger)}
}

func (s *checkoutService) CreatePaymentIntent(ctx context.Context, price decimal.Decimal, currency string) (*processor.Intent, error) {
	amount := ToMinorUnits(price)
	if amount <= 0 {
		return nil, fmt.Errorf("create payment intent: %w", apperrors.ErrInvalidAmount)
	}
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = s.defaultCurrency
	}

	intent, err := s.processor.CreatePaymentIntent(ctx, amount, currency)
	if err != nil {
		s.logger.ErrorContext(ctx, "payment processor call failed", "amount", amount, "currency", currency, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamProcessor, err)
	}
	s.logger.InfoContext(ctx, "payment intent created", "intent_id", intent.ID, "amount", amount, "currency", currency)
	return intent, nil
}
