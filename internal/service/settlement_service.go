package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/events"
	"foodparadise/internal/model"
	"foodparadise/internal/repository"
)

// SettleInput is a client-confirmed payment to record.
type SettleInput struct {
	Email         string
	Amount        decimal.Decimal
	Currency      string
	TransactionID string
	CartIDs       []string
	MenuItemIDs   []string
}

// SettlementResult reports both halves of a settlement. Partial is set when fewer cart
// rows were removed than requested; the payment is recorded either way.
type SettlementResult struct {
	PaymentResult model.InsertResult `json:"paymentResult"`
	DeleteResult  model.DeleteResult `json:"deleteResult"`
	Requested     int                `json:"requested"`
	Partial       bool               `json:"partial"`
	Code          string             `json:"code,omitempty"`
	CleanupError  string             `json:"cleanupError,omitempty"`
}

// SettlementService records payments and retires the cart items they paid for.
type SettlementService interface {
	Settle(ctx context.Context, in SettleInput) (*SettlementResult, error)
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
}

// SettlementOptions tunes settlement behaviour.
type SettlementOptions struct {
	// Atomic runs the ledger insert and the cart delete in one transaction. When false the
	// ledger write is kept even if the cart cleanup fails.
	Atomic          bool
	DefaultCurrency string
}

type settlementService struct {
	payments  repository.PaymentRepository
	carts     repository.CartRepository
	publisher events.Publisher
	opts      SettlementOptions
	logger    *slog.Logger
	now       func() time.Time
}

// NewSettlementService creates a new settlement service. publisher may be nil.
func NewSettlementService(
	payments repository.PaymentRepository,
	carts repository.CartRepository,
	publisher events.Publisher,
	opts SettlementOptions,
	logger *slog.Logger,
) SettlementService {
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "usd"
	}
	return &settlementService{
		payments:  payments,
		carts:     carts,
		publisher: publisher,
		opts:      opts,
		logger:    resolveLogger(logger),
		now:       time.Now,
	}
}

func (s *settlementService) Settle(ctx context.Context, in SettleInput) (*SettlementResult, error) {
	ctx, span := tracer.Start(ctx, "settlement.Settle", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	payment, err := s.buildPayment(in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	cartIDs := payment.CartIDs()
	span.SetAttributes(
		attribute.String("payment.id", payment.ID.String()),
		attribute.Int("settlement.requested", len(cartIDs)),
		attribute.Bool("settlement.atomic", s.opts.Atomic),
	)

	result := &SettlementResult{Requested: len(cartIDs)}
	if s.opts.Atomic {
		err = s.payments.WithTransaction(ctx, func(ctx context.Context, payments repository.PaymentRepository, carts repository.CartRepository) error {
			if err := payments.Create(ctx, payment); err != nil {
				return fmt.Errorf("insert payment: %w", err)
			}
			deleted, err := carts.DeleteByIDs(ctx, cartIDs)
			if err != nil {
				return fmt.Errorf("delete cart items: %w", err)
			}
			result.DeleteResult.DeletedCount = deleted
			return nil
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "settlement rolled back")
			return nil, fmt.Errorf("settle payment: %w", err)
		}
	} else {
		if err := s.payments.Create(ctx, payment); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "insert payment")
			return nil, fmt.Errorf("insert payment: %w", err)
		}
		deleted, err := s.carts.DeleteByIDs(ctx, cartIDs)
		if err != nil {
			// the payment stands; the client still sees its inserted id
			span.RecordError(err)
			s.logger.ErrorContext(ctx, "cart cleanup failed after payment insert",
				"payment_id", payment.ID, "email", payment.Email, "requested", len(cartIDs), "error", err)
			result.CleanupError = "cart cleanup failed"
		}
		result.DeleteResult.DeletedCount = deleted
	}

	result.PaymentResult = model.Inserted(payment.ID.String())
	if result.DeleteResult.DeletedCount < int64(result.Requested) {
		result.Partial = true
		result.Code = apperrors.CodeSettlementPartial
		s.logger.WarnContext(ctx, "settlement removed fewer cart items than requested",
			"payment_id", payment.ID, "email", payment.Email,
			"requested", result.Requested, "deleted", result.DeleteResult.DeletedCount)
	}
	span.SetAttributes(attribute.Int64("settlement.deleted", result.DeleteResult.DeletedCount))

	s.publishSettled(ctx, payment, result.DeleteResult.DeletedCount)
	s.logger.InfoContext(ctx, "payment settled",
		"payment_id", payment.ID, "email", payment.Email, "amount", payment.Amount.String(),
		"deleted", result.DeleteResult.DeletedCount)
	return result, nil
}

// ledgerScale is the number of decimal places model.Payment.Amount stores.
const ledgerScale = 2

func (s *settlementService) buildPayment(in SettleInput) (*model.Payment, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, fmt.Errorf("settle payment: email is required: %w", apperrors.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("settle payment: %w", apperrors.ErrInvalidAmount)
	}
	// the ledger column stores whole cents
	if !in.Amount.Equal(in.Amount.Truncate(ledgerScale)) {
		return nil, fmt.Errorf("settle payment: %s has more than %d decimal places: %w",
			in.Amount, ledgerScale, apperrors.ErrInvalidAmount)
	}
	if len(in.CartIDs) == 0 {
		return nil, fmt.Errorf("settle payment: %w", apperrors.ErrEmptyCart)
	}

	payment := &model.Payment{
		ID:            uuid.New(),
		Email:         email,
		Amount:        in.Amount,
		Currency:      strings.ToLower(in.Currency),
		TransactionID: in.TransactionID,
	}
	if payment.Currency == "" {
		payment.Currency = s.opts.DefaultCurrency
	}

	seen := make(map[uuid.UUID]struct{}, len(in.CartIDs))
	for _, raw := range in.CartIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("cart id %q: %w", raw, apperrors.ErrInvalidID)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		payment.CartItems = append(payment.CartItems, model.PaymentCartItem{PaymentID: payment.ID, CartItemID: id})
	}
	for i, menuID := range in.MenuItemIDs {
		payment.MenuItems = append(payment.MenuItems, model.PaymentMenuItem{PaymentID: payment.ID, Position: i, MenuItemID: menuID})
	}
	return payment, nil
}

func (s *settlementService) publishSettled(ctx context.Context, payment *model.Payment, deleted int64) {
	if s.publisher == nil {
		return
	}
	evt := events.PaymentSettled{
		PaymentID:    payment.ID,
		Email:        payment.Email,
		Amount:       payment.Amount,
		Currency:     payment.Currency,
		CartIDs:      payment.CartIDs(),
		MenuItemIDs:  payment.MenuItemIDs(),
		DeletedCount: deleted,
		SettledAt:    s.now().UTC(),
	}
	if err := s.publisher.PublishJSON(ctx, events.KeyPaymentSettled, evt); err != nil {
		s.logger.WarnContext(ctx, "publish payment settled", "payment_id", payment.ID, "error", err)
	}
}

// ListByEmail returns the caller's payment history, newest first.
func (s *settlementService) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	payments, err := s.payments.ListByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
