package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KeyPaymentSettled is the routing key of PaymentSettled.
const KeyPaymentSettled = "payment.settled"

// Publisher sends domain events to a broker.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

// PaymentSettled is emitted once a payment is in the ledger.
type PaymentSettled struct {
	PaymentID    uuid.UUID       `json:"paymentId"`
	Email        string          `json:"email"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	CartIDs      []uuid.UUID     `json:"cartIds"`
	MenuItemIDs  []string        `json:"menuItemIds"`
	DeletedCount int64           `json:"deletedCount"`
	SettledAt    time.Time       `json:"settledAt"`
}
