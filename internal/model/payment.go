package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is an append-only ledger entry. There is no update or delete path.
type Payment struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Email         string          `json:"email" gorm:"size:255;not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Currency      string          `json:"currency" gorm:"size:3;not null;default:'usd'"`
	TransactionID string          `json:"transactionId,omitempty" gorm:"size:255;index"`
	CreatedAt     time.Time       `json:"createdAt" gorm:"index"`

	CartItems []PaymentCartItem `json:"-" gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE"`
	MenuItems []PaymentMenuItem `json:"-" gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MarshalJSON flattens the link tables into id lists.
func (p Payment) MarshalJSON() ([]byte, error) {
	type alias Payment
	return json.Marshal(struct {
		alias
		CartIDs     []uuid.UUID `json:"cartIds"`
		MenuItemIDs []string    `json:"menuItemIds"`
	}{
		alias:       alias(p),
		CartIDs:     p.CartIDs(),
		MenuItemIDs: p.MenuItemIDs(),
	})
}

// CartIDs returns the cart item ids this payment retired.
func (p *Payment) CartIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.CartItems))
	for _, c := range p.CartItems {
		ids = append(ids, c.CartItemID)
	}
	return ids
}

// MenuItemIDs returns the purchased menu item ids in checkout order.
func (p *Payment) MenuItemIDs() []string {
	ids := make([]string, len(p.MenuItems))
	for i, m := range p.MenuItems {
		ids[i] = m.MenuItemID
	}
	return ids
}

// PaymentCartItem links a payment to a cart item it retired.
type PaymentCartItem struct {
	PaymentID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	CartItemID uuid.UUID `gorm:"type:char(36);primaryKey"`
}

// PaymentMenuItem is one purchased menu item id. Position keeps the checkout order and
// MenuItemID is not a foreign key: the menu item may be deleted later.
type PaymentMenuItem struct {
	PaymentID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	MenuItemID string    `gorm:"type:char(36);not null;index"`
}
