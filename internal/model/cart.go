package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is a pending line item owned by a single user.
// Rows are hard deleted so a retired item cannot come back.
type CartItem struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Email      string          `json:"email" gorm:"size:255;not null;index"`
	MenuItemID string          `json:"menuId" gorm:"type:char(36);not null;index"`
	Name       string          `json:"name" gorm:"size:255"`
	Image      string          `json:"image,omitempty" gorm:"size:1024"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Quantity   int             `json:"quantity" gorm:"not null;default:1"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Quantity <= 0 {
		c.Quantity = 1
	}
	return nil
}
