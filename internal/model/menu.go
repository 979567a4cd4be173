package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem is a dish offered by the restaurant.
type MenuItem struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Recipe    string          `json:"recipe,omitempty" gorm:"type:text"`
	Image     string          `json:"image,omitempty" gorm:"size:1024"`
	Category  string          `json:"category" gorm:"size:100;not null;index"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Review is a customer testimonial shown on the landing page.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Details   string    `json:"details" gorm:"type:text"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
