package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"foodparadise/internal/model"
)

// PaymentRepository is the append-only payment ledger. It has no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	Breakdown(ctx context.Context) ([]model.OrderBreakdownRow, error)
	// WithTransaction runs fn with a ledger and a cart repository bound to one transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, payments PaymentRepository, carts CartRepository) error) error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create inserts the payment together with its cart and menu link rows.
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// ListByEmail returns a user's payments, newest first, with their cart and menu ids.
func (r *paymentRepository) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Preload("CartItems").
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// TotalRevenue sums every payment amount. An empty ledger sums to zero.
func (r *paymentRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	row := r.db.WithContext(ctx).Model(&model.Payment{}).Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum revenue: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

type breakdownRow struct {
	PaymentID  uuid.UUID
	Email      string
	Amount     decimal.Decimal
	CreatedAt  time.Time
	Position   int
	MenuItemID string
	MenuName   sql.NullString
	Category   sql.NullString
	MenuPrice  decimal.NullDecimal
}

// Breakdown expands every payment into one row per purchased menu item id, left joined to
// the menu. Rows whose menu item is gone carry a nil MenuItem.
func (r *paymentRepository) Breakdown(ctx context.Context) ([]model.OrderBreakdownRow, error) {
	var rows []breakdownRow
	err := r.db.WithContext(ctx).
		Table("payments AS p").
		Select("p.id AS payment_id, p.email, p.amount, p.created_at, pmi.position, pmi.menu_item_id, " +
			"m.name AS menu_name, m.category, m.price AS menu_price").
		Joins("JOIN payment_menu_items AS pmi ON pmi.payment_id = p.id").
		Joins("LEFT JOIN menu_items AS m ON m.id = pmi.menu_item_id").
		Order("p.created_at, p.id, pmi.position").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("order breakdown: %w", err)
	}

	out := make([]model.OrderBreakdownRow, 0, len(rows))
	for _, row := range rows {
		item := model.OrderBreakdownRow{
			PaymentID:  row.PaymentID,
			Email:      row.Email,
			Amount:     row.Amount,
			CreatedAt:  row.CreatedAt,
			Position:   row.Position,
			MenuItemID: row.MenuItemID,
		}
		if row.Category.Valid {
			item.MenuItem = &model.MenuRef{
				Name:     row.MenuName.String,
				Category: row.Category.String,
				Price:    row.MenuPrice.Decimal,
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// WithTransaction executes fn within a database transaction.
func (r *paymentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, payments PaymentRepository, carts CartRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &paymentRepository{db: tx}, &cartRepository{db: tx})
	})
}
