package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodparadise/internal/model"
)

// CartRepository defines cart item persistence operations.
type CartRepository interface {
	Create(ctx context.Context, item *model.CartItem) error
	ListByEmail(ctx context.Context, email string) ([]model.CartItem, error)
	DeleteOwned(ctx context.Context, id uuid.UUID, email string) (int64, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Create adds a line item.
func (r *cartRepository) Create(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// ListByEmail lists the items owned by email in insertion order.
func (r *cartRepository) ListByEmail(ctx context.Context, email string) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteOwned removes one item if email owns it.
func (r *cartRepository) DeleteOwned(ctx context.Context, id uuid.UUID, email string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND email = ?", id, email).Delete(&model.CartItem{})
	return res.RowsAffected, res.Error
}

// DeleteByIDs removes every item in ids that still exists and returns how many went.
// Ids that are already gone are skipped silently.
func (r *cartRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.CartItem{})
	return res.RowsAffected, res.Error
}
