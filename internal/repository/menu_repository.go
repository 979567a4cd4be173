package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodparadise/internal/model"
)

// MenuRepository defines menu and review persistence operations.
type MenuRepository interface {
	List(ctx context.Context) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	Create(ctx context.Context, item *model.MenuItem) error
	CreateBatch(ctx context.Context, items []model.MenuItem) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ListReviews(ctx context.Context) ([]model.Review, error)
	CreateReviews(ctx context.Context, reviews []model.Review) error
}

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository.
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	if err := r.db.WithContext(ctx).Order("category, name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateBatch inserts seed data in chunks.
func (r *menuRepository) CreateBatch(ctx context.Context, items []model.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(items, 100).Error
}

// Update applies fields to one menu item and returns the number of rows changed.
func (r *menuRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MenuItem{})
	return res.RowsAffected, res.Error
}

func (r *menuRepository) ListReviews(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *menuRepository) CreateReviews(ctx context.Context, reviews []model.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(reviews, 100).Error
}
