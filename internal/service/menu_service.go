package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodparadise/internal/cache"
	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/model"
	"foodparadise/internal/repository"
)

const (
	menuCacheKey = "menu:all"
	menuCacheTTL = 5 * time.Minute
)

// MenuPatch carries the fields of a partial menu update. Nil fields are left alone.
type MenuPatch struct {
	Name     *string
	Recipe   *string
	Image    *string
	Category *string
	Price    *decimal.Decimal
}

func (p MenuPatch) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Recipe != nil {
		fields["recipe"] = *p.Recipe
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	return fields
}

// MenuService manages the menu and the landing page reviews.
type MenuService interface {
	List(ctx context.Context) ([]model.MenuItem, error)
	Get(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	Create(ctx context.Context, item *model.MenuItem) (model.InsertResult, error)
	Update(ctx context.Context, id uuid.UUID, patch MenuPatch) (model.UpdateResult, error)
	Delete(ctx context.Context, id uuid.UUID) (model.DeleteResult, error)
	Reviews(ctx context.Context) ([]model.Review, error)
	Import(ctx context.Context, items []model.MenuItem, reviews []model.Review) (ImportResult, error)
}

// ImportResult counts the records an import created. Skipped counts fixture entries
// dropped before the import and is filled in by the caller that parsed them.
type ImportResult struct {
	Message string `json:"message"`
	Menu    int    `json:"menu"`
	Reviews int    `json:"reviews"`
	Skipped int    `json:"skipped"`
}

type menuService struct {
	repo   repository.MenuRepository
	cache  *cache.Client
	logger *slog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(repo repository.MenuRepository, cache *cache.Client, logger *slog.Logger) MenuService {
	return &menuService{repo: repo, cache: cache, logger: resolveLogger(logger)}
}

func (s *menuService) List(ctx context.Context) ([]model.MenuItem, error) {
	var cached []model.MenuItem
	if s.cache.GetJSON(ctx, menuCacheKey, &cached) {
		return cached, nil
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	s.cache.SetJSON(ctx, menuCacheKey, items, menuCacheTTL)
	return items, nil
}

func (s *menuService) Get(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *menuService) Create(ctx context.Context, item *model.MenuItem) (model.InsertResult, error) {
	if item.Price.IsNegative() {
		return model.InsertResult{}, fmt.Errorf("create menu item: %w", apperrors.ErrInvalidAmount)
	}
	item.ID = uuid.Nil
	if err := s.repo.Create(ctx, item); err != nil {
		return model.InsertResult{}, fmt.Errorf("create menu item: %w", err)
	}
	s.cache.Delete(ctx, menuCacheKey)
	s.logger.InfoContext(ctx, "menu item created", "menu_item_id", item.ID, "category", item.Category)
	return model.Inserted(item.ID.String()), nil
}

// Update applies patch. An unknown id or an empty patch matches nothing.
func (s *menuService) Update(ctx context.Context, id uuid.UUID, patch MenuPatch) (model.UpdateResult, error) {
	if patch.Price != nil && patch.Price.IsNegative() {
		return model.UpdateResult{}, fmt.Errorf("update menu item: %w", apperrors.ErrInvalidAmount)
	}
	fields := patch.fields()
	if len(fields) == 0 {
		return model.UpdateResult{}, nil
	}
	modified, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("update menu item: %w", err)
	}
	if modified > 0 {
		s.cache.Delete(ctx, menuCacheKey)
	}
	return model.UpdateResult{MatchedCount: modified, ModifiedCount: modified}, nil
}

// Delete removes a menu item. Payments that bought it keep its id and show up as
// unmatched in the order breakdown.
func (s *menuService) Delete(ctx context.Context, id uuid.UUID) (model.DeleteResult, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("delete menu item: %w", err)
	}
	if deleted > 0 {
		s.cache.Delete(ctx, menuCacheKey)
		s.logger.InfoContext(ctx, "menu item deleted", "menu_item_id", id)
	}
	return model.DeleteResult{DeletedCount: deleted}, nil
}

func (s *menuService) Reviews(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.repo.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Import bulk-inserts menu items and reviews.
func (s *menuService) Import(ctx context.Context, items []model.MenuItem, reviews []model.Review) (ImportResult, error) {
	if len(items) > 0 {
		if err := s.repo.CreateBatch(ctx, items); err != nil {
			return ImportResult{}, fmt.Errorf("import menu: %w", err)
		}
		s.cache.Delete(ctx, menuCacheKey)
	}
	if len(reviews) > 0 {
		if err := s.repo.CreateReviews(ctx, reviews); err != nil {
			return ImportResult{Menu: len(items)}, fmt.Errorf("import reviews: %w", err)
		}
	}
	s.logger.InfoContext(ctx, "menu imported", "menu", len(items), "reviews", len(reviews))
	return ImportResult{Message: "imported", Menu: len(items), Reviews: len(reviews)}, nil
}
