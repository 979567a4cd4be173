package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/model"
	"foodparadise/internal/repository"
)

// CartService manages the pending cart of each user.
type CartService interface {
	List(ctx context.Context, email string) ([]model.CartItem, error)
	Add(ctx context.Context, item *model.CartItem) (model.InsertResult, error)
	Remove(ctx context.Context, owner string, id uuid.UUID) (model.DeleteResult, error)
}

type cartService struct {
	repo repository.CartRepository
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) List(ctx context.Context, email string) ([]model.CartItem, error) {
	items, err := s.repo.ListByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return items, nil
}

func (s *cartService) Add(ctx context.Context, item *model.CartItem) (model.InsertResult, error) {
	item.Email = normalizeEmail(item.Email)
	if item.Email == "" {
		return model.InsertResult{}, fmt.Errorf("add cart item: email is required: %w", apperrors.ErrInvalidInput)
	}
	if item.Price.IsNegative() {
		return model.InsertResult{}, fmt.Errorf("add cart item: %w", apperrors.ErrInvalidAmount)
	}
	item.ID = uuid.Nil
	if err := s.repo.Create(ctx, item); err != nil {
		return model.InsertResult{}, fmt.Errorf("add cart item: %w", err)
	}
	return model.Inserted(item.ID.String()), nil
}

// Remove deletes one of owner's cart items. Ids owned by someone else remove nothing.
func (s *cartService) Remove(ctx context.Context, owner string, id uuid.UUID) (model.DeleteResult, error) {
	deleted, err := s.repo.DeleteOwned(ctx, id, normalizeEmail(owner))
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("remove cart item: %w", err)
	}
	return model.DeleteResult{DeletedCount: deleted}, nil
}
