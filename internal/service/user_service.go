package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"foodparadise/internal/auth"
	"foodparadise/internal/cache"
	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/model"
	"foodparadise/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// MessageAlreadyExists is returned by Register when the email is taken.
const MessageAlreadyExists = "already exists"

// UserService exposes domain operations.
type UserService interface {
	Register(ctx context.Context, user *model.User) (model.InsertResult, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	Promote(ctx context.Context, id uuid.UUID) (model.UpdateResult, error)
	Delete(ctx context.Context, id uuid.UUID) (model.DeleteResult, error)
}

type userService struct {
	repo    repository.UserRepository
	cache   *cache.Client
	revoker auth.Revoker
	logger  *slog.Logger
}

// NewUserService builds a UserService with repository and cache. revoker may be nil.
func NewUserService(repo repository.UserRepository, cache *cache.Client, revoker auth.Revoker, logger *slog.Logger) UserService {
	return &userService{repo: repo, cache: cache, revoker: revoker, logger: resolveLogger(logger)}
}

func (s *userService) cacheKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

// Register stores a new member. A second registration with the same email changes
// nothing and reports a nil InsertedID.
func (s *userService) Register(ctx context.Context, user *model.User) (model.InsertResult, error) {
	user.Email = normalizeEmail(user.Email)
	if user.Email == "" {
		return model.InsertResult{}, fmt.Errorf("register user: email is required: %w", apperrors.ErrInvalidInput)
	}

	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		return model.InsertResult{Message: MessageAlreadyExists}, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return model.InsertResult{}, fmt.Errorf("check user existence: %w", err)
	}

	// roles are only ever raised by an admin
	user.ID = uuid.Nil
	user.Role = model.RoleMember
	if err := s.repo.Create(ctx, user); err != nil {
		// a concurrent registration may have won the unique index
		if existing, findErr := s.repo.FindByEmail(ctx, user.Email); findErr == nil && existing != nil {
			return model.InsertResult{Message: MessageAlreadyExists}, nil
		}
		return model.InsertResult{}, fmt.Errorf("create user: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(user.Email))
	return model.Inserted(user.ID.String()), nil
}

// FindByEmail is the point read behind role checks. It is cached briefly and the cache
// is dropped whenever the user's role changes or the user is deleted.
func (s *userService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = normalizeEmail(email)
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(email), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, s.cacheKey(email), user, userCacheTTL)
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// IsAdmin reports whether email belongs to an admin. Unknown emails are not admins.
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Role == model.RoleAdmin, nil
}

// Promote makes the user an admin. Promoting an admin again matches without modifying.
func (s *userService) Promote(ctx context.Context, id uuid.UUID) (model.UpdateResult, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return model.UpdateResult{}, nil
	}
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("find user: %w", err)
	}
	if user.Role.AtLeast(model.RoleAdmin) {
		return model.UpdateResult{MatchedCount: 1}, nil
	}

	modified, err := s.repo.UpdateRole(ctx, id, model.RoleAdmin)
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("promote user: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(user.Email))
	s.logger.InfoContext(ctx, "user promoted", "user_id", id, "role", model.RoleAdmin)
	return model.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}

// Delete removes the user. Deleting an unknown id removes nothing.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) (model.DeleteResult, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return model.DeleteResult{}, nil
	}
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("find user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("delete user: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(user.Email))
	if s.revoker != nil {
		if err := s.revoker.Revoke(ctx, user.Email); err != nil {
			s.logger.WarnContext(ctx, "revoke tokens", "user_id", id, "error", err)
		}
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", id)
	return model.DeleteResult{DeletedCount: deleted}, nil
}
