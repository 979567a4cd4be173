package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/model"
)

// UserLookup resolves a user by email. Implementations return apperrors.ErrNotFound when
// no user has that email.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authority decides whether a verified caller holds a role.
type Authority struct {
	users  UserLookup
	logger *slog.Logger
}

// NewAuthority creates a role authority backed by users.
func NewAuthority(users UserLookup, logger *slog.Logger) *Authority {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authority{users: users, logger: logger}
}

// Authorize looks up the caller by the claim email and checks the stored role against
// required. Unknown callers are ErrForbidden, like callers with too little privilege.
func (a *Authority) Authorize(ctx context.Context, claims *Claims, required model.Role) error {
	if claims == nil || claims.Email == "" {
		return apperrors.ErrForbidden
	}
	user, err := a.users.FindByEmail(ctx, claims.Email)
	if errors.Is(err, apperrors.ErrNotFound) {
		a.logger.InfoContext(ctx, "role check denied: unknown caller", "required", required)
		return apperrors.ErrForbidden
	}
	if err != nil {
		return fmt.Errorf("resolve role: %w", err)
	}
	if !user.Role.AtLeast(required) {
		a.logger.InfoContext(ctx, "role check denied", "required", required, "role", user.Role)
		return apperrors.ErrForbidden
	}
	return nil
}

// MatchIdentity fails with ErrForbidden unless email is the caller's own.
func (a *Authority) MatchIdentity(claims *Claims, email string) error {
	if claims == nil || email == "" || !strings.EqualFold(claims.Email, email) {
		return apperrors.ErrForbidden
	}
	return nil
}

// RequireRole gates a route on the caller's stored role. It must run after RequireToken.
func RequireRole(a *Authority, role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := ClaimsFrom(c)
			if err := a.Authorize(c.Request().Context(), claims, role); err != nil {
				return apperrors.ToEcho(err)
			}
			return next(c)
		}
	}
}

// RequireSelf gates a route on the path parameter param naming the caller's own email.
// It must run after RequireToken.
func RequireSelf(a *Authority, param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := ClaimsFrom(c)
			email, err := url.PathUnescape(c.Param(param))
			if err != nil {
				return apperrors.ToEcho(apperrors.ErrForbidden)
			}
			if err := a.MatchIdentity(claims, email); err != nil {
				return apperrors.ToEcho(err)
			}
			return next(c)
		}
	}
}
