package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "foodparadise/internal/errors"
)

// ContextKey is the echo context key holding the verified *Claims.
const ContextKey = "claims"

type claimsCtxKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, claims)
}

// ClaimsFromContext returns the claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*Claims)
	return claims, ok && claims != nil
}

// ClaimsFrom returns the claims RequireToken attached to c.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}

// RequireToken verifies the "Authorization: Bearer <token>" header and attaches the claims
// to both the echo context and the request context. Failures short-circuit with 401.
// revocations may be nil.
func RequireToken(tokens *TokenService, revocations *TokenStore, logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := tokens.Verify(auth)
			if err != nil {
				return nil, err
			}
			if revocations.IsRevoked(c.Request().Context(), claims) {
				return nil, fmt.Errorf("%w: token revoked", apperrors.ErrInvalidCredential)
			}
			return claims, nil
		},
		SuccessHandler: func(c echo.Context) {
			if claims, ok := ClaimsFrom(c); ok {
				req := c.Request()
				c.SetRequest(req.WithContext(WithClaims(req.Context(), claims)))
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// anything that never reached ParseTokenFunc had no usable bearer token
			if errors.Is(err, apperrors.ErrInvalidCredential) {
				logger.InfoContext(c.Request().Context(), "rejected token",
					"path", c.Path(), "error", err)
				return apperrors.ToEcho(apperrors.ErrInvalidCredential)
			}
			return apperrors.ToEcho(apperrors.ErrMissingCredential)
		},
	})
}
