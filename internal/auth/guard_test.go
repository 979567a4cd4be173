package auth

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedEcho(tokens *TokenService, revocations *TokenStore) *echo.Echo {
	return newGuardedEchoWithLogger(tokens, revocations, nil)
}

func newGuardedEchoWithLogger(tokens *TokenService, revocations *TokenStore, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.GET("/secured", func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return c.String(http.StatusInternalServerError, "no claims")
		}
		fromCtx, ok := ClaimsFromContext(c.Request().Context())
		if !ok || fromCtx.Email != claims.Email {
			return c.String(http.StatusInternalServerError, "no request claims")
		}
		return c.String(http.StatusOK, claims.Email)
	}, RequireToken(tokens, revocations, logger))
	return e
}

func TestRequireToken(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	valid, err := tokens.Sign(Claims{Email: "user@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "user@example.com"},
		{"missing header", "", http.StatusUnauthorized, "MISSING_CREDENTIAL"},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, "MISSING_CREDENTIAL"},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized, "INVALID_CREDENTIAL"},
	}

	e := newGuardedEcho(tokens, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secured", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestRequireToken_Revoked(t *testing.T) {
	issued := time.Now().Add(-time.Minute)
	tokens := newTokenService("test-secret", time.Hour, fixedClock(issued))
	old, err := tokens.Sign(Claims{Email: "gone@example.com"})
	require.NoError(t, err)

	store := NewTokenStore(newMemKV(), time.Hour)
	require.NoError(t, store.Revoke(context.Background(), "gone@example.com"))

	req := httptest.NewRequest(http.MethodGet, "/secured", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+old)
	rec := httptest.NewRecorder()
	newGuardedEcho(tokens, store).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIAL")
}

func TestRequireToken_LogsRejection(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	e := newGuardedEchoWithLogger(NewTokenService("test-secret", time.Hour), nil, logger)

	req := httptest.NewRequest(http.MethodGet, "/secured", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, buf.String(), `"msg":"rejected token"`)
	assert.Contains(t, buf.String(), `"path":"/secured"`)
}
