package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/model"
)

// MockUserLookup is a mock implementation of UserLookup.
type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestAuthority_Authorize(t *testing.T) {
	tests := []struct {
		name      string
		claims    *Claims
		required  model.Role
		setupMock func(*MockUserLookup)
		wantErr   error
	}{
		{
			name:     "admin passes admin gate",
			claims:   &Claims{Email: "admin@example.com"},
			required: model.RoleAdmin,
			setupMock: func(m *MockUserLookup) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{Email: "admin@example.com", Role: model.RoleAdmin}, nil)
			},
		},
		{
			name:     "member blocked at admin gate",
			claims:   &Claims{Email: "member@example.com"},
			required: model.RoleAdmin,
			setupMock: func(m *MockUserLookup) {
				m.On("FindByEmail", mock.Anything, "member@example.com").Return(&model.User{Email: "member@example.com", Role: model.RoleMember}, nil)
			},
			wantErr: apperrors.ErrForbidden,
		},
		{
			name:     "admin passes member gate",
			claims:   &Claims{Email: "admin@example.com"},
			required: model.RoleMember,
			setupMock: func(m *MockUserLookup) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{Role: model.RoleAdmin}, nil)
			},
		},
		{
			name:     "unknown user is forbidden",
			claims:   &Claims{Email: "ghost@example.com"},
			required: model.RoleAdmin,
			setupMock: func(m *MockUserLookup) {
				m.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrNotFound)
			},
			wantErr: apperrors.ErrForbidden,
		},
		{
			name:      "missing claims are forbidden",
			claims:    nil,
			required:  model.RoleAdmin,
			setupMock: func(m *MockUserLookup) {},
			wantErr:   apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserLookup)
			tt.setupMock(users)

			err := NewAuthority(users, nil).Authorize(context.Background(), tt.claims, tt.required)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthority_AuthorizeStorageError(t *testing.T) {
	users := new(MockUserLookup)
	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, errors.New("db down"))

	err := NewAuthority(users, nil).Authorize(context.Background(), &Claims{Email: "admin@example.com"}, model.RoleAdmin)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthority_MatchIdentity(t *testing.T) {
	a := NewAuthority(new(MockUserLookup), nil)
	claims := &Claims{Email: "user@example.com"}

	assert.NoError(t, a.MatchIdentity(claims, "user@example.com"))
	assert.ErrorIs(t, a.MatchIdentity(claims, "other@example.com"), apperrors.ErrForbidden)
	assert.ErrorIs(t, a.MatchIdentity(claims, ""), apperrors.ErrForbidden)
	assert.ErrorIs(t, a.MatchIdentity(nil, "user@example.com"), apperrors.ErrForbidden)
}

func TestGuardPipeline(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	users := new(MockUserLookup)
	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{Role: model.RoleAdmin}, nil)
	users.On("FindByEmail", mock.Anything, "member@example.com").Return(&model.User{Role: model.RoleMember}, nil)
	authority := NewAuthority(users, nil)

	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/admin", ok, RequireToken(tokens, nil, nil), RequireRole(authority, model.RoleAdmin))
	e.GET("/self/:email", ok, RequireToken(tokens, nil, nil), RequireSelf(authority, "email"))

	sign := func(email string) string {
		raw, err := tokens.Sign(Claims{Email: email})
		require.NoError(t, err)
		return "Bearer " + raw
	}

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
	}{
		{"admin route as admin", "/admin", sign("admin@example.com"), http.StatusNoContent},
		{"admin route as member", "/admin", sign("member@example.com"), http.StatusForbidden},
		{"admin route without token", "/admin", "", http.StatusUnauthorized},
		{"self route own email", "/self/member@example.com", sign("member@example.com"), http.StatusNoContent},
		{"self route escaped email", "/self/member%40example.com", sign("member@example.com"), http.StatusNoContent},
		{"self route other email", "/self/admin@example.com", sign("member@example.com"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
