package service

import (
	"context"
	"fmt"

	"foodparadise/internal/auth"
	apperrors "foodparadise/internal/errors"
)

// AuthService issues access tokens.
type AuthService interface {
	IssueToken(ctx context.Context, email, name string) (string, error)
}

type authService struct {
	tokens *auth.TokenService
}

// NewAuthService creates a new token issuing service.
func NewAuthService(tokens *auth.TokenService) AuthService {
	return &authService{tokens: tokens}
}

// IssueToken signs a token carrying the caller's email. Identity proof happens upstream
// (the client's identity provider); the role is never put in the token and is always
// resolved from the user store.
func (s *authService) IssueToken(ctx context.Context, email, name string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("issue token: email is required: %w", apperrors.ErrInvalidInput)
	}
	token, err := s.tokens.Sign(auth.Claims{Email: email, Name: name})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
