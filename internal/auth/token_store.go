package auth

import (
	"context"
	"strings"
	"time"
)

const revokedKeyPrefix = "revoked:email:"

// Revoker invalidates every token already issued to an email.
type Revoker interface {
	Revoke(ctx context.Context, email string) error
}

// KV is the slice of the cache client TokenStore needs. *cache.Client satisfies it.
type KV interface {
	Get(ctx context.Context, key string) []byte
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// TokenStore keeps token revocations in Redis. A revocation lives as long as the longest
// token it can affect.
type TokenStore struct {
	cache KV
	ttl   time.Duration
	now   func() time.Time
}

var _ Revoker = (*TokenStore)(nil)

// NewTokenStore creates a new token store. ttl should be the token lifetime.
func NewTokenStore(cache KV, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenStore{cache: cache, ttl: ttl, now: time.Now}
}

// Revoke rejects tokens for email issued up to now.
func (s *TokenStore) Revoke(ctx context.Context, email string) error {
	at := s.now().UTC()
	s.cache.Set(ctx, revocationKey(email), []byte(at.Format(time.RFC3339Nano)), s.ttl)
	return nil
}

// IsRevoked reports whether claims were issued at or before a revocation of their email.
// Without Redis nothing is revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, claims *Claims) bool {
	if s == nil || claims == nil || claims.IssuedAt == nil {
		return false
	}
	data := s.cache.Get(ctx, revocationKey(claims.Email))
	if data == nil {
		return false
	}
	at, err := time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return false
	}
	return !claims.IssuedAt.Time.After(at)
}

func revocationKey(email string) string {
	return revokedKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}
