package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(ctx context.Context, key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

func (m *memKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func claimsIssuedAt(email string, at time.Time) *Claims {
	return &Claims{Email: email, RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(at)}}
}

func TestTokenStore_IsRevoked(t *testing.T) {
	ctx := context.Background()
	revokedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewTokenStore(newMemKV(), time.Hour)
	store.now = fixedClock(revokedAt)
	require.NoError(t, store.Revoke(ctx, "gone@example.com"))

	assert.True(t, store.IsRevoked(ctx, claimsIssuedAt("gone@example.com", revokedAt.Add(-time.Minute))))
	assert.True(t, store.IsRevoked(ctx, claimsIssuedAt("gone@example.com", revokedAt)))
	assert.False(t, store.IsRevoked(ctx, claimsIssuedAt("gone@example.com", revokedAt.Add(time.Second))))
	assert.False(t, store.IsRevoked(ctx, claimsIssuedAt("other@example.com", revokedAt.Add(-time.Minute))))
}

func TestTokenStore_SameSecondReissueIsValid(t *testing.T) {
	ctx := context.Background()
	revokedAt := time.Date(2026, 3, 1, 12, 0, 0, 400*int(time.Millisecond), time.UTC)
	store := NewTokenStore(newMemKV(), time.Hour)
	store.now = fixedClock(revokedAt)
	require.NoError(t, store.Revoke(ctx, "gone@example.com"))

	tokens := newTokenService("test-secret", time.Hour, fixedClock(revokedAt.Add(300*time.Millisecond)))
	raw, err := tokens.Sign(Claims{Email: "gone@example.com"})
	require.NoError(t, err)
	claims, err := tokens.Verify(raw)
	require.NoError(t, err)

	assert.False(t, store.IsRevoked(ctx, claims))
	assert.True(t, store.IsRevoked(ctx, claimsIssuedAt("gone@example.com", revokedAt.Add(-100*time.Millisecond))))
}

func TestTokenStore_MatchesEmailCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	revokedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewTokenStore(newMemKV(), time.Hour)
	store.now = fixedClock(revokedAt)
	require.NoError(t, store.Revoke(ctx, "gone@example.com"))

	assert.True(t, store.IsRevoked(ctx, claimsIssuedAt(" Gone@Example.COM", revokedAt.Add(-time.Minute))))
}

func TestTokenStore_NilIsNeverRevoked(t *testing.T) {
	var store *TokenStore
	assert.False(t, store.IsRevoked(context.Background(), claimsIssuedAt("a@example.com", time.Now())))
}

func TestTokenStore_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTokenTTL, NewTokenStore(newMemKV(), 0).ttl)
}
