package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTokenPair(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pair := NewTokenPair("access", "refresh", issuedAt, 15)

	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
	assert.Equal(t, issuedAt.Add(15*60*time.Second), pair.ExpiresAt)
}

func TestTokenPair_IsExpired(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pair := NewTokenPair("a", "r", issuedAt, 10)

	t.Run("Success_NotExpiredBeforeDeadline", func(t *testing.T) {
		assert.False(t, pair.IsExpired(issuedAt.Add(9*time.Minute), 0))
	})

	t.Run("Success_ExpiredAtDeadline", func(t *testing.T) {
		assert.True(t, pair.IsExpired(pair.ExpiresAt, 0))
		assert.True(t, pair.IsExpired(pair.ExpiresAt.Add(time.Second), 0))
	})

	t.Run("Success_LeewayMovesDeadlineEarlier", func(t *testing.T) {
		now := pair.ExpiresAt.Add(-30 * time.Second)
		assert.False(t, pair.IsExpired(now, 0))
		assert.True(t, pair.IsExpired(now, time.Minute))
	})
}

func TestSession_IsAuthenticated(t *testing.T) {
	pair := NewTokenPair("a", "r", time.Now(), 10)
	user := &UserProfile{UserName: "alice"}

	assert.False(t, Session{}.IsAuthenticated())
	assert.False(t, Session{User: user}.IsAuthenticated())
	assert.False(t, Session{Tokens: &pair}.IsAuthenticated())
	assert.True(t, Session{User: user, Tokens: &pair}.IsAuthenticated())
}

func TestGrant_TokenPair(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	grant := &Grant{AccessToken: "a", RefreshToken: "r", AccessTokenLifetimeMinutes: 20}

	pair := grant.TokenPair(issuedAt)

	assert.Equal(t, issuedAt.Add(20*time.Minute), pair.ExpiresAt)
}
