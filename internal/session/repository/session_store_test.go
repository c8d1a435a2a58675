package repository

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
	sessionService "github.com/allisson/fxwallet/internal/session/service"
)

var storeNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newTestSessionStore(t *testing.T) (*SessionStore, *MemoryKVRepository, *clockwork.FakeClock) {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	sealer, err := sessionService.NewAEADSealer(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)

	kv := NewMemoryKVRepository()
	clock := clockwork.NewFakeClockAt(storeNow)
	return NewSessionStore(kv, sealer, "default", clock, time.Minute), kv, clock
}

func testTokens() sessionDomain.TokenPair {
	return sessionDomain.NewTokenPair("access-1", "refresh-1", storeNow, 30)
}

func testUser() sessionDomain.UserProfile {
	return sessionDomain.UserProfile{
		UserID:           "7c1f",
		UserName:         "jdoe",
		OrganizationID:   "42",
		OrganizationName: "Acme Ltd",
		BaseCurrencyCode: "CAD",
		IsEnabled:        true,
	}
}

func TestSessionStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store, kv, _ := newTestSessionStore(t)

	require.NoError(t, store.Save(ctx, testTokens(), testUser()))

	session, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, session.IsAuthenticated())
	assert.Equal(t, "access-1", session.Tokens.AccessToken)
	assert.Equal(t, "refresh-1", session.Tokens.RefreshToken)
	assert.True(t, storeNow.Add(30*time.Minute).Equal(session.Tokens.ExpiresAt))
	assert.Equal(t, testUser(), *session.User)

	sealed, err := kv.Get(ctx, "default", KeyAccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, "access-1", sealed)
}

func TestSessionStore_Absent(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_EmptyStore", func(t *testing.T) {
		store, _, _ := newTestSessionStore(t)

		session, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, session.IsAuthenticated())
		assert.Nil(t, session.Tokens)
		assert.Nil(t, session.User)
	})

	t.Run("Success_PartialTokensReadAsAbsent", func(t *testing.T) {
		store, kv, _ := newTestSessionStore(t)
		require.NoError(t, store.SetTokens(ctx, testTokens()))
		require.NoError(t, kv.SetMany(ctx, "default", map[string]string{KeyExpiresAt: ""}))

		tokens, err := store.GetTokens(ctx)
		require.NoError(t, err)
		assert.Nil(t, tokens)
	})

	t.Run("Success_TokensWithoutUserIsUnauthenticated", func(t *testing.T) {
		store, _, _ := newTestSessionStore(t)
		require.NoError(t, store.SetTokens(ctx, testTokens()))

		session, err := store.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, session.Tokens)
		assert.False(t, session.IsAuthenticated())
	})
}

func TestSessionStore_SetUser(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestSessionStore(t)

	require.NoError(t, store.SetUser(ctx, testUser()))

	user, err := store.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.UserName)
}

func TestSessionStore_Clear(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestSessionStore(t)
	require.NoError(t, store.Save(ctx, testTokens(), testUser()))

	require.NoError(t, store.Clear(ctx))

	session, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, session.Tokens)
	assert.Nil(t, session.User)
}

func TestSessionStore_SwappedTokensFailToOpen(t *testing.T) {
	ctx := context.Background()
	store, kv, _ := newTestSessionStore(t)
	require.NoError(t, store.Save(ctx, testTokens(), testUser()))

	access, err := kv.Get(ctx, "default", KeyAccessToken)
	require.NoError(t, err)
	refresh, err := kv.Get(ctx, "default", KeyRefreshToken)
	require.NoError(t, err)
	require.NoError(t, kv.SetMany(ctx, "default", map[string]string{
		KeyAccessToken:  refresh,
		KeyRefreshToken: access,
	}))

	_, err = store.GetTokens(ctx)
	assert.Error(t, err)
}

func TestSessionStore_IsTokenExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AbsentIsExpired", func(t *testing.T) {
		store, _, _ := newTestSessionStore(t)
		assert.True(t, store.IsTokenExpired(ctx))
	})

	t.Run("Success_FreshIsNotExpired", func(t *testing.T) {
		store, _, _ := newTestSessionStore(t)
		require.NoError(t, store.SetTokens(ctx, testTokens()))
		assert.False(t, store.IsTokenExpired(ctx))
	})

	t.Run("Success_ExpiredWithinLeeway", func(t *testing.T) {
		store, _, clock := newTestSessionStore(t)
		require.NoError(t, store.SetTokens(ctx, testTokens()))

		clock.Advance(28*time.Minute + 59*time.Second)
		assert.False(t, store.IsTokenExpired(ctx))

		clock.Advance(time.Second)
		assert.True(t, store.IsTokenExpired(ctx))
	})
}
