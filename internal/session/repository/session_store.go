package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonboulle/clockwork"

	apperrors "github.com/allisson/fxwallet/internal/errors"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
	sessionService "github.com/allisson/fxwallet/internal/session/service"
)

// Storage keys of a persisted session.
const (
	KeyAccessToken  = "auth_access_token"
	KeyRefreshToken = "auth_refresh_token"
	KeyUserData     = "auth_user_data"
	KeyExpiresAt    = "auth_expires_at"
)

// SessionStore is the typed persistence gateway over a KeyValueStore. Tokens are
// sealed with their storage key as additional data. A partially written session
// reads back as absent.
type SessionStore struct {
	kv     KeyValueStore
	sealer sessionService.TokenSealer
	scope  string
	clock  clockwork.Clock
	leeway time.Duration
}

// NewSessionStore creates a SessionStore for one profile scope.
func NewSessionStore(
	kv KeyValueStore,
	sealer sessionService.TokenSealer,
	scope string,
	clock clockwork.Clock,
	leeway time.Duration,
) *SessionStore {
	return &SessionStore{
		kv:     kv,
		sealer: sealer,
		scope:  scope,
		clock:  clock,
		leeway: leeway,
	}
}

// GetTokens returns the persisted token pair, or nil when none is stored.
func (s *SessionStore) GetTokens(ctx context.Context) (*sessionDomain.TokenPair, error) {
	access, err := s.getSealed(ctx, KeyAccessToken)
	if err != nil || access == "" {
		return nil, err
	}
	refresh, err := s.getSealed(ctx, KeyRefreshToken)
	if err != nil || refresh == "" {
		return nil, err
	}
	rawExpiresAt, err := s.get(ctx, KeyExpiresAt)
	if err != nil || rawExpiresAt == "" {
		return nil, err
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, rawExpiresAt)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse token expiry")
	}

	return &sessionDomain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt.UTC(),
	}, nil
}

// SetTokens persists the token pair.
func (s *SessionStore) SetTokens(ctx context.Context, tokens sessionDomain.TokenPair) error {
	entries, err := s.tokenEntries(ctx, tokens)
	if err != nil {
		return err
	}
	return s.kv.SetMany(ctx, s.scope, entries)
}

// GetUser returns the persisted user profile, or nil when none is stored.
func (s *SessionStore) GetUser(ctx context.Context) (*sessionDomain.UserProfile, error) {
	raw, err := s.get(ctx, KeyUserData)
	if err != nil || raw == "" {
		return nil, err
	}

	var user sessionDomain.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode user data")
	}
	return &user, nil
}

// SetUser persists the user profile.
func (s *SessionStore) SetUser(ctx context.Context, user sessionDomain.UserProfile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode user data")
	}
	return s.kv.SetMany(ctx, s.scope, map[string]string{KeyUserData: string(raw)})
}

// Save persists tokens and user in one write.
func (s *SessionStore) Save(ctx context.Context, tokens sessionDomain.TokenPair, user sessionDomain.UserProfile) error {
	entries, err := s.tokenEntries(ctx, tokens)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode user data")
	}
	entries[KeyUserData] = string(raw)

	return s.kv.SetMany(ctx, s.scope, entries)
}

// Load reads the whole session. Missing parts are nil.
func (s *SessionStore) Load(ctx context.Context) (sessionDomain.Session, error) {
	tokens, err := s.GetTokens(ctx)
	if err != nil {
		return sessionDomain.Session{}, err
	}
	user, err := s.GetUser(ctx)
	if err != nil {
		return sessionDomain.Session{}, err
	}
	return sessionDomain.Session{User: user, Tokens: tokens}, nil
}

// Clear removes every persisted session entry.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.kv.Clear(ctx, s.scope)
}

// IsTokenExpired reports whether the stored token pair must be refreshed. An absent or
// unreadable pair counts as expired.
func (s *SessionStore) IsTokenExpired(ctx context.Context) bool {
	tokens, err := s.GetTokens(ctx)
	if err != nil || tokens == nil {
		return true
	}
	return tokens.IsExpired(s.clock.Now(), s.leeway)
}

func (s *SessionStore) tokenEntries(ctx context.Context, tokens sessionDomain.TokenPair) (map[string]string, error) {
	access, err := s.sealer.Seal(ctx, tokens.AccessToken, KeyAccessToken)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to seal access token")
	}
	refresh, err := s.sealer.Seal(ctx, tokens.RefreshToken, KeyRefreshToken)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to seal refresh token")
	}

	return map[string]string{
		KeyAccessToken:  access,
		KeyRefreshToken: refresh,
		KeyExpiresAt:    tokens.ExpiresAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

// get returns "" for a missing key.
func (s *SessionStore) get(ctx context.Context, key string) (string, error) {
	value, err := s.kv.Get(ctx, s.scope, key)
	if apperrors.Is(err, sessionDomain.ErrKeyNotFound) {
		return "", nil
	}
	return value, err
}

func (s *SessionStore) getSealed(ctx context.Context, key string) (string, error) {
	sealed, err := s.get(ctx, key)
	if err != nil || sealed == "" {
		return "", err
	}

	value, err := s.sealer.Open(ctx, sealed, key)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to open "+key)
	}
	return value, nil
}
