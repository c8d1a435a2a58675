// Package usecase implements the token lifecycle of the wallet session.
package usecase

import (
	"context"

	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// AuthGateway performs the remote token exchanges.
type AuthGateway interface {
	// Authenticate exchanges credentials for a grant that includes the user profile.
	Authenticate(ctx context.Context, credentials sessionDomain.Credentials) (*sessionDomain.Grant, error)

	// Refresh exchanges the current pair for a new one.
	Refresh(ctx context.Context, tokens sessionDomain.TokenPair) (*sessionDomain.Grant, error)
}

// SessionStore persists the session mirror.
type SessionStore interface {
	Load(ctx context.Context) (sessionDomain.Session, error)
	Save(ctx context.Context, tokens sessionDomain.TokenPair, user sessionDomain.UserProfile) error
	SetTokens(ctx context.Context, tokens sessionDomain.TokenPair) error
	Clear(ctx context.Context) error

	// IsTokenExpired reports whether the persisted pair is due for a refresh.
	IsTokenExpired(ctx context.Context) bool
}

// SessionUseCase owns the token pair and its expiry.
type SessionUseCase interface {
	// Login authenticates, persists the new session and starts the expiry poll.
	// Returns ErrInvalidCredentials on a domain problem and ErrUnreachable on a
	// transport failure.
	Login(ctx context.Context, username, password string) (sessionDomain.Session, error)

	// Logout stops the poll, clears persisted data and publishes an empty session.
	Logout(ctx context.Context)

	// Refresh replaces the token pair. Concurrent calls share one network call.
	// Any refresh failure ends the session and returns false. It also returns false
	// when ctx is done first; the shared refresh then continues and the session is
	// left to its outcome, so callers check ctx.Err to tell the two apart.
	Refresh(ctx context.Context) bool

	// Restore loads the persisted session, refreshing once if it is expired.
	Restore(ctx context.Context) (sessionDomain.Session, error)

	// Ready reports whether Restore has completed.
	Ready() bool

	// Current returns a snapshot of the session.
	Current() sessionDomain.Session

	// AccessToken returns a bearer token that is not expired.
	AccessToken(ctx context.Context) (string, error)

	// Subscribe registers fn to receive every published session. The returned
	// function removes the subscription.
	Subscribe(fn func(sessionDomain.Session)) func()

	// Close stops background work and waits for it.
	Close()
}
