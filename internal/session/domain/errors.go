package domain

import (
	"github.com/allisson/fxwallet/internal/errors"
)

// Session errors.
var (
	// ErrInvalidCredentials indicates the remote authority rejected the login.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrUnreachable indicates the remote authority could not be reached to log in.
	ErrUnreachable = errors.Wrap(errors.ErrUnavailable, "authentication server unreachable")

	// ErrNoSession indicates an authenticated operation was attempted without a session.
	ErrNoSession = errors.Wrap(errors.ErrUnauthorized, "no active session")

	// ErrSessionEnded indicates a refresh failed and the session was logged out.
	ErrSessionEnded = errors.Wrap(errors.ErrUnauthorized, "session ended")

	// ErrKeyNotFound indicates a key is absent from the session store.
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "session key not found")
)
