// Package service provides the sealing services that protect session tokens at rest.
package service

import (
	"context"
)

// TokenSealer encrypts token values before they reach the session store.
// The aad binds a sealed value to its storage key so values cannot be swapped.
type TokenSealer interface {
	Seal(ctx context.Context, plaintext, aad string) (string, error)
	Open(ctx context.Context, sealed, aad string) (string, error)
	Close() error
}
