// Package repository provides the persistence gateway for session data: raw scoped
// key/value backends and the typed session store built on top of them.
package repository

import (
	"context"
)

// KeyValueStore is a scoped key/value backend with no embedded logic.
type KeyValueStore interface {
	// Get returns the value for key in scope, or ErrKeyNotFound.
	Get(ctx context.Context, scope, key string) (string, error)

	// SetMany writes all entries of scope atomically.
	SetMany(ctx context.Context, scope string, entries map[string]string) error

	// Clear removes every key of scope. Clearing an empty scope is not an error.
	Clear(ctx context.Context, scope string) error
}
