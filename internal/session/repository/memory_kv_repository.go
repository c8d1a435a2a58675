package repository

import (
	"context"
	"maps"
	"sync"

	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// MemoryKVRepository keeps session entries in process memory.
type MemoryKVRepository struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewMemoryKVRepository creates an empty in-memory store.
func NewMemoryKVRepository() *MemoryKVRepository {
	return &MemoryKVRepository{
		entries: make(map[string]map[string]string),
	}
}

// Get returns the value for key in scope.
func (r *MemoryKVRepository) Get(_ context.Context, scope, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[scope][key]
	if !ok {
		return "", sessionDomain.ErrKeyNotFound
	}
	return value, nil
}

// SetMany writes all entries under a single lock.
func (r *MemoryKVRepository) SetMany(_ context.Context, scope string, entries map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries[scope] == nil {
		r.entries[scope] = make(map[string]string, len(entries))
	}
	maps.Copy(r.entries[scope], entries)
	return nil
}

// Clear removes the scope.
func (r *MemoryKVRepository) Clear(_ context.Context, scope string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, scope)
	return nil
}
