package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// FileKVRepository keeps session entries in a JSON file readable only by the owner.
// The file is re-read on every call so separate CLI invocations observe each other.
type FileKVRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileKVRepository creates a store backed by the file at path.
func NewFileKVRepository(path string) *FileKVRepository {
	return &FileKVRepository{path: path}
}

// Get returns the value for key in scope.
func (r *FileKVRepository) Get(_ context.Context, scope, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return "", err
	}

	value, ok := data[scope][key]
	if !ok {
		return "", sessionDomain.ErrKeyNotFound
	}
	return value, nil
}

// SetMany merges entries into scope and rewrites the file atomically.
func (r *FileKVRepository) SetMany(_ context.Context, scope string, entries map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return err
	}

	if data[scope] == nil {
		data[scope] = make(map[string]string, len(entries))
	}
	maps.Copy(data[scope], entries)

	return r.save(data)
}

// Clear removes scope and rewrites the file.
func (r *FileKVRepository) Clear(_ context.Context, scope string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := data[scope]; !ok {
		return nil
	}

	delete(data, scope)
	return r.save(data)
}

func (r *FileKVRepository) load() (map[string]map[string]string, error) {
	data := make(map[string]map[string]string)

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(raw) == 0 {
		return data, nil
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}
	return data, nil
}

func (r *FileKVRepository) save(data map[string]map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set session file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
