package repository

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/allisson/fxwallet/internal/database"
	apperrors "github.com/allisson/fxwallet/internal/errors"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// MySQLKVRepository persists session entries in the session_entries table for MySQL.
type MySQLKVRepository struct {
	db        *sql.DB
	txManager database.TxManager
}

// NewMySQLKVRepository creates a new MySQLKVRepository.
func NewMySQLKVRepository(db *sql.DB, txManager database.TxManager) *MySQLKVRepository {
	return &MySQLKVRepository{
		db:        db,
		txManager: txManager,
	}
}

// Get retrieves a single entry.
func (r *MySQLKVRepository) Get(ctx context.Context, scope, key string) (string, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT entry_value FROM session_entries WHERE scope = ? AND entry_key = ?`

	var value string
	if err := querier.QueryRowContext(ctx, query, scope, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sessionDomain.ErrKeyNotFound
		}
		return "", apperrors.Wrap(err, "failed to get session entry")
	}
	return value, nil
}

// SetMany upserts all entries in one transaction.
func (r *MySQLKVRepository) SetMany(ctx context.Context, scope string, entries map[string]string) error {
	query := `INSERT INTO session_entries (scope, entry_key, entry_value, updated_at)
			  VALUES (?, ?, ?, NOW())
			  ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value), updated_at = NOW()`

	return r.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, r.db)
		for _, key := range sortedKeys(entries) {
			if _, err := querier.ExecContext(ctx, query, scope, key, entries[key]); err != nil {
				return apperrors.Wrap(err, "failed to set session entry")
			}
		}
		return nil
	})
}

// Clear deletes every entry of scope.
func (r *MySQLKVRepository) Clear(ctx context.Context, scope string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM session_entries WHERE scope = ?`

	if _, err := querier.ExecContext(ctx, query, scope); err != nil {
		return apperrors.Wrap(err, "failed to clear session entries")
	}
	return nil
}

// sortedKeys gives upserts a stable order, which keeps lock acquisition deterministic.
func sortedKeys(entries map[string]string) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
