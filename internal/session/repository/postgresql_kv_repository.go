package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/fxwallet/internal/database"
	apperrors "github.com/allisson/fxwallet/internal/errors"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// PostgreSQLKVRepository persists session entries in the session_entries table.
type PostgreSQLKVRepository struct {
	db        *sql.DB
	txManager database.TxManager
}

// NewPostgreSQLKVRepository creates a new PostgreSQLKVRepository.
func NewPostgreSQLKVRepository(db *sql.DB, txManager database.TxManager) *PostgreSQLKVRepository {
	return &PostgreSQLKVRepository{
		db:        db,
		txManager: txManager,
	}
}

// Get retrieves a single entry.
func (r *PostgreSQLKVRepository) Get(ctx context.Context, scope, key string) (string, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT entry_value FROM session_entries WHERE scope = $1 AND entry_key = $2`

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
func (r *PostgreSQLKVRepository) SetMany(ctx context.Context, scope string, entries map[string]string) error {
	query := `INSERT INTO session_entries (scope, entry_key, entry_value, updated_at)
			  VALUES ($1, $2, $3, NOW())
			  ON CONFLICT (scope, entry_key)
			  DO UPDATE SET entry_value = EXCLUDED.entry_value, updated_at = NOW()`

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
func (r *PostgreSQLKVRepository) Clear(ctx context.Context, scope string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM session_entries WHERE scope = $1`

	if _, err := querier.ExecContext(ctx, query, scope); err != nil {
		return apperrors.Wrap(err, "failed to clear session entries")
	}
	return nil
}
