// Package testutil provides helpers shared by repository and command tests.
//
//	db, mock := testutil.NewMockDB(t)
//	mock.ExpectQuery(`SELECT entry_value FROM session_entries`).WillReturnRows(...)
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// NewMockDB returns a sqlmock-backed *sql.DB that is closed when the test ends.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, mock
}

// AssertExpectations fails the test when a queued sqlmock expectation was not met.
func AssertExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	require.NoError(t, mock.ExpectationsWereMet(), "unmet sqlmock expectations")
}
