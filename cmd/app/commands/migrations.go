package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/fxwallet/internal/database"
)

// migrationDirs maps a session store driver to its migration subdirectory.
var migrationDirs = map[string]string{
	database.DriverPostgres: "postgresql",
	database.DriverMySQL:    "mysql",
}

// RunMigrations brings the session_entries schema of the postgres or mysql session
// store up to date using the files under dir.
func RunMigrations(logger *slog.Logger, dir, driver, connectionString string) error {
	subdir, ok := migrationDirs[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}
	source := "file://" + filepath.ToSlash(filepath.Join(dir, subdir))

	logger.Info("running migrations", slog.String("driver", driver), slog.String("source", source))

	m, err := migrate.New(source, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("session schema already up to date")
	}

	if version, dirty, err := m.Version(); err == nil {
		logger.Info("session schema migrated", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	return nil
}
