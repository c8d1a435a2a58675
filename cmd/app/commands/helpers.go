// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"

	"github.com/allisson/fxwallet/internal/app"
	sessionUseCase "github.com/allisson/fxwallet/internal/session/usecase"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// prompt writes label and reads one trimmed line. It reads byte by byte so later
// prompts on the same reader see the remaining input.
func (t IOTuple) prompt(label string) (string, error) {
	_, _ = fmt.Fprint(t.Writer, label)

	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := t.Reader.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			line.WriteByte(buf[0])
		}
		if err == io.EOF {
			if line.Len() == 0 {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
	}
	return strings.TrimSpace(line.String()), nil
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func (t IOTuple) confirm(question string) (bool, error) {
	answer, err := t.prompt(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// writeJSON writes v indented for machine consumption.
func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}

// restoreSession loads the persisted session. A store that cannot be read is logged
// and treated as logged out.
func restoreSession(ctx context.Context, sessions sessionUseCase.SessionUseCase, logger *slog.Logger) {
	if _, err := sessions.Restore(ctx); err != nil {
		logger.Warn("failed to restore session", slog.Any("error", err))
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}
