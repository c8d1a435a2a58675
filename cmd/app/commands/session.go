package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
	sessionUseCase "github.com/allisson/fxwallet/internal/session/usecase"
)

// sessionOutput is the JSON form of the session for the login and status commands.
type sessionOutput struct {
	Authenticated    bool       `json:"authenticated"`
	UserName         string     `json:"user_name,omitempty"`
	OrganizationName string     `json:"organization_name,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

func toSessionOutput(session sessionDomain.Session) sessionOutput {
	if !session.IsAuthenticated() {
		return sessionOutput{}
	}
	expiresAt := session.Tokens.ExpiresAt
	return sessionOutput{
		Authenticated:    true,
		UserName:         session.User.UserName,
		OrganizationName: session.User.OrganizationName,
		ExpiresAt:        &expiresAt,
	}
}

// RunLogin authenticates and persists the session. An empty password is read from
// the command input so it stays out of the shell history.
func RunLogin(
	ctx context.Context,
	sessions sessionUseCase.SessionUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
	username string,
	password string,
	format string,
) error {
	if password == "" {
		var err error
		if password, err = ioTuple.prompt("Password: "); err != nil {
			return err
		}
	}

	session, err := sessions.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	logger.Info("logged in", slog.String("user_id", session.User.UserID))

	if format == "json" {
		return writeJSON(ioTuple.Writer, toSessionOutput(session))
	}
	_, _ = fmt.Fprintf(ioTuple.Writer, "Logged in as %s (%s)\n", session.User.UserName, session.User.OrganizationName)
	_, _ = fmt.Fprintf(ioTuple.Writer, "Session expires at %s\n", session.Tokens.ExpiresAt.Format(time.RFC3339))
	return nil
}

// RunLogout ends the session and clears persisted tokens.
func RunLogout(ctx context.Context, sessions sessionUseCase.SessionUseCase, w io.Writer, format string) error {
	sessions.Logout(ctx)

	if format == "json" {
		return writeJSON(w, sessionOutput{})
	}
	_, _ = fmt.Fprintln(w, "Logged out")
	return nil
}

// RunStatus prints the restored session.
func RunStatus(sessions sessionUseCase.SessionUseCase, w io.Writer, format string) error {
	output := toSessionOutput(sessions.Current())

	if format == "json" {
		return writeJSON(w, output)
	}
	if !output.Authenticated {
		_, _ = fmt.Fprintln(w, "Not logged in")
		return nil
	}
	_, _ = fmt.Fprintf(w, "Logged in as %s (%s)\n", output.UserName, output.OrganizationName)
	_, _ = fmt.Fprintf(w, "Session expires at %s\n", output.ExpiresAt.Format(time.RFC3339))
	return nil
}
