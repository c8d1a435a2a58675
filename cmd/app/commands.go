package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fxwallet/internal/app"
	"github.com/allisson/fxwallet/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getSessionCommands()...)
	cmds = append(cmds, getWalletCommands()...)
	return cmds
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
		Validator: func(format string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format %q (valid options: text, json)", format)
			}
			return nil
		},
	}
}

// withRestoredSession builds a container, restores the persisted session and runs fn.
func withRestoredSession(ctx context.Context, fn func(container *app.Container) error) error {
	container := app.NewContainer(ctx, config.Load())
	defer func() { _ = container.Shutdown(context.Background()) }()

	sessions, err := container.SessionUseCase()
	if err != nil {
		return err
	}
	if _, err := sessions.Restore(ctx); err != nil {
		container.Logger().Warn("failed to restore session", "error", err)
	}

	return fn(container)
}
