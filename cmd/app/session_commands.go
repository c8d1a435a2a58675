package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fxwallet/cmd/app/commands"
	"github.com/allisson/fxwallet/internal/app"
)

func getSessionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "login",
			Usage: "Authenticate and persist the session",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Login id",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Sources: cli.EnvVars("FXWALLET_PASSWORD"),
					Usage:   "Password (prompted when omitted)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRestoredSession(ctx, func(container *app.Container) error {
					sessions, err := container.SessionUseCase()
					if err != nil {
						return err
					}
					return commands.RunLogin(
						ctx,
						sessions,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("username"),
						cmd.String("password"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "logout",
			Usage: "End the session and clear persisted tokens",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRestoredSession(ctx, func(container *app.Container) error {
					sessions, err := container.SessionUseCase()
					if err != nil {
						return err
					}
					return commands.RunLogout(ctx, sessions, commands.DefaultIO().Writer, cmd.String("format"))
				})
			},
		},
		{
			Name:  "status",
			Usage: "Show the current session",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRestoredSession(ctx, func(container *app.Container) error {
					sessions, err := container.SessionUseCase()
					if err != nil {
						return err
					}
					return commands.RunStatus(sessions, commands.DefaultIO().Writer, cmd.String("format"))
				})
			},
		},
	}
}
