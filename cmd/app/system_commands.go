package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fxwallet/cmd/app/commands"
	"github.com/allisson/fxwallet/internal/app"
	"github.com/allisson/fxwallet/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "serve",
			Usage: "Start the local presentation API and the metrics server",
			Action: func(ctx context.Context, _ *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Create or upgrade the session table of the postgres and mysql session stores",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "path",
					Value:   "migrations",
					Usage:   "Directory holding the postgresql and mysql migration folders",
					Sources: cli.EnvVars("MIGRATIONS_PATH"),
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				driver := cfg.DBDriver()
				if driver == "" {
					return fmt.Errorf("session store %q needs no migration", cfg.SessionStore)
				}
				return commands.RunMigrations(app.NewLogger(cfg.LogLevel), cmd.String("path"), driver, cfg.DBConnectionString)
			},
		},
	}
}
