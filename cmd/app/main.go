// Command fxwallet is the wallet client: session management, balances, FX deals and
// instant payments from the terminal, plus a local presentation API.
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fxwallet/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:     "fxwallet",
		Usage:    "Wallet client for FX deals and instant payments",
		Version:  version,
		Commands: getCommands(version),
	}
}

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		app.NewLogger(os.Getenv("LOG_LEVEL")).Error("command failed", "error", err)
		os.Exit(1)
	}
}
