package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/zadonuts/donutdex/pkg/defaults"
	"github.com/zadonuts/donutdex/pkg/logging"
)

const (
	name           = "donutdex"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/zadonuts/donutdex/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flags shared by every command that writes a result document.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   "table",
		Usage:   "Output format (json, yaml, table)",
	}
)

// Global flags, available to every subcommand.
var (
	dbFlag = &cli.StringFlag{
		Name:    "db",
		Value:   defaults.DatabasePath,
		Usage:   "Database DSN: a sqlite file path or a postgres:// URL",
		Sources: cli.EnvVars("DONUTDEX_DB"),
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		EnableShellCompletion: true,
		Usage:                 "Match donut recipes against your berry inventory",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: fmt.Sprintf(`donutdex - donut recipe matching over a berry inventory

Version: %s
Commit:  %s
Built:   %s

Searches the donut recipe catalog for recipes you can cook with the
berries on hand, filtered by inclusive flavor and stat ranges, and
deducts berries when you cook. State lives in a local sqlite file by
default; point --db at a postgres:// URL to share one inventory.`, version, commit, date),
		Flags: []cli.Flag{
			dbFlag,
			logLevelFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			initLogger(cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			searchCmd(),
			cookCmd(),
			inventoryCmd(),
			dbCmd(),
		},
		ShellComplete: commandLister,
	}
}

// Execute runs the CLI. It is called by main.main() and exits the
// process with a non-zero status after printing any failure.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger configures slog after flag parsing so --log-level takes
// effect before any command executes.
func initLogger(logLevel string) {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)
}
