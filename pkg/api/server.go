package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zadonuts/donutdex/pkg/defaults"
	"github.com/zadonuts/donutdex/pkg/inventory"
	"github.com/zadonuts/donutdex/pkg/logging"
	"github.com/zadonuts/donutdex/pkg/matcher"
	"github.com/zadonuts/donutdex/pkg/server"
	"github.com/zadonuts/donutdex/pkg/storage"
)

const (
	name           = "donutdexd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/zadonuts/donutdex/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown. It opens the
// configured database, seeds the catalog on first run, builds the matching
// engine, and wires it into the HTTP surface. Returns an error if the
// server fails to start or encounters a fatal error.
func Serve(ctx context.Context) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	dsn := dsnFromEnv()

	db, err := storage.Open(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database %q: %w", dsn, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}()

	cat, err := db.EnsureCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	store, err := inventory.NewStore(ctx, db, cat.BerryNames())
	if err != nil {
		return fmt.Errorf("failed to build inventory store: %w", err)
	}

	m, err := matcher.New(cat, store)
	if err != nil {
		return err
	}

	// Create and run server
	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithCatalog(cat),
		server.WithInventory(store),
		server.WithMatcher(m),
		server.WithReadyCheck(db.Ping),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// dsnFromEnv returns the DONUTDEX_DB value, falling back to the
// default sqlite file in the working directory.
func dsnFromEnv() string {
	if dsn := os.Getenv("DONUTDEX_DB"); dsn != "" {
		return dsn
	}
	return defaults.DatabasePath
}
