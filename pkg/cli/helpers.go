package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/inventory"
	"github.com/zadonuts/donutdex/pkg/matcher"
	"github.com/zadonuts/donutdex/pkg/serializer"
	"github.com/zadonuts/donutdex/pkg/storage"
)

// parseOutputFormat reads the format flag and rejects values the
// serializer does not support.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", outFormat)
	}
	return outFormat, nil
}

// commandLister prints the visible subcommand names, one per line, for
// shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Println(c.Name)
	}
}

// engine bundles the storage-backed matching stack a command runs
// against. Close releases the database handle.
type engine struct {
	db    *storage.DB
	cat   *catalog.Catalog
	store *inventory.Store
	match *matcher.Matcher
}

func (e *engine) Close() {
	if err := e.db.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

// openEngine connects to the database named by the --db flag and builds
// the matching stack on top of it: the stored catalog (seeded from the
// embedded recipes on first run), the inventory store, and the matcher.
func openEngine(ctx context.Context, cmd *cli.Command) (*engine, error) {
	dsn := cmd.String("db")

	db, err := storage.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", dsn, err)
	}

	cat, err := db.EnsureCatalog(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	store, err := inventory.NewStore(ctx, db, cat.BerryNames())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to build inventory store: %w", err)
	}

	m, err := matcher.New(cat, store)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &engine{db: db, cat: cat, store: store, match: m}, nil
}
