package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/serializer"
	"github.com/zadonuts/donutdex/pkg/storage"
)

func dbCmd() *cli.Command {
	return &cli.Command{
		Name:                  "db",
		EnableShellCompletion: true,
		Usage:                 "Manage the donutdex database",
		Description: `Initialize, restore, and inspect the database behind --db.

The first search against an empty database seeds the embedded catalog
automatically, so init is only needed to load a custom catalog or to
force a reseed.`,
		Commands: []*cli.Command{
			dbInitCmd(),
			dbRestoreCmd(),
			dbStatusCmd(),
		},
	}
}

func dbInitCmd() *cli.Command {
	return &cli.Command{
		Name:                  "init",
		EnableShellCompletion: true,
		Usage:                 "Seed the catalog tables",
		Description: `Load a recipe catalog into the database and seed a zero-quantity
inventory row for every berry it references. Existing berry quantities
are kept.

Without --from the catalog embedded in the binary is loaded. --from
accepts a YAML or JSON file, or an HTTP(S) URL to one, holding recipes
under a top-level "recipes" key.

# Examples

Seed the embedded catalog into a fresh database:
  donutdex db init

Replace an already seeded catalog with a custom one:
  donutdex db init --from recipes.yaml --force

Seed from a published catalog:
  donutdex db init --from https://example.com/recipes.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "Path or HTTP(S) URL of a recipe catalog file (default: embedded catalog)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Replace the catalog even if the database already holds one",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dsn := cmd.String("db")
			db, err := storage.Open(ctx, dsn)
			if err != nil {
				return fmt.Errorf("failed to open database %q: %w", dsn, err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					slog.Warn("failed to close database", "error", err)
				}
			}()

			count, err := db.CountRecipes(ctx)
			if err != nil {
				return err
			}
			if count > 0 && !cmd.Bool("force") {
				return fmt.Errorf("database already holds %d recipes, rerun with --force to replace them", count)
			}

			source := "embedded catalog"
			var recipes []catalog.Recipe
			if from := cmd.String("from"); from != "" {
				source = from
				doc, err := serializer.FromFile[catalog.Document](from)
				if err != nil {
					return fmt.Errorf("failed to load catalog from %q: %w", from, err)
				}
				recipes = doc.Recipes
			} else {
				recipes, err = catalog.EmbeddedRecipes()
				if err != nil {
					return err
				}
			}

			cat, err := catalog.New(recipes)
			if err != nil {
				return fmt.Errorf("catalog from %s is invalid: %w", source, err)
			}

			if err := db.ReplaceCatalog(ctx, storage.RecipeRows(cat)); err != nil {
				return fmt.Errorf("failed to store catalog: %w", err)
			}
			if err := db.EnsureInventoryRows(ctx, cat.BerryNames()); err != nil {
				return fmt.Errorf("failed to seed inventory rows: %w", err)
			}

			slog.Info("catalog initialized",
				"source", source,
				"recipes", cat.Len(),
				"berries", len(cat.BerryNames()))

			fmt.Printf("Catalog initialized from %s: %d recipes, %d berries\n",
				source, cat.Len(), len(cat.BerryNames()))
			return nil
		},
	}
}

func dbRestoreCmd() *cli.Command {
	return &cli.Command{
		Name:                  "restore",
		EnableShellCompletion: true,
		Usage:                 "Replace the database with one extracted from a zip archive",
		Description: `Extract a packaged database from a zip archive over the file behind
--db, replacing catalog and inventory alike. The archive must hold
exactly one .db member.

Only a local sqlite target can be restored; a postgres --db is
rejected.

# Examples

Restore from a local archive:
  donutdex db restore --archive backup.zip

Fetch and restore a published archive:
  donutdex db restore --url https://example.com/donutdex.zip`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "archive",
				Aliases: []string{"a"},
				Usage:   "Path to a zip archive holding the database file",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "HTTP(S) URL of a zip archive holding the database file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseRestoreOptions(cmd)
			if err != nil {
				return err
			}

			archivePath := opts.archive
			if opts.url != "" {
				tmp, err := os.CreateTemp("", "donutdex-archive-*.zip")
				if err != nil {
					return fmt.Errorf("failed to create temp file: %w", err)
				}
				tmpPath := tmp.Name()
				_ = tmp.Close()
				defer func() { _ = os.Remove(tmpPath) }()

				slog.Info("downloading archive", "url", opts.url)
				if err := serializer.NewHttpReader().DownloadWithContext(ctx, opts.url, tmpPath); err != nil {
					return fmt.Errorf("failed to download archive from %q: %w", opts.url, err)
				}
				archivePath = tmpPath
			}

			if err := storage.RestoreArchive(archivePath, opts.dest); err != nil {
				return fmt.Errorf("failed to restore archive: %w", err)
			}

			// Prove the restored file is a usable database before reporting success.
			db, err := storage.Open(ctx, opts.dest)
			if err != nil {
				return fmt.Errorf("restored database failed to open: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					slog.Warn("failed to close database", "error", err)
				}
			}()
			count, err := db.CountRecipes(ctx)
			if err != nil {
				return fmt.Errorf("restored database failed to open: %w", err)
			}

			slog.Info("database restored", "dest", opts.dest, "recipes", count)

			fmt.Printf("Database restored to %s: %d recipes\n", opts.dest, count)
			return nil
		},
	}
}

// restoreOptions holds parsed options for the restore subcommand.
type restoreOptions struct {
	archive string
	url     string
	dest    string
}

// parseRestoreOptions parses and validates restore flags. Exactly one
// source must be given, and the destination must be a plain sqlite path.
func parseRestoreOptions(cmd *cli.Command) (*restoreOptions, error) {
	opts := &restoreOptions{
		archive: cmd.String("archive"),
		url:     cmd.String("url"),
		dest:    cmd.String("db"),
	}

	switch {
	case opts.archive == "" && opts.url == "":
		return nil, fmt.Errorf("either --archive or --url is required")
	case opts.archive != "" && opts.url != "":
		return nil, fmt.Errorf("--archive and --url are mutually exclusive")
	}

	if strings.HasPrefix(opts.dest, "postgres://") || strings.HasPrefix(opts.dest, "postgresql://") {
		return nil, fmt.Errorf("restore writes a sqlite file, not a postgres database: %q", opts.dest)
	}
	if strings.HasPrefix(opts.dest, "file:") {
		return nil, fmt.Errorf("restore needs a plain file path for --db, got the URI %q", opts.dest)
	}

	return opts, nil
}

func dbStatusCmd() *cli.Command {
	return &cli.Command{
		Name:                  "status",
		EnableShellCompletion: true,
		Usage:                 "Show recipe and berry counts for the configured database",
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			dsn := cmd.String("db")
			db, err := storage.Open(ctx, dsn)
			if err != nil {
				return fmt.Errorf("failed to open database %q: %w", dsn, err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					slog.Warn("failed to close database", "error", err)
				}
			}()

			recipes, err := db.CountRecipes(ctx)
			if err != nil {
				return err
			}
			inv, err := db.LoadInventory(ctx)
			if err != nil {
				return err
			}

			status := &dbStatus{Database: dsn, Recipes: recipes, Berries: len(inv)}
			for _, qty := range inv {
				if qty > 0 {
					status.Stocked++
				}
				status.TotalQuantity += qty
			}

			out := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := out.Close(); err != nil {
					slog.Warn("failed to close output", "error", err)
				}
			}()
			return out.Serialize(ctx, status)
		},
	}
}

// dbStatus is the document the status subcommand renders.
type dbStatus struct {
	Database      string `json:"database" yaml:"database"`
	Recipes       int    `json:"recipes" yaml:"recipes"`
	Berries       int    `json:"berries" yaml:"berries"`
	Stocked       int    `json:"stocked" yaml:"stocked"`
	TotalQuantity int    `json:"totalQuantity" yaml:"totalQuantity"`
}
