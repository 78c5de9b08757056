package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/inventory"
	"github.com/zadonuts/donutdex/pkg/serializer"
)

func inventoryCmd() *cli.Command {
	return &cli.Command{
		Name:                  "inventory",
		Aliases:               []string{"inv"},
		EnableShellCompletion: true,
		Usage:                 "Inspect and update the berry inventory",
		Description: `Manage the berry quantities recipes are matched against.

Berry names are case-insensitive; "oran berry", "Oran Berry", and
"ORAN  BERRY" all name the same berry. Only berries the catalog knows
can be stocked.

# Examples

Show every berry and its quantity:
  donutdex inventory list

Set a quantity (replaces the previous value):
  donutdex inventory set "Oran Berry" 12

Load quantities from a CSV export:
  donutdex inventory import --file berries.csv

Write the inventory as CSV:
  donutdex inventory export --output berries.csv`,
		Commands: []*cli.Command{
			inventoryListCmd(),
			inventorySetCmd(),
			inventoryImportCmd(),
			inventoryExportCmd(),
		},
	}
}

func inventoryListCmd() *cli.Command {
	return &cli.Command{
		Name:                  "list",
		EnableShellCompletion: true,
		Usage:                 "List every berry with its quantity",
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			eng, err := openEngine(ctx, cmd)
			if err != nil {
				return err
			}
			defer eng.Close()

			out := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := out.Close(); err != nil {
					slog.Warn("failed to close output", "error", err)
				}
			}()
			return out.Serialize(ctx, displayEntries(eng.store.Entries()))
		},
	}
}

func inventorySetCmd() *cli.Command {
	return &cli.Command{
		Name:                  "set",
		EnableShellCompletion: true,
		Usage:                 "Set the quantity of one berry",
		ArgsUsage:             "NAME QUANTITY",
		Description: `Set a berry to an exact quantity, replacing the previous value.

The name must be a berry the catalog knows. On a near miss the closest
catalog name is suggested.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 2 {
				return fmt.Errorf("expected NAME and QUANTITY arguments, got %d", args.Len())
			}

			qty, err := strconv.Atoi(args.Get(1))
			if err != nil || qty < 0 {
				return fmt.Errorf("invalid quantity %q: expected a non-negative number", args.Get(1))
			}

			eng, err := openEngine(ctx, cmd)
			if err != nil {
				return err
			}
			defer eng.Close()

			name := catalog.CanonicalName(args.Get(0))
			if !eng.cat.Contains(name) {
				if hint, ok := inventory.Suggest(name, eng.cat.BerryNames()); ok {
					return fmt.Errorf("unknown berry %q, did you mean %q?",
						args.Get(0), catalog.DisplayName(hint))
				}
				return fmt.Errorf("unknown berry %q", args.Get(0))
			}

			if _, err := eng.store.BulkLoad(ctx, []inventory.Entry{{Name: name, Quantity: qty}}); err != nil {
				return fmt.Errorf("failed to update inventory: %w", err)
			}

			fmt.Printf("%s = %d\n", catalog.DisplayName(name), qty)
			return nil
		},
	}
}

func inventoryImportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "import",
		EnableShellCompletion: true,
		Usage:                 "Merge quantities from a CSV file into the inventory",
		Description: `Read a berry_name,quantity CSV file and apply its rows.

A malformed file (wrong columns, negative or non-numeric quantities)
rejects the whole import. Rows naming berries the catalog does not know
are skipped and reported, with a suggestion when a close match exists;
the remaining rows still apply.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Path to a CSV file with berry_name and quantity columns",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			path := cmd.String("file")
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %q: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			eng, err := openEngine(ctx, cmd)
			if err != nil {
				return err
			}
			defer eng.Close()

			entries, skipped, err := inventory.ReadCSV(f, eng.cat.BerryNames())
			if err != nil {
				return fmt.Errorf("failed to import %q: %w", path, err)
			}

			applied := 0
			if len(entries) > 0 {
				applied, err = eng.store.BulkLoad(ctx, entries)
				if err != nil {
					return fmt.Errorf("failed to apply import: %w", err)
				}
			}

			for _, s := range skipped {
				slog.Warn("skipped unknown berry",
					"row", s.Row,
					"name", s.Name,
					"suggestion", s.Suggestion)
			}
			slog.Info("inventory imported",
				"file", path,
				"applied", applied,
				"skipped", len(skipped))

			out := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := out.Close(); err != nil {
					slog.Warn("failed to close output", "error", err)
				}
			}()
			return out.Serialize(ctx, &importResult{Applied: applied, Skipped: skipped})
		},
	}
}

// importResult is the document the import subcommand renders.
type importResult struct {
	Applied int                 `json:"applied" yaml:"applied"`
	Skipped []inventory.Skipped `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

func inventoryExportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "export",
		EnableShellCompletion: true,
		Usage:                 "Write the inventory as a berry_name,quantity CSV file",
		Description: `Write every berry and its quantity as CSV, the same shape import
reads, so an export can be edited and loaded back.`,
		Flags: []cli.Flag{
			outputFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			eng, err := openEngine(ctx, cmd)
			if err != nil {
				return err
			}
			defer eng.Close()

			out := os.Stdout
			if path := cmd.String("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create %q: %w", path, err)
				}
				defer func() {
					if err := f.Close(); err != nil {
						slog.Warn("failed to close output", "error", err)
					}
				}()
				out = f
			}

			return inventory.WriteCSV(out, eng.store.Entries())
		},
	}
}

// displayEntries maps canonical berry names to display casing for
// rendering.
func displayEntries(entries []inventory.Entry) []inventory.Entry {
	out := make([]inventory.Entry, len(entries))
	for i, e := range entries {
		out[i] = inventory.Entry{Name: catalog.DisplayName(e.Name), Quantity: e.Quantity}
	}
	return out
}
