package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/zadonuts/donutdex/pkg/serializer"
)

func cookCmd() *cli.Command {
	return &cli.Command{
		Name:                  "cook",
		EnableShellCompletion: true,
		Usage:                 "Cook a recipe and deduct its berries from the inventory",
		ArgsUsage:             "RECIPE_ID",
		Description: `Cook the identified recipe. Every ingredient is deducted from the
inventory in one step; a berry that ran short since the last search is
clamped at zero rather than failing the cook. The receipt lists what
remains of each ingredient afterwards.

An unknown recipe id fails without touching the inventory.

# Examples

Cook recipe 12 and show the receipt:
  donutdex cook 12

Receipt as JSON for scripting:
  donutdex cook 12 --format json`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			id, err := parseRecipeID(cmd)
			if err != nil {
				return err
			}

			eng, err := openEngine(ctx, cmd)
			if err != nil {
				return err
			}
			defer eng.Close()

			receipt, err := eng.match.Cook(ctx, id)
			if err != nil {
				return fmt.Errorf("cook failed: %w", err)
			}

			slog.Info("cooked recipe",
				"id", receipt.Recipe.ID,
				"stars", receipt.Recipe.Stars,
				"berries", receipt.Recipe.Label())

			out := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := out.Close(); err != nil {
					slog.Warn("failed to close output", "error", err)
				}
			}()
			return out.Serialize(ctx, receipt)
		},
	}
}

// parseRecipeID reads the positional recipe id argument.
func parseRecipeID(cmd *cli.Command) (int64, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("missing RECIPE_ID argument")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe id %q: expected a positive number", raw)
	}
	return id, nil
}
