package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/defaults"
	"github.com/zadonuts/donutdex/pkg/matcher"
	"github.com/zadonuts/donutdex/pkg/serializer"
)

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:                  "search",
		EnableShellCompletion: true,
		Usage:                 "Find recipes you can cook with the berries on hand",
		Description: `Search the recipe catalog for recipes that are craftable from the
current inventory and fall inside the given attribute ranges.

Every range flag takes MIN:MAX or a single number meaning exactly that
value. Both ends are inclusive, so --sweet 420:760 keeps a recipe whose
sweet score is 420 or 760. Flavors you do not constrain are ignored.

At most one secondary stat can be constrained per search; --stat and
--stat-range always travel together.

Results are sorted by final calories, highest first, with star rating
breaking ties. With --min-berries, recipes needing fewer total berries
rank first instead, with calories breaking ties.

# Examples

All craftable recipes, best first:
  donutdex search

Sweet recipes in a band, frugal ones first:
  donutdex search --sweet 420:760 --min-berries

Five-star recipes as JSON:
  donutdex search --stat stars --stat-range 5 --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sweet",
				Usage: "Inclusive sweet range, MIN:MAX or a single value (e.g., 420:760)",
			},
			&cli.StringFlag{
				Name:  "spicy",
				Usage: "Inclusive spicy range, MIN:MAX or a single value",
			},
			&cli.StringFlag{
				Name:  "sour",
				Usage: "Inclusive sour range, MIN:MAX or a single value",
			},
			&cli.StringFlag{
				Name:  "bitter",
				Usage: "Inclusive bitter range, MIN:MAX or a single value",
			},
			&cli.StringFlag{
				Name:  "fresh",
				Usage: "Inclusive fresh range, MIN:MAX or a single value",
			},
			&cli.StringFlag{
				Name: "stat",
				Usage: fmt.Sprintf("Secondary stat to constrain (supported values: %v)",
					catalog.SupportedStats()),
			},
			&cli.StringFlag{
				Name:  "stat-range",
				Usage: "Inclusive range for --stat, MIN:MAX or a single value (e.g., 3:5)",
			},
			&cli.BoolFlag{
				Name:  "min-berries",
				Usage: "Rank recipes needing fewer total berries first",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: defaults.ResultLimit,
				Usage: "Maximum number of recipes to return",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			spec, err := buildFilterFromCmd(cmd)
			if err != nil {
				return fmt.Errorf("error parsing search filter: %w", err)
			}

			eng, err := openEngine(ctx, cmd)
			if err != nil {
				return err
			}
			defer eng.Close()

			result, err := eng.match.Search(ctx, spec)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			slog.Info("search completed",
				"matched", result.Matched,
				"returned", len(result.Recipes),
				"truncated", result.Truncated)

			out := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := out.Close(); err != nil {
					slog.Warn("failed to close output", "error", err)
				}
			}()
			return out.Serialize(ctx, result)
		},
	}
}

// buildFilterFromCmd constructs a matcher.FilterSpec from CLI flags.
func buildFilterFromCmd(cmd *cli.Command) (*matcher.FilterSpec, error) {
	spec := &matcher.FilterSpec{}

	for _, f := range catalog.SupportedFlavors() {
		raw := cmd.String(f.String())
		if raw == "" {
			continue
		}
		rng, err := matcher.ParseRange(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		if spec.Flavors == nil {
			spec.Flavors = make(map[catalog.Flavor]matcher.Range)
		}
		spec.Flavors[f] = rng
	}

	statRaw := cmd.String("stat")
	rangeRaw := cmd.String("stat-range")
	switch {
	case statRaw != "" && rangeRaw == "":
		return nil, fmt.Errorf("--stat requires --stat-range")
	case statRaw == "" && rangeRaw != "":
		return nil, fmt.Errorf("--stat-range requires --stat")
	case statRaw != "":
		stat, err := catalog.ParseStat(statRaw)
		if err != nil {
			return nil, err
		}
		rng, err := matcher.ParseRange(rangeRaw)
		if err != nil {
			return nil, fmt.Errorf("stat-range: %w", err)
		}
		spec.Stat = stat
		spec.StatRange = rng
	}

	spec.PrioritizeMinBerries = cmd.Bool("min-berries")

	if limit := int(cmd.Int("limit")); limit > 0 {
		spec.Limit = limit
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}
