// Package cli implements the command-line interface for the donutdex tool.
//
// # Overview
//
// The donutdex CLI searches a donut recipe catalog, ranks recipes by how
// cookable they are with the berries on hand, cooks them against a persistent
// berry inventory, and manages both sides of that data. It is designed for
// players planning donut crafting sessions around a limited berry stash.
//
// # Commands
//
// search - Rank recipes against the current inventory:
//
//	donutdex search [--sweet MIN:MAX] [--stat stars --stat-range MIN:MAX] [--min-berries]
//
// Filters the catalog by inclusive flavor and stat ranges, computes per-recipe
// craftability from live berry quantities, and returns the ranked matches.
// Output defaults to stdout as a table.
//
// cook - Cook one recipe and consume its berries:
//
//	donutdex cook RECIPE_ID
//
// Deducts the recipe's ingredients from the inventory, clamping each berry at
// zero, and prints a receipt of what was actually consumed.
//
// inventory - Manage berry quantities:
//
//	donutdex inventory list
//	donutdex inventory set NAME QUANTITY
//	donutdex inventory import --file berries.csv
//	donutdex inventory export [--output berries.csv]
//
// Lists, sets, and bulk-loads berry quantities. Imports skip unknown berry
// names with a close-match suggestion instead of failing the batch.
//
// db - Manage the backing database:
//
//	donutdex db init [--from FILE|URL] [--force]
//	donutdex db restore --archive FILE.zip
//	donutdex db status
//
// Seeds the recipe catalog, restores a packaged database from a zip archive,
// and reports row counts.
//
// # Global Flags
//
//	--db           Database DSN: a sqlite file path or a postgres:// URL
//	--log-level    Logging verbosity: debug, info, warn, error
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: json, yaml, table (default: table)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// Table (default):
//   - Hierarchical text representation
//   - Suitable for terminal viewing
//
// JSON:
//   - Machine-parseable, compact
//   - Suitable for programmatic consumption
//
// YAML:
//   - Human-readable, preserves structure
//   - Suitable for version control
//
// # Usage Examples
//
// Find sweet recipes cookable right now, cheapest first:
//
//	donutdex search --sweet 420:760 --min-berries
//
// Find five-star recipes and save the result:
//
//	donutdex search --stat stars --stat-range 5 --format json --output hits.json
//
// Cook recipe 17 and top the spent berries back up:
//
//	donutdex cook 17
//	donutdex inventory set "Oran Berry" 12
//
// # Environment Variables
//
//	DONUTDEX_DB  Database DSN, used when --db is not set
//	LOG_LEVEL    Set logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled or timeout
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/matcher - Recipe filtering, ranking, and cooking
//   - pkg/inventory - Berry quantity tracking and CSV exchange
//   - pkg/catalog - Recipe catalog and embedded seed data
//   - pkg/storage - SQLite and Postgres persistence
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/zadonuts/donutdex/pkg/cli.version=1.0.0'"
package cli
