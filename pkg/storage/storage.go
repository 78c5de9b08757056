// Package storage persists the recipe catalog and the berry inventory in
// a relational database.
//
// One database/sql code path serves two engines, selected by DSN:
// postgres:// and postgresql:// URLs go through the pgx driver, anything
// else is treated as a sqlite file path and opened with a busy timeout
// and WAL journaling. The schema is dialect neutral and bootstrapped on
// open, so a fresh file or an empty database is immediately usable.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // register the sqlite driver

	"github.com/zadonuts/donutdex/pkg/defaults"
	"github.com/zadonuts/donutdex/pkg/inventory"
)

// Compile-time check that DB satisfies the inventory persistence contract.
var _ inventory.Backend = (*DB)(nil)

const (
	driverPostgres = "pgx"
	driverSQLite   = "sqlite"
)

// schema runs statement by statement on open; pgx rejects multi-statement
// commands.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS recipes (
		id             BIGINT PRIMARY KEY,
		stars          INTEGER NOT NULL,
		sweet          INTEGER NOT NULL DEFAULT 0,
		spicy          INTEGER NOT NULL DEFAULT 0,
		sour           INTEGER NOT NULL DEFAULT 0,
		bitter         INTEGER NOT NULL DEFAULT 0,
		fresh          INTEGER NOT NULL DEFAULT 0,
		final_boost    INTEGER NOT NULL DEFAULT 0,
		final_calories INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_items (
		recipe_id  BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		berry_name TEXT NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		PRIMARY KEY (recipe_id, berry_name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_items_berry ON recipe_items(berry_name)`,
	`CREATE TABLE IF NOT EXISTS user_inventory (
		berry_name TEXT PRIMARY KEY,
		quantity   INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0)
	)`,
}

// DB is a handle to the donutdex database.
type DB struct {
	sql    *sql.DB
	driver string
}

// Open connects to the database named by dsn, verifies the connection,
// and bootstraps the schema.
func Open(ctx context.Context, dsn string) (*DB, error) {
	driver, dataSource := driverForDSN(dsn)

	db, err := sql.Open(driver, dataSource)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaults.StorageOpenTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	d := &DB{sql: db, driver: driver}
	if err := d.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Ping verifies the database is still reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// driverForDSN maps a DSN onto a registered driver. Postgres URLs pass
// through unchanged. Anything else is a sqlite path; plain paths are
// wrapped into a file URI with the busy-timeout and WAL pragmas, file:
// URIs are taken as given.
func driverForDSN(dsn string) (driver, dataSource string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return driverPostgres, dsn
	}
	if strings.HasPrefix(dsn, "file:") {
		return driverSQLite, dsn
	}
	return driverSQLite, fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		dsn, defaults.SQLiteBusyTimeoutMS)
}

func (d *DB) ensureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

// rebind converts ? placeholders to the $N form postgres expects. The
// sqlite driver takes queries as written.
func (d *DB) rebind(query string) string {
	if d.driver != driverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LoadInventory reads the full berry_name to quantity mapping.
func (d *DB) LoadInventory(ctx context.Context) (map[string]int, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT berry_name, quantity FROM user_inventory`)
	if err != nil {
		return nil, fmt.Errorf("select inventory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]int)
	for rows.Next() {
		var (
			name string
			qty  int
		)
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		out[name] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read inventory rows: %w", err)
	}
	return out, nil
}

// SaveQuantities upserts the given quantities in one transaction. Either
// every row lands or none does.
func (d *DB) SaveQuantities(ctx context.Context, quantities map[string]int) (err error) {
	if len(quantities) == 0 {
		return nil
	}

	// Deterministic write order across concurrent saves.
	names := make([]string, 0, len(quantities))
	for name := range quantities {
		names = append(names, name)
	}
	slices.Sort(names)

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin inventory save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, d.rebind(
		`INSERT INTO user_inventory (berry_name, quantity) VALUES (?, ?)
		 ON CONFLICT (berry_name) DO UPDATE SET quantity = excluded.quantity`))
	if err != nil {
		return fmt.Errorf("prepare inventory upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, name := range names {
		if _, err = stmt.ExecContext(ctx, name, quantities[name]); err != nil {
			return fmt.Errorf("upsert inventory row %q: %w", name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit inventory save: %w", err)
	}
	return nil
}

// EnsureInventoryRows inserts a zero-quantity row for every given berry
// name that has none yet, leaving existing quantities alone. Run at
// startup so the inventory key set tracks the catalog.
func (d *DB) EnsureInventoryRows(ctx context.Context, names []string) (err error) {
	if len(names) == 0 {
		return nil
	}

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin inventory seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, d.rebind(
		`INSERT INTO user_inventory (berry_name, quantity) VALUES (?, 0)
		 ON CONFLICT (berry_name) DO NOTHING`))
	if err != nil {
		return fmt.Errorf("prepare inventory seed: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, name := range names {
		if _, err = stmt.ExecContext(ctx, name); err != nil {
			return fmt.Errorf("seed inventory row %q: %w", name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit inventory seed: %w", err)
	}
	return nil
}
