package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zadonuts/donutdex/pkg/catalog"
)

// EnsureCatalog returns the catalog stored in the database, seeding the
// embedded recipe set first when the recipes table is empty. Inventory
// rows are aligned with the catalog's berry set either way, so a fresh
// database is fully usable without an explicit init.
func (d *DB) EnsureCatalog(ctx context.Context) (*catalog.Catalog, error) {
	count, err := d.CountRecipes(ctx)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		seed, err := catalog.Embedded()
		if err != nil {
			return nil, err
		}
		if err := d.ReplaceCatalog(ctx, RecipeRows(seed)); err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
		slog.Info("seeded catalog from embedded recipes", "recipes", seed.Len())
	}

	rows, err := d.LoadRecipes(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(rows)
	if err != nil {
		return nil, fmt.Errorf("stored catalog is invalid: %w", err)
	}

	if err := d.EnsureInventoryRows(ctx, cat.BerryNames()); err != nil {
		return nil, err
	}
	return cat, nil
}

// RecipeRows flattens a catalog into the value slice ReplaceCatalog
// persists. The catalog's recipes are already normalized and validated,
// so rows written through here are safe to load back.
func RecipeRows(cat *catalog.Catalog) []catalog.Recipe {
	rows := make([]catalog.Recipe, 0, cat.Len())
	for _, r := range cat.Recipes() {
		rows = append(rows, *r)
	}
	return rows
}
