package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zadonuts/donutdex/pkg/catalog"
)

// LoadRecipes reads the full catalog, recipes with their ingredient
// lists, ordered by id. Derived recipe attributes are not stored; the
// catalog recomputes them on load.
func (d *DB) LoadRecipes(ctx context.Context) ([]catalog.Recipe, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, stars, sweet, spicy, sour, bitter, fresh, final_boost, final_calories
		 FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select recipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recipes []catalog.Recipe
	index := make(map[int64]int)
	for rows.Next() {
		var r catalog.Recipe
		if err := rows.Scan(&r.ID, &r.Stars, &r.Sweet, &r.Spicy, &r.Sour, &r.Bitter,
			&r.Fresh, &r.FinalBoost, &r.FinalCalories); err != nil {
			return nil, fmt.Errorf("scan recipe row: %w", err)
		}
		index[r.ID] = len(recipes)
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read recipe rows: %w", err)
	}

	itemRows, err := d.sql.QueryContext(ctx,
		`SELECT recipe_id, berry_name, quantity FROM recipe_items ORDER BY recipe_id, berry_name`)
	if err != nil {
		return nil, fmt.Errorf("select recipe items: %w", err)
	}
	defer func() { _ = itemRows.Close() }()

	for itemRows.Next() {
		var (
			recipeID int64
			name     string
			qty      int
		)
		if err := itemRows.Scan(&recipeID, &name, &qty); err != nil {
			return nil, fmt.Errorf("scan recipe item row: %w", err)
		}
		i, ok := index[recipeID]
		if !ok {
			// Orphaned item rows are possible when foreign keys are off.
			continue
		}
		recipes[i].Ingredients = append(recipes[i].Ingredients, catalog.Ingredient{
			Name:  name,
			Count: qty,
		})
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("read recipe item rows: %w", err)
	}

	return recipes, nil
}

// ReplaceCatalog swaps the stored catalog for the given recipes in one
// transaction.
func (d *DB) ReplaceCatalog(ctx context.Context, recipes []catalog.Recipe) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin catalog replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM recipe_items`); err != nil {
		return fmt.Errorf("clear recipe items: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM recipes`); err != nil {
		return fmt.Errorf("clear recipes: %w", err)
	}

	recipeStmt, err := tx.PrepareContext(ctx, d.rebind(
		`INSERT INTO recipes (id, stars, sweet, spicy, sour, bitter, fresh, final_boost, final_calories)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("prepare recipe insert: %w", err)
	}
	defer func() { _ = recipeStmt.Close() }()

	itemStmt, err := tx.PrepareContext(ctx, d.rebind(
		`INSERT INTO recipe_items (recipe_id, berry_name, quantity) VALUES (?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("prepare recipe item insert: %w", err)
	}
	defer func() { _ = itemStmt.Close() }()

	for i := range recipes {
		r := &recipes[i]
		if _, err = recipeStmt.ExecContext(ctx, r.ID, r.Stars, r.Sweet, r.Spicy, r.Sour,
			r.Bitter, r.Fresh, r.FinalBoost, r.FinalCalories); err != nil {
			return fmt.Errorf("insert recipe %d: %w", r.ID, err)
		}
		for _, ing := range r.Ingredients {
			if _, err = itemStmt.ExecContext(ctx, r.ID, ing.Name, ing.Count); err != nil {
				return fmt.Errorf("insert item %q of recipe %d: %w", ing.Name, r.ID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog replace: %w", err)
	}
	return nil
}

// CountRecipes returns the number of stored recipes. A zero count on a
// fresh database triggers first-run seeding.
func (d *DB) CountRecipes(ctx context.Context) (int, error) {
	var count int
	if err := d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return count, nil
}
