// Package catalog holds the read-only donut recipe catalog.
//
// A catalog is built once, at process start, from the embedded seed or from
// storage. Every recipe is validated and its derived attributes (flavor sum,
// berry count) are recomputed during construction, so downstream consumers
// can rely on them without re-deriving. After construction the catalog never
// changes: searches and cooks read it concurrently without locking.
//
// Berry names are kept in canonical form (lowercase, collapsed whitespace);
// DisplayName converts them back to a human form at the presentation edge.
package catalog

import (
	"fmt"
	"slices"
)

// Catalog is an immutable, indexed recipe set.
type Catalog struct {
	recipes []*Recipe
	byID    map[int64]*Recipe
	names   []string
}

// New builds a Catalog from the given recipes. Each recipe is normalized
// (canonical names, derived fields) and validated; duplicate ids are
// rejected. The input slice is copied, not retained.
func New(recipes []Recipe) (*Catalog, error) {
	c := &Catalog{
		recipes: make([]*Recipe, 0, len(recipes)),
		byID:    make(map[int64]*Recipe, len(recipes)),
	}

	nameSet := make(map[string]bool)
	for i := range recipes {
		r := recipes[i].Clone()
		r.normalize()
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid recipe: %w", err)
		}
		if _, exists := c.byID[r.ID]; exists {
			return nil, fmt.Errorf("duplicate recipe id %d", r.ID)
		}
		c.recipes = append(c.recipes, r)
		c.byID[r.ID] = r
		for _, ing := range r.Ingredients {
			nameSet[ing.Name] = true
		}
	}

	c.names = make([]string, 0, len(nameSet))
	for name := range nameSet {
		c.names = append(c.names, name)
	}
	slices.Sort(c.names)

	catalogRecipes.Set(float64(len(c.recipes)))
	return c, nil
}

// ByID looks up a recipe by id.
func (c *Catalog) ByID(id int64) (*Recipe, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Recipes returns the catalog entries in load order. The returned slice is
// a fresh copy; the pointed-to recipes are shared and must not be mutated.
func (c *Catalog) Recipes() []*Recipe {
	out := make([]*Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// BerryNames returns the sorted union of canonical berry names referenced
// by any recipe. This set defines the inventory key space.
func (c *Catalog) BerryNames() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Contains reports whether the given canonical name is referenced by any
// recipe in the catalog.
func (c *Catalog) Contains(name string) bool {
	_, found := slices.BinarySearch(c.names, name)
	return found
}

// Len returns the number of recipes in the catalog.
func (c *Catalog) Len() int {
	return len(c.recipes)
}
