// Package matcher searches and ranks donut recipes against the live
// berry inventory.
//
// Every search evaluates craftability fresh against one inventory
// snapshot taken at entry, so a result set is internally consistent even
// while cooks run concurrently, and no search result is ever cached.
// Cooking deliberately skips a craftability re-check: the inventory
// clamps deductions at zero, which absorbs the race between a search and
// the cook that follows it.
package matcher

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/defaults"
	"github.com/zadonuts/donutdex/pkg/inventory"
)

// Matcher joins the immutable recipe catalog with the mutable inventory.
// Both collaborators are injected at construction; the matcher itself
// holds no other state and is safe for concurrent use.
type Matcher struct {
	catalog *catalog.Catalog
	store   *inventory.Store
}

// New creates a Matcher over the given catalog and inventory store.
func New(cat *catalog.Catalog, store *inventory.Store) (*Matcher, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	return &Matcher{catalog: cat, store: store}, nil
}

// MatchResult is one search outcome. Matched counts the recipes that
// passed every filter before the limit cut the list down.
type MatchResult struct {
	Recipes   []*catalog.Recipe `json:"recipes"`
	Matched   int               `json:"matched"`
	Truncated bool              `json:"truncated"`
}

// Search returns the craftable recipes matching the given filter, ranked
// and truncated to the filter's limit. Truncation happens after the full
// match set is sorted, so the returned page is always the global top of
// the ranking, not the first recipes encountered.
func (m *Matcher) Search(ctx context.Context, spec *FilterSpec) (*MatchResult, error) {
	timer := prometheus.NewTimer(searchDuration)
	defer timer.ObserveDuration()

	if spec == nil {
		spec = &FilterSpec{}
	}
	if err := spec.Validate(); err != nil {
		searchesTotal.WithLabelValues(statusError).Inc()
		return nil, err
	}

	quantities := m.store.Snapshot()

	var matches []*catalog.Recipe
	for _, r := range m.catalog.Recipes() {
		if !canCraft(r, quantities) {
			continue
		}
		if !spec.Matches(r) {
			continue
		}
		matches = append(matches, r)
	}

	rank(matches, spec.PrioritizeMinBerries)

	result := &MatchResult{Matched: len(matches)}
	limit := spec.Limit
	if limit <= 0 || limit > defaults.ResultLimit {
		limit = defaults.ResultLimit
	}
	if len(matches) > limit {
		matches = matches[:limit]
		result.Truncated = true
	}
	result.Recipes = matches

	searchesTotal.WithLabelValues(statusOK).Inc()
	searchMatches.Observe(float64(result.Matched))
	return result, nil
}

// canCraft reports whether the snapshot covers every ingredient
// requirement. A recipe with no ingredients is trivially craftable.
func canCraft(r *catalog.Recipe, quantities map[string]int) bool {
	for _, ing := range r.Ingredients {
		if quantities[ing.Name] < ing.Count {
			return false
		}
	}
	return true
}

// rank orders recipes for display. With minBerries set the cheapest ones
// come first (ascending berry count, calories breaking ties richest
// first); otherwise the richest come first (descending calories, stars
// breaking ties). The sort is stable, so remaining ties keep catalog
// order and identical inputs always produce identical output.
func rank(recipes []*catalog.Recipe, minBerries bool) {
	if minBerries {
		slices.SortStableFunc(recipes, func(a, b *catalog.Recipe) int {
			if c := cmp.Compare(a.NumBerries, b.NumBerries); c != 0 {
				return c
			}
			return cmp.Compare(b.FinalCalories, a.FinalCalories)
		})
		return
	}
	slices.SortStableFunc(recipes, func(a, b *catalog.Recipe) int {
		if c := cmp.Compare(b.FinalCalories, a.FinalCalories); c != 0 {
			return c
		}
		return cmp.Compare(b.Stars, a.Stars)
	})
}
