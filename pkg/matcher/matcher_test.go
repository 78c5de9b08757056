package matcher

import (
	"context"
	"fmt"
	"testing"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/errors"
	"github.com/zadonuts/donutdex/pkg/inventory"
)

// stubBackend is a minimal in-memory inventory backend for matcher tests.
type stubBackend struct {
	data map[string]int
}

func (b *stubBackend) LoadInventory(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, len(b.data))
	for name, qty := range b.data {
		out[name] = qty
	}
	return out, nil
}

func (b *stubBackend) SaveQuantities(ctx context.Context, quantities map[string]int) error {
	if b.data == nil {
		b.data = map[string]int{}
	}
	for name, qty := range quantities {
		b.data[name] = qty
	}
	return nil
}

func newTestMatcher(t *testing.T, recipes []catalog.Recipe, stock map[string]int) (*Matcher, *inventory.Store) {
	t.Helper()

	cat, err := catalog.New(recipes)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	store, err := inventory.NewStore(context.Background(), &stubBackend{data: stock}, cat.BerryNames())
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	m, err := New(cat, store)
	if err != nil {
		t.Fatalf("failed to build matcher: %v", err)
	}
	return m, store
}

func testRecipe(id int64, stars, calories int, ings ...catalog.Ingredient) catalog.Recipe {
	return catalog.Recipe{
		ID:            id,
		Ingredients:   ings,
		Stars:         stars,
		FinalCalories: calories,
	}
}

func resultIDs(res *MatchResult) []int64 {
	ids := make([]int64, 0, len(res.Recipes))
	for _, r := range res.Recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestNew(t *testing.T) {
	cat, err := catalog.New(nil)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	store, err := inventory.NewStore(context.Background(), &stubBackend{}, nil)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}

	if _, err := New(nil, store); err == nil {
		t.Error("expected error for nil catalog")
	}
	if _, err := New(cat, nil); err == nil {
		t.Error("expected error for nil store")
	}
	if _, err := New(cat, store); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSearchCraftability(t *testing.T) {
	recipes := []catalog.Recipe{
		testRecipe(1, 3, 1000, catalog.Ingredient{Name: "oran berry", Count: 2}),
		testRecipe(2, 3, 1100, catalog.Ingredient{Name: "oran berry", Count: 5}),
		testRecipe(3, 3, 1200, catalog.Ingredient{Name: "pecha berry", Count: 1}),
		testRecipe(4, 1, 100),
	}
	m, _ := newTestMatcher(t, recipes, map[string]int{"oran berry": 3})

	res, err := m.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1 needs 2 of 3 oran (ok), 2 needs 5 (short), 3 needs pecha (none),
	// 4 has no ingredients and is always craftable.
	want := map[int64]bool{1: true, 4: true}
	if res.Matched != len(want) {
		t.Fatalf("expected %d matches, got %d: %v", len(want), res.Matched, resultIDs(res))
	}
	for _, id := range resultIDs(res) {
		if !want[id] {
			t.Errorf("recipe %d should not be craftable", id)
		}
	}
	if res.Truncated {
		t.Error("small result set must not be truncated")
	}
}

func TestSearchExactStockBoundary(t *testing.T) {
	recipes := []catalog.Recipe{
		testRecipe(1, 3, 1000, catalog.Ingredient{Name: "oran berry", Count: 3}),
	}
	m, _ := newTestMatcher(t, recipes, map[string]int{"oran berry": 3})

	res, err := m.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Matched != 1 {
		t.Errorf("recipe requiring exactly the available stock must be craftable, got %d matches", res.Matched)
	}
}

// TestSearchMonotonicity checks that adding stock never removes a recipe
// from the craftable set.
func TestSearchMonotonicity(t *testing.T) {
	recipes := []catalog.Recipe{
		testRecipe(1, 3, 1000, catalog.Ingredient{Name: "oran berry", Count: 1}),
		testRecipe(2, 3, 1100, catalog.Ingredient{Name: "oran berry", Count: 4}),
		testRecipe(3, 3, 1200, catalog.Ingredient{Name: "pecha berry", Count: 2}),
	}
	m, store := newTestMatcher(t, recipes, map[string]int{"oran berry": 1})

	before, err := m.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.BulkLoad(context.Background(), []inventory.Entry{
		{Name: "oran berry", Quantity: 10},
		{Name: "pecha berry", Quantity: 10},
	}); err != nil {
		t.Fatalf("bulk load failed: %v", err)
	}

	after, err := m.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make(map[int64]bool)
	for _, id := range resultIDs(after) {
		got[id] = true
	}
	for _, id := range resultIDs(before) {
		if !got[id] {
			t.Errorf("recipe %d was craftable before the restock but not after", id)
		}
	}
	if after.Matched != len(recipes) {
		t.Errorf("expected all %d recipes craftable after restock, got %d", len(recipes), after.Matched)
	}
}

// TestSearchAppleAndPear walks the full restock-search-cook cycle on a
// two-ingredient recipe.
func TestSearchAppleAndPear(t *testing.T) {
	ctx := context.Background()
	recipes := []catalog.Recipe{
		testRecipe(1, 3, 1500,
			catalog.Ingredient{Name: "apple", Count: 2},
			catalog.Ingredient{Name: "pear", Count: 1},
		),
	}
	m, store := newTestMatcher(t, recipes, map[string]int{"apple": 5})

	res, err := m.Search(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Matched != 0 {
		t.Fatalf("recipe must not be craftable without pears, got %v", resultIDs(res))
	}

	if _, err := store.BulkLoad(ctx, []inventory.Entry{{Name: "pear", Quantity: 1}}); err != nil {
		t.Fatalf("bulk load failed: %v", err)
	}

	res, err = m.Search(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Matched != 1 || res.Recipes[0].ID != 1 {
		t.Fatalf("expected recipe 1 craftable after restock, got %v", resultIDs(res))
	}

	cooked, err := m.Cook(ctx, 1)
	if err != nil {
		t.Fatalf("cook failed: %v", err)
	}
	if cooked.Remaining["apple"] != 3 {
		t.Errorf("expected 3 apples remaining, got %d", cooked.Remaining["apple"])
	}
	if cooked.Remaining["pear"] != 0 {
		t.Errorf("expected 0 pears remaining, got %d", cooked.Remaining["pear"])
	}
	if got := store.Get("apple"); got != 3 {
		t.Errorf("expected store apple 3, got %d", got)
	}
	if got := store.Get("pear"); got != 0 {
		t.Errorf("expected store pear 0, got %d", got)
	}
}

func TestSearchFlavorBoundaries(t *testing.T) {
	mk := func(id int64, sweet int) catalog.Recipe {
		r := testRecipe(id, 3, 1000, catalog.Ingredient{Name: "oran berry", Count: 1})
		r.Sweet = sweet
		return r
	}
	recipes := []catalog.Recipe{mk(1, 419), mk(2, 420), mk(3, 600), mk(4, 760), mk(5, 761)}
	m, _ := newTestMatcher(t, recipes, map[string]int{"oran berry": 100})

	spec := &FilterSpec{
		Flavors: map[catalog.Flavor]Range{catalog.FlavorSweet: {Min: 420, Max: 760}},
	}
	res, err := m.Search(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[int64]bool{2: true, 3: true, 4: true}
	if res.Matched != len(want) {
		t.Fatalf("expected %d matches, got %v", len(want), resultIDs(res))
	}
	for _, id := range resultIDs(res) {
		if !want[id] {
			t.Errorf("recipe %d is outside the sweet range", id)
		}
	}
}

func TestSearchStatFilter(t *testing.T) {
	recipes := []catalog.Recipe{
		testRecipe(1, 2, 1000, catalog.Ingredient{Name: "oran berry", Count: 1}),
		testRecipe(2, 3, 1000, catalog.Ingredient{Name: "oran berry", Count: 1}),
		testRecipe(3, 5, 1000, catalog.Ingredient{Name: "oran berry", Count: 1}),
	}
	m, _ := newTestMatcher(t, recipes, map[string]int{"oran berry": 100})

	spec := &FilterSpec{Stat: catalog.StatStars, StatRange: Range{Min: 3, Max: 5}}
	res, err := m.Search(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[int64]bool{2: true, 3: true}
	if res.Matched != len(want) {
		t.Fatalf("expected %d matches, got %v", len(want), resultIDs(res))
	}
	for _, id := range resultIDs(res) {
		if !want[id] {
			t.Errorf("recipe %d is outside the stars range", id)
		}
	}
}

// TestSearchRankingMinBerries pins the cheapest-first ordering: fewer
// berries first, calories breaking ties richest first.
func TestSearchRankingMinBerries(t *testing.T) {
	recipes := []catalog.Recipe{
		testRecipe(1, 3, 2000, catalog.Ingredient{Name: "oran berry", Count: 5}),
		testRecipe(2, 3, 1500, catalog.Ingredient{Name: "oran berry", Count: 3}),
		testRecipe(3, 3, 1800, catalog.Ingredient{Name: "oran berry", Count: 3}),
	}
	m, _ := newTestMatcher(t, recipes, map[string]int{"oran berry": 100})

	res, err := m.Search(context.Background(), &FilterSpec{PrioritizeMinBerries: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3 berries before 5; among the 3-berry pair the higher calories win.
	want := []int64{3, 2, 1}
	got := resultIDs(res)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected order %v, got %v", want, got)
	}
}

func TestSearchRankingDefault(t *testing.T) {
	recipes := []catalog.Recipe{
		testRecipe(1, 2, 1500, catalog.Ingredient{Name: "oran berry", Count: 1}),
		testRecipe(2, 5, 1500, catalog.Ingredient{Name: "oran berry", Count: 1}),
		testRecipe(3, 3, 2000, catalog.Ingredient{Name: "oran berry", Count: 1}),
	}
	m, _ := newTestMatcher(t, recipes, map[string]int{"oran berry": 100})

	res, err := m.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Calories first, stars break the 1500 tie.
	want := []int64{3, 2, 1}
	got := resultIDs(res)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected order %v, got %v", want, got)
	}
}

func TestSearchRankingStable(t *testing.T) {
	// Full ties keep catalog order.
	recipes := []catalog.Recipe{
		testRecipe(7, 3, 1500, catalog.Ingredient{Name: "oran berry", Count: 1}),
		testRecipe(2, 3, 1500, catalog.Ingredient{Name: "oran berry", Count: 1}),
		testRecipe(9, 3, 1500, catalog.Ingredient{Name: "oran berry", Count: 1}),
	}
	m, _ := newTestMatcher(t, recipes, map[string]int{"oran berry": 100})

	res, err := m.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{7, 2, 9}
	got := resultIDs(res)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected catalog order %v, got %v", want, got)
	}
}

func TestSearchIdempotent(t *testing.T) {
	recipes := []catalog.Recipe{
		testRecipe(1, 3, 1500, catalog.Ingredient{Name: "oran berry", Count: 1}),
		testRecipe(2, 4, 1500, catalog.Ingredient{Name: "oran berry", Count: 2}),
		testRecipe(3, 3, 2000, catalog.Ingredient{Name: "pecha berry", Count: 1}),
	}
	m, _ := newTestMatcher(t, recipes, map[string]int{"oran berry": 10, "pecha berry": 10})
	spec := &FilterSpec{Stat: catalog.StatStars, StatRange: Range{Min: 1, Max: 5}}

	first, err := m.Search(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := m.Search(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fmt.Sprint(resultIDs(first)) != fmt.Sprint(resultIDs(second)) {
		t.Errorf("identical searches diverged: %v vs %v", resultIDs(first), resultIDs(second))
	}
}

// TestSearchTruncation checks that the limit is applied after the global
// sort, so the returned page is the overall top of the ranking.
func TestSearchTruncation(t *testing.T) {
	const total = 60

	recipes := make([]catalog.Recipe, 0, total)
	for i := 1; i <= total; i++ {
		recipes = append(recipes, testRecipe(int64(i), 3, 1000+i,
			catalog.Ingredient{Name: "oran berry", Count: 1}))
	}
	m, _ := newTestMatcher(t, recipes, map[string]int{"oran berry": 1000})

	t.Run("default limit", func(t *testing.T) {
		res, err := m.Search(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Recipes) != 50 {
			t.Fatalf("expected 50 recipes, got %d", len(res.Recipes))
		}
		if res.Matched != total {
			t.Errorf("expected %d matched before truncation, got %d", total, res.Matched)
		}
		if !res.Truncated {
			t.Error("expected truncated result")
		}
		if res.Recipes[0].ID != total {
			t.Errorf("expected the richest recipe %d first, got %d", total, res.Recipes[0].ID)
		}
		// The cut must drop the 10 lowest-calorie recipes, not the last 10 scanned.
		if last := res.Recipes[len(res.Recipes)-1].ID; last != 11 {
			t.Errorf("expected the page to end at recipe 11, got %d", last)
		}
	})

	t.Run("caller limit", func(t *testing.T) {
		res, err := m.Search(context.Background(), &FilterSpec{Limit: 5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Recipes) != 5 {
			t.Fatalf("expected 5 recipes, got %d", len(res.Recipes))
		}
		if res.Recipes[0].ID != total {
			t.Errorf("expected the richest recipe %d first, got %d", total, res.Recipes[0].ID)
		}
	})

	t.Run("oversized limit clamped", func(t *testing.T) {
		res, err := m.Search(context.Background(), &FilterSpec{Limit: 500})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Recipes) != 50 {
			t.Errorf("expected the cap of 50 recipes, got %d", len(res.Recipes))
		}
	})
}

func TestSearchInvalidSpec(t *testing.T) {
	m, _ := newTestMatcher(t, []catalog.Recipe{
		testRecipe(1, 3, 1000, catalog.Ingredient{Name: "oran berry", Count: 1}),
	}, nil)

	spec := &FilterSpec{
		Flavors: map[catalog.Flavor]Range{catalog.FlavorSweet: {Min: 500, Max: 100}},
	}
	_, err := m.Search(context.Background(), spec)
	if !errors.IsInvalidRequest(err) {
		t.Errorf("expected invalid request error, got %v", err)
	}
}

func TestCook(t *testing.T) {
	ctx := context.Background()
	recipes := []catalog.Recipe{
		testRecipe(1, 3, 1500,
			catalog.Ingredient{Name: "oran berry", Count: 2},
			catalog.Ingredient{Name: "pecha berry", Count: 1},
		),
		testRecipe(2, 3, 1000, catalog.Ingredient{Name: "cheri berry", Count: 1}),
	}

	t.Run("deducts only its own ingredients", func(t *testing.T) {
		m, store := newTestMatcher(t, recipes,
			map[string]int{"oran berry": 5, "pecha berry": 4, "cheri berry": 3})

		res, err := m.Cook(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Recipe.ID != 1 {
			t.Errorf("expected recipe 1, got %d", res.Recipe.ID)
		}
		if res.Remaining["oran berry"] != 3 || res.Remaining["pecha berry"] != 3 {
			t.Errorf("unexpected remaining quantities: %v", res.Remaining)
		}
		if got := store.Get("cheri berry"); got != 3 {
			t.Errorf("cook must not touch other berries, cheri went to %d", got)
		}
	})

	t.Run("unknown recipe", func(t *testing.T) {
		m, store := newTestMatcher(t, recipes, map[string]int{"oran berry": 5})

		_, err := m.Cook(ctx, 404)
		if !errors.IsNotFound(err) {
			t.Fatalf("expected not found error, got %v", err)
		}
		if got := store.Get("oran berry"); got != 5 {
			t.Errorf("failed cook must not change inventory, got %d", got)
		}
	})

	t.Run("no craftability recheck, clamps at zero", func(t *testing.T) {
		m, store := newTestMatcher(t, recipes, map[string]int{"oran berry": 1})

		res, err := m.Cook(ctx, 1)
		if err != nil {
			t.Fatalf("expected clamped cook to succeed, got %v", err)
		}
		if res.Remaining["oran berry"] != 0 {
			t.Errorf("expected oran berry clamped to 0, got %d", res.Remaining["oran berry"])
		}
		if res.Remaining["pecha berry"] != 0 {
			t.Errorf("expected pecha berry clamped to 0, got %d", res.Remaining["pecha berry"])
		}
		if got := store.Get("oran berry"); got != 0 {
			t.Errorf("expected store oran berry 0, got %d", got)
		}
	})
}
