// Package inventory tracks how many of each berry the player currently has.
//
// The Store is the single mutable source of truth for quantities. Its key
// set is fixed at construction to the union of berry names referenced by
// the recipe catalog; bulk loads merge quantities into that set and never
// add keys. All mutations run under one write lock held across the
// write-through persist, so concurrent cooks cannot lose updates and a
// snapshot never observes a half-applied multi-ingredient deduction.
//
// Quantities never go below zero: deducting more than is on hand clamps at
// zero rather than failing. That clamp is a business rule, not an error
// path; it absorbs the rare race between a craftability check and the cook
// that follows it.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/errors"
)

// Entry is one (berry, quantity) pair, the unit of bulk loads and
// snapshots at the API surface.
type Entry struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// Backend persists the name to quantity mapping across sessions.
// Implementations must apply SaveQuantities atomically: either every given
// row is written or none.
type Backend interface {
	LoadInventory(ctx context.Context) (map[string]int, error)
	SaveQuantities(ctx context.Context, quantities map[string]int) error
}

// Store is the authoritative in-memory inventory, write-through persisted
// via a Backend.
type Store struct {
	mu      sync.RWMutex
	counts  map[string]int
	backend Backend
}

// NewStore loads persisted quantities and seeds an entry for every given
// catalog berry name, defaulting to zero. Persisted rows for berries no
// longer referenced by the catalog are ignored.
func NewStore(ctx context.Context, backend Backend, names []string) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}

	persisted, err := backend.LoadInventory(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to load inventory", err)
	}

	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name] = persisted[name]
	}

	return &Store{counts: counts, backend: backend}, nil
}

// Get returns the available quantity for a berry. Unknown names read as
// zero, never an error.
func (s *Store) Get(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[catalog.CanonicalName(name)]
}

// Len returns the number of tracked berries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.counts)
}

// Snapshot returns a copy of the current quantities. The copy is taken
// under the read lock, so it always reflects a fully committed state;
// callers may mutate it freely.
func (s *Store) Snapshot() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]int, len(s.counts))
	for name, qty := range s.counts {
		snap[name] = qty
	}
	return snap
}

// Entries returns the snapshot as a name-sorted entry list for display.
func (s *Store) Entries() []Entry {
	snap := s.Snapshot()

	entries := make([]Entry, 0, len(snap))
	for name, qty := range snap {
		entries = append(entries, Entry{Name: name, Quantity: qty})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries
}

// BulkLoad merges the given entries into the store and persists them in a
// single backend call. Entries for berries outside the catalog key set are
// skipped and counted, not errors. A negative quantity rejects the whole
// load. Returns the number of applied entries; on persist failure the
// in-memory state is unchanged.
func (s *Store) BulkLoad(ctx context.Context, entries []Entry) (int, error) {
	changed := make(map[string]int, len(entries))
	skipped := 0

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		name := catalog.CanonicalName(e.Name)
		if e.Quantity < 0 {
			return 0, errors.Newf(errors.ErrCodeInvalidRequest,
				"quantity for %q must not be negative, got %d", e.Name, e.Quantity)
		}
		if _, known := s.counts[name]; !known {
			skipped++
			continue
		}
		changed[name] = e.Quantity
	}

	if skipped > 0 {
		importSkipped.Add(float64(skipped))
		slog.Warn("bulk load skipped unknown berries", "skipped", skipped, "applied", len(changed))
	}
	if len(changed) == 0 {
		return 0, nil
	}

	if err := s.backend.SaveQuantities(ctx, changed); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, "failed to persist inventory", err)
	}
	for name, qty := range changed {
		s.counts[name] = qty
	}

	bulkLoads.Inc()
	return len(changed), nil
}

// Decrement reduces a berry's quantity by amount, clamping at zero, and
// persists the new value. Underflow is absorbed by the clamp and is never
// an error. Decrementing an unknown berry is a no-op returning zero; the
// key set never grows through mutation.
func (s *Store) Decrement(ctx context.Context, name string, amount int) (int, error) {
	if amount < 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidRequest,
			"decrement amount must not be negative, got %d", amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := catalog.CanonicalName(name)
	current, known := s.counts[key]
	if !known {
		return 0, nil
	}

	next := max(0, current-amount)
	if next == current {
		return next, nil
	}

	if err := s.backend.SaveQuantities(ctx, map[string]int{key: next}); err != nil {
		return current, errors.Wrap(errors.ErrCodeInternal, "failed to persist inventory", err)
	}
	s.counts[key] = next
	decrements.Inc()
	return next, nil
}

// Consume applies all of a recipe's ingredient deductions as one unit:
// the write lock is held across every decrement and the single persist
// call, so no reader can observe a partially cooked state. Returns the
// remaining quantity per ingredient. On persist failure nothing is
// applied.
func (s *Store) Consume(ctx context.Context, items []catalog.Ingredient) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := make(map[string]int, len(items))
	changed := make(map[string]int, len(items))
	for _, item := range items {
		current, known := s.counts[item.Name]
		if !known {
			remaining[item.Name] = 0
			continue
		}
		next := max(0, current-item.Count)
		remaining[item.Name] = next
		if next != current {
			changed[item.Name] = next
		}
	}

	if len(changed) == 0 {
		return remaining, nil
	}

	if err := s.backend.SaveQuantities(ctx, changed); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to persist inventory", err)
	}
	for name, qty := range changed {
		s.counts[name] = qty
	}
	return remaining, nil
}

// Refresh reloads quantities from the backend, replacing the in-memory
// view. The key set stays fixed: berries missing from the backend reset to
// zero, rows outside the catalog stay ignored.
func (s *Store) Refresh(ctx context.Context) error {
	persisted, err := s.backend.LoadInventory(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to reload inventory", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.counts {
		s.counts[name] = persisted[name]
	}
	refreshes.Inc()
	return nil
}
