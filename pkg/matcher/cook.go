package matcher

import (
	"context"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/errors"
)

// CookResult reports one cook: the recipe that was made and the quantity
// remaining for each of its ingredients afterwards.
type CookResult struct {
	Recipe    *catalog.Recipe `json:"recipe"`
	Remaining map[string]int  `json:"remaining"`
}

// Cook makes the identified recipe, deducting all of its ingredients from
// the inventory in one atomic step. There is no craftability check here:
// quantities clamp at zero when stock ran out between the search and the
// cook. An unknown recipe id returns a not-found error and changes
// nothing.
func (m *Matcher) Cook(ctx context.Context, id int64) (*CookResult, error) {
	recipe, ok := m.catalog.ByID(id)
	if !ok {
		cooksTotal.WithLabelValues(statusError).Inc()
		return nil, errors.Newf(errors.ErrCodeNotFound, "recipe %d not found", id)
	}

	remaining, err := m.store.Consume(ctx, recipe.Ingredients)
	if err != nil {
		cooksTotal.WithLabelValues(statusError).Inc()
		return nil, err
	}

	cooksTotal.WithLabelValues(statusOK).Inc()
	return &CookResult{Recipe: recipe, Remaining: remaining}, nil
}
