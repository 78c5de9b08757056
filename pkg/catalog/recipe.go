package catalog

import (
	"fmt"
	"strings"

	"github.com/zadonuts/donutdex/pkg/defaults"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ingredient is one required berry within a recipe: a canonical berry name
// and the count consumed per cook.
type Ingredient struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Recipe is one immutable catalog entry. Flavor scores, boost, and calories
// are fixed attributes of the donut; FlavorSum and NumBerries are derived
// from the other fields at catalog load and never change afterwards.
type Recipe struct {
	ID            int64        `json:"id" yaml:"id"`
	Ingredients   []Ingredient `json:"ingredients" yaml:"ingredients"`
	Stars         int          `json:"stars" yaml:"stars"`
	Sweet         int          `json:"sweet" yaml:"sweet"`
	Spicy         int          `json:"spicy" yaml:"spicy"`
	Sour          int          `json:"sour" yaml:"sour"`
	Bitter        int          `json:"bitter" yaml:"bitter"`
	Fresh         int          `json:"fresh" yaml:"fresh"`
	FlavorSum     int          `json:"flavorSum" yaml:"flavorSum,omitempty"`
	FinalBoost    int          `json:"finalBoost" yaml:"finalBoost"`
	FinalCalories int          `json:"finalCalories" yaml:"finalCalories"`
	NumBerries    int          `json:"numBerries" yaml:"numBerries,omitempty"`
}

// Flavor returns the score for the given flavor, 0 for unknown flavors.
func (r *Recipe) Flavor(f Flavor) int {
	switch f {
	case FlavorSweet:
		return r.Sweet
	case FlavorSpicy:
		return r.Spicy
	case FlavorSour:
		return r.Sour
	case FlavorBitter:
		return r.Bitter
	case FlavorFresh:
		return r.Fresh
	default:
		return 0
	}
}

// Stat returns the value of the given secondary attribute, 0 for StatNone
// and unknown stats.
func (r *Recipe) Stat(s Stat) int {
	switch s {
	case StatStars:
		return r.Stars
	case StatFlavorSum:
		return r.FlavorSum
	case StatFinalBoost:
		return r.FinalBoost
	case StatFinalCalories:
		return r.FinalCalories
	default:
		return 0
	}
}

// Label renders the ingredient list for display, e.g.
// "2x Oran Berry, 1x Pecha Berry".
func (r *Recipe) Label() string {
	if len(r.Ingredients) == 0 {
		return "no berries"
	}
	parts := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		parts = append(parts, fmt.Sprintf("%dx %s", ing.Count, DisplayName(ing.Name)))
	}
	return strings.Join(parts, ", ")
}

// Clone returns a deep copy so callers can hold recipes without sharing
// the catalog's backing slices.
func (r *Recipe) Clone() *Recipe {
	clone := *r
	if len(r.Ingredients) > 0 {
		clone.Ingredients = make([]Ingredient, len(r.Ingredients))
		copy(clone.Ingredients, r.Ingredients)
	}
	return &clone
}

// Validate checks structural invariants. It expects normalize to have run,
// so derived fields are consistent by construction and are not re-checked.
func (r *Recipe) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("recipe id must be positive, got %d", r.ID)
	}
	if r.Stars < 0 || r.Stars > defaults.MaxStars {
		return fmt.Errorf("recipe %d: stars must be 0-%d, got %d", r.ID, defaults.MaxStars, r.Stars)
	}
	for _, f := range SupportedFlavors() {
		if r.Flavor(f) < 0 {
			return fmt.Errorf("recipe %d: %s score must not be negative", r.ID, f)
		}
	}
	if r.FinalBoost < 0 {
		return fmt.Errorf("recipe %d: final boost must not be negative", r.ID)
	}
	if r.FinalCalories < 0 {
		return fmt.Errorf("recipe %d: final calories must not be negative", r.ID)
	}

	seen := make(map[string]bool, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing.Name == "" {
			return fmt.Errorf("recipe %d: ingredient name must not be empty", r.ID)
		}
		if ing.Count <= 0 {
			return fmt.Errorf("recipe %d: count for %q must be positive, got %d", r.ID, ing.Name, ing.Count)
		}
		if seen[ing.Name] {
			return fmt.Errorf("recipe %d: duplicate ingredient %q", r.ID, ing.Name)
		}
		seen[ing.Name] = true
	}
	return nil
}

// normalize canonicalizes ingredient names and recomputes the derived
// FlavorSum and NumBerries fields.
func (r *Recipe) normalize() {
	sum := 0
	for i := range r.Ingredients {
		r.Ingredients[i].Name = CanonicalName(r.Ingredients[i].Name)
		sum += r.Ingredients[i].Count
	}
	r.NumBerries = sum
	r.FlavorSum = r.Sweet + r.Spicy + r.Sour + r.Bitter + r.Fresh
}

// CanonicalName lowers and whitespace-collapses a berry name. Canonical
// names are the keys used by the inventory store and the persistence layer.
func CanonicalName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// DisplayName renders a canonical berry name for humans ("oran berry"
// becomes "Oran Berry").
func DisplayName(name string) string {
	return cases.Title(language.English).String(name)
}
