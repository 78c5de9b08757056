package catalog

import (
	"fmt"
	"strings"
)

// Flavor represents one of the named taste scores attached to each recipe.
type Flavor string

const (
	FlavorSweet  Flavor = "sweet"
	FlavorSpicy  Flavor = "spicy"
	FlavorSour   Flavor = "sour"
	FlavorBitter Flavor = "bitter"
	FlavorFresh  Flavor = "fresh"
)

// String returns the string representation of the flavor.
func (f Flavor) String() string {
	return string(f)
}

// IsValid returns true if the flavor is a valid supported value.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorSweet, FlavorSpicy, FlavorSour, FlavorBitter, FlavorFresh:
		return true
	default:
		return false
	}
}

// SupportedFlavors returns all supported flavor values.
func SupportedFlavors() []Flavor {
	return []Flavor{FlavorSweet, FlavorSpicy, FlavorSour, FlavorBitter, FlavorFresh}
}

// ParseFlavor parses a flavor name (case-insensitive).
func ParseFlavor(s string) (Flavor, error) {
	f := Flavor(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		supported := make([]string, 0, len(SupportedFlavors()))
		for _, v := range SupportedFlavors() {
			supported = append(supported, v.String())
		}
		return "", fmt.Errorf("invalid flavor: %s, supported: %s", s, strings.Join(supported, ", "))
	}
	return f, nil
}

// Stat represents a secondary recipe attribute usable as a search constraint,
// alongside the per-flavor ranges.
type Stat string

const (
	// StatNone is the zero value, meaning no secondary constraint.
	StatNone          Stat = ""
	StatStars         Stat = "stars"
	StatFlavorSum     Stat = "flavor_sum"
	StatFinalBoost    Stat = "final_boost"
	StatFinalCalories Stat = "final_calories"
)

// String returns the string representation of the stat.
func (s Stat) String() string {
	return string(s)
}

// IsValid returns true if the stat is a valid supported value.
// StatNone is not a valid constraint target.
func (s Stat) IsValid() bool {
	switch s {
	case StatStars, StatFlavorSum, StatFinalBoost, StatFinalCalories:
		return true
	default:
		return false
	}
}

// SupportedStats returns all supported stat values.
func SupportedStats() []Stat {
	return []Stat{StatStars, StatFlavorSum, StatFinalBoost, StatFinalCalories}
}

// ParseStat parses a stat name (case-insensitive). An empty string parses to
// StatNone, meaning no secondary constraint.
func ParseStat(s string) (Stat, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return StatNone, nil
	}

	st := Stat(normalized)
	if !st.IsValid() {
		supported := make([]string, 0, len(SupportedStats()))
		for _, v := range SupportedStats() {
			supported = append(supported, v.String())
		}
		return "", fmt.Errorf("invalid stat: %s, supported: %s", s, strings.Join(supported, ", "))
	}
	return st, nil
}
