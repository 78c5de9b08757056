package matcher

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/errors"
)

// Query parameter names accepted by ParseFilter. Flavor parameters use
// the flavor names themselves (sweet, spicy, sour, bitter, fresh).
const (
	QueryParamStat       = "stat"
	QueryParamStatRange  = "statRange"
	QueryParamMinBerries = "minBerries"
	QueryParamLimit      = "limit"
)

// Range is an inclusive [Min, Max] bound on a recipe attribute. Both ends
// are part of the match: a recipe sitting exactly on Min or Max passes.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether v falls inside the range, both ends inclusive.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// String renders the range in the MIN:MAX form ParseRange accepts.
func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.Min, r.Max)
}

// Validate rejects negative and inverted bounds.
func (r Range) Validate() error {
	if r.Min < 0 || r.Max < 0 {
		return errors.Newf(errors.ErrCodeInvalidRequest,
			"range bounds must not be negative, got %s", r)
	}
	if r.Min > r.Max {
		return errors.Newf(errors.ErrCodeInvalidRequest,
			"range minimum %d exceeds maximum %d", r.Min, r.Max)
	}
	return nil
}

// ParseRange parses "MIN:MAX" or a single "N", which means the exact
// value [N, N]. Bound ordering is checked by Validate, not here.
func ParseRange(s string) (Range, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 1:
		n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return Range{}, fmt.Errorf("invalid range %q: expected MIN:MAX or a single number", s)
		}
		return Range{Min: n, Max: n}, nil
	case 2:
		lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return Range{}, fmt.Errorf("invalid range minimum %q", parts[0])
		}
		hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Range{}, fmt.Errorf("invalid range maximum %q", parts[1])
		}
		return Range{Min: lo, Max: hi}, nil
	default:
		return Range{}, fmt.Errorf("invalid range %q: expected MIN:MAX or a single number", s)
	}
}

// FilterSpec captures one search request: inclusive flavor ranges, at
// most one secondary stat range, the ranking mode, and a result cap. The
// zero value matches every craftable recipe. Specs are built per request
// and never retained between searches.
type FilterSpec struct {
	Flavors              map[catalog.Flavor]Range `json:"flavors,omitempty" yaml:"flavors,omitempty"`
	Stat                 catalog.Stat             `json:"stat,omitempty" yaml:"stat,omitempty"`
	StatRange            Range                    `json:"statRange,omitempty" yaml:"statRange,omitempty"`
	PrioritizeMinBerries bool                     `json:"minBerries,omitempty" yaml:"minBerries,omitempty"`
	Limit                int                      `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Validate checks flavor names, stat name, range bounds, and the limit.
// StatRange is only considered when a stat is set.
func (s *FilterSpec) Validate() error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "filter cannot be nil")
	}

	for f, rng := range s.Flavors {
		if !f.IsValid() {
			return errors.Newf(errors.ErrCodeInvalidRequest,
				"invalid flavor: %s, supported: %s", f, supportedFlavorList())
		}
		if err := rng.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("invalid %s range", f), err)
		}
	}

	if s.Stat != catalog.StatNone {
		if !s.Stat.IsValid() {
			return errors.Newf(errors.ErrCodeInvalidRequest,
				"invalid stat: %s, supported: %s", s.Stat, supportedStatList())
		}
		if err := s.StatRange.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("invalid %s range", s.Stat), err)
		}
	}

	if s.Limit < 0 {
		return errors.Newf(errors.ErrCodeInvalidRequest, "limit must not be negative, got %d", s.Limit)
	}
	return nil
}

// Matches reports whether the recipe's attributes fall inside every given
// range. Craftability is the caller's concern, not the filter's.
func (s *FilterSpec) Matches(r *catalog.Recipe) bool {
	for f, rng := range s.Flavors {
		if !rng.Contains(r.Flavor(f)) {
			return false
		}
	}
	if s.Stat != catalog.StatNone && !s.StatRange.Contains(r.Stat(s.Stat)) {
		return false
	}
	return true
}

// ParseFilter builds a FilterSpec from HTTP query values, for example
// "sweet=420:760&stat=stars&statRange=3:5&minBerries=true&limit=25". The
// stat and statRange parameters come as a pair; either one alone is
// rejected. The returned spec is already validated.
func ParseFilter(values url.Values) (*FilterSpec, error) {
	spec := &FilterSpec{}

	for _, f := range catalog.SupportedFlavors() {
		raw := values.Get(f.String())
		if raw == "" {
			continue
		}
		rng, err := ParseRange(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid %s parameter", f), err)
		}
		if spec.Flavors == nil {
			spec.Flavors = make(map[catalog.Flavor]Range)
		}
		spec.Flavors[f] = rng
	}

	statRaw := values.Get(QueryParamStat)
	rangeRaw := values.Get(QueryParamStatRange)
	switch {
	case statRaw != "" && rangeRaw == "":
		return nil, errors.Newf(errors.ErrCodeInvalidRequest,
			"%s requires a %s parameter", QueryParamStat, QueryParamStatRange)
	case statRaw == "" && rangeRaw != "":
		return nil, errors.Newf(errors.ErrCodeInvalidRequest,
			"%s requires a %s parameter", QueryParamStatRange, QueryParamStat)
	case statRaw != "":
		stat, err := catalog.ParseStat(statRaw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid stat parameter", err)
		}
		rng, err := ParseRange(rangeRaw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid %s parameter", QueryParamStatRange), err)
		}
		spec.Stat = stat
		spec.StatRange = rng
	}

	if raw := values.Get(QueryParamMinBerries); raw != "" {
		spec.PrioritizeMinBerries = raw == "true" || raw == "1"
	}

	if raw := values.Get(QueryParamLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, errors.Newf(errors.ErrCodeInvalidRequest,
				"limit must be a positive number, got %q", raw)
		}
		spec.Limit = n
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func supportedFlavorList() string {
	flavors := catalog.SupportedFlavors()
	names := make([]string, 0, len(flavors))
	for _, f := range flavors {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

func supportedStatList() string {
	stats := catalog.SupportedStats()
	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
