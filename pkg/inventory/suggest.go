package inventory

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/zadonuts/donutdex/pkg/catalog"
)

// suggestThreshold is the minimum score an unknown berry name must reach
// against some catalog name before it is offered as a likely typo.
const suggestThreshold = 0.5

// Suggest returns the catalog berry name closest to the given unknown
// input, if any candidate scores at or above the suggestion threshold.
// Ties break alphabetically so repeated imports produce stable hints.
func Suggest(input string, candidates []string) (string, bool) {
	scored := scoreCandidates(catalog.CanonicalName(input), candidates)
	if len(scored) == 0 || scored[0].score < suggestThreshold {
		return "", false
	}
	return scored[0].name, true
}

type scoredName struct {
	name  string
	score float64
}

func scoreCandidates(input string, candidates []string) []scoredName {
	if input == "" {
		return nil
	}

	scored := make([]scoredName, 0, len(candidates))
	for _, cand := range candidates {
		var score float64
		switch {
		case cand == input:
			score = 1.0
		case len(input) >= 2 && strings.HasPrefix(cand, input):
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(input, cand)
			if dist > distanceLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		scored = append(scored, scoredName{name: cand, score: clampScore(score)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].name < scored[j].name
	})
	return scored
}

// distanceLimit scales the tolerated edit distance with candidate length,
// so short names do not match everything.
func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
