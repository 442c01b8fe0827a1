package match

import (
	"cmp"
	"slices"

	"enumarg-generator/internal/common"
)

// DefaultThreshold is the minimum similarity for a suggestion.
const DefaultThreshold = 0.6

// Suggestion is one ranked candidate.
type Suggestion struct {
	Name  string
	Score float64
}

// Suggest ranks candidates by similarity to name, best first, dropping
// those below threshold. Ties are broken by name.
func Suggest(name string, candidates []string, threshold float64) []Suggestion {
	var out []Suggestion

	for _, c := range candidates {
		if score := IdentSimilarity(name, c); score >= threshold {
			out = append(out, Suggestion{Name: c, Score: score})
		}
	}

	slices.SortFunc(out, func(a, b Suggestion) int {
		return cmp.Or(cmp.Compare(b.Score, a.Score), cmp.Compare(a.Name, b.Name))
	})

	return slices.CompactFunc(out, func(a, b Suggestion) bool { return a.Name == b.Name })
}

// Closest returns the best suggestion at DefaultThreshold, if any.
func Closest(name string, candidates []string) (string, bool) {
	best, ok := common.First(Suggest(name, candidates, DefaultThreshold))

	return best.Name, ok
}
