package query

import (
	"github.com/sahilm/fuzzy"

	"github.com/hammamikhairi/whatscooking/internal/domain"
)

// nameSource exposes recipe names to the fuzzy matcher.
type nameSource []domain.Recipe

func (s nameSource) String(i int) string { return s[i].Name }
func (s nameSource) Len() int            { return len(s) }

// FuzzyFind ranks recipes whose name fuzzily matches q, best first.
func FuzzyFind(recipes []domain.Recipe, q string) []domain.Recipe {
	if q == "" {
		return nil
	}

	matches := fuzzy.FindFrom(q, nameSource(recipes))
	out := make([]domain.Recipe, 0, len(matches))
	for _, m := range matches {
		out = append(out, recipes[m.Index])
	}
	return out
}
