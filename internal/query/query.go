// Package query holds stateless, read-only derivations over a recipe
// snapshot. Nothing here mutates its input.
package query

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/hammamikhairi/whatscooking/internal/domain"
)

// IntSource draws a uniform int in [0, n). *rand.Rand satisfies it.
type IntSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the process-wide math/rand/v2 generator.
var DefaultSource IntSource = globalSource{}

// Random picks one recipe uniformly. ok is false for an empty list.
func Random(recipes []domain.Recipe, src IntSource) (r domain.Recipe, ok bool) {
	if len(recipes) == 0 {
		return domain.Recipe{}, false
	}
	if src == nil {
		src = DefaultSource
	}
	return recipes[src.IntN(len(recipes))], true
}

// SearchByIngredients keeps every recipe with an ingredient that contains,
// or is contained by, one of the terms, ignoring case. No terms means no
// filtering.
func SearchByIngredients(recipes []domain.Recipe, terms []string) []domain.Recipe {
	if len(terms) == 0 {
		return recipes
	}

	lowered := make([]string, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(t)
	}

	var out []domain.Recipe
	for _, r := range recipes {
		if hasIngredient(r, lowered) {
			out = append(out, r)
		}
	}
	return out
}

func hasIngredient(r domain.Recipe, terms []string) bool {
	for _, ing := range r.Ingredients {
		ing = strings.ToLower(ing)
		for _, term := range terms {
			if strings.Contains(ing, term) || strings.Contains(term, ing) {
				return true
			}
		}
	}
	return false
}

// Filter keeps recipes that satisfy every supplied criterion, in input order.
func Filter(recipes []domain.Recipe, f domain.Filter) []domain.Recipe {
	cuisine := strings.ToLower(f.Cuisine)

	var out []domain.Recipe
	for _, r := range recipes {
		if f.Difficulty != "" && r.Difficulty != f.Difficulty {
			continue
		}
		if cuisine != "" && !strings.Contains(strings.ToLower(r.Cuisine), cuisine) {
			continue
		}
		if f.MaxTime > 0 && r.CookingTime > f.MaxTime {
			continue
		}
		if f.MinRating > 0 && r.RatingValue() < f.MinRating {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SearchByName keeps recipes whose name contains q, ignoring case.
func SearchByName(recipes []domain.Recipe, q string) []domain.Recipe {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return recipes
	}

	var out []domain.Recipe
	for _, r := range recipes {
		if strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}

// RecentlyCooked returns up to n recipes that have been cooked, newest
// first. n <= 0 yields nothing.
func RecentlyCooked(recipes []domain.Recipe, n int) []domain.Recipe {
	if n <= 0 {
		return nil
	}

	var cooked []domain.Recipe
	for _, r := range recipes {
		if r.LastCooked != nil {
			cooked = append(cooked, r)
		}
	}
	sort.SliceStable(cooked, func(i, j int) bool {
		return cooked[i].LastCooked.After(*cooked[j].LastCooked)
	})
	return head(cooked, n)
}

// MostCooked returns up to n recipes by cooked count, highest first. Equal
// counts keep their input order. n <= 0 yields nothing.
func MostCooked(recipes []domain.Recipe, n int) []domain.Recipe {
	if n <= 0 {
		return nil
	}

	sorted := make([]domain.Recipe, len(recipes))
	copy(sorted, recipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CookedCount > sorted[j].CookedCount
	})
	return head(sorted, n)
}

func head(recipes []domain.Recipe, n int) []domain.Recipe {
	if len(recipes) > n {
		return recipes[:n]
	}
	return recipes
}
