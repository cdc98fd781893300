// Package domain defines the core types and interfaces for the recipe manager.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty grades how demanding a recipe is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists every difficulty in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ParseDifficulty converts user text ("hard", "Medium") to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Recipe is the single persisted entity.
type Recipe struct {
	ID           string
	Name         string
	CookingTime  int // minutes
	Difficulty   Difficulty
	Cuisine      string
	Ingredients  []string
	Instructions []string // nil when no instructions were recorded
	Notes        string   // empty when absent
	Rating       *int     // nil when unrated
	CookedCount  int
	LastCooked   *time.Time
	CreatedAt    time.Time
	Image        string // local URI, empty when absent
}

// RecipeInput is the payload for creating a recipe. The store assigns
// the ID, creation time and cooked counter.
type RecipeInput struct {
	Name         string
	CookingTime  int
	Difficulty   Difficulty
	Cuisine      string
	Ingredients  []string
	Instructions []string
	Notes        string
	Rating       *int
	Image        string
}

// Clone returns a deep copy so callers can never alias the store's slices
// or pointers.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = cloneStrings(r.Ingredients)
	out.Instructions = cloneStrings(r.Instructions)
	if r.Rating != nil {
		v := *r.Rating
		out.Rating = &v
	}
	if r.LastCooked != nil {
		t := *r.LastCooked
		out.LastCooked = &t
	}
	return out
}

// RatingValue returns the rating, or 0 when unrated.
func (r Recipe) RatingValue() int {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Filter narrows a recipe list. The zero value of each field means the
// criterion was not supplied.
type Filter struct {
	Difficulty Difficulty // exact match
	Cuisine    string     // case-insensitive substring
	MaxTime    int        // CookingTime <= MaxTime
	MinRating  int        // rating (0 when unrated) >= MinRating
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}
