package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/whatscooking/internal/domain"
)

// ParseRating splits a "rate" payload into a recipe reference and a score.
// The score is the last word: "rate 2 5", "rate pad thai 4".
func ParseRating(payload string) (ref string, rating int, err error) {
	fields := strings.Fields(payload)
	if len(fields) < 2 {
		return "", 0, fmt.Errorf("usage: rate <recipe> <1-5>")
	}
	last := fields[len(fields)-1]
	rating, err = strconv.Atoi(strings.TrimSuffix(last, "/5"))
	if err != nil {
		return "", 0, fmt.Errorf("rating %q is not a number", last)
	}
	return strings.Join(fields[:len(fields)-1], " "), rating, nil
}

// ParseTerms splits an ingredient search payload. Commas separate terms
// when present so multi-word ingredients survive; otherwise every word is
// a term.
func ParseTerms(payload string) []string {
	var parts []string
	if strings.Contains(payload, ",") {
		parts = strings.Split(payload, ",")
	} else {
		parts = strings.Fields(payload)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseCount reads an optional count, falling back to def.
func ParseCount(payload string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		return def
	}
	return n
}

// ParseFilter reads "key=value" criteria. Keys: difficulty (or a bare
// easy/medium/hard), cuisine, max (or time), rating (or min). Words
// following cuisine= without a key extend the cuisine.
func ParseFilter(payload string) (domain.Filter, error) {
	var f domain.Filter
	lastKey := ""

	for _, tok := range strings.Fields(payload) {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			if d, err := domain.ParseDifficulty(tok); err == nil {
				f.Difficulty = d
				lastKey = ""
				continue
			}
			if lastKey == "cuisine" {
				f.Cuisine += " " + tok
				continue
			}
			return domain.Filter{}, fmt.Errorf("unexpected %q; use key=value", tok)
		}

		key = strings.ToLower(key)
		lastKey = key
		switch key {
		case "difficulty", "level":
			d, err := domain.ParseDifficulty(value)
			if err != nil {
				return domain.Filter{}, err
			}
			f.Difficulty = d
		case "cuisine":
			f.Cuisine = value
		case "max", "time", "maxtime":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return domain.Filter{}, fmt.Errorf("max time %q must be a positive number of minutes", value)
			}
			f.MaxTime = n
		case "rating", "min", "minrating":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > 5 {
				return domain.Filter{}, fmt.Errorf("minimum rating %q: %w", value, domain.ErrInvalidRating)
			}
			f.MinRating = n
		default:
			return domain.Filter{}, fmt.Errorf("unknown filter %q", key)
		}
	}
	return f, nil
}
