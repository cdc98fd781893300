package recipe

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hammamikhairi/whatscooking/internal/domain"
)

// timeLayout is ISO-8601 in UTC with millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// record is the persisted JSON shape of a recipe. Dates travel as strings
// and are parsed back into time.Time on load.
type record struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CookingTime  int      `json:"cookingTime"`
	Difficulty   string   `json:"difficulty"`
	Cuisine      string   `json:"cuisine"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Notes        string   `json:"notes,omitempty"`
	Rating       *int     `json:"rating,omitempty"`
	CookedCount  int      `json:"cookedCount"`
	LastCooked   string   `json:"lastCooked,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	Image        string   `json:"image,omitempty"`
}

// Encode serializes the whole list as a JSON array.
func Encode(recipes []domain.Recipe) ([]byte, error) {
	out := make([]record, len(recipes))
	for i, r := range recipes {
		rec := record{
			ID:           r.ID,
			Name:         r.Name,
			CookingTime:  r.CookingTime,
			Difficulty:   string(r.Difficulty),
			Cuisine:      r.Cuisine,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
			Notes:        r.Notes,
			Rating:       r.Rating,
			CookedCount:  r.CookedCount,
			CreatedAt:    formatTime(r.CreatedAt),
			Image:        r.Image,
		}
		if rec.Ingredients == nil {
			rec.Ingredients = []string{}
		}
		if r.LastCooked != nil {
			rec.LastCooked = formatTime(*r.LastCooked)
		}
		out[i] = rec
	}
	return json.Marshal(out)
}

// Decode parses a persisted blob back into recipes.
func Decode(blob []byte) ([]domain.Recipe, error) {
	var recs []record
	if err := json.Unmarshal(blob, &recs); err != nil {
		return nil, fmt.Errorf("parsing recipes: %w", err)
	}

	out := make([]domain.Recipe, 0, len(recs))
	for i, rec := range recs {
		createdAt, err := parseTime(rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("recipe %d (%s): createdAt: %w", i, rec.ID, err)
		}
		r := domain.Recipe{
			ID:           rec.ID,
			Name:         rec.Name,
			CookingTime:  rec.CookingTime,
			Difficulty:   domain.Difficulty(rec.Difficulty),
			Cuisine:      rec.Cuisine,
			Ingredients:  rec.Ingredients,
			Instructions: rec.Instructions,
			Notes:        rec.Notes,
			Rating:       rec.Rating,
			CookedCount:  rec.CookedCount,
			CreatedAt:    createdAt,
			Image:        rec.Image,
		}
		if rec.LastCooked != "" {
			t, err := parseTime(rec.LastCooked)
			if err != nil {
				return nil, fmt.Errorf("recipe %d (%s): lastCooked: %w", i, rec.ID, err)
			}
			r.LastCooked = &t
		}
		out = append(out, r)
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts any RFC 3339 timestamp and normalises it to UTC.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
