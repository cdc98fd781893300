package query

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/whatscooking/internal/domain"
)

// fixedSource always returns the same index.
type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

func names(recipes []domain.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}

func rating(v int) *int { return &v }

func at(hour int) *time.Time {
	t := time.Date(2026, 4, 1, hour, 0, 0, 0, time.UTC)
	return &t
}

func sampleList() []domain.Recipe {
	return []domain.Recipe{
		{ID: "1", Name: "Spaghetti Carbonara", CookingTime: 25, Difficulty: domain.DifficultyMedium, Cuisine: "Italian",
			Ingredients: []string{"Spaghetti", "Eggs", "Pancetta", "Parmesan"}, Rating: rating(5)},
		{ID: "2", Name: "Chicken Tikka", CookingTime: 50, Difficulty: domain.DifficultyHard, Cuisine: "Indian",
			Ingredients: []string{"Chicken thighs", "Yogurt", "Garam masala"}, Rating: rating(3)},
		{ID: "3", Name: "Caprese Salad", CookingTime: 10, Difficulty: domain.DifficultyEasy, Cuisine: "Italian",
			Ingredients: []string{"Tomato", "Mozzarella", "Basil"}},
		{ID: "4", Name: "Pad Thai", CookingTime: 30, Difficulty: domain.DifficultyMedium, Cuisine: "Thai",
			Ingredients: []string{"Rice noodles", "Egg", "Peanuts", "Lime"}, Rating: rating(4)},
	}
}

func TestRandom(t *testing.T) {
	list := sampleList()

	_, ok := Random(nil, fixedSource(0))
	assert.False(t, ok)

	for i := range list {
		r, ok := Random(list, fixedSource(i))
		require.True(t, ok)
		assert.Equal(t, list[i].ID, r.ID)
	}

	// A seeded generator is reproducible.
	a, _ := Random(list, rand.New(rand.NewPCG(1, 2)))
	b, _ := Random(list, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, a.ID, b.ID)

	// Nil falls back to the global source.
	_, ok = Random(list, nil)
	assert.True(t, ok)
}

func TestSearchByIngredients(t *testing.T) {
	list := sampleList()

	tests := []struct {
		name  string
		terms []string
		want  []string
	}{
		{"no terms returns everything", nil, names(list)},
		{"empty slice returns everything", []string{}, names(list)},
		{"case-insensitive contains", []string{"SPAGH"}, []string{"Spaghetti Carbonara"}},
		{"term contains ingredient", []string{"free range eggs"}, []string{"Spaghetti Carbonara", "Pad Thai"}},
		{"any term matches", []string{"basil", "yogurt"}, []string{"Chicken Tikka", "Caprese Salad"}},
		{"nothing matches", []string{"saffron"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchByIngredients(list, tt.terms)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilterHardAndQuick(t *testing.T) {
	list := []domain.Recipe{
		{ID: "A", Name: "A", Difficulty: domain.DifficultyHard, CookingTime: 20},
		{ID: "B", Name: "B", Difficulty: domain.DifficultyHard, CookingTime: 45},
		{ID: "C", Name: "C", Difficulty: domain.DifficultyEasy, CookingTime: 10},
	}

	got := Filter(list, domain.Filter{Difficulty: domain.DifficultyHard, MaxTime: 30})
	assert.Equal(t, []string{"A"}, names(got))
}

func TestFilter(t *testing.T) {
	list := sampleList()

	tests := []struct {
		name   string
		filter domain.Filter
		want   []string
	}{
		{"no criteria", domain.Filter{}, names(list)},
		{"cuisine substring ignores case", domain.Filter{Cuisine: "ital"}, []string{"Spaghetti Carbonara", "Caprese Salad"}},
		{"max time inclusive", domain.Filter{MaxTime: 25}, []string{"Spaghetti Carbonara", "Caprese Salad"}},
		{"unrated counts as zero", domain.Filter{MinRating: 1}, []string{"Spaghetti Carbonara", "Chicken Tikka", "Pad Thai"}},
		{"min rating", domain.Filter{MinRating: 4}, []string{"Spaghetti Carbonara", "Pad Thai"}},
		{"all criteria", domain.Filter{Difficulty: domain.DifficultyMedium, Cuisine: "thai", MaxTime: 30, MinRating: 4}, []string{"Pad Thai"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(list, tt.filter)))
		})
	}
}

func TestSearchByName(t *testing.T) {
	list := sampleList()
	assert.Equal(t, names(list), names(SearchByName(list, "  ")))
	assert.Equal(t, []string{"Caprese Salad"}, names(SearchByName(list, "SALAD")))
	assert.Empty(t, SearchByName(list, "burger"))
}

func TestMostCookedStableTies(t *testing.T) {
	list := []domain.Recipe{
		{ID: "R1", Name: "R1", CookedCount: 5},
		{ID: "R2", Name: "R2", CookedCount: 5},
		{ID: "R3", Name: "R3", CookedCount: 3},
		{ID: "R4", Name: "R4", CookedCount: 1},
	}

	assert.Equal(t, []string{"R1", "R2"}, names(MostCooked(list, 2)))
	assert.Equal(t, []string{"R1", "R2", "R3", "R4"}, names(MostCooked(list, 10)))
	assert.Empty(t, MostCooked(list, 0))

	// Input isn't reordered.
	assert.Equal(t, "R1", list[0].ID)

	reversed := []domain.Recipe{list[3], list[2], list[1], list[0]}
	assert.Equal(t, []string{"R2", "R1", "R3"}, names(MostCooked(reversed, 3)))
}

func TestRecentlyCooked(t *testing.T) {
	list := []domain.Recipe{
		{ID: "old", Name: "old", LastCooked: at(8)},
		{ID: "never", Name: "never"},
		{ID: "new", Name: "new", LastCooked: at(20)},
		{ID: "mid", Name: "mid", LastCooked: at(12)},
	}

	assert.Equal(t, []string{"new"}, names(RecentlyCooked(list, 1)))
	assert.Equal(t, []string{"new", "mid", "old"}, names(RecentlyCooked(list, 5)))
	assert.Empty(t, RecentlyCooked(list, 0))
	assert.Empty(t, RecentlyCooked([]domain.Recipe{{ID: "x"}}, 3))
}

func TestFuzzyFind(t *testing.T) {
	list := sampleList()

	got := FuzzyFind(list, "carb")
	require.NotEmpty(t, got)
	assert.Equal(t, "Spaghetti Carbonara", got[0].Name)

	got = FuzzyFind(list, "pdthai")
	require.NotEmpty(t, got)
	assert.Equal(t, "Pad Thai", got[0].Name)

	assert.Empty(t, FuzzyFind(list, "zzz"))
	assert.Empty(t, FuzzyFind(list, ""))
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	list := sampleList()
	list[0].CookedCount = 2 // 25 min
	list[1].CookedCount = 3 // 50 min
	list[3].CookedCount = 3 // 30 min

	s := Summarize(list)
	assert.Equal(t, 4, s.TotalRecipes)
	assert.Equal(t, 8, s.TotalCooked)
	assert.InDelta(t, 3.0, s.AverageRating, 1e-9) // (5+3+0+4)/4
	assert.Equal(t, "Italian", s.TopCuisine)
	assert.Equal(t, 2*25+3*50+3*30, s.MinutesCooking)
	assert.Equal(t, "Chicken Tikka", s.MostCooked)
}

func TestSummarizeCuisineTieKeepsFirstSeen(t *testing.T) {
	list := []domain.Recipe{
		{Name: "a", Cuisine: "Thai"},
		{Name: "b", Cuisine: "Greek"},
		{Name: "c", Cuisine: "Greek"},
		{Name: "d", Cuisine: "Thai"},
	}
	assert.Equal(t, "Thai", Summarize(list).TopCuisine)
	assert.Equal(t, "a", Summarize(list).MostCooked)
}
