package query

import "github.com/hammamikhairi/whatscooking/internal/domain"

// Summary is the collection-wide profile view.
type Summary struct {
	TotalRecipes   int
	TotalCooked    int     // sum of cooked counts
	AverageRating  float64 // unrated recipes count as 0
	TopCuisine     string  // empty when there are no recipes
	MinutesCooking int     // sum of cookingTime * cookedCount
	MostCooked     string  // name of the most cooked recipe, first wins ties
}

// Summarize computes the profile statistics for a snapshot.
func Summarize(recipes []domain.Recipe) Summary {
	s := Summary{TotalRecipes: len(recipes)}
	if len(recipes) == 0 {
		return s
	}

	ratingSum := 0
	counts := make(map[string]int)
	var order []string
	best := recipes[0]

	for _, r := range recipes {
		s.TotalCooked += r.CookedCount
		s.MinutesCooking += r.CookingTime * r.CookedCount
		ratingSum += r.RatingValue()

		if _, seen := counts[r.Cuisine]; !seen {
			order = append(order, r.Cuisine)
		}
		counts[r.Cuisine]++

		if r.CookedCount > best.CookedCount {
			best = r
		}
	}

	s.AverageRating = float64(ratingSum) / float64(len(recipes))
	s.MostCooked = best.Name

	top := 0
	for _, c := range order {
		if counts[c] > top {
			top = counts[c]
			s.TopCuisine = c
		}
	}
	return s
}
