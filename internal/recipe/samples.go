package recipe

import "github.com/hammamikhairi/whatscooking/internal/domain"

// Samples returns the built-in starter recipes, used to seed an empty
// collection.
func Samples() []domain.RecipeInput {
	return []domain.RecipeInput{
		vegetableStirFry(),
		chickenAlfredo(),
	}
}

// Seed adds the sample recipes when the store is empty. Returns how many
// were added.
func Seed(s *Store) int {
	if s.Len() > 0 {
		return 0
	}
	samples := Samples()
	for _, in := range samples {
		s.Add(in)
	}
	s.log.Debug("seeded %d recipes", len(samples))
	return len(samples)
}

func chickenAlfredo() domain.RecipeInput {
	return domain.RecipeInput{
		Name:        "Chicken Alfredo",
		CookingTime: 35,
		Difficulty:  domain.DifficultyMedium,
		Cuisine:     "Italian",
		Ingredients: []string{
			"250g spaghetti",
			"2 medium chicken breasts",
			"1 cup creme fraiche",
			"1 cup grated gruyere cheese",
			"3 tablespoons margarine",
			"4 cloves garlic",
			"1 tablespoon olive oil",
			"salt",
			"black pepper",
		},
		Instructions: []string{
			"Bring a large pot of salted water to a boil. It should taste like the sea.",
			"Season the chicken with salt and pepper and pound it to an even thickness.",
			"Sear the chicken in olive oil over medium-high heat, about 6 minutes per side, until it hits 165 F. Rest it.",
			"Cook the spaghetti until al dente. Reserve a cup of pasta water before draining.",
			"Melt the margarine in the same skillet and cook the minced garlic for a minute. Don't burn it.",
			"Stir in the creme fraiche and let it reduce for about 3 minutes.",
			"Off the heat, stir in the gruyere until smooth. Loosen with pasta water if needed.",
			"Toss the pasta in the sauce, top with sliced chicken and serve immediately.",
		},
		Notes: "Alfredo does not reheat well.",
	}
}

func vegetableStirFry() domain.RecipeInput {
	return domain.RecipeInput{
		Name:        "Vegetable Stir Fry",
		CookingTime: 20,
		Difficulty:  domain.DifficultyEasy,
		Cuisine:     "Asian",
		Ingredients: []string{
			"1 large bell pepper",
			"2 cups broccoli florets",
			"1 medium carrot",
			"1 cup snap peas",
			"3 cloves garlic",
			"1 tablespoon grated ginger",
			"2 tablespoons soy sauce",
			"1 tablespoon sesame oil",
			"2 tablespoons vegetable oil",
		},
		Instructions: []string{
			"Start the rice first if you're serving it.",
			"Prep every vegetable before the pan goes on.",
			"Mix soy sauce, sesame oil and 2 tablespoons of water.",
			"Heat the wok on high until it just smokes, then add the oil.",
			"Stir-fry broccoli and carrot for 2 minutes, then peppers and snap peas for 2 more. Let things char.",
			"Push the vegetables aside and fry garlic and ginger for 30 seconds.",
			"Pour in the sauce, toss, and serve right away.",
		},
		Notes: "The key is a screaming hot pan and not overcrowding it.",
	}
}
