package form

import "strings"

// CommonIngredients feeds ingredient suggestions while typing.
var CommonIngredients = []string{
	"Salt", "Pepper", "Olive Oil", "Garlic", "Onion", "Tomato", "Chicken", "Beef",
	"Rice", "Pasta", "Flour", "Eggs", "Milk", "Butter", "Cheese", "Lemon",
	"Basil", "Oregano", "Thyme", "Rosemary", "Cumin", "Paprika", "Chili Powder",
	"Soy Sauce", "Worcestershire Sauce", "Honey", "Sugar", "Bread", "Potato",
	"Carrot", "Broccoli", "Spinach", "Mushroom", "Bell Pepper", "Cucumber",
	"Avocado", "Lime", "Ginger", "Cilantro", "Parsley", "Bay Leaves",
}

// Suggest returns common ingredients containing prefix (case-insensitive)
// that the form doesn't already list.
func (f *RecipeForm) Suggest(prefix string) []string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	if p == "" {
		return nil
	}

	var out []string
	for _, ing := range CommonIngredients {
		if !strings.Contains(strings.ToLower(ing), p) {
			continue
		}
		if f.has(ing) {
			continue
		}
		out = append(out, ing)
	}
	return out
}

func (f *RecipeForm) has(s string) bool {
	for _, x := range f.Ingredients {
		if x == s {
			return true
		}
	}
	return false
}
