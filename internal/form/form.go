// Package form holds the recipe create/edit form: raw user text in,
// validated domain payloads out. The store never validates, so every
// add and edit goes through here.
package form

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/whatscooking/internal/domain"
)

// RecipeForm is the editable state of a recipe being created or edited.
type RecipeForm struct {
	Name         string   `validate:"required"`
	CookingTime  string   `validate:"minutes"`
	Difficulty   string   `validate:"omitempty,difficulty"`
	Cuisine      string   `validate:"required"`
	Ingredients  []string `validate:"min=1"`
	Instructions []string
	Notes        string
	Rating       int `validate:"min=0,max=5"`
	Image        string
}

// messages mirror what the user sees for each failing field.
var messages = map[string]string{
	"Name":        "Please enter a recipe name",
	"CookingTime": "Please enter a valid cooking time",
	"Difficulty":  "Difficulty must be Easy, Medium or Hard",
	"Cuisine":     "Please enter a cuisine type",
	"Ingredients": "Please add at least one ingredient",
	"Rating":      "Rating must be between 1 and 5",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("minutes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
		return err == nil && n > 0
	})
	v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDifficulty(fl.Field().String())
		return err == nil
	})
	return v
}

// New returns an empty form with the default difficulty.
func New() *RecipeForm {
	return &RecipeForm{Difficulty: string(domain.DifficultyEasy)}
}

// FromRecipe pre-fills a form for editing r.
func FromRecipe(r domain.Recipe) *RecipeForm {
	return &RecipeForm{
		Name:         r.Name,
		CookingTime:  strconv.Itoa(r.CookingTime),
		Difficulty:   string(r.Difficulty),
		Cuisine:      r.Cuisine,
		Ingredients:  slices.Clone(r.Ingredients),
		Instructions: slices.Clone(r.Instructions),
		Notes:        r.Notes,
		Rating:       r.RatingValue(),
		Image:        r.Image,
	}
}

// AddIngredient appends a trimmed ingredient. Blanks and exact duplicates
// are ignored; the return reports whether the list changed.
func (f *RecipeForm) AddIngredient(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || slices.Contains(f.Ingredients, s) {
		return false
	}
	f.Ingredients = append(f.Ingredients, s)
	return true
}

// RemoveIngredient drops every entry equal to s.
func (f *RecipeForm) RemoveIngredient(s string) {
	f.Ingredients = slices.DeleteFunc(f.Ingredients, func(x string) bool { return x == s })
}

// AddInstruction appends a trimmed step, ignoring blanks.
func (f *RecipeForm) AddInstruction(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	f.Instructions = append(f.Instructions, s)
	return true
}

// RemoveInstruction drops the step at index i; out of range is a no-op.
func (f *RecipeForm) RemoveInstruction(i int) {
	if i < 0 || i >= len(f.Instructions) {
		return
	}
	f.Instructions = slices.Delete(f.Instructions, i, i+1)
}

// Validate checks the form and returns the first problem wrapped in
// domain.ErrInvalidRecipe, or nil.
func (f *RecipeForm) Validate() error {
	n := f.normalized()
	err := validate.Struct(n)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating recipe: %w", err)
	}
	field := verrs[0].Field()
	msg, ok := messages[field]
	if !ok {
		msg = field + " is invalid"
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidRecipe, msg)
}

// Input validates the form and converts it to a store payload.
func (f *RecipeForm) Input() (domain.RecipeInput, error) {
	if err := f.Validate(); err != nil {
		return domain.RecipeInput{}, err
	}
	n := f.normalized()

	minutes, _ := strconv.Atoi(n.CookingTime)
	difficulty := domain.DifficultyEasy
	if n.Difficulty != "" {
		difficulty, _ = domain.ParseDifficulty(n.Difficulty)
	}

	in := domain.RecipeInput{
		Name:         n.Name,
		CookingTime:  minutes,
		Difficulty:   difficulty,
		Cuisine:      n.Cuisine,
		Ingredients:  n.Ingredients,
		Instructions: n.Instructions,
		Notes:        n.Notes,
		Image:        n.Image,
	}
	if len(in.Instructions) == 0 {
		in.Instructions = nil
	}
	if n.Rating > 0 {
		rating := n.Rating
		in.Rating = &rating
	}
	return in, nil
}

// Apply validates the form and returns existing with the edited fields
// swapped in. Identity and cooking history are kept.
func (f *RecipeForm) Apply(existing domain.Recipe) (domain.Recipe, error) {
	in, err := f.Input()
	if err != nil {
		return domain.Recipe{}, err
	}
	out := existing.Clone()
	out.Name = in.Name
	out.CookingTime = in.CookingTime
	out.Difficulty = in.Difficulty
	out.Cuisine = in.Cuisine
	out.Ingredients = in.Ingredients
	out.Instructions = in.Instructions
	out.Notes = in.Notes
	out.Rating = in.Rating
	out.Image = in.Image
	return out, nil
}

// normalized returns a trimmed copy with blank list entries removed.
func (f *RecipeForm) normalized() RecipeForm {
	return RecipeForm{
		Name:         strings.TrimSpace(f.Name),
		CookingTime:  strings.TrimSpace(f.CookingTime),
		Difficulty:   strings.TrimSpace(f.Difficulty),
		Cuisine:      strings.TrimSpace(f.Cuisine),
		Ingredients:  compact(f.Ingredients),
		Instructions: compact(f.Instructions),
		Notes:        strings.TrimSpace(f.Notes),
		Rating:       f.Rating,
		Image:        strings.TrimSpace(f.Image),
	}
}

func compact(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
