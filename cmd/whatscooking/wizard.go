package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/whatscooking/internal/conversation"
	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/form"
)

// errCancelled is returned when the user types "cancel" mid-form.
var errCancelled = errors.New("form cancelled")

// lineReader blocks until the user submits a line.
type lineReader func(ctx context.Context) (string, error)

// wizard walks the user through a recipe form one field at a time.
// Every answer is typed: "." keeps the current value, "-" clears it.
type wizard struct {
	out  screen
	next lineReader
}

// run fills f until it validates. Invalid forms are walked again with the
// user's answers kept as the current values.
func (w *wizard) run(ctx context.Context, f *form.RecipeForm) error {
	w.out.PrintHint(conversation.LineFormHint())
	for {
		if err := w.fill(ctx, f); err != nil {
			return err
		}
		err := f.Validate()
		if err == nil {
			return nil
		}
		w.out.PrintUrgent(conversation.LineFormRetry(problem(err)))
	}
}

func (w *wizard) fill(ctx context.Context, f *form.RecipeForm) error {
	fields := []struct {
		label string
		value *string
	}{
		{"Recipe name", &f.Name},
		{"Cooking time (minutes)", &f.CookingTime},
		{"Difficulty (Easy, Medium, Hard)", &f.Difficulty},
		{"Cuisine", &f.Cuisine},
	}
	for _, fd := range fields {
		if err := w.text(ctx, fd.label, fd.value); err != nil {
			return err
		}
	}

	if err := w.list(ctx, "Ingredients", "ingredient", &f.Ingredients, f.AddIngredient, func(i int) {
		f.RemoveIngredient(f.Ingredients[i])
	}, func(prefix string) {
		if s := f.Suggest(prefix); len(s) > 0 {
			w.out.PrintHint(conversation.LineSuggestions(s))
		} else {
			w.out.PrintHint(conversation.LineNoSuggestions(prefix))
		}
	}); err != nil {
		return err
	}
	if err := w.list(ctx, "Instructions", "step", &f.Instructions, f.AddInstruction, f.RemoveInstruction, nil); err != nil {
		return err
	}

	if err := w.text(ctx, "Notes", &f.Notes); err != nil {
		return err
	}
	if err := w.rating(ctx, &f.Rating); err != nil {
		return err
	}
	return w.text(ctx, "Photo (local path or URI)", &f.Image)
}

// ask reads one trimmed answer, turning "cancel" into errCancelled.
func (w *wizard) ask(ctx context.Context) (string, error) {
	line, err := w.next(ctx)
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "cancel") {
		return "", errCancelled
	}
	return line, nil
}

func (w *wizard) text(ctx context.Context, label string, v *string) error {
	prompt := label
	if *v != "" {
		prompt += " [" + *v + "]"
	}
	w.out.PrintChat(prompt + ":")

	line, err := w.ask(ctx)
	if err != nil {
		return err
	}
	switch line {
	case "", ".":
	case "-":
		*v = ""
	default:
		*v = line
	}
	return nil
}

func (w *wizard) rating(ctx context.Context, v *int) error {
	for {
		prompt := "Rating (1-5, '-' for none)"
		if *v > 0 {
			prompt += " [" + conversation.Stars(*v) + "]"
		}
		w.out.PrintChat(prompt + ":")

		line, err := w.ask(ctx)
		if err != nil {
			return err
		}
		switch line {
		case "", ".":
			return nil
		case "-":
			*v = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSuffix(line, "/5"))
		if err != nil {
			w.out.PrintHint(conversation.LineNotANumber(line))
			continue
		}
		*v = n
		return nil
	}
}

// list edits a multi-line field. remove drops the entry at a zero-based
// index. query, when set, handles lines ending in "?".
func (w *wizard) list(ctx context.Context, title, item string, entries *[]string, add func(string) bool, remove func(int), query func(string)) error {
	w.out.PrintChat(title + ":")
	w.out.PrintHint(conversation.LineListHint(item))
	if query != nil {
		w.out.PrintHint(conversation.LineIngredientHint())
	}
	w.show(*entries)

	for {
		line, err := w.ask(ctx)
		if err != nil {
			return err
		}
		switch {
		case line == "" || line == "." || strings.EqualFold(line, "done"):
			return nil
		case line == "-":
			*entries = nil
		case strings.HasPrefix(line, "-"):
			n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
			if err != nil {
				w.out.PrintHint(conversation.LineNotANumber(line[1:]))
				continue
			}
			if n >= 1 && n <= len(*entries) {
				remove(n - 1)
			}
			w.show(*entries)
		case query != nil && strings.HasSuffix(line, "?"):
			query(strings.TrimSuffix(line, "?"))
		default:
			if !add(line) {
				w.out.PrintHint(conversation.LineAlreadyListed(line))
			}
		}
	}
}

func (w *wizard) show(entries []string) {
	for i, e := range entries {
		w.out.PrintLine(fmt.Sprintf("%d. %s", i+1, e))
	}
}

// problem strips the sentinel prefix from a validation error.
func problem(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInvalidRecipe.Error()+": ")
}
