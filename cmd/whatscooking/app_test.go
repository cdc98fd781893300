package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/whatscooking/internal/assistant"
	"github.com/hammamikhairi/whatscooking/internal/chime"
	"github.com/hammamikhairi/whatscooking/internal/conversation"
	"github.com/hammamikhairi/whatscooking/internal/engine"
	"github.com/hammamikhairi/whatscooking/internal/form"
	"github.com/hammamikhairi/whatscooking/internal/logger"
	"github.com/hammamikhairi/whatscooking/internal/recipe"
	"github.com/hammamikhairi/whatscooking/internal/storage"
	"github.com/hammamikhairi/whatscooking/internal/timer"
)

type discard struct{}

func (discard) Notify(context.Context, string) error       { return nil }
func (discard) NotifyUrgent(context.Context, string) error { return nil }

func setupApp(t *testing.T, input ...string) (*cliApp, *fakeScreen, *recipe.Store) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := recipe.NewStore(storage.NewMemoryStore(log), log)
	require.NoError(t, store.Load(context.Background()))
	t.Cleanup(store.Flush)

	timers := timer.New(discard{}, chime.NewSilent(log), log)
	eng := engine.New(store, assistant.New(store, log), timers, log)
	scr := newFakeScreen(input...)
	return newCLIApp(eng, conversation.NewKeywordParser(log), scr, log), scr, store
}

func addRecipe(t *testing.T, a *cliApp, name, minutes, cuisine string) {
	t.Helper()
	_, err := a.engine.Add(&form.RecipeForm{
		Name: name, CookingTime: minutes, Cuisine: cuisine, Ingredients: []string{"Salt"},
	})
	require.NoError(t, err)
}

func TestAppAddListRateCook(t *testing.T) {
	a, scr, store := setupApp(t,
		"add", "Pad Thai", "20", "easy", "Thai", "Rice noodles", "done", "done", ".", ".", ".",
		"list",
		"rate 1 5",
		"cooked 1",
		"1",
		"quit",
		"list",
	)
	a.run(context.Background())

	out := scr.text()
	assert.Contains(t, out, "chat: Welcome! Your cookbook is empty.")
	assert.Contains(t, out, "chat: Saved Pad Thai.")
	assert.Contains(t, out, "line: [1] Pad Thai")
	assert.Contains(t, out, "chat: Rated Pad Thai ★★★★★.")
	assert.Contains(t, out, "chat: Great job cooking Pad Thai!")
	assert.Contains(t, out, "heading: === Pad Thai ===")
	assert.Contains(t, out, "line: - Rice noodles")
	assert.Contains(t, out, "chat: Happy cooking. Bye.")

	recipes := store.Recipes()
	require.Len(t, recipes, 1)
	assert.Equal(t, 5, recipes[0].RatingValue())
	assert.Equal(t, 1, recipes[0].CookedCount)

	// Input after quit stays unread.
	assert.Len(t, scr.in, 1)
}

func TestAppDeleteAsksFirst(t *testing.T) {
	a, scr, store := setupApp(t, "list", "delete 1", "n", "delete 1", "yes")
	addRecipe(t, a, "Caprese Salad", "10", "Italian")

	a.run(context.Background())

	out := scr.text()
	assert.Contains(t, out, "Are you sure you want to delete Caprese Salad? (y/n)")
	assert.Contains(t, out, "chat: Kept Caprese Salad.")
	assert.Contains(t, out, "chat: Deleted Caprese Salad.")
	assert.Zero(t, store.Len())
}

func TestAppDeleteRemovesTheConfirmedRecipe(t *testing.T) {
	a, scr, store := setupApp(t, "find soup", "delete 1", "yes", "list")
	addRecipe(t, a, "Caprese Salad", "10", "Italian")
	addRecipe(t, a, "Miso Soup", "15", "Japanese")

	a.run(context.Background())

	assert.Contains(t, scr.text(), "chat: Deleted Miso Soup.")
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "Caprese Salad", store.Recipes()[0].Name)
}

func TestAppEmptyCookbookAndErrors(t *testing.T) {
	a, scr, _ := setupApp(t,
		"list", "surprise", "stop", "ok", "blorp", "how do I make a roux?", "rate 1", "filter level=impossible",
	)
	a.run(context.Background())

	out := scr.text()
	assert.Contains(t, out, "chat: No Recipes Yet!")
	assert.Contains(t, out, "chat: No timers running.")
	assert.Contains(t, out, "chat: Nothing to dismiss.")
	assert.Contains(t, out, "chat: Didn't catch that: blorp.")
	assert.Contains(t, out, "A roux is a mixture of equal parts fat and flour")
	assert.Contains(t, out, "hint: usage: rate <recipe> <1-5>")
	assert.Contains(t, out, `hint: unknown difficulty "impossible"`)
}

func TestAppTimers(t *testing.T) {
	a, scr, _ := setupApp(t,
		"timer caprese", "pause", "timers", "resume caprese", "stop caprese", "stop caprese", "timers",
	)
	addRecipe(t, a, "Caprese Salad", "10", "Italian")

	a.run(context.Background())

	out := scr.text()
	assert.Contains(t, out, "chat: Timer set for Caprese Salad: 10:00.")
	assert.Contains(t, out, "chat: Caprese Salad timer paused.")
	assert.Contains(t, out, "line: Caprese Salad: 10:00 (paused)")
	assert.Contains(t, out, "chat: Caprese Salad timer resumed.")
	assert.Contains(t, out, "chat: Caprese Salad timer stopped.")
	assert.Contains(t, out, "chat: There's no timer running for Caprese Salad.")
	assert.Contains(t, out, "chat: No timers running.")
}

func TestAppDiscovery(t *testing.T) {
	a, scr, _ := setupApp(t, "with basil, salt", "filter cuisine=italian", "top 1", "recent", "stats", "questions")
	addRecipe(t, a, "Caprese Salad", "10", "Italian")
	addRecipe(t, a, "Miso Soup", "15", "Japanese")
	_, err := a.engine.MarkCooked("Miso Soup")
	require.NoError(t, err)

	a.run(context.Background())

	out := scr.text()
	assert.Contains(t, out, "heading: Recipes with basil, salt:")
	assert.Contains(t, out, "heading: Filtered recipes:")
	assert.Contains(t, out, "heading: Most cooked:")
	assert.Contains(t, out, "heading: Recently cooked:")
	assert.Contains(t, out, "line: Recipes:           2")
	assert.Contains(t, out, "line: Most cooked:       Miso Soup")
	assert.Contains(t, out, "hint: ask How do I make a roux?")
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", formatMinutes(45))
	assert.Equal(t, "2h", formatMinutes(120))
	assert.Equal(t, "1h05m", formatMinutes(65))
}
