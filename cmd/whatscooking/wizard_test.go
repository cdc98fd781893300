package main

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/form"
)

// fakeScreen records output and replays queued input. The input channel
// is closed once drained, which ends the REPL loop.
type fakeScreen struct {
	mu  sync.Mutex
	out []string
	in  chan string
}

func newFakeScreen(input ...string) *fakeScreen {
	ch := make(chan string, len(input))
	for _, s := range input {
		ch <- s
	}
	close(ch)
	return &fakeScreen{in: ch}
}

func (s *fakeScreen) record(kind, text string) {
	s.mu.Lock()
	s.out = append(s.out, kind+": "+strings.TrimSpace(text))
	s.mu.Unlock()
}

func (s *fakeScreen) PrintChat(text string)     { s.record("chat", text) }
func (s *fakeScreen) PrintUrgent(text string)   { s.record("urgent", text) }
func (s *fakeScreen) PrintHeading(text string)  { s.record("heading", text) }
func (s *fakeScreen) PrintLine(text string)     { s.record("line", text) }
func (s *fakeScreen) PrintHint(text string)     { s.record("hint", text) }
func (s *fakeScreen) InputChan() <-chan string { return s.in }

func (s *fakeScreen) text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.out, "\n")
}

func scripted(lines ...string) lineReader {
	i := 0
	return func(context.Context) (string, error) {
		if i >= len(lines) {
			return "", io.EOF
		}
		i++
		return lines[i-1], nil
	}
}

func TestWizardNewRecipe(t *testing.T) {
	scr := newFakeScreen()
	w := &wizard{out: scr, next: scripted(
		"Shakshuka", "25", ".", "North African",
		"Eggs", "Tomato", "pep?", "Eggs", "Paprika", "-3", "done",
		"Simmer sauce", "Stir", "Crack eggs", "-2", "-9", "done",
		"-",
		"five", "5",
		".",
	)}

	f := form.New()
	require.NoError(t, w.run(context.Background(), f))

	assert.Equal(t, "Shakshuka", f.Name)
	assert.Equal(t, "25", f.CookingTime)
	assert.Equal(t, "Easy", f.Difficulty)
	assert.Equal(t, "North African", f.Cuisine)
	assert.Equal(t, []string{"Eggs", "Tomato"}, f.Ingredients)
	assert.Equal(t, []string{"Simmer sauce", "Crack eggs"}, f.Instructions)
	assert.Empty(t, f.Notes)
	assert.Equal(t, 5, f.Rating)

	out := scr.text()
	assert.Contains(t, out, "Suggestions: Pepper, Bell Pepper")
	assert.Contains(t, out, "Eggs is already on the list.")
	assert.Contains(t, out, `"five" isn't a number.`)
	assert.Contains(t, out, "Difficulty (Easy, Medium, Hard) [Easy]:")
}

func TestWizardCancel(t *testing.T) {
	w := &wizard{out: newFakeScreen(), next: scripted("Soup", "CANCEL")}
	err := w.run(context.Background(), form.New())
	assert.ErrorIs(t, err, errCancelled)
}

func TestWizardRetriesUntilValid(t *testing.T) {
	scr := newFakeScreen()
	w := &wizard{out: scr, next: scripted(
		// First pass leaves the name blank.
		".", "10", ".", "French", "Leek", "done", "done", ".", ".", ".",
		// Second pass only fills the name.
		"Leek Soup", ".", ".", ".", "done", "done", ".", ".", ".",
	)}

	f := form.New()
	require.NoError(t, w.run(context.Background(), f))
	assert.Equal(t, "Leek Soup", f.Name)
	assert.Equal(t, "10", f.CookingTime)
	assert.Equal(t, "French", f.Cuisine)
	assert.Equal(t, []string{"Leek"}, f.Ingredients)
	assert.Contains(t, scr.text(), "urgent: Please enter a recipe name. Let's go over it again")
}

func TestWizardEditKeepsValues(t *testing.T) {
	rating := 3
	f := form.FromRecipe(domain.Recipe{
		Name: "Chili", CookingTime: 60, Difficulty: domain.DifficultyHard, Cuisine: "Tex-Mex",
		Ingredients: []string{"Beef", "Beans"}, Notes: "Better next day", Rating: &rating,
	})
	w := &wizard{out: newFakeScreen(), next: scripted(
		".", ".", ".", ".", "-", "Turkey", "done", "done", ".", "-", ".",
	)}

	require.NoError(t, w.run(context.Background(), f))
	assert.Equal(t, "Chili", f.Name)
	assert.Equal(t, "60", f.CookingTime)
	assert.Equal(t, "Hard", f.Difficulty)
	assert.Equal(t, []string{"Turkey"}, f.Ingredients)
	assert.Equal(t, "Better next day", f.Notes)
	assert.Zero(t, f.Rating)
}

func TestWizardPropagatesReaderErrors(t *testing.T) {
	w := &wizard{out: newFakeScreen(), next: scripted("Soup")}
	err := w.run(context.Background(), form.New())
	assert.ErrorIs(t, err, io.EOF)
}
