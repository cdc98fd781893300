// Package engine is the kitchen facade the REPL talks to. It ties the
// recipe store, the query layer, the assistant and the cooking timers
// together and remembers the last listing so recipes can be picked by
// number.
package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/whatscooking/internal/assistant"
	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/form"
	"github.com/hammamikhairi/whatscooking/internal/logger"
	"github.com/hammamikhairi/whatscooking/internal/query"
	"github.com/hammamikhairi/whatscooking/internal/recipe"
	"github.com/hammamikhairi/whatscooking/internal/timer"
)

// DefaultTopN is how many recipes Recent and Trending return when the
// caller doesn't ask for a number.
const DefaultTopN = 3

// Timers is the countdown capability the engine drives.
type Timers interface {
	Set(id, label string, d time.Duration) timer.Timer
	Cancel(id string) bool
	Pause(id string) bool
	Resume(id string) bool
	Get(id string) (timer.Timer, bool)
	Snapshot() []timer.Timer
}

var _ Timers = (*timer.Supervisor)(nil)

// Option configures the engine.
type Option func(*Engine)

// WithSource sets the randomness used by Surprise.
func WithSource(src query.IntSource) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// WithMinuteLength scales recipe cooking times into timer durations.
// Tests shrink it; the app uses time.Minute.
func WithMinuteLength(d time.Duration) Option {
	return func(e *Engine) {
		e.minute = d
	}
}

// Engine manages the recipe collection on behalf of the REPL. It depends
// only on the store, the assistant and a Timers implementation.
type Engine struct {
	store     *recipe.Store
	assistant *assistant.Responder
	timers    Timers
	log       *logger.Logger
	src       query.IntSource
	minute    time.Duration

	mu      sync.Mutex
	listing []string // ids from the last listing, in display order
}

// New creates a kitchen engine with the given dependencies and options.
func New(store *recipe.Store, responder *assistant.Responder, timers Timers, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		assistant: responder,
		timers:    timers,
		log:       log,
		src:       query.DefaultSource,
		minute:    time.Minute,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		e.src = query.DefaultSource
	}
	return e
}

// ── Browsing ─────────────────────────────────────────────────────

// List returns every recipe in insertion order and remembers the listing.
func (e *Engine) List() []domain.Recipe {
	return e.remember(e.store.Recipes())
}

// Find lists recipes whose name contains q.
func (e *Engine) Find(q string) []domain.Recipe {
	return e.remember(query.SearchByName(e.store.Recipes(), q))
}

// SearchIngredients lists recipes matching any of the terms.
func (e *Engine) SearchIngredients(terms []string) []domain.Recipe {
	return e.remember(query.SearchByIngredients(e.store.Recipes(), terms))
}

// FilterRecipes lists recipes passing every supplied criterion.
func (e *Engine) FilterRecipes(f domain.Filter) []domain.Recipe {
	return e.remember(query.Filter(e.store.Recipes(), f))
}

// Recent lists the n most recently cooked recipes.
func (e *Engine) Recent(n int) []domain.Recipe {
	return e.remember(query.RecentlyCooked(e.store.Recipes(), n))
}

// Trending lists the n most cooked recipes.
func (e *Engine) Trending(n int) []domain.Recipe {
	return e.remember(query.MostCooked(e.store.Recipes(), n))
}

// Stats summarizes the collection.
func (e *Engine) Stats() query.Summary {
	return query.Summarize(e.store.Recipes())
}

// Surprise picks a random recipe.
func (e *Engine) Surprise() (domain.Recipe, error) {
	r, ok := query.Random(e.store.Recipes(), e.src)
	if !ok {
		return domain.Recipe{}, domain.ErrNoRecipes
	}
	e.remember([]domain.Recipe{r})
	return r, nil
}

// Resolve turns a user reference into a recipe: a 1-based number from the
// last listing, an exact name, or the best fuzzy name match.
func (e *Engine) Resolve(ref string) (domain.Recipe, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Recipe{}, fmt.Errorf("empty recipe reference: %w", domain.ErrNotFound)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		e.mu.Lock()
		if n < 1 || n > len(e.listing) {
			size := len(e.listing)
			e.mu.Unlock()
			return domain.Recipe{}, fmt.Errorf("recipe #%d of %d: %w", n, size, domain.ErrNotFound)
		}
		id := e.listing[n-1]
		e.mu.Unlock()
		return e.store.Get(id)
	}

	recipes := e.store.Recipes()
	if len(recipes) == 0 {
		return domain.Recipe{}, domain.ErrNoRecipes
	}
	for _, r := range recipes {
		if strings.EqualFold(r.Name, ref) {
			return r, nil
		}
	}
	if matches := query.FuzzyFind(recipes, ref); len(matches) > 0 {
		e.log.Debug("engine: %q resolved fuzzily to %q", ref, matches[0].Name)
		return matches[0], nil
	}
	return domain.Recipe{}, fmt.Errorf("recipe %q: %w", ref, domain.ErrNotFound)
}

// ── Mutations ────────────────────────────────────────────────────

// Add validates the form and stores a new recipe.
func (e *Engine) Add(f *form.RecipeForm) (domain.Recipe, error) {
	in, err := f.Input()
	if err != nil {
		return domain.Recipe{}, err
	}
	r := e.store.Add(in)
	e.log.Info("added recipe %s (%q)", r.ID, r.Name)
	return r, nil
}

// Edit validates the form and replaces the recipe with id.
func (e *Engine) Edit(id string, f *form.RecipeForm) (domain.Recipe, error) {
	existing, err := e.store.Get(id)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("getting recipe: %w", err)
	}
	updated, err := f.Apply(existing)
	if err != nil {
		return domain.Recipe{}, err
	}
	if !e.store.Update(updated) {
		return domain.Recipe{}, fmt.Errorf("updating recipe %s: %w", id, domain.ErrNotFound)
	}
	e.log.Info("edited recipe %s (%q)", id, updated.Name)
	return updated, nil
}

// DeleteByID removes exactly the recipe with id, regardless of how the
// last listing numbered things, and cancels its timer.
func (e *Engine) DeleteByID(id string) (domain.Recipe, error) {
	r, err := e.store.Get(id)
	if err != nil {
		return domain.Recipe{}, err
	}
	if !e.store.Delete(id) {
		return domain.Recipe{}, domain.ErrNotFound
	}
	e.timers.Cancel(id)
	e.log.Info("deleted recipe %s (%q)", r.ID, r.Name)
	return r, nil
}

// MarkCooked bumps the cooked count and returns the updated recipe.
func (e *Engine) MarkCooked(ref string) (domain.Recipe, error) {
	r, err := e.Resolve(ref)
	if err != nil {
		return domain.Recipe{}, err
	}
	e.store.MarkCooked(r.ID)
	return e.store.Get(r.ID)
}

// Rate sets a 1-5 rating.
func (e *Engine) Rate(ref string, rating int) (domain.Recipe, error) {
	if rating < 1 || rating > 5 {
		return domain.Recipe{}, fmt.Errorf("rating %d: %w", rating, domain.ErrInvalidRating)
	}
	r, err := e.Resolve(ref)
	if err != nil {
		return domain.Recipe{}, err
	}
	e.store.SetRating(r.ID, rating)
	return e.store.Get(r.ID)
}

// ── Assistant ────────────────────────────────────────────────────

// Ask passes a question to the assistant.
func (e *Engine) Ask(ctx context.Context, question string) string {
	return e.assistant.Reply(ctx, question)
}

// ── Timers ───────────────────────────────────────────────────────

// StartTimer starts a countdown of the recipe's cooking time.
func (e *Engine) StartTimer(ref string) (timer.Timer, error) {
	r, err := e.Resolve(ref)
	if err != nil {
		return timer.Timer{}, err
	}
	d := time.Duration(r.CookingTime) * e.minute
	t := e.timers.Set(r.ID, r.Name, d)
	e.log.Info("timer started for %q (%s)", r.Name, d)
	return t, nil
}

// StopTimer cancels the countdown for the referenced recipe.
func (e *Engine) StopTimer(ref string) (domain.Recipe, error) {
	return e.timerOp(ref, e.timers.Cancel)
}

// PauseTimer freezes the countdown for the referenced recipe.
func (e *Engine) PauseTimer(ref string) (domain.Recipe, error) {
	return e.timerOp(ref, e.timers.Pause)
}

// ResumeTimer continues a paused countdown.
func (e *Engine) ResumeTimer(ref string) (domain.Recipe, error) {
	return e.timerOp(ref, e.timers.Resume)
}

// Timers lists the running countdowns.
func (e *Engine) Timers() []timer.Timer {
	return e.timers.Snapshot()
}

// timerOp applies op to the timer for ref. An empty ref means the only
// timer, when exactly one exists.
func (e *Engine) timerOp(ref string, op func(id string) bool) (domain.Recipe, error) {
	var r domain.Recipe
	if strings.TrimSpace(ref) == "" {
		snap := e.timers.Snapshot()
		if len(snap) != 1 {
			return domain.Recipe{}, domain.ErrNoTimer
		}
		r = domain.Recipe{ID: snap[0].ID, Name: snap[0].Label}
	} else {
		var err error
		if r, err = e.Resolve(ref); err != nil {
			return domain.Recipe{}, err
		}
	}
	if !op(r.ID) {
		return r, domain.ErrNoTimer
	}
	return r, nil
}

// ── Status ───────────────────────────────────────────────────────

// Advisory returns the store's latest load/persist problem, if any.
func (e *Engine) Advisory() error {
	return e.store.Err()
}

// DismissAdvisory clears the current advisory.
func (e *Engine) DismissAdvisory() {
	e.store.ClearErr()
}

// Count returns the collection size.
func (e *Engine) Count() int {
	return e.store.Len()
}

func (e *Engine) remember(list []domain.Recipe) []domain.Recipe {
	ids := make([]string, len(list))
	for i, r := range list {
		ids[i] = r.ID
	}
	e.mu.Lock()
	e.listing = ids
	e.mu.Unlock()
	return list
}
