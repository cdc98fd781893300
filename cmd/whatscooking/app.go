package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hammamikhairi/whatscooking/internal/assistant"
	"github.com/hammamikhairi/whatscooking/internal/conversation"
	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/engine"
	"github.com/hammamikhairi/whatscooking/internal/form"
	"github.com/hammamikhairi/whatscooking/internal/logger"
	"github.com/hammamikhairi/whatscooking/internal/timer"
)

// screen is the part of display.UI the REPL uses.
type screen interface {
	conversation.Printer
	PrintHeading(text string)
	PrintLine(text string)
	PrintHint(text string)
	InputChan() <-chan string
}

type cliApp struct {
	engine *engine.Engine
	parser domain.IntentParser
	ui     screen
	log    *logger.Logger
	wizard *wizard
}

func newCLIApp(eng *engine.Engine, parser domain.IntentParser, ui screen, log *logger.Logger) *cliApp {
	a := &cliApp{engine: eng, parser: parser, ui: ui, log: log}
	a.wizard = &wizard{out: ui, next: a.next}
	return a
}

// next blocks for the next submitted line.
func (a *cliApp) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case input, ok := <-a.ui.InputChan():
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(input), nil
	}
}

func (a *cliApp) run(ctx context.Context) {
	a.ui.PrintChat(conversation.LineWelcome(a.engine.Count()))
	if err := a.engine.Advisory(); err != nil {
		a.ui.PrintUrgent(err.Error())
		a.ui.PrintHint("Type 'ok' to dismiss.")
	}

	for {
		input, err := a.next(ctx)
		if err != nil {
			return
		}
		if input == "" {
			continue
		}

		intent, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
		if !a.handleIntent(ctx, intent) {
			return
		}
	}
}

// handleIntent dispatches one command. It returns false when the user
// quits.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentListRecipes:
		a.showList("Your recipes:", a.engine.List())
	case domain.IntentFindRecipe:
		a.showList("Matching recipes:", a.engine.Find(intent.Payload))
	case domain.IntentShowRecipe:
		a.showRecipe(intent.Payload)
	case domain.IntentAddRecipe:
		a.addRecipe(ctx)
	case domain.IntentEditRecipe:
		a.editRecipe(ctx, intent.Payload)
	case domain.IntentDeleteRecipe:
		a.deleteRecipe(ctx, intent.Payload)
	case domain.IntentMarkCooked:
		a.markCooked(intent.Payload)
	case domain.IntentRate:
		a.rate(intent.Payload)
	case domain.IntentSurprise:
		a.surprise()
	case domain.IntentSearchIngredients:
		a.showList("Recipes with "+intent.Payload+":",
			a.engine.SearchIngredients(conversation.ParseTerms(intent.Payload)))
	case domain.IntentFilter:
		a.filter(intent.Payload)
	case domain.IntentRecent:
		a.showList("Recently cooked:",
			a.engine.Recent(conversation.ParseCount(intent.Payload, engine.DefaultTopN)))
	case domain.IntentTrending:
		a.showList("Most cooked:",
			a.engine.Trending(conversation.ParseCount(intent.Payload, engine.DefaultTopN)))
	case domain.IntentStats:
		a.showStats()
	case domain.IntentStartTimer:
		a.startTimer(intent.Payload)
	case domain.IntentStopTimer:
		a.timerOp(intent.Payload, a.engine.StopTimer, conversation.LineTimerStopped)
	case domain.IntentPauseTimer:
		a.timerOp(intent.Payload, a.engine.PauseTimer, conversation.LineTimerPaused)
	case domain.IntentResumeTimer:
		a.timerOp(intent.Payload, a.engine.ResumeTimer, conversation.LineTimerResumed)
	case domain.IntentTimers:
		a.showTimers()
	case domain.IntentAskQuestion:
		a.ui.PrintChat(a.engine.Ask(ctx, intent.Payload))
	case domain.IntentQuickQuestions:
		a.showQuickQuestions()
	case domain.IntentDismiss:
		a.dismiss()
	case domain.IntentQuit:
		a.ui.PrintChat(conversation.LineBye())
		return false
	default:
		a.ui.PrintChat(conversation.LineUnknown(intent.Payload))
	}
	return true
}

// ── Recipes ──────────────────────────────────────────────────────

func (a *cliApp) showList(title string, recipes []domain.Recipe) {
	if len(recipes) == 0 {
		if a.engine.Count() == 0 {
			a.ui.PrintChat(conversation.LineNoRecipes())
		} else {
			a.ui.PrintChat(conversation.LineNoMatches())
		}
		return
	}
	a.ui.PrintHeading(title)
	for i, r := range recipes {
		a.ui.PrintLine(fmt.Sprintf("[%d] %s", i+1, r.Name))
		a.ui.PrintHint("    " + recipeMeta(r))
	}
	a.ui.PrintChat(conversation.LinePickByNumber())
}

func (a *cliApp) showRecipe(ref string) {
	r, err := a.engine.Resolve(ref)
	if err != nil {
		a.fail(ref, err)
		return
	}
	a.showRecipeDetail(r)
}

func (a *cliApp) showRecipeDetail(r domain.Recipe) {
	a.ui.PrintHeading(fmt.Sprintf("=== %s ===", r.Name))
	a.ui.PrintHint(recipeMeta(r))
	if r.Notes != "" {
		a.ui.PrintLine("Notes: " + r.Notes)
	}
	if r.Image != "" {
		a.ui.PrintHint("Photo: " + r.Image)
	}

	a.ui.PrintHeading("Ingredients:")
	for _, ing := range r.Ingredients {
		a.ui.PrintLine("  - " + ing)
	}
	if len(r.Instructions) > 0 {
		a.ui.PrintHeading("Instructions:")
		for i, step := range r.Instructions {
			a.ui.PrintLine(fmt.Sprintf("  %d. %s", i+1, step))
		}
	}
	a.ui.PrintHint("Added " + r.CreatedAt.Local().Format("Jan 2, 2006"))
}

func (a *cliApp) addRecipe(ctx context.Context) {
	f := form.New()
	if !a.fillForm(ctx, f) {
		return
	}
	r, err := a.engine.Add(f)
	if err != nil {
		a.fail("", err)
		return
	}
	a.ui.PrintChat(conversation.LineAdded(r.Name))
}

func (a *cliApp) editRecipe(ctx context.Context, ref string) {
	r, err := a.engine.Resolve(ref)
	if err != nil {
		a.fail(ref, err)
		return
	}
	f := form.FromRecipe(r)
	if !a.fillForm(ctx, f) {
		return
	}
	updated, err := a.engine.Edit(r.ID, f)
	if err != nil {
		a.fail(ref, err)
		return
	}
	a.ui.PrintChat(conversation.LineUpdated(updated.Name))
}

// fillForm runs the wizard and reports whether the form is ready to save.
func (a *cliApp) fillForm(ctx context.Context, f *form.RecipeForm) bool {
	err := a.wizard.run(ctx, f)
	switch {
	case err == nil:
		return true
	case errors.Is(err, errCancelled):
		a.ui.PrintChat(conversation.LineFormCancelled())
	default:
		a.log.Debug("form aborted: %v", err)
	}
	return false
}

func (a *cliApp) deleteRecipe(ctx context.Context, ref string) {
	r, err := a.engine.Resolve(ref)
	if err != nil {
		a.fail(ref, err)
		return
	}
	a.ui.PrintChat(conversation.LineConfirmDelete(r.Name))
	answer, err := a.next(ctx)
	if err != nil {
		return
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
	default:
		a.ui.PrintChat(conversation.LineKept(r.Name))
		return
	}
	if _, err := a.engine.DeleteByID(r.ID); err != nil {
		a.fail(ref, err)
		return
	}
	a.ui.PrintChat(conversation.LineDeleted(r.Name))
}

func (a *cliApp) markCooked(ref string) {
	r, err := a.engine.MarkCooked(ref)
	if err != nil {
		a.fail(ref, err)
		return
	}
	a.ui.PrintChat(conversation.LineCooked(r.Name))
}

func (a *cliApp) rate(payload string) {
	ref, rating, err := conversation.ParseRating(payload)
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	r, err := a.engine.Rate(ref, rating)
	if err != nil {
		a.fail(ref, err)
		return
	}
	a.ui.PrintChat(conversation.LineRated(r.Name, rating))
}

func (a *cliApp) surprise() {
	r, err := a.engine.Surprise()
	if err != nil {
		a.fail("", err)
		return
	}
	a.ui.PrintChat(conversation.LineSurprise(r.Name))
	a.showRecipeDetail(r)
}

func (a *cliApp) filter(payload string) {
	f, err := conversation.ParseFilter(payload)
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	if f.IsZero() {
		a.ui.PrintHint("Filter by difficulty, cuisine, time or rating, e.g. 'filter easy max=30'.")
		return
	}
	a.showList("Filtered recipes:", a.engine.FilterRecipes(f))
}

func (a *cliApp) showStats() {
	s := a.engine.Stats()
	a.ui.PrintHeading("Your cooking profile:")
	a.ui.PrintLine(fmt.Sprintf("Recipes:           %d", s.TotalRecipes))
	a.ui.PrintLine(fmt.Sprintf("Times cooked:      %d", s.TotalCooked))
	a.ui.PrintLine(fmt.Sprintf("Average rating:    %.1f", s.AverageRating))
	a.ui.PrintLine(fmt.Sprintf("Time at the stove: %s", formatMinutes(s.MinutesCooking)))
	if s.TopCuisine != "" {
		a.ui.PrintLine("Favorite cuisine:  " + s.TopCuisine)
	}
	if s.TotalCooked > 0 {
		a.ui.PrintLine("Most cooked:       " + s.MostCooked)
	}
}

// ── Timers ───────────────────────────────────────────────────────

func (a *cliApp) startTimer(ref string) {
	t, err := a.engine.StartTimer(ref)
	if err != nil {
		a.fail(ref, err)
		return
	}
	a.ui.PrintChat(conversation.LineTimerStarted(t.Label, timer.FormatClock(t.Duration)))
}

func (a *cliApp) timerOp(ref string, op func(string) (domain.Recipe, error), line func(string) string) {
	r, err := op(ref)
	if err != nil {
		if errors.Is(err, domain.ErrNoTimer) && r.Name != "" {
			a.ui.PrintChat(conversation.LineNoTimerFor(r.Name))
			return
		}
		a.fail(ref, err)
		return
	}
	a.ui.PrintChat(line(r.Name))
}

func (a *cliApp) showTimers() {
	timers := a.engine.Timers()
	if len(timers) == 0 {
		a.ui.PrintChat(conversation.LineNoTimers())
		return
	}
	a.ui.PrintHeading("Timers:")
	for _, t := range timers {
		a.ui.PrintLine(fmt.Sprintf("%s: %s (%s)", t.Label, timer.FormatClock(t.Remaining), t.Status))
	}
}

// ── Assistant ────────────────────────────────────────────────────

func (a *cliApp) showQuickQuestions() {
	a.ui.PrintChat(assistant.Greeting())
	a.ui.PrintHeading(conversation.LineQuickQuestions())
	for _, q := range assistant.QuickQuestions() {
		a.ui.PrintHint("  ask " + q)
	}
}

func (a *cliApp) dismiss() {
	if a.engine.Advisory() == nil {
		a.ui.PrintChat(conversation.LineNothingToDismiss())
		return
	}
	a.engine.DismissAdvisory()
	a.ui.PrintChat(conversation.LineDismissed())
}

// fail reports err in the user's terms.
func (a *cliApp) fail(ref string, err error) {
	switch {
	case errors.Is(err, domain.ErrNoRecipes):
		a.ui.PrintChat(conversation.LineNoRecipes())
	case errors.Is(err, domain.ErrNoTimer):
		if len(a.engine.Timers()) == 0 {
			a.ui.PrintChat(conversation.LineNoTimers())
		} else {
			a.ui.PrintChat(conversation.LineWhichTimer())
		}
	case errors.Is(err, domain.ErrNotFound):
		a.ui.PrintChat(conversation.LineNotFound(ref))
	case errors.Is(err, domain.ErrInvalidRating):
		a.ui.PrintUrgent("Rating must be between 1 and 5.")
	case errors.Is(err, domain.ErrInvalidRecipe):
		a.ui.PrintUrgent(problem(err))
	default:
		a.log.Error("%v", err)
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
	}
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Recipes:")
	a.ui.PrintLine("  list / recipes        Show every recipe")
	a.ui.PrintLine("  1, 2, 3...            Open a recipe from the last list")
	a.ui.PrintLine("  find <name>           Find recipes by name")
	a.ui.PrintLine("  add                   Add a recipe")
	a.ui.PrintLine("  edit <recipe>         Edit a recipe")
	a.ui.PrintLine("  delete <recipe>       Delete a recipe")
	a.ui.PrintLine("  cooked <recipe>       Mark a recipe as cooked")
	a.ui.PrintLine("  rate <recipe> <1-5>   Rate a recipe")
	a.ui.PrintHeading("Discover:")
	a.ui.PrintLine("  surprise / random     Pick a random recipe")
	a.ui.PrintLine("  with <ingredients>    Search by ingredients (comma-separated)")
	a.ui.PrintLine("  filter <criteria>     e.g. filter medium cuisine=italian max=30 rating=4")
	a.ui.PrintLine("  recent [n]            Recently cooked")
	a.ui.PrintLine("  top [n]               Most cooked")
	a.ui.PrintLine("  stats                 Your cooking profile")
	a.ui.PrintHeading("Timers:")
	a.ui.PrintLine("  timer <recipe>        Count down a recipe's cooking time")
	a.ui.PrintLine("  pause / resume        Pause or resume a timer")
	a.ui.PrintLine("  stop [recipe]         Cancel a timer")
	a.ui.PrintLine("  timers                List timers")
	a.ui.PrintHeading("Assistant:")
	a.ui.PrintLine("  ask <question>        Ask a cooking question (or just type it with '?')")
	a.ui.PrintLine("  questions             Show suggested questions")
	a.ui.PrintHeading("Other:")
	a.ui.PrintLine("  ok / dismiss          Clear a save or load warning")
	a.ui.PrintLine("  help                  Show this message")
	a.ui.PrintLine("  quit / exit           Leave")
}

// ── Formatting ───────────────────────────────────────────────────

// recipeMeta is the one-line summary under a recipe name.
func recipeMeta(r domain.Recipe) string {
	parts := []string{
		fmt.Sprintf("%d min", r.CookingTime),
		string(r.Difficulty),
		r.Cuisine,
	}
	if r.Rating != nil {
		parts = append(parts, conversation.Stars(*r.Rating))
	}
	if r.CookedCount > 0 {
		parts = append(parts, fmt.Sprintf("cooked %dx", r.CookedCount))
	}
	if r.LastCooked != nil {
		parts = append(parts, "last "+r.LastCooked.Local().Format("Jan 2"))
	}
	return strings.Join(parts, " · ")
}

func formatMinutes(total int) string {
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	h, m := total/60, total%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
