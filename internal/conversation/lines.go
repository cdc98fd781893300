// lines.go centralises every user-facing REPL string. Edit this file to
// change the app's voice; handlers only pick a line and print it.

package conversation

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// ── Greeting / Global ────────────────────────────────────────────

func LineWelcome(count int) string {
	switch count {
	case 0:
		return "Welcome! Your cookbook is empty. Type 'add' to save your first recipe."
	case 1:
		return "Welcome back! You have 1 recipe."
	default:
		return fmt.Sprintf("Welcome back! You have %d recipes.", count)
	}
}

func LineBye() string {
	return "Happy cooking. Bye."
}

func LineUnknown(input string) string {
	return fmt.Sprintf("Didn't catch that: %s. Type 'help' for commands.", input)
}

// ── Collection ───────────────────────────────────────────────────

func LineNoRecipes() string {
	return "No Recipes Yet! Add your first recipe to get started."
}

func LineNoMatches() string {
	return "No recipes match."
}

func LinePickByNumber() string {
	return "Type a number to open a recipe."
}

func LineNotFound(ref string) string {
	return fmt.Sprintf("Couldn't find a recipe matching %q.", ref)
}

func LineConfirmDelete(name string) string {
	return fmt.Sprintf("Are you sure you want to delete %s? (y/n)", name)
}

func LineKept(name string) string {
	return fmt.Sprintf("Kept %s.", name)
}

func LineAdded(name string) string {
	return fmt.Sprintf("Saved %s.", name)
}

func LineUpdated(name string) string {
	return fmt.Sprintf("Updated %s.", name)
}

func LineDeleted(name string) string {
	return fmt.Sprintf("Deleted %s.", name)
}

func LineCooked(name string) string {
	return fmt.Sprintf("Great job cooking %s! Keep up the amazing work!", name)
}

func LineRated(name string, rating int) string {
	return fmt.Sprintf("Rated %s %s.", name, Stars(rating))
}

func LineSurprise(name string) string {
	return fmt.Sprintf(pick(surpriseLines), name)
}

var surpriseLines = []string{
	"How about %s tonight?",
	"Feeling lucky? Try %s.",
	"Your cookbook says: %s.",
	"Why not %s?",
}

// ── Forms ────────────────────────────────────────────────────────

func LineFormCancelled() string {
	return "Cancelled. Nothing saved."
}

func LineFormHint() string {
	return "Type '.' to keep the current value, '-' to clear it, 'cancel' to stop."
}

func LineFormRetry(problem string) string {
	return fmt.Sprintf("%s. Let's go over it again; '.' keeps what you entered.", problem)
}

func LineListHint(item string) string {
	return fmt.Sprintf("One %s per line. 'done' to finish, '-N' removes entry N, '-' clears the list.", item)
}

func LineIngredientHint() string {
	return "End a word with '?' for suggestions, e.g. 'pep?'."
}

func LineAlreadyListed(item string) string {
	return fmt.Sprintf("%s is already on the list.", item)
}

func LineNoSuggestions(prefix string) string {
	return fmt.Sprintf("No suggestions for %q.", prefix)
}

func LineNotANumber(input string) string {
	return fmt.Sprintf("%q isn't a number.", input)
}

func LineSuggestions(options []string) string {
	return "Suggestions: " + strings.Join(options, ", ")
}

// ── Timers ───────────────────────────────────────────────────────

func LineTimerStarted(name, clock string) string {
	return fmt.Sprintf("Timer set for %s: %s.", name, clock)
}

func LineTimerStopped(name string) string {
	return fmt.Sprintf("%s timer stopped.", name)
}

func LineTimerPaused(name string) string {
	return fmt.Sprintf("%s timer paused.", name)
}

func LineTimerResumed(name string) string {
	return fmt.Sprintf("%s timer resumed.", name)
}

func LineNoTimers() string {
	return "No timers running."
}

func LineNoTimerFor(name string) string {
	return fmt.Sprintf("There's no timer running for %s.", name)
}

func LineWhichTimer() string {
	return "Which timer? Name the recipe, e.g. 'stop timer pad thai'."
}

// ── Advisories ───────────────────────────────────────────────────

func LineDismissed() string {
	return "Got it. Warning cleared."
}

func LineNothingToDismiss() string {
	return "Nothing to dismiss."
}

// ── Assistant ────────────────────────────────────────────────────

func LineQuickQuestions() string {
	return "Try asking:"
}

// Stars renders a 0-5 rating as filled and empty stars.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func pick(lines []string) string {
	return lines[rand.IntN(len(lines))]
}
