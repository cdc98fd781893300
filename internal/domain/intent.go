package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentListRecipes
	IntentFindRecipe
	IntentShowRecipe
	IntentAddRecipe
	IntentEditRecipe
	IntentDeleteRecipe
	IntentMarkCooked
	IntentRate
	IntentSurprise
	IntentSearchIngredients
	IntentFilter
	IntentRecent
	IntentTrending
	IntentStats
	IntentStartTimer
	IntentStopTimer
	IntentPauseTimer
	IntentResumeTimer
	IntentTimers
	IntentAskQuestion // free-form question for the assistant
	IntentQuickQuestions
	IntentDismiss // acknowledge the current advisory
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	for name, t := range intentNames {
		if t == i {
			return name
		}
	}
	return "unknown"
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. recipe number or search terms
}

// intentNames maps snake_case names to IntentType values.
var intentNames = map[string]IntentType{
	"list_recipes":       IntentListRecipes,
	"find_recipe":        IntentFindRecipe,
	"show_recipe":        IntentShowRecipe,
	"add_recipe":         IntentAddRecipe,
	"edit_recipe":        IntentEditRecipe,
	"delete_recipe":      IntentDeleteRecipe,
	"mark_cooked":        IntentMarkCooked,
	"rate":               IntentRate,
	"surprise":           IntentSurprise,
	"search_ingredients": IntentSearchIngredients,
	"filter":             IntentFilter,
	"recent":             IntentRecent,
	"trending":           IntentTrending,
	"stats":              IntentStats,
	"start_timer":        IntentStartTimer,
	"stop_timer":         IntentStopTimer,
	"pause_timer":        IntentPauseTimer,
	"resume_timer":       IntentResumeTimer,
	"timers":             IntentTimers,
	"ask_question":       IntentAskQuestion,
	"quick_questions":    IntentQuickQuestions,
	"dismiss":            IntentDismiss,
	"help":               IntentHelp,
	"quit":               IntentQuit,
	"unknown":            IntentUnknown,
}

// IntentFromString converts a snake_case intent name to an IntentType.
// Returns IntentUnknown for unrecognized names.
func IntentFromString(name string) IntentType {
	if t, ok := intentNames[name]; ok {
		return t
	}
	return IntentUnknown
}
