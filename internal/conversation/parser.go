// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple
// patterns. A rule's "arg" group, when present, becomes the payload.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

func rule(expr string, intent domain.IntentType) patternRule {
	return patternRule{regex: regexp.MustCompile(`(?i)^` + expr + `$`), intent: intent}
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		rule(`(?:list|ls|recipes|all|browse)`, domain.IntentListRecipes),
		rule(`(?:find|name)\s+(?P<arg>.+)`, domain.IntentFindRecipe),
		rule(`(?:show|view|open|select|pick)\s+(?P<arg>.+)`, domain.IntentShowRecipe),
		rule(`(?:add|new)(?:\s+recipe)?`, domain.IntentAddRecipe),
		rule(`(?:edit|change)\s+(?P<arg>.+)`, domain.IntentEditRecipe),
		rule(`(?:delete|remove|rm)\s+(?P<arg>.+)`, domain.IntentDeleteRecipe),
		rule(`(?:cooked|made|mark cooked)\s+(?P<arg>.+)`, domain.IntentMarkCooked),
		rule(`rate\s+(?P<arg>.+)`, domain.IntentRate),
		rule(`(?:random|surprise(?:\s+me)?|shuffle)`, domain.IntentSurprise),
		rule(`(?:search|ingredients?|with)\s+(?P<arg>.+)`, domain.IntentSearchIngredients),
		rule(`filter(?:\s+(?P<arg>.*))?`, domain.IntentFilter),
		rule(`(?:recent|history)(?:\s+(?P<arg>\d+))?`, domain.IntentRecent),
		rule(`(?:top|trending|popular|most cooked)(?:\s+(?P<arg>\d+))?`, domain.IntentTrending),
		rule(`(?:stats|profile|summary)`, domain.IntentStats),
		rule(`timers`, domain.IntentTimers),
		rule(`(?:start\s+)?timer\s+(?P<arg>.+)`, domain.IntentStartTimer),
		rule(`(?:stop|cancel)(?:\s+timer)?(?:\s+(?P<arg>.+))?`, domain.IntentStopTimer),
		rule(`pause(?:\s+timer)?(?:\s+(?P<arg>.+))?`, domain.IntentPauseTimer),
		rule(`resume(?:\s+timer)?(?:\s+(?P<arg>.+))?`, domain.IntentResumeTimer),
		rule(`(?:ask|chef)\s+(?P<arg>.+)`, domain.IntentAskQuestion),
		rule(`(?:questions|faq|ideas)`, domain.IntentQuickQuestions),
		rule(`(?:dismiss|ok|got it)`, domain.IntentDismiss),
		rule(`(?:help|h|\?)`, domain.IntentHelp),
		rule(`(?:quit|exit|q|bye)`, domain.IntentQuit),
	}
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare number shows that entry of the last listing.
	if isDigits(trimmed) {
		return &domain.Intent{Type: domain.IntentShowRecipe, Payload: trimmed}, nil
	}

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched intent: %s", rule.intent)
		intent := &domain.Intent{Type: rule.intent}
		if i := rule.regex.SubexpIndex("arg"); i >= 0 {
			intent.Payload = strings.TrimSpace(m[i])
		}
		return intent, nil
	}

	// Detect questions: ends with "?", or starts with a question word.
	if isQuestion(trimmed) {
		return &domain.Intent{Type: domain.IntentAskQuestion, Payload: trimmed}, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

// questionPrefixes are common English question starters.
var questionPrefixes = []string{
	"how", "what", "why", "when", "where", "who", "which",
	"can", "could", "should", "would", "will", "do", "does", "is", "are",
	"am i", "tell me", "explain", "give me", "any",
}

// isQuestion returns true if the input looks like a question.
func isQuestion(s string) bool {
	if strings.HasSuffix(s, "?") {
		return true
	}
	lower := strings.ToLower(s)
	for _, prefix := range questionPrefixes {
		if strings.HasPrefix(lower, prefix+" ") || lower == prefix {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
