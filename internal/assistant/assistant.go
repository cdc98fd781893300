// Package assistant implements the scripted cooking assistant: an ordered
// list of keyword rules, first match wins, with a default fallback.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
	"github.com/hammamikhairi/whatscooking/internal/query"
)

// RecipeLister provides the current recipe snapshot.
type RecipeLister interface {
	Recipes() []domain.Recipe
}

// Rule pairs a predicate over the lower-cased message with a response.
type Rule struct {
	Name    string
	Match   func(msg string) bool
	Respond func(r *Responder) string
}

// Option configures the responder.
type Option func(*Responder)

// WithSource sets the randomness used for suggestions and tips.
func WithSource(src query.IntSource) Option {
	return func(r *Responder) {
		r.src = src
	}
}

// WithRules replaces the built-in rule list.
func WithRules(rules []Rule) Option {
	return func(r *Responder) {
		r.rules = rules
	}
}

// Responder answers a user message with one canned response.
type Responder struct {
	recipes  RecipeLister
	log      *logger.Logger
	src      query.IntSource
	rules    []Rule
	fallback string
}

// New creates a responder that reads suggestions from recipes.
func New(recipes RecipeLister, log *logger.Logger, opts ...Option) *Responder {
	r := &Responder{
		recipes:  recipes,
		log:      log,
		src:      query.DefaultSource,
		rules:    DefaultRules(),
		fallback: answerFallback,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.src == nil {
		r.src = query.DefaultSource
	}
	return r
}

// Reply evaluates the rules in order against message and returns the first
// matching response, or the fallback.
func (r *Responder) Reply(ctx context.Context, message string) string {
	msg := strings.ToLower(message)
	for _, rule := range r.rules {
		if rule.Match(msg) {
			r.log.Debug("assistant: rule %q matched %q", rule.Name, message)
			return rule.Respond(r)
		}
	}
	r.log.Debug("assistant: no rule matched %q", message)
	return r.fallback
}

// Greeting is the assistant's opening line.
func Greeting() string { return greeting }

// QuickQuestions are suggested prompts for a fresh conversation.
func QuickQuestions() []string {
	return append([]string(nil), quickQuestions...)
}

// Tips lists the cooking tips the assistant draws from.
func Tips() []string {
	return append([]string(nil), tips...)
}

// DefaultRules returns the built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "pasta", Match: anyOf("pasta", "noodle"), Respond: static(answerPasta)},
		{Name: "egg-substitute", Match: allOf("egg", "substitute"), Respond: static(answerEggSubstitute)},
		{Name: "roux", Match: anyOf("roux"), Respond: static(answerRoux)},
		{Name: "season-chicken", Match: allOf("chicken", "season"), Respond: static(answerSeasonChicken)},
		{Name: "onion-cry", Match: allOf("onion", "cry"), Respond: static(answerOnionCry)},
		{Name: "baking-soda", Match: anyOf("baking soda", "baking powder"), Respond: static(answerBakingSoda)},
		{Name: "suggest", Match: anyOf("recipe", "suggest"), Respond: (*Responder).suggest},
		{Name: "tip", Match: anyOf("tip", "advice"), Respond: (*Responder).tip},
	}
}

func (r *Responder) suggest() string {
	recipes := r.recipes.Recipes()
	pick, ok := query.Random(recipes, r.src)
	if !ok {
		return answerNoRecipes
	}
	return fmt.Sprintf(answerSuggestion,
		pick.Name, strings.ToLower(string(pick.Difficulty)), pick.Cuisine, pick.CookingTime, len(recipes))
}

func (r *Responder) tip() string {
	return fmt.Sprintf(answerTip, tips[r.src.IntN(len(tips))])
}

func static(text string) func(*Responder) string {
	return func(*Responder) string { return text }
}

func anyOf(words ...string) func(string) bool {
	return func(msg string) bool {
		for _, w := range words {
			if strings.Contains(msg, w) {
				return true
			}
		}
		return false
	}
}

func allOf(words ...string) func(string) bool {
	return func(msg string) bool {
		for _, w := range words {
			if !strings.Contains(msg, w) {
				return false
			}
		}
		return true
	}
}
