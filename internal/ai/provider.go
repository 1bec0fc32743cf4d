package ai

import (
	"context"

	"github.com/ingresure/ingresure-api/internal/models"
)

// TextProvider handles all LLM text tasks. The compliance engine stays
// fully deterministic; providers only parse free-form input and phrase
// structured output. Every method may fail, and callers always have a
// rule-based or template fallback.
type TextProvider interface {
	ExtractIntent(ctx context.Context, query string) (*IntentResult, error)
	RewriteVerdict(ctx context.Context, req VerdictPrompt) (string, error)
	ComposeGreeting(ctx context.Context, dietaryPreference string) (string, error)
	ComposeGeneral(ctx context.Context, query string, dietaryPreference string) (string, error)
}

// IntentResult is the structured intent extracted by the LLM fallback,
// mirroring the rule-based detector's output.
type IntentResult struct {
	Intent            string   `json:"intent"`
	DietaryPreference string   `json:"dietary_preference"`
	Ingredients       []string `json:"ingredients"`
	Allergens         []string `json:"allergens"`
	Lifestyle         []string `json:"lifestyle"`
	RemoveAllergens   []string `json:"remove_allergens"`
	IsGreeting        bool     `json:"is_greeting"`
	IsGeneralQuestion bool     `json:"is_general_question"`
}

// VerdictPrompt is the structured input for a verdict rewrite.
type VerdictPrompt struct {
	Verdict     *models.ComplianceVerdict
	Diet        string
	Ingredients []string
	// ProfileChanges describes profile fields updated this turn, e.g.
	// "dietary_preference -> Jain".
	ProfileChanges []string
}
