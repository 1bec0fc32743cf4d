package models

// Intent classifies what a chat message is asking for.
type Intent string

const (
	IntentProfileUpdate   Intent = "PROFILE_UPDATE"
	IntentIngredientQuery Intent = "INGREDIENT_QUERY"
	IntentMixed           Intent = "MIXED"
	IntentGreeting        Intent = "GREETING"
	IntentGeneralQuestion Intent = "GENERAL_QUESTION"
)

// ParsedIntent is the structured result of intent detection on one query.
type ParsedIntent struct {
	Intent         Intent        `json:"intent"`
	ProfileUpdates ProfileUpdate `json:"profile_updates"`
	Ingredients    []string      `json:"ingredients"`
	OriginalQuery  string        `json:"original_query"`
}
