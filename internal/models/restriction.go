package models

// RuleAction is what happens when a rule's predicate matches.
type RuleAction string

const (
	ActionFail RuleAction = "FAIL"
	ActionWarn RuleAction = "WARN"
	ActionPass RuleAction = "PASS" // returned by evaluation, never authored
)

// RestrictionCategory groups restrictions by motivation.
type RestrictionCategory string

const (
	CategoryAllergy   RestrictionCategory = "allergy"
	CategoryReligious RestrictionCategory = "religious"
	CategoryMedical   RestrictionCategory = "medical"
	CategoryLifestyle RestrictionCategory = "lifestyle"
)

// Severity indicates how strictly a restriction should be enforced.
type Severity string

const (
	SeverityStrict      Severity = "STRICT"
	SeverityModerate    Severity = "MODERATE"
	SeverityConditional Severity = "CONDITIONAL"
)

// Rule is a single predicate over one Ingredient:
// if (Field Operator Value) then Action.
//
// Operator is one of: equals, not_equals, contains, greater_than, in_list.
// Value keeps the raw JSON type (bool, string, number, or list).
type Rule struct {
	Field    string     `json:"field"`
	Operator string     `json:"operator"`
	Value    any        `json:"value"`
	Action   RuleAction `json:"action"`
}

// Restriction is a named, data-driven rule set expressing one dietary
// constraint. A restriction fires if any rule matches; the first matching
// rule determines the action.
type Restriction struct {
	ID          string              `json:"id"`
	Category    RestrictionCategory `json:"category"`
	RegionScope []string            `json:"region_scope"`
	Severity    Severity            `json:"severity"`
	Rules       []Rule              `json:"rules"`
}

// RestrictionsFile is the on-disk shape of restrictions.json.
type RestrictionsFile struct {
	Restrictions []Restriction `json:"restrictions"`
}
