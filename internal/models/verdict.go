package models

// VerdictStatus is the terminal status of one engine evaluation.
type VerdictStatus string

const (
	StatusSafe      VerdictStatus = "SAFE"
	StatusNotSafe   VerdictStatus = "NOT_SAFE"
	StatusUncertain VerdictStatus = "UNCERTAIN"
)

// ComplianceVerdict is the structured output of the compliance engine for
// one evaluation. Triggered lists are ordered by first discovery and
// deduplicated.
type ComplianceVerdict struct {
	Status                   VerdictStatus `json:"status"`
	TriggeredRestrictions    []string      `json:"triggered_restrictions"`
	TriggeredIngredients     []string      `json:"triggered_ingredients"`
	UncertainIngredients     []string      `json:"uncertain_ingredients"`
	InformationalIngredients []string      `json:"informational_ingredients"`
	ConfidenceScore          float64       `json:"confidence_score"`
	OntologyVersion          string        `json:"ontology_version"`
}

// ResolutionLevel describes how an individual ingredient was resolved,
// feeding the confidence model.
type ResolutionLevel string

const (
	ResolutionHigh      ResolutionLevel = "high"
	ResolutionMedium    ResolutionLevel = "medium"
	ResolutionLow       ResolutionLevel = "low"
	ResolutionAPIFailed ResolutionLevel = "api_failed"
)

// ResolutionSource names which tier produced an ingredient.
type ResolutionSource string

const (
	SourceStatic    ResolutionSource = "static"
	SourceDynamic   ResolutionSource = "dynamic"
	SourceAPI       ResolutionSource = "api"
	SourceAPIFailed ResolutionSource = "api_failed"
	SourceRejected  ResolutionSource = "rejected"
)
