// Package foodapi resolves unknown ingredients through external food
// databases: USDA FoodData Central and Open Food Facts. Results are mapped
// onto the Ingredient schema with category-first flag inference and cached
// in memory.
package foodapi

import "github.com/ingresure/ingresure-api/internal/models"

// Confidence grades an external lookup.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Result is the outcome of fetching one ingredient from an external API.
type Result struct {
	Ingredient *models.Ingredient
	Confidence Confidence
	Source     string // "usda_fdc" | "open_food_facts" | "none"
	Summary    string // for logging
}
