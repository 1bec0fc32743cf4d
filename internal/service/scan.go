package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/engine"
	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/normalize"
)

// ScanService evaluates scanned label text against the fixed scan diets
// and produces a per-diet scorecard. OCR happens upstream; this service
// takes the extracted text.
type ScanService struct {
	Engine *engine.Engine
}

// NewScanService is the constructor function for initializing a new ScanService.
func NewScanService(eng *engine.Engine) *ScanService {
	return &ScanService{Engine: eng}
}

// ScanResult is the scan response: extracted ingredients, a scorecard per
// scan diet, and the overall confidence.
type ScanResult struct {
	RawText          string                          `json:"raw_text"`
	Ingredients      []string                        `json:"ingredients"`
	DietaryScorecard map[string]engine.ScorecardEntry `json:"dietary_scorecard"`
	ConfidenceScores map[string]float64              `json:"confidence_scores"`
	DietTags         []string                        `json:"diet_tags"`
}

// ScanLabel parses raw ingredient-label text, evaluates it against the
// scan diet set, and returns the scorecard.
func (s *ScanService) ScanLabel(ctx context.Context, rawText string) (*ScanResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("empty label text")
	}

	atoms := normalize.PreprocessIngredients(rawText)
	ingredients := make([]string, 0, len(atoms))
	for _, a := range atoms {
		ingredients = append(ingredients, a.Name)
	}
	traceKeys := normalize.TraceKeys(atoms)

	verdict := s.Engine.Evaluate(ctx, engine.Request{
		Ingredients:    ingredients,
		RestrictionIDs: engine.ScanRestrictionIDs(),
		TraceKeys:      traceKeys,
		UseAPIFallback: true,
	})
	logger.Get().Info("scan evaluated",
		zap.Int("ingredients", len(ingredients)),
		zap.String("status", string(verdict.Status)),
		zap.Float64("confidence", verdict.ConfidenceScore),
		zap.Strings("triggered", verdict.TriggeredRestrictions))

	return &ScanResult{
		RawText:          rawText,
		Ingredients:      ingredients,
		DietaryScorecard: engine.VerdictToScorecard(&verdict),
		ConfidenceScores: map[string]float64{"overall": verdict.ConfidenceScore},
		DietTags:         engine.DietTagsFromScanVerdict(&verdict),
	}, nil
}

// VerificationResult reports whether a menu item's claimed diet labels
// hold up against its declared ingredients.
type VerificationResult struct {
	ItemName       string                          `json:"item_name"`
	IsConsistent   bool                            `json:"is_consistent"`
	ConfidenceScore float64                        `json:"confidence_score"`
	Issues         []string                        `json:"issues"`
	Scorecard      map[string]engine.ScorecardEntry `json:"scorecard"`
	ValidDietTypes []string                        `json:"valid_diet_types"`
}

// VerifyMenuItem checks claimed diet types against the deterministic
// engine. A claim fails when any declared ingredient triggers the
// corresponding restriction.
func (s *ScanService) VerifyMenuItem(ctx context.Context, itemName string, ingredients, claimedDiets []string) (*VerificationResult, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients given for %q", itemName)
	}

	evalIngredients, traceKeys := engine.PreprocessIngredientList(ingredients)
	verdict := s.Engine.Evaluate(ctx, engine.Request{
		Ingredients:    evalIngredients,
		RestrictionIDs: engine.ClaimedDietRestrictionIDs(claimedDiets),
		TraceKeys:      traceKeys,
		UseAPIFallback: true,
	})

	scorecard := engine.ClaimedDietScorecard(claimedDiets, &verdict)
	var issues []string
	var valid []string
	for _, diet := range claimedDiets {
		entry, ok := scorecard[diet]
		if !ok {
			issues = append(issues, fmt.Sprintf("unknown diet type %q", diet))
			continue
		}
		if entry.Status == "red" {
			issues = append(issues, fmt.Sprintf("claimed %s but %s", diet, strings.ToLower(entry.Reason)))
		} else {
			valid = append(valid, diet)
		}
	}
	logger.Get().Info("menu item verified",
		zap.String("item", itemName),
		zap.Strings("claimed", claimedDiets),
		zap.Int("issues", len(issues)))

	return &VerificationResult{
		ItemName:        itemName,
		IsConsistent:    len(issues) == 0 && verdict.Status != models.StatusUncertain,
		ConfidenceScore: verdict.ConfidenceScore,
		Issues:          issues,
		Scorecard:       scorecard,
		ValidDietTypes:  valid,
	}, nil
}
