package enrichment

import (
	"context"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/foodapi"
	"github.com/ingresure/ingresure-api/internal/logger"
)

// Job runs periodic enrichment: look up unknown ingredient keys through
// the external APIs and promote high-confidence results into the dynamic
// ontology.
type Job struct {
	Log     *UnknownLog
	Dynamic *DynamicOntology
	Fetcher *foodapi.Fetcher

	// MinFrequency filters out keys seen fewer times than this.
	MinFrequency int
	// DryRun logs what would be promoted without writing.
	DryRun bool
}

// Run processes all eligible keys and returns the number promoted (or,
// in dry-run mode, the number that would be).
func (j *Job) Run(ctx context.Context) (int, error) {
	minFreq := j.MinFrequency
	if minFreq < 1 {
		minFreq = 1
	}
	keys := j.Log.KeysForEnrichment(minFreq)
	if len(keys) == 0 {
		logger.Get().Info("no unknown ingredients to enrich")
		return 0, nil
	}
	logger.Get().Info("enriching unknown ingredient keys",
		zap.Int("keys", len(keys)), zap.Int("min_frequency", minFreq))

	added := 0
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		res := j.Fetcher.Fetch(ctx, key)
		if res.Ingredient == nil || res.Confidence != foodapi.ConfidenceHigh {
			continue
		}
		if j.DryRun {
			logger.Get().Info("dry-run would add to dynamic ontology",
				zap.String("id", res.Ingredient.ID), zap.String("source", res.Source))
			added++
			continue
		}
		if err := j.Dynamic.Append(res.Ingredient, res.Source, string(res.Confidence)); err != nil {
			return added, err
		}
		added++
	}
	logger.Get().Info("enrichment run complete", zap.Int("added", added))
	return added, nil
}
