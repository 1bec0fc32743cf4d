package engine

import (
	"math"

	"github.com/ingresure/ingresure-api/internal/models"
)

var levelWeights = map[models.ResolutionLevel]float64{
	models.ResolutionHigh:      1.0,
	models.ResolutionMedium:    0.7,
	models.ResolutionLow:       0.0,
	models.ResolutionAPIFailed: 0.35,
}

// confidenceInputs carries everything the confidence model needs from one
// evaluation.
type confidenceInputs struct {
	levels         []models.ResolutionLevel
	uncertainCount int
	warningCount   int
	informational  int
	status         models.VerdictStatus
	allTriggersAre bool // every failing restriction came from a trace ingredient
	anyTriggers    bool
}

// computeConfidence scores one verdict in [0,1]. The base is the weighted
// resolution ratio minus penalties for uncertain items and warnings; band
// clamps then apply in a fixed order: the api_failed ceiling first, then
// the trace-only violation band, then the informational floor.
func computeConfidence(in confidenceInputs) float64 {
	n := len(in.levels)
	if n == 0 {
		return 0.0
	}
	var sum float64
	anyAPIFailed := false
	for _, lvl := range in.levels {
		sum += levelWeights[lvl]
		if lvl == models.ResolutionAPIFailed {
			anyAPIFailed = true
		}
	}
	effectiveRatio := sum / float64(n)
	base := effectiveRatio - 0.1*float64(in.uncertainCount) - 0.05*float64(in.warningCount)
	if base < 0 {
		base = 0
	}

	if anyAPIFailed && base > 0.4 {
		base = 0.4
	}
	if in.status == models.StatusNotSafe && in.anyTriggers && in.allTriggersAre {
		base = math.Min(math.Max(base, 0.2), 0.5)
	}
	if in.status == models.StatusSafe && in.informational > 0 && base < 0.2 {
		base = 0.2
	}
	return round4(base)
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
