package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/normalize"
	"github.com/ingresure/ingresure-api/internal/resolver"
	"github.com/ingresure/ingresure-api/internal/restrictions"
)

// Engine is the deterministic compliance pipeline: resolve each atomic
// ingredient, evaluate every selected restriction against it, aggregate a
// verdict. No LLM and no substring guessing; an unknown ingredient makes
// the verdict UNCERTAIN, never SAFE.
type Engine struct {
	Resolver     *resolver.Resolver
	Restrictions *restrictions.Registry
}

// New builds an engine over the given resolver and restriction registry.
func New(res *resolver.Resolver, reg *restrictions.Registry) *Engine {
	return &Engine{Resolver: res, Restrictions: reg}
}

// Request is one evaluation call.
type Request struct {
	// Ingredients are atomic, already flattened ingredient strings.
	Ingredients []string
	// RestrictionIDs selects restrictions; nil means all loaded.
	RestrictionIDs []string
	// TraceKeys marks normalized keys that came from a "less than 2%"
	// section of the label.
	TraceKeys map[string]struct{}
	// UseAPIFallback enables external lookups for unknown ingredients.
	UseAPIFallback bool
	// ProfileContext is attached to unknown-ingredient log entries.
	ProfileContext map[string]interface{}
}

// Evaluate runs the pipeline and returns a terminal verdict.
func (e *Engine) Evaluate(ctx context.Context, req Request) models.ComplianceVerdict {
	version := e.Resolver.Registry.Version()
	if len(req.Ingredients) == 0 {
		return models.ComplianceVerdict{
			Status:          models.StatusUncertain,
			ConfidenceScore: 0.0,
			OntologyVersion: version,
		}
	}
	if e.Restrictions.Len() == 0 {
		logger.Get().Warn("restriction registry empty, verdict uncertain")
		return models.ComplianceVerdict{
			Status:          models.StatusUncertain,
			ConfidenceScore: 0.0,
			OntologyVersion: version,
		}
	}

	type resolvedItem struct {
		ingredient *models.Ingredient
		trace      bool
	}
	var (
		resolved      []resolvedItem
		levels        []models.ResolutionLevel
		uncertainRaw  []string
		informational []string
	)
	for _, raw := range req.Ingredients {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		key := normalize.NormalizeKey(raw)
		_, isTrace := req.TraceKeys[key]
		res := e.Resolver.ResolveWithFallback(ctx, raw, resolver.Options{
			TryAPI:         req.UseAPIFallback,
			LogUnknown:     true,
			RestrictionIDs: req.RestrictionIDs,
			ProfileContext: req.ProfileContext,
		})
		if res.Ingredient == nil {
			if isTrace {
				// A trace-section miss is informational; it does not
				// drag the verdict to UNCERTAIN.
				informational = append(informational, raw)
				levels = append(levels, models.ResolutionHigh)
			} else {
				uncertainRaw = append(uncertainRaw, raw)
				levels = append(levels, res.Level)
			}
			continue
		}
		resolved = append(resolved, resolvedItem{ingredient: res.Ingredient, trace: isTrace})
		levels = append(levels, res.Level)
	}
	if len(uncertainRaw) > 0 {
		logger.Get().Info("unknown ingredients in evaluation",
			zap.Int("count", len(uncertainRaw)),
			zap.Strings("items", uncertainRaw))
	}

	var restIDs []string
	if req.RestrictionIDs != nil {
		for _, rid := range req.RestrictionIDs {
			if e.Restrictions.Get(rid) != nil {
				restIDs = append(restIDs, rid)
			}
		}
	} else {
		restIDs = e.Restrictions.ListIDs()
	}

	var (
		triggeredRestrictions []string
		triggeredIngredients  []string
		warningCount          int
		anyTriggers           bool
		allTriggersTrace      = true
	)
	for _, rid := range restIDs {
		rest := e.Restrictions.Get(rid)
		for _, item := range resolved {
			action, reason := e.Restrictions.Evaluate(item.ingredient, rest)
			switch action {
			case models.ActionFail:
				triggeredRestrictions = append(triggeredRestrictions, rid)
				triggeredIngredients = append(triggeredIngredients, item.ingredient.CanonicalName)
				anyTriggers = true
				if !item.trace {
					allTriggersTrace = false
				}
				logger.Get().Debug("restriction failed",
					zap.String("restriction", rid),
					zap.String("ingredient", item.ingredient.CanonicalName),
					zap.String("reason", reason))
			case models.ActionWarn:
				warningCount++
			}
		}
	}

	triggeredRestrictions = dedupe(triggeredRestrictions)
	triggeredIngredients = dedupe(triggeredIngredients)

	var status models.VerdictStatus
	switch {
	case len(triggeredRestrictions) > 0:
		status = models.StatusNotSafe
	case len(uncertainRaw) > 0:
		status = models.StatusUncertain
	default:
		status = models.StatusSafe
	}

	confidence := computeConfidence(confidenceInputs{
		levels:         levels,
		uncertainCount: len(uncertainRaw),
		warningCount:   warningCount,
		informational:  len(informational),
		status:         status,
		allTriggersAre: allTriggersTrace,
		anyTriggers:    anyTriggers,
	})

	return models.ComplianceVerdict{
		Status:                   status,
		TriggeredRestrictions:    triggeredRestrictions,
		TriggeredIngredients:     triggeredIngredients,
		UncertainIngredients:     uncertainRaw,
		InformationalIngredients: informational,
		ConfidenceScore:          confidence,
		OntologyVersion:          version,
	}
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
