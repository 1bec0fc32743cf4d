package resolver

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/enrichment"
	"github.com/ingresure/ingresure-api/internal/foodapi"
	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/normalize"
	"github.com/ingresure/ingresure-api/internal/ontology"
)

// Words that mark a string as a sentence or question rather than an
// ingredient name.
var sentenceVerbs = map[string]struct{}{
	"eat": {}, "can": {}, "have": {}, "does": {}, "allow": {}, "permit": {},
	"is": {}, "are": {}, "do": {}, "will": {}, "should": {}, "could": {},
	"would": {}, "may": {}, "might": {}, "shall": {}, "make": {}, "tell": {},
	"check": {}, "know": {}, "find": {}, "safe": {}, "ok": {}, "okay": {},
}

var dietWords = map[string]struct{}{
	"jain": {}, "vegan": {}, "vegetarian": {}, "halal": {}, "kosher": {},
	"hindu": {}, "pescatarian": {}, "lacto": {}, "ovo": {}, "sikh": {},
	"buddhist": {},
}

var fillerWords = map[string]struct{}{
	"i": {}, "my": {}, "me": {}, "a": {}, "the": {}, "for": {}, "to": {},
}

// validIngredientInput rejects strings that are obviously sentences or
// questions, keeping queries like "can jain eat onion" away from the
// external APIs. Plausible ingredients are 1-5 words with no verbs.
func validIngredientInput(s string) bool {
	words := strings.Fields(strings.ToLower(s))
	if len(words) == 0 {
		return false
	}
	if len(words) > 5 {
		return false
	}
	hasVerb, hasDiet := false, false
	stopwords := 0
	for _, w := range words {
		if _, ok := sentenceVerbs[w]; ok {
			hasVerb = true
			stopwords++
		} else if _, ok := fillerWords[w]; ok {
			stopwords++
		}
		if _, ok := dietWords[w]; ok {
			hasDiet = true
		}
	}
	if hasVerb && hasDiet {
		return false
	}
	if len(words) > 2 && float64(stopwords) > float64(len(words))/2 {
		return false
	}
	return true
}

// Resolution is one resolver outcome.
type Resolution struct {
	Ingredient *models.Ingredient
	Source     models.ResolutionSource
	Level      models.ResolutionLevel
}

// Options carries the per-call context a resolution is happening in.
type Options struct {
	TryAPI         bool
	LogUnknown     bool
	RestrictionIDs []string
	ProfileContext map[string]interface{}
}

// Resolver resolves raw ingredient strings through the ontology tiers:
// static, then dynamic, then (optionally) the external APIs. High
// confidence API results are promoted into the dynamic ontology so the
// system improves with use.
type Resolver struct {
	Registry *ontology.Registry
	Fetcher  *foodapi.Fetcher
	Unknown  *enrichment.UnknownLog
	Dynamic  *enrichment.DynamicOntology
}

// New builds a resolver. Fetcher, Unknown and Dynamic may be nil when the
// corresponding tier is disabled.
func New(reg *ontology.Registry, fetcher *foodapi.Fetcher, unknown *enrichment.UnknownLog, dynamic *enrichment.DynamicOntology) *Resolver {
	return &Resolver{Registry: reg, Fetcher: fetcher, Unknown: unknown, Dynamic: dynamic}
}

// Resolve looks up a raw string in the static and dynamic tiers only.
func (r *Resolver) Resolve(raw string) *models.Ingredient {
	ing, _ := r.Registry.ResolveWithSource(raw)
	return ing
}

// ResolveWithFallback resolves a raw ingredient string through all tiers.
func (r *Resolver) ResolveWithFallback(ctx context.Context, raw string, opts Options) Resolution {
	key := normalize.NormalizeKey(raw)
	if ing, source := r.Registry.ResolveWithSource(raw); ing != nil {
		return Resolution{Ingredient: ing, Source: source, Level: models.ResolutionHigh}
	}

	if !validIngredientInput(key) {
		logger.Get().Warn("rejected non-ingredient input",
			zap.String("raw", truncate(raw, 60)),
			zap.String("key", key))
		return Resolution{Source: models.SourceRejected, Level: models.ResolutionLow}
	}

	if opts.LogUnknown && r.Unknown != nil {
		r.Unknown.Record(raw, key, opts.RestrictionIDs, opts.ProfileContext)
	}

	if !opts.TryAPI || r.Fetcher == nil {
		return Resolution{Source: models.SourceStatic, Level: models.ResolutionLow}
	}

	result := r.Fetcher.Fetch(ctx, key)
	if result.Ingredient == nil {
		logger.Get().Info("external lookup found nothing",
			zap.String("raw", truncate(raw, 50)),
			zap.String("key", key))
		return Resolution{Source: models.SourceAPIFailed, Level: models.ResolutionAPIFailed}
	}

	switch result.Confidence {
	case foodapi.ConfidenceHigh:
		if r.Dynamic != nil {
			if err := r.Dynamic.Append(result.Ingredient, result.Source, string(result.Confidence)); err != nil {
				logger.Get().Warn("dynamic ontology append failed",
					zap.String("id", result.Ingredient.ID), zap.Error(err))
			}
		}
		r.Registry.AddIngredient(result.Ingredient)
		logger.Get().Info("ontology enrichment promoted ingredient",
			zap.String("raw", truncate(raw, 50)),
			zap.String("key", key),
			zap.String("canonical_name", truncate(result.Ingredient.CanonicalName, 60)),
			zap.String("id", result.Ingredient.ID),
			zap.String("source", result.Source))
		return Resolution{Ingredient: result.Ingredient, Source: models.SourceAPI, Level: models.ResolutionHigh}
	case foodapi.ConfidenceMedium:
		// Usable for this request, but only a human or a later
		// high-confidence hit should promote it.
		logger.Get().Info("external lookup used without promotion",
			zap.String("raw", truncate(raw, 50)),
			zap.String("canonical_name", truncate(result.Ingredient.CanonicalName, 60)),
			zap.String("source", result.Source))
		return Resolution{Ingredient: result.Ingredient, Source: models.SourceAPI, Level: models.ResolutionMedium}
	default:
		return Resolution{Source: models.SourceAPIFailed, Level: models.ResolutionAPIFailed}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
