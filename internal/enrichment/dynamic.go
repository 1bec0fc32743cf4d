package enrichment

import (
	"errors"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/util"
)

// dynamicEntry is a stored ingredient plus enrichment bookkeeping. The
// underscore-prefixed fields are dropped by the ontology loader, which
// only knows the ingredient schema.
type dynamicEntry struct {
	models.Ingredient
	EnrichmentSource     string `json:"_enrichment_source,omitempty"`
	EnrichmentConfidence string `json:"_enrichment_confidence,omitempty"`
}

type dynamicFile struct {
	OntologyVersion string         `json:"ontology_version"`
	Ingredients     []dynamicEntry `json:"ingredients"`
}

// DynamicOntology manages the file of ingredients promoted by
// enrichment, layered on top of the static ontology at load time.
type DynamicOntology struct {
	mu          sync.Mutex
	path        string
	version     string
	ingredients []dynamicEntry
}

// NewDynamicOntology loads path; a missing or malformed file starts
// empty with version "1.0".
func NewDynamicOntology(path string) *DynamicOntology {
	d := &DynamicOntology{path: path, version: "1.0"}
	var f dynamicFile
	if err := util.ReadJSONFile(path, &f); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Get().Warn("dynamic ontology load failed",
				zap.String("path", path), zap.Error(err))
		}
		return d
	}
	if f.OntologyVersion != "" {
		d.version = f.OntologyVersion
	}
	d.ingredients = f.Ingredients
	logger.Get().Info("loaded dynamic ontology",
		zap.String("path", path), zap.Int("ingredients", len(f.Ingredients)))
	return d
}

// Append stores an enriched ingredient, deduplicated by id, and persists
// the file atomically.
func (d *DynamicOntology) Append(ing *models.Ingredient, source, confidence string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.ingredients {
		if existing.ID == ing.ID {
			logger.Get().Debug("dynamic ontology already has ingredient",
				zap.String("id", ing.ID))
			return nil
		}
	}
	d.ingredients = append(d.ingredients, dynamicEntry{
		Ingredient:           *ing,
		EnrichmentSource:     source,
		EnrichmentConfidence: confidence,
	})
	if err := util.WriteJSONFileAtomic(d.path, dynamicFile{
		OntologyVersion: d.version,
		Ingredients:     d.ingredients,
	}); err != nil {
		return err
	}
	logger.Get().Info("enrichment added to dynamic ontology",
		zap.String("id", ing.ID),
		zap.String("source", source),
		zap.String("confidence", confidence))
	return nil
}

// Ingredients returns the stored ingredients without the enrichment
// bookkeeping fields.
func (d *DynamicOntology) Ingredients() []models.Ingredient {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Ingredient, len(d.ingredients))
	for i, e := range d.ingredients {
		out[i] = e.Ingredient
	}
	return out
}

// Version returns the file's ontology version.
func (d *DynamicOntology) Version() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}
