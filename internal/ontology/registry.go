// Package ontology provides O(1) resolution from a normalized ingredient
// key to a canonical Ingredient, over a merged static+dynamic corpus.
// Lookup is by exact normalized key only; no substring guessing.
package ontology

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/normalize"
)

// File is the on-disk shape of ontology.json and dynamic_ontology.json.
// Dynamic entries may carry _enrichment_* bookkeeping fields; encoding/json
// drops unknown fields on read, which strips them for callers.
type File struct {
	OntologyVersion string               `json:"ontology_version"`
	Ingredients     []*models.Ingredient `json:"ingredients"`
}

// Registry indexes ingredients by normalized canonical name and alias.
// Reads are lock-free after load except against AddIngredient, which is
// serialized by an RWMutex.
type Registry struct {
	mu         sync.RWMutex
	byKey      map[string]*models.Ingredient
	staticKeys map[string]struct{}
	version    string
}

// NewRegistry loads the static ontology, then layers the dynamic file on
// top (dynamic entries override static on key collision). A missing file
// leaves the corresponding layer empty; the registry stays operable.
func NewRegistry(ontologyPath, dynamicPath string) *Registry {
	r := &Registry{
		byKey:      make(map[string]*models.Ingredient),
		staticKeys: make(map[string]struct{}),
		version:    "0",
	}
	log := logger.Get()

	if f, err := loadFile(ontologyPath); err != nil {
		log.Warn("ontology file not loaded; registry empty",
			zap.String("path", ontologyPath), zap.Error(err))
	} else {
		if f.OntologyVersion != "" {
			r.version = f.OntologyVersion
		}
		for _, ing := range f.Ingredients {
			r.index(ing, true)
		}
		log.Info("loaded static ontology",
			zap.String("path", ontologyPath), zap.Int("keys", len(r.byKey)))
	}

	if dynamicPath != "" {
		if f, err := loadFile(dynamicPath); err != nil {
			if !os.IsNotExist(err) {
				log.Warn("dynamic ontology load failed",
					zap.String("path", dynamicPath), zap.Error(err))
			}
		} else {
			for _, ing := range f.Ingredients {
				r.index(ing, false)
			}
			log.Info("loaded dynamic ontology",
				zap.String("path", dynamicPath), zap.Int("total_keys", len(r.byKey)))
		}
	}
	return r
}

func loadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Registry) index(ing *models.Ingredient, static bool) {
	for _, k := range ing.AllKeys() {
		key := normalize.NormalizeKey(k)
		if key == "" {
			continue
		}
		r.byKey[key] = ing
		if static {
			r.staticKeys[key] = struct{}{}
		} else {
			// A dynamic entry wins the key; the source label must
			// follow the winning layer.
			delete(r.staticKeys, key)
		}
	}
}

// Resolve returns the Ingredient for a raw string, or nil when the
// normalized key is not indexed.
func (r *Registry) Resolve(raw string) *models.Ingredient {
	key := normalize.NormalizeKey(raw)
	if key == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byKey[key]
}

// ResolveWithSource resolves and reports which layer the hit came from.
func (r *Registry) ResolveWithSource(raw string) (*models.Ingredient, models.ResolutionSource) {
	key := normalize.NormalizeKey(raw)
	r.mu.RLock()
	defer r.mu.RUnlock()
	ing, ok := r.byKey[key]
	if !ok {
		return nil, models.SourceStatic
	}
	if _, static := r.staticKeys[key]; static {
		return ing, models.SourceStatic
	}
	return ing, models.SourceDynamic
}

// AddIngredient inserts an ingredient into the in-memory index, used after
// a high-confidence external-API hit.
func (r *Registry) AddIngredient(ing *models.Ingredient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range ing.AllKeys() {
		if key := normalize.NormalizeKey(k); key != "" {
			r.byKey[key] = ing
			delete(r.staticKeys, key)
		}
	}
}

// Version returns the active ontology version string.
func (r *Registry) Version() string {
	return r.version
}

// Len returns the number of indexed keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}
