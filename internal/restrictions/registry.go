// Package restrictions loads dietary restrictions from a data file and
// evaluates ingredients against their rules. All restrictions are
// data-driven; no hardcoded diet logic.
package restrictions

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
)

// Registry holds all loaded restrictions keyed by id, preserving file
// order for deterministic iteration.
type Registry struct {
	byID  map[string]*models.Restriction
	order []string
}

// NewRegistry loads restrictions from path. A missing or malformed file
// yields an empty registry; the engine then returns low-confidence
// UNCERTAIN rather than failing the process.
func NewRegistry(path string) *Registry {
	r := &Registry{byID: make(map[string]*models.Restriction)}
	log := logger.Get()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("restrictions file not loaded; registry empty",
			zap.String("path", path), zap.Error(err))
		return r
	}
	var f models.RestrictionsFile
	if err := json.Unmarshal(data, &f); err != nil {
		log.Warn("restrictions file malformed; registry empty",
			zap.String("path", path), zap.Error(err))
		return r
	}
	for i := range f.Restrictions {
		res := &f.Restrictions[i]
		if _, dup := r.byID[res.ID]; !dup {
			r.order = append(r.order, res.ID)
		}
		r.byID[res.ID] = res
	}
	log.Info("loaded restrictions", zap.String("path", path), zap.Int("count", len(r.byID)))
	return r
}

// Get returns the restriction for an id, or nil.
func (r *Registry) Get(id string) *models.Restriction {
	return r.byID[id]
}

// ListIDs returns all restriction ids in file order.
func (r *Registry) ListIDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of loaded restrictions.
func (r *Registry) Len() int {
	return len(r.byID)
}

// Evaluate runs one ingredient against one restriction. The first matching
// rule decides: ("FAIL", reason) or ("WARN", reason); ("PASS", "") when no
// rule matches.
func (r *Registry) Evaluate(ing *models.Ingredient, restriction *models.Restriction) (models.RuleAction, string) {
	for _, rule := range restriction.Rules {
		if evaluateRule(ing, &rule) {
			reason := fmt.Sprintf("%s: %s %s %v", restriction.ID, rule.Field, rule.Operator, rule.Value)
			return rule.Action, reason
		}
	}
	return models.ActionPass, ""
}
