package restrictions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ingresure/ingresure-api/internal/models"
)

const testRestrictions = `{
  "restrictions": [
    {
      "id": "vegan",
      "category": "lifestyle",
      "region_scope": ["GLOBAL"],
      "severity": "STRICT",
      "rules": [
        {"field": "animal_origin", "operator": "equals", "value": true, "action": "FAIL"},
        {"field": "insect_derived", "operator": "equals", "value": true, "action": "FAIL"},
        {"field": "dairy_source", "operator": "equals", "value": true, "action": "FAIL"},
        {"field": "egg_source", "operator": "equals", "value": true, "action": "FAIL"}
      ]
    },
    {
      "id": "jain",
      "category": "religious",
      "region_scope": ["GLOBAL", "IN"],
      "severity": "STRICT",
      "rules": [
        {"field": "meat_fish_derived", "operator": "equals", "value": true, "action": "FAIL"},
        {"field": "root_vegetable", "operator": "equals", "value": true, "action": "FAIL"},
        {"field": "fermented", "operator": "equals", "value": true, "action": "WARN"}
      ]
    },
    {
      "id": "no_alcohol",
      "category": "lifestyle",
      "region_scope": ["GLOBAL"],
      "severity": "STRICT",
      "rules": [
        {"field": "alcohol_content", "operator": "greater_than", "value": 0, "action": "FAIL"}
      ]
    }
  ]
}`

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restrictions.json")
	if err := os.WriteFile(path, []byte(testRestrictions), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewRegistry(path)
}

func TestRegistry_Load(t *testing.T) {
	r := newTestRegistry(t)
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
	ids := r.ListIDs()
	if len(ids) != 3 || ids[0] != "vegan" || ids[1] != "jain" {
		t.Errorf("ListIDs = %v, want file order", ids)
	}
	if r.Get("vegan") == nil || r.Get("nope") != nil {
		t.Error("Get lookup broken")
	}
}

func TestRegistry_MissingFileIsEmpty(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "absent.json"))
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestEvaluate_FirstMatchingRuleWins(t *testing.T) {
	r := newTestRegistry(t)
	milk := &models.Ingredient{ID: "milk", CanonicalName: "milk", AnimalOrigin: true, DairySource: true}

	action, reason := r.Evaluate(milk, r.Get("vegan"))
	if action != models.ActionFail {
		t.Fatalf("action = %s, want FAIL", action)
	}
	// animal_origin is listed first, so it supplies the reason.
	if reason != "vegan: animal_origin equals true" {
		t.Errorf("reason = %q", reason)
	}
}

func TestEvaluate_PassWhenNoRuleMatches(t *testing.T) {
	r := newTestRegistry(t)
	water := &models.Ingredient{ID: "water", CanonicalName: "water"}
	if action, reason := r.Evaluate(water, r.Get("vegan")); action != models.ActionPass || reason != "" {
		t.Errorf("water vs vegan = (%s, %q), want PASS", action, reason)
	}
}

func TestEvaluate_Warn(t *testing.T) {
	r := newTestRegistry(t)
	vinegar := &models.Ingredient{ID: "vinegar", CanonicalName: "vinegar", PlantOrigin: true, Fermented: true}
	if action, _ := r.Evaluate(vinegar, r.Get("jain")); action != models.ActionWarn {
		t.Errorf("vinegar vs jain = %s, want WARN", action)
	}
}

func TestEvaluate_DerivedPredicate(t *testing.T) {
	r := newTestRegistry(t)
	// Dairy is animal-origin but not meat/fish; jain's meat_fish_derived
	// rule must not fire for it.
	ghee := &models.Ingredient{ID: "ghee", CanonicalName: "ghee", AnimalOrigin: true, DairySource: true}
	if action, _ := r.Evaluate(ghee, r.Get("jain")); action != models.ActionPass {
		t.Errorf("ghee vs jain = %s, want PASS", action)
	}
	gelatin := &models.Ingredient{ID: "gelatin", CanonicalName: "gelatin", AnimalOrigin: true, AnimalSpecies: "pig"}
	if action, _ := r.Evaluate(gelatin, r.Get("jain")); action != models.ActionFail {
		t.Errorf("gelatin vs jain = %s, want FAIL", action)
	}
}

func TestEvaluate_GreaterThan(t *testing.T) {
	r := newTestRegistry(t)
	abv := 0.12
	wine := &models.Ingredient{ID: "wine", CanonicalName: "wine", AlcoholContent: &abv}
	if action, _ := r.Evaluate(wine, r.Get("no_alcohol")); action != models.ActionFail {
		t.Errorf("wine vs no_alcohol = %s, want FAIL", action)
	}
	water := &models.Ingredient{ID: "water", CanonicalName: "water"}
	if action, _ := r.Evaluate(water, r.Get("no_alcohol")); action != models.ActionPass {
		t.Errorf("water (nil alcohol) vs no_alcohol = %s, want PASS", action)
	}
}

func TestEvaluateRule_Operators(t *testing.T) {
	ing := &models.Ingredient{
		ID:            "carmine",
		CanonicalName: "carmine",
		Aliases:       []string{"cochineal extract", "e120"},
		AnimalOrigin:  true,
		InsectDerived: true,
		AnimalSpecies: "insect",
	}
	tests := []struct {
		rule models.Rule
		want bool
	}{
		{models.Rule{Field: "animal_species", Operator: "equals", Value: "insect"}, true},
		{models.Rule{Field: "animal_species", Operator: "not_equals", Value: "pig"}, true},
		{models.Rule{Field: "aliases", Operator: "contains", Value: "e120"}, true},
		{models.Rule{Field: "canonical_name", Operator: "contains", Value: "carm"}, true},
		{models.Rule{Field: "animal_species", Operator: "in_list", Value: []any{"pig", "insect"}}, true},
		{models.Rule{Field: "animal_species", Operator: "in_list", Value: []any{"pig", "cow"}}, false},
		{models.Rule{Field: "no_such_field", Operator: "equals", Value: true}, false},
		{models.Rule{Field: "alcohol_content", Operator: "greater_than", Value: 0}, false},
	}
	for _, tt := range tests {
		if got := evaluateRule(ing, &tt.rule); got != tt.want {
			t.Errorf("rule %+v = %v, want %v", tt.rule, got, tt.want)
		}
	}
}
