package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ingresure/ingresure-api/internal/engine"
	"github.com/ingresure/ingresure-api/internal/enrichment"
	"github.com/ingresure/ingresure-api/internal/ontology"
	"github.com/ingresure/ingresure-api/internal/resolver"
	"github.com/ingresure/ingresure-api/internal/restrictions"
)

// SampleOntologyJSON is a small ingredient ontology used across tests.
const SampleOntologyJSON = `{
  "ontology_version": "3.0",
  "ingredients": [
    {"id": "water", "canonical_name": "water", "plant_origin": false},
    {"id": "sugar", "canonical_name": "sugar", "plant_origin": true},
    {"id": "salt", "canonical_name": "salt", "plant_origin": false},
    {"id": "milk", "canonical_name": "milk", "animal_origin": true, "dairy_source": true, "animal_species": "cow"},
    {"id": "garlic", "canonical_name": "garlic", "plant_origin": true, "root_vegetable": true, "garlic_source": true},
    {"id": "gelatin", "canonical_name": "gelatin", "aliases": ["gelatine", "e441"], "animal_origin": true, "animal_species": "pig"},
    {"id": "basil", "canonical_name": "basil", "plant_origin": true}
  ]
}`

// SampleRestrictionsJSON is a small rule catalog matching SampleOntologyJSON.
const SampleRestrictionsJSON = `{
  "restrictions": [
    {
      "id": "vegan",
      "category": "dietary",
      "severity": "strict",
      "rules": [
        {"field": "animal_origin", "operator": "equals", "value": true, "action": "FAIL"},
        {"field": "dairy_source", "operator": "equals", "value": true, "action": "FAIL"}
      ]
    },
    {
      "id": "jain",
      "category": "religious",
      "severity": "strict",
      "rules": [
        {"field": "root_vegetable", "operator": "equals", "value": true, "action": "FAIL"}
      ]
    },
    {
      "id": "halal",
      "category": "religious",
      "severity": "strict",
      "rules": [
        {"field": "animal_species", "operator": "equals", "value": "pig", "action": "FAIL"}
      ]
    },
    {
      "id": "hindu_vegetarian",
      "category": "religious",
      "severity": "strict",
      "rules": [
        {"field": "meat_fish_derived", "operator": "equals", "value": true, "action": "FAIL"}
      ]
    }
  ]
}`

// NewTestEngine builds an Engine over the sample fixtures in a temp dir.
// No external food API is wired; unresolved ingredients stay unknown.
func NewTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	dir := t.TempDir()
	ontPath := filepath.Join(dir, "ontology.json")
	restPath := filepath.Join(dir, "restrictions.json")
	if err := os.WriteFile(ontPath, []byte(SampleOntologyJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(restPath, []byte(SampleRestrictionsJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	dynamicPath := filepath.Join(dir, "dynamic_ontology.json")
	reg := ontology.NewRegistry(ontPath, dynamicPath)
	unknown := enrichment.NewUnknownLog(filepath.Join(dir, "unknown.json"))
	dynamic := enrichment.NewDynamicOntology(dynamicPath)
	res := resolver.New(reg, nil, unknown, dynamic)
	return engine.New(res, restrictions.NewRegistry(restPath))
}
