package foodapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newOFFServer(t *testing.T, status int, body string) *OFFClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	c := NewOFFClient()
	c.BaseURL = srv.URL
	return c
}

func TestOFFFetchVeganLabel(t *testing.T) {
	body := `{"products":[{"product_name":"Isinglass finings","ingredients_text":"fish swim bladder extract","labels_tags":[],"allergens_tags":["en:fish"]}]}`
	c := newOFFServer(t, http.StatusOK, body)
	res := c.Fetch(context.Background(), "isinglass")
	if res.Ingredient == nil {
		t.Fatalf("expected ingredient, got %+v", res)
	}
	if res.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %s, want high", res.Confidence)
	}
	ing := res.Ingredient
	if !ing.AnimalOrigin {
		t.Errorf("isinglass should be animal origin")
	}
	if ing.AnimalSpecies != "fish" {
		t.Errorf("animal_species = %q, want fish", ing.AnimalSpecies)
	}
	if len(ing.UncertaintyFlags) != 1 || ing.UncertaintyFlags[0] != "open_food_facts_inferred" {
		t.Errorf("uncertainty_flags = %v, want [open_food_facts_inferred]", ing.UncertaintyFlags)
	}
}

func TestOFFFetchLabelsTags(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		query        string
		animalOrigin bool
		dairySource  bool
		eggSource    bool
		nutSource    string
	}{
		{
			name:  "vegan label wins over milk keyword",
			body:  `{"products":[{"product_name":"Oat milk barista","labels_tags":["en:vegan"],"allergens_tags":[]}]}`,
			query: "oat milk",
		},
		{
			name:        "vegetarian label keeps dairy",
			body:        `{"products":[{"product_name":"Paneer cheese","labels_tags":["en:vegetarian"],"allergens_tags":["en:milk"]}]}`,
			query:       "paneer",
			dairySource: true,
		},
		{
			name:         "allergen tags set flags",
			body:         `{"products":[{"product_name":"Mayonnaise","ingredients_text":"oil, egg yolk","labels_tags":[],"allergens_tags":["en:eggs"]}]}`,
			query:        "mayonnaise",
			animalOrigin: false,
			eggSource:    true,
		},
		{
			name:      "peanut allergen tag",
			body:      `{"products":[{"product_name":"Satay sauce","labels_tags":["en:vegan"],"allergens_tags":["en:peanuts"]}]}`,
			query:     "satay sauce",
			nutSource: "peanut",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newOFFServer(t, http.StatusOK, tt.body)
			res := c.Fetch(context.Background(), tt.query)
			if res.Ingredient == nil {
				t.Fatalf("expected ingredient, got %+v", res)
			}
			ing := res.Ingredient
			if ing.AnimalOrigin != tt.animalOrigin {
				t.Errorf("animal_origin = %v, want %v", ing.AnimalOrigin, tt.animalOrigin)
			}
			if ing.DairySource != tt.dairySource {
				t.Errorf("dairy_source = %v, want %v", ing.DairySource, tt.dairySource)
			}
			if ing.EggSource != tt.eggSource {
				t.Errorf("egg_source = %v, want %v", ing.EggSource, tt.eggSource)
			}
			if ing.NutSource != tt.nutSource {
				t.Errorf("nut_source = %q, want %q", ing.NutSource, tt.nutSource)
			}
		})
	}
}

func TestOFFFetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusBadGateway, ""},
		{"bad json", http.StatusOK, "<html>"},
		{"no products", http.StatusOK, `{"products":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newOFFServer(t, tt.status, tt.body)
			res := c.Fetch(context.Background(), "mystery")
			if res.Confidence != ConfidenceLow || res.Ingredient != nil {
				t.Errorf("expected low/no-ingredient, got %+v", res)
			}
		})
	}
}
