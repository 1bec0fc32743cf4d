package foodapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newUSDAServer(t *testing.T, status int, body string) (*httptest.Server, *USDAClient) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "" {
			t.Errorf("expected api_key query param")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	c := NewUSDAClient("test-key")
	c.BaseURL = srv.URL
	return srv, c
}

func TestUSDAFetchNoKey(t *testing.T) {
	c := NewUSDAClient("")
	res := c.Fetch(context.Background(), "gelatin")
	if res.Confidence != ConfidenceLow || res.Ingredient != nil {
		t.Fatalf("expected low/no-ingredient without key, got %+v", res)
	}
}

func TestUSDAFetchMapsCategory(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		query        string
		animalOrigin bool
		dairySource  bool
		eggSource    bool
		species      string
		confidence   Confidence
	}{
		{
			name: "pork products category",
			body: `{"foods":[{"fdcId":1,"description":"Pork, bacon, cured","foodCategory":"Pork Products"}]}`,
			query:        "bacon",
			animalOrigin: true,
			species:      "pig",
			confidence:   ConfidenceHigh,
		},
		{
			name: "dairy category",
			body: `{"foods":[{"fdcId":2,"description":"Cheese, cheddar","foodCategory":{"description":"Dairy and Egg Products"}}]}`,
			query:        "cheddar cheese",
			animalOrigin: true,
			dairySource:  true,
			confidence:   ConfidenceHigh,
		},
		{
			name: "egg in dairy category",
			body: `{"foods":[{"fdcId":3,"description":"Egg, whole, raw","foodCategory":"Dairy and Egg Products"}]}`,
			query:        "egg",
			animalOrigin: true,
			dairySource:  true,
			eggSource:    true,
			confidence:   ConfidenceHigh,
		},
		{
			name: "plant category",
			body: `{"foods":[{"fdcId":4,"description":"Spices, paprika","foodCategory":"Spices and Herbs"}]}`,
			query:      "paprika",
			confidence: ConfidenceHigh,
		},
		{
			name: "plant override beats keywords",
			body: `{"foods":[{"fdcId":5,"description":"Peanut butter, smooth","foodCategory":"Legumes and Legume Products"}]}`,
			query:      "peanut butter",
			confidence: ConfidenceHigh,
		},
		{
			name: "ambiguous category keyword inference",
			body: `{"foods":[{"fdcId":6,"description":"Snack bar with whey protein","foodCategory":"Snacks"}]}`,
			query:        "energy bar",
			animalOrigin: true,
			dairySource:  true,
			confidence:   ConfidenceMedium,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newUSDAServer(t, http.StatusOK, tt.body)
			res := c.Fetch(context.Background(), tt.query)
			if res.Ingredient == nil {
				t.Fatalf("expected ingredient, got %+v", res)
			}
			if res.Confidence != tt.confidence {
				t.Errorf("confidence = %s, want %s", res.Confidence, tt.confidence)
			}
			ing := res.Ingredient
			if ing.AnimalOrigin != tt.animalOrigin {
				t.Errorf("animal_origin = %v, want %v", ing.AnimalOrigin, tt.animalOrigin)
			}
			if ing.PlantOrigin == tt.animalOrigin {
				t.Errorf("plant_origin should be the complement of animal_origin")
			}
			if ing.DairySource != tt.dairySource {
				t.Errorf("dairy_source = %v, want %v", ing.DairySource, tt.dairySource)
			}
			if ing.EggSource != tt.eggSource {
				t.Errorf("egg_source = %v, want %v", ing.EggSource, tt.eggSource)
			}
			if ing.AnimalSpecies != tt.species {
				t.Errorf("animal_species = %q, want %q", ing.AnimalSpecies, tt.species)
			}
		})
	}
}

func TestUSDAFetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"rate limited", http.StatusTooManyRequests, ""},
		{"bad json", http.StatusOK, "not json"},
		{"no results", http.StatusOK, `{"foods":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newUSDAServer(t, tt.status, tt.body)
			res := c.Fetch(context.Background(), "mystery")
			if res.Confidence != ConfidenceLow {
				t.Errorf("confidence = %s, want low", res.Confidence)
			}
			if res.Ingredient != nil {
				t.Errorf("expected nil ingredient on failure")
			}
		})
	}
}

func TestMatchConfidence(t *testing.T) {
	tests := []struct {
		query, name string
		want        Confidence
	}{
		{"bacon", "Pork, bacon, cured", ConfidenceHigh},
		{"pork bacon cured", "bacon", ConfidenceHigh},
		{"carmine extract", "Carmine color additive", ConfidenceHigh},
		{"gelatin", "Desserts, unrelated pudding", ConfidenceMedium},
		{"gelatin", "", ConfidenceMedium},
	}
	for _, tt := range tests {
		if got := matchConfidence(tt.query, tt.name); got != tt.want {
			t.Errorf("matchConfidence(%q, %q) = %s, want %s", tt.query, tt.name, got, tt.want)
		}
	}
}

func TestWordMatch(t *testing.T) {
	tests := []struct {
		text, word string
		want       bool
	}{
		{"red onions and salt", "onion", true},
		{"butterscotch candy", "butter", false},
		{"whole milk", "milk", true},
		{"milky way", "milk", false},
		{"two fishes", "fish", true},
	}
	for _, tt := range tests {
		if got := wordMatch(tt.text, tt.word); got != tt.want {
			t.Errorf("wordMatch(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
		}
	}
}

func TestIsPlantOverride(t *testing.T) {
	if !isPlantOverride("creamy almond milk drink") {
		t.Errorf("almond milk should be a plant override")
	}
	if isPlantOverride("whole cow milk") {
		t.Errorf("cow milk should not be a plant override")
	}
}

func TestSlugID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Cheese, cheddar", "cheese_cheddar"},
		{"  ", "unknown"},
		{"E-120 (Carmine)", "e_120_carmine"},
	}
	for _, tt := range tests {
		if got := slugID(tt.in); got != tt.want {
			t.Errorf("slugID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
