package ai

import (
	"reflect"
	"testing"
)

func TestParseIntentJSON(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantIntent  string
		wantIngreds []string
		wantErr     bool
	}{
		{
			name:        "plain JSON",
			raw:         `{"intent": "INGREDIENT_QUERY", "ingredients": ["milk", "sugar"]}`,
			wantIntent:  "INGREDIENT_QUERY",
			wantIngreds: []string{"milk", "sugar"},
		},
		{
			name:        "json code fence",
			raw:         "```json\n{\"intent\": \"INGREDIENT_QUERY\", \"ingredients\": [\"gelatin\"]}\n```",
			wantIntent:  "INGREDIENT_QUERY",
			wantIngreds: []string{"gelatin"},
		},
		{
			name:        "bare code fence",
			raw:         "```\n{\"intent\": \"PROFILE_UPDATE\"}\n```",
			wantIntent:  "PROFILE_UPDATE",
		},
		{
			name:       "object buried in prose",
			raw:        `Sure! Here is the extraction: {"intent": "GREETING", "is_greeting": true} Hope that helps.`,
			wantIntent: "GREETING",
		},
		{
			name:       "greeting flag overrides intent",
			raw:        `{"intent": "INGREDIENT_QUERY", "is_greeting": true}`,
			wantIntent: "GREETING",
		},
		{
			name:       "general question without ingredients overrides",
			raw:        `{"intent": "INGREDIENT_QUERY", "is_general_question": true}`,
			wantIntent: "GENERAL_QUESTION",
		},
		{
			name:        "general question with ingredients keeps intent",
			raw:         `{"intent": "INGREDIENT_QUERY", "is_general_question": true, "ingredients": ["honey"]}`,
			wantIntent:  "INGREDIENT_QUERY",
			wantIngreds: []string{"honey"},
		},
		{
			name:       "missing intent defaults to general question",
			raw:        `{"ingredients": []}`,
			wantIntent: "GENERAL_QUESTION",
		},
		{
			name:        "whitespace entries dropped from lists",
			raw:         `{"intent": "INGREDIENT_QUERY", "ingredients": ["  milk  ", "", "  "]}`,
			wantIntent:  "INGREDIENT_QUERY",
			wantIngreds: []string{"milk"},
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			raw:     "I'm sorry, I can't help with that.",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntentJSON(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Intent != tt.wantIntent {
				t.Errorf("intent = %q, want %q", got.Intent, tt.wantIntent)
			}
			if !reflect.DeepEqual(got.Ingredients, tt.wantIngreds) {
				t.Errorf("ingredients = %v, want %v", got.Ingredients, tt.wantIngreds)
			}
		})
	}
}

func TestParseIntentJSONProfileFields(t *testing.T) {
	raw := `{"intent": "PROFILE_UPDATE", "dietary_preference": "Vegan", "allergens": ["peanut", "soy"], "lifestyle": ["No alcohol"], "remove_allergens": ["soy"]}`
	got, err := parseIntentJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DietaryPreference != "Vegan" {
		t.Errorf("dietary_preference = %q", got.DietaryPreference)
	}
	if !reflect.DeepEqual(got.Allergens, []string{"peanut", "soy"}) {
		t.Errorf("allergens = %v", got.Allergens)
	}
	if !reflect.DeepEqual(got.Lifestyle, []string{"No alcohol"}) {
		t.Errorf("lifestyle = %v", got.Lifestyle)
	}
	if !reflect.DeepEqual(got.RemoveAllergens, []string{"soy"}) {
		t.Errorf("remove_allergens = %v", got.RemoveAllergens)
	}
}
