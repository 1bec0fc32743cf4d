package compose

import (
	"strings"
	"testing"

	"github.com/ingresure/ingresure-api/internal/models"
)

func veganProfile() *models.UserProfile {
	return &models.UserProfile{UserID: "u1", DietaryPreference: "Vegan"}
}

func TestVerdictSingleTriggered(t *testing.T) {
	out := Verdict(VerdictInput{
		Verdict: &models.ComplianceVerdict{
			Status:                models.StatusNotSafe,
			TriggeredRestrictions: []string{"vegan"},
			TriggeredIngredients:  []string{"milk"},
			ConfidenceScore:       1.0,
		},
		Profile:     veganProfile(),
		Ingredients: []string{"milk"},
	})
	if !strings.Contains(out, "**Milk** is **not suitable**") {
		t.Errorf("missing verdict sentence: %q", out)
	}
	if !strings.Contains(out, "dairy product") {
		t.Errorf("missing canonical reason: %q", out)
	}
	if !strings.Contains(out, "**Vegan**") {
		t.Errorf("missing diet name: %q", out)
	}
}

func TestVerdictPluralAgreement(t *testing.T) {
	out := Verdict(VerdictInput{
		Verdict: &models.ComplianceVerdict{
			Status:                models.StatusNotSafe,
			TriggeredRestrictions: []string{"vegan"},
			TriggeredIngredients:  []string{"eggs"},
			ConfidenceScore:       1.0,
		},
		Profile:     veganProfile(),
		Ingredients: []string{"eggs"},
	})
	if !strings.Contains(out, "**Eggs** are **not suitable**") {
		t.Errorf("plural ingredient should use 'are': %q", out)
	}
}

func TestVerdictMixedSafeAndTriggered(t *testing.T) {
	out := Verdict(VerdictInput{
		Verdict: &models.ComplianceVerdict{
			Status:                models.StatusNotSafe,
			TriggeredRestrictions: []string{"vegan"},
			TriggeredIngredients:  []string{"milk"},
			ConfidenceScore:       1.0,
		},
		Profile:     veganProfile(),
		Ingredients: []string{"water", "sugar", "milk"},
	})
	if !strings.Contains(out, "**Milk**") || !strings.Contains(out, "not suitable") {
		t.Errorf("missing triggered ingredient: %q", out)
	}
	if !strings.Contains(out, "**Water**") || !strings.Contains(out, "**Sugar**") {
		t.Errorf("safe remainder not listed: %q", out)
	}
	if !strings.Contains(out, "fine for your diet") {
		t.Errorf("missing safe phrasing: %q", out)
	}
}

func TestVerdictCompoundDisplayName(t *testing.T) {
	out := Verdict(VerdictInput{
		Verdict: &models.ComplianceVerdict{
			Status:                models.StatusNotSafe,
			TriggeredRestrictions: []string{"vegan"},
			TriggeredIngredients:  []string{"chicken"},
			ConfidenceScore:       1.0,
		},
		Profile:      veganProfile(),
		Ingredients:  []string{"chicken"},
		DisplayNames: map[string]string{"chicken": "burger with chicken"},
	})
	if !strings.Contains(out, "**Burger with chicken**") {
		t.Errorf("compound display name not used: %q", out)
	}
}

func TestVerdictSuppressesContradictoryCompound(t *testing.T) {
	// Butter chicken expands to butter (safe for vegetarians) and chicken
	// (triggered); the safe half must not resurface as "fine".
	out := Verdict(VerdictInput{
		Verdict: &models.ComplianceVerdict{
			Status:                models.StatusNotSafe,
			TriggeredRestrictions: []string{"vegetarian"},
			TriggeredIngredients:  []string{"chicken"},
			ConfidenceScore:       1.0,
		},
		Profile:     &models.UserProfile{DietaryPreference: "Vegetarian"},
		Ingredients: []string{"butter", "chicken"},
		DisplayNames: map[string]string{
			"butter":  "butter chicken",
			"chicken": "butter chicken",
		},
	})
	if strings.Contains(out, "fine for your diet") {
		t.Errorf("contradictory safe mention not suppressed: %q", out)
	}
}

func TestVerdictSafe(t *testing.T) {
	out := Verdict(VerdictInput{
		Verdict: &models.ComplianceVerdict{
			Status:          models.StatusSafe,
			ConfidenceScore: 1.0,
		},
		Profile:     &models.UserProfile{DietaryPreference: "Halal"},
		Ingredients: []string{"sugar", "water"},
	})
	if !strings.Contains(out, "All good") || !strings.Contains(out, "**Halal**") {
		t.Errorf("safe verdict phrasing: %q", out)
	}
}

func TestVerdictSafeSkipsProductWords(t *testing.T) {
	out := Verdict(VerdictInput{
		Verdict: &models.ComplianceVerdict{
			Status:          models.StatusSafe,
			ConfidenceScore: 1.0,
		},
		Profile:     veganProfile(),
		Ingredients: []string{"pasta", "basil"},
	})
	if !strings.Contains(out, "**Basil** is perfectly fine") {
		t.Errorf("container word should be skipped, leaving single ingredient: %q", out)
	}
}

func TestVerdictUncertain(t *testing.T) {
	out := Verdict(VerdictInput{
		Verdict: &models.ComplianceVerdict{
			Status:               models.StatusUncertain,
			UncertainIngredients: []string{"xyz compound"},
			ConfidenceScore:      0.4,
		},
		Profile:     veganProfile(),
		Ingredients: []string{"water", "xyz compound"},
	})
	if !strings.Contains(out, "**Xyz compound**") || !strings.Contains(out, "manual verification") {
		t.Errorf("uncertain phrasing: %q", out)
	}
	if !strings.Contains(out, "**Water**") {
		t.Errorf("safe remainder missing: %q", out)
	}
}

func TestVerdictTraceNote(t *testing.T) {
	out := Verdict(VerdictInput{
		Verdict: &models.ComplianceVerdict{
			Status:                   models.StatusSafe,
			InformationalIngredients: []string{"natural flavor"},
			ConfidenceScore:          0.9,
		},
		Profile:     veganProfile(),
		Ingredients: []string{"water", "natural flavor"},
	})
	if !strings.Contains(out, "trace amounts") {
		t.Errorf("trace note missing: %q", out)
	}
}

func TestVerdictLeadsWithProfileAck(t *testing.T) {
	out := Verdict(VerdictInput{
		Verdict: &models.ComplianceVerdict{
			Status:                models.StatusNotSafe,
			TriggeredRestrictions: []string{"jain"},
			TriggeredIngredients:  []string{"onion"},
			ConfidenceScore:       1.0,
		},
		Profile:        &models.UserProfile{DietaryPreference: "Jain"},
		Ingredients:    []string{"onion"},
		ProfileUpdated: true,
		Update:         models.ProfileUpdate{DietaryPreference: "Jain"},
	})
	if !strings.HasPrefix(out, "Got it — I've updated your profile to **Jain**.") {
		t.Errorf("profile ack should lead: %q", out)
	}
	if !strings.Contains(out, "**Onion**") {
		t.Errorf("verdict body missing: %q", out)
	}
}

func TestProfileUpdateAck(t *testing.T) {
	out := ProfileUpdateAck(models.ProfileUpdate{
		DietaryPreference: "Vegan",
		Allergens:         []string{"peanuts", "shellfish"},
	}, false)
	if !strings.Contains(out, "**Vegan**") {
		t.Errorf("diet missing: %q", out)
	}
	if !strings.Contains(out, "allergens: **peanuts, shellfish**") {
		t.Errorf("allergens missing or singular: %q", out)
	}
	if !strings.Contains(out, "What would you like me to check") {
		t.Errorf("follow-up prompt missing: %q", out)
	}

	withIngredients := ProfileUpdateAck(models.ProfileUpdate{DietaryPreference: "Jain"}, true)
	if strings.Contains(withIngredients, "What would you like me to check") {
		t.Errorf("follow-up prompt should be dropped when ingredients follow: %q", withIngredients)
	}
}

func TestIngredientReason(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"gelatin", "derived from animal bones/skin"},
		{"Carmine", "insect-derived"},
		{"onions", "root vegetable (restricted)"},
		{"frobnicant", "may conflict with your dietary requirements"},
	}
	for _, tt := range tests {
		if got := IngredientReason(tt.in); got != tt.want {
			t.Errorf("IngredientReason(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPlural(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"eggs", true},
		{"oats", true},
		{"hummus", false},
		{"asparagus", false},
		{"glass", false},
		{"noodles", true},
		{"milk", false},
	}
	for _, tt := range tests {
		if got := isPlural(tt.in); got != tt.want {
			t.Errorf("isPlural(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
