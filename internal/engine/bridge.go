package engine

import (
	"fmt"
	"strings"

	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/normalize"
)

// ScanDietLabels are the diet columns of the scan scorecard, in display
// order.
var ScanDietLabels = []string{"Vegan", "Jain", "Halal", "Hindu Veg"}

var dietLabelToRestrictionID = map[string]string{
	"Vegan":     "vegan",
	"Jain":      "jain",
	"Halal":     "halal",
	"Hindu Veg": "hindu_vegetarian",
}

// claimedDietToRestrictionID maps claimed diet labels used by menu
// verification onto restriction ids.
var claimedDietToRestrictionID = map[string]string{
	"Vegan":       "vegan",
	"Vegetarian":  "vegetarian",
	"Jain":        "jain",
	"Halal":       "halal",
	"Kosher":      "kosher",
	"Hindu Veg":   "hindu_vegetarian",
	"Gluten-Free": "gluten_free",
	"Dairy-Free":  "dairy_free",
	"Egg-Free":    "egg_free",
}

// dietaryPreferenceToRestrictionID maps lowered profile preference names,
// including underscore variants from older profile payloads.
var dietaryPreferenceToRestrictionID = map[string]string{
	"jain":                 "jain",
	"vegan":                "vegan",
	"vegetarian":           "vegetarian",
	"hindu_veg":            "hindu_vegetarian",
	"hindu_vegetarian":     "hindu_vegetarian",
	"hindu_non_veg":        "hindu_non_vegetarian",
	"hindu_non_vegetarian": "hindu_non_vegetarian",
	"halal":                "halal",
	"kosher":               "kosher",
	"lacto_vegetarian":     "lacto_vegetarian",
	"ovo_vegetarian":       "ovo_vegetarian",
	"pescatarian":          "pescatarian",
	"gluten_free":          "gluten_free",
	"dairy_free":           "dairy_free",
	"egg_free":             "egg_free",
}

var allergenToRestrictionID = map[string]string{
	"peanut":    "peanut_allergy",
	"peanuts":   "peanut_allergy",
	"nut":       "tree_nut_allergy",
	"nuts":      "tree_nut_allergy",
	"tree_nut":  "tree_nut_allergy",
	"soy":       "soy_allergy",
	"shellfish": "shellfish_allergy",
	"fish":      "fish_allergy",
	"sesame":    "sesame_allergy",
	"onion":     "onion_allergy",
	"garlic":    "garlic_allergy",
	"gluten":    "gluten_free",
	"wheat":     "gluten_free",
	"milk":      "dairy_free",
	"dairy":     "dairy_free",
	"egg":       "egg_free",
	"eggs":      "egg_free",
	"mustard":   "mustard_allergy",
	"celery":    "celery_allergy",
}

var lifestyleToRestrictionID = map[string]string{
	"no_onion":             "no_onion",
	"no_garlic":            "no_garlic",
	"no_alcohol":           "no_alcohol",
	"no_insect_derived":    "no_insect_derived",
	"no_palm_oil":          "no_palm_oil",
	"no_artificial_colors": "no_artificial_colors",
	"no_gmos":              "no_gmos",
	"no_seed_oils":         "no_seed_oils",
	"keto":                 "keto",
	"paleo":                "paleo",
}

func bridgeKey(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "-", "_")
}

// BuildRestrictionIDs maps a user profile onto restriction ids, in
// preference / allergen / lifestyle order, deduplicated.
func BuildRestrictionIDs(profile *models.UserProfile) []string {
	if profile == nil {
		return nil
	}
	var ids []string
	seen := make(map[string]struct{})
	add := func(rid string) {
		if rid == "" {
			return
		}
		if _, ok := seen[rid]; ok {
			return
		}
		seen[rid] = struct{}{}
		ids = append(ids, rid)
	}

	pref := bridgeKey(profile.DietaryPreference)
	if pref != "" && pref != "no_rules" {
		rid := dietaryPreferenceToRestrictionID[pref]
		if rid == "" {
			rid = lifestyleToRestrictionID[pref]
		}
		add(rid)
	}
	for _, a := range profile.Allergens {
		key := bridgeKey(a)
		rid := allergenToRestrictionID[key]
		if rid == "" {
			rid = lifestyleToRestrictionID[key]
		}
		add(rid)
	}
	for _, v := range profile.Lifestyle {
		key := bridgeKey(v)
		rid := lifestyleToRestrictionID[key]
		if rid == "" {
			rid = dietaryPreferenceToRestrictionID[key]
		}
		add(rid)
	}
	return ids
}

// ScanRestrictionIDs returns the restriction ids behind the scan
// scorecard labels.
func ScanRestrictionIDs() []string {
	ids := make([]string, 0, len(ScanDietLabels))
	for _, label := range ScanDietLabels {
		ids = append(ids, dietLabelToRestrictionID[label])
	}
	return ids
}

// ClaimedDietRestrictionIDs maps claimed diet labels to restriction ids,
// defaulting to the first four known claims when none map.
func ClaimedDietRestrictionIDs(claimed []string) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, label := range claimed {
		rid := claimedDietToRestrictionID[strings.TrimSpace(label)]
		if rid == "" {
			continue
		}
		if _, ok := seen[rid]; ok {
			continue
		}
		seen[rid] = struct{}{}
		ids = append(ids, rid)
	}
	if len(ids) == 0 {
		ids = []string{"vegan", "vegetarian", "jain", "halal"}
	}
	return ids
}

// ScorecardEntry is one diet column of the scan scorecard.
type ScorecardEntry struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// VerdictToScorecard builds the per-diet red/green scorecard from a
// verdict.
func VerdictToScorecard(verdict *models.ComplianceVerdict) map[string]ScorecardEntry {
	return scorecardFor(ScanDietLabels, dietLabelToRestrictionID, verdict)
}

// ClaimedDietScorecard builds a scorecard restricted to the claimed diet
// labels of a menu item.
func ClaimedDietScorecard(claimed []string, verdict *models.ComplianceVerdict) map[string]ScorecardEntry {
	return scorecardFor(claimed, claimedDietToRestrictionID, verdict)
}

func scorecardFor(labels []string, idsByLabel map[string]string, verdict *models.ComplianceVerdict) map[string]ScorecardEntry {
	triggered := make(map[string]struct{}, len(verdict.TriggeredRestrictions))
	for _, rid := range verdict.TriggeredRestrictions {
		triggered[rid] = struct{}{}
	}
	out := make(map[string]ScorecardEntry, len(labels))
	for _, label := range labels {
		rid := idsByLabel[strings.TrimSpace(label)]
		if rid == "" {
			continue
		}
		if _, ok := triggered[rid]; ok {
			out[label] = ScorecardEntry{
				Status: "red",
				Reason: fmt.Sprintf("Contains ingredients not suitable for %s.", label),
			}
		} else {
			out[label] = ScorecardEntry{
				Status: "green",
				Reason: "No forbidden ingredients detected.",
			}
		}
	}
	return out
}

// DietTagsFromScanVerdict derives coarse diet tags for tagging flows.
func DietTagsFromScanVerdict(verdict *models.ComplianceVerdict) []string {
	triggered := make(map[string]struct{}, len(verdict.TriggeredRestrictions))
	for _, rid := range verdict.TriggeredRestrictions {
		triggered[rid] = struct{}{}
	}
	if _, ok := triggered["vegan"]; !ok {
		return []string{"Vegan"}
	}
	if _, ok := triggered["hindu_vegetarian"]; !ok {
		return []string{"Vegetarian"}
	}
	return nil
}

// PreprocessIngredientList turns raw label strings into atomic normalized
// names plus the set of trace keys, ready for Evaluate.
func PreprocessIngredientList(ingredients []string) ([]string, map[string]struct{}) {
	var flattened []string
	traceKeys := make(map[string]struct{})
	for _, s := range ingredients {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		atoms := normalize.PreprocessIngredients(s)
		if len(atoms) == 0 {
			flattened = append(flattened, normalize.FlattenIngredients(s)...)
			continue
		}
		for _, atom := range atoms {
			for _, a := range normalize.FlattenIngredients(atom.Name) {
				flattened = append(flattened, a)
				if atom.Trace {
					traceKeys[a] = struct{}{}
				}
			}
		}
	}
	return flattened, traceKeys
}
