package restrictions

import (
	"strconv"
	"strings"

	"github.com/ingresure/ingresure-api/internal/models"
)

// fieldExtractors reads Ingredient fields by the names rules are authored
// with. Rules stay data-driven in JSON; adding a field here is the only
// code change a new rule vocabulary needs.
var fieldExtractors = map[string]func(*models.Ingredient) any{
	"id":                func(i *models.Ingredient) any { return i.ID },
	"canonical_name":    func(i *models.Ingredient) any { return i.CanonicalName },
	"aliases":           func(i *models.Ingredient) any { return i.Aliases },
	"derived_from":      func(i *models.Ingredient) any { return i.DerivedFrom },
	"contains":          func(i *models.Ingredient) any { return i.Contains },
	"may_contain":       func(i *models.Ingredient) any { return i.MayContain },
	"animal_origin":     func(i *models.Ingredient) any { return i.AnimalOrigin },
	"plant_origin":      func(i *models.Ingredient) any { return i.PlantOrigin },
	"synthetic":         func(i *models.Ingredient) any { return i.Synthetic },
	"fungal":            func(i *models.Ingredient) any { return i.Fungal },
	"insect_derived":    func(i *models.Ingredient) any { return i.InsectDerived },
	"animal_species":    func(i *models.Ingredient) any { return i.AnimalSpecies },
	"egg_source":        func(i *models.Ingredient) any { return i.EggSource },
	"dairy_source":      func(i *models.Ingredient) any { return i.DairySource },
	"gluten_source":     func(i *models.Ingredient) any { return i.GlutenSource },
	"soy_source":        func(i *models.Ingredient) any { return i.SoySource },
	"sesame_source":     func(i *models.Ingredient) any { return i.SesameSource },
	"nut_source":        func(i *models.Ingredient) any { return i.NutSource },
	"root_vegetable":    func(i *models.Ingredient) any { return i.RootVegetable },
	"onion_source":      func(i *models.Ingredient) any { return i.OnionSource },
	"garlic_source":     func(i *models.Ingredient) any { return i.GarlicSource },
	"fermented":         func(i *models.Ingredient) any { return i.Fermented },
	"uncertainty_flags": func(i *models.Ingredient) any { return i.UncertaintyFlags },
	"regions":           func(i *models.Ingredient) any { return i.Regions },
	"meat_fish_derived": func(i *models.Ingredient) any { return i.MeatFishDerived() },
	"alcohol_content": func(i *models.Ingredient) any {
		if i.AlcoholContent == nil {
			return nil
		}
		return *i.AlcoholContent
	},
}

// evaluateRule reports whether the rule's predicate holds for the
// ingredient, i.e. whether its action should fire.
func evaluateRule(ing *models.Ingredient, rule *models.Rule) bool {
	extract, ok := fieldExtractors[rule.Field]
	if !ok {
		return false
	}
	val := extract(ing)

	switch rule.Operator {
	case "equals":
		return looseEqual(val, rule.Value)
	case "not_equals":
		return !looseEqual(val, rule.Value)
	case "contains":
		return evalContains(val, rule.Value)
	case "greater_than":
		v, vok := toFloat(val)
		t, tok := toFloat(rule.Value)
		return vok && tok && v > t
	case "in_list":
		if val == nil {
			return false
		}
		targets, ok := rule.Value.([]any)
		if !ok {
			targets = []any{rule.Value}
		}
		for _, t := range targets {
			if looseEqual(val, t) {
				return true
			}
		}
		return false
	}
	return false
}

// looseEqual compares an extracted field value with a JSON-decoded rule
// value, bridging Go's numeric and string types.
func looseEqual(val, target any) bool {
	if val == nil || target == nil {
		return val == target
	}
	if vf, vok := toFloat(val); vok {
		if tf, tok := toFloat(target); tok {
			return vf == tf
		}
	}
	switch v := val.(type) {
	case bool:
		t, ok := target.(bool)
		return ok && v == t
	case string:
		t, ok := target.(string)
		return ok && strings.EqualFold(v, t)
	}
	return val == target
}

// evalContains handles both list-valued and string-valued fields.
func evalContains(val, target any) bool {
	if val == nil {
		return false
	}
	targetStr := toString(target)
	switch v := val.(type) {
	case []string:
		for _, item := range v {
			if strings.EqualFold(item, targetStr) {
				return true
			}
		}
		return false
	case string:
		return strings.Contains(strings.ToLower(v), strings.ToLower(targetStr))
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}
