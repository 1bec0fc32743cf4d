package normalize

import "strings"

// processedFoodToBase maps a normalized processed-food name to the base
// ingredients it is made of. Expansion is deterministic; nothing here is
// inferred at runtime.
var processedFoodToBase = map[string][]string{
	"potato chips":     {"potato", "vegetable oil", "salt"},
	"potato chip":      {"potato", "vegetable oil", "salt"},
	"french fries":     {"potato", "vegetable oil", "salt"},
	"french fry":       {"potato", "vegetable oil", "salt"},
	"tortilla chips":   {"corn", "vegetable oil", "salt"},
	"tortilla chip":    {"corn", "vegetable oil", "salt"},
	"corn chips":       {"corn", "vegetable oil", "salt"},
	"corn chip":        {"corn", "vegetable oil", "salt"},
	"pretzels":         {"wheat flour", "salt", "yeast"},
	"pretzel":          {"wheat flour", "salt", "yeast"},
	"crackers":         {"wheat flour", "vegetable oil", "salt"},
	"cracker":          {"wheat flour", "vegetable oil", "salt"},
	"bread":            {"wheat flour", "water", "salt", "yeast"},
	"white bread":      {"wheat flour", "water", "salt", "yeast"},
	"pasta":            {"wheat flour", "water", "egg"},
	"spaghetti":        {"wheat flour", "water", "egg"},
	"macaroni":         {"wheat flour", "water", "egg"},
	"noodles":          {"wheat flour", "water", "egg"},
	"noodle":           {"wheat flour", "water", "egg"},
	"rice noodles":     {"rice flour", "water"},
	"rice noodle":      {"rice flour", "water"},
	"couscous":         {"wheat flour", "water"},
	"hummus":           {"chickpea", "sesame", "olive oil", "lemon", "garlic"},
	"ketchup":          {"tomato", "sugar", "vinegar", "salt"},
	"mustard":          {"mustard seed", "vinegar", "salt"},
	"mayonnaise":       {"egg", "vegetable oil", "vinegar"},
	"salsa":            {"tomato", "onion", "pepper", "lime", "salt"},
	"soy sauce":        {"soybean", "wheat", "salt", "water"},
	"teriyaki sauce":   {"soy sauce", "sugar", "ginger", "garlic"},
	"bbq sauce":        {"tomato", "vinegar", "sugar", "molasses"},
	"hot sauce":        {"pepper", "vinegar", "salt"},
	"peanut butter":    {"peanut", "salt", "vegetable oil"},
	"almond butter":    {"almond", "salt", "vegetable oil"},
	"jam":              {"fruit", "sugar", "pectin"},
	"jelly":            {"fruit juice", "sugar", "pectin"},
	"marmalade":        {"citrus", "sugar", "pectin"},
	"chocolate":        {"cocoa", "sugar", "cocoa butter", "milk"},
	"dark chocolate":   {"cocoa", "sugar", "cocoa butter"},
	"milk chocolate":   {"cocoa", "sugar", "cocoa butter", "milk"},
	"ice cream":        {"milk", "cream", "sugar", "egg"},
	"yogurt":           {"milk", "bacterial culture"},
	"cheese":           {"milk", "salt", "rennet"},
	"butter":           {"milk", "salt"},
	"tofu":             {"soybean", "water"},
	"tempeh":           {"soybean", "water"},
	"seitan":           {"wheat gluten", "water"},
	"plant-based meat": {"soy", "wheat", "vegetable oil", "flavoring"},
	"veggie burger":    {"vegetable", "legume", "grain", "binding"},
	"vegan cheese":     {"coconut oil", "starch", "flavoring"},
	"oat milk":         {"oat", "water"},
	"almond milk":      {"almond", "water"},
	"soy milk":         {"soybean", "water"},
	"rice milk":        {"rice", "water"},
	"coconut milk":     {"coconut", "water"},
}

// lookupProcessedFood checks both the lightly and fully normalized forms of
// a string against the processed-food map.
func lookupProcessedFood(s string) ([]string, bool) {
	if base, ok := processedFoodToBase[normalizeBasic(s)]; ok {
		return base, true
	}
	if base, ok := processedFoodToBase[NormalizeKey(s)]; ok {
		return base, true
	}
	return nil, false
}

// splitTopLevelCommas splits on commas that are not inside parentheses.
func splitTopLevelCommas(text string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, text[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, text[start:])
	return out
}

// splitByParentheses splits a segment at top-level parentheses: text before
// "(" is emitted first, then each comma-separated part inside the parens is
// recursively flattened.
//
// "Enriched Flour (Wheat Flour, Niacin, Iron)" ->
// ["Enriched Flour", "Wheat Flour", "Niacin", "Iron"]
func splitByParentheses(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			if depth == 0 {
				if chunk := strings.TrimSpace(text[start:i]); chunk != "" {
					out = append(out, chunk)
				}
			}
			depth++
			if depth == 1 {
				start = i + 1
			}
		case ')':
			depth--
			if depth == 0 {
				inner := strings.TrimSpace(text[start:i])
				for _, part := range splitTopLevelCommas(inner) {
					if part = strings.TrimSpace(part); part != "" {
						out = append(out, splitByParentheses(part)...)
					}
				}
				start = i + 1
			}
		}
	}
	if depth == 0 && start < len(text) {
		if chunk := strings.TrimSpace(text[start:]); chunk != "" {
			out = append(out, chunk)
		}
	}
	return out
}

// FlattenIngredients flattens a raw ingredient string into a deduplicated,
// order-preserving list of normalized base-ingredient keys.
//
// The whole string is checked against the processed-food map first
// ("potato chips" -> [potato, vegetable oil, salt]); otherwise it is split
// at top-level commas, each segment's parentheses are flattened, and each
// atom is normalized and processed-food-expanded.
func FlattenIngredients(rawStr string) []string {
	rawStr = strings.TrimSpace(rawStr)
	if rawStr == "" {
		return nil
	}

	if base, ok := lookupProcessedFood(rawStr); ok {
		out := make([]string, len(base))
		copy(out, base)
		return out
	}

	var flat []string
	for _, seg := range splitTopLevelCommas(rawStr) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		for _, p := range splitByParentheses(seg) {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if base, ok := lookupProcessedFood(p); ok {
				flat = append(flat, base...)
				continue
			}
			if key := NormalizeKey(p); key != "" {
				flat = append(flat, key)
			}
		}
	}

	seen := make(map[string]struct{}, len(flat))
	result := make([]string, 0, len(flat))
	for _, item := range flat {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}
