// Package compound expands multi-word product names into the constituent
// ingredients the compliance engine evaluates, keeping a display map so
// responses can refer to the original product name.
package compound

import (
	"regexp"
	"strings"
)

// Known restricted-ingredient keywords. When found inside a multi-word
// product name, these are extracted for compliance evaluation.
var restrictedBigrams = map[string]struct{}{
	"sweet potato": {},
	"fish oil":     {},
	"palm oil":     {},
}

var restrictedSingles = map[string]struct{}{
	// Animal-derived
	"egg": {}, "eggs": {}, "chicken": {}, "beef": {}, "pork": {}, "lamb": {}, "fish": {},
	"tuna": {}, "salmon": {}, "shrimp": {}, "prawn": {}, "crab": {}, "lobster": {},
	"bacon": {}, "ham": {}, "turkey": {}, "duck": {}, "veal": {}, "mutton": {},
	"anchovy": {}, "sardine": {}, "squid": {}, "octopus": {}, "venison": {}, "goat": {},
	// Dairy
	"milk": {}, "cheese": {}, "butter": {}, "cream": {}, "yogurt": {}, "ghee": {},
	"paneer": {}, "whey": {}, "curd": {},
	// Root vegetables
	"garlic": {}, "onion": {}, "potato": {}, "carrot": {}, "ginger": {},
	"beet": {}, "beetroot": {}, "radish": {}, "turnip": {}, "shallot": {}, "leek": {}, "yam": {},
	// Fungal
	"mushroom": {}, "truffle": {},
	// Other
	"gelatin": {}, "honey": {}, "lard": {}, "alcohol": {}, "wine": {}, "beer": {},
	"peanut": {}, "almond": {}, "walnut": {}, "cashew": {}, "hazelnut": {}, "pecan": {},
	"soy": {}, "tofu": {}, "wheat": {}, "barley": {}, "rye": {}, "oat": {}, "oats": {},
	"collagen": {}, "rennet": {}, "shellac": {}, "carmine": {},
}

// plantModifiers neutralize the restricted word that follows them, so
// "coconut milk" yields no dairy hit.
var plantModifiers = map[string]struct{}{
	"coconut": {}, "almond": {}, "soy": {}, "oat": {}, "oats": {}, "rice": {}, "cashew": {},
	"hemp": {}, "pea": {}, "cocoa": {}, "shea": {}, "sesame": {}, "flax": {}, "hazelnut": {},
	"peanut": {}, "walnut": {}, "pistachio": {}, "macadamia": {}, "pecan": {},
}

// productContainers are product words whose "X with Y" phrasing describes a
// dish containing Y, not two separate ingredients.
var productContainers = map[string]struct{}{
	"burger": {}, "bar": {}, "sandwich": {}, "pizza": {}, "noodles": {}, "noodle": {},
	"salad": {}, "soup": {}, "curry": {}, "wrap": {}, "roll": {}, "bowl": {},
	"pasta": {}, "rice": {}, "toast": {}, "cake": {}, "bread": {}, "taco": {},
	"burrito": {}, "smoothie": {}, "shake": {}, "dish": {}, "meal": {},
}

var withRe = regexp.MustCompile(`(?i)^(.+?)\s+with\s+(.+)$`)

// IsProductContainer reports whether the last word of a phrase names a
// known product container.
func IsProductContainer(phrase string) bool {
	words := strings.Fields(strings.ToLower(phrase))
	if len(words) == 0 {
		return false
	}
	_, ok := productContainers[words[len(words)-1]]
	return ok
}

// FindSubIngredients extracts known restricted-ingredient keywords from a
// compound name. Bigrams win over singles; a plant modifier immediately
// before a restricted word neutralizes it.
//
//	"garlic pasta"   -> ["garlic"]
//	"egg noodles"    -> ["egg"]
//	"coconut milk"   -> []
//	"butter chicken" -> ["butter", "chicken"]
func FindSubIngredients(name string) []string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) <= 1 {
		return nil
	}
	var found []string
	for i := 0; i < len(words); {
		if i+1 < len(words) {
			bigram := words[i] + " " + words[i+1]
			if _, ok := restrictedBigrams[bigram]; ok {
				found = append(found, bigram)
				i += 2
				continue
			}
		}
		if _, ok := restrictedSingles[words[i]]; ok {
			if i > 0 {
				if _, plant := plantModifiers[words[i-1]]; plant {
					i++
					continue
				}
			}
			found = append(found, words[i])
		}
		i++
	}
	return found
}

// Expand expands compound items for compliance evaluation. It returns the
// ingredient names the engine should evaluate and a display map
// {eval_name_lower: original_product_name} for items whose product context
// should survive into the response.
func Expand(ingredients []string) ([]string, map[string]string) {
	var expanded []string
	displayMap := make(map[string]string)
	seen := make(map[string]struct{})

	add := func(name, display string) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		expanded = append(expanded, strings.TrimSpace(name))
		if display != "" {
			displayMap[key] = display
		}
	}

	for _, ing := range ingredients {
		// "X with Y": a container keeps the whole phrase as display and
		// contributes Y; otherwise "with" is a conjunction.
		if m := withRe.FindStringSubmatch(ing); m != nil {
			left, right := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			if IsProductContainer(left) {
				add(right, ing)
			} else {
				add(left, "")
				add(right, "")
			}
			continue
		}

		if !strings.Contains(strings.TrimSpace(ing), " ") {
			add(ing, "")
			continue
		}

		subs := FindSubIngredients(ing)
		if len(subs) == 0 {
			add(ing, "")
			continue
		}

		// The product name carries extra modifier words when not every
		// word is covered by the extracted atoms; keep it for display.
		covered := make(map[string]struct{})
		for _, s := range subs {
			for _, w := range strings.Fields(s) {
				covered[w] = struct{}{}
			}
		}
		isCompoundProduct := false
		for _, w := range strings.Fields(strings.ToLower(ing)) {
			if _, ok := covered[w]; !ok {
				isCompoundProduct = true
				break
			}
		}

		for _, sub := range subs {
			display := ""
			if isCompoundProduct {
				display = ing
			}
			add(sub, display)
		}
	}

	return expanded, displayMap
}
