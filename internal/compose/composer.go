package compose

import (
	"fmt"
	"strings"

	"github.com/ingresure/ingresure-api/internal/models"
)

var restrictionDisplay = map[string]string{
	"jain":                 "Jain",
	"vegan":                "vegan",
	"vegetarian":           "vegetarian",
	"halal":                "Halal",
	"kosher":               "Kosher",
	"hindu_vegetarian":     "Hindu vegetarian",
	"hindu_non_vegetarian": "Hindu non-vegetarian",
	"lacto_vegetarian":     "lacto-vegetarian",
	"ovo_vegetarian":       "ovo-vegetarian",
	"pescatarian":          "pescatarian",
	"dairy_free":           "dairy-free",
	"egg_free":             "egg-free",
	"gluten_free":          "gluten-free",
	"peanut_allergy":       "peanut allergy",
	"tree_nut_allergy":     "tree-nut allergy",
	"soy_allergy":          "soy allergy",
	"shellfish_allergy":    "shellfish allergy",
	"fish_allergy":         "fish allergy",
	"sesame_allergy":       "sesame allergy",
	"no_alcohol":           "no-alcohol",
	"no_onion":             "no-onion",
	"no_garlic":            "no-garlic",
}

// ingredientReasons maps canonical names to the short reason shown when
// the ingredient fails a restriction.
var ingredientReasons = map[string]string{
	"egg":          "animal-derived",
	"eggs":         "animal-derived",
	"cheese":       "dairy product",
	"milk":         "dairy product",
	"butter":       "dairy product",
	"cream":        "dairy product",
	"yogurt":       "dairy product",
	"ghee":         "dairy product (clarified butter)",
	"gelatin":      "derived from animal bones/skin",
	"honey":        "produced by insects",
	"beef":         "meat (cow)",
	"chicken":      "meat (poultry)",
	"pork":         "meat (pig)",
	"lamb":         "meat",
	"fish":         "seafood",
	"tuna":         "fish (seafood)",
	"salmon":       "fish (seafood)",
	"shrimp":       "shellfish",
	"prawn":        "shellfish",
	"onion":        "root vegetable (restricted)",
	"garlic":       "root vegetable (restricted)",
	"potato":       "root vegetable (restricted)",
	"carrot":       "root vegetable (restricted)",
	"beet":         "root vegetable (restricted)",
	"beetroot":     "root vegetable (restricted)",
	"radish":       "root vegetable (restricted)",
	"turnip":       "root vegetable (restricted)",
	"sweet potato": "root vegetable (restricted)",
	"yam":          "root vegetable (restricted)",
	"shallot":      "root vegetable, onion family (restricted)",
	"leek":         "root vegetable, onion family (restricted)",
	"ginger":       "root vegetable (restricted)",
	"mushroom":     "fungal (restricted in strict Jain diet)",
	"alcohol":      "contains alcohol",
	"wine":         "contains alcohol",
	"beer":         "contains alcohol",
	"vodka":        "contains alcohol",
	"collagen":     "derived from animal tissue",
	"lard":         "animal fat (pig)",
	"rennet":       "animal-derived",
	"isinglass":    "derived from fish bladders",
	"castoreum":    "animal secretion",
	"shellac":      "insect-derived",
	"carmine":      "insect-derived",
	"l-cysteine":   "can be derived from animal hair/feathers",
	"bacon":        "meat (pork-derived)",
	"ham":          "meat (pork-derived)",
	"turkey":       "meat (poultry)",
	"duck":         "meat (poultry)",
	"veal":         "meat (calf)",
	"mutton":       "meat (sheep)",
	"goat":         "meat",
	"venison":      "meat (deer)",
	"anchovy":      "fish (seafood)",
	"sardine":      "fish (seafood)",
	"squid":        "seafood",
	"octopus":      "seafood",
	"crab":         "shellfish",
	"lobster":      "shellfish",
	"whey":         "dairy-derived",
	"paneer":       "dairy product (cheese)",
	"curd":         "dairy product",
	"tofu":         "soy-derived",
	"truffle":      "fungal (restricted in strict Jain diet)",
	"peanut":       "nut (common allergen)",
	"almond":       "tree nut",
	"walnut":       "tree nut",
	"cashew":       "tree nut",
	"hazelnut":     "tree nut",
	"pecan":        "tree nut",
	"soy":          "soy-derived (allergen)",
}

// productWords are container words, not real ingredients; they are kept
// out of "the rest is fine" lists.
var productWords = map[string]struct{}{
	"burger": {}, "bar": {}, "protein bar": {}, "protin bar": {}, "energy bar": {},
	"cake": {}, "bread": {}, "sandwich": {}, "wrap": {}, "pizza": {}, "pie": {},
	"cookie": {}, "cookies": {}, "biscuit": {}, "biscuits": {}, "cracker": {}, "crackers": {},
	"chip": {}, "chips": {}, "crisp": {}, "crisps": {},
	"noodle": {}, "noodles": {}, "pasta": {}, "ramen": {},
	"soup": {}, "salad": {}, "stew": {}, "curry": {},
	"juice": {}, "drink": {}, "smoothie": {}, "shake": {}, "milkshake": {},
	"cereal": {}, "granola": {}, "muesli": {},
	"muffin": {}, "bagel": {}, "pancake": {}, "waffle": {}, "toast": {}, "roll": {}, "bun": {},
	"doughnut": {}, "donut": {}, "pastry": {}, "croissant": {},
	"ice cream": {}, "gelato": {}, "sorbet": {}, "pudding": {}, "custard": {},
	"candy": {}, "chocolate bar": {}, "snack": {}, "snacks": {},
	"sausage": {}, "hotdog": {}, "hot dog": {}, "kebab": {},
}

var alwaysPlural = map[string]struct{}{
	"eggs": {}, "oats": {}, "lentils": {}, "beans": {}, "peas": {},
	"fries": {}, "noodles": {}, "nuts": {}, "seeds": {},
}

var singularSWords = map[string]struct{}{
	"asparagus": {}, "hummus": {}, "couscous": {}, "molasses": {}, "floss": {},
	"bass": {}, "grass": {}, "glass": {}, "gas": {}, "bus": {}, "lens": {}, "is": {},
}

func isPlural(ingredient string) bool {
	w := strings.ToLower(strings.TrimSpace(ingredient))
	if _, ok := alwaysPlural[w]; ok {
		return true
	}
	if _, ok := singularSWords[w]; ok {
		return false
	}
	return strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 2
}

func displayName(ingredient string) string {
	s := strings.TrimSpace(ingredient)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func isProductWord(ingredient string) bool {
	_, ok := productWords[strings.ToLower(strings.TrimSpace(ingredient))]
	return ok
}

// normalizeForMatch lowers and strips a trailing s/es so "Eggs" matches a
// verdict entry for "egg".
func normalizeForMatch(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(s, "es") && len(s) > 3 {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "s") && len(s) > 2 {
		return s[:len(s)-1]
	}
	return s
}

// IngredientReason returns the short reason an ingredient is restricted.
func IngredientReason(ingredient string) string {
	key := strings.ToLower(strings.TrimSpace(ingredient))
	if reason, ok := ingredientReasons[key]; ok {
		return reason
	}
	if reason, ok := ingredientReasons[normalizeForMatch(key)]; ok {
		return reason
	}
	return "may conflict with your dietary requirements"
}

func restrictionLabel(id string) string {
	if label, ok := restrictionDisplay[id]; ok {
		return label
	}
	return strings.ReplaceAll(id, "_", " ")
}

func dietLabel(profile *models.UserProfile) string {
	if profile != nil && profile.DietaryPreference != "" && profile.DietaryPreference != "No rules" {
		return profile.DietaryPreference
	}
	return "your dietary preferences"
}

// Greeting is the canned greeting when no LLM is available.
func Greeting() string {
	return "Hello! I'm your grocery safety assistant. " +
		"Tell me your dietary preferences and ask about any ingredient — " +
		"I'll let you know if it's suitable for you."
}

// GeneralQuestion answers out-of-scope questions.
func GeneralQuestion() string {
	return "I'm best at checking whether specific ingredients are safe for your dietary profile. " +
		"Try asking something like: **\"Can I eat eggs?\"** or paste an ingredient list and I'll analyze it."
}

// NoIngredients prompts the user when a query carried no ingredients.
func NoIngredients() string {
	return "It looks like you didn't mention any specific ingredients. " +
		"Try something like **\"Can I eat eggs?\"** or paste an ingredient list from a product label."
}

// ProfileUpdateAck acknowledges a profile update. When the same turn also
// asked about ingredients, the trailing question is dropped.
func ProfileUpdateAck(update models.ProfileUpdate, hasIngredients bool) string {
	var parts []string
	if update.DietaryPreference != "" {
		parts = append(parts, fmt.Sprintf("Got it — I've updated your profile to **%s**.", update.DietaryPreference))
	}
	if len(update.Allergens) > 0 {
		parts = append(parts, fmt.Sprintf("Noted your allergen%s: **%s**.",
			pluralSuffix(len(update.Allergens)), strings.Join(update.Allergens, ", ")))
	}
	if len(update.RemoveAllergens) > 0 {
		parts = append(parts, fmt.Sprintf("Removed allergen%s: **%s**.",
			pluralSuffix(len(update.RemoveAllergens)), strings.Join(update.RemoveAllergens, ", ")))
	}
	if len(update.Lifestyle) > 0 {
		parts = append(parts, fmt.Sprintf("Lifestyle preference%s saved: **%s**.",
			pluralSuffix(len(update.Lifestyle)), strings.Join(update.Lifestyle, ", ")))
	}
	if !hasIngredients {
		parts = append(parts, "What would you like me to check for you?")
	}
	return strings.Join(parts, " ")
}

func pluralSuffix(n int) string {
	if n != 1 {
		return "s"
	}
	return ""
}

// VerdictInput is everything the template verdict composer needs.
type VerdictInput struct {
	Verdict     *models.ComplianceVerdict
	Profile     *models.UserProfile
	Ingredients []string
	// DisplayNames maps a lowered atomic ingredient to its compound
	// product name, e.g. "chicken" -> "burger with chicken".
	DisplayNames   map[string]string
	ProfileUpdated bool
	Update         models.ProfileUpdate
}

// Verdict renders a compliance verdict as a short conversational answer.
func Verdict(in VerdictInput) string {
	var parts []string
	diet := dietLabel(in.Profile)
	dn := in.DisplayNames

	dnLookup := func(ing string) string {
		key := strings.ToLower(strings.TrimSpace(ing))
		if compound, ok := dn[key]; ok {
			return compound
		}
		if compound, ok := dn[normalizeForMatch(ing)]; ok {
			return compound
		}
		return ""
	}
	show := func(ing string) string {
		if compound := dnLookup(ing); compound != "" {
			return displayName(compound)
		}
		return displayName(ing)
	}

	if in.ProfileUpdated && !in.Update.IsEmpty() {
		parts = append(parts, ProfileUpdateAck(in.Update, true), "")
	}

	triggered := in.Verdict.TriggeredIngredients
	uncertain := in.Verdict.UncertainIngredients
	triggeredNorm := normSet(triggered)
	uncertainNorm := normSet(uncertain)

	var safe []string
	for _, i := range in.Ingredients {
		norm := normalizeForMatch(i)
		if _, bad := triggeredNorm[norm]; bad {
			continue
		}
		if _, unk := uncertainNorm[norm]; unk {
			continue
		}
		safe = append(safe, i)
	}
	var meaningfulSafe []string
	for _, i := range safe {
		if !isProductWord(i) {
			meaningfulSafe = append(meaningfulSafe, i)
		}
	}

	// When a compound display is already shown as triggered, saying its
	// other half is fine would read as a contradiction.
	if len(dn) > 0 {
		triggeredDisplay := make(map[string]struct{})
		for _, i := range triggered {
			if compound := dnLookup(i); compound != "" {
				triggeredDisplay[compound] = struct{}{}
			}
		}
		var kept []string
		for _, s := range meaningfulSafe {
			if _, ok := triggeredDisplay[dnLookup(s)]; ok {
				continue
			}
			kept = append(kept, s)
		}
		meaningfulSafe = kept
	}

	switch in.Verdict.Status {
	case models.StatusNotSafe:
		switch {
		case len(triggered) == 1 && len(meaningfulSafe) == 0 && len(uncertain) == 0:
			ing := triggered[0]
			parts = append(parts, fmt.Sprintf("Based on your **%s** diet, **%s** %s **not suitable** — %s.",
				diet, show(ing), verb(ing), IngredientReason(ing)))
		case len(triggered) > 0:
			parts = append(parts, fmt.Sprintf("Based on your **%s** diet, the following %s **not suitable**:\n",
				diet, pluralVerb(len(triggered))))
			for _, ing := range triggered {
				parts = append(parts, fmt.Sprintf("- **%s** — %s", show(ing), IngredientReason(ing)))
			}
		default:
			labels := make([]string, 0, 3)
			for i, r := range in.Verdict.TriggeredRestrictions {
				if i == 3 {
					break
				}
				labels = append(labels, restrictionLabel(r))
			}
			parts = append(parts, fmt.Sprintf("This doesn't appear to be compatible with your **%s** diet (conflicts with: %s).",
				diet, strings.Join(labels, ", ")))
		}
		if len(meaningfulSafe) == 1 {
			s := meaningfulSafe[0]
			parts = append(parts, fmt.Sprintf("\n**%s** %s fine for your diet.", show(s), verb(s)))
		} else if len(meaningfulSafe) > 1 {
			parts = append(parts, fmt.Sprintf("\nThe rest — %s — are fine for your diet.", boldJoin(meaningfulSafe, show)))
		}
		if len(uncertain) > 0 {
			parts = append(parts, fmt.Sprintf("\nCouldn't verify %s — may need manual checking.", boldJoin(uncertain, show)))
		}
		if len(in.Verdict.InformationalIngredients) > 0 && in.Verdict.ConfidenceScore < 1.0 {
			parts = append(parts, fmt.Sprintf("\n_Note: %s — present in trace amounts, flagged at low confidence._",
				strings.Join(in.Verdict.InformationalIngredients, ", ")))
		}

	case models.StatusSafe:
		meaningful := make([]string, 0, len(in.Ingredients))
		for _, i := range in.Ingredients {
			if !isProductWord(i) {
				meaningful = append(meaningful, i)
			}
		}
		if len(meaningful) == 0 {
			meaningful = in.Ingredients
		}
		if len(meaningful) == 1 {
			ing := meaningful[0]
			parts = append(parts, fmt.Sprintf("**%s** %s perfectly fine for your **%s** diet.", show(ing), verb(ing), diet))
		} else {
			parts = append(parts, fmt.Sprintf("All good — %s are compatible with your **%s** diet.", boldJoin(meaningful, show), diet))
		}
		if len(in.Verdict.InformationalIngredients) > 0 && in.Verdict.ConfidenceScore < 1.0 {
			parts = append(parts, fmt.Sprintf("\n_Note: %s — present in trace amounts._",
				strings.Join(in.Verdict.InformationalIngredients, ", ")))
		}

	case models.StatusUncertain:
		if len(uncertain) > 0 {
			parts = append(parts, fmt.Sprintf("Couldn't find reliable information about %s — may require manual verification before consumption.",
				boldJoin(uncertain, show)))
			if len(meaningfulSafe) > 0 {
				parts = append(parts, fmt.Sprintf("\nThe rest — %s — are fine for your diet.", boldJoin(meaningfulSafe, show)))
			}
		} else {
			parts = append(parts, fmt.Sprintf("Wasn't able to determine the safety of %s with certainty. Please double-check the packaging or consult a specialist.",
				boldJoin(in.Ingredients, show)))
		}
	}

	return strings.Join(parts, "\n")
}

func verb(ingredient string) string {
	if isPlural(ingredient) {
		return "are"
	}
	return "is"
}

func pluralVerb(n int) string {
	if n > 1 {
		return "are"
	}
	return "is"
}

func boldJoin(items []string, show func(string) string) string {
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = "**" + show(s) + "**"
	}
	return strings.Join(parts, ", ")
}

func normSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, i := range items {
		out[normalizeForMatch(i)] = struct{}{}
	}
	return out
}
