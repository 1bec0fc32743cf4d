package foodapi

import (
	"regexp"
	"strings"
	"sync"
)

// plantOverridePatterns are plant-based items whose names contain
// misleading animal keywords ("peanut butter", "almond milk"). A match
// suppresses animal/dairy/egg inference from text.
var plantOverridePatterns = []string{
	"peanut butter", "almond butter", "cashew butter", "sunflower butter",
	"cocoa butter", "shea butter", "apple butter", "body butter",
	"almond milk", "oat milk", "soy milk", "rice milk", "coconut milk",
	"cashew milk", "hemp milk", "flax milk",
	"coconut cream", "coconut yogurt", "coconut cheese",
	"vegan cheese", "vegan butter", "vegan cream", "vegan egg",
	"tofu", "tempeh", "seitan", "jackfruit", "nutritional yeast",
	"plant-based", "plant based", "meatless", "dairy-free", "dairy free",
	"eggplant", "egg plant", "egusi",
	"butternut", "buttercup squash", "butterbean", "butter bean",
	"butterscotch",
	"cream of tartar", "creamed corn", "cream soda", "ice cream bean",
}

func isPlantOverride(text string) bool {
	t := strings.ToLower(text)
	for _, p := range plantOverridePatterns {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

var wordMatchCache sync.Map // word -> *regexp.Regexp

// wordMatch does a word-boundary match with plural tolerance: "onion"
// matches "onion" and "onions". Substring hits like "butter" inside
// "butterscotch" never match.
func wordMatch(text, word string) bool {
	v, ok := wordMatchCache.Load(word)
	if !ok {
		v, _ = wordMatchCache.LoadOrStore(word,
			regexp.MustCompile(`\b`+regexp.QuoteMeta(word)+`(?:e?s)?\b`))
	}
	return v.(*regexp.Regexp).MatchString(text)
}

func anyWordMatch(text string, words []string) bool {
	for _, w := range words {
		if wordMatch(text, w) {
			return true
		}
	}
	return false
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// slugID builds a stable ingredient id slug (alphanumeric + underscore).
func slugID(name string) string {
	s := nonAlnumRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "unknown"
	}
	if len(s) > 64 {
		s = s[:64]
	}
	return s
}

// inferredFlags is the common inference output shared by both connectors.
type inferredFlags struct {
	animalOrigin   bool
	plantOrigin    bool
	dairySource    bool
	eggSource      bool
	glutenSource   bool
	soySource      bool
	sesameSource   bool
	nutSource      string
	alcoholContent *float64
	onionSource    bool
	garlicSource   bool
	rootVegetable  bool
}

var (
	animalKeywords      = []string{"meat", "beef", "pork", "chicken", "fish", "gelatin", "lard", "tallow", "animal", "whey", "casein", "rennet"}
	dairyKeywords       = []string{"milk", "cheese", "whey", "cream", "butter", "dairy", "lactose", "casein", "ghee", "curd", "yogurt"}
	glutenKeywords      = []string{"wheat", "barley", "rye", "gluten"}
	treeNutKeywords     = []string{"almond", "walnut", "cashew", "pecan", "hazelnut", "macadamia", "pistachio"}
	alcoholKeywords     = []string{"alcohol", "wine", "beer", "spirit", "rum", "vodka", "whiskey"}
	rootVegKeywords     = []string{"potato", "carrot", "beet", "radish", "turnip", "yam"}
	shellfishKeywords   = []string{"shrimp", "crab", "lobster", "prawn", "clam", "mussel", "oyster", "scallop"}
	fishKeywords        = []string{"fish", "salmon", "tuna", "cod"}
	fullAlcoholFraction = 1.0
)

// inferTextFlags infers the keyword-driven subset of flags that both
// connectors share. Origin and dairy/egg flags differ per connector and
// are filled by the callers.
func inferTextFlags(t string, override bool) inferredFlags {
	f := inferredFlags{
		glutenSource:  anyWordMatch(t, glutenKeywords),
		soySource:     wordMatch(t, "soy") || wordMatch(t, "soybean") || wordMatch(t, "tofu") || wordMatch(t, "tempeh"),
		sesameSource:  wordMatch(t, "sesame"),
		onionSource:   wordMatch(t, "onion") && !override,
		garlicSource:  wordMatch(t, "garlic") && !override,
		rootVegetable: anyWordMatch(t, rootVegKeywords),
	}
	switch {
	case wordMatch(t, "peanut"):
		f.nutSource = "peanut"
	case anyWordMatch(t, treeNutKeywords):
		f.nutSource = "tree_nut"
	}
	if anyWordMatch(t, alcoholKeywords) {
		v := fullAlcoholFraction
		f.alcoholContent = &v
	}
	return f
}
