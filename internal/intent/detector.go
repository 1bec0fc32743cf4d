// Package intent turns free-form chat text into a structured intent:
// profile updates, candidate ingredients, or both. Detection is fully
// deterministic pattern matching; the LLM fallback only runs when rules
// produce nothing actionable.
package intent

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ingresure/ingresure-api/internal/models"
)

// DietKeywords maps lowercase diet keywords to canonical display names.
var DietKeywords = map[string]string{
	"hindu non vegetarian": "Hindu Non Vegetarian",
	"hindu non veg":        "Hindu Non Vegetarian",
	"hindu nonveg":         "Hindu Non Vegetarian",
	"hindu vegetarian":     "Hindu Veg",
	"lacto vegetarian":     "Lacto Vegetarian",
	"lacto-vegetarian":     "Lacto Vegetarian",
	"ovo vegetarian":       "Ovo Vegetarian",
	"ovo-vegetarian":       "Ovo Vegetarian",
	"hindu veg":            "Hindu Veg",
	"pescatarian":          "Pescatarian",
	"gluten free":          "Gluten-Free",
	"gluten-free":          "Gluten-Free",
	"dairy free":           "Dairy-Free",
	"dairy-free":           "Dairy-Free",
	"vegetarian":           "Vegetarian",
	"egg free":             "Egg-Free",
	"egg-free":             "Egg-Free",
	"vegan":                "Vegan",
	"halal":                "Halal",
	"kosher":               "Kosher",
	"jain":                 "Jain",
	"hindu":                "Hindu Veg",
}

// dietRegex is the alternation of diet keywords, longest first so
// "hindu veg" wins over "hindu".
var dietRegex = func() string {
	keys := make([]string, 0, len(DietKeywords))
	for k := range DietKeywords {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return strings.Join(quoted, "|")
}()

// Plural-tolerant diet alternation: "vegans", "jain's".
var dietRegexPlural = "(?:" + dietRegex + ")(?:s|'s)?"

var profilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:i\s+am|i'm|im)\s+(?:a\s+)?(` + dietRegex + `)\b`),
	regexp.MustCompile(`(?i)\b(?:i\s+follow|i\s+eat|my\s+diet\s+is)\s+(?:a\s+|the\s+)?(` + dietRegex + `)\s*(?:diet|lifestyle)?\b`),
	regexp.MustCompile(`(?i)\bi(?:'m| am)\s+on\s+(?:a\s+)?(` + dietRegex + `)\s*(?:diet)?\b`),
	regexp.MustCompile(`(?i)\b(?:my\s+religion\s+is|i\s+practice)\s+(` + dietRegex + `)\b`),
	regexp.MustCompile(`(?i)\b(?:i\s+eat)\s+(` + dietRegex + `)\b`),
	regexp.MustCompile(`(?i)\bswitch(?:ing)?\s+(?:to|my\s+diet\s+to)\s+(` + dietRegex + `)\b`),
	// Bare diet keyword as the whole input: "Jain", "hindu veg".
	regexp.MustCompile(`(?i)^\s*(` + dietRegex + `)\s*(?:diet|lifestyle)?\s*$`),
}

var allergenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:i'm|i\s+am)\s+allergic\s+to\s+(.+?)(?:\.|,\s*(?:can|is|and)|$)`),
	regexp.MustCompile(`(?i)\b(?:i\s+have)\s+(?:a\s+)?(.+?)\s+allergy\b`),
	regexp.MustCompile(`(?i)\b(?:my\s+allerg(?:ies|y|ens?)\s+(?:are|is))\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)\b(?:add|set)\s+(?:my\s+)?allerg(?:ens?|ies?)\s+(?:to\s+)?(.+?)(?:\.|$)`),
}

var allergenRemovePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:remove|delete|drop|clear)\s+(.+?)\s+(?:from\s+)?(?:my\s+)?allerg(?:ens?|ies?)[?.!]?\s*$`),
	regexp.MustCompile(`(?i)\b(?:i'm|i\s+am)\s+(?:not|no\s+longer)\s+allergic\s+to\s+(.+?)[?.!]?\s*$`),
}

var lifestylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:i\s+don't|i\s+do\s+not|i\s+can't|no)\s+(?:eat|drink|consume|have)\s+(alcohol|onion|garlic|onions|garlics?)\b`),
	regexp.MustCompile(`(?i)\b(?:i\s+avoid|no)\s+(alcohol|onion|garlic|palm\s+oil|onions|garlics?|seed\s+oils?|gmos?|artificial\s+colors?)\b`),
	regexp.MustCompile(`(?i)\b(?:set|add|update)\s+(?:my\s+)?lifestyle\s+(?:to\s+)?(.+?)[?.!]?\s*$`),
}

var lifestyleMap = map[string]string{
	"alcohol":           "no alcohol",
	"onion":             "no onion",
	"onions":            "no onion",
	"garlic":            "no garlic",
	"garlics":           "no garlic",
	"palm oil":          "no palm oil",
	"seed oil":          "no seed oils",
	"seed oils":         "no seed oils",
	"gmo":               "no gmos",
	"gmos":              "no gmos",
	"artificial color":  "no artificial colors",
	"artificial colors": "no artificial colors",
}

// Third-person queries bind a diet and an ingredient in one sentence.
type thirdPersonPattern struct {
	re        *regexp.Regexp
	dietFirst bool
}

var thirdPersonPatterns = []thirdPersonPattern{
	// "can jain eat onion?" / "can vegans eat honey?"
	{regexp.MustCompile(`(?i)\bcan\s+(?:a\s+)?(` + dietRegexPlural + `)(?:\s+(?:people|person|persons))?\s+(?:eat|have|consume|use)\s+(.+?)[?.!]?\s*$`), true},
	// "does jain allow onion?" / "does vegan allow honey?"
	{regexp.MustCompile(`(?i)\b(?:does|do)\s+(?:a\s+|the\s+)?(` + dietRegexPlural + `)(?:\s+(?:diet|people|person))?\s+(?:allow|permit|include|restrict|forbid|ban)\s+(.+?)[?.!]?\s*$`), true},
	// "are vegans allowed honey?" / "is a jain permitted to eat onion?"
	{regexp.MustCompile(`(?i)\b(?:is|are)\s+(?:a\s+)?(` + dietRegexPlural + `)(?:\s+(?:people|person|persons))?\s+(?:allowed|permitted)\s+(?:to\s+(?:eat|have|consume)\s+)?(.+?)[?.!]?\s*$`), true},
	// "is pork halal?" / "are eggs vegan?"
	{regexp.MustCompile(`(?i)\b(?:is|are)\s+(.+?)\s+(` + dietRegexPlural + `)(?:\s+(?:safe|friendly|compatible|compliant|approved))?[?.!]?\s*$`), false},
}

var ingredientQueryPatterns = []*regexp.Regexp{
	// "can I eat eggs?" / "can I have cheese and milk?"
	regexp.MustCompile(`(?i)\bcan\s+i\s+(?:eat|have|consume|take|use)\s+(.+?)[?.!]?\s*$`),
	// "is cheese ok?" / "are eggs safe?"
	regexp.MustCompile(`(?i)\b(?:is|are)\s+(.+?)\s+(?:safe|ok|okay|allowed|permitted|suitable|fine|good|acceptable|compatible)(?:\s+(?:for\s+me|for\s+my\s+diet|to\s+eat))?[?.!]?\s*$`),
	// "eggs safe?"
	regexp.MustCompile(`(?i)^(.+?)\s+(?:safe|ok|okay|allowed|permitted|suitable|fine|good)[?.!]?\s*$`),
	// "what about eggs?"
	regexp.MustCompile(`(?i)\b(?:what|how)\s+about\s+(.+?)[?.!]?\s*$`),
	// "check eggs" / "analyze cheese"
	regexp.MustCompile(`(?i)^\s*(?:check|analyze|evaluate|test|verify)\s+(.+?)[?.!]?\s*$`),
	// "Ingredients: X, Y, Z"
	regexp.MustCompile(`(?i)\b(?:ingredients?)\s*[:;]\s*(.+?)(?:\.\s+(?:is|are|does|do|can)\b.*)?$`),
}

var greetingRe = regexp.MustCompile(`(?i)^\s*(?:hi|hello|hey|howdy|good\s+(?:morning|afternoon|evening)|greetings|what'?s?\s+up|yo)` +
	`(?:\s*[,!.]?\s*(?:how\s+(?:are\s+you|is\s+it\s+going|do\s+you\s+do|are\s+things)` +
	`|how'?s?\s+(?:it\s+going|everything|life)|nice\s+to\s+meet\s+you` +
	`|there|everyone|all))?` +
	`\s*[?.!]?\s*$`)

var conversationalRe = regexp.MustCompile(`(?i)^\s*(?:how\s+are\s+you|how'?s?\s+it\s+going|how\s+do\s+you\s+do` +
	`|thank\s*(?:s| you)|thanks?\s+a\s+lot|much\s+appreciated` +
	`|ok(?:ay)?|cool|nice|great|awesome|got\s+it|understood` +
	`|bye|goodbye|see\s+you|take\s+care|good\s+night` +
	`|yes|no|nope|yep|yeah|sure|nah` +
	`|what\s+can\s+you\s+do|who\s+are\s+you|what\s+are\s+you)` +
	`\s*[?.!]?\s*$`)

var generalQuestionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwhat\s+is\s+`),
	regexp.MustCompile(`(?i)\btell\s+me\s+about\s+`),
	regexp.MustCompile(`(?i)\bwhere\s+does\s+.+?\s+come\s+from\b`),
	regexp.MustCompile(`(?i)\bhow\s+(?:is|are)\s+.+?\s+made\b`),
	regexp.MustCompile(`(?i)\bexplain\b`),
	regexp.MustCompile(`(?i)\b(?:suggest|recommend|brainstorm|alternative|substitute|replace|instead|option|recipe)\b`),
}

// trailingDietRe splits "Sugar, Water. Is this Halal?" into the ingredient
// text and the trailing diet question.
var trailingDietRe = regexp.MustCompile(`(?i)[.]\s*(?:is|are)\s+(?:this|these|it|they)\s+(` + dietRegex + `)` +
	`(?:\s+(?:safe|friendly|compatible|compliant|ok|okay))?\s*\??\s*$`)

// productContainerWords keep "X with Y" intact during ingredient splitting
// when X is a product rather than an ingredient.
var productContainerWords = map[string]struct{}{
	"burger": {}, "burgers": {}, "bar": {}, "bars": {}, "protein bar": {}, "protin bar": {}, "energy bar": {},
	"cake": {}, "cakes": {}, "sandwich": {}, "sandwiches": {}, "wrap": {}, "wraps": {},
	"pizza": {}, "pizzas": {}, "pie": {}, "pies": {},
	"cookie": {}, "cookies": {}, "biscuit": {}, "biscuits": {}, "cracker": {}, "crackers": {},
	"chip": {}, "chips": {}, "crisp": {}, "crisps": {},
	"noodle": {}, "noodles": {}, "pasta": {}, "ramen": {},
	"soup": {}, "soups": {}, "salad": {}, "salads": {}, "stew": {}, "curry": {},
	"juice": {}, "drink": {}, "smoothie": {}, "shake": {}, "milkshake": {},
	"cereal": {}, "granola": {}, "muesli": {},
	"muffin": {}, "muffins": {}, "bagel": {}, "pancake": {}, "waffle": {}, "toast": {}, "roll": {}, "bun": {},
	"doughnut": {}, "donut": {}, "pastry": {}, "croissant": {},
	"ice cream": {}, "gelato": {}, "sorbet": {}, "pudding": {}, "custard": {},
	"candy": {}, "chocolate bar": {}, "snack": {}, "snacks": {},
	"sausage": {}, "hotdog": {}, "hot dog": {}, "kebab": {}, "taco": {}, "tacos": {},
	"bread": {}, "roti": {}, "naan": {}, "paratha": {}, "chapati": {},
}

var (
	withSplitRe       = regexp.MustCompile(`(?i)^(.+?)\s+with\s+(.+)$`)
	punctTrimRe       = regexp.MustCompile(`[?!]+`)
	trailingSentence  = regexp.MustCompile(`(?i)\.\s+(?:is|are|does|do|can|should|what|how|why|will|could|would)\b.*$`)
	andSplitRe        = regexp.MustCompile(`(?i)\s+(?:and|&)\s+`)
	orSplitRe         = regexp.MustCompile(`(?i)\s+or\s+`)
	leadingPunctRe    = regexp.MustCompile(`^\s*[,;.]+\s*`)
	spacesRe          = regexp.MustCompile(`\s+`)
	greetingPrefixRe  = regexp.MustCompile(`(?i)^(?:hi|hello|hey|please|kindly)\b\s*,?\s*`)
	politeRequestRe   = regexp.MustCompile(`(?i)\b(?:please|kindly|could\s+you|would\s+you|can\s+you)\s+(?:check|tell\s+me|let\s+me\s+know)\s*`)
	forMeRe           = regexp.MustCompile(`(?i)\bfor\s+(?:me|my\s+\w+)\b`)
	trailingQmarksRe  = regexp.MustCompile(`\s*\?+\s*$`)
	helpVerbsRe       = regexp.MustCompile(`(?i)\b(?:think|know|explain|describe|tell|help|find|suggest|recommend|brainstorm|alternative|substitute|replace|instead|option|recipe)\b`)
	leftoverChatterRe = regexp.MustCompile(`(?i)^(?:how\s+are\s+you|how'?s?\s+it\s+going|how\s+do\s+you\s+do|thank|thanks|bye|goodbye|ok|okay` +
		`|cool|nice|great|awesome|yes|no|yep|yeah|sure|nah)\b`)
)

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "some": {}, "any": {}, "this": {}, "that": {},
	"it": {}, "for": {}, "me": {}, "my": {}, "in": {}, "on": {}, "to": {},
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// cutMatch removes the matched span from s and tidies whitespace.
func cutMatch(s string, loc []int) string {
	out := strings.TrimSpace(s[:loc[0]] + " " + s[loc[1]:])
	out = leadingPunctRe.ReplaceAllString(out, "")
	return collapseSpaces(out)
}

// extractDiet returns the canonical diet name found by a profile-sentence
// pattern and the query with that match removed.
func extractDiet(query string) (string, string) {
	for _, pat := range profilePatterns {
		loc := pat.FindStringSubmatchIndex(query)
		if loc == nil {
			continue
		}
		matched := strings.ToLower(strings.TrimSpace(query[loc[2]:loc[3]]))
		if canonical, ok := DietKeywords[matched]; ok {
			return canonical, cutMatch(query, loc[:2])
		}
	}
	return "", query
}

var listItemSplitRe = regexp.MustCompile(`(?i)\s*(?:,|and)\s*`)

func splitListItems(raw string) []string {
	var out []string
	for _, a := range listItemSplitRe.Split(raw, -1) {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

func extractByPatterns(query string, patterns []*regexp.Regexp) ([]string, string) {
	var found []string
	remaining := query
	for _, pat := range patterns {
		loc := pat.FindStringSubmatchIndex(remaining)
		if loc == nil {
			continue
		}
		raw := strings.TrimSpace(remaining[loc[2]:loc[3]])
		found = append(found, splitListItems(raw)...)
		remaining = cutMatch(remaining, loc[:2])
	}
	return found, remaining
}

func extractLifestyle(query string) ([]string, string) {
	var flags []string
	remaining := query
	for _, pat := range lifestylePatterns {
		loc := pat.FindStringSubmatchIndex(remaining)
		if loc == nil {
			continue
		}
		keyword := strings.ToLower(strings.TrimSpace(remaining[loc[2]:loc[3]]))
		keyword = collapseSpaces(keyword)
		flag, ok := lifestyleMap[keyword]
		if !ok {
			flag = "no " + keyword
		}
		if flag != "" && !containsString(flags, flag) {
			flags = append(flags, flag)
		}
		remaining = cutMatch(remaining, loc[:2])
	}
	return flags, remaining
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// splitIngredients splits ingredient text into a deduplicated list,
// keeping "X with Y" intact when X is a product-container word.
func splitIngredients(text string) []string {
	t := strings.TrimSpace(punctTrimRe.ReplaceAllString(text, ""))
	t = strings.TrimSpace(trailingSentence.ReplaceAllString(t, ""))
	t = andSplitRe.ReplaceAllString(t, ", ")
	t = orSplitRe.ReplaceAllString(t, ", ")

	var result []string
	seen := make(map[string]struct{})
	add := func(part string) {
		part = strings.TrimSpace(part)
		if len(part) < 2 {
			return
		}
		words := strings.Fields(strings.ToLower(part))
		allStop := true
		for _, w := range words {
			if _, ok := stopwords[w]; !ok {
				allStop = false
				break
			}
		}
		if allStop {
			return
		}
		key := strings.ToLower(part)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		result = append(result, part)
	}

	for _, chunk := range strings.Split(t, ",") {
		chunk = strings.TrimSuffix(strings.TrimSpace(chunk), ".")
		if chunk == "" {
			continue
		}
		if m := withSplitRe.FindStringSubmatch(chunk); m != nil {
			left, right := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			if _, ok := productContainerWords[strings.ToLower(left)]; ok {
				add(chunk)
			} else {
				add(left)
				add(right)
			}
			continue
		}
		add(chunk)
	}
	return result
}

// cleanForIngredients strips conversational fluff; empty result means the
// text is not an ingredient list.
func cleanForIngredients(text string) string {
	t := strings.TrimSpace(text)
	t = greetingPrefixRe.ReplaceAllString(t, "")
	t = politeRequestRe.ReplaceAllString(t, "")
	t = forMeRe.ReplaceAllString(t, "")
	t = trailingQmarksRe.ReplaceAllString(t, "")
	t = collapseSpaces(t)
	if helpVerbsRe.MatchString(t) || leftoverChatterRe.MatchString(t) {
		return ""
	}
	return t
}

func extractIngredientsFromText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, pat := range ingredientQueryPatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return splitIngredients(strings.TrimSpace(m[1]))
		}
	}
	if cleaned := cleanForIngredients(text); cleaned != "" {
		return splitIngredients(cleaned)
	}
	return nil
}

// splitTrailingDiet splits "Sugar, Water. Is this Halal?" into
// ("Sugar, Water", "Halal"). The diet is "" when no trailing question
// was found.
func splitTrailingDiet(query string) (string, string) {
	loc := trailingDietRe.FindStringSubmatchIndex(query)
	if loc == nil {
		return query, ""
	}
	diet, ok := DietKeywords[strings.ToLower(strings.TrimSpace(query[loc[2]:loc[3]]))]
	if !ok {
		return query, ""
	}
	cleaned := strings.TrimSuffix(strings.TrimSpace(query[:loc[0]]), ".")
	return cleaned, diet
}

// resolveDietPlural resolves a diet keyword with plural tolerance:
// "vegans" -> "Vegan", "jain's" -> "Jain".
func resolveDietPlural(dietKey string) string {
	if c, ok := DietKeywords[dietKey]; ok {
		return c
	}
	if strings.HasSuffix(dietKey, "'s") {
		if c, ok := DietKeywords[strings.TrimSuffix(dietKey, "'s")]; ok {
			return c
		}
	}
	if strings.HasSuffix(dietKey, "s") {
		if c, ok := DietKeywords[strings.TrimSuffix(dietKey, "s")]; ok {
			return c
		}
	}
	return ""
}

func filterDietNames(ingredients []string) []string {
	var out []string
	for _, i := range ingredients {
		if _, isDiet := DietKeywords[strings.ToLower(strings.TrimSpace(i))]; !isDiet {
			out = append(out, i)
		}
	}
	return out
}

// Detect parses a natural-language query into a structured intent.
//
//	"I am Jain can I eat eggs?"  -> MIXED, diet Jain, ingredients [eggs]
//	"Is cheese okay?"            -> INGREDIENT_QUERY, [cheese]
//	"I follow a vegan diet"      -> PROFILE_UPDATE, diet Vegan
//	"Hello"                      -> GREETING
//	"eggs, milk, flour"          -> INGREDIENT_QUERY, [eggs milk flour]
func Detect(query string) models.ParsedIntent {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.ParsedIntent{Intent: models.IntentGeneralQuestion, OriginalQuery: query}
	}

	// /update slash command opens the profile-update flow.
	if strings.HasPrefix(strings.ToLower(strings.TrimLeft(query, " ")), "/update") {
		return models.ParsedIntent{Intent: models.IntentProfileUpdate, OriginalQuery: query}
	}

	if greetingRe.MatchString(query) || conversationalRe.MatchString(query) {
		return models.ParsedIntent{Intent: models.IntentGreeting, OriginalQuery: query}
	}

	baseText, trailingDiet := splitTrailingDiet(query)

	// Third-person diet+ingredient queries, only when no trailing diet
	// question already consumed the diet part.
	if trailingDiet == "" {
		for _, tp := range thirdPersonPatterns {
			m := tp.re.FindStringSubmatch(query)
			if m == nil {
				continue
			}
			dietRaw, ingredientRaw := m[1], m[2]
			if !tp.dietFirst {
				dietRaw, ingredientRaw = m[2], m[1]
			}
			canonical := resolveDietPlural(strings.ToLower(strings.TrimSpace(dietRaw)))
			if canonical == "" {
				continue
			}
			if ings := splitIngredients(strings.TrimSpace(ingredientRaw)); len(ings) > 0 {
				return models.ParsedIntent{
					Intent:         models.IntentMixed,
					ProfileUpdates: models.ProfileUpdate{DietaryPreference: canonical},
					Ingredients:    ings,
					OriginalQuery:  query,
				}
			}
		}
	}

	var updates models.ProfileUpdate

	dietName, remaining := extractDiet(baseText)
	switch {
	case dietName != "":
		updates.DietaryPreference = dietName
	case trailingDiet != "":
		updates.DietaryPreference = trailingDiet
		remaining = baseText
	}

	updates.Allergens, remaining = extractByPatterns(remaining, allergenPatterns)
	updates.RemoveAllergens, remaining = extractByPatterns(remaining, allergenRemovePatterns)
	updates.Lifestyle, remaining = extractLifestyle(remaining)

	isGeneral := false
	for _, p := range generalQuestionRes {
		if p.MatchString(baseText) {
			isGeneral = true
			break
		}
	}

	var ingredients []string
	if !isGeneral {
		ingredients = extractIngredientsFromText(remaining)
		if len(ingredients) == 0 && remaining != baseText && updates.IsEmpty() {
			ingredients = extractIngredientsFromText(baseText)
		}
	}
	ingredients = filterDietNames(ingredients)

	hasProfile := !updates.IsEmpty()
	switch {
	case hasProfile && len(ingredients) > 0:
		return models.ParsedIntent{Intent: models.IntentMixed, ProfileUpdates: updates, Ingredients: ingredients, OriginalQuery: query}
	case hasProfile:
		return models.ParsedIntent{Intent: models.IntentProfileUpdate, ProfileUpdates: updates, OriginalQuery: query}
	case len(ingredients) > 0:
		return models.ParsedIntent{Intent: models.IntentIngredientQuery, Ingredients: ingredients, OriginalQuery: query}
	case isGeneral:
		return models.ParsedIntent{Intent: models.IntentGeneralQuestion, OriginalQuery: query}
	}

	if fallback := filterDietNames(extractIngredientsFromText(query)); len(fallback) > 0 {
		return models.ParsedIntent{Intent: models.IntentIngredientQuery, Ingredients: fallback, OriginalQuery: query}
	}
	return models.ParsedIntent{Intent: models.IntentGeneralQuestion, OriginalQuery: query}
}
