// Package normalize turns raw label text into normalized ingredient keys.
// Everything here is deterministic: no fuzzy matching, no LLM.
package normalize

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// knownVariants maps frequent misspellings, E-numbers, and irregular forms
// to their canonical key.
var knownVariants = map[string]string{
	"inglass":    "isinglass",
	"isin glass": "isinglass",
	"e120":       "carmine",
	"e 120":      "carmine",
	"e441":       "gelatin",
	"e904":       "shellac",
	"gelatine":   "gelatin",
	"eggs":       "egg",
}

// noStripSuffixes are word endings that a trailing "s" is never stripped
// from ("couscous", "floss", "asparagus").
var noStripSuffixes = []string{"us", "ss", "is", "os", "as"}

// singularSWords are nouns that end in "s" but are singular; they never
// lose the trailing "s" even when no protected suffix matches.
var singularSWords = map[string]struct{}{
	"asparagus": {},
	"hummus":    {},
	"couscous":  {},
	"molasses":  {},
	"floss":     {},
	"bass":      {},
	"grass":     {},
	"glass":     {},
	"gas":       {},
	"bus":       {},
	"lens":      {},
}

// normalizeBasic lowercases, trims, strips "*" and ".", and collapses
// internal whitespace. It applies no vocabulary mapping.
func normalizeBasic(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.ReplaceAll(t, "*", "")
	t = strings.ReplaceAll(t, ".", "")
	t = whitespaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// NormalizeKey normalizes a raw ingredient string into its lookup key:
// basic cleanup, then the variant table, then a conservative singular form
// of the final word, then the variant table again.
func NormalizeKey(text string) string {
	t := normalizeBasic(text)
	if t == "" {
		return ""
	}
	if v, ok := knownVariants[t]; ok {
		return v
	}
	t = stripPluralFinalWord(t)
	if v, ok := knownVariants[t]; ok {
		return v
	}
	return t
}

// stripPluralFinalWord removes a trailing "s" from the last word when the
// word is long enough and does not end in a protected suffix.
func stripPluralFinalWord(t string) string {
	words := strings.Split(t, " ")
	last := words[len(words)-1]
	if len(last) < 4 || !strings.HasSuffix(last, "s") {
		return t
	}
	if _, ok := singularSWords[last]; ok {
		return t
	}
	for _, suf := range noStripSuffixes {
		if strings.HasSuffix(last, suf) {
			return t
		}
	}
	words[len(words)-1] = last[:len(last)-1]
	return strings.Join(words, " ")
}

// Tokenize splits raw text into candidate ingredient tokens on commas,
// newlines, and semicolons, normalizing each and dropping empties.
func Tokenize(rawText string) []string {
	if rawText == "" {
		return nil
	}
	var out []string
	for _, p := range strings.FieldsFunc(rawText, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	}) {
		if key := NormalizeKey(p); key != "" {
			out = append(out, key)
		}
	}
	return out
}
