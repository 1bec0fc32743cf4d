package normalize

import (
	"regexp"
	"strings"
)

// Atom is one preprocessed label entry. Trace marks ingredients introduced
// by a "less than 2%" style marker; they are informational unless they
// conflict with the user's restrictions.
type Atom struct {
	Name  string `json:"name"`
	Trace bool   `json:"trace"`
}

// Trace-marker patterns, usually found near the end of a label.
var tracePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)less than 2%? of`),
	regexp.MustCompile(`(?i)<2%?\s*of`),
	regexp.MustCompile(`(?i)2%?\s*or less`),
	regexp.MustCompile(`(?i)contains 2%?\s*or less`),
	regexp.MustCompile(`(?i)\(\s*&lt;\s*2\s*%?\s*\)`),
	regexp.MustCompile(`(?i)may contain traces? of`),
	regexp.MustCompile(`(?i)\btraces? of`),
}

var traceStrippers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*[<(]\s*&lt;\s*2\s*%?\s*[>)]\s*`),
	regexp.MustCompile(`(?i)\s*<\s*2\s*%?\s*`),
	regexp.MustCompile(`(?i)\s*less than 2%?\s*of\s*:?\s*`),
	regexp.MustCompile(`(?i)\s*contains 2%?\s*or less\s*(?:of\s*)?:?\s*`),
	regexp.MustCompile(`(?i)\s*may contain traces? of\s*:?\s*`),
	regexp.MustCompile(`(?i)\s*\btraces? of\s*:?\s*`),
}

var (
	leadingColons = regexp.MustCompile(`^\s*:+\s*`)
	leadingOf     = regexp.MustCompile(`(?i)^\s*of\s*:?\s*`)
	// Labels often start the trace disclaimer as a new sentence
	// ("... Water. May contain traces of milk."); sentence breaks
	// separate atoms the same way commas do.
	sentenceBreak = regexp.MustCompile(`\.\s+`)
)

func isTraceSection(text string) bool {
	for _, pat := range tracePatterns {
		if pat.MatchString(text) {
			return true
		}
	}
	return false
}

// stripTraceMarkers removes "<2%" style markers so the remaining name can
// be normalized.
func stripTraceMarkers(text string) string {
	t := text
	for _, pat := range traceStrippers {
		t = pat.ReplaceAllString(t, " ")
	}
	t = leadingColons.ReplaceAllString(t, "")
	t = leadingOf.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

// PreprocessIngredients splits a raw label into normalized atoms with trace
// flags. Once a trace marker is seen, every later atom inherits the flag.
// Atoms are deduplicated by key; a key seen as trace anywhere stays trace.
func PreprocessIngredients(rawStr string) []Atom {
	rawStr = strings.TrimSpace(rawStr)
	if rawStr == "" {
		return nil
	}
	rawStr = sentenceBreak.ReplaceAllString(rawStr, ", ")

	var rawFlat []string
	for _, seg := range splitTopLevelCommas(rawStr) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		rawFlat = append(rawFlat, splitByParentheses(seg)...)
	}

	index := make(map[string]int, len(rawFlat))
	var out []Atom
	traceUntilEnd := false
	for _, part := range rawFlat {
		partClean := stripTraceMarkers(part)
		if partClean == "" {
			if isTraceSection(part) {
				traceUntilEnd = true
			}
			continue
		}
		isTrace := traceUntilEnd || isTraceSection(part)
		if isTraceSection(part) {
			traceUntilEnd = true
		}
		key := NormalizeKey(partClean)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			out[i].Trace = out[i].Trace || isTrace
			continue
		}
		index[key] = len(out)
		out = append(out, Atom{Name: key, Trace: isTrace})
	}
	return out
}

// PreprocessToStrings returns only the normalized names from
// PreprocessIngredients, for callers that carry trace keys separately.
func PreprocessToStrings(rawStr string) []string {
	atoms := PreprocessIngredients(rawStr)
	out := make([]string, len(atoms))
	for i, a := range atoms {
		out[i] = a.Name
	}
	return out
}

// TraceKeys returns the set of atom names flagged as trace.
func TraceKeys(atoms []Atom) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, a := range atoms {
		if a.Trace {
			keys[a.Name] = struct{}{}
		}
	}
	return keys
}
