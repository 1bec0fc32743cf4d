package ai

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	codeFenceRe  = regexp.MustCompile("```(?:json)?\\s*")
	jsonObjectRe = regexp.MustCompile(`(?s)\{[^{}]*\}`)
)

// parseIntentJSON extracts an IntentResult from raw LLM output, which may
// be wrapped in markdown fences or surrounded by prose.
func parseIntentJSON(raw string) (*IntentResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty response")
	}
	cleaned := codeFenceRe.ReplaceAllString(raw, "")
	cleaned = strings.TrimRight(strings.TrimSpace(cleaned), "`")

	var result IntentResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		match := jsonObjectRe.FindString(cleaned)
		if match == "" {
			return nil, errors.New("no JSON object in response")
		}
		if err := json.Unmarshal([]byte(match), &result); err != nil {
			return nil, err
		}
	}

	cleanList := func(items []string) []string {
		var out []string
		for _, s := range items {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	result.Ingredients = cleanList(result.Ingredients)
	result.Allergens = cleanList(result.Allergens)
	result.Lifestyle = cleanList(result.Lifestyle)
	result.RemoveAllergens = cleanList(result.RemoveAllergens)

	if result.Intent == "" {
		result.Intent = "GENERAL_QUESTION"
	}
	if result.IsGreeting {
		result.Intent = "GREETING"
	} else if result.IsGeneralQuestion && len(result.Ingredients) == 0 {
		result.Intent = "GENERAL_QUESTION"
	}
	return &result, nil
}
