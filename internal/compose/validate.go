package compose

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
)

var safeWords = []string{
	"fine", "safe", "okay", "compatible", "suitable for", "good for", "no issue", "perfectly",
}

var unsafeWords = []string{
	"not suitable", "not safe", "restricted", "avoid", "unsuitable", "not compatible",
	"not okay", "not fine", "cannot", "shouldn't", "should not",
}

// ValidateRewrite checks a rewritten verdict response against the
// deterministic verdict: a triggered ingredient must never read as safe
// and a safe one must never read as restricted. A false return means the
// caller should fall back to the template response.
func ValidateRewrite(response string, verdict *models.ComplianceVerdict, ingredients []string) bool {
	respLower := strings.ToLower(response)
	sentences := splitSentences(respLower)

	triggeredNorm := normSet(verdict.TriggeredIngredients)
	uncertainNorm := normSet(verdict.UncertainIngredients)
	var safeIngredients []string
	for _, i := range ingredients {
		norm := normalizeForMatch(i)
		if _, ok := triggeredNorm[norm]; ok {
			continue
		}
		if _, ok := uncertainNorm[norm]; ok {
			continue
		}
		safeIngredients = append(safeIngredients, i)
	}

	for _, ing := range verdict.TriggeredIngredients {
		ingLower := strings.ToLower(ing)
		if !strings.Contains(respLower, ingLower) {
			continue
		}
		for _, sentence := range sentences {
			if !strings.Contains(sentence, ingLower) {
				continue
			}
			if containsAny(sentence, safeWords) && !containsAny(sentence, unsafeWords) {
				logger.Get().Warn("rewrite validation failed, triggered ingredient described as safe",
					zap.String("ingredient", ing))
				return false
			}
		}
	}

	for _, ing := range safeIngredients {
		ingLower := strings.ToLower(ing)
		if !strings.Contains(respLower, ingLower) {
			continue
		}
		for _, sentence := range sentences {
			if !strings.Contains(sentence, ingLower) {
				continue
			}
			if containsAny(sentence, unsafeWords) && !containsAny(sentence, safeWords) {
				logger.Get().Warn("rewrite validation failed, safe ingredient described as unsafe",
					zap.String("ingredient", ing))
				return false
			}
		}
	}

	return true
}

func splitSentences(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '!'
	})
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
