package ai

import (
	"fmt"
	"strings"

	"github.com/ingresure/ingresure-api/internal/compose"
)

// normForMatch mirrors the composer's plural-tolerant matching so the
// prompt table classifies "eggs" the same way the verdict keyed "egg".
func normForMatch(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(s, "es") && len(s) > 3 {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "s") && len(s) > 2 {
		return s[:len(s)-1]
	}
	return s
}

// buildVerdictPrompt renders the per-ingredient verdict table the LLM
// must follow exactly.
func buildVerdictPrompt(req VerdictPrompt) string {
	diet := req.Diet
	if diet == "" {
		diet = "your preferences"
	}
	triggered := make(map[string]struct{})
	for _, i := range req.Verdict.TriggeredIngredients {
		triggered[normForMatch(i)] = struct{}{}
	}
	uncertain := make(map[string]struct{})
	for _, i := range req.Verdict.UncertainIngredients {
		uncertain[normForMatch(i)] = struct{}{}
	}

	var b strings.Builder
	b.WriteString("=== VERDICT DATA (you MUST follow this EXACTLY) ===\n")
	fmt.Fprintf(&b, "Diet: %s\n", diet)
	fmt.Fprintf(&b, "Overall: %s\n\n", req.Verdict.Status)
	b.WriteString("Per-ingredient verdicts:\n")
	for _, ing := range req.Ingredients {
		norm := normForMatch(ing)
		if _, ok := triggered[norm]; ok {
			fmt.Fprintf(&b, "  - %s: NOT_SAFE (reason: %s)\n", ing, compose.IngredientReason(ing))
		} else if _, ok := uncertain[norm]; ok {
			fmt.Fprintf(&b, "  - %s: UNCERTAIN (could not verify)\n", ing)
		} else {
			fmt.Fprintf(&b, "  - %s: SAFE\n", ing)
		}
	}
	if len(req.ProfileChanges) > 0 {
		fmt.Fprintf(&b, "\nProfile just updated: %s\n", strings.Join(req.ProfileChanges, "; "))
		b.WriteString("Acknowledge the profile update first.\n")
	}
	b.WriteString("\nWrite a natural, friendly response. Follow ALL rules in your system prompt.")
	return b.String()
}

func greetingPrompt(dietaryPreference string) string {
	if dietaryPreference != "" && dietaryPreference != "No rules" {
		return fmt.Sprintf("The user said hello. Their dietary profile is: %s. "+
			"Greet them warmly and mention you can check ingredients for their %s diet. "+
			"Keep it to 1-2 sentences. Do NOT offer recipes or alternatives.",
			dietaryPreference, dietaryPreference)
	}
	return "The user said hello. They haven't set up a dietary profile yet. " +
		"Greet them warmly and invite them to tell you their dietary preferences " +
		"or ask about any ingredient. Keep it to 1-2 sentences. Do NOT offer recipes or alternatives."
}

func generalPrompt(query, dietaryPreference string) string {
	context := ""
	if dietaryPreference != "" && dietaryPreference != "No rules" {
		context = fmt.Sprintf(" Their diet is: %s.", dietaryPreference)
	}
	return fmt.Sprintf("The user asked: %q.%s "+
		"If this is a general food/nutrition question, give a brief helpful answer. "+
		"If they didn't ask about specific ingredients, gently guide them to ask about "+
		"specific ingredients so you can check safety. Keep it to 2-3 sentences. "+
		"Do NOT offer to brainstorm, suggest recipes, or suggest alternative ingredients.",
		query, context)
}
