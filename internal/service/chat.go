package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	goaway "github.com/TwiN/go-away"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/ai"
	"github.com/ingresure/ingresure-api/internal/compose"
	"github.com/ingresure/ingresure-api/internal/compound"
	"github.com/ingresure/ingresure-api/internal/config"
	"github.com/ingresure/ingresure-api/internal/engine"
	"github.com/ingresure/ingresure-api/internal/intent"
	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
)

// ProfileMarker frames the out-of-band profile JSON appended to every
// chat response so clients can sync local state.
const ProfileMarker = "<<<PROFILE_UPDATE>>>"

// ProfileRequiredMarker tells the client to prompt for profile setup.
const ProfileRequiredMarker = "<<<PROFILE_REQUIRED>>>"

// ChatService is the business logic layer for the grocery safety chat.
// The LLM provider is optional; when nil (or when it fails) every path
// falls back to deterministic templates.
type ChatService struct {
	Cfg      *config.Config
	Profiles ProfileStore
	Engine   *engine.Engine
	Provider ai.TextProvider
}

// ProfileStore is the slice of profile persistence the chat flow needs.
type ProfileStore interface {
	GetOrCreateProfile(userID string) (*models.UserProfile, error)
	SaveProfile(profile *models.UserProfile) error
}

// NewChatService is the constructor function for initializing a new ChatService.
func NewChatService(cfg *config.Config, profiles ProfileStore, eng *engine.Engine, provider ai.TextProvider) *ChatService {
	return &ChatService{
		Cfg:      cfg,
		Profiles: profiles,
		Engine:   eng,
		Provider: provider,
	}
}

// ChatResult is the composed answer plus the profile state after the turn.
type ChatResult struct {
	Message string
	Profile *models.UserProfile
}

// WithProfileJSON returns the message with the framed profile JSON
// appended.
func (r *ChatResult) WithProfileJSON() string {
	data, err := json.Marshal(r.Profile)
	if err != nil {
		return r.Message
	}
	return r.Message + "\n\n" + ProfileMarker + string(data) + ProfileMarker
}

var updateCommandRe = regexp.MustCompile(`(?is)^/update\s+(\w+)\s+(.+)$`)

// parseUpdateCommand parses "/update <field> v1, v2". Returns ("", nil)
// when the query is not a valid update command.
func parseUpdateCommand(query string) (string, []string) {
	m := updateCommandRe.FindStringSubmatch(strings.TrimSpace(query))
	if m == nil {
		return "", nil
	}
	field := strings.ToLower(m[1])
	switch field {
	case "dietary_preference", "allergens", "lifestyle":
	default:
		return "", nil
	}
	var values []string
	for _, v := range strings.Split(m[2], ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if field == "dietary_preference" && len(values) > 1 {
		values = values[:1]
	}
	return field, values
}

var profanityDetector = goaway.NewProfanityDetector().
	WithSanitizeLeetSpeak(true).
	WithSanitizeSpecialCharacters(true).
	WithSanitizeAccents(false)

// Chat runs one conversational turn: intent detection, profile merge,
// deterministic compliance evaluation, response composition.
func (s *ChatService) Chat(ctx context.Context, userID, query string) (*ChatResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query")
	}
	if userID == "" {
		userID = "anon-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	}

	profile, err := s.Profiles.GetOrCreateProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if profanityDetector.IsProfane(query) {
		logger.Get().Info("chat query rejected by profanity screen", zap.String("user_id", userID))
		return &ChatResult{
			Message: "Let's keep it about food. Ask me about any ingredient and I'll check it against your dietary profile.",
			Profile: profile,
		}, nil
	}

	// 1) /update slash command.
	if field, values := parseUpdateCommand(query); field != "" {
		update := slashUpdate(field, values)
		profile.ApplyUpdate(update)
		if err := s.Profiles.SaveProfile(profile); err != nil {
			return nil, err
		}
		logger.Get().Info("profile updated via slash command",
			zap.String("user_id", userID), zap.String("field", field), zap.Strings("values", values))
		return &ChatResult{Message: compose.ProfileUpdateAck(update, false), Profile: profile}, nil
	}

	// 2) Intent detection: rule-based first, LLM fallback for queries the
	// rules could not make anything of.
	parsed := intent.Detect(query)
	logger.Get().Info("intent detected",
		zap.String("user_id", userID),
		zap.String("intent", string(parsed.Intent)),
		zap.Strings("ingredients", parsed.Ingredients))

	if parsed.Intent == models.IntentGeneralQuestion &&
		len(parsed.Ingredients) == 0 && parsed.ProfileUpdates.IsEmpty() && s.Provider != nil {
		if llm, err := s.Provider.ExtractIntent(ctx, query); err == nil && llm != nil {
			parsed = reconcileLLMIntent(query, llm)
			logger.Get().Info("llm intent fallback used",
				zap.String("user_id", userID), zap.String("intent", string(parsed.Intent)))
		}
	}

	// 3) Greeting.
	if parsed.Intent == models.IntentGreeting {
		msg := s.llmGreeting(ctx, profile)
		return &ChatResult{Message: msg, Profile: profile}, nil
	}

	// 4) Apply profile updates from natural language. Merge-only: a chat
	// turn never resets fields it did not mention.
	profileUpdated := false
	if !parsed.ProfileUpdates.IsEmpty() {
		profile.ApplyUpdate(parsed.ProfileUpdates)
		if err := s.Profiles.SaveProfile(profile); err != nil {
			return nil, err
		}
		profileUpdated = true
		logger.Get().Info("profile updated from chat",
			zap.String("user_id", userID),
			zap.String("dietary_preference", profile.DietaryPreference))
	}

	hasIngredients := len(parsed.Ingredients) > 0

	// 5) Profile-only update.
	if parsed.Intent == models.IntentProfileUpdate && !hasIngredients {
		return &ChatResult{Message: compose.ProfileUpdateAck(parsed.ProfileUpdates, false), Profile: profile}, nil
	}

	// 6) General question with no ingredients.
	if parsed.Intent == models.IntentGeneralQuestion && !hasIngredients {
		msg := s.llmGeneral(ctx, query, profile)
		if profile.IsEmpty() {
			msg = ProfileRequiredMarker + "\n\n" + msg
		}
		return &ChatResult{Message: msg, Profile: profile}, nil
	}

	// 7) Nothing to evaluate.
	if !hasIngredients {
		msg := s.llmGeneral(ctx, query, profile)
		if msg == "" {
			msg = compose.NoIngredients()
		}
		if profile.IsEmpty() {
			msg = ProfileRequiredMarker + "\n\n" + msg
		}
		return &ChatResult{Message: msg, Profile: profile}, nil
	}

	// 8) Expand compound items for evaluation.
	evalIngredients, displayNames := compound.Expand(parsed.Ingredients)

	// 9) Deterministic compliance engine.
	restrictionIDs := engine.BuildRestrictionIDs(profile)
	verdict := s.Engine.Evaluate(ctx, engine.Request{
		Ingredients:    evalIngredients,
		RestrictionIDs: restrictionIDs,
		UseAPIFallback: true,
		ProfileContext: map[string]interface{}{
			"dietary_preference": profile.DietaryPreference,
			"allergens":          profile.Allergens,
			"lifestyle":          profile.Lifestyle,
		},
	})
	logger.Get().Info("compliance verdict",
		zap.String("user_id", userID),
		zap.String("status", string(verdict.Status)),
		zap.Float64("confidence", verdict.ConfidenceScore),
		zap.Strings("triggered", verdict.TriggeredRestrictions))

	// 10) Compose: template verdict, optional LLM rewrite behind the
	// validator. The LLM never changes the verdict, only the phrasing.
	templateMsg := compose.Verdict(compose.VerdictInput{
		Verdict:        &verdict,
		Profile:        profile,
		Ingredients:    evalIngredients,
		DisplayNames:   displayNames,
		ProfileUpdated: profileUpdated,
		Update:         parsed.ProfileUpdates,
	})
	msg := s.llmRewrite(ctx, templateMsg, &verdict, profile, evalIngredients, parsed.ProfileUpdates, profileUpdated)

	return &ChatResult{Message: msg, Profile: profile}, nil
}

func slashUpdate(field string, values []string) models.ProfileUpdate {
	var u models.ProfileUpdate
	switch field {
	case "dietary_preference":
		if len(values) > 0 {
			u.DietaryPreference = values[0]
		} else {
			u.DietaryPreference = "No rules"
		}
	case "allergens":
		u.Allergens = values
	case "lifestyle":
		u.Lifestyle = values
	}
	return u
}

// reconcileLLMIntent converts the LLM's extraction into a ParsedIntent,
// recomputing the intent from what was actually extracted so a
// hallucinated label cannot route the query.
func reconcileLLMIntent(query string, llm *ai.IntentResult) models.ParsedIntent {
	parsed := models.ParsedIntent{
		OriginalQuery: query,
		Ingredients:   llm.Ingredients,
		ProfileUpdates: models.ProfileUpdate{
			DietaryPreference: llm.DietaryPreference,
			Allergens:         llm.Allergens,
			RemoveAllergens:   llm.RemoveAllergens,
			Lifestyle:         llm.Lifestyle,
		},
	}
	hasProfile := !parsed.ProfileUpdates.IsEmpty()
	hasIngredients := len(parsed.Ingredients) > 0
	switch {
	case llm.Intent == string(models.IntentGreeting):
		parsed.Intent = models.IntentGreeting
	case hasProfile && hasIngredients:
		parsed.Intent = models.IntentMixed
	case hasProfile:
		parsed.Intent = models.IntentProfileUpdate
	case hasIngredients:
		parsed.Intent = models.IntentIngredientQuery
	default:
		parsed.Intent = models.IntentGeneralQuestion
	}
	return parsed
}

func (s *ChatService) llmGreeting(ctx context.Context, profile *models.UserProfile) string {
	if s.Provider != nil {
		if msg, err := s.Provider.ComposeGreeting(ctx, profile.DietaryPreference); err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return compose.Greeting()
}

func (s *ChatService) llmGeneral(ctx context.Context, query string, profile *models.UserProfile) string {
	if s.Provider != nil {
		if msg, err := s.Provider.ComposeGeneral(ctx, query, profile.DietaryPreference); err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return compose.GeneralQuestion()
}

// llmRewrite asks the provider to rephrase the template verdict. The
// rewrite is only used when it passes the faithfulness validator.
func (s *ChatService) llmRewrite(ctx context.Context, templateMsg string, verdict *models.ComplianceVerdict,
	profile *models.UserProfile, ingredients []string, update models.ProfileUpdate, profileUpdated bool) string {
	if s.Provider == nil {
		return templateMsg
	}
	var changes []string
	if profileUpdated {
		if update.DietaryPreference != "" {
			changes = append(changes, "diet set to "+update.DietaryPreference)
		}
		if len(update.Allergens) > 0 {
			changes = append(changes, "allergens added: "+strings.Join(update.Allergens, ", "))
		}
	}
	rewritten, err := s.Provider.RewriteVerdict(ctx, ai.VerdictPrompt{
		Verdict:        verdict,
		Diet:           profile.DietaryPreference,
		Ingredients:    ingredients,
		ProfileChanges: changes,
	})
	if err != nil || strings.TrimSpace(rewritten) == "" {
		return templateMsg
	}
	if !compose.ValidateRewrite(rewritten, verdict, ingredients) {
		logger.Get().Warn("llm rewrite failed validation, using template")
		return templateMsg
	}
	return rewritten
}
