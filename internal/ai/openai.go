package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ingresure/ingresure-api/internal/config"
)

// OpenAIProvider implements TextProvider using the OpenAI chat API.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	prompts *config.Prompts
}

// NewOpenAIProvider creates an OpenAIProvider with the given API key and
// prompt configuration.
func NewOpenAIProvider(apiKey string, prompts *config.Prompts) *OpenAIProvider {
	return &OpenAIProvider{
		client:  openai.NewClient(apiKey),
		model:   openai.GPT4oMini,
		prompts: prompts,
	}
}

func (p *OpenAIProvider) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ExtractIntent asks the model for the fixed intent JSON schema.
func (p *OpenAIProvider) ExtractIntent(ctx context.Context, query string) (*IntentResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query")
	}
	userPrompt, err := config.RenderPrompt(p.prompts.Intent.Extract.User, map[string]interface{}{
		"Query": query,
	})
	if err != nil {
		return nil, err
	}
	raw, err := p.complete(ctx, p.prompts.Intent.Extract.System, userPrompt, 300)
	if err != nil {
		return nil, err
	}
	return parseIntentJSON(raw)
}

// RewriteVerdict phrases a structured verdict conversationally.
func (p *OpenAIProvider) RewriteVerdict(ctx context.Context, req VerdictPrompt) (string, error) {
	return p.complete(ctx, p.prompts.Compose.Rewrite.System, buildVerdictPrompt(req), 400)
}

// ComposeGreeting phrases a greeting for the user's diet.
func (p *OpenAIProvider) ComposeGreeting(ctx context.Context, dietaryPreference string) (string, error) {
	return p.complete(ctx, p.prompts.Compose.Rewrite.System, greetingPrompt(dietaryPreference), 400)
}

// ComposeGeneral answers a general food question within guardrails.
func (p *OpenAIProvider) ComposeGeneral(ctx context.Context, query, dietaryPreference string) (string, error) {
	return p.complete(ctx, p.prompts.Compose.Rewrite.System, generalPrompt(query, dietaryPreference), 400)
}
