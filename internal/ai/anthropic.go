package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/config"
	"github.com/ingresure/ingresure-api/internal/logger"
)

// AnthropicProvider implements TextProvider using Claude.
type AnthropicProvider struct {
	client  anthropic.Client
	model   anthropic.Model
	prompts *config.Prompts
}

// NewAnthropicProvider creates an AnthropicProvider with the given API
// key and prompt configuration.
func NewAnthropicProvider(apiKey string, prompts *config.Prompts) *AnthropicProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{
		client:  client,
		model:   anthropic.ModelClaude3_5Sonnet20241022,
		prompts: prompts,
	}
}

// createMessageWithRetry wraps the Claude API call with exponential backoff.
func (p *AnthropicProvider) createMessageWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	const maxRetries = 5
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		resp, err := p.client.Messages.New(ctx, params)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		shouldRetry, waitTime := classifyAnthropicError(err)
		if !shouldRetry {
			return nil, fmt.Errorf("claude API error: %w", err)
		}

		logger.Get().Warn("claude API error, retrying",
			zap.Error(err),
			zap.Int("attempt", i+1),
		)

		backoff := waitTime * time.Duration(i+1)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("claude API: exhausted %d retries: %w", maxRetries, lastErr)
}

// classifyAnthropicError determines whether to retry and the base wait duration.
func classifyAnthropicError(err error) (shouldRetry bool, waitTime time.Duration) {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return true, 2 * time.Second
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return true, 2 * time.Second
		default:
			return false, 0
		}
	}
	return false, 0
}

// extractTextContent returns the concatenated text blocks from a Claude response.
func extractTextContent(msg *anthropic.Message) (string, error) {
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", errors.New("no text content in Claude response")
	}
	return strings.TrimSpace(text), nil
}

func (p *AnthropicProvider) complete(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(user),
				},
			},
		},
	}
	resp, err := p.createMessageWithRetry(ctx, params)
	if err != nil {
		return "", err
	}
	return extractTextContent(resp)
}

// ExtractIntent asks Claude for the fixed intent JSON schema.
func (p *AnthropicProvider) ExtractIntent(ctx context.Context, query string) (*IntentResult, error) {
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
func (p *AnthropicProvider) RewriteVerdict(ctx context.Context, req VerdictPrompt) (string, error) {
	return p.complete(ctx, p.prompts.Compose.Rewrite.System, buildVerdictPrompt(req), 400)
}

// ComposeGreeting phrases a greeting for the user's diet.
func (p *AnthropicProvider) ComposeGreeting(ctx context.Context, dietaryPreference string) (string, error) {
	return p.complete(ctx, p.prompts.Compose.Rewrite.System, greetingPrompt(dietaryPreference), 400)
}

// ComposeGeneral answers a general food question within guardrails.
func (p *AnthropicProvider) ComposeGeneral(ctx context.Context, query, dietaryPreference string) (string, error) {
	return p.complete(ctx, p.prompts.Compose.Rewrite.System, generalPrompt(query, dietaryPreference), 400)
}
