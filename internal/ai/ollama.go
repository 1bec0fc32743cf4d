package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/config"
	"github.com/ingresure/ingresure-api/internal/logger"
)

// OllamaProvider implements TextProvider against a local Ollama server.
// This is the default provider: no API key, runs offline.
type OllamaProvider struct {
	generateURL     string
	model           string
	intentTimeout   time.Duration
	responseTimeout time.Duration
	httpClient      *http.Client
	prompts         *config.Prompts
}

// NewOllamaProvider creates a provider for the given base URL (e.g.
// "http://localhost:11434") and model name.
func NewOllamaProvider(baseURL, model string, intentTimeout, responseTimeout time.Duration, prompts *config.Prompts) *OllamaProvider {
	url := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(url, "/api/generate") {
		url += "/api/generate"
	}
	return &OllamaProvider{
		generateURL:     url,
		model:           model,
		intentTimeout:   intentTimeout,
		responseTimeout: responseTimeout,
		httpClient:      &http.Client{},
		prompts:         prompts,
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (p *OllamaProvider) generate(ctx context.Context, system, prompt string, numPredict int, timeout time.Duration) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:   p.model,
		Prompt:  prompt,
		System:  system,
		Stream:  false,
		Options: ollamaOptions{Temperature: 0.0, NumPredict: numPredict},
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.generateURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Get().Warn("ollama call failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama status %d", resp.StatusCode)
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Response), nil
}

// ExtractIntent asks the model for the fixed intent JSON schema.
func (p *OllamaProvider) ExtractIntent(ctx context.Context, query string) (*IntentResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query")
	}
	userPrompt, err := config.RenderPrompt(p.prompts.Intent.Extract.User, map[string]interface{}{
		"Query": query,
	})
	if err != nil {
		return nil, err
	}
	raw, err := p.generate(ctx, p.prompts.Intent.Extract.System, userPrompt, 300, p.intentTimeout)
	if err != nil {
		return nil, err
	}
	result, err := parseIntentJSON(raw)
	if err != nil {
		logger.Get().Warn("ollama intent response unparsable",
			zap.String("raw", truncate(raw, 200)), zap.Error(err))
		return nil, err
	}
	logger.Get().Info("llm intent extracted",
		zap.String("query", truncate(query, 60)),
		zap.String("intent", result.Intent),
		zap.Strings("ingredients", result.Ingredients))
	return result, nil
}

// RewriteVerdict phrases a structured verdict conversationally.
func (p *OllamaProvider) RewriteVerdict(ctx context.Context, req VerdictPrompt) (string, error) {
	return p.generate(ctx, p.prompts.Compose.Rewrite.System, buildVerdictPrompt(req), 400, p.responseTimeout)
}

// ComposeGreeting phrases a greeting for the user's diet.
func (p *OllamaProvider) ComposeGreeting(ctx context.Context, dietaryPreference string) (string, error) {
	return p.generate(ctx, p.prompts.Compose.Rewrite.System, greetingPrompt(dietaryPreference), 400, p.responseTimeout)
}

// ComposeGeneral answers a general food question within guardrails.
func (p *OllamaProvider) ComposeGeneral(ctx context.Context, query, dietaryPreference string) (string, error) {
	return p.generate(ctx, p.prompts.Compose.Rewrite.System, generalPrompt(query, dietaryPreference), 400, p.responseTimeout)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
