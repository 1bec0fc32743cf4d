package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPromptsYAML = `
intent:
  extract:
    system: "Extract structured intent as JSON."
    user: "Message: {{.Query}}"
compose:
  rewrite:
    system: "Rewrite the verdict without changing safety judgements."
`

func TestLoadPrompts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte(testPromptsYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	prompts, err := LoadPrompts(path)
	if err != nil {
		t.Fatalf("LoadPrompts: %v", err)
	}
	if prompts.Intent.Extract.System == "" {
		t.Error("intent extract system prompt missing")
	}
	if !strings.Contains(prompts.Intent.Extract.User, "{{.Query}}") {
		t.Errorf("expected template placeholder, got %q", prompts.Intent.Extract.User)
	}
	if prompts.Compose.Rewrite.System == "" {
		t.Error("compose rewrite system prompt missing")
	}
}

func TestLoadPromptsMissingFile(t *testing.T) {
	if _, err := LoadPrompts(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRenderPrompt(t *testing.T) {
	out, err := RenderPrompt("Message: {{.Query}}", map[string]interface{}{"Query": "is honey vegan"})
	if err != nil {
		t.Fatalf("RenderPrompt: %v", err)
	}
	if out != "Message: is honey vegan" {
		t.Errorf("unexpected render: %q", out)
	}
}

func TestRenderPromptBadTemplate(t *testing.T) {
	if _, err := RenderPrompt("{{.Query", nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.EnvVars.Port == "" {
		t.Error("expected default port")
	}
	if cfg.EnvVars.OntologyPath == "" || cfg.EnvVars.RestrictionsPath == "" {
		t.Error("expected default data paths")
	}
	if err := cfg.CheckConfigEnvFields(); err != nil {
		t.Errorf("defaults should satisfy required fields: %v", err)
	}
}
