package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Prompts *Prompts `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Data files.
	OntologyPath        string `env:"ONTOLOGY_PATH" envDefault:"data/ontology.json"`
	DynamicOntologyPath string `env:"DYNAMIC_ONTOLOGY_PATH" envDefault:"data/dynamic_ontology.json"`
	RestrictionsPath    string `env:"RESTRICTIONS_PATH" envDefault:"data/restrictions.json"`
	UnknownLogPath      string `env:"UNKNOWN_LOG_PATH" envDefault:"data/unknown_ingredients_log.json"`
	ProfilesPath        string `env:"PROFILES_PATH" envDefault:"data/profiles.json"`

	// External food databases.
	USDAFDCAPIKey        string `env:"USDA_FDC_API_KEY" optional:"true"`
	OpenFoodFactsEnabled bool   `env:"OPEN_FOOD_FACTS_ENABLED" envDefault:"true" optional:"true"`

	// LLM providers. Ollama is the primary; hosted providers are used
	// only when their keys are set.
	OllamaAPIURL       string        `env:"OLLAMA_API_URL" envDefault:"http://localhost:11434"`
	OllamaModel        string        `env:"OLLAMA_MODEL" envDefault:"llama3.1:8b"`
	LLMIntentTimeout   time.Duration `env:"LLM_INTENT_TIMEOUT" envDefault:"8s"`
	LLMResponseTimeout time.Duration `env:"LLM_RESPONSE_TIMEOUT" envDefault:"15s"`
	OpenAIAPIKey       string        `env:"OPENAI_API_KEY" optional:"true"`
	AnthropicAPIKey    string        `env:"ANTHROPIC_API_KEY" optional:"true"`

	// Engine rollout flags.
	UseNewEngine bool `env:"USE_NEW_ENGINE" envDefault:"true" optional:"true"`
	ShadowMode   bool `env:"SHADOW_MODE" envDefault:"false" optional:"true"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			return fmt.Errorf("$%s must be set", fieldType.Name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}
