package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names.
const (
	ProviderNone       = "none"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds the LLM provider configuration.
type Config struct {
	// Provider selects the backend. "" and "none" disable generation.
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single request including retries.
	Timeout time.Duration `yaml:"timeout"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns an unselected configuration with per-provider model
// defaults filled in.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// ApplyEnv overrides c from PREPDECK_* environment variables. lookup is
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	vars := []struct {
		name string
		dst  *string
	}{
		{"PREPDECK_LLM_PROVIDER", &c.Provider},
		{"PREPDECK_ANTHROPIC_API_KEY", &c.Anthropic.APIKey},
		{"PREPDECK_ANTHROPIC_MODEL", &c.Anthropic.Model},
		{"PREPDECK_OPENAI_API_KEY", &c.OpenAI.APIKey},
		{"PREPDECK_OPENAI_MODEL", &c.OpenAI.Model},
		{"PREPDECK_OPENAI_BASE_URL", &c.OpenAI.BaseURL},
		{"PREPDECK_GEMINI_API_KEY", &c.Gemini.APIKey},
		{"PREPDECK_GEMINI_MODEL", &c.Gemini.Model},
		{"PREPDECK_OPENROUTER_API_KEY", &c.OpenRouter.APIKey},
		{"PREPDECK_OPENROUTER_MODEL", &c.OpenRouter.Model},
	}
	for _, v := range vars {
		if val, ok := lookup(v.name); ok && val != "" {
			*v.dst = val
		}
	}
}

// ConfigFromEnv returns the defaults overridden by the environment.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// Discover selects the first provider whose conventional API key variable
// is set, in the order Gemini, OpenAI, Anthropic, OpenRouter. It reports
// false when none is found.
func (c *Config) Discover(lookup func(string) (string, bool)) bool {
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k, ok := lookup(p.env); ok && k != "" {
			c.Provider = p.provider
			*p.key = k
			return true
		}
	}
	return false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "", ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "PREPDECK_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "PREPDECK_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "PREPDECK_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "PREPDECK_OPENROUTER_API_KEY"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
