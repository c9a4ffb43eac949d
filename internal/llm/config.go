package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// ErrNotConfigured is returned when no provider credentials can be found.
var ErrNotConfigured = errors.New("no LLM provider configured")

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend to use; see the Provider* constants.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible APIs
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with the cheapest capable model per backend.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
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
		Timeout: 30 * time.Second,
	}
}

// envOverrides maps CBSETUTOR_* variables onto Config fields.
func envOverrides(cfg *Config) []struct {
	name string
	dst  *string
} {
	return []struct {
		name string
		dst  *string
	}{
		{"CBSETUTOR_LLM_PROVIDER", &cfg.Provider},
		{"CBSETUTOR_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"CBSETUTOR_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"CBSETUTOR_OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"CBSETUTOR_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"CBSETUTOR_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"CBSETUTOR_GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"CBSETUTOR_GEMINI_MODEL", &cfg.Gemini.Model},
		{"CBSETUTOR_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
		{"CBSETUTOR_OPENROUTER_MODEL", &cfg.OpenRouter.Model},
	}
}

// ConfigFromEnv builds a Config from CBSETUTOR_* variables, falling back
// to defaults for unset values. The second result reports whether
// CBSETUTOR_LLM_PROVIDER was set.
func ConfigFromEnv() (Config, bool) {
	cfg := DefaultConfig()
	for _, o := range envOverrides(&cfg) {
		if v := os.Getenv(o.name); v != "" {
			*o.dst = v
		}
	}
	return cfg, os.Getenv("CBSETUTOR_LLM_PROVIDER") != ""
}

// DiscoverConfig probes the vendors' standard API key variables in priority
// order (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	probes := []struct {
		env      string
		provider string
		dst      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.dst = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has credentials.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s API key is required", c.Provider)
	}
	return nil
}
