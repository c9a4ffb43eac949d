package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/cbsetutor/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped as
// timeout, retry, logging, base. eventRepo may be nil to skip event logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, cfg.Provider, eventRepo)
	return WithTimeout(WithRetry(p, cfg.Retry), cfg.Timeout), nil
}

// NewProviderFromEnv builds a Provider from CBSETUTOR_* variables, or from
// the vendors' standard key variables when no provider is selected.
// It returns ErrNotConfigured when neither yields credentials.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg, explicit := ConfigFromEnv()
	if !explicit || cfg.Validate() != nil {
		if discovered, ok := DiscoverConfig(); ok {
			cfg = discovered
		} else if !explicit {
			return nil, ErrNotConfigured
		}
	}
	return NewProvider(ctx, cfg, eventRepo)
}
