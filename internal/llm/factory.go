package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abhisek/prepdeck/internal/monitor"
	"github.com/abhisek/prepdeck/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → base. It returns nil when generation is
// disabled.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, metrics *monitor.Metrics, log zerolog.Logger) (Provider, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
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
		m := NewMockProvider()
		m.Fallback = plainReply
		base = m
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, events, metrics, log)
	return WithRetry(logged, cfg.Retry), nil
}
