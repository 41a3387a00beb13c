package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/studypal/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// request-logging middleware. st may be nil, in which case no request log
// is written.
func NewProvider(ctx context.Context, cfg Config, st *store.Store) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Middleware order: caller → retry → logging → base, so every real
	// attempt gets its own log row.
	logged := WithLogging(base, st)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from STUDYPAL_* env config, falling
// back to probing the standard API key variables.
func NewProviderFromEnv(ctx context.Context, st *store.Store) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, st)
}
