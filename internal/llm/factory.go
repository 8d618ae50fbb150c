package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/teenquiz/internal/store"
	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration, wrapped with the
// event-logging middleware. There is deliberately no retry middleware:
// a failed backend call yields a failed result for that request, and
// re-issuing is the caller's decision.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, events, log), nil
}
