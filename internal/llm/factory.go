package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/learnpad/internal/store"
)

// NewProvider builds the configured provider. Calls pass through retry, then
// the recorder (when calls is non-nil), then the backend, so every attempt
// is logged.
func NewProvider(ctx context.Context, cfg Config, calls store.LLMCallRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	ep := cfg.Endpoint()
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(ep)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(ep)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(ep)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, ep)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if calls != nil {
		base = WithRecorder(base, calls)
	}
	return WithRetry(base, cfg.Retry), nil
}
