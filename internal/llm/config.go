package llm

import (
	"fmt"
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

// Endpoint is the connection detail for one provider.
type Endpoint struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config selects and configures the LLM backend.
type Config struct {
	Provider  string
	Endpoints map[string]Endpoint
	Retry     RetryPolicy

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// RetryPolicy configures exponential backoff for transient failures.
type RetryPolicy struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the built-in defaults: Anthropic with the small
// model, three attempts, 30s timeout.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderAnthropic,
		Endpoints: map[string]Endpoint{
			ProviderAnthropic:  {Model: "claude-haiku"},
			ProviderOpenAI:     {Model: "gpt-4o-mini"},
			ProviderGemini:     {Model: "gemini-flash"},
			ProviderOpenRouter: {Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		},
		Retry: RetryPolicy{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// Endpoint returns the endpoint for the selected provider.
func (c Config) Endpoint() Endpoint {
	return c.Endpoints[c.Provider]
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Endpoint().APIKey == "" {
			return fmt.Errorf("llm.%s.api_key is required for the %s provider", c.Provider, c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
