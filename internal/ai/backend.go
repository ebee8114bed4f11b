package ai

import (
	"context"
	"fmt"
	"time"
)

// Backend sends one prompt to a text-generation service and returns the
// completion text.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider names accepted by NewBackend.
const (
	ProviderOpenAI     = "openai"
	ProviderOpenAIChat = "openai-chat"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// BackendConfig holds the configuration needed to create a Backend.
type BackendConfig struct {
	Provider string
	APIKey   string
	Model    string

	// Endpoint overrides the provider's default URL (base URL for gemini).
	Endpoint string

	// Timeout bounds a single HTTP call. Zero means defaultTimeout.
	Timeout time.Duration

	// MockMinDelay and MockMaxDelay bound the simulated latency of the mock
	// backend.
	MockMinDelay time.Duration
	MockMaxDelay time.Duration
}

var defaultModels = map[string]string{
	ProviderOpenAI:     "gpt-3.5-turbo-instruct",
	ProviderOpenAIChat: "gpt-4o-mini",
	ProviderAnthropic:  "claude-haiku-4-5",
	ProviderGemini:     "gemini-2.5-flash",
}

// DefaultModel returns the model used for provider when none is configured.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// NewBackend creates the backend named by cfg.Provider.
func NewBackend(ctx context.Context, cfg BackendConfig) (Backend, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIBackend(cfg), nil
	case ProviderOpenAIChat:
		return NewOpenAIChatBackend(cfg), nil
	case ProviderAnthropic:
		return NewAnthropicBackend(cfg), nil
	case ProviderGemini:
		return NewGeminiBackend(ctx, cfg)
	case ProviderMock:
		return NewMockBackend(cfg.MockMinDelay, cfg.MockMaxDelay), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
