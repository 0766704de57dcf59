package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderCohere    = "cohere"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var (
	ErrUnknownProvider = errors.New("unknown LLM provider")
	ErrMissingAPIKey   = errors.New("missing LLM API key")
)

type GenerateParams struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type ContentBlock struct {
	Content string
}

// GenerateResponse carries generated text in one of two shapes. Providers
// with structured replies fill Output, flat-text providers fill Text.
type GenerateResponse struct {
	Output []ContentBlock
	Text   string
}

type Client interface {
	Generate(ctx context.Context, params GenerateParams) (*GenerateResponse, error)
	Name() string
}

type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
}

func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w for provider %q", ErrMissingAPIKey, cfg.Provider)
	}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderCohere:
		return NewCohereClient(cfg.APIKey, cfg.BaseURL), nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL), nil
	case ProviderAnthropic:
		return NewAnthropicClient(cfg.APIKey, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch strings.ToLower(provider) {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-haiku-4-5"
	default:
		return "command-r-plus-08-2024"
	}
}
