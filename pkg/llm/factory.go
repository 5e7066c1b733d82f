package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/helmcode/symptomai/pkg/config"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

const defaultTimeout = 60 * time.Second

// Options configures a provider client. BaseURL is only set to point a
// client at a proxy or a test server.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func (o Options) withDefaults(model string) Options {
	if o.Model == "" {
		o.Model = model
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	o.BaseURL = strings.TrimSuffix(o.BaseURL, "/")
	return o
}

// Factory creates LLM instances based on provider
type Factory struct{}

// NewFactory creates a new LLM factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateLLM creates an LLM instance based on provider and options
func (f *Factory) CreateLLM(ctx context.Context, provider Provider, opts Options) (LLM, error) {
	switch provider {
	case ProviderGemini:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY)")
		}
		return NewGemini(ctx, opts)

	case ProviderClaude:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("Claude API key is required (set ANTHROPIC_API_KEY)")
		}
		return NewClaude(opts), nil

	case ProviderOpenAI:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY)")
		}
		return NewOpenAI(opts), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: gemini, claude, openai)", provider)
	}
}

// GetAvailableProviders returns a list of available LLM providers
func (f *Factory) GetAvailableProviders() []Provider {
	return []Provider{ProviderGemini, ProviderClaude, ProviderOpenAI}
}

// CreateFromConfig creates the LLM selected by the loaded configuration.
func CreateFromConfig(ctx context.Context, cfg config.LLMConfig) (LLM, error) {
	provider := Provider(strings.ToLower(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}
	cfg.Provider = string(provider)
	return NewFactory().CreateLLM(ctx, provider, Options{
		APIKey:  cfg.APIKey(),
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
}
