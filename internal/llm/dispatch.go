package llm

import (
	"errors"
	"fmt"
)

// ErrBaseURLRequired is returned when an OpenAI-compatible provider has no
// endpoint configured.
var ErrBaseURLRequired = errors.New("llm: base URL required for OpenAI-compatible provider")

// New resolves cfg into a concrete Provider. The variant is chosen once here;
// callers only ever see the Provider interface.
func New(cfg Config) (Provider, error) {
	opts := []Option{
		WithAPIKey(cfg.APIKey),
		WithModel(cfg.Model),
		WithMaxRetries(cfg.MaxRetries),
		WithTimeout(cfg.Timeout),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, WithHTTPClient(cfg.HTTPClient))
	}

	switch cfg.Kind {
	case KindGemini:
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		return NewGeminiProvider(opts...)
	case KindOpenAI:
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		return NewOpenAIProvider(KindOpenAI, opts...)
	case KindGroq:
		base := GroqBaseURL
		if cfg.BaseURL != "" {
			base = cfg.BaseURL
		}
		return NewOpenAIProvider(KindGroq, append(opts, WithBaseURL(base))...)
	case KindCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrBaseURLRequired
		}
		return NewOpenAIProvider(KindCompatible, append(opts, WithBaseURL(cfg.BaseURL))...)
	case KindAnthropic:
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		return NewAnthropicProvider(opts...)
	case KindStub:
		return NewStubProvider(WithModel(cfg.Model)), nil
	default:
		return nil, fmt.Errorf("llm: unsupported provider kind %q", cfg.Kind)
	}
}
