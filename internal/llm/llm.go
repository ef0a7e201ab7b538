// Package llm provides a provider-agnostic completion interface and one
// implementation per supported LLM vendor. A Provider is resolved once from a
// Config and then used through the uniform Complete contract.
package llm

import (
	"context"
	"net/http"
	"time"
)

// Provider abstracts an LLM API behind a single completion method.
type Provider interface {
	// Complete sends a prompt to the LLM and returns the response.
	// Implementations must respect context cancellation and deadlines.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// ModelLister is implemented by providers that can enumerate the models
// available to the configured API key.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// DeltaFunc receives streamed text fragments in arrival order.
type DeltaFunc func(delta string)

// Request describes a single completion request.
type Request struct {
	// Prompt is the user message to send.
	Prompt string

	// SystemPrompt sets the system instruction for the completion.
	SystemPrompt string

	// Model overrides the provider's default model. If empty, the provider
	// uses its configured default.
	Model string

	// MaxTokens limits the response length. If zero, the provider uses its
	// own default.
	MaxTokens int

	// Temperature controls randomness. If nil, the provider uses its default.
	Temperature *float64

	// OnDelta switches the request to streaming mode. Each text fragment is
	// passed to OnDelta as it arrives; Complete still returns the full text.
	OnDelta DeltaFunc
}

// Streaming reports whether the request asks for a streamed response.
func (r Request) Streaming() bool { return r.OnDelta != nil }

// Response holds the result of a completion call.
type Response struct {
	// Content is the text returned by the model.
	Content string

	// Model is the model that actually served the request (may differ from
	// the requested model if the provider remapped it).
	Model string

	// Usage reports token consumption.
	Usage Usage
}

// Usage tracks input and output token counts for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// ModelInfo describes one model returned by ListModels.
type ModelInfo struct {
	ID          string
	DisplayName string
}

// Config selects and configures a provider. It is resolved into a Provider
// once by New.
type Config struct {
	Kind    Kind
	APIKey  string
	BaseURL string
	Model   string

	// MaxRetries is passed to the vendor SDK. Zero disables automatic retries.
	MaxRetries int

	// Timeout bounds each request when positive. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient overrides the SDK's HTTP client. Used by tests.
	HTTPClient *http.Client
}

// Option configures a provider constructor.
type Option func(*options)

type options struct {
	apiKey     string
	model      string
	baseURL    string
	maxRetries int
	timeout    time.Duration
	httpClient *http.Client
}

// WithAPIKey sets the API key. If not provided, the provider reads its
// vendor environment variables.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithModel overrides the default model for all requests.
func WithModel(model string) Option {
	return func(o *options) {
		o.model = model
	}
}

// WithBaseURL points the client at an alternate endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithMaxRetries sets the maximum number of SDK retries for transient errors.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		o.maxRetries = n
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHTTPClient replaces the HTTP client used by the SDK.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func buildOptions(defaultModel string, opts []Option) options {
	o := options{model: defaultModel}
	for _, fn := range opts {
		fn(&o)
	}
	if o.model == "" {
		o.model = defaultModel
	}
	return o
}

// withTimeout derives a bounded context when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return ctx, func() {}
}
