package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexbridge/lexbridge/internal/labels"
	"github.com/lexbridge/lexbridge/internal/lexbridge"
	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/prompt"
	"github.com/lexbridge/lexbridge/internal/redact"
)

// AnalyzeInput is the input schema for the analyze MCP tool.
type AnalyzeInput struct {
	Source   string `json:"source,omitempty" jsonschema:"Source jurisdiction the user already knows (e.g. France (Civil Law))"`
	Target   string `json:"target,omitempty" jsonschema:"Target jurisdiction to learn (e.g. United Kingdom (Common Law))"`
	Scenario string `json:"scenario,omitempty" jsonschema:"Legal scenario or concept to compare"`
	Preset   string `json:"preset,omitempty" jsonschema:"Quick-start preset id; fills any field left blank"`
	Provider string `json:"provider,omitempty" jsonschema:"Provider: gemini, openai, groq, anthropic, compatible or stub (default from config)"`
	Model    string `json:"model,omitempty" jsonschema:"Model id (default: the provider's first catalog model)"`
}

// TranslateInput is the input schema for the translate_labels MCP tool.
type TranslateInput struct {
	Language string `json:"language" jsonschema:"Target interface language (e.g. Arabic, French)"`
	Provider string `json:"provider,omitempty" jsonschema:"Provider: gemini, openai, groq, anthropic, compatible or stub (default from config)"`
	Model    string `json:"model,omitempty" jsonschema:"Model id (default: the provider's first catalog model)"`
}

// PresetsInput is the input schema for the presets MCP tool. It takes no
// arguments.
type PresetsInput struct{}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all LexBridge tools to the MCP server.
func registerTools(server *mcp.Server, h *handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze",
		Description: "Compare how two legal jurisdictions treat a scenario. Returns Markdown with the core divergence, the logic shift and the practical implication.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		},
	}, h.analyze)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "translate_labels",
		Description: "Translate the LexBridge interface labels into another language. Returns the label set as JSON with its text direction.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		},
	}, h.translateLabels)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "presets",
		Description: "List the quick-start comparison scenarios.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, h.presets)
}

type handlers struct {
	svc       *lexbridge.Service
	defaults  llm.Config
	keyLookup func(llm.Kind) string
}

func newHandlers(opts Options) *handlers {
	h := &handlers{svc: opts.Service, defaults: opts.Defaults, keyLookup: opts.KeyLookup}
	if h.svc == nil {
		h.svc = lexbridge.NewService(nil)
	}
	if h.keyLookup == nil {
		h.keyLookup = llm.KeyFromEnv
	}
	return h
}

func (h *handlers) analyze(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	in := prompt.Input{Source: input.Source, Target: input.Target, Scenario: input.Scenario}
	if id := strings.TrimSpace(input.Preset); id != "" {
		p, ok := h.svc.Preset(id)
		if !ok {
			return nil, nil, fmt.Errorf("unknown preset %q", id)
		}
		in = lexbridge.FillFromPreset(in, p)
	}

	cfg, err := ResolveProvider(input.Provider, input.Model, h.defaults, h.keyLookup)
	if err != nil {
		return nil, nil, err
	}

	res, err := h.svc.Analyze(ctx, lexbridge.AnalyzeRequest{Provider: cfg, Input: in})
	if err != nil {
		return nil, nil, h.toolError(cfg, err)
	}
	slog.Debug("mcp analyze", "provider", cfg.Kind, "model", res.Model, "duration", res.Duration)

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: res.Markdown},
		},
	}, nil, nil
}

// labelsResult is the JSON returned by translate_labels.
type labelsResult struct {
	Language  string     `json:"language"`
	Direction string     `json:"direction"`
	Labels    labels.Set `json:"labels"`
}

func (h *handlers) translateLabels(ctx context.Context, _ *mcp.CallToolRequest, input TranslateInput) (*mcp.CallToolResult, any, error) {
	cfg, err := ResolveProvider(input.Provider, input.Model, h.defaults, h.keyLookup)
	if err != nil {
		return nil, nil, err
	}

	language := strings.TrimSpace(input.Language)
	set, err := h.svc.TranslateLabels(ctx, lexbridge.TranslateRequest{Provider: cfg, Language: language})
	if err != nil {
		return nil, nil, h.toolError(cfg, err)
	}

	return jsonResult(labelsResult{
		Language:  language,
		Direction: labels.Direction(language),
		Labels:    set,
	})
}

func (h *handlers) presets(_ context.Context, _ *mcp.CallToolRequest, _ PresetsInput) (*mcp.CallToolResult, any, error) {
	return jsonResult(h.svc.AllPresets())
}

// toolError redacts err and names the environment variables to set when
// the key is missing.
func (h *handlers) toolError(cfg llm.Config, err error) error {
	if errors.Is(err, lexbridge.ErrMissingAPIKey) {
		return fmt.Errorf("%w for %s: set %s", lexbridge.ErrMissingAPIKey,
			cfg.Kind.DisplayName(), strings.Join(cfg.Kind.EnvKeys(), " or "))
	}
	return errors.New(redact.With(err.Error(), cfg.APIKey))
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}
