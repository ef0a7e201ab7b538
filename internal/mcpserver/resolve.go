// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes LexBridge's analysis and label translation as tools over
// stdio transport.
package mcpserver

import (
	"fmt"
	"strings"

	"github.com/lexbridge/lexbridge/internal/llm"
)

// ResolveProvider builds the provider configuration for one tool call.
// Blank provider and model fall back to defaults. Choosing a different
// provider drops the default model and base URL. The API key always comes
// from lookup, never from tool input.
func ResolveProvider(provider, model string, defaults llm.Config, lookup func(llm.Kind) string) (llm.Config, error) {
	cfg := defaults
	cfg.APIKey = ""
	if !cfg.Kind.Valid() {
		cfg.Kind = llm.KindGemini
	}

	if p := strings.TrimSpace(provider); p != "" {
		kind, err := llm.ParseKind(p)
		if err != nil {
			return llm.Config{}, fmt.Errorf("cannot resolve provider: %w", err)
		}
		if kind != cfg.Kind {
			cfg.Kind = kind
			cfg.Model = ""
			cfg.BaseURL = ""
		}
	}

	if m := strings.TrimSpace(model); m != "" {
		cfg.Model = m
	}
	if cfg.Model == "" {
		cfg.Model = cfg.Kind.DefaultModel()
	}

	if lookup != nil {
		cfg.APIKey = lookup(cfg.Kind)
	}
	return cfg, nil
}
