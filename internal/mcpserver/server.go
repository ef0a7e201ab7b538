// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexbridge/lexbridge/internal/lexbridge"
	"github.com/lexbridge/lexbridge/internal/llm"
)

// Options configures the tools.
type Options struct {
	// Service runs analyses and translations. Defaults to one backed by the
	// real providers and the built-in presets.
	Service *lexbridge.Service

	// Defaults supplies kind, model, base URL and timeout when a tool call
	// leaves them blank. Its APIKey is ignored.
	Defaults llm.Config

	// KeyLookup returns the API key for a kind. Defaults to llm.KeyFromEnv.
	KeyLookup func(llm.Kind) string
}

// New creates a new MCP server with the LexBridge tools registered.
func New(version string, opts Options) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "lexbridge",
		Title:   "LexBridge: Comparative Law Delta Learning",
		Version: version,
	}, nil)

	registerTools(server, newHandlers(opts))
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, opts Options, transport mcp.Transport) error {
	server := New(version, opts)
	return server.Run(ctx, transport)
}
