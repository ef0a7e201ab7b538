// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running lexbridge as an MCP server, exposing analysis and label translation to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing lexbridge's tools:
  - analyze:          Compare how two jurisdictions treat a scenario
  - translate_labels: Translate the interface labels into another language
  - presets:          List the quick-start scenarios

Provider, model and endpoint defaults come from the config files and the
global flags. API keys are read from the environment only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings(cmd, config.Overrides{})
		if err != nil {
			return err
		}
		svc, err := serviceFor(settings)
		if err != nil {
			return err
		}
		return mcpserver.Run(cmdContext(cmd), Version, mcpserver.Options{
			Service:   svc,
			Defaults:  settings.LLMConfig(""),
			KeyLookup: keyLookup,
		}, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
