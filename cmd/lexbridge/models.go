package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/lexbridge"
	"github.com/lexbridge/lexbridge/internal/redact"
	"github.com/lexbridge/lexbridge/internal/table"
)

// modelsCmd lists the models the configured key can use.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available to your API key",
	Long: `List the models the configured provider reports for your API key.
Providers without a listing endpoint show the built-in catalog.

Examples:
  lexbridge models
  lexbridge models --provider groq`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

func runModels(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd, config.Overrides{})
	if err != nil {
		return err
	}
	svc, err := serviceFor(settings)
	if err != nil {
		return err
	}

	cfg := providerConfig(settings)
	models, err := svc.ListModels(cmd.Context(), cfg)
	switch {
	case errors.Is(err, lexbridge.ErrMissingAPIKey):
		return missingKeyError(cfg.Kind)
	case err != nil:
		return exitError(ExitTotalFailure, "lexbridge: %s", redact.With(err.Error(), cfg.APIKey))
	}

	tbl := table.New(
		table.Column{Header: "MODEL"},
		table.Column{Header: "NAME", MaxWidth: 48},
	)
	for _, m := range models {
		tbl.AddRow(m.ID, m.DisplayName)
	}
	return tbl.Render(cmd.OutOrStdout())
}
