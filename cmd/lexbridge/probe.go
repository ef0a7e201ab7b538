package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/lexbridge"
	"github.com/lexbridge/lexbridge/internal/redact"
	"github.com/lexbridge/lexbridge/internal/table"
)

// probeCmd checks a key against one or more models.
var probeCmd = &cobra.Command{
	Use:   "probe [model...]",
	Short: "Check which models answer with your API key",
	Long: `Send a minimal prompt to each model and report which ones answer.
With no models, the provider's built-in catalog is probed.

Exit codes: 0 when every model answers, 2 when some fail, 3 when all fail.

Examples:
  lexbridge probe
  lexbridge probe gemini-1.5-flash gemini-2.0-flash
  lexbridge probe --provider openai gpt-4o-mini`,
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, config.Overrides{})
	if err != nil {
		return err
	}
	svc, err := serviceFor(settings)
	if err != nil {
		return err
	}

	cfg := providerConfig(settings)
	if cfg.APIKey != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), table.Title(fmt.Sprintf("Probing %s with key %s", cfg.Kind.DisplayName(), redact.Key(cfg.APIKey))))
	}
	results, err := svc.Probe(cmd.Context(), cfg, args)
	switch {
	case errors.Is(err, lexbridge.ErrMissingAPIKey):
		return missingKeyError(cfg.Kind)
	case err != nil:
		return exitError(ExitInvalidArgs, "lexbridge: %s", redact.With(err.Error(), cfg.APIKey))
	}

	tbl := table.New(
		table.Column{Header: "MODEL"},
		table.Column{Header: "STATUS", Color: table.ColorStatus},
		table.Column{Header: "TIME", Align: table.AlignRight},
		table.Column{Header: "DETAIL", MaxWidth: 60},
	)
	failed := 0
	for _, r := range results {
		status, detail := "OK", r.Reply
		if !r.OK() {
			failed++
			status, detail = "FAIL", redact.With(r.Err.Error(), cfg.APIKey)
		}
		tbl.AddRow(r.Model, status, fmt.Sprintf("%.1fs", r.Duration.Seconds()), detail)
	}
	if err := tbl.Render(cmd.OutOrStdout()); err != nil {
		return err
	}

	switch {
	case failed == len(results):
		return exitError(ExitTotalFailure, "lexbridge: all %d models failed", failed)
	case failed > 0:
		return exitError(ExitPartialFailure, "lexbridge: %d of %d models failed", failed, len(results))
	}
	return nil
}
