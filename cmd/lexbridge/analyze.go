package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/lexbridge"
	"github.com/lexbridge/lexbridge/internal/prompt"
	"github.com/lexbridge/lexbridge/internal/redact"
)

// Analyze command flags.
var (
	analyzeSource   string
	analyzeTarget   string
	analyzeScenario string
	analyzePreset   string
	analyzeStream   bool
)

// analyzeCmd runs one comparison and prints the Markdown answer.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare how two jurisdictions treat a scenario",
	Long: `Send one Delta Learning comparison to the configured provider and print
the Markdown answer to stdout.

A preset fills any of --source, --target and --scenario left blank.

Examples:
  lexbridge analyze --preset good-faith
  lexbridge analyze --source "Germany (BGB)" --target "Japan" --scenario "Non-compete clauses"
  lexbridge analyze --preset data-privacy --provider openai --stream`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSource, "source", "", "source jurisdiction you already know")
	analyzeCmd.Flags().StringVar(&analyzeTarget, "target", "", "target jurisdiction to learn")
	analyzeCmd.Flags().StringVar(&analyzeScenario, "scenario", "", "legal scenario or concept")
	analyzeCmd.Flags().StringVar(&analyzePreset, "preset", "", "quick-start preset id (see 'lexbridge presets')")
	analyzeCmd.Flags().BoolVar(&analyzeStream, "stream", false, "print the answer as it arrives (default from config)")
}

// resetAnalyzeFlags resets analyze command flags for testing.
func resetAnalyzeFlags() {
	analyzeSource, analyzeTarget, analyzeScenario, analyzePreset = "", "", "", ""
	analyzeStream = false
	analyzeCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	var o config.Overrides
	if cmd.Flags().Changed("stream") {
		o.Stream = &analyzeStream
	}
	settings, err := loadSettings(cmd, o)
	if err != nil {
		return err
	}
	svc, err := serviceFor(settings)
	if err != nil {
		return err
	}

	in := prompt.Input{Source: analyzeSource, Target: analyzeTarget, Scenario: analyzeScenario}
	if analyzePreset != "" {
		p, ok := svc.Preset(analyzePreset)
		if !ok {
			return exitError(ExitInvalidArgs, "lexbridge: unknown preset %q (see 'lexbridge presets')", analyzePreset)
		}
		in = lexbridge.FillFromPreset(in, p)
	}

	w := cmd.OutOrStdout()
	cfg := providerConfig(settings)
	req := lexbridge.AnalyzeRequest{Provider: cfg, Input: in}
	if settings.Stream {
		req.OnDelta = func(delta string) { _, _ = fmt.Fprint(w, delta) }
	}

	res, err := svc.Analyze(cmd.Context(), req)
	switch {
	case errors.Is(err, lexbridge.ErrMissingAPIKey):
		return missingKeyError(cfg.Kind)
	case errors.Is(err, lexbridge.ErrMissingScenario):
		return exitError(ExitInvalidArgs, "lexbridge: %v (use --scenario or --preset)", err)
	case err != nil:
		return exitError(ExitTotalFailure, "lexbridge: %s", redact.With(err.Error(), cfg.APIKey))
	}

	if settings.Stream {
		if !strings.HasSuffix(res.Markdown, "\n") {
			_, _ = fmt.Fprintln(w)
		}
		return nil
	}
	_, _ = fmt.Fprint(w, res.Markdown)
	if !strings.HasSuffix(res.Markdown, "\n") {
		_, _ = fmt.Fprintln(w)
	}
	return nil
}
