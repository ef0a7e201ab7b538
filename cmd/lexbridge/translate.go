package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/labels"
	"github.com/lexbridge/lexbridge/internal/lexbridge"
	"github.com/lexbridge/lexbridge/internal/redact"
)

// Translate command flags.
var translateRTL bool

// translateCmd translates the interface labels.
var translateCmd = &cobra.Command{
	Use:   "translate [language]",
	Short: "Translate the interface labels",
	Long: `Translate the interface labels into another language and print them as
JSON. The language defaults to interface_language from the config file.

A response that does not parse, or that adds, drops or empties a label, is
rejected and nothing is printed.

Examples:
  lexbridge translate French
  lexbridge translate Arabic --rtl
  lexbridge translate Japanese --provider stub`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().BoolVar(&translateRTL, "rtl", false, "report the text direction of the language on stderr")
}

// resetTranslateFlags resets translate command flags for testing.
func resetTranslateFlags() {
	translateRTL = false
	if f := translateCmd.Flags().Lookup("rtl"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
}

func runTranslate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, config.Overrides{})
	if err != nil {
		return err
	}
	svc, err := serviceFor(settings)
	if err != nil {
		return err
	}

	language := settings.InterfaceLanguage
	if len(args) == 1 {
		language = args[0]
	}
	language = strings.TrimSpace(language)
	if strings.EqualFold(language, labels.DefaultLanguage) {
		return printLabels(cmd, labels.Default(), language)
	}

	cfg := providerConfig(settings)
	set, err := svc.TranslateLabels(cmd.Context(), lexbridge.TranslateRequest{Provider: cfg, Language: language})
	switch {
	case errors.Is(err, lexbridge.ErrMissingAPIKey):
		return missingKeyError(cfg.Kind)
	case errors.Is(err, lexbridge.ErrMissingLanguage):
		return exitError(ExitInvalidArgs, "lexbridge: %v", err)
	case err != nil:
		return exitError(ExitTotalFailure, "lexbridge: %s", redact.With(err.Error(), cfg.APIKey))
	}
	return printLabels(cmd, set, language)
}

func printLabels(cmd *cobra.Command, set labels.Set, language string) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	if translateRTL {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", language, labels.Direction(language))
	}
	return nil
}
