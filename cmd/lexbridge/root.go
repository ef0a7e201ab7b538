package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	lexlog "github.com/lexbridge/lexbridge/internal/log"
)

// Global flag values.
var (
	verbose      bool
	quiet        bool
	noColor      bool
	logFormat    string
	flagProvider string
	flagModel    string
	flagBaseURL  string
)

// rootCmd is the base command for lexbridge.
var rootCmd = &cobra.Command{
	Use:   "lexbridge",
	Short: "Compare legal systems through Delta Learning",
	Long: `LexBridge explains a legal scenario in a target jurisdiction by contrast
with a source jurisdiction the reader already knows. It focuses on what
changes: the core divergence, the logic behind it and its practical effect.

Provider keys are read from the environment (or a .env file):
GEMINI_API_KEY / GOOGLE_API_KEY, OPENAI_API_KEY, GROQ_API_KEY,
ANTHROPIC_API_KEY and LEXBRIDGE_API_KEY for OpenAI-compatible endpoints.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
		lexlog.Setup(lexlog.Options{Verbose: verbose, Quiet: quiet, Format: logFormat})
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.StringVar(&logFormat, "log-format", "", "log format: text or json (default from config, else text)")
	pf.StringVarP(&flagProvider, "provider", "p", "", "LLM provider: gemini, openai, groq, anthropic, compatible, stub")
	pf.StringVarP(&flagModel, "model", "m", "", "model id (default: the provider's first catalog model)")
	pf.StringVar(&flagBaseURL, "base-url", "", "endpoint for the compatible provider (e.g. http://localhost:11434/v1/)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

// resetGlobalFlags resets persistent flags for testing.
func resetGlobalFlags() {
	verbose, quiet, noColor = false, false, false
	logFormat, flagProvider, flagModel, flagBaseURL = "", "", "", ""
	for _, name := range []string{"verbose", "quiet", "no-color", "log-format", "provider", "model", "base-url"} {
		if f := rootCmd.PersistentFlags().Lookup(name); f != nil {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
}
