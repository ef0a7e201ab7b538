package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/lexbridge"
	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/presets"
)

// newService builds the service used by commands. Tests swap it to inject a
// mock provider.
var newService = func(catalog *presets.Catalog) *lexbridge.Service {
	return lexbridge.NewService(catalog)
}

// keyLookup resolves provider keys. Tests swap it to avoid reading the
// developer's environment.
var keyLookup = llm.KeyFromEnv

// loadSettings merges the global and repo config files with the global
// flags. Any problem is an invalid-arguments exit.
func loadSettings(cmd *cobra.Command, extra config.Overrides) (config.Settings, error) {
	cfg, err := config.LoadAll(".")
	if err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "lexbridge: %v", err)
	}

	o := extra
	o.Provider = flagProvider
	o.Model = flagModel
	o.BaseURL = flagBaseURL
	if cmd.Flags().Changed("log-format") {
		o.LogFormat = logFormat
	}

	s, err := config.Resolve(cfg, o)
	if err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "lexbridge: %v", err)
	}
	return s, nil
}

// serviceFor loads the preset catalog named in s and builds the service.
func serviceFor(s config.Settings) (*lexbridge.Service, error) {
	catalog := presets.Default()
	if s.PresetsFile != "" {
		c, err := presets.Load(s.PresetsFile)
		if err != nil {
			return nil, exitError(ExitInvalidArgs, "lexbridge: %v", err)
		}
		catalog = c
	}
	return newService(catalog), nil
}

// providerConfig returns the provider configuration for s with the key from
// the environment.
func providerConfig(s config.Settings) llm.Config {
	return s.LLMConfig(keyLookup(s.Provider))
}

// missingKeyError names the environment variables to set for kind.
func missingKeyError(kind llm.Kind) error {
	return exitError(ExitInvalidArgs, "lexbridge: missing API key for %s: set %s",
		kind.DisplayName(), strings.Join(kind.EnvKeys(), " or "))
}
