package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/table"
)

// Config command flags.
var configGlobal bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change provider, model and server defaults",
	Long: `Show or change the defaults LexBridge uses when a flag is not given.

Two YAML files are read:
  .lexbridge.yaml                     in the working directory
  $XDG_CONFIG_HOME/lexbridge/config.yaml  shared by every directory

A value in .lexbridge.yaml beats the shared file, and --provider, --model
and --base-url beat both. Naming a different provider on a higher layer
discards the model and base_url chosen for the old one.

Keys:
  provider, model, base_url        which LLM answers analyze and translate
  interface_language               default target of 'lexbridge translate'
                                   and of the web translate form
  stream, request_timeout          how a completion is requested
  presets_file                     TOML file replacing the built-in presets
  server.addr, server.rate_limit_per_minute,
  server.session_ttl, server.log_format   settings for 'lexbridge serve'

API keys never go in these files. Export GEMINI_API_KEY, OPENAI_API_KEY,
GROQ_API_KEY, ANTHROPIC_API_KEY or LEXBRIDGE_API_KEY, or put them in .env.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value LexBridge will use for a key",
	Long: `Print the value of a dot-separated key after merging both files.
A section such as "server" prints as YAML. With --global only the shared
file is read.

Examples:
  lexbridge config get provider
  lexbridge config get server.addr
  lexbridge config get server
  lexbridge config get --global model`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a default in .lexbridge.yaml or the shared file",
	Long: `Store a value and check the resulting file before writing it. An
unknown provider, a compatible provider without base_url or a malformed
duration leaves the file untouched.

true/false become booleans and digits become numbers. Anything else is
kept as text. The file is rewritten, so comments in it are lost.

Examples:
  lexbridge config set provider groq
  lexbridge config set model llama-3.3-70b-versatile
  lexbridge config set interface_language Arabic
  lexbridge config set server.rate_limit_per_minute 60
  lexbridge config set --global provider anthropic`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every stored default and the file it comes from",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "read only the shared config file")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write the shared config file instead of .lexbridge.yaml")

	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)
}

// resetConfigFlags resets config command flags for testing.
func resetConfigFlags() {
	configGlobal = false
	for _, c := range []*cobra.Command{configGetCmd, configSetCmd} {
		if f := c.Flags().Lookup("global"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	load := func() (*config.Config, error) { return config.LoadAll(".") }
	if configGlobal {
		load = config.LoadGlobal
	}
	cfg, err := load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	val, err := config.GetValue(cfg, args[0])
	if err != nil {
		return err
	}
	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath, rawValue := args[0], args[1]
	if err := config.ValidateKeyPath(keyPath); err != nil {
		return err
	}

	path := filepath.Join(".", config.FileName)
	if configGlobal {
		path = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return fmt.Errorf("setting %s: %w", keyPath, err)
	}
	if err := checkRaw(data); err != nil {
		return err
	}
	if err := config.WriteFile(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, rawValue)
	return nil
}

// checkRaw decodes an edited file into Config and validates it.
func checkRaw(data map[string]any) error {
	encoded, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(encoded, &cfg); err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	return config.Validate(&cfg)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	repoCfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading %s: %w", config.FileName, err)
	}

	// Later layers overwrite earlier ones.
	type origin struct {
		value  any
		source string
	}
	values := make(map[string]origin)
	for _, layer := range []struct {
		cfg    *config.Config
		source string
	}{{globalCfg, "(global)"}, {repoCfg, "(repo)"}} {
		flat, err := flatten(layer.cfg)
		if err != nil {
			return err
		}
		for k, v := range flat {
			values[k] = origin{value: v, source: layer.source}
		}
	}

	if len(values) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Built-in defaults apply; try 'lexbridge config set provider groq'.")
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tbl := table.New(
		table.Column{Header: "KEY"},
		table.Column{Header: "VALUE", MaxWidth: 60},
		table.Column{Header: "SOURCE", Color: table.ColorSource},
	)
	for _, k := range keys {
		o := values[k]
		tbl.AddRow(k, fmt.Sprint(o.value), o.source)
	}
	return tbl.Render(w)
}

// printValue prints scalars as text and sections as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

// flatten converts a Config to dot-notation keys, omitting zero values.
func flatten(cfg *config.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return config.FlattenMap(m, ""), nil
}
