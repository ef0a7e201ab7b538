package main

import (
	"github.com/spf13/cobra"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/table"
)

// presetsCmd lists the quick-start scenarios.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List quick-start scenarios",
	Long: `List the quick-start comparison scenarios. Use an ID with
'lexbridge analyze --preset <id>'. Set presets_file in the config to use
your own TOML catalog.`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func runPresets(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd, config.Overrides{})
	if err != nil {
		return err
	}
	svc, err := serviceFor(settings)
	if err != nil {
		return err
	}

	tbl := table.New(
		table.Column{Header: "ID"},
		table.Column{Header: "SOURCE", MaxWidth: 32},
		table.Column{Header: "TARGET", MaxWidth: 32},
		table.Column{Header: "SCENARIO", MaxWidth: 60},
	)
	for _, p := range svc.AllPresets() {
		tbl.AddRow(p.ID, p.Source, p.Target, p.Scenario)
	}
	return tbl.Render(cmd.OutOrStdout())
}
