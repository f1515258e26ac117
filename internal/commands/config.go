package commands

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command
func NewConfigCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration regchat runs with, after environment variables
and flags are applied, followed by the file it was read from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.effectiveConfig(opts)
			if err != nil {
				return err
			}

			source := cfg.Source
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(deps.Stdout, "# source: %s\n", source)
			return toml.NewEncoder(deps.Stdout).Encode(cfg)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open configuration menu",
		Long:  `Interactive menu to configure regchat settings.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadStoredConfig()
			if err != nil {
				fmt.Fprintf(deps.Stderr, "Warning: %v (using defaults)\n", err)
			}
			return deps.TUI.RunConfig(cfg)
		},
	})
	return cmd
}
