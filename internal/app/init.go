package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/bookcase/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Long: `Write the effective settings (defaults, environment and flags such as --data)
to the config file, so they can be edited by hand.

The file goes to --config, BOOKCASE_CONFIG or ~/.config/bookcase/config.yml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ResolvePath(flagConfig)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			if err := config.Save(cfg, path); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ok("Wrote %s", color.WhiteString(path))
			fmt.Fprintf(stdout, "  Library: %s\n", cfg.Storage.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
