package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [toggle]",
		Short: "Show or toggle the light/dark theme",
		Long: `Show the current theme, or switch between light and dark with 'toggle'.
The theme is used by the browser and by 'bookcase index'.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(stdout, themeName(store.Dark()))
				return nil
			}

			if _, err := store.ToggleTheme(); err != nil {
				return err
			}
			ok("Theme: %s", color.WhiteString(themeName(store.Dark())))
			return nil
		},
	}

	return cmd
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
