package app

import (
	"time"

	"github.com/blackwell-systems/bookcase/internal/config"
	"github.com/blackwell-systems/bookcase/internal/readme"
	"github.com/spf13/cobra"
)

func newReadmeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "readme",
		Short: "Write a Markdown summary of your library",
		Long: `Create or refresh a README.md with library stats, recently added books and
a table of every book in the saved sort order.

Only the Quick Stats, Recently Added and Books sections are rewritten; anything
else in the file is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.Readme.Path
			if output != "" {
				path = config.ExpandHome(output)
			}

			created, err := readme.UpdateFile(path, store.Books(), store.SortOrder(), time.Now())
			if err != nil {
				return err
			}
			if created {
				ok("Created %s", path)
			} else {
				ok("Updated %s", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: readme.path from config)")

	return cmd
}
