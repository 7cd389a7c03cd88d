package app

import (
	"fmt"
	"path/filepath"

	"github.com/blackwell-systems/bookcase/internal/cache"
	"github.com/blackwell-systems/bookcase/internal/config"
	"github.com/blackwell-systems/bookcase/internal/export"
	"github.com/blackwell-systems/bookcase/internal/util"
	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	var (
		flagOpen bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Generate an HTML page of your library",
		Long: `Generate an index.html that shows your library as a grid of book cards,
in the saved sort order and theme. Open it in any web browser.

Covers downloaded with 'bookcase covers' are used instead of their URLs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.Index.Path
			if output != "" {
				path = config.ExpandHome(output)
			}

			covers := cache.New(cfg.Covers.Dir)
			err := export.WriteFile(path, export.Page{
				Books:       store.Projection(),
				Theme:       store.Theme(),
				Placeholder: cfg.Display.EffectivePlaceholder(),
				SortOrder:   store.SortOrder(),
				Covers:      localCovers(covers, filepath.Dir(path)),
			})
			if err != nil {
				return err
			}

			ok("Wrote %s (%d books)", path, store.Len())

			if flagOpen {
				if err := util.OpenInBrowser(path); err != nil {
					warn("Could not open browser: %v", err)
					fmt.Fprintf(stdout, "  Open manually: file://%s\n", path)
				}
			} else {
				fmt.Fprintf(stdout, "  Open in browser: file://%s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagOpen, "open", false, "Open the page in your default browser")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this path instead of index.path")

	return cmd
}
