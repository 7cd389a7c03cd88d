package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/bookcase/internal/library"
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every book and saved preference",
		Long: `Delete every book, the saved sort order and the theme. The config file and
the cover cache are not touched ('bookcase covers --prune' clears covers).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipConfirm {
				if !interactive() {
					return errors.New("reset deletes the whole library; pass --yes to confirm")
				}
				if !confirm(fmt.Sprintf("Delete all books (%d) and saved preferences?", store.Len())) {
					fmt.Fprintln(stdout, "Canceled.")
					return nil
				}
			}

			if err := store.Reset(); err != nil {
				return err
			}
			ok("Library reset")
			fmt.Fprintln(stdout, library.EmptyNote)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
