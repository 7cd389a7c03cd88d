package app

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toggle [id|title]",
		Aliases: []string{"read"},
		Short:   "Flip a book between read and not read",
		Long: `Flip a book between read and not read.

Examples:
  bookcase toggle 3f2a
  bookcase read "Dune"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) > 0 {
				ref = args[0]
			}
			target, err := resolveBook(ref, "Toggle which book?")
			if err != nil {
				return err
			}

			b, err := store.ToggleRead(target.ID)
			if err != nil {
				return err
			}

			ok("%s is now %s", color.WhiteString(b.Title), statusText(b))
			return nil
		},
	}

	cmd.ValidArgsFunction = completeBookRefs
	return cmd
}
