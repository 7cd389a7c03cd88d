package app

import (
	"fmt"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/library"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// emptyWatcher notes when the store reports the library has become empty.
type emptyWatcher struct {
	library.NopView
	empty bool
}

func (w *emptyWatcher) Empty() { w.empty = true }

func newDeleteCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:     "delete [id|title]",
		Aliases: []string{"rm"},
		Short:   "Remove a book from your library",
		Long: `Remove a book from your library. The book can be named by ID, by a unique
ID prefix or by its exact title or author (case-insensitive).

Examples:
  bookcase delete          # interactive picker
  bookcase rm 3f2a
  bookcase rm "Dune" --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) > 0 {
				ref = args[0]
			}
			target, err := resolveBook(ref, "Delete which book?")
			if err != nil {
				return err
			}

			if interactive() && !skipConfirm {
				if !confirm(fmt.Sprintf("Delete %q by %s?", target.Title, target.Author)) {
					fmt.Fprintln(stdout, "Canceled.")
					return nil
				}
			}

			w := &emptyWatcher{}
			store.SetView(w)
			defer store.SetView(library.NopView{})

			removed, err := store.Remove(target.ID)
			if err != nil {
				return err
			}

			ok("Removed %s", color.WhiteString(removed.Title))
			if w.empty {
				fmt.Fprintln(stdout, library.EmptyNote)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")
	cmd.ValidArgsFunction = completeBookRefs

	return cmd
}

// completeBookRefs offers book IDs, described by title.
func completeBookRefs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, b := range catalog.Project(store.Books(), store.SortOrder()) {
		out = append(out, b.ID+"\t"+b.Title)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
