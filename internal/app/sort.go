package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/tui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [insert-asc|insert-dsc|title-asc|title-dsc]",
		Short: "Show or change how books are ordered",
		Long: `Show or change the saved sort order.

  insert-asc  oldest first (the order books were added)
  insert-dsc  newest first
  title-asc   title A-Z
  title-dsc   title Z-A

Without an argument the current order is shown, or a picker opens when
running in a terminal.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: sortOrderNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			current := store.SortOrder()

			var next catalog.SortOrder
			switch {
			case len(args) == 1:
				o, err := catalog.ParseSortOrder(args[0])
				if err != nil {
					return err
				}
				next = o
			case tui.ShouldUseTUI(cmd):
				o, err := tui.RunSortPicker(current, store.Dark())
				if errors.Is(err, tui.ErrCanceled) {
					return nil
				}
				if err != nil {
					return err
				}
				next = o
			default:
				fmt.Fprintf(stdout, "%s %s\n", current, color.HiBlackString("("+current.Label()+")"))
				return nil
			}

			// Saved even when unchanged: current may only be the config default.
			if err := store.SetSortOrder(next); err != nil {
				return err
			}
			if next == current {
				fmt.Fprintf(stdout, "Already sorted %s.\n", current.Label())
				return nil
			}
			ok("Sorting %s", color.WhiteString(next.Label()))
			return nil
		},
	}

	return cmd
}

func sortOrderNames() []string {
	names := make([]string, len(catalog.SortOrders))
	for i, o := range catalog.SortOrders {
		names[i] = string(o)
	}
	return names
}

func completeSortOrders(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return sortOrderNames(), cobra.ShellCompDirectiveNoFileComp
}
