package app

import (
	"encoding/json"
	"fmt"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/library"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		sortKey  string
		search   string
		onlyRead bool
		unread   bool
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the books in your library",
		Long: `List the books in your library in the saved sort order.

--sort shows a different order for this listing only; use 'bookcase sort'
to change the saved preference.

Examples:
  bookcase list
  bookcase ls --sort title-asc
  bookcase list --unread --search herbert
  bookcase list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if onlyRead && unread {
				return fmt.Errorf("--read and --unread cannot be combined")
			}

			order := store.SortOrder()
			if sortKey != "" {
				var err error
				if order, err = catalog.ParseSortOrder(sortKey); err != nil {
					return err
				}
			}

			f := catalog.Filter{Search: search}
			switch {
			case onlyRead:
				f.Read = catalog.ReadOnly
			case unread:
				f.Read = catalog.UnreadOnly
			}
			books := f.Apply(catalog.Project(store.Books(), order))

			if jsonOut {
				if books == nil {
					books = []catalog.Book{}
				}
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(books)
			}

			if store.Len() == 0 {
				warn(library.EmptyNote)
				fmt.Fprintln(stdout, "  bookcase add --title <title> --author <author>")
				return nil
			}
			if len(books) == 0 {
				fmt.Fprintln(stdout, "No books match.")
				return nil
			}

			header("── %s  (%d of %d)", order.Label(), len(books), store.Len())
			for _, b := range books {
				printBookRow(b)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort order for this listing (insert-asc, insert-dsc, title-asc, title-dsc)")
	cmd.Flags().StringVar(&search, "search", "", "Only books whose title or author contains this text")
	cmd.Flags().BoolVar(&onlyRead, "read", false, "Only books you have read")
	cmd.Flags().BoolVar(&unread, "unread", false, "Only books you have not read")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	_ = cmd.RegisterFlagCompletionFunc("sort", completeSortOrders)

	return cmd
}

func printBookRow(b catalog.Book) {
	pages := ""
	if b.Pages != "" {
		pages = b.Pages.String() + "p"
	}
	fmt.Fprintf(stdout, "  %s  %-40s  %-24s  %6s  %s\n",
		color.HiBlackString(shortID(b.ID)),
		clip(b.Title, 40),
		clip(b.Author, 24),
		pages,
		statusText(b),
	)
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
