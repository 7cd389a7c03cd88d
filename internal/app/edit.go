package app

import (
	"strings"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	var (
		title  string
		author string
		pages  string
		read   bool
		cover  string
	)

	cmd := &cobra.Command{
		Use:   "edit [id|title]",
		Short: "Change the details of a book",
		Long: `Change the details of a book. Only the flags you pass are changed.

Examples:
  bookcase edit 3f2a --pages 604
  bookcase edit "Dune" --cover https://example.com/dune.jpg
  bookcase edit dune --read=false`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !anyChanged(cmd, "title", "author", "pages", "read", "cover") {
				warn("Nothing to change. Pass --title, --author, --pages, --read or --cover.")
				return nil
			}

			ref := ""
			if len(args) > 0 {
				ref = args[0]
			}
			target, err := resolveBook(ref, "Edit which book?")
			if err != nil {
				return err
			}

			flags := cmd.Flags()

			b, err := store.Edit(target.ID, func(b *catalog.Book) {
				if flags.Changed("title") {
					b.Title = strings.TrimSpace(title)
				}
				if flags.Changed("author") {
					b.Author = strings.TrimSpace(author)
				}
				if flags.Changed("pages") {
					b.Pages = catalog.Pages(strings.TrimSpace(pages))
				}
				if flags.Changed("read") {
					b.Read = read
				}
				if flags.Changed("cover") {
					b.CoverURL = strings.TrimSpace(cover)
				}
			})
			if err != nil {
				return err
			}

			ok("Updated %s", color.WhiteString(b.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&author, "author", "", "New author")
	cmd.Flags().StringVar(&pages, "pages", "", "New page count")
	cmd.Flags().BoolVar(&read, "read", false, "Read status")
	cmd.Flags().StringVar(&cover, "cover", "", "New cover image URL (empty to clear)")

	return cmd
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}
