package app

import (
	"strings"

	"github.com/blackwell-systems/bookcase/internal/library"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var nb library.NewBook

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to your library",
		Long: `Add a book to your library. Title and author are required; when either is
missing and you are at a terminal you are prompted for it.

Examples:
  bookcase add --title "Dune" --author "Frank Herbert" --pages 412
  bookcase add --title "Annihilation" --author "Jeff VanderMeer" --read
  bookcase add     # prompts for title and author`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive() {
				if strings.TrimSpace(nb.Title) == "" {
					nb.Title = promptOrDefault("Title", "")
				}
				if strings.TrimSpace(nb.Author) == "" {
					nb.Author = promptOrDefault("Author", "")
				}
			}

			b, err := store.Add(nb)
			if err != nil {
				return err
			}

			ok("Added %s by %s %s", color.WhiteString(b.Title), b.Author, color.HiBlackString("("+shortID(b.ID)+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&nb.Title, "title", "", "Book title")
	cmd.Flags().StringVar(&nb.Author, "author", "", "Author")
	cmd.Flags().StringVar(&nb.Pages, "pages", "", "Number of pages")
	cmd.Flags().BoolVar(&nb.Read, "read", false, "Mark the book as already read")
	cmd.Flags().StringVar(&nb.CoverURL, "cover", "", "Cover image URL")

	return cmd
}
