package app

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/library"
	"github.com/blackwell-systems/bookcase/internal/tui"
	"github.com/fatih/color"
)

// promptOrDefault asks for a value on stdin, returning def on an empty answer.
func promptOrDefault(label, def string) string {
	if def != "" {
		fmt.Fprintf(stdout, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(stdout, "%s: ", label)
	}
	sc := bufio.NewScanner(stdin)
	if sc.Scan() {
		if v := strings.TrimSpace(sc.Text()); v != "" {
			return v
		}
	}
	return def
}

// confirm asks a yes/no question; anything but y/yes is no.
func confirm(question string) bool {
	answer := promptOrDefault(question+" (y/N)", "")
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

// resolveBook finds the book a command refers to. ref may be an ID, an ID
// prefix, a title or an author. With no ref, or an ambiguous one, the user picks from a
// list when running interactively.
func resolveBook(ref, pickTitle string) (catalog.Book, error) {
	books := store.Projection()
	if len(books) == 0 {
		return catalog.Book{}, fmt.Errorf("%w: the library is empty", library.ErrNotFound)
	}

	if strings.TrimSpace(ref) == "" {
		if !interactive() {
			return catalog.Book{}, fmt.Errorf("a book ID or title is required")
		}
		return tui.RunBookPicker(books, pickTitle, store.Dark())
	}

	matches := catalog.Match(books, ref)
	switch len(matches) {
	case 0:
		return catalog.Book{}, fmt.Errorf("%w: %q", library.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	}

	if interactive() {
		return tui.RunBookPicker(matches, pickTitle, store.Dark())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%q matches %d books:", ref, len(matches))
	for _, m := range matches {
		fmt.Fprintf(&b, "\n  %s  %s", m.ID, m.Title)
	}
	return catalog.Book{}, fmt.Errorf("%s", b.String())
}

// shortID is the ID prefix shown in listings; any unique prefix is accepted
// back on the command line.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// statusText renders a book's read state for the terminal.
func statusText(b catalog.Book) string {
	if b.Read {
		return color.GreenString(b.ReadLabel())
	}
	return color.HiBlackString(b.ReadLabel())
}
