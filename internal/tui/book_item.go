package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// BookItem is one book in the browser list.
type BookItem struct {
	Book     catalog.Book
	selected bool // multi-select mark
	fading   bool // deleted, waiting for the fade to finish
}

// idSep divides the searchable text of a FilterValue from the book ID.
const idSep = "\x00"

// FilterValue implements list.Item. The ID keeps it unique, which the
// multi-select relies on to track marks; filterBooks ignores it.
func (b *BookItem) FilterValue() string {
	return b.Book.Title + " " + b.Book.Author + idSep + b.Book.ID
}

// filterBooks is the list filter: fuzzy matching on title and author only.
// Matched indexes stay valid for the full value since only a suffix is cut.
func filterBooks(term string, targets []string) []list.Rank {
	searchable := make([]string, len(targets))
	for i, t := range targets {
		if j := strings.LastIndex(t, idSep); j >= 0 {
			t = t[:j]
		}
		searchable[i] = t
	}
	return list.DefaultFilter(term, searchable)
}

// IsSelected implements multiselect.SelectableItem
func (b *BookItem) IsSelected() bool {
	return b.selected
}

// SetSelected implements multiselect.SelectableItem
func (b *BookItem) SetSelected(selected bool) {
	b.selected = selected
}

// IsSelectable implements multiselect.SelectableItem
// Books already being removed cannot be marked again.
func (b *BookItem) IsSelectable() bool {
	return !b.fading
}

// truncateText truncates a string to maxWidth visible chars with ellipsis.
func truncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}
	return string(runes[:maxWidth-1]) + "…"
}

// padOrTruncate pads s to exactly width visible chars, truncating with "…" if necessary.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	n := len(runes)
	if n > width {
		return truncateText(s, width)
	}
	return s + strings.Repeat(" ", width-n)
}

// Column width constraints
const (
	minTitleWidth  = 12
	maxTitleWidth  = 48
	minAuthorWidth = 8
	maxAuthorWidth = 28
	pagesWidth     = 7
	statusWidth    = 10
	columnGap      = 1
)

// computeColumnWidths splits the row between title and author; pages and
// status are fixed.
func computeColumnWidths(totalWidth int) (titleW, authorW int) {
	prefix := 4 // cursor + mark
	gaps := columnGap * 3
	usable := totalWidth - prefix - gaps - pagesWidth - statusWidth
	if usable < minTitleWidth+minAuthorWidth {
		return minTitleWidth, minAuthorWidth
	}
	titleW = usable * 60 / 100
	if titleW > maxTitleWidth {
		titleW = maxTitleWidth
	}
	authorW = usable - titleW
	if authorW > maxAuthorWidth {
		authorW = maxAuthorWidth
	}
	if titleW < minTitleWidth {
		titleW = minTitleWidth
	}
	if authorW < minAuthorWidth {
		authorW = minAuthorWidth
	}
	return titleW, authorW
}

// renderBookRow returns the render function for list rows in theme th.
func renderBookRow(th *Theme) func(w io.Writer, m list.Model, index int, item list.Item) {
	return func(w io.Writer, m list.Model, index int, item list.Item) {
		bi, ok := item.(*BookItem)
		if !ok {
			return
		}

		listWidth := m.Width()
		if listWidth <= 0 {
			listWidth = 80
		}
		titleW, authorW := computeColumnWidths(listWidth)
		gap := strings.Repeat(" ", columnGap)

		isCursor := index == m.Index()
		cursor := "  "
		if isCursor {
			cursor = lipgloss.NewStyle().Foreground(ColorOrange).Render("›") + " "
		}
		mark := "  "
		if bi.selected {
			mark = lipgloss.NewStyle().Foreground(ColorTealLight).Bold(true).Render("✓") + " "
		}

		titleCol := padOrTruncate(bi.Book.Title, titleW)
		authorCol := padOrTruncate(bi.Book.Author, authorW)
		pagesCol := padOrTruncate(pagesText(bi.Book.Pages), pagesWidth)

		if bi.fading {
			line := titleCol + gap + authorCol + gap + pagesCol
			_, _ = fmt.Fprint(w, cursor+mark+th.Fading.Render(line))
			return
		}

		var titleStyled, authorStyled string
		if isCursor {
			titleStyled = th.Highlight.Render(titleCol)
			authorStyled = th.Highlight.Faint(true).Render(authorCol)
		} else {
			titleStyled = th.Normal.Render(titleCol)
			authorStyled = th.Help.Render(authorCol)
		}

		line := cursor + mark + titleStyled + gap + authorStyled + gap + th.Help.Render(pagesCol) + gap + th.StatusPill(bi.Book.Read)
		_, _ = fmt.Fprint(w, line)
	}
}

// pagesText formats a page count for display. Free-form values pass through.
func pagesText(p catalog.Pages) string {
	if p == "" {
		return "?"
	}
	return p.String() + "p"
}
