package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	cardWidth  = 26
	cardHeight = 7
	cardGap    = 1
)

// cardColumns returns how many cards fit side by side in width.
func cardColumns(width int) int {
	cols := (width + cardGap) / (cardWidth + 2 + cardGap) // +2 for the border
	if cols < 1 {
		cols = 1
	}
	return cols
}

// renderCards lays items out as a grid of cards, scrolled so the row holding
// cursor is visible. placeholder labels books without a cover.
func renderCards(th *Theme, items []list.Item, cursor, width, height int, placeholder string) string {
	cols := cardColumns(width)
	rowsVisible := height / (cardHeight + 2)
	if rowsVisible < 1 {
		rowsVisible = 1
	}

	cursorRow := cursor / cols
	firstRow := 0
	if cursorRow >= rowsVisible {
		firstRow = cursorRow - rowsVisible + 1
	}

	var rows []string
	for r := firstRow; r < firstRow+rowsVisible; r++ {
		start := r * cols
		if start >= len(items) {
			break
		}
		end := min(start+cols, len(items))

		var cards []string
		for i := start; i < end; i++ {
			bi, ok := items[i].(*BookItem)
			if !ok {
				continue
			}
			cards = append(cards, renderCard(th, bi, i == cursor, placeholder))
			if i < end-1 {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

// renderCard draws a single book card. active uses the orange border.
func renderCard(th *Theme, bi *BookItem, active bool, placeholder string) string {
	inner := cardWidth - 2 // subtract padding
	b := bi.Book

	cover := "▣ cover"
	if strings.TrimSpace(b.CoverURL) == "" {
		cover = "▢ " + placeholder
	}

	lines := []string{
		th.Header.Render(xansi.Truncate(b.Title, inner, "…")),
		th.Help.Render(xansi.Truncate(b.Author, inner, "…")),
		th.Help.Render(xansi.Truncate(pagesText(b.Pages)+" · "+cover, inner, "…")),
		"",
		th.StatusPill(b.Read),
	}
	if bi.selected {
		lines[3] = lipgloss.NewStyle().Foreground(ColorTealLight).Render("✓ selected")
	}
	content := strings.Join(lines, "\n")

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(cardWidth).Height(cardHeight).Padding(0, 1)

	switch {
	case bi.fading:
		return style.BorderForeground(th.Dim).Render(th.Fading.Render(xansi.Strip(content)))
	case active:
		return style.BorderForeground(ColorOrange).Render(content)
	default:
		return style.BorderForeground(th.Border).Render(content)
	}
}
