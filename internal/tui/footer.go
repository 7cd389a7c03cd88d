package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ClearActiveCmdMsg clears the active command highlight in the footer.
type ClearActiveCmdMsg struct{}

// ShortcutEntry pairs a trigger key with the display label for footer highlighting.
type ShortcutEntry struct {
	Key   string // trigger key to match against activeCmd (empty = no highlight)
	Label string
}

// HighlightCmd returns a 500ms tick that clears the active command highlight.
// Set activeCmd on the model before returning it:
//
//	m.activeCmd = "key"
//	return m, HighlightCmd()
func HighlightCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return ClearActiveCmdMsg{}
	})
}

// RenderFooterBar renders shortcut labels separated by dots. The shortcut
// matching activeCmd is drawn with the theme's highlight; others are dim.
func RenderFooterBar(th *Theme, shortcuts []ShortcutEntry, activeCmd string) string {
	dimStyle := lipgloss.NewStyle().Foreground(th.Dim)

	parts := make([]string, len(shortcuts))
	for i, sc := range shortcuts {
		if activeCmd != "" && sc.Key == activeCmd {
			parts[i] = th.Highlight.Render("[ " + sc.Label + " ]")
		} else {
			parts[i] = dimStyle.Render(sc.Label)
		}
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, dimStyle.Render(" • ")))
}
