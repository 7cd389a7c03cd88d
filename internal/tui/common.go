package tui

import "github.com/charmbracelet/lipgloss"

// Brand colors shared by both palettes.
var (
	ColorOrange    = lipgloss.Color("#fb6820")
	ColorTeal      = lipgloss.Color("#1b8487")
	ColorTealLight = lipgloss.Color("#2ecfd4")
	ColorTealDim   = lipgloss.Color("#0d3536")
)

// Theme is the set of styles the browser renders with. It is chosen from
// the stored theme class list: "dark" selects the dark palette.
type Theme struct {
	Dark bool

	Normal    lipgloss.Style // regular text
	Highlight lipgloss.Style // cursor row, active shortcut
	Help      lipgloss.Style // secondary text and hints
	Header    lipgloss.Style // section headers
	Read      lipgloss.Style // "Read" status
	Unread    lipgloss.Style // "Not Read" status
	Fading    lipgloss.Style // books on their way out
	Error     lipgloss.Style
	Border    lipgloss.Color
	Dim       lipgloss.Color
}

// ThemeFor returns the light or dark palette.
func ThemeFor(dark bool) *Theme {
	if dark {
		return &Theme{
			Dark:      true,
			Normal:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0")),
			Highlight: lipgloss.NewStyle().Foreground(ColorOrange).Bold(true),
			Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
			Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
			Read:      lipgloss.NewStyle().Background(ColorTeal).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1),
			Unread:    lipgloss.NewStyle().Foreground(ColorTealLight).Padding(0, 1),
			Fading:    lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Strikethrough(true),
			Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			Border:    ColorTeal,
			Dim:       lipgloss.Color("240"),
		}
	}
	return &Theme{
		Normal:    lipgloss.NewStyle().Foreground(lipgloss.Color("#262626")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#D45610")).Bold(true),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("#262626")).Bold(true),
		Read:      lipgloss.NewStyle().Background(ColorTeal).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1),
		Unread:    lipgloss.NewStyle().Foreground(ColorTeal).Padding(0, 1),
		Fading:    lipgloss.NewStyle().Foreground(lipgloss.Color("#BBBBBB")).Strikethrough(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Border:    lipgloss.Color("#767676"),
		Dim:       lipgloss.Color("250"),
	}
}

// StatusPill renders a book's read status.
func (t *Theme) StatusPill(read bool) string {
	if read {
		return t.Read.Render("Read")
	}
	return t.Unread.Render("Not Read")
}
