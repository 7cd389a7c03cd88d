package tui

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/library"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldTitle = iota
	fieldAuthor
	fieldPages
	fieldRead
	fieldCover
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Author", "Pages", "Read?", "Cover URL"}

// bookForm collects the fields of a new or edited book. It lives inside the
// browser rather than running as its own program.
type bookForm struct {
	inputs  []textinput.Model
	focused int
	editID  string // empty when adding
	err     string

	submitted bool
	canceled  bool
}

func newBookForm(defaults catalog.Book) bookForm {
	f := bookForm{
		inputs: make([]textinput.Model, fieldCount),
		editID: defaults.ID,
	}

	const fieldWidth = 42
	placeholders := [fieldCount]string{"Book title", "Author name", "412", "y/n", "https://… (optional)"}
	limits := [fieldCount]int{200, 100, 12, 3, 500}

	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Width = fieldWidth
		in.Prompt = "│ "
		f.inputs[i] = in
	}
	f.inputs[fieldRead].Width = 4

	f.inputs[fieldTitle].SetValue(defaults.Title)
	f.inputs[fieldAuthor].SetValue(defaults.Author)
	f.inputs[fieldPages].SetValue(defaults.Pages.String())
	f.inputs[fieldCover].SetValue(defaults.CoverURL)
	if defaults.ID != "" {
		f.inputs[fieldRead].SetValue(yesNo(defaults.Read))
	}
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	f.inputs[fieldTitle].Focus()
	return f
}

func (f bookForm) editing() bool { return f.editID != "" }

func (f bookForm) Update(msg tea.Msg) (bookForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			f.canceled = true
			return f, nil

		case "enter":
			if f.focused < fieldCount-1 {
				return f.focus(f.focused + 1)
			}
			if missing := f.missing(); missing != "" {
				f.err = missing + " is required"
				return f, nil
			}
			f.submitted = true
			return f, nil

		case "tab", "down":
			return f.focus(f.focused + 1)

		case "shift+tab", "up":
			return f.focus(f.focused - 1)
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

func (f bookForm) focus(i int) (bookForm, tea.Cmd) {
	if i < 0 {
		i = fieldCount - 1
	} else if i >= fieldCount {
		i = 0
	}
	f.focused = i
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f, f.inputs[i].Focus()
}

// missing names the first blank required field.
func (f bookForm) missing() string {
	for _, i := range []int{fieldTitle, fieldAuthor} {
		if strings.TrimSpace(f.inputs[i].Value()) == "" {
			return fieldLabels[i]
		}
	}
	return ""
}

// NewBook returns the entered values.
func (f bookForm) NewBook() library.NewBook {
	return library.NewBook{
		Title:    f.inputs[fieldTitle].Value(),
		Author:   f.inputs[fieldAuthor].Value(),
		Pages:    f.inputs[fieldPages].Value(),
		Read:     parseYes(f.inputs[fieldRead].Value()),
		CoverURL: f.inputs[fieldCover].Value(),
	}
}

// apply copies the entered values onto b.
func (f bookForm) apply(b *catalog.Book) {
	nb := f.NewBook()
	b.Title = strings.TrimSpace(nb.Title)
	b.Author = strings.TrimSpace(nb.Author)
	b.Pages = catalog.Pages(strings.TrimSpace(nb.Pages))
	b.Read = nb.Read
	b.CoverURL = strings.TrimSpace(nb.CoverURL)
}

func (f bookForm) View(th *Theme) string {
	label := lipgloss.NewStyle().
		Foreground(th.Dim).
		Width(11).
		Align(lipgloss.Right).
		PaddingRight(1)
	labelActive := th.Highlight.
		Width(11).
		Align(lipgloss.Right).
		PaddingRight(1)

	var b strings.Builder
	if f.editing() {
		b.WriteString(th.Header.Render("Edit Book"))
		b.WriteString("\n")
		b.WriteString(th.Help.Render(f.editID))
	} else {
		b.WriteString(th.Header.Render("Add New Book"))
	}
	b.WriteString("\n\n")

	for i := range f.inputs {
		l := label
		if i == f.focused {
			l = labelActive
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, l.Render(fieldLabels[i]), f.inputs[i].View()))
		b.WriteString("\n")
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(th.Error.Render(f.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(th.Help.Render(fmt.Sprintf("tab/↑↓ move • enter next/%s • esc cancel", map[bool]string{true: "save", false: "add"}[f.editing()])))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(1, 2).
		Render(b.String())
}

func parseYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "read":
		return true
	}
	return false
}

func yesNo(v bool) string {
	if v {
		return "y"
	}
	return "n"
}
