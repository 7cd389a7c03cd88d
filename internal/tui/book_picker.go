package tui

import (
	"fmt"
	"io"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/tui/delegate"
	"github.com/blackwell-systems/bubbletea-picker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pickerItem is one book offered by the book picker.
type pickerItem struct {
	book catalog.Book
}

// FilterValue implements list.Item
func (p pickerItem) FilterValue() string {
	return p.book.Title + " " + p.book.Author + " " + p.book.ID
}

// renderBookPickerItem renders a book in picker mode
func renderBookPickerItem(th *Theme) delegate.RenderFunc {
	return func(w io.Writer, m list.Model, index int, item list.Item) {
		pi, ok := item.(pickerItem)
		if !ok {
			return
		}

		idStr := fmt.Sprintf("%-8s", truncateText(pi.book.ID, 8))
		byline := th.Help.Render("by " + pi.book.Author)

		if index == m.Index() {
			_, _ = fmt.Fprint(w, th.Highlight.Render("› "+idStr+" "+pi.book.Title)+" "+byline)
		} else {
			_, _ = fmt.Fprint(w, "  "+th.Help.Render(idStr)+" "+th.Normal.Render(pi.book.Title)+" "+byline)
		}
	}
}

type bookPickerModel struct {
	base     *picker.Base
	selected *catalog.Book
}

func (m bookPickerModel) Init() tea.Cmd {
	return nil
}

func (m bookPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.base.Update(msg)

	// Extract selection when quitting without error
	if m.base.IsQuitting() && m.base.Error() == nil {
		if pi, ok := m.base.SelectedItem().(pickerItem); ok {
			b := pi.book
			m.selected = &b
		}
	}

	return m, cmd
}

func (m bookPickerModel) View() string {
	return m.base.View()
}

func newBookPicker(books []catalog.Book, title string, dark bool) bookPickerModel {
	th := ThemeFor(dark)

	items := make([]list.Item, len(books))
	for i, b := range books {
		items[i] = pickerItem{book: b}
	}

	l := list.New(items, delegate.New(renderBookPickerItem(th)), 0, 0)
	if title != "" {
		l.Title = title
	} else {
		l.Title = "Select a book"
	}
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = th.Header
	l.Styles.PaginationStyle = th.Help
	l.Styles.HelpStyle = th.Help

	keys := newPickerKeys()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.choose}
	}

	base := picker.New(picker.Config{
		List:       l,
		QuitKeys:   keys.quit,
		SelectKeys: keys.choose,
		ShowBorder: true,
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(1, 2),
		OnSelect: func(list.Item) bool {
			return true
		},
	})
	return bookPickerModel{base: base}
}

// RunBookPicker asks the user to choose one of books.
func RunBookPicker(books []catalog.Book, title string, dark bool) (catalog.Book, error) {
	if len(books) == 0 {
		return catalog.Book{}, fmt.Errorf("no books to choose from")
	}

	p := tea.NewProgram(newBookPicker(books, title, dark), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return catalog.Book{}, fmt.Errorf("running TUI: %w", err)
	}

	if fm, ok := finalModel.(bookPickerModel); ok && fm.selected != nil {
		return *fm.selected, nil
	}
	return catalog.Book{}, ErrCanceled
}
