package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/tui/delegate"
	"github.com/blackwell-systems/bubbletea-picker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when a picker is closed without a choice.
var ErrCanceled = errors.New("canceled by user")

// sortOption is one sort order in the picker.
type sortOption struct {
	order   catalog.SortOrder
	current bool
}

// FilterValue implements list.Item
func (s sortOption) FilterValue() string {
	return string(s.order) + " " + s.order.Label()
}

func renderSortOption(th *Theme) delegate.RenderFunc {
	return func(w io.Writer, m list.Model, index int, item list.Item) {
		opt, ok := item.(sortOption)
		if !ok {
			return
		}

		display := fmt.Sprintf("%-12s %s", opt.order.Label(), th.Help.Render(string(opt.order)))
		if opt.current {
			display += th.Help.Render("  (current)")
		}

		if index == m.Index() {
			_, _ = fmt.Fprint(w, th.Highlight.Render("› ")+display)
		} else {
			_, _ = fmt.Fprint(w, "  "+display)
		}
	}
}

type sortPickerModel struct {
	base     *picker.Base
	selected catalog.SortOrder
}

func (m sortPickerModel) Init() tea.Cmd {
	return nil
}

func (m sortPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.base.Update(msg)

	if m.base.IsQuitting() && m.base.Error() == nil {
		if opt, ok := m.base.SelectedItem().(sortOption); ok {
			m.selected = opt.order
		}
	}
	return m, cmd
}

func (m sortPickerModel) View() string {
	return m.base.View()
}

func newSortPicker(current catalog.SortOrder, dark bool) sortPickerModel {
	th := ThemeFor(dark)

	items := make([]list.Item, len(catalog.SortOrders))
	cursor := 0
	for i, o := range catalog.SortOrders {
		items[i] = sortOption{order: o, current: o == current}
		if o == current {
			cursor = i
		}
	}

	l := list.New(items, delegate.New(renderSortOption(th)), 40, len(items)+6)
	l.Title = "Sort books by"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = th.Header
	l.Styles.HelpStyle = th.Help
	l.Select(cursor)

	keys := newPickerKeys()
	base := picker.New(picker.Config{
		List:       l,
		QuitKeys:   keys.quit,
		SelectKeys: keys.choose,
		ShowBorder: true,
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(0, 1),
		OnSelect: func(list.Item) bool {
			return true
		},
	})
	return sortPickerModel{base: base}
}

// RunSortPicker asks for a sort order, starting on current.
func RunSortPicker(current catalog.SortOrder, dark bool) (catalog.SortOrder, error) {
	p := tea.NewProgram(newSortPicker(current, dark))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running sort picker: %w", err)
	}

	fm, ok := finalModel.(sortPickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if fm.base.Error() != nil || fm.selected == "" {
		return "", ErrCanceled
	}
	return fm.selected, nil
}
