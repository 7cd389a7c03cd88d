package tui

import "github.com/charmbracelet/bubbles/key"

// browserKeys are the shortcuts of the library browser.
type browserKeys struct {
	quit    key.Binding
	add     key.Binding
	edit    key.Binding
	toggle  key.Binding
	remove  key.Binding
	sort    key.Binding
	theme   key.Binding
	layout  key.Binding
	details key.Binding
	mark    key.Binding
	left    key.Binding
	right   key.Binding
}

func newBrowserKeys() browserKeys {
	return browserKeys{
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		toggle: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "read/unread"),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		layout: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "cards/list"),
		),
		details: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "details"),
		),
		mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
		),
	}
}

// pickerKeys are the shortcuts of single-choice pickers.
type pickerKeys struct {
	quit   key.Binding
	choose key.Binding
}

func newPickerKeys() pickerKeys {
	return pickerKeys{
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
		choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
	}
}
