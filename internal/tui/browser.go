package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/library"
	"github.com/blackwell-systems/bookcase/internal/tui/delegate"
	"github.com/blackwell-systems/bubbletea-multiselect"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fadeDuration is how long a deleted book stays on screen, struck out,
// before it is detached from the list.
const fadeDuration = 300 * time.Millisecond

// BrowserOptions configures RunBrowser.
type BrowserOptions struct {
	Placeholder string // label for books without a cover
	Cards       bool   // start in the card layout
}

// fadeDoneMsg detaches books whose fade-out has finished.
type fadeDoneMsg struct {
	ids []string
}

func fadeOut(ids []string) tea.Cmd {
	return tea.Tick(fadeDuration, func(time.Time) tea.Msg {
		return fadeDoneMsg{ids: ids}
	})
}

// viewState receives store notifications. The browser drains it after every
// store call it makes.
type viewState struct {
	dirty   bool // full re-render requested
	empty   bool
	removed []catalog.Book
	updated []catalog.Book
}

func (v *viewState) Render(books []catalog.Book) {
	v.dirty = true
	v.empty = len(books) == 0
}

func (v *viewState) Empty() {
	v.dirty = true
	v.empty = true
}

func (v *viewState) Removed(b catalog.Book) {
	v.removed = append(v.removed, b)
}

func (v *viewState) Updated(b catalog.Book) {
	v.updated = append(v.updated, b)
}

type browserModel struct {
	store *library.Store
	sink  *viewState
	ms    multiselect.Model
	th    *Theme
	keys  browserKeys

	placeholder string
	cards       bool
	details     bool
	form        *bookForm

	status    string
	errMsg    string
	activeCmd string

	width    int
	height   int
	quitting bool
}

func newBrowserModel(store *library.Store, opts BrowserOptions) browserModel {
	if opts.Placeholder == "" {
		opts.Placeholder = "no cover"
	}
	m := browserModel{
		store:       store,
		sink:        &viewState{empty: store.Len() == 0},
		th:          ThemeFor(store.Dark()),
		keys:        newBrowserKeys(),
		placeholder: opts.Placeholder,
		cards:       opts.Cards,
	}
	store.SetView(m.sink)
	m.ms = m.newList(store.Projection())
	return m
}

// newList builds the multi-select list for books. Marks are not carried over.
func (m browserModel) newList(books []catalog.Book) multiselect.Model {
	items := make([]list.Item, len(books))
	for i := range books {
		items[i] = &BookItem{Book: books[i]}
	}

	w, h := m.listSize()
	l := list.New(items, delegate.New(renderBookRow(m.th)), w, h)
	l.Title = "Library"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Filter = filterBooks
	l.Styles.PaginationStyle = m.th.Help
	l.Styles.StatusBar = m.th.Help.PaddingLeft(2)

	return multiselect.New(l)
}

// listSize is the space left for the list once header, status line, footer
// and the optional details pane are drawn.
func (m browserModel) listSize() (int, int) {
	w, h := m.width, m.height-6
	if m.details {
		h -= detailsHeight
	}
	if w <= 0 {
		w = 80
	}
	if h < 3 {
		h = 3
	}
	return w, h
}

// rebuild replaces the list with the store's current projection, keeping the
// cursor on the same book when it is still there.
func (m *browserModel) rebuild() {
	currentID := ""
	if bi := m.current(); bi != nil {
		currentID = bi.Book.ID
	}
	filter := m.ms.List.FilterValue()

	books := m.store.Projection()
	m.ms = m.newList(books)
	if filter != "" {
		m.ms.List.SetFilterText(filter)
	}
	if i := catalog.IndexOf(books, currentID); i >= 0 && filter == "" {
		m.ms.List.Select(i)
	}
}

// sync applies pending store notifications to the list.
func (m *browserModel) sync() tea.Cmd {
	var cmd tea.Cmd
	if len(m.sink.removed) > 0 {
		var ids []string
		for _, b := range m.sink.removed {
			if bi := m.itemByID(b.ID); bi != nil {
				bi.fading = true
				ids = append(ids, b.ID)
			}
		}
		m.sink.removed = nil
		if len(ids) > 0 {
			cmd = fadeOut(ids)
			// The empty note waits for the fade.
			if m.sink.empty {
				m.sink.dirty = false
			}
		}
	}

	if m.sink.dirty {
		m.sink.dirty = false
		m.rebuild()
	}

	for _, b := range m.sink.updated {
		if bi := m.itemByID(b.ID); bi != nil {
			bi.Book = b
		}
	}
	m.sink.updated = nil

	return cmd
}

func (m browserModel) itemByID(id string) *BookItem {
	for _, it := range m.ms.List.Items() {
		if bi, ok := it.(*BookItem); ok && bi.Book.ID == id {
			return bi
		}
	}
	return nil
}

func (m browserModel) current() *BookItem {
	bi, _ := m.ms.List.SelectedItem().(*BookItem)
	return bi
}

// targets returns the marked books, or the book under the cursor when none
// are marked. Fading books are skipped.
func (m browserModel) targets() []*BookItem {
	var marked []*BookItem
	for _, it := range m.ms.List.Items() {
		if bi, ok := it.(*BookItem); ok && bi.selected && !bi.fading {
			marked = append(marked, bi)
		}
	}
	if len(marked) > 0 {
		return marked
	}
	if bi := m.current(); bi != nil && !bi.fading {
		return []*BookItem{bi}
	}
	return nil
}

func (m browserModel) fading() bool {
	for _, it := range m.ms.List.Items() {
		if bi, ok := it.(*BookItem); ok && bi.fading {
			return true
		}
	}
	return false
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ms.List.SetSize(m.listSize())
		return m, nil

	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case fadeDoneMsg:
		for _, id := range msg.ids {
			if bi := m.itemByID(id); bi != nil && bi.fading {
				m.rebuild()
				break
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.ms.List.FilterState() == list.Filtering {
			break
		}
		return m.updateKeys(msg)
	}

	if m.form != nil {
		f, cmd := m.form.Update(msg)
		m.form = &f
		return m, cmd
	}

	var cmd tea.Cmd
	m.ms, cmd = m.ms.Update(msg)
	return m, cmd
}

func (m browserModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		if msg.String() == "esc" && m.ms.List.FilterState() == list.FilterApplied {
			m.ms.List.ResetFilter()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.add):
		f := newBookForm(catalog.Book{})
		m.form = &f
		return m.highlight("a")

	case key.Matches(msg, m.keys.edit):
		if bi := m.current(); bi != nil && !bi.fading {
			f := newBookForm(bi.Book)
			m.form = &f
		}
		return m.highlight("e")

	case key.Matches(msg, m.keys.toggle):
		m.errMsg = ""
		for _, bi := range m.targets() {
			if _, err := m.store.ToggleRead(bi.Book.ID); err != nil {
				m.errMsg = err.Error()
				break
			}
		}
		m.sync()
		return m.highlight("r")

	case key.Matches(msg, m.keys.remove):
		m.errMsg = ""
		targets := m.targets()
		for _, bi := range targets {
			if _, err := m.store.Remove(bi.Book.ID); err != nil {
				m.errMsg = err.Error()
				break
			}
		}
		if m.errMsg == "" && len(targets) > 0 {
			m.status = plural(len(targets), "book") + " removed"
		}
		cmd := m.sync()
		m2, hl := m.highlight("d")
		return m2, tea.Batch(cmd, hl)

	case key.Matches(msg, m.keys.sort):
		m.errMsg = ""
		next := m.store.SortOrder().Next()
		if err := m.store.SetSortOrder(next); err != nil {
			m.errMsg = err.Error()
		} else {
			m.status = "Sorted: " + next.Label()
		}
		m.sync()
		return m.highlight("s")

	case key.Matches(msg, m.keys.theme):
		m.errMsg = ""
		if _, err := m.store.ToggleTheme(); err != nil {
			m.errMsg = err.Error()
		}
		// The row delegate holds the same pointer.
		*m.th = *ThemeFor(m.store.Dark())
		m.ms.List.Styles.PaginationStyle = m.th.Help
		m.ms.List.Styles.StatusBar = m.th.Help.PaddingLeft(2)
		return m.highlight("t")

	case key.Matches(msg, m.keys.layout):
		m.cards = !m.cards
		return m.highlight("v")

	case key.Matches(msg, m.keys.details):
		m.details = !m.details
		m.ms.List.SetSize(m.listSize())
		return m.highlight("tab")

	case key.Matches(msg, m.keys.mark):
		m.ms.Toggle()
		return m.highlight("space")
	}

	if m.cards {
		if i, ok := m.cardMove(msg); ok {
			m.ms.List.Select(i)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.ms, cmd = m.ms.Update(msg)
	return m, cmd
}

// cardMove maps arrow keys onto the card grid.
func (m browserModel) cardMove(msg tea.KeyMsg) (int, bool) {
	n := len(m.ms.List.VisibleItems())
	if n == 0 {
		return 0, false
	}
	i := m.ms.List.Index()
	cols := cardColumns(m.width)

	switch {
	case key.Matches(msg, m.keys.left):
		i--
	case key.Matches(msg, m.keys.right):
		i++
	case msg.String() == "up" || msg.String() == "k":
		i -= cols
	case msg.String() == "down" || msg.String() == "j":
		i += cols
	default:
		return 0, false
	}
	return max(0, min(i, n-1)), true
}

func (m browserModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, cmd := m.form.Update(msg)
	m.form = &f

	switch {
	case f.canceled:
		m.form = nil
		return m, nil

	case f.submitted:
		var (
			b   catalog.Book
			err error
		)
		if f.editing() {
			b, err = m.store.Edit(f.editID, f.apply)
		} else {
			b, err = m.store.Add(f.NewBook())
		}
		if err != nil {
			f.submitted = false
			f.err = err.Error()
			m.form = &f
			return m, nil
		}
		m.form = nil
		m.errMsg = ""
		if f.editing() {
			m.status = fmt.Sprintf("Updated %q", b.Title)
		} else {
			m.status = fmt.Sprintf("Added %q", b.Title)
		}
		m.sync()
		if i := m.indexOf(b.ID); i >= 0 {
			m.ms.List.Select(i)
		}
		return m, nil
	}

	return m, cmd
}

func (m browserModel) indexOf(id string) int {
	for i, it := range m.ms.List.VisibleItems() {
		if bi, ok := it.(*BookItem); ok && bi.Book.ID == id {
			return i
		}
	}
	return -1
}

func (m browserModel) highlight(k string) (browserModel, tea.Cmd) {
	m.activeCmd = k
	return m, HighlightCmd()
}

func (m browserModel) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View(m.th))
		}
		return m.form.View(m.th)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch {
	case m.store.Len() == 0 && !m.fading():
		b.WriteString(m.renderEmpty())
	case m.cards:
		_, h := m.listSize()
		b.WriteString(renderCards(m.th, m.ms.List.VisibleItems(), m.ms.List.Index(), m.width, h, m.placeholder))
	default:
		b.WriteString(m.ms.View())
	}

	if m.details {
		b.WriteString("\n")
		b.WriteString(m.renderDetails())
	}

	b.WriteString("\n")
	switch {
	case m.errMsg != "":
		b.WriteString(m.th.Error.Render("  " + m.errMsg))
	case m.status != "":
		b.WriteString(m.th.Help.Render("  " + m.status))
	}
	b.WriteString("\n")
	b.WriteString(RenderFooterBar(m.th, m.shortcuts(), m.activeCmd))
	return b.String()
}

func (m browserModel) renderHeader() string {
	st := m.store.Stats()
	title := m.th.Header.Render("Bookcase")
	sub := m.th.Help.Render(fmt.Sprintf("%s · %d read · %s",
		plural(st.Total, "book"), st.Read, m.store.SortOrder().Label()))
	return lipgloss.NewStyle().Padding(0, 1).Render(title + "  " + sub)
}

func (m browserModel) renderEmpty() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.th.Border).
		Padding(1, 3).
		Render(m.th.Normal.Render(library.EmptyNote) + "\n\n" + m.th.Help.Render("Press a to add your first book."))
	return lipgloss.NewStyle().Padding(1, 2).Render(box)
}

const detailsHeight = 8

func (m browserModel) renderDetails() string {
	bi := m.current()
	if bi == nil {
		return ""
	}
	bk := bi.Book
	label := lipgloss.NewStyle().Foreground(m.th.Dim).Width(8)
	row := func(k, v string) string {
		return label.Render(k) + m.th.Normal.Render(v)
	}
	lines := []string{
		m.th.Header.Render(bk.Title),
		row("Author", bk.Author),
		row("Pages", pagesText(bk.Pages)),
		label.Render("Status") + m.th.StatusPill(bk.Read),
		row("Cover", bk.CoverOr(m.placeholder)),
		row("ID", bk.ID),
	}
	w := m.width - 4
	if w < 20 {
		w = 40
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(m.th.Border).
		Width(w).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m browserModel) shortcuts() []ShortcutEntry {
	return []ShortcutEntry{
		{Key: "a", Label: "a add"},
		{Key: "e", Label: "e edit"},
		{Key: "r", Label: "r read"},
		{Key: "d", Label: "d delete"},
		{Key: "s", Label: "s sort"},
		{Key: "t", Label: "t theme"},
		{Key: "v", Label: "v cards"},
		{Key: "tab", Label: "tab details"},
		{Key: "space", Label: "space select"},
		{Key: "", Label: "/ filter"},
		{Key: "", Label: "q quit"},
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// RunBrowser opens the interactive library browser on store. Every change
// made in the browser goes through the store, so it is saved as it happens.
func RunBrowser(store *library.Store, opts BrowserOptions) error {
	m := newBrowserModel(store, opts)
	defer store.SetView(library.NopView{})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
