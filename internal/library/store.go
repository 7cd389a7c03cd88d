// Package library owns the in-memory book collection and keeps it in step
// with persistent storage.
//
// Every mutation is written through to storage before it returns. When the
// write fails the in-memory change is undone, so a caller never observes a
// library that differs from what is stored.
package library

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no book has the requested ID.
	ErrNotFound = errors.New("book not found")
	// ErrMissingField is returned when a required book field is blank.
	ErrMissingField = errors.New("missing required field")
)

// DarkClass is the theme token toggled by ToggleTheme.
const DarkClass = "dark"

// NewBook holds the fields a user supplies when adding a book.
type NewBook struct {
	Title    string
	Author   string
	Pages    string
	Read     bool
	CoverURL string
}

// Stats summarizes the library.
type Stats struct {
	Total  int `json:"total"`
	Read   int `json:"read"`
	Unread int `json:"unread"`
}

// Store is the single source of truth for the library.
// It is not safe for concurrent use; callers serialize events.
type Store struct {
	adapter *catalog.Adapter
	view    View
	log     *zap.Logger

	books []catalog.Book
	order catalog.SortOrder
	theme string
}

// Option configures a Store.
type Option func(*Store)

// WithView attaches the presentation layer.
func WithView(v View) Option {
	return func(s *Store) { s.view = v }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates an empty store over adapter. Call Load to read saved state.
func New(adapter *catalog.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		view:    NopView{},
		log:     zap.NewNop(),
		books:   []catalog.Book{},
		order:   catalog.InsertAsc,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetView replaces the attached view.
func (s *Store) SetView(v View) {
	if v == nil {
		v = NopView{}
	}
	s.view = v
}

// Load reads the saved library, sort order and theme.
//
// A library that cannot be decoded is treated as empty; nothing is written
// back, so the stored data is left for the user to inspect. Storage read
// failures are returned.
func (s *Store) Load() error {
	order, err := s.adapter.LoadSortOrder()
	if err != nil {
		return err
	}
	theme, err := s.adapter.LoadTheme()
	if err != nil {
		return err
	}
	books, err := s.adapter.LoadCollection()
	switch {
	case errors.Is(err, catalog.ErrMalformed):
		s.log.Warn("ignoring unreadable library data", zap.Error(err))
		books = []catalog.Book{}
	case err != nil:
		return err
	}

	s.order = order
	s.theme = theme
	s.books = books
	s.log.Debug("library loaded",
		zap.Int("books", len(books)),
		zap.String("sort", string(order)),
		zap.String("theme", theme))

	s.render()
	return nil
}

// Add appends a book, persists the library and re-renders it.
func (s *Store) Add(nb NewBook) (catalog.Book, error) {
	b := catalog.Book{
		ID:       catalog.NewID(),
		Title:    strings.TrimSpace(nb.Title),
		Author:   strings.TrimSpace(nb.Author),
		Pages:    catalog.Pages(strings.TrimSpace(nb.Pages)),
		Read:     nb.Read,
		CoverURL: strings.TrimSpace(nb.CoverURL),
	}
	if err := requireFields(b); err != nil {
		return catalog.Book{}, err
	}

	s.books = catalog.Append(s.books, b)
	if err := s.adapter.SaveCollection(s.books); err != nil {
		s.books = s.books[:len(s.books)-1]
		return catalog.Book{}, err
	}
	s.log.Debug("book added", zap.String("id", b.ID), zap.String("title", b.Title))

	s.render()
	return b, nil
}

// Remove deletes the book with the given ID and persists the library.
// The view is told which book went away, then told the library is empty if
// that was the last one.
func (s *Store) Remove(id string) (catalog.Book, error) {
	i := catalog.IndexOf(s.books, id)
	if i < 0 {
		return catalog.Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	removed := s.books[i]

	next := slices.Delete(slices.Clone(s.books), i, i+1)
	if err := s.adapter.SaveCollection(next); err != nil {
		return catalog.Book{}, err
	}
	s.books = next
	s.log.Debug("book removed", zap.String("id", id), zap.Int("remaining", len(next)))

	s.view.Removed(removed)
	if catalog.IsEmpty(s.books) {
		s.view.Empty()
	}
	return removed, nil
}

// ToggleRead flips the read flag of one book in place and persists the
// library. Display order is unaffected, so nothing is re-sorted.
func (s *Store) ToggleRead(id string) (catalog.Book, error) {
	i := catalog.IndexOf(s.books, id)
	if i < 0 {
		return catalog.Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.books[i].Read = !s.books[i].Read
	if err := s.adapter.SaveCollection(s.books); err != nil {
		s.books[i].Read = !s.books[i].Read
		return catalog.Book{}, err
	}
	b := s.books[i]
	s.log.Debug("read toggled", zap.String("id", id), zap.Bool("read", b.Read))

	s.view.Updated(b)
	return b, nil
}

// Edit applies fn to a copy of one book and stores the result in place.
// The ID cannot be changed. The library is re-rendered since a new title
// may move the book.
func (s *Store) Edit(id string, fn func(*catalog.Book)) (catalog.Book, error) {
	i := catalog.IndexOf(s.books, id)
	if i < 0 {
		return catalog.Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	prev := s.books[i]
	edited := prev
	fn(&edited)
	edited.ID = prev.ID
	if err := requireFields(edited); err != nil {
		return catalog.Book{}, err
	}

	s.books[i] = edited
	if err := s.adapter.SaveCollection(s.books); err != nil {
		s.books[i] = prev
		return catalog.Book{}, err
	}
	s.log.Debug("book edited", zap.String("id", id))

	s.render()
	return edited, nil
}

// SetSortOrder persists a new sort preference and re-renders.
func (s *Store) SetSortOrder(o catalog.SortOrder) error {
	if !o.Valid() {
		return fmt.Errorf("%w: %q", catalog.ErrInvalidSortOrder, o)
	}
	if err := s.adapter.SaveSortOrder(o); err != nil {
		return err
	}
	s.order = o
	s.log.Debug("sort order changed", zap.String("sort", string(o)))

	s.render()
	return nil
}

// Reset deletes the stored library, sort preference and theme, leaving an
// empty library with the default order. On failure the store reloads what is
// still stored.
func (s *Store) Reset() error {
	if err := s.adapter.Clear(); err != nil {
		if lerr := s.Load(); lerr != nil {
			s.log.Warn("reload after failed reset", zap.Error(lerr))
		}
		return err
	}
	order := s.adapter.DefaultSort
	if !order.Valid() {
		order = catalog.InsertAsc
	}
	s.books = []catalog.Book{}
	s.order = order
	s.theme = ""
	s.log.Debug("library reset")

	s.render()
	return nil
}

// ToggleTheme adds or removes the dark class from the theme and persists it.
// Returns the new class list.
func (s *Store) ToggleTheme() (string, error) {
	next := toggleClass(s.theme, DarkClass)
	if err := s.adapter.SaveTheme(next); err != nil {
		return s.theme, err
	}
	s.theme = next
	s.log.Debug("theme changed", zap.String("theme", next))
	return next, nil
}

// Books returns a copy of the library in insertion order.
func (s *Store) Books() []catalog.Book {
	return slices.Clone(s.books)
}

// Projection returns the library in the current display order.
func (s *Store) Projection() []catalog.Book {
	return catalog.Project(s.books, s.order)
}

// Get returns the book with the given ID.
func (s *Store) Get(id string) (catalog.Book, bool) {
	if b := catalog.ByID(s.books, id); b != nil {
		return *b, true
	}
	return catalog.Book{}, false
}

// Len returns the number of books.
func (s *Store) Len() int { return len(s.books) }

// SortOrder returns the current sort preference.
func (s *Store) SortOrder() catalog.SortOrder { return s.order }

// Theme returns the current theme class list.
func (s *Store) Theme() string { return s.theme }

// Dark reports whether the dark theme is active.
func (s *Store) Dark() bool { return hasClass(s.theme, DarkClass) }

// Stats counts read and unread books.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.books)}
	for _, b := range s.books {
		if b.Read {
			st.Read++
		}
	}
	st.Unread = st.Total - st.Read
	return st
}

func (s *Store) render() {
	if catalog.IsEmpty(s.books) {
		s.view.Empty()
		return
	}
	s.view.Render(s.Projection())
}

func requireFields(b catalog.Book) error {
	var missing []string
	if strings.TrimSpace(b.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(b.Author) == "" {
		missing = append(missing, "author")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

func hasClass(list, class string) bool {
	return slices.Contains(strings.Fields(list), class)
}

func toggleClass(list, class string) string {
	fields := strings.Fields(list)
	if i := slices.Index(fields, class); i >= 0 {
		fields = slices.Delete(fields, i, i+1)
	} else {
		fields = append(fields, class)
	}
	return strings.Join(fields, " ")
}
