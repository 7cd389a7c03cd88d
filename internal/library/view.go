package library

import "github.com/blackwell-systems/bookcase/internal/catalog"

// EmptyNote is shown in place of an empty library.
const EmptyNote = "You seem to not have any books in your library…"

// View is the presentation side of the store. The store calls it after each
// change has been persisted.
type View interface {
	// Render receives the whole library in display order. It is never
	// called with an empty slice; Empty is called instead.
	Render(books []catalog.Book)
	// Empty signals that there are no books to show.
	Empty()
	// Removed reports a deleted book so the view can animate it out
	// before detaching it.
	Removed(book catalog.Book)
	// Updated reports a book changed in place without affecting order.
	Updated(book catalog.Book)
}

// NopView ignores every notification.
type NopView struct{}

func (NopView) Render([]catalog.Book) {}
func (NopView) Empty()                {}
func (NopView) Removed(catalog.Book)  {}
func (NopView) Updated(catalog.Book)  {}
