package catalog

import (
	"fmt"

	"github.com/blackwell-systems/bookcase/internal/storage"
)

// Storage keys. These match the layout browsers used for the same data, so a
// dumped localStorage can be dropped straight into a store.
const (
	KeyBooks     = "libraryBooks"
	KeySortOrder = "sortOrder"
	KeyTheme     = "displaymode"
)

// Adapter reads and writes the library, the sort preference and the theme
// as three independent entries of a key-value store.
type Adapter struct {
	store storage.Store

	// DefaultSort is returned by LoadSortOrder when nothing valid is stored.
	DefaultSort SortOrder
}

// NewAdapter wraps a storage backend.
func NewAdapter(store storage.Store) *Adapter {
	return &Adapter{store: store, DefaultSort: InsertAsc}
}

// SaveCollection overwrites the stored library with books.
func (a *Adapter) SaveCollection(books []Book) error {
	data, err := Marshal(books)
	if err != nil {
		return err
	}
	if err := a.store.Set(KeyBooks, string(data)); err != nil {
		return fmt.Errorf("saving library: %w", err)
	}
	return nil
}

// LoadCollection decodes the stored library into fresh records.
// A missing entry yields an empty list. Undecodable data returns an error
// wrapping ErrMalformed.
func (a *Adapter) LoadCollection() ([]Book, error) {
	raw, ok, err := a.store.Get(KeyBooks)
	if err != nil {
		return nil, fmt.Errorf("reading library: %w", err)
	}
	if !ok {
		return []Book{}, nil
	}
	return Parse([]byte(raw))
}

// SaveSortOrder stores the sort preference.
func (a *Adapter) SaveSortOrder(order SortOrder) error {
	if err := a.store.Set(KeySortOrder, string(order)); err != nil {
		return fmt.Errorf("saving sort order: %w", err)
	}
	return nil
}

// LoadSortOrder returns the stored sort preference, or DefaultSort when the
// entry is absent or holds an unknown value.
func (a *Adapter) LoadSortOrder() (SortOrder, error) {
	def := a.DefaultSort
	if !def.Valid() {
		def = InsertAsc
	}
	raw, ok, err := a.store.Get(KeySortOrder)
	if err != nil {
		return def, fmt.Errorf("reading sort order: %w", err)
	}
	if !ok {
		return def, nil
	}
	order, err := ParseSortOrder(raw)
	if err != nil {
		return def, nil
	}
	return order, nil
}

// SaveTheme stores the theme class list.
func (a *Adapter) SaveTheme(classes string) error {
	if err := a.store.Set(KeyTheme, classes); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// LoadTheme returns the stored theme class list, or "" when absent.
func (a *Adapter) LoadTheme() (string, error) {
	raw, _, err := a.store.Get(KeyTheme)
	if err != nil {
		return "", fmt.Errorf("reading theme: %w", err)
	}
	return raw, nil
}

// Clear removes every entry the adapter owns. Other keys in the store are
// left alone.
func (a *Adapter) Clear() error {
	keys, err := a.store.Keys()
	if err != nil {
		return fmt.Errorf("listing stored keys: %w", err)
	}
	for _, k := range keys {
		switch k {
		case KeyBooks, KeySortOrder, KeyTheme:
			if err := a.store.Remove(k); err != nil {
				return fmt.Errorf("removing %s: %w", k, err)
			}
		}
	}
	return nil
}
