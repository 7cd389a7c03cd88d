package catalog

import "strings"

// ReadState filters on read status.
type ReadState string

const (
	ReadAny    ReadState = ""
	ReadOnly   ReadState = "read"
	UnreadOnly ReadState = "unread"
)

// Filter applies all non-empty criteria and returns matching books.
type Filter struct {
	Search string // matches title or author
	Read   ReadState
}

// Apply returns the subset of books matching all non-empty filter fields,
// preserving their order.
func (f Filter) Apply(books []Book) []Book {
	var out []Book
	for _, b := range books {
		if f.Read == ReadOnly && !b.Read {
			continue
		}
		if f.Read == UnreadOnly && b.Read {
			continue
		}
		if f.Search != "" && !matchesSearch(b, f.Search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// ByID returns the first book with the given ID, or nil.
func ByID(books []Book, id string) *Book {
	if i := IndexOf(books, id); i >= 0 {
		return &books[i]
	}
	return nil
}

// Match resolves a user-supplied reference: an exact ID, an ID prefix, or a
// case-insensitive exact title or author. Returns every candidate when
// ambiguous.
func Match(books []Book, ref string) []Book {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if b := ByID(books, ref); b != nil {
		return []Book{*b}
	}
	var out []Book
	for _, b := range books {
		if strings.HasPrefix(b.ID, ref) ||
			strings.EqualFold(b.Title, ref) ||
			strings.EqualFold(b.Author, ref) {
			out = append(out, b)
		}
	}
	return out
}

func matchesSearch(b Book, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(b.Title), q) {
		return true
	}
	return strings.Contains(strings.ToLower(b.Author), q)
}
