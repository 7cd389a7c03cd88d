package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects how the library is ordered for display.
type SortOrder string

const (
	InsertAsc  SortOrder = "insert-asc"
	InsertDesc SortOrder = "insert-dsc"
	TitleAsc   SortOrder = "title-asc"
	TitleDesc  SortOrder = "title-dsc"
)

// SortOrders lists every order in the sequence the UI cycles through.
var SortOrders = []SortOrder{InsertAsc, InsertDesc, TitleAsc, TitleDesc}

// ErrInvalidSortOrder is returned for an unknown sort key.
var ErrInvalidSortOrder = errors.New("invalid sort order")

// ParseSortOrder accepts the stored literals plus the spelled-out "-desc" forms.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "insert-asc":
		return InsertAsc, nil
	case "insert-dsc", "insert-desc":
		return InsertDesc, nil
	case "title-asc":
		return TitleAsc, nil
	case "title-dsc", "title-desc":
		return TitleDesc, nil
	}
	return "", fmt.Errorf("%w: %q (want one of insert-asc, insert-dsc, title-asc, title-dsc)", ErrInvalidSortOrder, s)
}

// Valid reports whether o is one of the known orders.
func (o SortOrder) Valid() bool {
	return slices.Contains(SortOrders, o)
}

// Next returns the order after o in SortOrders, wrapping around.
func (o SortOrder) Next() SortOrder {
	i := slices.Index(SortOrders, o)
	return SortOrders[(i+1)%len(SortOrders)]
}

// Label is a short human description.
func (o SortOrder) Label() string {
	switch o {
	case InsertAsc:
		return "Oldest first"
	case InsertDesc:
		return "Newest first"
	case TitleAsc:
		return "Title A-Z"
	case TitleDesc:
		return "Title Z-A"
	}
	return string(o)
}

// Project returns books in display order for o. The input is never modified.
//
// Title orders use English collation at tertiary strength: base letters,
// accents and case all count. Descending uses the negated comparator rather
// than reversing the ascending result, so equal titles keep insertion order
// in both directions.
func Project(books []Book, o SortOrder) []Book {
	out := slices.Clone(books)
	if out == nil {
		out = []Book{}
	}

	switch o {
	case InsertDesc:
		slices.Reverse(out)
	case TitleAsc, TitleDesc:
		c := collate.New(language.English)
		sign := 1
		if o == TitleDesc {
			sign = -1
		}
		slices.SortStableFunc(out, func(a, b Book) int {
			return sign * c.CompareString(a.Title, b.Title)
		})
	}
	return out
}

// IsEmpty reports whether there is nothing to display.
func IsEmpty(books []Book) bool {
	return len(books) == 0
}
