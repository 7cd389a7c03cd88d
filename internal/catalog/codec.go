package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed marks stored library data that could not be decoded.
var ErrMalformed = errors.New("malformed library data")

// Parse decodes a JSON book array. Empty input and a JSON null both yield an
// empty list. Entries without an ID are given one derived from their
// position and content, so the same stored data yields the same IDs on every
// load. Any decode failure aborts the whole parse with an error wrapping
// ErrMalformed.
func Parse(data []byte) ([]Book, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Book{}, nil
	}
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if books == nil {
		return []Book{}, nil
	}
	for i := range books {
		if books[i].ID == "" {
			books[i].ID = legacyID(i, books[i])
		}
	}
	return books, nil
}

// Marshal encodes a book list as a JSON array. A nil list encodes as [].
func Marshal(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return nil, fmt.Errorf("encoding library: %w", err)
	}
	return data, nil
}

// Append adds a book to the end of the list and returns the updated slice.
func Append(books []Book, b Book) []Book {
	return append(books, b)
}

// Remove removes the first book with the given ID. Returns the updated slice
// and whether a book was actually removed.
func Remove(books []Book, id string) ([]Book, bool) {
	for i, b := range books {
		if b.ID == id {
			return append(books[:i], books[i+1:]...), true
		}
	}
	return books, false
}

// IndexOf returns the position of the book with the given ID, or -1.
func IndexOf(books []Book, id string) int {
	for i := range books {
		if books[i].ID == id {
			return i
		}
	}
	return -1
}
