package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Book is one entry in the library.
type Book struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Pages    Pages  `json:"pages"`
	Read     bool   `json:"read"`
	CoverURL string `json:"bookImg"`
}

// NewID returns a fresh stable identifier for a book.
func NewID() string {
	return uuid.NewString()
}

// legacyNamespace scopes IDs derived for records stored without one.
var legacyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("bookcase:legacy-book"))

// legacyID derives a stable ID for the record at position i.
func legacyID(i int, b Book) string {
	key := fmt.Sprintf("%d\x00%s\x00%s", i, b.Title, b.Author)
	return uuid.NewSHA1(legacyNamespace, []byte(key)).String()
}

// CoverOr returns the cover URL, or placeholder when none was given.
func (b Book) CoverOr(placeholder string) string {
	if strings.TrimSpace(b.CoverURL) == "" {
		return placeholder
	}
	return b.CoverURL
}

// ReadLabel is the status text shown on a book's read button.
func (b Book) ReadLabel() string {
	if b.Read {
		return "Read"
	}
	return "Not Read"
}

// Pages is a free-form page count. Stored libraries usually hold a JSON
// string or a JSON number here; anything else is kept as its raw JSON text.
// It always encodes as a string.
type Pages string

// UnmarshalJSON accepts any JSON value. null decodes as empty.
func (p *Pages) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Pages(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*p = Pages(data)
		return nil
	}
	*p = Pages(n.String())
	return nil
}

func (p Pages) String() string {
	return string(p)
}
