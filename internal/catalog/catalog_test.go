package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/blackwell-systems/bookcase/internal/catalog"
)

var sampleJSON = []byte(`[
  {"id":"b1","title":"Dune","author":"Frank Herbert","pages":"412","read":false,"bookImg":""},
  {"id":"b2","title":"Annihilation","author":"Jeff VanderMeer","pages":195,"read":true,"bookImg":"https://example.com/a.jpg"}
]`)

// --- Parse / Marshal ---

func TestParse_Valid(t *testing.T) {
	books, err := catalog.Parse(sampleJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].Title != "Dune" {
		t.Errorf("books[0].Title = %q, want %q", books[0].Title, "Dune")
	}
	if books[1].CoverURL != "https://example.com/a.jpg" {
		t.Errorf("books[1].CoverURL = %q", books[1].CoverURL)
	}
	if !books[1].Read {
		t.Error("books[1].Read = false, want true")
	}
}

func TestParse_NumericPages(t *testing.T) {
	books, err := catalog.Parse(sampleJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if books[1].Pages != "195" {
		t.Errorf("numeric pages decoded as %q, want %q", books[1].Pages, "195")
	}
}

func TestParse_FreeFormPages(t *testing.T) {
	books, err := catalog.Parse([]byte(`[{"title":"Zine","author":"Anon","pages":"about forty","read":false,"bookImg":""},{"title":"X","author":"Y","pages":null}]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if books[0].Pages != "about forty" {
		t.Errorf("pages = %q, want free-form text kept", books[0].Pages)
	}
	if books[1].Pages != "" {
		t.Errorf("null pages = %q, want empty", books[1].Pages)
	}
}

func TestParse_AssignsMissingIDs(t *testing.T) {
	books, err := catalog.Parse([]byte(`[{"title":"A","author":"x","pages":"1","read":false,"bookImg":""},{"title":"A","author":"x","pages":"1","read":false,"bookImg":""}]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if books[0].ID == "" || books[1].ID == "" {
		t.Fatal("expected IDs to be assigned")
	}
	if books[0].ID == books[1].ID {
		t.Error("identical records must still get distinct IDs")
	}
}

func TestParse_MissingIDsAreStable(t *testing.T) {
	data := []byte(`[{"title":"Dune","author":"Frank Herbert"},{"title":"Emma","author":"Jane Austen"}]`)
	first, err := catalog.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := catalog.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("book %d: ID %q then %q, want the same on every load", i, first[i].ID, second[i].ID)
		}
	}
	if first[0].ID == first[1].ID {
		t.Error("different records share an ID")
	}
}

func TestParse_OddPagesKeptAsText(t *testing.T) {
	books, err := catalog.Parse([]byte(`[{"title":"A","author":"x","pages":true},{"title":"B","author":"y","pages":{"n":3}}]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if books[0].Pages != "true" {
		t.Errorf("bool pages = %q, want %q", books[0].Pages, "true")
	}
	if books[1].Pages != `{"n":3}` {
		t.Errorf("object pages = %q", books[1].Pages)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "  ", "null", "[]"} {
		books, err := catalog.Parse([]byte(in))
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if len(books) != 0 {
			t.Errorf("Parse(%q): expected 0 books, got %d", in, len(books))
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{"{not json", `{"title":"object not array"}`, `[{"title":"x","read":"yes"}]`} {
		_, err := catalog.Parse([]byte(in))
		if !errors.Is(err, catalog.ErrMalformed) {
			t.Errorf("Parse(%q) err = %v, want ErrMalformed", in, err)
		}
	}
}

func TestMarshal_WireFormat(t *testing.T) {
	data, err := catalog.Marshal([]catalog.Book{{ID: "x", Title: "Dune", Author: "Herbert", Pages: "412"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got := string(data)
	for _, want := range []string{`"title":"Dune"`, `"pages":"412"`, `"read":false`, `"bookImg":""`, `"id":"x"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Marshal output %s missing %s", got, want)
		}
	}
}

func TestMarshal_Nil(t *testing.T) {
	data, err := catalog.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal nil: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Marshal(nil) = %s, want []", data)
	}
}

// --- Append / Remove ---

func TestAppend_KeepsDuplicates(t *testing.T) {
	books, _ := catalog.Parse(sampleJSON)
	dup := books[0]
	dup.ID = "b3"
	books = catalog.Append(books, dup)
	if len(books) != 3 {
		t.Fatalf("expected 3 after append, got %d", len(books))
	}
	if books[2].ID != "b3" {
		t.Errorf("last book ID = %q, want %q", books[2].ID, "b3")
	}
}

func TestRemove_Existing(t *testing.T) {
	books, _ := catalog.Parse(sampleJSON)
	books, ok := catalog.Remove(books, "b1")
	if !ok {
		t.Error("Remove returned ok=false for existing book")
	}
	if len(books) != 1 || books[0].ID != "b2" {
		t.Errorf("remaining = %v, want [b2]", ids(books))
	}
}

func TestRemove_Missing(t *testing.T) {
	books, _ := catalog.Parse(sampleJSON)
	books, ok := catalog.Remove(books, "nope")
	if ok {
		t.Error("Remove returned ok=true for missing book")
	}
	if len(books) != 2 {
		t.Errorf("expected 2 books after no-op remove, got %d", len(books))
	}
}

// --- Book helpers ---

func TestCoverOr(t *testing.T) {
	b := catalog.Book{}
	if got := b.CoverOr("missing_cover.jpg"); got != "missing_cover.jpg" {
		t.Errorf("CoverOr empty = %q", got)
	}
	b.CoverURL = "https://example.com/c.jpg"
	if got := b.CoverOr("missing_cover.jpg"); got != b.CoverURL {
		t.Errorf("CoverOr set = %q", got)
	}
}

func TestReadLabel(t *testing.T) {
	if got := (catalog.Book{Read: true}).ReadLabel(); got != "Read" {
		t.Errorf("ReadLabel(true) = %q", got)
	}
	if got := (catalog.Book{}).ReadLabel(); got != "Not Read" {
		t.Errorf("ReadLabel(false) = %q", got)
	}
}

// --- Filter / Match ---

func TestFilter_Search(t *testing.T) {
	books, _ := catalog.Parse(sampleJSON)
	result := catalog.Filter{Search: "vandermeer"}.Apply(books)
	if len(result) != 1 || result[0].ID != "b2" {
		t.Errorf("search by author: got %v", ids(result))
	}
	result = catalog.Filter{Search: "DUNE"}.Apply(books)
	if len(result) != 1 || result[0].ID != "b1" {
		t.Errorf("search by title: got %v", ids(result))
	}
}

func TestFilter_ReadState(t *testing.T) {
	books, _ := catalog.Parse(sampleJSON)
	if got := ids(catalog.Filter{Read: catalog.ReadOnly}.Apply(books)); len(got) != 1 || got[0] != "b2" {
		t.Errorf("read filter: got %v", got)
	}
	if got := ids(catalog.Filter{Read: catalog.UnreadOnly}.Apply(books)); len(got) != 1 || got[0] != "b1" {
		t.Errorf("unread filter: got %v", got)
	}
}

func TestFilter_Empty(t *testing.T) {
	books, _ := catalog.Parse(sampleJSON)
	if got := (catalog.Filter{}).Apply(books); len(got) != 2 {
		t.Errorf("empty filter should return all books, got %d", len(got))
	}
}

func TestMatch(t *testing.T) {
	books, _ := catalog.Parse(sampleJSON)
	if got := catalog.Match(books, "b2"); len(got) != 1 || got[0].Title != "Annihilation" {
		t.Errorf("Match by ID: got %v", ids(got))
	}
	if got := catalog.Match(books, "dune"); len(got) != 1 || got[0].ID != "b1" {
		t.Errorf("Match by title: got %v", ids(got))
	}
	if got := catalog.Match(books, "jeff vandermeer"); len(got) != 1 || got[0].ID != "b2" {
		t.Errorf("Match by author: got %v", ids(got))
	}
	if got := catalog.Match(books, "b"); len(got) != 2 {
		t.Errorf("ambiguous prefix should return both, got %v", ids(got))
	}
	if got := catalog.Match(books, ""); got != nil {
		t.Errorf("empty ref should match nothing, got %v", ids(got))
	}
}

func ids(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}
