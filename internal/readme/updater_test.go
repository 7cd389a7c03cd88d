package readme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/library"
)

var day = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func books(titles ...string) []catalog.Book {
	var out []catalog.Book
	for i, t := range titles {
		out = append(out, catalog.Book{
			ID:     strings.ToLower(t),
			Title:  t,
			Author: "Author",
			Pages:  "100",
			Read:   i%2 == 0,
		})
	}
	return out
}

func TestUpdate_FromEmpty(t *testing.T) {
	got := Update("", books("Dune", "Emma"), catalog.InsertAsc, day)

	if !strings.HasPrefix(got, "# My Library\n") {
		t.Errorf("missing title:\n%s", got)
	}
	for _, want := range []string{
		"- **2 books**, 1 read",
		"- **Last Updated**: 2024-03-09",
		"| Dune | Author | 100 | Read |",
		"| Emma | Author | 100 | Not Read |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Index(got, "**Emma**") > strings.Index(got, "**Dune**") {
		t.Error("recently added should list newest first")
	}
}

func TestUpdate_Singular(t *testing.T) {
	got := Update("", books("Dune"), catalog.InsertAsc, day)
	if !strings.Contains(got, "**1 book**") {
		t.Errorf("expected singular count:\n%s", got)
	}
}

func TestUpdate_KeepsOtherSections(t *testing.T) {
	existing := "# Shelf\n\nHand-written intro.\n\n## Quick Stats\n\n- **9 books**\n\n## Wishlist\n\n- Ulysses\n"
	got := Update(existing, books("Dune"), catalog.InsertAsc, day)

	if !strings.HasPrefix(got, "# Shelf\n\nHand-written intro.\n") {
		t.Errorf("intro lost:\n%s", got)
	}
	if strings.Contains(got, "9 books") {
		t.Error("old stats kept")
	}
	if !strings.Contains(got, "## Wishlist\n\n- Ulysses\n") {
		t.Errorf("unrelated section lost:\n%s", got)
	}
	if strings.Count(got, "## Quick Stats") != 1 {
		t.Error("stats section duplicated")
	}
}

func TestUpdate_Idempotent(t *testing.T) {
	bs := books("Dune", "Emma", "Annihilation")
	once := Update("", bs, catalog.TitleAsc, day)
	twice := Update(once, bs, catalog.TitleAsc, day)
	if once != twice {
		t.Errorf("second update changed output:\n%s\n---\n%s", once, twice)
	}
}

func TestUpdate_FollowsSortOrder(t *testing.T) {
	got := Update("", books("b", "C", "a"), catalog.TitleAsc, day)
	table := got[strings.Index(got, "## Books"):]
	a, b, c := strings.Index(table, "| a "), strings.Index(table, "| b "), strings.Index(table, "| C ")
	if !(a < b && b < c) {
		t.Errorf("table not in title order:\n%s", table)
	}
}

func TestUpdate_RecentLimit(t *testing.T) {
	var titles []string
	for i := 0; i < MaxRecent+3; i++ {
		titles = append(titles, "Book"+string(rune('A'+i)))
	}
	got := Update("", books(titles...), catalog.InsertAsc, day)
	recent := got[strings.Index(got, "## Recently Added"):strings.Index(got, "## Books")]
	if n := strings.Count(recent, "- **"); n != MaxRecent {
		t.Errorf("recent entries = %d, want %d", n, MaxRecent)
	}
	if strings.Contains(recent, "BookA") {
		t.Error("oldest book should have dropped off")
	}
}

func TestUpdate_EmptyLibrary(t *testing.T) {
	got := Update("", nil, catalog.InsertAsc, day)
	if !strings.Contains(got, "- **0 books**, 0 read") {
		t.Errorf("stats:\n%s", got)
	}
	if strings.Count(got, library.EmptyNote) != 2 {
		t.Errorf("expected empty note in recent and books sections:\n%s", got)
	}
	if strings.Contains(got, "| Title |") {
		t.Error("table header shown for empty library")
	}
}

func TestCell_EscapesPipes(t *testing.T) {
	if got := cell("Good | Evil\nAgain"); got != `Good \| Evil Again` {
		t.Errorf("cell = %q", got)
	}
}

func TestUpdateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")

	created, err := UpdateFile(path, books("Dune"), catalog.InsertAsc, day)
	if err != nil || !created {
		t.Fatalf("UpdateFile() = %v, %v", created, err)
	}

	notes := "\n## Notes\n\nMine.\n"
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString(notes)
	_ = f.Close()

	created, err = UpdateFile(path, books("Dune", "Emma"), catalog.InsertAsc, day)
	if err != nil || created {
		t.Fatalf("second UpdateFile() = %v, %v", created, err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "## Notes\n\nMine.") || !strings.Contains(string(data), "2 books") {
		t.Errorf("README:\n%s", data)
	}
}
