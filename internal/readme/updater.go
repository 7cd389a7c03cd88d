// Package readme keeps a Markdown summary of the library up to date.
//
// Update rewrites only the sections it owns (Quick Stats, Recently Added
// and Books) and leaves any other text in the file alone, so a README can
// carry hand-written notes next to the generated parts.
package readme

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/library"
	"github.com/blackwell-systems/bookcase/internal/util"
)

// MaxRecent is how many entries the Recently Added section keeps.
const MaxRecent = 10

const (
	title         = "# My Library"
	statsHeading  = "## Quick Stats"
	recentHeading = "## Recently Added"
	booksHeading  = "## Books"
)

// Update returns existing with the generated sections refreshed for books.
// books is the collection in insertion order; the Books table follows order.
func Update(existing string, books []catalog.Book, order catalog.SortOrder, now time.Time) string {
	content := existing
	if strings.TrimSpace(content) == "" {
		content = title + "\n"
	}
	content = replaceSection(content, statsHeading, statsBody(books, now))
	content = replaceSection(content, recentHeading, recentBody(books))
	content = replaceSection(content, booksHeading, booksBody(catalog.Project(books, order), order))
	return content
}

// UpdateFile applies Update to the README at path, creating it when missing.
func UpdateFile(path string, books []catalog.Book, order catalog.SortOrder, now time.Time) (created bool, err error) {
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		created = true
	case err != nil:
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	out := Update(string(data), books, order, now)
	if err := util.WriteFileAtomic(path, []byte(out), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return created, nil
}

func statsBody(books []catalog.Book, now time.Time) string {
	read := 0
	for _, b := range books {
		if b.Read {
			read++
		}
	}
	noun := "books"
	if len(books) == 1 {
		noun = "book"
	}
	return fmt.Sprintf("- **%d %s**, %d read\n- **Last Updated**: %s\n",
		len(books), noun, read, now.Format("2006-01-02"))
}

// recentBody lists the newest books first.
func recentBody(books []catalog.Book) string {
	if catalog.IsEmpty(books) {
		return library.EmptyNote + "\n"
	}
	var sb strings.Builder
	for i := len(books) - 1; i >= 0 && len(books)-i <= MaxRecent; i-- {
		b := books[i]
		fmt.Fprintf(&sb, "- **%s** by %s (`%s`)\n", inline(b.Title), inline(b.Author), b.ID)
	}
	return sb.String()
}

func booksBody(books []catalog.Book, order catalog.SortOrder) string {
	if catalog.IsEmpty(books) {
		return library.EmptyNote + "\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "_%s_\n\n", order.Label())
	sb.WriteString("| Title | Author | Pages | Status |\n")
	sb.WriteString("|-------|--------|-------|--------|\n")
	for _, b := range books {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			cell(b.Title), cell(b.Author), cell(b.Pages.String()), b.ReadLabel())
	}
	return sb.String()
}

// replaceSection swaps the body under heading, up to the next level-two
// heading. A missing section is appended at the end.
func replaceSection(content, heading, body string) string {
	block := append([]string{heading, ""}, strings.Split(strings.TrimRight(body, "\n"), "\n")...)

	lines := strings.Split(content, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == heading {
			start = i
			break
		}
	}
	if start < 0 {
		out := strings.TrimRight(content, "\n")
		if out != "" {
			out += "\n\n"
		}
		return out + strings.Join(block, "\n") + "\n"
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "## ") {
			end = i
			break
		}
	}

	var out []string
	out = append(out, lines[:start]...)
	out = append(out, block...)
	if end < len(lines) {
		out = append(out, "")
		out = append(out, lines[end:]...)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
}

func inline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func cell(s string) string {
	return strings.ReplaceAll(inline(s), "|", `\|`)
}
