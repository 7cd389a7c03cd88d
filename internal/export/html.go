// Package export renders the library as a standalone HTML page of book cards.
package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/util"
)

// Page describes one rendered library page.
type Page struct {
	Books       []catalog.Book // already in display order
	Theme       string         // body class list
	Placeholder string         // cover used when a book has none
	SortOrder   catalog.SortOrder
	Covers      map[string]string // book ID → local cover, preferred over the URL
}

type card struct {
	Title    string
	Author   string
	Pages    string
	Read     bool
	Status   string
	CoverURL string
	ID       string
}

type pageData struct {
	Theme     string
	SortLabel string
	Count     int
	Noun      string // "book" or "books"
	ReadCount int
	Cards     []card
}

// Render returns the HTML document for p.
func Render(p Page) ([]byte, error) {
	data := pageData{
		Theme:     p.Theme,
		SortLabel: p.SortOrder.Label(),
		Count:     len(p.Books),
		Noun:      "books",
	}
	if len(p.Books) == 1 {
		data.Noun = "book"
	}
	for _, b := range p.Books {
		cover := b.CoverOr(p.Placeholder)
		if local, ok := p.Covers[b.ID]; ok {
			cover = local
		}
		if b.Read {
			data.ReadCount++
		}
		data.Cards = append(data.Cards, card{
			ID:       b.ID,
			Title:    b.Title,
			Author:   b.Author,
			Pages:    b.Pages.String(),
			Read:     b.Read,
			Status:   b.ReadLabel(),
			CoverURL: cover,
		})
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders p and writes it to path.
func WriteFile(path string, p Page) error {
	out, err := Render(p)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(path, out, 0644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

var pageTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>My Library</title>
    <style>
        :root { --accent: #fb6820; --teal: #1b8487; }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #f4f1ea; color: #222; line-height: 1.5; padding: 24px; }
        body.dark { background: #1a1a1a; color: #e0e0e0; }
        header { max-width: 1200px; margin: 0 auto 20px; }
        h1 { font-size: 2rem; }
        .subtitle { color: #888; font-size: 0.9rem; }
        #library { max-width: 1200px; margin: 0 auto; display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 20px; }
        .book-card { background: #fff; border: 1px solid #ddd; border-radius: 8px; overflow: hidden; display: flex; flex-direction: column; }
        body.dark .book-card { background: #1c2829; border-color: #1e3a3c; }
        .book-card img { width: 100%; aspect-ratio: 2 / 3; object-fit: cover; background: #ccc; }
        .bookCard-info { padding: 12px; display: flex; flex-direction: column; gap: 8px; flex: 1; }
        .title { font-weight: 600; }
        .author, .pages { color: #777; font-size: 0.9rem; }
        .readBtn { align-self: flex-start; border: 1px solid var(--teal); border-radius: 4px; padding: 2px 10px; font-size: 0.85rem; color: var(--teal); }
        .readBtn.active-reading { background: var(--teal); color: #fff; }
        .note-container { grid-column: 1 / -1; text-align: center; padding: 40px; }
        .note { margin-bottom: 10px; }
    </style>
</head>
<body class="{{.Theme}}">
    <header>
        <h1>My Library</h1>
        <div class="subtitle">{{.Count}} {{.Noun}} · {{.ReadCount}} read · {{.SortLabel}}</div>
    </header>
    <main id="library">
{{- if .Cards}}
{{- range .Cards}}
        <div class="book-card" data-id="{{.ID}}">
            <img src="{{.CoverURL}}" alt="{{.Title}} cover image">
            <div class="bookCard-info">
                <div class="book-info">
                    <p class="title">{{.Title}}</p>
                    <p class="author">{{.Author}}</p>
                    <p class="pages">{{.Pages}} pages</p>
                </div>
                <div class="bookStatus">
                    <span class="readBtn{{if .Read}} active-reading{{end}}">{{.Status}}</span>
                </div>
            </div>
        </div>
{{- end}}
{{- else}}
        <div class="note-container">
            <p class="note">You seem to not have any books in your library. Run "bookcase add" to get started!</p>
            <p class="note">Note that this page is a snapshot of your local library file.</p>
        </div>
{{- end}}
    </main>
</body>
</html>
`))
