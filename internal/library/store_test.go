package library_test

import (
	"testing"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/library"
	"github.com/blackwell-systems/bookcase/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures what the store tells the view.
type recorder struct {
	renders [][]catalog.Book
	empties int
	removed []catalog.Book
	updated []catalog.Book
}

func (r *recorder) Render(books []catalog.Book) { r.renders = append(r.renders, books) }
func (r *recorder) Empty()                      { r.empties++ }
func (r *recorder) Removed(b catalog.Book)      { r.removed = append(r.removed, b) }
func (r *recorder) Updated(b catalog.Book)      { r.updated = append(r.updated, b) }

func (r *recorder) last() []string {
	if len(r.renders) == 0 {
		return nil
	}
	return titles(r.renders[len(r.renders)-1])
}

func titles(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func newStore(t *testing.T, s storage.Store) (*library.Store, *recorder) {
	t.Helper()
	rec := &recorder{}
	st := library.New(catalog.NewAdapter(s), library.WithView(rec))
	require.NoError(t, st.Load())
	return st, rec
}

// persisted decodes what is currently in storage.
func persisted(t *testing.T, s storage.Store) []catalog.Book {
	t.Helper()
	books, err := catalog.NewAdapter(s).LoadCollection()
	require.NoError(t, err)
	return books
}

var dune = library.NewBook{Title: "Dune", Author: "Herbert", Pages: "412"}
var annihilation = library.NewBook{Title: "Annihilation", Author: "VanderMeer", Pages: "195"}

func TestAdd_PersistsWithPlaceholderCover(t *testing.T) {
	mem := storage.NewMemory(0)
	st, rec := newStore(t, mem)

	b, err := st.Add(dune)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)

	got := persisted(t, mem)
	require.Len(t, got, 1)
	assert.False(t, got[0].Read)
	assert.Equal(t, "missing_cover.jpg", got[0].CoverOr("missing_cover.jpg"))
	assert.Equal(t, []string{"Dune"}, rec.last())
}

func TestAdd_MissingFields(t *testing.T) {
	mem := storage.NewMemory(0)
	st, _ := newStore(t, mem)

	_, err := st.Add(library.NewBook{Title: "  ", Author: "x"})
	assert.ErrorIs(t, err, library.ErrMissingField)
	_, err = st.Add(library.NewBook{Title: "x"})
	assert.ErrorIs(t, err, library.ErrMissingField)

	assert.Equal(t, 0, st.Len())
	_, ok, _ := mem.Get(catalog.KeyBooks)
	assert.False(t, ok, "nothing should be written for a rejected add")
}

func TestAdd_AppendsRegardlessOfSort(t *testing.T) {
	st, rec := newStore(t, storage.NewMemory(0))
	require.NoError(t, st.SetSortOrder(catalog.TitleAsc))

	_, err := st.Add(dune)
	require.NoError(t, err)
	_, err = st.Add(annihilation)
	require.NoError(t, err)

	assert.Equal(t, []string{"Dune", "Annihilation"}, titles(st.Books()))
	assert.Equal(t, []string{"Annihilation", "Dune"}, rec.last())

	require.NoError(t, st.SetSortOrder(catalog.TitleDesc))
	assert.Equal(t, []string{"Dune", "Annihilation"}, rec.last())
}

func TestWriteThroughInvariant(t *testing.T) {
	mem := storage.NewMemory(0)
	st, _ := newStore(t, mem)

	steps := []func() error{
		func() error { _, err := st.Add(dune); return err },
		func() error { _, err := st.Add(annihilation); return err },
		func() error { _, err := st.Add(dune); return err },
		func() error { _, err := st.ToggleRead(st.Books()[1].ID); return err },
		func() error { _, err := st.Remove(st.Books()[0].ID); return err },
		func() error { _, err := st.Remove(st.Books()[1].ID); return err },
		func() error { _, err := st.Remove(st.Books()[0].ID); return err },
	}
	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		assert.Equal(t, st.Books(), persisted(t, mem), "after step %d", i)
	}
}

func TestToggleRead_SurvivesReload(t *testing.T) {
	mem := storage.NewMemory(0)
	st, rec := newStore(t, mem)
	first, _ := st.Add(dune)
	_, _ = st.Add(annihilation)
	renders := len(rec.renders)

	b, err := st.ToggleRead(first.ID)
	require.NoError(t, err)
	assert.True(t, b.Read)
	assert.Len(t, rec.renders, renders, "toggling must not re-render")
	require.Len(t, rec.updated, 1)
	assert.Equal(t, first.ID, rec.updated[0].ID)

	reloaded, _ := newStore(t, mem)
	books := reloaded.Books()
	require.Len(t, books, 2)
	assert.True(t, books[0].Read)
	assert.Equal(t, []string{"Dune", "Annihilation"}, titles(books))
}

func TestRemove_OnlyBook(t *testing.T) {
	mem := storage.NewMemory(0)
	st, rec := newStore(t, mem)
	b, _ := st.Add(dune)
	empties := rec.empties

	removed, err := st.Remove(b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, removed)
	assert.Equal(t, 0, st.Len())

	raw, ok, _ := mem.Get(catalog.KeyBooks)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
	require.Len(t, rec.removed, 1)
	assert.Equal(t, empties+1, rec.empties)
}

func TestRemove_ByIdentityNotContent(t *testing.T) {
	st, _ := newStore(t, storage.NewMemory(0))
	a, _ := st.Add(dune)
	b, _ := st.Add(dune)

	_, err := st.Remove(b.ID)
	require.NoError(t, err)
	books := st.Books()
	require.Len(t, books, 1)
	assert.Equal(t, a.ID, books[0].ID)
}

func TestNotFound(t *testing.T) {
	st, _ := newStore(t, storage.NewMemory(0))
	_, err := st.Remove("nope")
	assert.ErrorIs(t, err, library.ErrNotFound)
	_, err = st.ToggleRead("nope")
	assert.ErrorIs(t, err, library.ErrNotFound)
	_, err = st.Edit("nope", func(*catalog.Book) {})
	assert.ErrorIs(t, err, library.ErrNotFound)
}

func TestLoad_EmptySignalsNoBooks(t *testing.T) {
	_, rec := newStore(t, storage.NewMemory(0))
	assert.Equal(t, 1, rec.empties)
	assert.Empty(t, rec.renders)
}

func TestLoad_MalformedIsSilentlyEmpty(t *testing.T) {
	mem := storage.NewMemory(0)
	require.NoError(t, mem.Set(catalog.KeyBooks, `[{"title":`))

	st, rec := newStore(t, mem)
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, 1, rec.empties)

	raw, _, _ := mem.Get(catalog.KeyBooks)
	assert.Equal(t, `[{"title":`, raw, "load must not write back")
}

func TestLoad_RendersInStoredOrder(t *testing.T) {
	mem := storage.NewMemory(0)
	require.NoError(t, mem.Set(catalog.KeyBooks, `[{"title":"Dune","author":"H","pages":"1","read":false,"bookImg":""},{"title":"Annihilation","author":"V","pages":2,"read":true,"bookImg":""}]`))
	require.NoError(t, mem.Set(catalog.KeySortOrder, "title-asc"))

	st, rec := newStore(t, mem)
	assert.Equal(t, catalog.TitleAsc, st.SortOrder())
	require.Len(t, rec.renders, 1)
	assert.Equal(t, []string{"Annihilation", "Dune"}, rec.last())
	assert.Equal(t, 0, rec.empties)
}

func TestQuotaExceeded_RollsBack(t *testing.T) {
	mem := storage.NewMemory(160)
	st, _ := newStore(t, mem)

	_, err := st.Add(library.NewBook{Title: "A", Author: "B"})
	require.NoError(t, err)
	before := persisted(t, mem)

	_, err = st.Add(library.NewBook{Title: "An extremely long title that will blow the quota", Author: "Someone"})
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)
	assert.Equal(t, before, st.Books())
	assert.Equal(t, before, persisted(t, mem))
}

func TestEdit(t *testing.T) {
	mem := storage.NewMemory(0)
	st, rec := newStore(t, mem)
	b, _ := st.Add(dune)
	_, _ = st.Add(annihilation)
	require.NoError(t, st.SetSortOrder(catalog.TitleAsc))

	edited, err := st.Edit(b.ID, func(bk *catalog.Book) {
		bk.Title = "Children of Dune"
		bk.ID = "hijack"
	})
	require.NoError(t, err)
	assert.Equal(t, b.ID, edited.ID, "ID must not change")
	assert.Equal(t, []string{"Annihilation", "Children of Dune"}, rec.last())
	assert.Equal(t, st.Books(), persisted(t, mem))

	_, err = st.Edit(b.ID, func(bk *catalog.Book) { bk.Author = "" })
	assert.ErrorIs(t, err, library.ErrMissingField)
}

func TestSetSortOrder(t *testing.T) {
	mem := storage.NewMemory(0)
	st, _ := newStore(t, mem)

	assert.ErrorIs(t, st.SetSortOrder("sideways"), catalog.ErrInvalidSortOrder)
	require.NoError(t, st.SetSortOrder(catalog.InsertDesc))

	raw, _, _ := mem.Get(catalog.KeySortOrder)
	assert.Equal(t, "insert-dsc", raw)
}

func TestToggleTheme(t *testing.T) {
	mem := storage.NewMemory(0)
	require.NoError(t, mem.Set(catalog.KeyTheme, "compact"))
	st, _ := newStore(t, mem)
	assert.False(t, st.Dark())

	theme, err := st.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, "compact dark", theme)
	assert.True(t, st.Dark())

	theme, err = st.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, "compact", theme)

	raw, _, _ := mem.Get(catalog.KeyTheme)
	assert.Equal(t, "compact", raw)
}

func TestStats(t *testing.T) {
	st, _ := newStore(t, storage.NewMemory(0))
	a, _ := st.Add(dune)
	_, _ = st.Add(annihilation)
	_, _ = st.ToggleRead(a.ID)

	assert.Equal(t, library.Stats{Total: 2, Read: 1, Unread: 1}, st.Stats())
}

func TestReset(t *testing.T) {
	mem := storage.NewMemory(0)
	st, rec := newStore(t, mem)
	_, _ = st.Add(dune)
	require.NoError(t, st.SetSortOrder(catalog.TitleDesc))
	_, err := st.ToggleTheme()
	require.NoError(t, err)
	empties := rec.empties

	require.NoError(t, st.Reset())

	assert.Equal(t, 0, st.Len())
	assert.Equal(t, catalog.InsertAsc, st.SortOrder())
	assert.False(t, st.Dark())
	assert.Equal(t, empties+1, rec.empties)

	keys, err := mem.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
