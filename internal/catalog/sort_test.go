package catalog_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/blackwell-systems/bookcase/internal/catalog"
)

func titles(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func library(ts ...string) []catalog.Book {
	books := make([]catalog.Book, len(ts))
	for i, t := range ts {
		books[i] = catalog.Book{ID: t + "-" + string(rune('a'+i)), Title: t}
	}
	return books
}

func TestProject_Insertion(t *testing.T) {
	books := library("Dune", "Annihilation", "Piranesi")

	if got := titles(catalog.Project(books, catalog.InsertAsc)); !slices.Equal(got, []string{"Dune", "Annihilation", "Piranesi"}) {
		t.Errorf("insert-asc = %v", got)
	}
	if got := titles(catalog.Project(books, catalog.InsertDesc)); !slices.Equal(got, []string{"Piranesi", "Annihilation", "Dune"}) {
		t.Errorf("insert-dsc = %v", got)
	}
}

func TestProject_Title(t *testing.T) {
	books := library("Dune", "Annihilation")

	if got := titles(catalog.Project(books, catalog.TitleAsc)); !slices.Equal(got, []string{"Annihilation", "Dune"}) {
		t.Errorf("title-asc = %v", got)
	}
	if got := titles(catalog.Project(books, catalog.TitleDesc)); !slices.Equal(got, []string{"Dune", "Annihilation"}) {
		t.Errorf("title-dsc = %v", got)
	}
}

func TestProject_DoesNotMutate(t *testing.T) {
	books := library("b", "c", "a")
	_ = catalog.Project(books, catalog.TitleAsc)
	_ = catalog.Project(books, catalog.InsertDesc)
	if got := titles(books); !slices.Equal(got, []string{"b", "c", "a"}) {
		t.Errorf("input mutated: %v", got)
	}
}

func TestProject_Idempotent(t *testing.T) {
	books := library("Solaris", "dune", "Dune", "Émile", "Emile", "annihilation")
	for _, o := range catalog.SortOrders {
		first := catalog.Project(books, o)
		second := catalog.Project(books, o)
		if !slices.Equal(ids(first), ids(second)) {
			t.Errorf("%s not reproducible: %v vs %v", o, ids(first), ids(second))
		}
	}
}

func TestProject_DescIsInverseOfAsc(t *testing.T) {
	books := library("Solaris", "dune", "Dune", "Émile", "Emile", "annihilation", "Zed")
	asc := ids(catalog.Project(books, catalog.TitleAsc))
	desc := ids(catalog.Project(books, catalog.TitleDesc))
	slices.Reverse(desc)
	if !slices.Equal(asc, desc) {
		t.Errorf("title-dsc is not the inverse of title-asc:\n asc %v\n dsc %v", asc, desc)
	}
}

func TestProject_CaseAndAccentAware(t *testing.T) {
	books := library("Emile", "émile", "Émile", "emile")
	got := titles(catalog.Project(books, catalog.TitleAsc))
	// Unaccented before accented, lower case before upper case.
	want := []string{"emile", "Emile", "émile", "Émile"}
	if !slices.Equal(got, want) {
		t.Errorf("title-asc = %v, want %v", got, want)
	}
}

func TestProject_EqualTitlesKeepInsertionOrder(t *testing.T) {
	books := []catalog.Book{
		{ID: "first", Title: "Dune"},
		{ID: "other", Title: "Annihilation"},
		{ID: "second", Title: "Dune"},
	}
	if got := ids(catalog.Project(books, catalog.TitleAsc)); !slices.Equal(got, []string{"other", "first", "second"}) {
		t.Errorf("title-asc ties = %v", got)
	}
	if got := ids(catalog.Project(books, catalog.TitleDesc)); !slices.Equal(got, []string{"first", "second", "other"}) {
		t.Errorf("title-dsc ties = %v", got)
	}
}

func TestProject_Empty(t *testing.T) {
	got := catalog.Project(nil, catalog.TitleAsc)
	if got == nil || len(got) != 0 {
		t.Errorf("Project(nil) = %#v, want empty non-nil slice", got)
	}
	if !catalog.IsEmpty(got) {
		t.Error("IsEmpty(empty) = false")
	}
}

func TestParseSortOrder(t *testing.T) {
	cases := []struct {
		in   string
		want catalog.SortOrder
	}{
		{"insert-asc", catalog.InsertAsc},
		{"insert-dsc", catalog.InsertDesc},
		{"insert-desc", catalog.InsertDesc},
		{"title-asc", catalog.TitleAsc},
		{" TITLE-DSC ", catalog.TitleDesc},
		{"title-desc", catalog.TitleDesc},
	}
	for _, c := range cases {
		got, err := catalog.ParseSortOrder(c.in)
		if err != nil {
			t.Errorf("ParseSortOrder(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseSortOrder(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := catalog.ParseSortOrder("author-asc"); !errors.Is(err, catalog.ErrInvalidSortOrder) {
		t.Errorf("unknown order err = %v, want ErrInvalidSortOrder", err)
	}
}

func TestSortOrder_Next(t *testing.T) {
	o := catalog.InsertAsc
	seen := []catalog.SortOrder{o}
	for i := 0; i < len(catalog.SortOrders); i++ {
		o = o.Next()
		seen = append(seen, o)
	}
	if seen[len(seen)-1] != catalog.InsertAsc {
		t.Errorf("Next should cycle back to insert-asc, got %v", seen)
	}
	if catalog.SortOrder("bogus").Next() != catalog.InsertAsc {
		t.Error("Next of unknown order should start the cycle")
	}
}
