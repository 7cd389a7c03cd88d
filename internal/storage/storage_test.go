package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/bookcase/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T, quota int64) map[string]storage.Store {
	t.Helper()
	fs, err := storage.OpenFile(filepath.Join(t.TempDir(), "data", "library.yml"), quota)
	require.NoError(t, err)
	return map[string]storage.Store{
		"memory": storage.NewMemory(quota),
		"file":   fs,
	}
}

func TestStore_SetGet(t *testing.T) {
	for name, s := range stores(t, 0) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("sortOrder")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("sortOrder", "title-asc"))
			require.NoError(t, s.Set("sortOrder", "title-dsc"))

			v, ok, err := s.Get("sortOrder")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "title-dsc", v)
		})
	}
}

func TestStore_RemoveAndKeys(t *testing.T) {
	for name, s := range stores(t, 0) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("displaymode", "dark"))
			require.NoError(t, s.Set("libraryBooks", "[]"))
			require.NoError(t, s.Remove("missing"))

			keys, err := s.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"displaymode", "libraryBooks"}, keys)

			require.NoError(t, s.Remove("displaymode"))
			_, ok, _ := s.Get("displaymode")
			assert.False(t, ok)
		})
	}
}

func TestStore_Quota(t *testing.T) {
	for name, s := range stores(t, 16) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("k", "0123456789"))

			err := s.Set("other", "0123456789")
			assert.ErrorIs(t, err, storage.ErrQuotaExceeded)

			// Replacing an existing value only counts the difference.
			require.NoError(t, s.Set("k", "abcdefghijklmno"))

			_, ok, _ := s.Get("other")
			assert.False(t, ok, "rejected write must not be stored")
		})
	}
}

func TestFileStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yml")
	s, err := storage.OpenFile(path, 0)
	require.NoError(t, err)

	books := `[{"title":"Dune","author":"Herbert","pages":"412","read":false,"bookImg":""}]`
	require.NoError(t, s.Set("libraryBooks", books))

	reopened, err := storage.OpenFile(path, 0)
	require.NoError(t, err)
	v, ok, err := reopened.Get("libraryBooks")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, books, v)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestOpenFile_Missing(t *testing.T) {
	s, err := storage.OpenFile(filepath.Join(t.TempDir(), "nope.yml"), 0)
	require.NoError(t, err)
	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestOpenFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yml")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0600))
	s, err := storage.OpenFile(path, 0)
	require.NoError(t, err)
	keys, _ := s.Keys()
	assert.Empty(t, keys)
}

func TestOpenFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("libraryBooks: [\n"), 0600))
	_, err := storage.OpenFile(path, 0)
	assert.Error(t, err)
}

func TestFileStore_WriteFailureKeepsPreviousValue(t *testing.T) {
	sub := filepath.Join(t.TempDir(), "sub")
	s, err := storage.OpenFile(filepath.Join(sub, "library.yml"), 0)
	require.NoError(t, err)

	// The parent "directory" becomes a regular file, so MkdirAll fails.
	require.NoError(t, os.WriteFile(sub, []byte("x"), 0600))

	err = s.Set("sortOrder", "title-asc")
	require.Error(t, err)
	_, ok, _ := s.Get("sortOrder")
	assert.False(t, ok)
}
