// Package cache keeps local copies of book cover images so the HTML index
// works offline.
package cache

import (
	"os"
	"path/filepath"
	"strings"
)

// Manager handles the local cover cache.
type Manager struct {
	baseDir string
}

// New creates a cache Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Dir returns the cache root.
func (m *Manager) Dir() string {
	return m.baseDir
}

// Path returns the cache path for a book's cover with the given extension.
// Layout: <baseDir>/<bookID><ext>
func (m *Manager) Path(bookID, ext string) string {
	return filepath.Join(m.baseDir, bookID+ext)
}

// Lookup returns the cached cover for bookID, whatever its image type.
func (m *Manager) Lookup(bookID string) (string, bool) {
	for _, ext := range imageExts {
		p := m.Path(bookID, ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Exists reports whether a cover is cached for bookID.
func (m *Manager) Exists(bookID string) bool {
	_, ok := m.Lookup(bookID)
	return ok
}

// EnsureDir creates the cache directory.
func (m *Manager) EnsureDir() error {
	return os.MkdirAll(m.baseDir, 0750)
}

// Remove deletes the cached cover if it exists.
func (m *Manager) Remove(bookID string) error {
	for _, ext := range imageExts {
		err := os.Remove(m.Path(bookID, ext))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Prune deletes cached covers whose book is no longer in keep.
// Returns the number of files removed.
func (m *Manager) Prune(keep map[string]bool) (int, error) {
	entries, err := os.ReadDir(m.baseDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !isImageExt(ext) {
			continue
		}
		if keep[strings.TrimSuffix(name, ext)] {
			continue
		}
		if err := os.Remove(filepath.Join(m.baseDir, name)); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
