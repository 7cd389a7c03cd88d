package storage

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/blackwell-systems/bookcase/internal/util"
	"gopkg.in/yaml.v3"
)

// FileStore keeps every entry in a single YAML document on disk.
// Each write rewrites the whole document through a temp file and rename,
// so a crash never leaves a half-written library behind.
type FileStore struct {
	mu      sync.Mutex
	path    string
	quota   int64
	entries map[string]string
}

// OpenFile loads the store at path. A missing file yields an empty store;
// the file and its parent directories are created on the first write.
func OpenFile(path string, quota int64) (*FileStore, error) {
	s := &FileStore{path: path, quota: quota, entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading store: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	if err := yaml.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", path, err)
	}
	if s.entries == nil {
		s.entries = make(map[string]string)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !fits(s.entries, key, value, s.quota) {
		return ErrQuotaExceeded
	}

	prev, existed := s.entries[key]
	s.entries[key] = value
	if err := s.flush(); err != nil {
		if existed {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.entries[key]
	if !existed {
		return nil
	}
	delete(s.entries, key)
	if err := s.flush(); err != nil {
		s.entries[key] = prev
		return err
	}
	return nil
}

func (s *FileStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// flush writes the current entries to disk. Callers hold s.mu.
func (s *FileStore) flush() error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.entries); err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := util.WriteFileAtomic(s.path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	return nil
}
