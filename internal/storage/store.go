// Package storage provides the durable key-value text store that holds the
// library, the sort preference and the theme.
package storage

import "errors"

// ErrQuotaExceeded is returned when a write would grow the store past its quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a string key-value store with whole-value overwrite semantics.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Keys lists the stored keys in sorted order.
	Keys() ([]string, error)
}

// usage returns the number of bytes the entries occupy, counting keys and values.
func usage(entries map[string]string) int64 {
	var n int64
	for k, v := range entries {
		n += int64(len(k) + len(v))
	}
	return n
}

// fits reports whether replacing key with value keeps entries within quota.
// A quota of zero or less disables the check.
func fits(entries map[string]string, key, value string, quota int64) bool {
	if quota <= 0 {
		return true
	}
	n := usage(entries)
	if old, ok := entries[key]; ok {
		n -= int64(len(key) + len(old))
	}
	return n+int64(len(key)+len(value)) <= quota
}
