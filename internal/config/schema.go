package config

import (
	"time"

	"github.com/blackwell-systems/bookcase/internal/catalog"
)

// Config is the top-level bookcase configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Index   IndexConfig   `mapstructure:"index" yaml:"index"`
	Covers  CoversConfig  `mapstructure:"covers" yaml:"covers"`
	Readme  ReadmeConfig  `mapstructure:"readme" yaml:"readme"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// StorageConfig locates the key-value file that holds the library.
type StorageConfig struct {
	Path       string `mapstructure:"path" yaml:"path"`
	QuotaBytes int64  `mapstructure:"quota_bytes" yaml:"quota_bytes"` // 0 disables the quota
	Ephemeral  bool   `mapstructure:"ephemeral" yaml:"-"`             // keep everything in memory
}

// DisplayConfig holds presentation defaults.
type DisplayConfig struct {
	PlaceholderCover string `mapstructure:"placeholder_cover" yaml:"placeholder_cover"`
	DefaultSort      string `mapstructure:"default_sort" yaml:"default_sort"`
	View             string `mapstructure:"view" yaml:"view"` // "list" or "cards"
}

// IndexConfig controls the HTML card export.
type IndexConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// CoversConfig controls the local cover image cache.
type CoversConfig struct {
	Dir     string        `mapstructure:"dir" yaml:"dir"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ReadmeConfig locates the generated Markdown summary.
type ReadmeConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// EffectiveSort returns the configured default sort, or insert-asc when the
// setting is empty or unknown.
func (d DisplayConfig) EffectiveSort() catalog.SortOrder {
	if o, err := catalog.ParseSortOrder(d.DefaultSort); err == nil {
		return o
	}
	return catalog.InsertAsc
}

// EffectivePlaceholder returns the cover used for books without one.
func (d DisplayConfig) EffectivePlaceholder() string {
	if d.PlaceholderCover != "" {
		return d.PlaceholderCover
	}
	return DefaultPlaceholderCover
}

// CardView reports whether the browser should open in card layout.
func (d DisplayConfig) CardView() bool {
	return d.View == "cards"
}
