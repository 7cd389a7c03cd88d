package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/bookcase/internal/util"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPlaceholderCover is shown for books without a cover URL.
const DefaultPlaceholderCover = "missing_cover.jpg"

// DefaultQuotaBytes mirrors the 5 MiB most browsers give local storage.
const DefaultQuotaBytes = 5 << 20

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookcase", "config.yml")
}

// Load reads the config from disk (or env). A missing file is fine;
// defaults cover every setting.
//
// path overrides the file location; see ResolvePath.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("storage.quota_bytes", DefaultQuotaBytes)
	v.SetDefault("storage.ephemeral", false)
	v.SetDefault("display.placeholder_cover", DefaultPlaceholderCover)
	v.SetDefault("display.default_sort", "insert-asc")
	v.SetDefault("display.view", "list")
	v.SetDefault("index.path", defaultIndexPath())
	v.SetDefault("covers.dir", defaultCoversDir())
	v.SetDefault("covers.timeout", "30s")
	v.SetDefault("readme.path", defaultReadmePath())
	v.SetDefault("log.level", "warn")

	v.SetEnvPrefix("BOOKCASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(ResolvePath(path))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	cfg.Index.Path = ExpandHome(cfg.Index.Path)
	cfg.Covers.Dir = ExpandHome(cfg.Covers.Dir)
	cfg.Readme.Path = ExpandHome(cfg.Readme.Path)

	return &cfg, nil
}

// ResolvePath returns path, or BOOKCASE_CONFIG and then DefaultPath when
// path is empty.
func ResolvePath(path string) string {
	if path == "" {
		path = os.Getenv("BOOKCASE_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	return path
}

// Save writes the config as YAML to path (resolved like Load).
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return util.WriteFileAtomic(ResolvePath(path), buf.Bytes(), 0644)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "bookcase")
}

func defaultStoragePath() string {
	return filepath.Join(defaultDataDir(), "library.yml")
}

func defaultIndexPath() string {
	return filepath.Join(defaultDataDir(), "index.html")
}

func defaultCoversDir() string {
	return filepath.Join(defaultDataDir(), "covers")
}

func defaultReadmePath() string {
	return filepath.Join(defaultDataDir(), "README.md")
}
