// Package config reads and writes sift configuration.
// Supports both global (~/.sift/config.yaml) and local (.sift/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.sift/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project config in .sift/config.yaml
	ScopeLocal
)

// Dir is the name of the directory holding sift's config and log.
const Dir = ".sift"

// Author is recorded against audit log entries.
type Author struct {
	Name string `yaml:"name,omitempty"`
}

// Search holds defaults applied to every search.
type Search struct {
	// Exclude is a comma-separated list merged into the default excludes.
	Exclude       string `yaml:"exclude,omitempty"`
	Workers       *int   `yaml:"workers,omitempty"`
	CaseSensitive *bool  `yaml:"case_sensitive,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxFileSize   *int64 `yaml:"max_file_size,omitempty"`
	MaxLineLength *int   `yaml:"max_line_length,omitempty"`
}

// Log configures the diagnostic log written by `sift serve`.
type Log struct {
	File    string `yaml:"file,omitempty"`
	MaxSize *int   `yaml:"max_size,omitempty"` // megabytes before rotation
}

// Defaults applied when not configured.
const (
	DefaultWorkers    = 1
	DefaultLogMaxSize = 10 // MB
)

// Validation bounds for configuration values.
const (
	MinWorkers       = 1
	MaxWorkers       = 256
	MinMaxFileSize   = 1
	MaxMaxFileSize   = 10 * 1024 * 1024 * 1024 // 10 GB
	MinMaxLineLength = 1
	MaxMaxLineLength = 1024 * 1024 * 1024 // 1 GB
	MinLogMaxSize    = 1
	MaxLogMaxSize    = 10 * 1024 // 10 GB
)

// Config contains configuration for sift.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Search Search `yaml:"search,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`
	Log    Log    `yaml:"log,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Search.Workers != nil {
		if err := bounds("search.workers", int64(*c.Search.Workers), MinWorkers, MaxWorkers); err != nil {
			return err
		}
	}
	if c.Limits.MaxFileSize != nil {
		if err := bounds("limits.max_file_size", *c.Limits.MaxFileSize, MinMaxFileSize, MaxMaxFileSize); err != nil {
			return err
		}
	}
	if c.Limits.MaxLineLength != nil {
		if err := bounds("limits.max_line_length", int64(*c.Limits.MaxLineLength), MinMaxLineLength, MaxMaxLineLength); err != nil {
			return err
		}
	}
	if c.Log.MaxSize != nil {
		if err := bounds("log.max_size", int64(*c.Log.MaxSize), MinLogMaxSize, MaxLogMaxSize); err != nil {
			return err
		}
	}
	return nil
}

func bounds(key string, v, lo, hi int64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			ErrInvalidValue, key, lo, hi, v)
	}
	return nil
}

// Workers returns how many files a search scans concurrently (defaults to 1).
func (c *Config) Workers() int {
	if c.Search.Workers == nil {
		return DefaultWorkers
	}
	return *c.Search.Workers
}

// CaseSensitive returns the default for --case-sensitive (defaults to false).
func (c *Config) CaseSensitive() bool {
	if c.Search.CaseSensitive == nil {
		return false
	}
	return *c.Search.CaseSensitive
}

// MaxFileSize returns the largest file a search reads. Unset means no
// limit and returns 0.
func (c *Config) MaxFileSize() int64 {
	if c.Limits.MaxFileSize == nil {
		return 0
	}
	return *c.Limits.MaxFileSize
}

// MaxLineLength returns the longest line a search scans, or 0 when unset.
// With a cap set, files with a longer line are skipped.
func (c *Config) MaxLineLength() int {
	if c.Limits.MaxLineLength == nil {
		return 0
	}
	return *c.Limits.MaxLineLength
}

// LogMaxSize returns the server log rotation size in megabytes.
func (c *Config) LogMaxSize() int {
	if c.Log.MaxSize == nil {
		return DefaultLogMaxSize
	}
	return *c.Log.MaxSize
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.sift/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path,
// creating parent directories as needed.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
