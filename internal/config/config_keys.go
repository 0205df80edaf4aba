// config_keys.go gives string-keyed access to configuration for the CLI and
// MCP, where settings are addressed as "section.field".
//
// Optional fields are pointers so "not set" (nil) stays distinct from
// "explicitly set to zero/false"; defaults apply only to unset values.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name",
		"search.exclude", "search.workers", "search.case_sensitive",
		"limits.max_file_size", "limits.max_line_length",
		"log.file", "log.max_size",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "search.exclude":
		return c.Search.Exclude, nil
	case "search.workers":
		return strconv.Itoa(c.Workers()), nil
	case "search.case_sensitive":
		return strconv.FormatBool(c.CaseSensitive()), nil
	case "limits.max_file_size":
		return strconv.FormatInt(c.MaxFileSize(), 10), nil
	case "limits.max_line_length":
		return strconv.Itoa(c.MaxLineLength()), nil
	case "log.file":
		return c.Log.File, nil
	case "log.max_size":
		return strconv.Itoa(c.LogMaxSize()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key. Numeric values are checked
// against the same bounds Validate applies on load.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "search.exclude":
		c.Search.Exclude = value
	case "search.workers":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		c.Search.Workers = &n
	case "search.case_sensitive":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
		}
		b := v == "true"
		c.Search.CaseSensitive = &b
	case "limits.max_file_size":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", ErrInvalidValue, key)
		}
		c.Limits.MaxFileSize = &n
	case "limits.max_line_length":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		c.Limits.MaxLineLength = &n
	case "log.file":
		c.Log.File = value
	case "log.max_size":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		c.Log.MaxSize = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

func positiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidValue, key)
	}
	return n, nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	all := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		all[k], _ = c.Get(k)
	}
	return all
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "search.exclude":
		return c.Search.Exclude != ""
	case "search.workers":
		return c.Search.Workers != nil
	case "search.case_sensitive":
		return c.Search.CaseSensitive != nil
	case "limits.max_file_size":
		return c.Limits.MaxFileSize != nil
	case "limits.max_line_length":
		return c.Limits.MaxLineLength != nil
	case "log.file":
		return c.Log.File != ""
	case "log.max_size":
		return c.Log.MaxSize != nil
	default:
		return false
	}
}

// Excludes returns the configured extra exclude tokens, split on commas.
func (c *Config) Excludes() []string {
	var out []string
	for _, e := range strings.Split(c.Search.Exclude, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
