package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("get single key after set", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("config", "author.name", "Test User")

		out := env.run("config", "author.name")
		env.contains(out, "Test User")
	})

	t.Run("get all shows defaults", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config")
		env.contains(out, "author.name")
		env.contains(out, "search.workers: 1")
		env.contains(out, "limits.max_file_size: 0")
	})

	t.Run("writes global file", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("config", "search.workers", "4")
		_, err := os.Stat(filepath.Join(env.home, ".sift", "config.yaml"))
		assert.NoError(t, err)
	})

	t.Run("local overrides global", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("config", "search.workers", "4")
		env.run("config", "--local", "search.workers", "8")

		out := env.run("config", "search.workers")
		env.equals(out, "8")
		_, err := os.Stat(filepath.Join(env.dir, ".sift", "config.yaml"))
		assert.NoError(t, err)
	})
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"author name", "author.name", "New Name"},
		{"exclude", "search.exclude", "vendor,testdata"},
		{"workers", "search.workers", "8"},
		{"case sensitive", "search.case_sensitive", "true"},
		{"max file size", "limits.max_file_size", "2048"},
		{"max line length", "limits.max_line_length", "4096"},
		{"log file", "log.file", "/tmp/sift.log"},
		{"log max size", "log.max_size", "5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			env.run("config", tc.key, tc.value)

			out := env.run("config", tc.key)
			env.contains(out, tc.value)
		})
	}
}

func TestConfig_JSON(t *testing.T) {
	env := newTestEnv(t)

	var all map[string]string
	env.runJSON(&all, "config")
	assert.Equal(t, "1", all["search.workers"])
	assert.Equal(t, "false", all["search.case_sensitive"])
}

func TestConfig_Errors(t *testing.T) {
	t.Run("invalid key", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("config", "invalid.key", "value")
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("config", "search.workers", "0")
		assert.Error(t, err)
	})

	t.Run("malformed file fails search", func(t *testing.T) {
		env := newTestEnv(t)
		dir := filepath.Join(env.home, ".sift")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("search: [\n"), 0644))

		out, err := env.runErr("search", "x")
		require.Error(t, err)
		env.contains(out, "malformed config file")
	})
}
