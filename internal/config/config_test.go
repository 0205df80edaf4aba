package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at fresh temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultWorkers, c.Workers())
	assert.False(t, c.CaseSensitive())
	assert.Zero(t, c.MaxFileSize(), "no file size limit unless configured")
	assert.Zero(t, c.MaxLineLength(), "no line length limit unless configured")
	assert.Equal(t, DefaultLogMaxSize, c.LogMaxSize())
	assert.Empty(t, c.Excludes())
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"author.name", "ada", "ada"},
		{"search.exclude", "vendor, tmp", "vendor, tmp"},
		{"search.workers", "4", "4"},
		{"search.case_sensitive", "TRUE", "true"},
		{"limits.max_file_size", "2048", "2048"},
		{"limits.max_line_length", "512", "512"},
		{"log.file", "/tmp/sift.log", "/tmp/sift.log"},
		{"log.max_size", "5", "5"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var c Config
			assert.False(t, c.IsSet(tt.key))
			require.NoError(t, c.Set(tt.key, tt.value))
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, c.IsSet(tt.key))
		})
	}
}

func TestSet_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"search.workers", "0"},
		{"search.workers", "many"},
		{"search.workers", "1000"},
		{"search.case_sensitive", "yes"},
		{"limits.max_file_size", "-1"},
		{"limits.max_line_length", "x"},
		{"log.max_size", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			var c Config
			assert.ErrorIs(t, c.Set(tt.key, tt.value), ErrInvalidValue)
		})
	}
}

func TestUnknownKey(t *testing.T) {
	var c Config
	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.ErrorIs(t, c.Set("nope", "1"), ErrUnknownKey)
	assert.False(t, IsValidKey("nope"))
	assert.True(t, IsValidKey("search.exclude"))
}

func TestAll(t *testing.T) {
	var c Config
	all := c.All()
	assert.Len(t, all, len(ValidKeys()))
	assert.Equal(t, "1", all["search.workers"])
}

func TestExcludes(t *testing.T) {
	c := Config{Search: Search{Exclude: " vendor ,, tmp"}}
	assert.Equal(t, []string{"vendor", "tmp"}, c.Excludes())
}

func TestSaveLoad_Global(t *testing.T) {
	home, _ := isolate(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeGlobal, c.Scope())
	require.NoError(t, c.Set("search.workers", "3"))
	require.NoError(t, c.Save())

	_, err = os.Stat(filepath.Join(home, Dir, "config.yaml"))
	require.NoError(t, err)

	c, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 3, c.Workers())
}

func TestLoad_LocalWins(t *testing.T) {
	isolate(t)

	global := &Config{}
	require.NoError(t, global.Set("author.name", "global"))
	require.NoError(t, global.SaveScope(ScopeGlobal))

	local := &Config{}
	require.NoError(t, local.Set("author.name", "local"))
	require.NoError(t, local.SaveScope(ScopeLocal))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, c.Scope())
	assert.Equal(t, "local", c.Author.Name)
}

func TestLoad_Malformed(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(Dir, 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("search: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed config file")
}

func TestLoad_OutOfBounds(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(Dir, 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("search:\n  workers: 0\n"), 0644))

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidValue)
}
