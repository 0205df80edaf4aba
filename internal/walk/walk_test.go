package walk

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/jpl-au/sift/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (with parent directories) under root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0644))
	}
}

// rel collects the walk and returns slash paths relative to root.
func rel(t *testing.T, root string, seq func(func(string) bool)) []string {
	t.Helper()
	var out []string
	for p := range seq {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestFiles_Order(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "b.txt", "a/z.txt", "a/b/c.txt", "c.txt", ".env")

	got := rel(t, root, Files(context.Background(), root, filter.New("", "")))
	assert.Equal(t, []string{".env", "a/b/c.txt", "a/z.txt", "b.txt", "c.txt"}, got)
}

func TestFiles_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "x/1", "x/2", "y/3", "4")

	f := filter.New("", "")
	first := rel(t, root, Files(context.Background(), root, f))
	second := rel(t, root, Files(context.Background(), root, f))
	assert.Equal(t, first, second)
}

// countingFilter records every directory the walker asks about.
type countingFilter struct {
	*filter.Filter
	asked []string
}

func (c *countingFilter) ShouldVisitDir(name string) bool {
	c.asked = append(c.asked, name)
	return c.Filter.ShouldVisitDir(name)
}

func TestFiles_PrunesExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/main.go",
		"node_modules/pkg/sentinel.js",
		"node_modules/pkg/deep/nested/x.js",
		"web/node_modules-backup/y.js",
	)

	cf := &countingFilter{Filter: filter.New("", "")}
	got := rel(t, root, Files(context.Background(), root, cf))

	assert.Equal(t, []string{"src/main.go"}, got)
	assert.NotContains(t, cf.asked, "pkg", "pruned subtree must not be visited")
	assert.NotContains(t, cf.asked, "deep")
}

func TestFiles_IncludePattern(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt", "b.md", "sub/c.txt")

	got := rel(t, root, Files(context.Background(), root, filter.New("*.txt", "")))
	assert.Equal(t, []string{"a.txt", "sub/c.txt"}, got)
}

func TestFiles_SkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "real/a.txt")

	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "real", "a.txt"), filepath.Join(root, "link.txt")))

	got := rel(t, root, Files(context.Background(), root, filter.New("", "")))
	assert.Equal(t, []string{"real/a.txt"}, got)
}

func TestFiles_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "only.txt")
	p := filepath.Join(root, "only.txt")

	got := slices.Collect(Files(context.Background(), p, filter.New("", "")))
	assert.Equal(t, []string{p}, got)

	got = slices.Collect(Files(context.Background(), p, filter.New("*.md", "")))
	assert.Empty(t, got)
}

func TestFiles_RootNameNotFiltered(t *testing.T) {
	root := filepath.Join(t.TempDir(), "build")
	writeTree(t, root, "a.txt")

	got := rel(t, root, Files(context.Background(), root, filter.New("", "")))
	assert.Equal(t, []string{"a.txt"}, got)
}

func TestFiles_MissingRoot(t *testing.T) {
	var skipped []string
	w := Walker{
		Filter: filter.New("", ""),
		OnSkip: func(path string, _ error) { skipped = append(skipped, path) },
	}
	got := slices.Collect(w.Files(context.Background(), filepath.Join(t.TempDir(), "missing")))
	assert.Empty(t, got)
	assert.Len(t, skipped, 1)
}

func TestFiles_UnreadableDirectorySkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	writeTree(t, root, "a.txt", "locked/b.txt", "z.txt")
	require.NoError(t, os.Chmod(filepath.Join(root, "locked"), 0))
	defer os.Chmod(filepath.Join(root, "locked"), 0755)

	got := rel(t, root, Files(context.Background(), root, filter.New("", "")))
	assert.Equal(t, []string{"a.txt", "z.txt"}, got)
}

func TestFiles_MaxDepth(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "top.txt", "1/one.txt", "1/2/two.txt")

	w := Walker{Filter: filter.New("", ""), MaxDepth: 1}
	got := rel(t, root, w.Files(context.Background(), root))
	assert.Equal(t, []string{"1/one.txt", "top.txt"}, got)
}

func TestFiles_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt", "b.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := slices.Collect(Files(ctx, root, filter.New("", "")))
	assert.Empty(t, got)
}

func TestFiles_EarlyBreak(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/1.txt", "a/2.txt", "b/3.txt")

	var got []string
	for p := range Files(context.Background(), root, filter.New("", "")) {
		got = append(got, p)
		if strings.HasSuffix(p, "2.txt") {
			break
		}
	}
	assert.Len(t, got, 2)
}
