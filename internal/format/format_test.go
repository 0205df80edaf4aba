package format

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/sift/internal/diff"
	"github.com/jpl-au/sift/internal/replace"
	"github.com/jpl-au/sift/internal/search"
	"github.com/jpl-au/sift/internal/tree"
)

var root = filepath.Join("/", "proj")

func res(file string, line int, content string, start, end int) search.Result {
	return search.Result{
		FilePath:    filepath.Join(root, file),
		LineNumber:  line,
		LineContent: content,
		MatchStart:  start,
		MatchEnd:    end,
	}
}

func TestRel(t *testing.T) {
	assert.Equal(t, "a.txt", Rel(root, filepath.Join(root, "a.txt")))
	assert.Equal(t, filepath.Join("sub", "b.txt"), Rel(root, filepath.Join(root, "sub", "b.txt")))
	assert.Equal(t, "/elsewhere/c.txt", Rel(root, "/elsewhere/c.txt"))
	assert.Equal(t, root, Rel(root, root))
	assert.Equal(t, "x", Rel("", "x"))
}

func TestResults_Plain(t *testing.T) {
	var buf bytes.Buffer
	err := Results(&buf, []search.Result{
		res("a.txt", 1, "cat cat", 0, 3),
		res("a.txt", 1, "cat cat", 4, 7),
		res("a.txt", 3, "a cat", 2, 5),
	}, root, false)
	require.NoError(t, err)
	assert.Equal(t, "a.txt:1:cat cat\na.txt:3:a cat\n", buf.String())
}

func TestResults_Highlight(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Results(&buf, []search.Result{res("a.txt", 2, "x cat y", 2, 5)}, root, true))
	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "cat")
	assert.Contains(t, out, " y\n")
}

func TestPathsAndCounts(t *testing.T) {
	rs := []search.Result{
		res("a.txt", 1, "x", 0, 1),
		res("a.txt", 2, "x", 0, 1),
		res("b.txt", 1, "x", 0, 1),
	}

	var buf bytes.Buffer
	require.NoError(t, Paths(&buf, rs, root))
	assert.Equal(t, "a.txt\nb.txt\n", buf.String())

	buf.Reset()
	require.NoError(t, CountLines(&buf, rs, root))
	assert.Equal(t, "a.txt:2\nb.txt:1\n", buf.String())

	buf.Reset()
	Summary(&buf, rs)
	assert.Equal(t, "3 matches in 2 files\n", buf.String())
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 file", Plural(1, "file", "files"))
	assert.Equal(t, "0 files", Plural(0, "file", "files"))
	assert.Equal(t, "2 directories", Plural(2, "directory", "directories"))
}

func TestReplaced(t *testing.T) {
	var buf bytes.Buffer
	Replaced(&buf, replace.Result{
		Count: 2,
		Files: []replace.FileChange{{Path: filepath.Join(root, "a.txt"), Applied: 2}},
	}, root, false)
	assert.Equal(t, "Replaced 2 occurrences in 1 file\n", buf.String())
}

func TestReplaced_DryRun(t *testing.T) {
	p := filepath.Join(root, "a.txt")
	d := diff.Compute("x\n", "y\n", p, p+" (replaced)")

	var buf bytes.Buffer
	Replaced(&buf, replace.Result{
		Count:  1,
		DryRun: true,
		Files:  []replace.FileChange{{Path: p, Applied: 1, Diff: &d}},
	}, root, false)
	assert.Equal(t, "--- a.txt\n+++ a.txt (replaced)\n- x\n+ y\nWould replace 1 occurrence in 1 file\n", buf.String())
}

func TestTree(t *testing.T) {
	n := &tree.Node{Name: "proj", Path: "proj", Dir: true, Children: []*tree.Node{
		{Name: "src", Dir: true, Children: []*tree.Node{{Name: "main.go"}}},
		{Name: "README.md"},
	}}

	var buf bytes.Buffer
	require.NoError(t, Tree(&buf, n, false))
	want := "proj\n" +
		"├── src/\n" +
		"│   └── main.go\n" +
		"└── README.md\n" +
		"\n1 directory, 2 files\n"
	assert.Equal(t, want, buf.String())
}

func TestColour_NonFile(t *testing.T) {
	assert.False(t, Colour(&bytes.Buffer{}))
}

func TestTerminal_NonFile(t *testing.T) {
	assert.False(t, Terminal(&bytes.Buffer{}))
}
