// Package format renders search, replace and tree output for the terminal.
//
// Command implementations hand their results here so the presentation
// (relative paths, highlighting, tree connectors) stays in one place.
package format

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/jpl-au/sift/internal/replace"
	"github.com/jpl-au/sift/internal/search"
	"github.com/jpl-au/sift/internal/tree"
)

// Terminal reports whether w is an interactive terminal.
func Terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Colour reports whether w should receive colour. NO_COLOR (checked by the
// color package) always wins.
func Colour(w io.Writer) bool {
	return !color.NoColor && Terminal(w)
}

// painter wraps a color.Color so it can be switched on or off per call
// rather than through the package-wide NoColor switch.
func painter(on bool, attrs ...color.Attribute) func(...any) string {
	c := color.New(attrs...)
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Rel returns path relative to root for display. Paths outside root, or a
// root that is the file itself, are returned unchanged.
func Rel(root, path string) string {
	if root == "" || root == path {
		return path
	}
	r, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(r, "..") {
		return path
	}
	return r
}

// Results prints matches grep-style as path:line:content, one row per
// matching line, with every match on the line highlighted.
func Results(w io.Writer, results []search.Result, root string, colour bool) error {
	file := painter(colour, color.FgMagenta)
	num := painter(colour, color.FgGreen)
	hit := painter(colour, color.FgRed, color.Bold)

	for i := 0; i < len(results); {
		r := results[i]
		j := i + 1
		for j < len(results) && results[j].FilePath == r.FilePath && results[j].LineNumber == r.LineNumber {
			j++
		}

		var b strings.Builder
		pos := 0
		for _, m := range results[i:j] {
			if m.MatchStart < pos {
				continue
			}
			b.WriteString(r.LineContent[pos:m.MatchStart])
			b.WriteString(hit(r.LineContent[m.MatchStart:m.MatchEnd]))
			pos = m.MatchEnd
		}
		b.WriteString(r.LineContent[pos:])

		if _, err := fmt.Fprintf(w, "%s:%s:%s\n", file(Rel(root, r.FilePath)), num(r.LineNumber), b.String()); err != nil {
			return err
		}
		i = j
	}
	return nil
}

// Paths prints each file with at least one match once, in result order.
func Paths(w io.Writer, results []search.Result, root string) error {
	var last string
	for _, r := range results {
		if r.FilePath == last {
			continue
		}
		last = r.FilePath
		if _, err := fmt.Fprintln(w, Rel(root, r.FilePath)); err != nil {
			return err
		}
	}
	return nil
}

// FileCount is the number of matches in one file.
type FileCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Counts groups results per file, preserving result order.
func Counts(results []search.Result) []FileCount {
	var out []FileCount
	for _, r := range results {
		if n := len(out); n > 0 && out[n-1].Path == r.FilePath {
			out[n-1].Count++
			continue
		}
		out = append(out, FileCount{Path: r.FilePath, Count: 1})
	}
	return out
}

// CountLines prints path:count for every file with matches.
func CountLines(w io.Writer, results []search.Result, root string) error {
	for _, c := range Counts(results) {
		if _, err := fmt.Fprintf(w, "%s:%d\n", Rel(root, c.Path), c.Count); err != nil {
			return err
		}
	}
	return nil
}

// Plural returns "n one" or "n many" depending on n.
func Plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// Summary prints the closing line of a search.
func Summary(w io.Writer, results []search.Result) {
	files := len(Counts(results))
	fmt.Fprintf(w, "%s in %s\n", Plural(len(results), "match", "matches"), Plural(files, "file", "files"))
}

// Replaced prints what a replace did or, for a dry run, would do.
func Replaced(w io.Writer, res replace.Result, root string, colour bool) {
	for _, f := range res.Files {
		if f.Diff != nil {
			d := *f.Diff
			d.Old, d.New = Rel(root, d.Old), Rel(root, d.New)
			fmt.Fprint(w, d.Format(colour))
		}
	}
	files := 0
	for _, f := range res.Files {
		if f.Applied > 0 {
			files++
		}
	}
	verb := "Replaced"
	if res.DryRun {
		verb = "Would replace"
	}
	fmt.Fprintf(w, "%s %s in %s\n", verb, Plural(res.Count, "occurrence", "occurrences"), Plural(files, "file", "files"))
}

// Tree prints a directory tree with box-drawing connectors.
func Tree(w io.Writer, n *tree.Node, colour bool) error {
	dir := painter(colour, color.FgBlue, color.Bold)

	name := n.Path
	if n.Dir {
		name = dir(name)
	}
	if _, err := fmt.Fprintln(w, name); err != nil {
		return err
	}

	var walk func(n *tree.Node, prefix string) error
	walk = func(n *tree.Node, prefix string) error {
		for i, c := range n.Children {
			last := i == len(n.Children)-1
			connector, indent := "├── ", "│   "
			if last {
				connector, indent = "└── ", "    "
			}
			label := c.Name
			if c.Dir {
				label = dir(c.Name) + "/"
			}
			if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, connector, label); err != nil {
				return err
			}
			if err := walk(c, prefix+indent); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(n, ""); err != nil {
		return err
	}

	dirs, files := n.Count()
	_, err := fmt.Fprintf(w, "\n%s, %s\n", Plural(dirs, "directory", "directories"), Plural(files, "file", "files"))
	return err
}
