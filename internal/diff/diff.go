// Package diff renders the difference between a file before and after a
// replace, so a dry run can show exactly what would change.
package diff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines kept around each change.
// Longer unchanged runs are collapsed to "...".
const contextLines = 3

// Result holds a computed diff.
type Result struct {
	Old     string `json:"old"`     // old label
	New     string `json:"new"`     // new label
	Diff    string `json:"diff"`    // plain diff text, one prefixed line per line
	Added   int    `json:"added"`   // lines inserted
	Removed int    `json:"removed"` // lines deleted
}

// Changed reports whether the two inputs differed.
func (r Result) Changed() bool { return r.Added > 0 || r.Removed > 0 }

// Compute returns a line-oriented diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	r := Result{Old: oldLabel, New: newLabel}
	r.Diff, r.Added, r.Removed = render(d)
	return r
}

// render converts diffs to prefixed text and counts changed lines.
func render(diffs []diffmatchpatch.Diff) (string, int, int) {
	var b strings.Builder
	var added, removed int
	for i, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			removed += len(lines)
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			added += len(lines)
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			writeEqual(&b, lines, i == 0, i == len(diffs)-1)
		}
	}
	return b.String(), added, removed
}

// writeEqual writes an unchanged run, keeping only the lines adjacent to
// the changes on either side.
func writeEqual(b *strings.Builder, lines []string, first, last bool) {
	head, tail := contextLines, contextLines
	if first {
		head = 0
	}
	if last {
		tail = 0
	}
	if (first && last) || len(lines) <= head+tail {
		for _, l := range lines {
			b.WriteString("  " + l + "\n")
		}
		return
	}
	for _, l := range lines[:head] {
		b.WriteString("  " + l + "\n")
	}
	b.WriteString("  ...\n")
	for _, l := range lines[len(lines)-tail:] {
		b.WriteString("  " + l + "\n")
	}
}

// splitLines splits a diff chunk into lines, dropping the empty element a
// trailing newline would produce.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Colourise colours removed lines red and added lines green. Whether escape
// codes are actually emitted follows color.NoColor.
func Colourise(d string) string {
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red(line) + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green(line) + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the diff with a header naming both sides.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
