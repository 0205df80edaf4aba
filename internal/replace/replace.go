// Package replace rewrites the matches a search found.
//
// Results are grouped by file and each file is re-read at replace time: the
// content a search saw may be stale, so only coordinates are trusted, never
// cached text. Within a file, results are applied bottom-up (descending line,
// then descending match start) so every pending span still points at the
// bytes it was recorded against.
//
// A result that no longer fits the file (line gone, span past the end of the
// line or splitting a UTF-8 sequence) is skipped silently. Read and write
// failures abort the call; files already rewritten stay rewritten.
package replace

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/sift/internal/diff"
	"github.com/jpl-au/sift/internal/errkind"
	"github.com/jpl-au/sift/internal/search"
	"github.com/jpl-au/sift/internal/textio"
)

// Options configures a replace.
type Options struct {
	// DryRun computes the new content and a diff without writing anything.
	DryRun bool

	// Diff records a diff for each rewritten file. Dry runs always do.
	Diff bool

	// VerifyLines skips results whose recorded LineContent differs from the
	// line currently in the file.
	VerifyLines bool

	// Logger receives debug records for skipped results and lock problems.
	// Nil discards them.
	Logger *slog.Logger

	// OnFile is called after each file is processed.
	OnFile func(path string)
}

// FileChange describes what happened to one file.
type FileChange struct {
	Path    string       `json:"path"`
	Applied int          `json:"applied"`
	Skipped int          `json:"skipped,omitempty"`
	Diff    *diff.Result `json:"diff,omitempty"` // set on dry runs and with Options.Diff
}

// Result summarises a replace.
type Result struct {
	Count  int          `json:"count"`
	DryRun bool         `json:"dry_run,omitempty"`
	Files  []FileChange `json:"files"`
}

// Files returns the distinct files results refer to, in the order Run
// processes them.
func Files(results []search.Result) []string {
	groups := group(results)
	paths := make([]string, len(groups))
	for i, g := range groups {
		paths[i] = g.path
	}
	return paths
}

// Run replaces the span of every result with text and returns how many
// replacements were applied. A cancelled ctx stops between files.
func Run(ctx context.Context, results []search.Result, text string, opts Options) (Result, error) {
	out := Result{DryRun: opts.DryRun}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	for _, g := range group(results) {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		fc, err := file(ctx, g.path, g.results, text, opts, log)
		if err != nil {
			return out, err
		}
		out.Count += fc.Applied
		out.Files = append(out.Files, fc)
		if opts.OnFile != nil {
			opts.OnFile(g.path)
		}
	}
	return out, nil
}

type fileGroup struct {
	path    string
	results []search.Result
}

// group buckets results by path. Files are returned in lexical path order;
// within a file results are sorted bottom-up with exact duplicates removed.
func group(results []search.Result) []fileGroup {
	byPath := make(map[string][]search.Result)
	for _, r := range results {
		byPath[r.FilePath] = append(byPath[r.FilePath], r)
	}

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	groups := make([]fileGroup, 0, len(paths))
	for _, p := range paths {
		rs := byPath[p]
		slices.SortStableFunc(rs, func(a, b search.Result) int {
			if c := cmp.Compare(b.LineNumber, a.LineNumber); c != 0 {
				return c
			}
			if c := cmp.Compare(b.MatchStart, a.MatchStart); c != 0 {
				return c
			}
			return cmp.Compare(b.MatchEnd, a.MatchEnd)
		})
		rs = slices.CompactFunc(rs, func(a, b search.Result) bool {
			return a.LineNumber == b.LineNumber && a.MatchStart == b.MatchStart && a.MatchEnd == b.MatchEnd
		})
		groups = append(groups, fileGroup{path: p, results: rs})
	}
	return groups
}

// file applies one file's results under an advisory lock.
func file(ctx context.Context, path string, results []search.Result, text string, opts Options, log *slog.Logger) (FileChange, error) {
	fc := FileChange{Path: path}

	if !opts.DryRun {
		unlock, err := textio.Lock(ctx, path)
		switch {
		case errors.Is(err, textio.ErrLockUnavailable):
			log.Debug("writing without lock", "path", path, "error", err)
		case err != nil:
			return fc, errkind.Write(path, err)
		}
		defer func() {
			if err := unlock(); err != nil {
				log.Debug("releasing lock", "path", path, "error", err)
			}
		}()
	}

	content, err := textio.ReadText(path, 0)
	if err != nil {
		return fc, errkind.Read(path, err)
	}

	lines := strings.Split(content, "\n")
	prevStart := -1
	prevLine := 0
	for _, r := range results {
		idx := r.LineNumber - 1
		if idx < 0 || idx >= len(lines) {
			log.Debug("line out of range", "path", path, "line", r.LineNumber, "lines", len(lines))
			fc.Skipped++
			continue
		}
		line := lines[idx]
		if opts.VerifyLines && line != r.LineContent {
			log.Debug("line changed since search", "path", path, "line", r.LineNumber)
			fc.Skipped++
			continue
		}
		// Spans on one line arrive in descending start order; one that
		// reaches into a span already replaced would corrupt it.
		if r.LineNumber == prevLine && r.MatchEnd > prevStart {
			log.Debug("overlapping span", "path", path, "line", r.LineNumber)
			fc.Skipped++
			continue
		}
		if !validSpan(line, r.MatchStart, r.MatchEnd) {
			log.Debug("span outside line", "path", path, "line", r.LineNumber,
				"start", r.MatchStart, "end", r.MatchEnd)
			fc.Skipped++
			continue
		}
		lines[idx] = line[:r.MatchStart] + text + line[r.MatchEnd:]
		prevLine, prevStart = r.LineNumber, r.MatchStart
		fc.Applied++
	}

	if fc.Applied == 0 {
		return fc, nil
	}

	updated := strings.Join(lines, "\n")
	if opts.DryRun || opts.Diff {
		d := diff.Compute(content, updated, path, path+" (replaced)")
		fc.Diff = &d
	}
	if opts.DryRun {
		return fc, nil
	}
	if err := textio.WriteAtomic(path, updated); err != nil {
		return fc, errkind.Write(path, err)
	}
	return fc, nil
}

// validSpan reports whether [start, end) is a non-empty range inside line
// whose ends fall on rune boundaries.
func validSpan(line string, start, end int) bool {
	if start < 0 || end > len(line) || start >= end {
		return false
	}
	if start < len(line) && !utf8.RuneStart(line[start]) {
		return false
	}
	if end < len(line) && !utf8.RuneStart(line[end]) {
		return false
	}
	return true
}
