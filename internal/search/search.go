// Package search finds every occurrence of a query across a directory tree.
//
// The walk, the filter and the matcher live in their own packages; this one
// ties them together. Files are read whole, split on "\n" and scanned line by
// line. Anything that is not readable text (binary content, invalid UTF-8,
// files over the size limit, lines over the length limit) is skipped rather
// than failing the search, because a tree full of build artefacts should not
// prevent a search of its sources.
//
// Results come back in walk order: file, then line, then position in line.
// Running with several workers changes how fast that list is produced, never
// its content or order.
package search

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/sift/internal/errkind"
	"github.com/jpl-au/sift/internal/filter"
	"github.com/jpl-au/sift/internal/match"
	"github.com/jpl-au/sift/internal/textio"
	"github.com/jpl-au/sift/internal/walk"
)

// Options configures a search.
type Options struct {
	CaseSensitive bool   `json:"caseSensitive"`
	WholeWord     bool   `json:"wholeWord"`
	Regex         bool   `json:"regex"`
	Include       string `json:"includePattern,omitempty"` // comma-separated tokens
	Exclude       string `json:"excludePattern,omitempty"` // comma-separated, merged with the defaults

	// ExtraExcludes come from configuration rather than the caller.
	ExtraExcludes []string `json:"-"`

	Workers       int   `json:"-"` // files scanned concurrently (<= 1 is sequential)
	MaxFileSize   int64 `json:"-"` // <= 0 = unlimited
	MaxLineLength int   `json:"-"` // <= 0 = unlimited

	// Logger receives debug records for skipped files. Nil discards them.
	Logger *slog.Logger `json:"-"`

	// OnFile is called from the walking goroutine for every candidate file.
	OnFile func(path string) `json:"-"`
}

// Result is one match. Offsets are byte offsets into LineContent.
type Result struct {
	FilePath    string `json:"file_path"`
	LineNumber  int    `json:"line_number"`
	LineContent string `json:"line_content"`
	MatchStart  int    `json:"match_start"`
	MatchEnd    int    `json:"match_end"`
}

// Matched returns the matched text.
func (r Result) Matched() string {
	return r.LineContent[r.MatchStart:r.MatchEnd]
}

// Run searches root for query and returns every match.
//
// It fails with errkind.ErrPathNotFound when root does not exist and with
// errkind.ErrInvalidPattern when a regex query does not compile. Problems
// with individual files are logged and skipped. A cancelled ctx stops the
// search between files and returns ctx.Err().
func Run(ctx context.Context, root, query string, opts Options) ([]Result, error) {
	if !textio.Exists(root) {
		return nil, errkind.NotFound(root)
	}

	m, err := match.Compile(query, match.Options{
		CaseSensitive: opts.CaseSensitive,
		WholeWord:     opts.WholeWord,
		Regex:         opts.Regex,
	})
	if err != nil {
		return nil, err
	}

	s := &scanner{
		matcher: m,
		maxSize: opts.MaxFileSize,
		maxLine: opts.MaxLineLength,
		log:     opts.Logger,
	}
	if s.maxSize < 0 {
		s.maxSize = 0
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}

	f := filter.New(opts.Include, opts.Exclude, opts.ExtraExcludes...)
	s.log.Debug("searching", "root", root, "query", m.Query(),
		"include", f.Includes(), "exclude", f.Excludes())

	w := walk.Walker{
		Filter: f,
		OnSkip: func(path string, err error) {
			s.log.Debug("skipping path", "path", path, "err", err)
		},
	}
	files := w.Files(ctx, root)
	if opts.OnFile != nil {
		files = notify(files, opts.OnFile)
	}

	if opts.Workers > 1 {
		return s.parallel(ctx, files, opts.Workers)
	}

	var results []Result
	for path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, s.file(path)...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// parallel scans files with up to n workers. Paths are collected first so
// each file owns a fixed slot; concatenating the slots reproduces walk order.
func (s *scanner) parallel(ctx context.Context, files iter.Seq[string], n int) ([]Result, error) {
	paths := slices.Collect(files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slots := make([][]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = s.file(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []Result
	for _, r := range slots {
		results = append(results, r...)
	}
	return results, nil
}

// notify calls fn for each path before passing it on.
func notify(seq iter.Seq[string], fn func(string)) iter.Seq[string] {
	return func(yield func(string) bool) {
		for p := range seq {
			fn(p)
			if !yield(p) {
				return
			}
		}
	}
}

type scanner struct {
	matcher *match.Matcher
	maxSize int64
	maxLine int
	log     *slog.Logger
}

// file reads and scans one file, returning nil when it is skipped.
func (s *scanner) file(path string) []Result {
	content, err := textio.ReadText(path, s.maxSize)
	if err != nil {
		s.log.Debug("skipping file", "path", path, "err", err)
		return nil
	}
	results, err := Lines(path, content, s.matcher, s.maxLine)
	if err != nil {
		s.log.Debug("skipping file", "path", path, "err", err)
		return nil
	}
	return results
}

// Lines scans content line by line and returns a Result per match. A line
// longer than maxLine bytes fails the whole file with bufio.ErrTooLong; a
// maxLine of 0 or less allows lines as long as content.
func Lines(path, content string, m *match.Matcher, maxLine int) ([]Result, error) {
	if maxLine <= 0 || maxLine > len(content) {
		maxLine = len(content)
	}

	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, min(64*1024, maxLine+1)), maxLine+1)
	sc.Split(splitLines)

	var results []Result
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		for _, sp := range m.FindAll(line) {
			results = append(results, Result{
				FilePath:    path,
				LineNumber:  n,
				LineContent: line,
				MatchStart:  sp.Start,
				MatchEnd:    sp.End,
			})
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, err
		}
		return nil, errkind.Read(path, err)
	}
	return results, nil
}

// splitLines is bufio.ScanLines without the carriage return handling: lines
// end at "\n" only, and a "\r" before it stays part of the line.
func splitLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
