// Package walk enumerates the files under a directory tree, depth first.
//
// Entries within a directory are visited in lexical order (os.ReadDir sorts
// by name), so the same tree always yields the same sequence. Symbolic links
// are neither followed nor yielded, which rules out cycles. Directories the
// filter rejects are pruned before descent: nothing beneath them is read.
//
// Errors on individual entries (permission denied, an entry deleted mid-walk)
// are skipped and the walk carries on. A walk never fails as a whole.
package walk

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// DefaultMaxDepth limits recursion on pathological trees.
const DefaultMaxDepth = 100

// Visitor decides which directories and files are part of the walk.
// *filter.Filter satisfies it.
type Visitor interface {
	ShouldVisitDir(name string) bool
	ShouldIncludeFile(fullPath, name string) bool
}

// Walker configures a walk.
type Walker struct {
	Filter   Visitor
	MaxDepth int                          // 0 means DefaultMaxDepth
	OnSkip   func(path string, err error) // called for entries skipped on error
}

// Files is shorthand for a Walker with default settings.
func Files(ctx context.Context, root string, v Visitor) iter.Seq[string] {
	return Walker{Filter: v}.Files(ctx, root)
}

// Files returns a lazy sequence of file paths under root. Paths are built
// with filepath.Join from root, so a relative root gives relative paths.
// The root directory itself is not subject to ShouldVisitDir. A root that is
// a regular file yields just that file if the filter includes it. Iteration
// stops early when ctx is cancelled.
func (w Walker) Files(ctx context.Context, root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		info, err := os.Stat(root)
		if err != nil {
			w.skip(root, err)
			return
		}
		if !info.IsDir() {
			if info.Mode().IsRegular() && w.Filter.ShouldIncludeFile(root, filepath.Base(root)) {
				yield(root)
			}
			return
		}
		w.dir(ctx, root, 0, yield)
	}
}

// dir walks one directory level. It returns false once the consumer stops
// or ctx is done, unwinding the recursion.
func (w Walker) dir(ctx context.Context, dir string, depth int, yield func(string) bool) bool {
	maxDepth := w.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if depth > maxDepth {
		return true
	}

	// ReadDir returns whatever it read before an error; keep going with that.
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.skip(dir, err)
	}

	for _, e := range entries {
		if ctx.Err() != nil {
			return false
		}

		name := e.Name()
		p := filepath.Join(dir, name)
		t := e.Type()

		switch {
		case t&fs.ModeSymlink != 0:
			continue
		case t.IsDir():
			if !w.Filter.ShouldVisitDir(name) {
				continue
			}
			if !w.dir(ctx, p, depth+1, yield) {
				return false
			}
		case t.IsRegular():
			if w.Filter.ShouldIncludeFile(p, name) && !yield(p) {
				return false
			}
		}
	}
	return true
}

func (w Walker) skip(path string, err error) {
	if w.OnSkip != nil {
		w.OnSkip(path, err)
	}
}
