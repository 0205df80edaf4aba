// Package tree builds a directory tree for display.
//
// Unlike search, the tree view hides clutter: dotfiles and a fixed list of
// dependency, cache and VCS directories are left out entirely. Directories
// come first at each level, then files, each group ordered by name ignoring
// case.
package tree

import (
	"cmp"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jpl-au/sift/internal/errkind"
)

// DefaultDepth is how many levels below the root are listed.
const DefaultDepth = 10

// Ignored names are skipped wherever they appear. Matching is exact.
var Ignored = []string{
	"node_modules",
	"target",
	"dist",
	"build",
	".git",
	".svn",
	".hg",
	"__pycache__",
	".pytest_cache",
	".venv",
	"venv",
	".DS_Store",
	"Thumbs.db",
}

// Node is a file or directory. Children is nil for files and for
// directories at the depth limit.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Dir      bool    `json:"is_directory"`
	Size     int64   `json:"size,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Count returns the number of directories and files below n.
func (n *Node) Count() (dirs, files int) {
	for _, c := range n.Children {
		if c.Dir {
			dirs++
			d, f := c.Count()
			dirs += d
			files += f
		} else {
			files++
		}
	}
	return dirs, files
}

// Hidden reports whether the tree view leaves name out.
func Hidden(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	return slices.Contains(Ignored, name)
}

// Build returns the tree rooted at root, descending at most depth levels
// (DefaultDepth when depth <= 0). Failures below the root are logged and the
// entry is dropped; failures on the root itself are returned.
func Build(ctx context.Context, root string, depth int, log *slog.Logger) (*Node, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, errkind.NotFound(root)
	}
	b := builder{ctx: ctx, max: depth, log: log}
	return b.node(root, 0)
}

type builder struct {
	ctx context.Context
	max int
	log *slog.Logger
}

func (b *builder) node(path string, depth int) (*Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errkind.Read(path, err)
	}

	n := &Node{
		Name: filepath.Base(path),
		Path: path,
		Dir:  info.IsDir(),
	}
	if !n.Dir {
		n.Size = info.Size()
		return n, nil
	}
	if depth >= b.max {
		return n, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errkind.Read(path, err)
	}

	n.Children = []*Node{}
	for _, e := range entries {
		if err := b.ctx.Err(); err != nil {
			return nil, err
		}
		if Hidden(e.Name()) {
			continue
		}
		child, err := b.node(filepath.Join(path, e.Name()), depth+1)
		if err != nil {
			if b.ctx.Err() != nil {
				return nil, b.ctx.Err()
			}
			b.log.Warn("skipping tree entry", "path", filepath.Join(path, e.Name()), "err", err)
			continue
		}
		n.Children = append(n.Children, child)
	}

	slices.SortFunc(n.Children, func(a, b *Node) int {
		if a.Dir != b.Dir {
			if a.Dir {
				return -1
			}
			return 1
		}
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return n, nil
}
