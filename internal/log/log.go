// Package log records an audit trail of sift operations. Entries are stored
// in ~/.sift/log/sift-log.db and cover every CLI command and MCP tool call
// that touches a tree, across all projects.
//
// Build an entry with the fluent API and finish it with Write:
//
//	log.Event("search:search", "search").
//		Author(cmd.Author()).
//		Path(root).
//		Query(query).
//		Count(len(results)).
//		Write(err)
//
// Source is "{extension}:{command}" for CLI commands and "mcp:{tool}" for
// MCP tools, for example "search:replace" or "mcp:sift_search".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is a single audit record.
type Entry struct {
	Source string // e.g. "search:search", "mcp:sift_replace"
	Author string // who performed the action
	Action string // verb: search, replace, tree, config
	Path   string // root searched, or file rewritten
	Query  string // search query, if any
	Count  int    // matches found or replacements applied

	Start time.Time
	End   time.Time

	Success bool
	Error   string
	Detail  map[string]any // operation-specific extras
}

// Builder constructs an Entry. Create with [Event], then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts an entry for an operation. See the package documentation
// for the source format.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now(),
		},
	}
}

// Author sets who performed the operation. CLI commands pass cmd.Author();
// MCP tools pass "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path sets the root or file the operation touched.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Query sets the search query.
func (b *Builder) Query(q string) *Builder {
	b.entry.Query = q
	return b
}

// Count sets the number of matches or replacements.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair, for data with no dedicated field such as
// search options or the replacement text.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, marking it failed when err is non-nil.
//
//	results, err := search.Run(ctx, root, q, opts)
//	log.Event("search:search", "search").Path(root).Count(len(results)).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Callers may ignore the error: audit logging is best-effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent entries. dir should
// be the absolute path of the directory sift was run from.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. A no-op until Open succeeds.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
