// Package filter decides which directories a search descends into and which
// files it scans.
//
// Exclusion is by substring on directory names: any directory whose name
// contains an excluded token is pruned, so "node_modules" also catches
// "node_modules-backup". Exclusion only prunes directories; files are never
// rejected by name. Inclusion, when configured, requires a file to match at
// least one include token.
//
// Hidden entries get no special treatment here. Dotfiles are searched unless
// an exclude token catches their directory.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are build output and version control directories that are
// never worth searching.
var DefaultExcludes = []string{
	"node_modules",
	".git",
	"target",
	"dist",
	"build",
	".next",
	".cache",
}

// Filter holds parsed include and exclude tokens for one search.
type Filter struct {
	include []string
	exclude []string
}

// New builds a filter from comma-separated include and exclude lists.
// Extra exclude tokens (from configuration) are merged after the defaults.
func New(include, exclude string, extra ...string) *Filter {
	ex := make([]string, 0, len(DefaultExcludes)+len(extra))
	ex = append(ex, DefaultExcludes...)
	for _, e := range extra {
		ex = append(ex, ParsePatterns(e)...)
	}
	ex = append(ex, ParsePatterns(exclude)...)

	return &Filter{
		include: ParsePatterns(include),
		exclude: ex,
	}
}

// ParsePatterns splits a comma-separated list, trimming whitespace and
// dropping empty tokens.
func ParsePatterns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Includes returns the include tokens in effect.
func (f *Filter) Includes() []string { return f.include }

// Excludes returns the exclude tokens in effect, defaults first.
func (f *Filter) Excludes() []string { return f.exclude }

// ShouldVisitDir reports whether a directory with the given name should be
// descended into.
func (f *Filter) ShouldVisitDir(name string) bool {
	for _, ex := range f.exclude {
		if strings.Contains(name, ex) {
			return false
		}
	}
	return true
}

// ShouldIncludeFile reports whether a file should be scanned. fullPath is the
// path as walked and name its base name.
func (f *Filter) ShouldIncludeFile(fullPath, name string) bool {
	if len(f.include) == 0 {
		return true
	}
	for _, p := range f.include {
		if strings.HasSuffix(fullPath, p) || Glob(name, p) || matchPath(p, fullPath) {
			return true
		}
	}
	return false
}

// Glob matches text against a pattern using a deliberately small wildcard
// language: "*" alone matches everything, a pattern without "*" must equal
// the text, a single "*" splits into a prefix and suffix, and patterns with
// several "*" match when their literal parts appear in order.
func Glob(text, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return text == pattern
	}

	parts := strings.Split(pattern, "*")
	if len(parts) == 2 {
		prefix, suffix := parts[0], parts[1]
		switch {
		case prefix == "":
			return strings.HasSuffix(text, suffix)
		case suffix == "":
			return strings.HasPrefix(text, prefix)
		default:
			return strings.HasPrefix(text, prefix) && strings.HasSuffix(text, suffix)
		}
	}

	pos := 0
	for _, part := range parts {
		if part == "" {
			continue
		}
		i := strings.Index(text[pos:], part)
		if i < 0 {
			return false
		}
		pos += i + len(part)
	}
	return true
}

// matchPath handles path-shaped tokens such as "src/**/*.go". These can
// never match a base name, so they are tried with doublestar against the
// full path and every trailing run of its segments.
func matchPath(pattern, fullPath string) bool {
	if !strings.Contains(pattern, "/") {
		return false
	}
	p := filepath.ToSlash(fullPath)
	segments := strings.Split(p, "/")
	for i := range segments {
		tail := strings.Join(segments[i:], "/")
		if tail == "" {
			continue
		}
		ok, err := doublestar.Match(pattern, tail)
		if err != nil {
			return false
		}
		if ok {
			return true
		}
	}
	return false
}
