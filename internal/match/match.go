// Package match finds query occurrences within a single line of text.
//
// Two strategies produce candidate spans: a literal scan and a regular
// expression scan. Both report byte offsets into the line exactly as given,
// scanning left to right and resuming at the end of each match, so spans are
// ascending and never overlap. The whole-word constraint is applied as a
// filter over whichever strategy ran.
package match

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jpl-au/sift/internal/errkind"
)

// Options selects the matching strategy.
type Options struct {
	CaseSensitive bool
	WholeWord     bool
	Regex         bool
}

// Span is a half-open byte range [Start, End) within a line.
type Span struct {
	Start int
	End   int
}

// Matcher is a compiled query. It is safe for concurrent use.
type Matcher struct {
	query string
	opts  Options
	re    *regexp.Regexp
}

// Compile prepares query for repeated matching. In regex mode an invalid
// expression returns an error wrapping errkind.ErrInvalidPattern.
func Compile(query string, opts Options) (*Matcher, error) {
	m := &Matcher{query: query, opts: opts}
	if opts.Regex {
		flags := ""
		if !opts.CaseSensitive {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + query)
		if err != nil {
			return nil, errkind.Pattern(err)
		}
		m.re = re
	}
	return m, nil
}

// Query returns the query the matcher was compiled from.
func (m *Matcher) Query() string { return m.query }

// FindAll returns every match in line, ordered by Start.
func (m *Matcher) FindAll(line string) []Span {
	var spans []Span
	switch {
	case m.re != nil:
		spans = m.findRegex(line)
	case m.opts.CaseSensitive:
		spans = findLiteral(line, m.query)
	default:
		spans = findFold(line, m.query)
	}

	if !m.opts.WholeWord || len(spans) == 0 {
		return spans
	}
	kept := spans[:0]
	for _, s := range spans {
		if IsWholeWord(line, s) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// findRegex drops empty matches; a zero-width span has nothing to replace.
func (m *Matcher) findRegex(line string) []Span {
	locs := m.re.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		if loc[1] > loc[0] {
			spans = append(spans, Span{Start: loc[0], End: loc[1]})
		}
	}
	if len(spans) == 0 {
		return nil
	}
	return spans
}

func findLiteral(line, query string) []Span {
	if query == "" {
		return nil
	}
	var spans []Span
	start := 0
	for start <= len(line) {
		i := strings.Index(line[start:], query)
		if i < 0 {
			break
		}
		s := start + i
		e := s + len(query)
		spans = append(spans, Span{Start: s, End: e})
		start = e
	}
	return spans
}

// findFold is the case-insensitive literal scan. Case folding happens rune
// by rune during comparison only, so offsets always refer to the original
// line even when upper and lower forms differ in encoded length.
func findFold(line, query string) []Span {
	if query == "" {
		return nil
	}
	var spans []Span
	start := 0
	for start < len(line) {
		e := foldPrefix(line[start:], query)
		if e < 0 {
			_, w := utf8.DecodeRuneInString(line[start:])
			start += w
			continue
		}
		spans = append(spans, Span{Start: start, End: start + e})
		start += e
	}
	return spans
}

// foldPrefix reports how many bytes of s match query when both are
// lowercased rune by rune, or -1 if s does not start with query.
func foldPrefix(s, query string) int {
	i := 0
	for _, qr := range query {
		if i >= len(s) {
			return -1
		}
		sr, w := utf8.DecodeRuneInString(s[i:])
		if !equalFold(sr, qr) {
			return -1
		}
		i += w
	}
	return i
}

func equalFold(a, b rune) bool {
	return a == b || unicode.ToLower(a) == unicode.ToLower(b)
}

// IsWholeWord reports whether span is bounded on both sides by the line
// edge or a rune that is neither a letter nor a number.
func IsWholeWord(line string, s Span) bool {
	if s.Start > 0 {
		r, _ := utf8.DecodeLastRuneInString(line[:s.Start])
		if isWordRune(r) {
			return false
		}
	}
	if s.End < len(line) {
		r, _ := utf8.DecodeRuneInString(line[s.End:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
