// Package errkind defines the closed set of failures search and replace can
// report, plus a rendering function for human-readable messages.
//
// Callers classify with errors.Is / errors.As or KindOf. Message produces the
// strings shown at the CLI and MCP boundaries.
package errkind

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPathNotFound is returned when the search root does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrInvalidPattern is returned when a regular expression fails to compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// Kind classifies an error returned by search or replace.
type Kind int

const (
	KindUnknown Kind = iota
	KindPathNotFound
	KindIO
	KindInvalidPattern
)

func (k Kind) String() string {
	switch k {
	case KindPathNotFound:
		return "PathNotFound"
	case KindIO:
		return "IoError"
	case KindInvalidPattern:
		return "InvalidPattern"
	default:
		return "Unknown"
	}
}

// IOError records a failed read or write along with the file involved.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Read wraps err as a read failure on path.
func Read(path string, err error) error {
	return &IOError{Op: "read", Path: path, Err: err}
}

// Write wraps err as a write failure on path.
func Write(path string, err error) error {
	return &IOError{Op: "write", Path: path, Err: err}
}

// NotFound wraps ErrPathNotFound with the missing path.
func NotFound(path string) error {
	return fmt.Errorf("%w: %s", ErrPathNotFound, path)
}

// Pattern wraps ErrInvalidPattern with the compiler's detail.
func Pattern(detail error) error {
	return fmt.Errorf("%w: %w", ErrInvalidPattern, detail)
}

// KindOf reports which kind err belongs to.
func KindOf(err error) Kind {
	var ioErr *IOError
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrPathNotFound):
		return KindPathNotFound
	case errors.Is(err, ErrInvalidPattern):
		return KindInvalidPattern
	case errors.As(err, &ioErr):
		return KindIO
	default:
		return KindUnknown
	}
}

// Message renders err for display. Known kinds keep the wording users see
// in the editor; anything else falls back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ioErr *IOError
	switch KindOf(err) {
	case KindPathNotFound:
		return "Path does not exist: " + detail(err, ErrPathNotFound)
	case KindInvalidPattern:
		return "Invalid pattern: " + detail(err, ErrInvalidPattern)
	case KindIO:
		errors.As(err, &ioErr)
		verb := "read"
		if ioErr.Op == "write" {
			verb = "write"
		}
		return fmt.Sprintf("Failed to %s file %s: %v", verb, ioErr.Path, ioErr.Err)
	default:
		return err.Error()
	}
}

// detail returns the text following the sentinel in err's message.
func detail(err, sentinel error) string {
	if _, after, ok := strings.Cut(err.Error(), sentinel.Error()+": "); ok {
		return after
	}
	return err.Error()
}
