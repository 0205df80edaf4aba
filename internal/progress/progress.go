// Package progress shows CLI progress on stderr, keeping stdout clean for
// piping. Nothing is drawn unless stderr is a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// minItems is the minimum number of items before showing progress.
const minItems = 5

// redraw limits how often a line is repainted.
const redraw = 80 * time.Millisecond

// Progress counts towards a known total, such as files to rewrite.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
	width   int
}

// New creates a progress reporter that writes to stderr.
// If total is less than minItems, nothing is drawn.
func New(label string, total int) *Progress {
	return newProgress(os.Stderr, label, total, term.IsTerminal(int(os.Stderr.Fd())))
}

func newProgress(w io.Writer, label string, total int, tty bool) *Progress {
	return &Progress{w: w, label: label, total: total, isTTY: tty}
}

// Increment advances the counter and repaints the line.
func (p *Progress) Increment() {
	p.current++
	p.print()
}

func (p *Progress) print() {
	if p.total < minItems || !p.isTTY {
		return
	}
	pct := (p.current * 100) / p.total
	line := fmt.Sprintf("%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
	p.width = max(p.width, len(line))
	fmt.Fprintf(p.w, "\r%s", line)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if p.total < minItems || !p.isTTY {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width))
}

// Spinner shows activity when the total is unknown, such as a search that
// is still walking the tree. Tick may be called from any goroutine.
type Spinner struct {
	mu     sync.Mutex
	w      io.Writer
	label  string
	count  int
	frame  int
	last   time.Time
	isTTY  bool
	frames []string
	width  int
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return newSpinner(os.Stderr, label, term.IsTerminal(int(os.Stderr.Fd())))
}

func newSpinner(w io.Writer, label string, tty bool) *Spinner {
	return &Spinner{
		w:      w,
		label:  label,
		isTTY:  tty,
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Tick records one more item and repaints at most every redraw interval.
func (s *Spinner) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	if !s.isTTY || time.Since(s.last) < redraw {
		return
	}
	s.last = time.Now()
	s.frame = (s.frame + 1) % len(s.frames)
	line := fmt.Sprintf("%s %s... %d files", s.frames[s.frame], s.label, s.count)
	s.width = max(s.width, len(line))
	fmt.Fprintf(s.w, "\r%s", line)
}

// Count returns how many ticks have been recorded.
func (s *Spinner) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isTTY || s.width == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}
