package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_SmallTotalSilent(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, "Replacing", 2, true)
	p.Increment()
	p.Done()
	assert.Empty(t, buf.String())
}

func TestProgress_NonTTYSilent(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, "Replacing", 10, false)
	p.Increment()
	p.Done()
	assert.Empty(t, buf.String())
}

func TestProgress_Draws(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, "Replacing", 10, true)
	p.Increment()
	assert.Contains(t, buf.String(), "Replacing... 1/10 (10%)")
	p.Done()
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\r")))
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Searching", true)
	s.Tick()
	s.Tick()
	assert.Equal(t, 2, s.Count())
	assert.Contains(t, buf.String(), "Searching... 1 files")
	s.Stop()
}

func TestSpinner_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Searching", false)
	s.Tick()
	s.Stop()
	assert.Equal(t, 1, s.Count())
	assert.Empty(t, buf.String())
}
