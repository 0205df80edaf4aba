package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Default(t *testing.T) {
	content, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, content, "# sift")
}

func TestGet_Topic(t *testing.T) {
	content, err := Get("replace")
	require.NoError(t, err)
	assert.Contains(t, content, "--dry-run")
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("nope")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "replace", "search", "serve", "tree"}, names)
}

func TestName(t *testing.T) {
	assert.Equal(t, "guide", Name(""))
	assert.Equal(t, "tree", Name("tree"))
}
