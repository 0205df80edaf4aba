package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a fresh database for the test.
func useTempDB(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string { return filepath.Join(dir, "log", "test.db") }
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
	Close()
	require.NoError(t, Open())
	SetProject("/test/project")
}

// lastRow opens the database separately and returns the newest entry.
func lastRow(t *testing.T) (source, action string, path, query, errMsg sql.NullString, count, success int, detail sql.NullString) {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()

	err = db.QueryRow(`SELECT source, action, path, query, error, count, success, detail
		FROM log ORDER BY id DESC LIMIT 1`).
		Scan(&source, &action, &path, &query, &errMsg, &count, &success, &detail)
	require.NoError(t, err)
	return
}

func TestOpen(t *testing.T) {
	useTempDB(t)
	assert.FileExists(t, DBPath())
	require.NoError(t, Open(), "second Open is a no-op")
}

func TestBuilder_Success(t *testing.T) {
	useTempDB(t)

	Event("search:search", "search").
		Author("ada").
		Path("/src").
		Query("TODO").
		Count(7).
		Write(nil)

	source, action, path, query, errMsg, count, success, detail := lastRow(t)
	assert.Equal(t, "search:search", source)
	assert.Equal(t, "search", action)
	assert.Equal(t, "/src", path.String)
	assert.Equal(t, "TODO", query.String)
	assert.False(t, errMsg.Valid)
	assert.Equal(t, 7, count)
	assert.Equal(t, 1, success)
	assert.False(t, detail.Valid)
}

func TestBuilder_Failure(t *testing.T) {
	useTempDB(t)

	Event("search:replace", "replace").
		Path("/src/a.txt").
		Write(errors.New("Failed to write file /src/a.txt: denied"))

	_, _, _, query, errMsg, _, success, _ := lastRow(t)
	assert.Equal(t, 0, success)
	assert.Equal(t, "Failed to write file /src/a.txt: denied", errMsg.String)
	assert.False(t, query.Valid)
}

func TestBuilder_Detail(t *testing.T) {
	useTempDB(t)

	Event("mcp:sift_replace", "replace").
		Author("mcp").
		Detail("replacement", "earth").
		Detail("dry_run", true).
		Write(nil)

	_, _, _, _, _, _, _, detail := lastRow(t)
	require.True(t, detail.Valid)
	assert.Contains(t, detail.String, `"replacement":"earth"`)
	assert.Contains(t, detail.String, `"dry_run":true`)
}

func TestLog_WithoutLoggerIsNoop(t *testing.T) {
	Close()
	Log(Entry{Source: "test:cmd", Action: "test", Success: true})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/project")
	h2 := hash("/home/user/project")
	h3 := hash("/home/user/other")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	orig := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = orig }()

	assert.Equal(t, filepath.Join(home, ".sift", "log", "sift-log.db"), DBPath())
}
