// Package textio provides the file primitives search and replace build on:
// reading a file as text, rewriting it atomically, and holding an advisory
// lock while a rewrite is in progress.
//
// Text means valid UTF-8 without NUL bytes. Anything else is reported as
// ErrNotText so callers can skip binary files without inspecting content.
package textio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

var (
	// ErrNotText is returned for content that is not valid UTF-8 or contains NUL bytes.
	ErrNotText = errors.New("not a text file")
	// ErrTooLarge is returned when a file exceeds the configured size limit.
	ErrTooLarge = errors.New("file too large")
)

// ReadText reads the file at path and returns its content as a string.
// A maxSize of 0 disables the size check.
func ReadText(path string, maxSize int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", path, ErrNotText)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return "", fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, info.Size(), maxSize)
	}

	content := make([]byte, info.Size())
	if _, err := io.ReadFull(f, content); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !IsText(content) {
		return "", fmt.Errorf("%s: %w", path, ErrNotText)
	}
	return string(content), nil
}

// IsText reports whether b looks like decodable text.
func IsText(b []byte) bool {
	return bytes.IndexByte(b, 0) < 0 && utf8.Valid(b)
}

// WriteAtomic replaces the content of path. The data is written to a
// temporary file in the same directory, synced, and renamed over the target,
// so readers see either the old or the new content. The temporary file is
// removed on every failure path. An existing file keeps its permission bits.
func WriteAtomic(path, content string) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".sift-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		tmp = nil
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		tmp = nil
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	tmp = nil
	return nil
}

// Exists reports whether path exists, following a symlink at path itself.
// Errors other than "not exist" count as existing so the caller surfaces
// them on first real access.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
