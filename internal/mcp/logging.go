// logging.go sets up the server log. Stdout carries JSON-RPC, so records go
// to stderr, or to a size-rotated file when log.file is configured.

package mcp

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/sift/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// maxBackups is how many rotated log files are kept.
const maxBackups = 3

// NewLogger returns the server logger and a function that closes its
// output. With log.file unset it writes text records to stderr.
func NewLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	if cfg == nil || cfg.Log.File == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() error { return nil }, nil
	}

	path, err := expandHome(cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.LogMaxSize(),
		MaxBackups: maxBackups,
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(w, nil)), w.Close, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
