/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but are not initialised until the first
// command runs. The config and logger are created once and shared through
// the extension Context.

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/log"
)

// bootstrapCommands run without extension initialisation. They must keep
// working when the config file is broken.
var bootstrapCommands = map[string]bool{
	"config":     true,
	"guide":      true,
	"version":    true,
	"help":       true,
	"completion": true,
}

var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads configuration and injects the shared Context into
// every Initializable extension, exactly once per process.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		if wd, err := os.Getwd(); err == nil {
			if abs, err := filepath.Abs(wd); err == nil {
				log.SetProject(abs)
			}
		}

		extContext = extension.NewContext(cfg, diagnostics())

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// diagnostics returns the stderr logger: debug records with --verbose,
// warnings and above otherwise.
func diagnostics() *slog.Logger {
	level := slog.LevelWarn
	if Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
	})
}
