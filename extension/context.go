// context.go defines the Context extensions use to reach shared state.
//
// Extensions receive it during Init rather than at construction: they
// register in init() before configuration has been loaded.

package extension

import (
	"log/slog"

	"github.com/jpl-au/sift/internal/config"
)

// Context gives extensions controlled access to sift's shared resources.
type Context interface {
	// Config returns the loaded configuration (local if present, else global).
	Config() *config.Config

	// Logger returns the diagnostic logger. Search and replace send their
	// debug records about skipped files here.
	Logger() *slog.Logger
}

type extContext struct {
	cfg *config.Config
	log *slog.Logger
}

// NewContext creates a new extension context. A nil logger discards output.
func NewContext(cfg *config.Config, logger *slog.Logger) Context {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &extContext{cfg: cfg, log: logger}
}

func (c *extContext) Config() *config.Config { return c.cfg }

func (c *extContext) Logger() *slog.Logger { return c.log }
