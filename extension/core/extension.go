// Package core provides the commands that are not about searching a tree.
// Registers commands: config, serve, guide, version.
package core

import (
	"github.com/jpl-au/sift/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the context for the MCP server. Bootstrap commands (config,
// guide, version) run without it.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the config, serve, guide and version commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		e.newServeCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil. The server registers its own guide and config
// tools alongside the extension tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
