// Package search provides the search and replace commands and their MCP
// tools. Registers commands: search, replace.
package search

import (
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	ctx extension.Context
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init picks up the shared configuration and diagnostic logger.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the search and replace commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
		e.newReplaceCmd(),
	}
}

// MCPTools returns sift_search and sift_replace.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{Tool: searchTool(), Handler: handleSearch},
		{Tool: replaceTool(), Handler: handleReplace},
	}
}
