// serve.go implements the "sift serve" command.
//
// Unlike other commands that run and exit, serve blocks handling MCP
// requests over stdio until the client disconnects.

package core

import (
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio, exposing
sift_search, sift_replace and sift_tree to LLM clients.

Server logs go to stderr, or to log.file when it is set:
  sift config log.file ~/.sift/log/serve.log`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := e.ctx
			if ctx == nil {
				ctx = extension.NewContext(nil, nil)
			}
			return mcp.Serve(c.Context(), ctx)
		},
	}
}
