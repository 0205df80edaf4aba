// Package mcp implements the Model Context Protocol server, exposing sift
// search, replace and tree operations to LLM clients over stdio.
//
// Tools come from the registered extensions; the server adds sift_guide
// and sift_config and the guide pages as resources.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Serve starts the MCP server over stdio and blocks until the client
// disconnects or ctx is cancelled.
func Serve(ctx context.Context, extCtx extension.Context) error {
	logger, closeLog, err := NewLogger(extCtx.Config())
	if err != nil {
		return err
	}
	defer closeLog()

	s := NewServer(extension.NewContext(extCtx.Config(), logger))

	logger.Info("sift MCP server ready", "version", version.Short(), "transport", "stdio")

	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
	err = stdio.Listen(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		logger.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every extension tool registered.
// Each handler receives extCtx, so tools share the server's configuration
// and logger.
func NewServer(extCtx extension.Context) *server.MCPServer {
	s := server.NewMCPServer(
		"sift",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, t := range extension.Tools() {
		s.AddTool(t.Tool, bind(t.Handler, extCtx))
	}
	registerTools(s, extCtx)
	registerResources(s)
	return s
}

// bind adapts an extension handler to the server's handler signature.
func bind(h extension.MCPHandler, extCtx extension.Context) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		extCtx.Logger().Debug("tool call", "tool", req.Params.Name)
		return h(ctx, extCtx, req)
	}
}

// registerTools adds the tools that belong to the server rather than to
// an extension.
func registerTools(s *server.MCPServer, extCtx extension.Context) {
	h := &handlers{ctx: extCtx}

	s.AddTool(
		mcp.NewTool("sift_guide",
			mcp.WithDescription("Read the sift guide. Without a topic returns the overview."),
			mcp.WithString("topic", mcp.Description("Guide topic, e.g. search, replace, tree, config, serve")),
		),
		h.getGuide,
	)

	s.AddTool(
		mcp.NewTool("sift_config",
			mcp.WithDescription("Read sift configuration. Without a key returns every value."),
			mcp.WithString("key", mcp.Description("Config key, e.g. search.workers")),
		),
		h.configGet,
	)
}

// handlers serves the server-level tools.
type handlers struct {
	ctx extension.Context
}
