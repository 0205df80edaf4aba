// tools_config.go implements the sift_config tool. It is read-only: the
// server's configuration is fixed for its lifetime.

package mcp

import (
	"context"

	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles sift_config tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.ctx.Config()

	key := extension.StringArg(req, "key", "")
	if key == "" {
		log.Event("mcp:sift_config", "list").Author("mcp").Write(nil)
		return extension.JSONResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:sift_config", "get").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(map[string]string{key: v})
}
