// tools_guide.go implements the sift_guide tool.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/guide"
	"github.com/jpl-au/sift/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles sift_guide tool calls. An unknown topic returns the
// available topics rather than a bare error.
func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := extension.StringArg(req, "topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:sift_guide", "read").Author("mcp").Detail("topic", topic).Write(err)

	if err != nil {
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return extension.JSONResult(map[string]any{
			"error":            fmt.Sprintf("guide %q not found", topic),
			"available_topics": topics,
		})
	}
	return mcp.NewToolResultText(content), nil
}
