// mcp.go defines MCP tool registration for extensions and the argument
// helpers their handlers share.
//
// Argument extraction is permissive: a missing or mistyped optional argument
// yields the default instead of an error, since clients frequently omit
// optional parameters.

package extension

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// StringArg returns a string argument or def.
func StringArg(req mcp.CallToolRequest, name, def string) string {
	if v, ok := args(req)[name].(string); ok {
		return v
	}
	return def
}

// BoolArg returns a boolean argument or def.
func BoolArg(req mcp.CallToolRequest, name string, def bool) bool {
	if v, ok := args(req)[name].(bool); ok {
		return v
	}
	return def
}

// IntArg returns a numeric argument or def. JSON numbers arrive as float64.
func IntArg(req mcp.CallToolRequest, name string, def int) int {
	if v, ok := args(req)[name].(float64); ok {
		return int(v)
	}
	return def
}

// DecodeArg re-encodes a structured argument (an array of objects, say) and
// decodes it into v. A missing argument is an error.
func DecodeArg(req mcp.CallToolRequest, name string, v any) error {
	raw, ok := args(req)[name]
	if !ok || raw == nil {
		return fmt.Errorf("%s is required", name)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// JSONResult returns v as indented JSON text.
func JSONResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
