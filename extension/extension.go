// Package extension provides the plugin architecture for sift. Extensions
// group related functionality (CLI commands, MCP tools) and register at init
// time, so a feature can be added without touching the command root.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for sift extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context before their first
// command runs.
type Initializable interface {
	Extension
	Init(ctx Context) error
}
