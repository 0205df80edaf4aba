// Package tree provides the directory tree view.
// Registers commands: tree.
package tree

import (
	"context"
	"fmt"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/errkind"
	"github.com/jpl-au/sift/internal/format"
	"github.com/jpl-au/sift/internal/log"
	"github.com/jpl-au/sift/internal/tree"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tree extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "tree".
func (e *Extension) Name() string { return "tree" }

// Init keeps the context for its diagnostic logger.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the tree command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newTreeCmd()}
}

// MCPTools returns sift_tree.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Tool: mcp.NewTool("sift_tree",
			mcp.WithDescription("List a directory as a nested tree, skipping dotfiles and dependency or build directories."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Directory to list")),
			mcp.WithNumber("depth", mcp.Description(fmt.Sprintf("Levels to descend (default %d)", tree.DefaultDepth))),
		),
		Handler: handleTree,
	}}
}

func (e *Extension) newTreeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tree [path]",
		Short: "Show a directory tree",
		Long: `Print the directory tree under path (default "."), directories first.

Dotfiles and common dependency, cache and VCS directories (node_modules,
target, dist, build, .git, __pycache__, venv and so on) are left out.

  sift tree
  sift tree src --depth 2
  sift tree -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runTree,
	}
	c.Flags().IntP(extension.FlagDepth, "L", tree.DefaultDepth, "Levels to descend")
	return c
}

func (e *Extension) runTree(c *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	depth, _ := c.Flags().GetInt(extension.FlagDepth)
	if depth < 1 {
		return cmd.Fail(fmt.Errorf("depth must be at least 1, got %d", depth))
	}

	node, err := tree.Build(c.Context(), root, depth, e.ctx.Logger())

	b := log.Event("tree:tree", "tree").Author(cmd.Author()).Path(root).Detail("depth", depth)
	if node != nil {
		dirs, files := node.Count()
		b = b.Count(dirs + files)
	}
	b.Write(err)

	if err != nil {
		return cmd.Fail(fmt.Errorf("tree %s: %w", root, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(node)
	}
	out := cmd.Out()
	return format.Tree(out, node, format.Colour(out))
}

func handleTree(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	depth := extension.IntArg(req, "depth", tree.DefaultDepth)

	node, err := tree.Build(ctx, path, depth, extCtx.Logger())

	log.Event("mcp:sift_tree", "tree").Author("mcp").Path(path).Detail("depth", depth).Write(err)

	if err != nil {
		return mcp.NewToolResultError(errkind.Message(err)), nil
	}
	return extension.JSONResult(node)
}
