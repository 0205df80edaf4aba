// mcp.go implements the sift_search and sift_replace MCP tools.
//
// The argument names match the JSON field names of search.Result and
// search.Options, so a client can pass the output of sift_search straight
// back into sift_replace.

package search

import (
	"context"
	"fmt"

	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/errkind"
	"github.com/jpl-au/sift/internal/log"
	"github.com/jpl-au/sift/internal/replace"
	"github.com/jpl-au/sift/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
)

func searchTool() mcp.Tool {
	return mcp.NewTool("sift_search",
		mcp.WithDescription("Search all text files under a directory for a query. Returns one result per match with file path, 1-based line number, line content and byte offsets."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Directory (or single file) to search")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text or regular expression to find")),
		mcp.WithBoolean("caseSensitive", mcp.Description("Match case exactly (default false)")),
		mcp.WithBoolean("wholeWord", mcp.Description("Only match whole words (default false)")),
		mcp.WithBoolean("regex", mcp.Description("Treat query as a regular expression (default false)")),
		mcp.WithString("includePattern", mcp.Description("Comma-separated file patterns to include, e.g. \"*.go,*.md\"")),
		mcp.WithString("excludePattern", mcp.Description("Comma-separated directory name tokens to skip")),
	)
}

func replaceTool() mcp.Tool {
	return mcp.NewTool("sift_replace",
		mcp.WithDescription("Replace the matched text of search results. Files are re-read before rewriting; results that no longer fit the file are skipped."),
		mcp.WithArray("results", mcp.Required(),
			mcp.Description("Results as returned by sift_search"),
			mcp.Items(map[string]any{"type": "object"})),
		mcp.WithString("replace_text", mcp.Required(), mcp.Description("Text to substitute for each match")),
		mcp.WithBoolean("dry_run", mcp.Description("Return diffs without writing (default false)")),
		mcp.WithBoolean("verify", mcp.Description("Skip results whose line content changed since the search (default false)")),
	)
}

func handleSearch(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	opts := withConfig(search.Options{
		CaseSensitive: extension.BoolArg(req, "caseSensitive", false),
		WholeWord:     extension.BoolArg(req, "wholeWord", false),
		Regex:         extension.BoolArg(req, "regex", false),
		Include:       extension.StringArg(req, "includePattern", ""),
		Exclude:       extension.StringArg(req, "excludePattern", ""),
	}, extCtx)

	results, err := search.Run(ctx, path, query, opts)

	log.Event("mcp:sift_search", "search").Author("mcp").Path(path).Query(query).Count(len(results)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(errkind.Message(err)), nil
	}
	if results == nil {
		results = []search.Result{}
	}
	return extension.JSONResult(results)
}

func handleReplace(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var results []search.Result
	if err := extension.DecodeArg(req, "results", &results); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("replace_text")
	if err != nil {
		return mcp.NewToolResultError("replace_text is required"), nil //nolint:nilerr
	}

	opts := replace.Options{
		DryRun:      extension.BoolArg(req, "dry_run", false),
		VerifyLines: extension.BoolArg(req, "verify", false),
		Logger:      extCtx.Logger(),
	}
	res, err := replace.Run(ctx, results, text, opts)

	log.Event("mcp:sift_replace", "replace").Author("mcp").Count(res.Count).
		Detail("replacement", text).Detail("dry_run", opts.DryRun).Write(err)

	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s (%d replacements applied before the failure)", errkind.Message(err), res.Count)), nil
	}
	if res.Files == nil {
		res.Files = []replace.FileChange{}
	}
	return extension.JSONResult(res)
}
