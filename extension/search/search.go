// search.go implements the "sift search" command.

package search

import (
	"fmt"
	"os"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/format"
	"github.com/jpl-au/sift/internal/log"
	"github.com/jpl-au/sift/internal/progress"
	"github.com/jpl-au/sift/internal/search"
	"github.com/spf13/cobra"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <query> [path]",
		Short: "Search files under a directory for a query",
		Long: `Search every text file under path (default ".") for query.

Matching is case-insensitive unless -s is given or search.case_sensitive is
set. Directories whose name contains node_modules, .git, target, dist, build,
.next or .cache are never entered, nor are directories matching --exclude.

  sift search TODO                      # every TODO below the current directory
  sift search -w -s Config internal/    # whole word, exact case
  sift search -e "func \w+Test" --include "*_test.go"
  sift search -l deprecated             # matching file paths only
  sift search -o json foo > hits.json   # save results for sift replace --from`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runSearch,
	}
	addQueryFlags(c)
	c.Flags().BoolP(extension.FlagFilesWithMatch, "l", false, "Only output paths of matching files")
	c.Flags().BoolP(extension.FlagCount, "c", false, "Only output the number of matches per file")
	c.MarkFlagsMutuallyExclusive(extension.FlagFilesWithMatch, extension.FlagCount)
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	query := args[0]
	root := rootArg(args, 1)

	pathsOnly, _ := c.Flags().GetBool(extension.FlagFilesWithMatch)
	countOnly, _ := c.Flags().GetBool(extension.FlagCount)

	opts := queryOptions(c, e.cfg, e.ctx)
	var spin *progress.Spinner
	if !cmd.JSON() {
		spin = progress.NewSpinner("Searching")
		opts.OnFile = func(string) { spin.Tick() }
	}

	results, err := search.Run(c.Context(), root, query, opts)
	if spin != nil {
		spin.Stop()
	}

	log.Event("search:search", "search").
		Author(cmd.Author()).
		Path(root).
		Query(query).
		Count(len(results)).
		Detail("regex", opts.Regex).
		Detail("whole_word", opts.WholeWord).
		Detail("case_sensitive", opts.CaseSensitive).
		Write(err)

	if err != nil {
		return cmd.Fail(fmt.Errorf("search %q: %w", query, err))
	}

	out := cmd.Out()
	switch {
	case cmd.JSON() && pathsOnly:
		paths := []string{}
		for _, fc := range format.Counts(results) {
			paths = append(paths, fc.Path)
		}
		return cmd.PrintJSON(paths)
	case cmd.JSON() && countOnly:
		return cmd.PrintJSON(nonNil(format.Counts(results)))
	case cmd.JSON():
		return cmd.PrintJSON(nonNil(results))
	case pathsOnly:
		return format.Paths(out, results, root)
	case countOnly:
		return format.CountLines(out, results, root)
	}

	if err := format.Results(out, results, root, format.Colour(out)); err != nil {
		return err
	}
	if format.Terminal(out) {
		format.Summary(os.Stderr, results)
	}
	return nil
}

// nonNil keeps empty JSON output as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
