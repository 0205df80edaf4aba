// replace.go implements the "sift replace" command.
//
// Two sources of results: a fresh search (query and path arguments) or a
// result list saved earlier with "sift search -o json" and passed via
// --from. Either way the files are re-read at replace time.

package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/format"
	"github.com/jpl-au/sift/internal/log"
	"github.com/jpl-au/sift/internal/progress"
	"github.com/jpl-au/sift/internal/replace"
	"github.com/jpl-au/sift/internal/search"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errAborted is returned when the user declines the confirmation prompt.
var errAborted = errors.New("replace aborted")

func (e *Extension) newReplaceCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "replace <query> <replacement> [path]",
		Short: "Replace every match of a query with new text",
		Long: `Search path (default ".") for query and replace every match with
replacement. Accepts the same matching flags as "sift search".

With --from, the matches are read from a JSON result list instead and only
the replacement is given. Use "-" to read the list from stdin.

  sift replace colour color --dry-run       # preview as a diff
  sift replace -w -s Foo Bar src/ --force   # no confirmation
  sift search -o json foo | sift replace --from - bar
  sift replace --from hits.json --verify bar`,
		Args: func(c *cobra.Command, args []string) error {
			if from, _ := c.Flags().GetString(extension.FlagFrom); from != "" {
				return cobra.ExactArgs(1)(c, args)
			}
			return cobra.RangeArgs(2, 3)(c, args)
		},
		RunE: e.runReplace,
	}
	addQueryFlags(c)
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would change without writing")
	c.Flags().Bool(extension.FlagDiff, false, "Show a diff of every rewritten file")
	c.Flags().Bool(extension.FlagVerify, false, "Skip matches whose line changed since the search")
	c.Flags().String(extension.FlagFrom, "", "Read matches from a JSON result list (\"-\" for stdin)")
	return c
}

func (e *Extension) runReplace(c *cobra.Command, args []string) error {
	ctx := c.Context()
	from, _ := c.Flags().GetString(extension.FlagFrom)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)
	verify, _ := c.Flags().GetBool(extension.FlagVerify)

	var (
		results []search.Result
		query   string
		text    string
		root    = "."
		err     error
	)
	if from != "" {
		text = args[0]
		query = "--from " + from
		results, err = readResults(from)
	} else {
		query, text = args[0], args[1]
		root = rootArg(args, 2)
		results, err = search.Run(ctx, root, query, queryOptions(c, e.cfg, e.ctx))
	}
	if err != nil {
		log.Event("search:replace", "replace").Author(cmd.Author()).Path(root).Query(query).Write(err)
		return cmd.Fail(fmt.Errorf("replace %q: %w", query, err))
	}

	if len(results) > 0 && !dryRun && !e.confirm(results) {
		return cmd.Fail(errAborted)
	}

	opts := replace.Options{
		DryRun:      dryRun,
		Diff:        showDiff,
		VerifyLines: verify,
	}
	if e.ctx != nil {
		opts.Logger = e.ctx.Logger()
	}
	var bar *progress.Progress
	if !cmd.JSON() {
		bar = progress.New("Replacing", len(replace.Files(results)))
		opts.OnFile = func(string) { bar.Increment() }
	}

	res, err := replace.Run(ctx, results, text, opts)
	if bar != nil {
		bar.Done()
	}

	log.Event("search:replace", "replace").
		Author(cmd.Author()).
		Path(root).
		Query(query).
		Count(res.Count).
		Detail("replacement", text).
		Detail("dry_run", dryRun).
		Detail("files", len(res.Files)).
		Write(err)

	if err != nil {
		return cmd.Fail(fmt.Errorf("replace %q: %w", query, err))
	}

	if cmd.JSON() {
		if res.Files == nil {
			res.Files = []replace.FileChange{}
		}
		return cmd.PrintJSON(res)
	}
	out := cmd.Out()
	format.Replaced(out, res, root, format.Colour(out))
	return nil
}

// confirm asks before rewriting files. It only prompts an interactive user:
// --force, JSON output and piped stdin all proceed without asking.
func (e *Extension) confirm(results []search.Result) bool {
	if cmd.Force() || cmd.JSON() || !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}
	files := len(replace.Files(results))
	p := promptui.Prompt{
		Label: fmt.Sprintf("Replace %s in %s",
			format.Plural(len(results), "match", "matches"),
			format.Plural(files, "file", "files")),
		IsConfirm: true,
	}
	_, err := p.Run()
	return err == nil
}

// readResults decodes a JSON result list from path, or from the command
// input when path is "-".
func readResults(path string) ([]search.Result, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.In()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var results []search.Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding results from %s: %w", path, err)
	}
	return results, nil
}
