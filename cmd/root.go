/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Extension initialisation (config load, logger setup) happens lazily in
// PersistentPreRunE. Bootstrap commands skip it so that, for example,
// `sift config` can still repair a config file that fails to load.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/sift/internal/errkind"
	"github.com/jpl-au/sift/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Recursive search and batch replace across a directory tree",
	Long: `Search a directory tree for a literal or regular expression query, then
rewrite the matches in place.

  sift search "TODO" src/
  sift replace -w "colour" "color" --dry-run
  sift search -o json "foo" > hits.json && sift replace --from hits.json foo bar`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if author == "" {
			author = detectAuthor()
		}

		if bootstrapCommands[topLevelCmdName(cmd)] {
			return nil
		}
		if err := initExtensions(); err != nil {
			if JSON() {
				_ = PrintJSON(map[string]string{"error": err.Error()})
				cmd.SilenceErrors = true
			}
			return fmt.Errorf("initialise extensions: %w", err)
		}
		return nil
	},
}

// topLevelCmdName returns the name of the direct child of root that cmd
// belongs to.
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command. It opens the audit log, registers
// extensions and exits with status 1 on error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}

	registerExtensions()
	err := rootCmd.Execute()
	log.Close()

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}

// Fail reports err the way every command does: as {"error": ...} in JSON
// mode, otherwise as the returned error for cobra to print. Known error
// kinds are rendered with their user-facing message.
func Fail(err error) error {
	if err == nil {
		return nil
	}
	if kind := errkind.KindOf(err); kind != errkind.KindUnknown {
		err = messageError{err: err}
	}
	return PrintJSONError(err)
}

// messageError keeps the original error chain but prints errkind.Message.
type messageError struct{ err error }

func (e messageError) Error() string { return errkind.Message(e.err) }
func (e messageError) Unwrap() error { return e.err }
