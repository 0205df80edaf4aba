// options.go binds the flags search and replace share and turns them, plus
// configuration, into search.Options.

package search

import (
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/search"
	"github.com/spf13/cobra"
)

// addQueryFlags registers the flags that shape a search.
func addQueryFlags(c *cobra.Command) {
	c.Flags().BoolP(extension.FlagCaseSensitive, "s", false, "Match case exactly (default from search.case_sensitive)")
	c.Flags().BoolP(extension.FlagWord, "w", false, "Match whole words only")
	c.Flags().BoolP(extension.FlagRegex, "e", false, "Treat the query as a regular expression")
	c.Flags().String(extension.FlagInclude, "", "Only search files matching these comma-separated patterns (e.g. \"*.go,*.md\")")
	c.Flags().String(extension.FlagExclude, "", "Skip directories whose name contains any of these comma-separated tokens")
	c.Flags().IntP(extension.FlagWorkers, "j", 0, "Files to scan concurrently (default from search.workers)")
}

// queryOptions builds search.Options from flags, falling back to cfg for
// anything the user did not set explicitly.
func queryOptions(c *cobra.Command, cfg *config.Config, ctx extension.Context) search.Options {
	if cfg == nil {
		cfg = &config.Config{}
	}

	caseSensitive := cfg.CaseSensitive()
	if c.Flags().Changed(extension.FlagCaseSensitive) {
		caseSensitive, _ = c.Flags().GetBool(extension.FlagCaseSensitive)
	}
	workers := cfg.Workers()
	if c.Flags().Changed(extension.FlagWorkers) {
		workers, _ = c.Flags().GetInt(extension.FlagWorkers)
	}
	word, _ := c.Flags().GetBool(extension.FlagWord)
	regex, _ := c.Flags().GetBool(extension.FlagRegex)
	include, _ := c.Flags().GetString(extension.FlagInclude)
	exclude, _ := c.Flags().GetString(extension.FlagExclude)

	opts := search.Options{
		CaseSensitive: caseSensitive,
		WholeWord:     word,
		Regex:         regex,
		Include:       include,
		Exclude:       exclude,
		ExtraExcludes: cfg.Excludes(),
		Workers:       workers,
		MaxFileSize:   cfg.MaxFileSize(),
		MaxLineLength: cfg.MaxLineLength(),
	}
	if ctx != nil {
		opts.Logger = ctx.Logger()
	}
	return opts
}

// withConfig fills the engine limits an MCP caller cannot set.
func withConfig(opts search.Options, ctx extension.Context) search.Options {
	cfg := ctx.Config()
	opts.ExtraExcludes = cfg.Excludes()
	opts.Workers = cfg.Workers()
	opts.MaxFileSize = cfg.MaxFileSize()
	opts.MaxLineLength = cfg.MaxLineLength()
	opts.Logger = ctx.Logger()
	return opts
}

// rootArg returns the path argument at i, defaulting to ".".
func rootArg(args []string, i int) string {
	if len(args) > i && args[i] != "" {
		return args[i]
	}
	return "."
}
