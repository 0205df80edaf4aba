// flags.go defines constants for CLI flag names shared by extensions.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagCaseSensitive  = "case-sensitive"     // Match case exactly
	FlagCount          = "count"              // Output per-file match counts
	FlagDiff           = "diff"               // Show a diff of each rewritten file
	FlagDryRun         = "dry-run"            // Preview without writing
	FlagFilesWithMatch = "files-with-matches" // Output matching file paths only
	FlagLocal          = "local"              // Use local config scope
	FlagRegex          = "regex"              // Treat the query as a regular expression
	FlagVerify         = "verify"             // Skip results whose line changed since the search
	FlagWord           = "word"               // Whole-word matching

	// String flags

	FlagExclude = "exclude" // Comma-separated directory exclusions
	FlagFrom    = "from"    // Saved JSON result list ("-" for stdin)
	FlagInclude = "include" // Comma-separated file include patterns

	// Integer flags

	FlagDepth   = "depth"   // Tree depth limit
	FlagWorkers = "workers" // Files scanned concurrently
)
