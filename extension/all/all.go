// Package all imports every built-in sift extension.
// Import this package to register all built-in commands.
package all

import (
	_ "github.com/jpl-au/sift/extension/core"
	_ "github.com/jpl-au/sift/extension/search"
	_ "github.com/jpl-au/sift/extension/tree"
)
