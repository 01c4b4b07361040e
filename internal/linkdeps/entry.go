package linkdeps

import (
	"strings"

	"github.com/vk/linkorder/internal/buildmodel"
)

// LinkEntry is one resolved item of a link line.
type LinkEntry struct {
	// Item is the target name, library name, path or raw flag.
	Item string
	// Target is set when the item is an in-project target.
	Target *buildmodel.Target
	// IsSharedDep marks a shared library pulled in only because another
	// shared library loads it at runtime.
	IsSharedDep bool
	// IsFlag marks a raw linker flag.
	IsFlag bool
}

// isFlag reports whether an item that is not a target is a raw linker flag
// rather than a library reference.
func isFlag(item string) bool {
	return strings.HasPrefix(item, "-") &&
		!strings.HasPrefix(item, "-l") &&
		!strings.HasPrefix(item, "-framework")
}
