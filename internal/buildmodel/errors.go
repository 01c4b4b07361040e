package buildmodel

import (
	"errors"
	"fmt"
)

// ErrSelfReference marks a target that requires itself without any other
// member to make progress: a target listing itself, or an alias chain that
// loops. It cannot be recovered from without fixing the build description.
var ErrSelfReference = errors.New("unresolvable self-reference")

// selfReference wraps ErrSelfReference with the offending name.
func selfReference(name, via string) error {
	return fmt.Errorf("%w: %q requires itself via %q", ErrSelfReference, name, via)
}
