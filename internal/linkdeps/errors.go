package linkdeps

import (
	"errors"
	"fmt"
)

// ErrUnknownTarget is returned when the target to resolve does not exist.
var ErrUnknownTarget = errors.New("unknown target")

// ResolveError reports a fatal configuration error together with the
// target and configuration being resolved.
type ResolveError struct {
	Target string
	Config string
	Err    error
}

// Error implements the error interface for ResolveError.
func (e *ResolveError) Error() string {
	cfg := e.Config
	if cfg == "" {
		cfg = "<default>"
	}
	return fmt.Sprintf("resolving link dependencies of target %q for configuration %s: %v", e.Target, cfg, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResolveError) Unwrap() error {
	return e.Err
}
