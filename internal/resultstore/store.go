// Package resultstore defines the interface for keeping completed link
// resolutions so repeated requests within one configure run are answered
// without resolving again.
//
// A stored result is immutable. Put is append-only: once a reference has a
// result, later Puts for the same reference are ignored. The whole store is
// dropped with Purge when the build description changes.
package resultstore

import (
	"context"

	"github.com/vk/linkorder/internal/linkdeps"
	"github.com/vk/linkorder/internal/targetref"
)

// Store keeps completed results keyed by target reference.
//
// Implementations MUST be safe for concurrent use, since a batch resolves
// many references in parallel against one store.
type Store interface {
	// Get returns the stored result for ref.
	Get(ctx context.Context, ref targetref.Ref) (*linkdeps.Result, bool)

	// Put stores res for ref unless a result is already present. It reports
	// whether res was stored.
	Put(ctx context.Context, ref targetref.Ref, res *linkdeps.Result) bool

	// Purge drops every stored result.
	Purge(ctx context.Context)
}
