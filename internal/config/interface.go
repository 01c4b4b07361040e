package config

import "context"

// Loader is the interface for a format-specific build description loader.
type Loader interface {
	// Load reads every build description file found under the given paths
	// and merges them into a single format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// ItemList yields the link items of a list for one configuration. The empty
// configuration name stands for "no configuration selected".
type ItemList interface {
	Items(config string) ([]string, error)
}
