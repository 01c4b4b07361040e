package app

import (
	"context"
	"fmt"

	"github.com/vk/linkorder/internal/config"
	"github.com/vk/linkorder/internal/ctxlog"
	"github.com/vk/linkorder/internal/hcl_adapter"
	"github.com/vk/linkorder/internal/yaml_adapter"
)

// defaultLoaders reads every supported build-description format.
func defaultLoaders() []config.Loader {
	return []config.Loader{hcl_adapter.NewLoader(), yaml_adapter.NewLoader()}
}

// loadModel runs every loader over paths and merges what they find. Files
// of a format are only read by the loader for that format.
func loadModel(ctx context.Context, loaders []config.Loader, paths []string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	merged := &config.Model{}
	for _, l := range loaders {
		m, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load build description: %w", err)
		}
		merged.Merge(m)
	}
	if len(merged.Targets) == 0 {
		return nil, fmt.Errorf("no targets found in %v", paths)
	}
	logger.Debug("Build description loaded.", "targets", len(merged.Targets), "externals", len(merged.Externals), "configurations", len(merged.Configurations))
	return merged, nil
}
