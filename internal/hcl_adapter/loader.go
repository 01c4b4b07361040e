package hcl_adapter

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/linkorder/internal/config"
	"github.com/vk/linkorder/internal/ctxlog"
	"github.com/vk/linkorder/internal/fsutil"
)

// Extensions are the file extensions this loader reads.
var Extensions = []string{".hcl"}

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL build-description loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges their blocks
// into a single model. Files are read in path order, directories in
// lexical order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, c := range root.Configurations {
			if !slices.Contains(model.Configurations, c) {
				model.Configurations = append(model.Configurations, c)
			}
		}
		for _, tb := range root.Targets {
			t, err := translateTarget(ctx, tb)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Targets = append(model.Targets, t)
		}
		for _, eb := range root.Externals {
			ext, err := translateExternal(eb)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Externals = append(model.Externals, ext)
		}
	}

	logger.Debug("HCL loading complete.", "configurations", len(model.Configurations), "targets", len(model.Targets), "externals", len(model.Externals))
	return model, nil
}
