package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/linkorder/internal/ctxlog"
	"github.com/vk/linkorder/internal/targetref"
)

// Run resolves every requested reference and writes the link lines.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	refs, err := a.requests()
	if err != nil {
		return err
	}
	a.logger.Debug("Requests expanded.", "count", len(refs))

	results, err := a.runner.Resolve(ctx, refs)
	if err != nil {
		return err
	}
	a.metrics.InterfaceCacheSize.Set(float64(a.ifaces.Len()))

	if err := render(a.outW, a.config.OutputFormat, results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if a.config.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(a.config.MetricsFile, a.registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		a.logger.Debug("Metrics written.", "file", a.config.MetricsFile)
	}

	a.logger.Info("Link lines resolved.", "count", len(results))
	return nil
}

// requests turns the configured references into one reference per
// target and configuration.
func (a *App) requests() ([]targetref.Ref, error) {
	configs := a.config.Configs
	if len(configs) == 0 {
		configs = a.project.Configurations()
	}

	var raws []string
	if a.config.All {
		raws = a.project.Targets()
	}
	raws = append(raws, a.config.Refs...)

	parsed, err := targetref.ParseAll(raws)
	if err != nil {
		return nil, err
	}
	var refs []targetref.Ref
	for _, ref := range parsed {
		refs = append(refs, ref.Expand(configs)...)
	}
	return refs, nil
}
