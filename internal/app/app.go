package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/linkorder/internal/batch"
	"github.com/vk/linkorder/internal/buildmodel"
	"github.com/vk/linkorder/internal/config"
	"github.com/vk/linkorder/internal/ctxlog"
	"github.com/vk/linkorder/internal/inmemoryresults"
	"github.com/vk/linkorder/internal/linkdeps"
	"github.com/vk/linkorder/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	project  *buildmodel.Project
	ifaces   *buildmodel.LRUCache
	runner   *batch.Runner
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// Option customizes an App.
type Option func(*appOptions)

type appOptions struct {
	loaders []config.Loader
}

// WithLoaders replaces the build-description loaders.
func WithLoaders(loaders ...config.Loader) Option {
	return func(o *appOptions) { o.loaders = loaders }
}

// NewApp loads the build description and prepares everything needed to
// resolve it. Link lines go to outW and logs to logW.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	o := &appOptions{loaders: defaultLoaders()}
	for _, opt := range opts {
		opt(o)
	}

	model, err := loadModel(ctx, o.loaders, cfg.ProjectPaths)
	if err != nil {
		return nil, err
	}

	ifaces, err := buildmodel.NewLRUCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	project, err := buildmodel.New(ctx, model, buildmodel.WithInterfaceCache(ifaces))
	if err != nil {
		return nil, fmt.Errorf("invalid build description: %w", err)
	}

	policy, err := linkdeps.ParseRepeatPolicy(cfg.Linker)
	if err != nil {
		return nil, err
	}
	resolver := linkdeps.NewResolver(project,
		linkdeps.WithRepeatPolicy(policy),
		linkdeps.WithDebugGraph(cfg.DebugGraph),
	)

	store, err := inmemoryresults.New(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	runner := batch.New(resolver,
		batch.WithStore(store),
		batch.WithMetrics(m),
		batch.WithWorkers(cfg.Workers),
	)
	logger.Debug("App initialized.", "linker", policy.Name(), "workers", cfg.Workers)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		project:  project,
		ifaces:   ifaces,
		runner:   runner,
		registry: reg,
		metrics:  m,
	}, nil
}

// Project returns the loaded build model. This is primarily for testing.
func (a *App) Project() *buildmodel.Project {
	return a.project
}

// Gatherer exposes the metrics recorded by this App.
func (a *App) Gatherer() prometheus.Gatherer {
	return a.registry
}
