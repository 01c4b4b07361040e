// Package batch resolves many target references in parallel.
//
// Every resolution owns its own working state; the build model, the
// interface cache and the result store are shared and must be safe for
// concurrent use.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/linkorder/internal/ctxlog"
	"github.com/vk/linkorder/internal/linkdeps"
	"github.com/vk/linkorder/internal/metrics"
	"github.com/vk/linkorder/internal/resultstore"
	"github.com/vk/linkorder/internal/targetref"
	"golang.org/x/sync/errgroup"
)

// Computer resolves a single link line.
type Computer interface {
	Compute(ctx context.Context, target, config string) (*linkdeps.Result, error)
}

// Runner fans resolutions out over a bounded number of workers.
type Runner struct {
	computer Computer
	store    resultstore.Store
	metrics  *metrics.Metrics
	workers  int
}

// Option customizes a Runner.
type Option func(*Runner)

// WithStore answers repeated references from store.
func WithStore(store resultstore.Store) Option {
	return func(r *Runner) { r.store = store }
}

// WithMetrics records every resolution in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithWorkers bounds the number of concurrent resolutions. Values below one
// mean one.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = max(n, 1) }
}

// New creates a Runner around computer.
func New(computer Computer, opts ...Option) *Runner {
	r := &Runner{computer: computer, workers: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve computes every reference and returns the results in request
// order. The first failure cancels the remaining work and is returned.
// References must name a configuration.
func (r *Runner) Resolve(ctx context.Context, refs []targetref.Ref) ([]*linkdeps.Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Batch: Starting.", "refs", len(refs), "workers", r.workers)

	results := make([]*linkdeps.Result, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.resolveOne(gctx, ref)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Debug("Batch: Failed.", "error", err)
		return nil, err
	}
	logger.Debug("Batch: Complete.", "results", len(results))
	return results, nil
}

func (r *Runner) resolveOne(ctx context.Context, ref targetref.Ref) (*linkdeps.Result, error) {
	if !ref.HasConfig {
		return nil, fmt.Errorf("reference %q does not name a configuration", ref)
	}
	if r.store != nil {
		if res, ok := r.store.Get(ctx, ref); ok {
			r.observe(metrics.OutcomeCached, nil, 0)
			return res, nil
		}
	}

	start := time.Now()
	res, err := r.computer.Compute(ctx, ref.Target, ref.Config)
	if err != nil {
		r.observe(metrics.OutcomeError, nil, 0)
		return nil, err
	}
	r.observe(metrics.OutcomeSuccess, res, time.Since(start))

	if r.store != nil {
		r.store.Put(ctx, ref, res)
	}
	return res, nil
}

func (r *Runner) observe(outcome string, res *linkdeps.Result, took time.Duration) {
	if r.metrics == nil {
		return
	}
	r.metrics.ResolutionsTotal.WithLabelValues(outcome).Inc()
	if res == nil {
		return
	}
	r.metrics.EntriesPerResult.Observe(float64(len(res.Entries)))
	r.metrics.CyclesPerResult.Observe(float64(len(res.Cycles)))
	r.metrics.ResolutionDuration.Observe(took.Seconds())
}
