package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/linkorder/internal/buildmodel"
	"github.com/vk/linkorder/internal/config"
	"github.com/vk/linkorder/internal/inmemoryresults"
	"github.com/vk/linkorder/internal/linkdeps"
	"github.com/vk/linkorder/internal/metrics"
	"github.com/vk/linkorder/internal/targetref"
)

func project(t *testing.T) *buildmodel.Project {
	t.Helper()
	cache, err := buildmodel.NewLRUCache(64)
	require.NoError(t, err)

	m := &config.Model{Configurations: []string{"Debug", "Release"}}
	for i := range 10 {
		m.Targets = append(m.Targets, &config.Target{
			Name: fmt.Sprintf("app%d", i),
			Kind: config.KindExecutable,
			Links: []*config.Link{{Visibility: config.Private, Items: &config.StaticList{
				Default:   []string{"core", "m"},
				PerConfig: map[string][]string{"Debug": {"core", "m", "dbg"}},
			}}},
		})
	}
	m.Targets = append(m.Targets,
		&config.Target{Name: "core", Kind: config.KindStaticLibrary, Links: []*config.Link{{Visibility: config.Public, Items: config.Static("util")}}},
		&config.Target{Name: "util", Kind: config.KindStaticLibrary, Links: []*config.Link{{Visibility: config.Public, Items: config.Static("core")}}},
	)
	p, err := buildmodel.New(context.Background(), m, buildmodel.WithInterfaceCache(cache))
	require.NoError(t, err)
	return p
}

func TestResolve_PreservesRequestOrder(t *testing.T) {
	r := New(linkdeps.NewResolver(project(t)), WithWorkers(4))

	var refs []targetref.Ref
	for i := range 10 {
		refs = append(refs, targetref.New(fmt.Sprintf("app%d", i), "Debug"), targetref.New(fmt.Sprintf("app%d", i), "Release"))
	}
	results, err := r.Resolve(context.Background(), refs)
	require.NoError(t, err)
	require.Len(t, results, len(refs))

	for i, ref := range refs {
		assert.Equal(t, ref.Target, results[i].Target)
		assert.Equal(t, ref.Config, results[i].Config)
	}
	assert.Len(t, results[0].Entries, 6, "two passes over core and util plus m and dbg")
	assert.Len(t, results[1].Entries, 5, "two passes over core and util plus m")
}

func TestResolve_StoreAndMetrics(t *testing.T) {
	store, err := inmemoryresults.New(16)
	require.NoError(t, err)
	m := metrics.New(prometheus.NewRegistry())
	r := New(linkdeps.NewResolver(project(t)), WithStore(store), WithMetrics(m), WithWorkers(2))

	refs := []targetref.Ref{targetref.New("app0", "Debug")}
	first, err := r.Resolve(context.Background(), refs)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), refs)
	require.NoError(t, err)

	assert.Same(t, first[0], second[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues(metrics.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues(metrics.OutcomeCached)))
}

type countingComputer struct {
	calls atomic.Int32
	fail  string
}

func (c *countingComputer) Compute(ctx context.Context, target, config string) (*linkdeps.Result, error) {
	c.calls.Add(1)
	if target == c.fail {
		return nil, errors.New("boom")
	}
	return &linkdeps.Result{Target: target, Config: config}, nil
}

func TestResolve_FirstErrorWins(t *testing.T) {
	c := &countingComputer{fail: "bad"}
	r := New(c, WithWorkers(1))

	refs := []targetref.Ref{targetref.New("ok", ""), targetref.New("bad", ""), targetref.New("never", "")}
	_, err := r.Resolve(context.Background(), refs)

	require.EqualError(t, err, "boom")
	assert.Equal(t, int32(2), c.calls.Load())
}

func TestResolve_RequiresConfiguration(t *testing.T) {
	r := New(&countingComputer{})
	_, err := r.Resolve(context.Background(), []targetref.Ref{{Target: "app"}})
	assert.ErrorContains(t, err, "does not name a configuration")
}

func TestResolve_CancelledContext(t *testing.T) {
	c := &countingComputer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(c, WithWorkers(2)).Resolve(ctx, []targetref.Ref{targetref.New("a", "")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), c.calls.Load())
}
