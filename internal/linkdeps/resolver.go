package linkdeps

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/linkorder/internal/buildmodel"
	"github.com/vk/linkorder/internal/ctxlog"
	"github.com/vk/linkorder/internal/graph"
)

// Model is the part of the build model a resolution reads. Implementations
// must not change while resolutions are running.
type Model interface {
	// Target looks up the target to resolve, linkable or not.
	Target(name string) (*buildmodel.Target, error)
	// ResolveName maps an item to a linkable in-project target, or nil.
	ResolveName(name string) (*buildmodel.Target, error)
	// LinkImplementation lists the items a target links to build itself.
	LinkImplementation(t *buildmodel.Target, config string) ([]string, error)
	// LinkInterface returns what a target exports to its consumers.
	LinkInterface(t *buildmodel.Target, config string) (*buildmodel.Interface, error)
	// KnownDepends returns declared dependencies of an external item.
	KnownDepends(item, config string) ([]string, bool, error)
}

// Result is the outcome of one resolution. It must be treated as read-only.
type Result struct {
	Target string
	Config string
	// Entries is the final link line.
	Entries []LinkEntry
	// LinkerLanguage is the language whose driver should run the link.
	LinkerLanguage string
	// Cycles lists the members of every dependency cycle with two or more
	// items, static or shared.
	Cycles [][]string
	// Items is the number of distinct items reached.
	Items int
	// Graph renders the cleaned constraint graph when debug output is on.
	Graph string
}

// Resolver computes link lines against a Model. It holds no per-resolution
// state, so one Resolver may serve concurrent Compute calls.
type Resolver struct {
	model      Model
	policy     RepeatPolicy
	languages  []string
	debugGraph bool
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithRepeatPolicy selects how static-library cycles are repeated.
func WithRepeatPolicy(p RepeatPolicy) Option {
	return func(r *Resolver) { r.policy = p }
}

// WithLanguagePreference sets the order in which linker languages win.
func WithLanguagePreference(langs ...string) Option {
	return func(r *Resolver) { r.languages = slices.Clone(langs) }
}

// WithDebugGraph logs the constraint graph of every resolution at debug level.
func WithDebugGraph(enabled bool) Option {
	return func(r *Resolver) { r.debugGraph = enabled }
}

// NewResolver creates a Resolver reading from model.
func NewResolver(model Model, opts ...Option) *Resolver {
	r := &Resolver{
		model:     model,
		policy:    GNURepeat{},
		languages: []string{"CXX", "C"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Compute resolves the link line of the named target for one configuration.
// Fatal configuration errors are returned as *ResolveError.
func (r *Resolver) Compute(ctx context.Context, target, config string) (*Result, error) {
	ctx, logger := ctxlog.With(ctx, "target", target, "config", config)
	logger.Debug("Compute: Starting link dependency resolution.")

	root, err := r.model.Target(target)
	if err != nil {
		return nil, &ResolveError{Target: target, Config: config, Err: err}
	}
	if root == nil {
		return nil, &ResolveError{Target: target, Config: config, Err: ErrUnknownTarget}
	}

	res := &resolution{
		model:    r.model,
		root:     root,
		config:   config,
		reg:      NewRegistry(),
		graph:    graph.New(0),
		followed: make(map[int]bool),
		iface:    make(map[int]*buildmodel.Interface),
	}
	if err := res.build(ctx); err != nil {
		return nil, &ResolveError{Target: root.Name, Config: config, Err: err}
	}
	logger.Debug("Compute: Constraint graph complete.", "items", res.reg.Len(), "edges", res.graph.EdgeCount())
	var rendered string
	if r.debugGraph {
		rendered = res.describeGraph()
		logger.Debug("Compute: Constraint graph.", "graph", rendered)
	}

	comps := graph.Analyze(res.graph)
	o := newOrderer(comps, func(members []int) int {
		return r.policy.Repeat(res.multiplicities(members))
	})
	order := o.run(res.original)
	logger.Debug("Compute: Ordering complete.", "components", comps.Len(), "cyclic", comps.HasCycle(), "visits", len(order))

	result := &Result{
		Target:         root.Name,
		Config:         config,
		Entries:        res.finalEntries(order),
		LinkerLanguage: r.linkerLanguage(res),
		Items:          res.reg.Len(),
		Graph:          rendered,
	}
	for _, comp := range comps.NonTrivial() {
		members := comps.Members(comp)
		if len(members) < 2 {
			continue
		}
		names := make([]string, 0, len(members))
		for _, m := range members {
			names = append(names, res.reg.entry(m).Item)
		}
		result.Cycles = append(result.Cycles, names)
	}
	logger.Debug("Compute: Resolution successful.", "entries", len(result.Entries), "cycles", len(result.Cycles))
	return result, nil
}

// finalEntries maps the visit order to entries, keeping only the last
// occurrence of each shared library since the linker re-uses it.
func (res *resolution) finalEntries(order []int) []LinkEntry {
	emitted := make(map[int]bool)
	out := make([]LinkEntry, 0, len(order))
	for k := len(order) - 1; k >= 0; k-- {
		i := order[k]
		e := res.reg.entry(i)
		if e.Target != nil && e.Target.IsShared() {
			if emitted[i] {
				continue
			}
			emitted[i] = true
		}
		out = append(out, *e)
	}
	slices.Reverse(out)
	return out
}

// describeGraph renders the constraint graph with item names.
func (res *resolution) describeGraph() string {
	return res.graph.Format(func(i int) string {
		return fmt.Sprintf("%d:%s", i, res.reg.entry(i).Item)
	})
}
