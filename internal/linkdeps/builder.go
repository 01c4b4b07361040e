package linkdeps

import (
	"context"
	"maps"
	"slices"

	"github.com/vk/linkorder/internal/buildmodel"
	"github.com/vk/linkorder/internal/config"
	"github.com/vk/linkorder/internal/ctxlog"
	"github.com/vk/linkorder/internal/graph"
)

// DependSet is a set of registry indices an item may depend on.
type DependSet map[int]struct{}

// DependSetList collects, for an item whose dependencies are unknown, one
// DependSet per link list the item appeared in.
type DependSetList struct {
	Initialized bool
	Sets        []DependSet
}

// bfsEntry is an item whose dependencies still have to be followed.
type bfsEntry struct {
	index int
	// known holds the declared dependencies of an external item.
	known []string
}

// resolution is the mutable state of a single Compute call.
type resolution struct {
	model  Model
	root   *buildmodel.Target
	config string

	reg      *Registry
	graph    *graph.Graph
	original []int
	bfs      []bfsEntry
	shared   []SharedDepEntry
	followed map[int]bool
	inferred []DependSetList
	// iface caches the interface fetched for each target entry.
	iface map[int]*buildmodel.Interface
}

// build runs the breadth-first walk, drains the shared dependency queue,
// infers missing dependencies and cleans the graph.
func (res *resolution) build(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	direct, err := res.model.LinkImplementation(res.root, res.config)
	if err != nil {
		return err
	}
	logger.Debug("Build: Seeding from direct link items.", "count", len(direct))
	if err := res.addLinkEntries(-1, direct); err != nil {
		return err
	}

	for len(res.bfs) > 0 {
		qe := res.bfs[0]
		res.bfs = res.bfs[1:]
		if err := res.followLinkEntry(qe); err != nil {
			return err
		}
	}
	logger.Debug("Build: Breadth-first walk complete.", "items", res.reg.Len())

	for len(res.shared) > 0 {
		dep := res.shared[0]
		res.shared = res.shared[1:]
		if err := res.handleSharedDependency(dep); err != nil {
			return err
		}
	}
	logger.Debug("Build: Shared dependencies followed.", "items", res.reg.Len())

	res.inferDependencies()
	res.graph.Clean()
	return nil
}

// isRoot reports whether item names the target being resolved, directly or
// through an alias.
func (res *resolution) isRoot(item string) (bool, error) {
	if item == res.root.Name {
		return true, nil
	}
	t, err := res.model.Target(item)
	if err != nil {
		return false, err
	}
	return t == res.root, nil
}

// addLinkEntry returns the index of item, allocating and queueing it when it
// is new.
func (res *resolution) addLinkEntry(item string) (int, error) {
	t, err := res.model.ResolveName(item)
	if err != nil {
		return -1, err
	}
	name := item
	if t != nil {
		name = t.Name
	}

	index, isNew := res.allocate(name)
	if !isNew {
		return index, nil
	}
	e := res.reg.entry(index)
	e.Target = t
	e.IsFlag = t == nil && isFlag(name)

	switch {
	case t != nil:
		res.bfs = append(res.bfs, bfsEntry{index: index})
	case e.IsFlag:
		// Flags are passed through untouched.
	default:
		known, ok, err := res.model.KnownDepends(name, res.config)
		if err != nil {
			return -1, err
		}
		if ok {
			res.bfs = append(res.bfs, bfsEntry{index: index, known: known})
		} else {
			res.inferred[index].Initialized = true
		}
	}
	return index, nil
}

// allocate interns name and grows the per-index tables with the registry.
func (res *resolution) allocate(name string) (int, bool) {
	index, isNew := res.reg.AllocateOrGetIndex(name)
	if isNew {
		res.graph.AddNode()
		res.inferred = append(res.inferred, DependSetList{})
	}
	return index, isNew
}

// addLinkEntries adds one link list. A negative depender means the list is
// the root's own.
func (res *resolution) addLinkEntries(depender int, items []string) error {
	dependSets := make(map[int]DependSet)
	var needInference []int

	for _, item := range items {
		if item == "" {
			continue
		}
		root, err := res.isRoot(item)
		if err != nil {
			return err
		}
		if root {
			continue
		}
		dependee, err := res.addLinkEntry(item)
		if err != nil {
			return err
		}

		if depender >= 0 {
			if err := res.graph.AddEdge(depender, dependee); err != nil {
				panic(err)
			}
		} else {
			res.original = append(res.original, dependee)
		}

		// Everything after an item in a list is a candidate dependency of it.
		for owner, set := range dependSets {
			if owner != dependee {
				set[dependee] = struct{}{}
			}
		}
		if res.inferred[dependee].Initialized {
			if _, ok := dependSets[dependee]; !ok {
				dependSets[dependee] = make(DependSet)
				needInference = append(needInference, dependee)
			}
		}
	}

	for _, owner := range needInference {
		res.inferred[owner].Sets = append(res.inferred[owner].Sets, dependSets[owner])
	}
	return nil
}

// followLinkEntry adds the dependencies of one queued item.
func (res *resolution) followLinkEntry(qe bfsEntry) error {
	e := res.reg.entry(qe.index)
	if e.Target == nil {
		return res.addLinkEntries(qe.index, qe.known)
	}

	iface, err := res.model.LinkInterface(e.Target, res.config)
	if err != nil {
		return err
	}
	if iface == nil {
		return nil
	}
	res.iface[qe.index] = iface
	if err := res.addLinkEntries(qe.index, iface.Libraries); err != nil {
		return err
	}
	if e.Target.Kind == config.KindInterfaceLibrary {
		return nil
	}
	res.followSharedDeps(qe.index, iface, false)
	return nil
}

// inferDependencies intersects the candidate sets of every item whose
// dependencies are unknown and records the survivors as edges.
func (res *resolution) inferDependencies() {
	for depender, list := range res.inferred {
		if !list.Initialized || len(list.Sets) == 0 {
			continue
		}
		common := maps.Clone(list.Sets[0])
		for _, set := range list.Sets[1:] {
			for k := range common {
				if _, ok := set[k]; !ok {
					delete(common, k)
				}
			}
		}
		for _, dependee := range slices.Sorted(maps.Keys(common)) {
			if err := res.graph.AddEdge(depender, dependee); err != nil {
				panic(err)
			}
		}
	}
}

// multiplicities returns the requested repeat counts of the target members.
func (res *resolution) multiplicities(members []int) []int {
	var out []int
	for _, m := range members {
		if iface, ok := res.iface[m]; ok && iface.Multiplicity > 0 {
			out = append(out, iface.Multiplicity)
		}
	}
	return out
}
