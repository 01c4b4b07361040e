package linkdeps

import "github.com/vk/linkorder/internal/buildmodel"

// SharedDepEntry is a queued shared library together with the entry that
// loads it.
type SharedDepEntry struct {
	Item          string
	DependerIndex int
}

// followSharedDeps queues the runtime shared dependencies of an entry, at
// most once per entry. With followInterface set, the entry's exported
// libraries are queued too, which is how the closure walks through shared
// libraries reached only at runtime.
func (res *resolution) followSharedDeps(dependerIndex int, iface *buildmodel.Interface, followInterface bool) {
	if res.followed[dependerIndex] {
		return
	}
	res.followed[dependerIndex] = true
	if followInterface {
		res.queueShared(dependerIndex, iface.Libraries)
	}
	res.queueShared(dependerIndex, iface.SharedDeps)
}

func (res *resolution) queueShared(depender int, items []string) {
	for _, item := range items {
		res.shared = append(res.shared, SharedDepEntry{Item: item, DependerIndex: depender})
	}
}

// handleSharedDependency adds one queued shared library and continues the
// closure through it. Items that are not shared-library targets are dropped:
// the linker only needs the libraries loaded at runtime, and a static
// library's interface is never expanded here.
func (res *resolution) handleSharedDependency(dep SharedDepEntry) error {
	if dep.Item == "" {
		return nil
	}
	if root, err := res.isRoot(dep.Item); err != nil || root {
		return err
	}
	t, err := res.model.ResolveName(dep.Item)
	if err != nil {
		return err
	}
	if t == nil || !t.IsShared() {
		return nil
	}

	index, isNew := res.allocate(t.Name)
	if isNew {
		e := res.reg.entry(index)
		e.Target = t
		e.IsSharedDep = true
	}
	// The shared library must follow the item that loads it.
	if err := res.graph.AddEdge(dep.DependerIndex, index); err != nil {
		panic(err)
	}

	iface, err := res.model.LinkInterface(t, res.config)
	if err != nil {
		return err
	}
	if iface != nil {
		if _, ok := res.iface[index]; !ok {
			res.iface[index] = iface
		}
		res.followSharedDeps(index, iface, true)
	}
	return nil
}
