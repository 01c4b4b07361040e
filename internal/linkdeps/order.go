package linkdeps

import (
	"maps"
	"slices"

	"github.com/vk/linkorder/internal/graph"
)

// PendingComponent is a component some of whose members still have to
// appear on the link line.
type PendingComponent struct {
	ID int
	// Count is the number of times the whole component must still be seen.
	Count int
	// Entries are the members not yet seen in the current pass.
	Entries map[int]struct{}
}

// first returns the smallest outstanding entry.
func (pc *PendingComponent) first() int {
	return slices.Min(slices.Collect(maps.Keys(pc.Entries)))
}

// orderer emits the final visit order from the component graph.
type orderer struct {
	comps *graph.Components
	// position is the topological position of every component.
	position []int
	// pending is keyed by topological position; keys holds them sorted.
	pending map[int]*PendingComponent
	keys    []int
	repeat  func(members []int) int
	order   []int
}

func newOrderer(comps *graph.Components, repeat func(members []int) int) *orderer {
	o := &orderer{
		comps:    comps,
		position: make([]int, comps.Len()),
		pending:  make(map[int]*PendingComponent),
		repeat:   repeat,
	}
	for pos, comp := range comps.TopologicalOrder() {
		o.position[comp] = pos
	}
	return o
}

// run visits the original entries in order and then drains the pending
// components, dependents first.
func (o *orderer) run(original []int) []int {
	for _, e := range original {
		o.visitEntry(e)
	}
	for len(o.keys) > 0 {
		o.visitEntry(o.pending[o.keys[0]].first())
	}
	return o.order
}

func (o *orderer) visitEntry(index int) {
	o.order = append(o.order, index)
	comp := o.comps.ComponentOf(index)
	members := o.comps.Members(comp)

	if pc, ok := o.pending[o.position[comp]]; ok {
		delete(pc.Entries, index)
		if len(pc.Entries) == 0 {
			pc.Count--
			if pc.Count <= 0 {
				o.remove(o.position[comp])
			} else {
				for _, m := range members {
					pc.Entries[m] = struct{}{}
				}
			}
		}
	} else if len(members) > 1 {
		pc := o.makePending(comp)
		delete(pc.Entries, index)
	}

	// Everything this component depends on has to show up after it.
	for _, dep := range o.comps.Edges(comp) {
		o.makePending(dep)
	}
}

// makePending arms comp with a full set of entries and a fresh count.
func (o *orderer) makePending(comp int) *PendingComponent {
	pos := o.position[comp]
	pc, ok := o.pending[pos]
	if !ok {
		pc = &PendingComponent{ID: comp, Entries: make(map[int]struct{})}
		o.pending[pos] = pc
		i, _ := slices.BinarySearch(o.keys, pos)
		o.keys = slices.Insert(o.keys, i, pos)
	}
	members := o.comps.Members(comp)
	if len(members) == 1 {
		pc.Count = 1
	} else {
		pc.Count = o.repeat(members)
	}
	for _, m := range members {
		pc.Entries[m] = struct{}{}
	}
	return pc
}

func (o *orderer) remove(pos int) {
	delete(o.pending, pos)
	if i, found := slices.BinarySearch(o.keys, pos); found {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
}
