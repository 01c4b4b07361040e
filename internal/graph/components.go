package graph

import (
	"fmt"
	"slices"
)

// Components is the strongly-connected-component partition of a Graph
// together with the acyclic graph between components.
type Components struct {
	input       *Graph
	members     [][]int
	componentOf []int
	edges       [][]int
}

// Analyze partitions g into strongly connected components. The result does
// not track later changes to g.
func Analyze(g *Graph) *Components {
	t := &tarjan{
		g:        g,
		walkOf:   make([]int, g.Len()),
		visitIdx: make([]int, g.Len()),
		root:     make([]int, g.Len()),
		comp:     make([]int, g.Len()),
	}
	for i := range t.comp {
		t.comp[i] = -1
	}
	for i := 0; i < g.Len(); i++ {
		if t.walkOf[i] == 0 {
			t.walk++
			t.index = 0
			t.visit(i)
		}
	}

	c := &Components{
		input:       g,
		members:     t.members,
		componentOf: t.comp,
		edges:       make([][]int, len(t.members)),
	}
	c.transferEdges()
	return c
}

// transferEdges maps inter-component edges of the input onto the component
// graph, keeping the first occurrence of each.
func (c *Components) transferEdges() {
	for i := 0; i < c.input.Len(); i++ {
		ci := c.componentOf[i]
		for _, j := range c.input.edges[i] {
			cj := c.componentOf[j]
			if ci != cj && !slices.Contains(c.edges[ci], cj) {
				c.edges[ci] = append(c.edges[ci], cj)
			}
		}
	}
}

// Len returns the number of components.
func (c *Components) Len() int {
	return len(c.members)
}

// ComponentOf returns the component holding node n.
func (c *Components) ComponentOf(n int) int {
	if n < 0 || n >= len(c.componentOf) {
		panic(fmt.Sprintf("graph: node %d was never analyzed", n))
	}
	return c.componentOf[n]
}

// Members returns the sorted nodes of a component. The slice must not be
// modified.
func (c *Components) Members(comp int) []int {
	c.check(comp)
	return c.members[comp]
}

// Edges returns the components that comp depends on.
func (c *Components) Edges(comp int) []int {
	c.check(comp)
	return c.edges[comp]
}

// Trivial reports whether comp is a single node without a self-loop.
func (c *Components) Trivial(comp int) bool {
	c.check(comp)
	if len(c.members[comp]) != 1 {
		return false
	}
	n := c.members[comp][0]
	return !slices.Contains(c.input.edges[n], n)
}

// NonTrivial returns the ids of all non-trivial components in ascending order.
func (c *Components) NonTrivial() []int {
	var out []int
	for comp := range c.members {
		if !c.Trivial(comp) {
			out = append(out, comp)
		}
	}
	return out
}

// TopologicalOrder returns every component id ordered so that a component
// precedes all components it depends on. The walk runs in reverse so that
// unconstrained components keep their original relative order.
func (c *Components) TopologicalOrder() []int {
	n := len(c.members)
	visited := make([]bool, n)
	pos := make([]int, n)
	next := n

	var visit func(comp int)
	visit = func(comp int) {
		if visited[comp] {
			return
		}
		visited[comp] = true
		el := c.edges[comp]
		for k := len(el) - 1; k >= 0; k-- {
			visit(el[k])
		}
		next--
		pos[comp] = next
	}
	for comp := n - 1; comp >= 0; comp-- {
		visit(comp)
	}

	order := make([]int, n)
	for comp, p := range pos {
		order[p] = comp
	}
	return order
}

func (c *Components) check(comp int) {
	if comp < 0 || comp >= len(c.members) {
		panic(fmt.Sprintf("graph: component %d out of range [0,%d)", comp, len(c.members)))
	}
}

// tarjan holds the bookkeeping for one run of Tarjan's algorithm. Nodes
// reached by an earlier walk are already assigned and are skipped.
type tarjan struct {
	g     *Graph
	walk  int
	index int
	// walkOf is 0 for unvisited nodes, otherwise the walk that reached them.
	walkOf   []int
	visitIdx []int
	root     []int
	comp     []int
	stack    []int
	members  [][]int
}

func (t *tarjan) visit(i int) {
	t.walkOf[i] = t.walk
	t.root[i] = i
	t.index++
	t.visitIdx[i] = t.index
	t.stack = append(t.stack, i)

	for _, j := range t.g.edges[i] {
		if t.walkOf[j] > 0 && t.walkOf[j] < t.walk {
			continue
		}
		if t.walkOf[j] == 0 {
			t.visit(j)
		}
		// Still on the stack: j may know an older root for i.
		if t.comp[j] < 0 && t.visitIdx[t.root[j]] < t.visitIdx[t.root[i]] {
			t.root[i] = t.root[j]
		}
	}

	if t.root[i] != i {
		return
	}
	c := len(t.members)
	var members []int
	for {
		j := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.comp[j] = c
		t.root[j] = i
		members = append(members, j)
		if j == i {
			break
		}
	}
	slices.Sort(members)
	t.members = append(t.members, members)
}

// HasCycle reports whether any component is non-trivial.
func (c *Components) HasCycle() bool {
	for comp := range c.members {
		if !c.Trivial(comp) {
			return true
		}
	}
	return false
}
