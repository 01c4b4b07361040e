package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	t.Run("empty graph has no components", func(t *testing.T) {
		c := Analyze(New(0))
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.TopologicalOrder())
	})

	t.Run("nodes without edges are trivial singletons", func(t *testing.T) {
		c := Analyze(New(3))
		require.Equal(t, 3, c.Len())
		for comp := 0; comp < c.Len(); comp++ {
			assert.Len(t, c.Members(comp), 1)
			assert.True(t, c.Trivial(comp))
		}
		assert.Empty(t, c.NonTrivial())
	})

	t.Run("chain is acyclic", func(t *testing.T) {
		g := newGraph(t, 3, [2]int{0, 1}, [2]int{1, 2})
		c := Analyze(g)
		require.Equal(t, 3, c.Len())
		// Tarjan emits sinks first.
		assert.Equal(t, []int{2}, c.Members(0))
		assert.Equal(t, []int{1}, c.Members(1))
		assert.Equal(t, []int{0}, c.Members(2))
		assert.Equal(t, []int{c.ComponentOf(1)}, c.Edges(c.ComponentOf(0)))
	})

	t.Run("two node cycle collapses", func(t *testing.T) {
		g := newGraph(t, 3, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 2})
		c := Analyze(g)
		require.Equal(t, 2, c.Len())

		ab := c.ComponentOf(0)
		assert.Equal(t, ab, c.ComponentOf(1))
		assert.Equal(t, []int{0, 1}, c.Members(ab))
		assert.False(t, c.Trivial(ab))
		assert.Equal(t, []int{ab}, c.NonTrivial())
		assert.Equal(t, []int{c.ComponentOf(2)}, c.Edges(ab))
	})

	t.Run("members are sorted by id", func(t *testing.T) {
		g := newGraph(t, 4, [2]int{0, 3}, [2]int{3, 2}, [2]int{2, 1}, [2]int{1, 0})
		c := Analyze(g)
		require.Equal(t, 1, c.Len())
		assert.Equal(t, []int{0, 1, 2, 3}, c.Members(0))
	})

	t.Run("self loop is non-trivial", func(t *testing.T) {
		g := newGraph(t, 1, [2]int{0, 0})
		c := Analyze(g)
		require.Equal(t, 1, c.Len())
		assert.Len(t, c.Members(0), 1)
		assert.False(t, c.Trivial(0))
	})

	t.Run("cycle in a disjoint walk is found", func(t *testing.T) {
		g := newGraph(t, 5, [2]int{0, 1}, [2]int{2, 3}, [2]int{3, 4}, [2]int{4, 3}, [2]int{3, 1})
		c := Analyze(g)
		assert.Equal(t, c.ComponentOf(3), c.ComponentOf(4))
		assert.NotEqual(t, c.ComponentOf(2), c.ComponentOf(3))
		assert.Len(t, c.NonTrivial(), 1)
	})

	t.Run("unknown ids panic", func(t *testing.T) {
		c := Analyze(New(1))
		assert.Panics(t, func() { c.Members(5) })
		assert.Panics(t, func() { c.ComponentOf(5) })
	})
}

func TestAnalyze_Deterministic(t *testing.T) {
	build := func() *Graph {
		return newGraph(t, 6,
			[2]int{0, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{0, 3},
			[2]int{3, 4}, [2]int{4, 5}, [2]int{5, 3}, [2]int{2, 5},
		)
	}
	first := Analyze(build())
	for range 10 {
		again := Analyze(build())
		require.Equal(t, first.Len(), again.Len())
		for comp := 0; comp < first.Len(); comp++ {
			assert.Equal(t, first.Members(comp), again.Members(comp))
			assert.Equal(t, first.Edges(comp), again.Edges(comp))
		}
		assert.Equal(t, first.TopologicalOrder(), again.TopologicalOrder())
	}
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("dependents come before dependencies", func(t *testing.T) {
		g := newGraph(t, 4, [2]int{0, 1}, [2]int{1, 2}, [2]int{0, 3}, [2]int{3, 2})
		c := Analyze(g)
		order := c.TopologicalOrder()
		pos := make(map[int]int)
		for p, comp := range order {
			pos[comp] = p
		}
		for u := 0; u < g.Len(); u++ {
			for _, v := range g.Edges(u) {
				assert.Less(t, pos[c.ComponentOf(u)], pos[c.ComponentOf(v)], "edge %d -> %d", u, v)
			}
		}
	})

	t.Run("unconstrained nodes keep id order", func(t *testing.T) {
		c := Analyze(New(3))
		order := c.TopologicalOrder()
		var nodes []int
		for _, comp := range order {
			nodes = append(nodes, c.Members(comp)[0])
		}
		assert.Equal(t, []int{0, 1, 2}, nodes)
	})
}

func TestHasCycle(t *testing.T) {
	assert.False(t, Analyze(newGraph(t, 2, [2]int{0, 1})).HasCycle())
	assert.True(t, Analyze(newGraph(t, 2, [2]int{0, 1}, [2]int{1, 0})).HasCycle())
	assert.True(t, Analyze(newGraph(t, 1, [2]int{0, 0})).HasCycle())
}
