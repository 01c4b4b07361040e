package graph

import (
	"fmt"
	"slices"
	"strings"
)

// Graph is a directed graph over dense integer nodes. It is not safe for
// concurrent mutation.
type Graph struct {
	// edges[u] lists the nodes u depends on.
	edges [][]int
}

// New creates a graph that already holds n nodes with ids 0..n-1.
func New(n int) *Graph {
	return &Graph{edges: make([][]int, n)}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.edges)
}

// AddNode appends a node and returns its id.
func (g *Graph) AddNode() int {
	g.edges = append(g.edges, nil)
	return len(g.edges) - 1
}

// AddEdge records that `from` depends on `to`. Both nodes must exist.
// Self-edges are allowed; duplicates are kept until Clean is called.
func (g *Graph) AddEdge(from, to int) error {
	if from < 0 || from >= len(g.edges) {
		return fmt.Errorf("source node not found: %d", from)
	}
	if to < 0 || to >= len(g.edges) {
		return fmt.Errorf("destination node not found: %d", to)
	}
	g.edges[from] = append(g.edges[from], to)
	return nil
}

// Edges returns the nodes that n depends on. The slice must not be modified.
func (g *Graph) Edges(n int) []int {
	if n < 0 || n >= len(g.edges) {
		panic(fmt.Sprintf("graph: node %d out of range [0,%d)", n, len(g.edges)))
	}
	return g.edges[n]
}

// Clean sorts every adjacency list and drops duplicate edges.
func (g *Graph) Clean() {
	for i, el := range g.edges {
		slices.Sort(el)
		g.edges[i] = slices.Compact(el)
	}
}

// EdgeCount returns the total number of edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, el := range g.edges {
		total += len(el)
	}
	return total
}

// Format renders the graph one node per line, labelling nodes with name.
func (g *Graph) Format(name func(int) string) string {
	var sb strings.Builder
	for i, el := range g.edges {
		sb.WriteString(name(i))
		sb.WriteString(" ->")
		for _, j := range el {
			sb.WriteRune(' ')
			sb.WriteString(name(j))
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
