// Package graph holds the constraint graph used to order link items and the
// strongly-connected-component analysis that runs over it.
//
// Nodes are dense integers handed out by the caller (normally the link item
// registry), so a node id doubles as an index into the caller's own tables.
// An edge u -> v records that u depends on v: on a single-pass linker v must
// be listed after u.
//
// # Components
//
// Analyze collapses the graph with a single-pass Tarjan walk. The walk starts
// from every unvisited node in ascending id order and follows edges in
// adjacency order, so two identical graphs always produce identical
// components, component ids and component edges. Members of a component are
// sorted ascending, which for registry-allocated ids is discovery order.
//
// Components come out of the walk in reverse topological order (sinks
// first). TopologicalOrder re-derives a dependents-first order that keeps the
// original relative order of components wherever no edge constrains them.
//
// A component with more than one member is a cycle of mutually dependent
// static archives. A single node with an edge to itself is reported as
// non-trivial by Trivial, but callers decide what that means for them.
package graph
