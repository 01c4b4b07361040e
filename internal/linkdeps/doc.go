/*
Package linkdeps computes the ordered list of libraries and flags to pass to
the linker for one target in one configuration.

Resolution runs in five stages, all owned by a single call to
Resolver.Compute and never shared between calls:

 1. Registry: every distinct item (target, library name, path or flag) gets a
    dense index on first sight. The index is also the item's node in the
    constraint graph.

 2. Graph building: the root's link implementation seeds a breadth-first walk.
    Targets contribute their link interface, externals with declared
    dependencies contribute those, and unknown externals get their
    dependencies inferred from the lists they appear in. Every edge u -> v
    means "u needs symbols from v".

 3. Shared dependencies: shared libraries loaded at runtime by other shared
    libraries are queued and added as shared-dependency-only entries, with
    edges from the library that loads them.

 4. Components: the cleaned graph is collapsed into strongly connected
    components. A component with several members is a cycle of static
    archives.

 5. Ordering: the direct items are emitted first, in declared order. Whenever
    a component is complete, the components it depends on become pending and
    are emitted later, so a dependency always follows the last occurrence of
    its dependent. Cycles are listed as many times as the RepeatPolicy says.

The result is deterministic: identical inputs produce identical output.
*/
package linkdeps
