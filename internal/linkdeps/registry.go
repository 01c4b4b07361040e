package linkdeps

import "fmt"

// Registry interns link items into dense indices. Indices are never reused
// or renumbered. A Registry is not safe for concurrent use.
type Registry struct {
	index   map[string]int
	entries []LinkEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// AllocateOrGetIndex returns the index of name, allocating one if the name
// has not been seen. The second result reports whether it was allocated now.
func (r *Registry) AllocateOrGetIndex(name string) (int, bool) {
	if i, ok := r.index[name]; ok {
		return i, false
	}
	i := len(r.entries)
	r.index[name] = i
	r.entries = append(r.entries, LinkEntry{Item: name})
	return i, true
}

// Lookup returns the index of name if it has one.
func (r *Registry) Lookup(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Len returns the number of allocated indices.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entry returns a copy of the entry at index i.
func (r *Registry) Entry(i int) LinkEntry {
	return *r.entry(i)
}

func (r *Registry) entry(i int) *LinkEntry {
	if i < 0 || i >= len(r.entries) {
		panic(fmt.Sprintf("linkdeps: registry index %d out of range [0,%d)", i, len(r.entries)))
	}
	return &r.entries[i]
}
