package linkdeps

import "fmt"

// RepeatPolicy decides how many times a static-library cycle is listed.
type RepeatPolicy interface {
	// Repeat returns the pass count for a cycle whose member targets asked
	// for the given multiplicities.
	Repeat(multiplicities []int) int
	Name() string
}

// GNURepeat lists every cycle at least twice, or as often as its members
// ask, for single-pass linkers such as GNU ld.
type GNURepeat struct{}

func (GNURepeat) Repeat(multiplicities []int) int {
	count := 2
	for _, m := range multiplicities {
		count = max(count, m)
	}
	return count
}

func (GNURepeat) Name() string { return "gnu" }

// Rescan lists every cycle once, for linkers that re-scan archives until no
// new symbols resolve.
type Rescan struct{}

func (Rescan) Repeat([]int) int { return 1 }

func (Rescan) Name() string { return "rescan" }

// ParseRepeatPolicy maps a policy name onto its implementation.
func ParseRepeatPolicy(name string) (RepeatPolicy, error) {
	switch name {
	case "", "gnu":
		return GNURepeat{}, nil
	case "rescan":
		return Rescan{}, nil
	}
	return nil, fmt.Errorf("unknown linker repeat policy %q: must be one of gnu, rescan", name)
}
