package buildmodel

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// InterfaceKey identifies one memoized link interface.
type InterfaceKey struct {
	Target string
	Config string
}

// InterfaceCache memoizes computed link interfaces. Implementations must be
// safe for concurrent use, since resolutions for different targets may share
// one cache.
type InterfaceCache interface {
	Get(key InterfaceKey) (*Interface, bool)
	Add(key InterfaceKey, iface *Interface)
	Purge()
}

// LRUCache is an InterfaceCache bounded to a fixed number of interfaces.
// Evicted entries are simply recomputed on the next query.
type LRUCache struct {
	c *lru.Cache[InterfaceKey, *Interface]
}

// NewLRUCache creates an interface cache holding up to size entries.
func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New[InterfaceKey, *Interface](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{c: c}, nil
}

// Get implements InterfaceCache.
func (l *LRUCache) Get(key InterfaceKey) (*Interface, bool) {
	return l.c.Get(key)
}

// Add implements InterfaceCache.
func (l *LRUCache) Add(key InterfaceKey, iface *Interface) {
	l.c.Add(key, iface)
}

// Purge implements InterfaceCache.
func (l *LRUCache) Purge() {
	l.c.Purge()
}

// Len returns the number of cached interfaces.
func (l *LRUCache) Len() int {
	return l.c.Len()
}

// noCache recomputes every interface.
type noCache struct{}

func (noCache) Get(InterfaceKey) (*Interface, bool) { return nil, false }
func (noCache) Add(InterfaceKey, *Interface)        {}
func (noCache) Purge()                              {}
