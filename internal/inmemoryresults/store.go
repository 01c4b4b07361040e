package inmemoryresults

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vk/linkorder/internal/ctxlog"
	"github.com/vk/linkorder/internal/linkdeps"
	"github.com/vk/linkorder/internal/resultstore"
	"github.com/vk/linkorder/internal/targetref"
)

// Store implements resultstore.Store. Evicted results are simply resolved
// again on the next request.
type Store struct {
	// mu makes the check-then-add in Put atomic.
	mu    sync.Mutex
	cache *lru.Cache[string, *linkdeps.Result]
}

var _ resultstore.Store = (*Store)(nil)

// New creates a store holding at most size results.
func New(size int) (*Store, error) {
	cache, err := lru.New[string, *linkdeps.Result](size)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return &Store{cache: cache}, nil
}

// Get retrieves a stored result.
func (s *Store) Get(ctx context.Context, ref targetref.Ref) (*linkdeps.Result, bool) {
	res, ok := s.cache.Get(key(ref))
	if ok {
		ctxlog.FromContext(ctx).Debug("Result store hit.", "ref", key(ref))
	}
	return res, ok
}

// Put stores a result unless the reference already has one.
func (s *Store) Put(ctx context.Context, ref targetref.Ref, res *linkdeps.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(ref)
	if s.cache.Contains(k) {
		return false
	}
	s.cache.Add(k, res)
	ctxlog.FromContext(ctx).Debug("Result stored.", "ref", k, "entries", len(res.Entries))
	return true
}

// Purge drops every stored result.
func (s *Store) Purge(ctx context.Context) {
	s.cache.Purge()
	ctxlog.FromContext(ctx).Debug("Result store purged.")
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	return s.cache.Len()
}

// key keeps `t` and `t@` apart from each other while matching the
// configuration actually resolved.
func key(ref targetref.Ref) string {
	return targetref.New(ref.Target, ref.Config).String()
}
