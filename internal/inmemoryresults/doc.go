// Package inmemoryresults provides a size-bounded, in-memory implementation
// of resultstore.Store on top of an LRU cache.
package inmemoryresults
