package store

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingLoader is a thread-safe LRU-cached store loader for callers
// that analyze the same logs repeatedly. Entries are keyed by path
// plus file modification time and size, so a rewritten log is
// reloaded rather than served stale.
type CachingLoader struct {
	cache *lru.Cache[string, *Store]
}

// NewCachingLoader creates a loader caching up to maxItems stores.
func NewCachingLoader(maxItems int) (*CachingLoader, error) {
	c, err := lru.New[string, *Store](maxItems)
	if err != nil {
		return nil, err
	}
	return &CachingLoader{cache: c}, nil
}

// Load returns the store at path, from cache when fresh.
func (cl *CachingLoader) Load(path string) (*Store, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	key := fmt.Sprintf("%s|%d|%d", path, fi.ModTime().UnixNano(), fi.Size())
	if st, ok := cl.cache.Get(key); ok {
		return st, nil
	}

	st, err := Load(path)
	if err != nil {
		return nil, err
	}
	cl.cache.Add(key, st)
	return st, nil
}

// Len returns the current number of cached stores.
func (cl *CachingLoader) Len() int {
	return cl.cache.Len()
}
