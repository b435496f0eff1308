// Package nameindex memoizes repeated named lookups on large containers. It
// is a pure performance layer: the ground truth for map lookup always
// remains the container's sibling chain (see msgpack/tree.go), and a cache
// miss or a disabled cache must never change the result, only the cost of
// getting it.
package nameindex

import (
	"github.com/dolthub/maphash"
	lru "github.com/hashicorp/golang-lru/v2"
)

// key identifies one memoized lookup: which container, which folded name,
// and which "generation" of that container's child chain the answer is
// valid for. Generation-tagging means a stale entry is simply never looked
// up again after a mutation — it ages out of the LRU rather than needing
// active invalidation.
//
// name is carried alongside hash, not dropped in its favor: hash collisions
// are rare but not impossible, and a struct key compares all fields, so two
// different names that happen to hash alike still land on distinct cache
// entries. hash exists only to exercise maphash's fast string hashing up
// front; name is what actually guards correctness.
type key struct {
	container any
	gen       uint64
	hash      uint64
	name      string
}

// Cache is a bounded, generation-aware memo of name -> value lookups for an
// arbitrary container identity and result type.
type Cache[V any] struct {
	hasher maphash.Hasher[string]
	lru    *lru.Cache[key, V]
}

// New returns a Cache holding at most size entries.
func New[V any](size int) *Cache[V] {
	c, err := lru.New[key, V](size)
	if err != nil {
		// Only returns an error for size <= 0, which is a caller bug, not
		// a runtime condition; fall back to the smallest valid cache.
		c, _ = lru.New[key, V](1)
	}
	return &Cache[V]{hasher: maphash.NewHasher[string](), lru: c}
}

// Get returns the memoized value for (container, gen, foldedName), if any.
func (c *Cache[V]) Get(container any, gen uint64, foldedName string) (V, bool) {
	return c.lru.Get(key{container: container, gen: gen, hash: c.hasher.Hash(foldedName), name: foldedName})
}

// Put memoizes value for (container, gen, foldedName).
func (c *Cache[V]) Put(container any, gen uint64, foldedName string, value V) {
	c.lru.Add(key{container: container, gen: gen, hash: c.hasher.Hash(foldedName), name: foldedName}, value)
}
