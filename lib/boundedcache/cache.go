// SPDX-License-Identifier: GPL-2.0-or-later

// Package boundedcache implements the fixed-capacity, policy-driven
// cache container that every Storage Cache in the simulator wraps: a
// map from key to value, paired 1:1 with a policy.Policy tracking the
// same key set, so that the policy can be asked which key to evict
// whenever the map is full.
package boundedcache

import (
	"fmt"
	"sync"

	"github.com/seojungmin/machine/lib/policy"
	"github.com/seojungmin/machine/lib/simerr"
)

// ErrNotFound is returned by Get when the requested key is absent.
var ErrNotFound = fmt.Errorf("boundedcache: not found")

// Victim is the (key, value) pair displaced by a Put that triggered an
// eviction.
type Victim[K comparable, V any] struct {
	Key   K
	Value V
}

// Cache is a fixed-capacity map from K to V whose eviction decisions
// are delegated to a policy.Policy[K].
//
// The "mutex" in the data model's §5 (bounded cache mutex) is
// realized literally: every public method except Capacity (which reads
// a field fixed at construction) takes the lock, so a single
// Put/Get/Has/Erase/Len call is atomic even if this cache is shared beyond
// the simulator's otherwise single-threaded trace loop (e.g. from a
// verbose reporting goroutine).
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	policy   policy.Policy[K]
	entries  map[K]V
}

// New returns a Cache of the given capacity, delegating eviction
// decisions to p. p must have been constructed with the same capacity
// (this matters for policy.ARC, which is capacity-aware).
func New[K comparable, V any](capacity int, p policy.Policy[K]) *Cache[K, V] {
	if capacity <= 0 {
		simerr.Violate("boundedcache.New: non-positive capacity %d", capacity)
	}
	return &Cache[K, V]{
		capacity: capacity,
		policy:   p,
		entries:  make(map[K]V, capacity),
	}
}

// Put inserts or updates the value for k. If inserting k requires
// evicting another entry, the evicted (key, value) pair is returned.
func (c *Cache[K, V]) Put(k K, v V) (evicted Victim[K, V], ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[k]; exists {
		c.entries[k] = v
		c.policy.Touch(k)
		return Victim[K, V]{}, false
	}

	if len(c.entries) >= c.capacity {
		victimKey, has := c.policy.Victim()
		if !has {
			simerr.Violate("boundedcache: cache at capacity but policy reports no victim")
		}
		victimVal := c.entries[victimKey]
		c.policy.Erase(victimKey)
		delete(c.entries, victimKey)
		evicted, ok = Victim[K, V]{Key: victimKey, Value: victimVal}, true
	}

	c.entries[k] = v
	c.policy.Insert(k)
	return evicted, ok
}

// Get returns the value for k, calling policy.Touch(k) first unless
// touch is false. It fails with ErrNotFound if k is absent.
func (c *Cache[K, V]) Get(k K, touch bool) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[k]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	if touch {
		c.policy.Touch(k)
	}
	return v, nil
}

// Has reports whether k is present, without recording a use.
func (c *Cache[K, V]) Has(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[k]
	return ok
}

// Erase removes k, if present. It is a no-op if k is absent.
func (c *Cache[K, V]) Erase(k K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[k]; !ok {
		return
	}
	c.policy.Erase(k)
	delete(c.entries, k)
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the fixed capacity the cache was constructed with.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}
