// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// LRUCache is a diagnostic-only least-recently-used(ish) cache backed
// by hashicorp/golang-lru's ARC implementation. It is unrelated to the
// replacement policies in lib/policy: nothing here participates in an
// eviction decision for a real device tier. A zero LRUCache is usable
// and has a cache size of 128 items; use NewLRUCache to set a
// different size.
type LRUCache[K comparable, V any] struct {
	initOnce sync.Once
	size     int
	inner    *lru.ARCCache
}

// NewLRUCache returns an LRUCache holding at most size items.
func NewLRUCache[K comparable, V any](size int) *LRUCache[K, V] {
	c := &LRUCache[K, V]{size: size}
	c.init()
	return c
}

func (c *LRUCache[K, V]) init() {
	c.initOnce.Do(func() {
		size := c.size
		if size <= 0 {
			size = 128
		}
		c.inner, _ = lru.NewARC(size)
	})
}

// Add records a use of key, evicting the least-recently-used entry if
// the cache is full.
func (c *LRUCache[K, V]) Add(key K, value V) {
	c.init()
	c.inner.Add(key, value)
}

// Contains reports whether key is present, without recording a use.
func (c *LRUCache[K, V]) Contains(key K) bool {
	c.init()
	return c.inner.Contains(key)
}

// Keys returns the cache's keys, oldest first.
func (c *LRUCache[K, V]) Keys() []K {
	c.init()
	untyped := c.inner.Keys()
	typed := make([]K, len(untyped))
	for i := range untyped {
		typed[i] = untyped[i].(K)
	}
	return typed
}

// Len returns the number of entries currently cached.
func (c *LRUCache[K, V]) Len() int {
	c.init()
	return c.inner.Len()
}
