// SPDX-License-Identifier: GPL-2.0-or-later

// Package storagecache is the type-erased façade every Device puts in
// front of a boundedcache.Cache specialized for block_id -> BlockStatus,
// dispatching to whichever replacement policy the machine's
// configuration selected. It also carries the tiny sequentiality
// detector the latency model consults.
package storagecache

import (
	"github.com/seojungmin/machine/lib/boundedcache"
	"github.com/seojungmin/machine/lib/devicekind"
	"github.com/seojungmin/machine/lib/policy"
	"github.com/seojungmin/machine/lib/simerr"
)

// BlockStatus tags a cached block as safely discardable (Clean) or
// requiring write-back before its volatile copy can be dropped
// (Dirty).
type BlockStatus int

const (
	Clean BlockStatus = iota
	Dirty
)

func (s BlockStatus) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "clean"
}

// Invalid is the reserved block id distinguishable from every
// legitimate block id (global block ids, fork*10+block, are always
// non-negative).
const Invalid int64 = -1

// Victim is the (block, status) pair displaced by a Put that triggered
// an eviction, or the sentinel (Invalid, _) when nothing was displaced.
type Victim struct {
	Block  int64
	Status BlockStatus
}

// Valid reports whether v names a real displaced block.
func (v Victim) Valid() bool { return v.Block != Invalid }

// StorageCache specializes boundedcache.Cache[int64, BlockStatus] for
// one device tier, dynamically dispatching on caching to whichever of
// FIFO/LRU/LFU/ARC the machine's configuration selected.
type StorageCache struct {
	DeviceKind  devicekind.Kind
	CachingKind policy.Kind

	inner *boundedcache.Cache[int64, BlockStatus]

	lastBlockSeen int64
	haveSeen      bool
}

// New returns a StorageCache for a device of the given kind, with the
// given capacity and replacement policy.
func New(kind devicekind.Kind, caching policy.Kind, capacity int) *StorageCache {
	p := policy.New[int64](caching, capacity)
	return &StorageCache{
		DeviceKind:  kind,
		CachingKind: caching,
		inner:       boundedcache.New[int64, BlockStatus](capacity, p),
	}
}

// Put inserts or updates block with status, returning the victim (if
// any) displaced to make room. It is a fatal InvariantViolation for a
// real (non-Invalid) victim to carry anything but Clean or Dirty —
// that can only mean the policy and the map have desynchronized.
func (s *StorageCache) Put(block int64, status BlockStatus) Victim {
	evicted, ok := s.inner.Put(block, status)
	if !ok {
		return Victim{Block: Invalid}
	}
	if evicted.Value != Clean && evicted.Value != Dirty {
		simerr.Violate("storagecache: victim block %d has invalid status %v", evicted.Key, evicted.Value)
	}
	return Victim{Block: evicted.Key, Status: evicted.Value}
}

// Get returns the status of block, calling the policy's Touch unless
// touch is false. It fails with boundedcache.ErrNotFound if block is
// absent.
func (s *StorageCache) Get(block int64, touch bool) (BlockStatus, error) {
	return s.inner.Get(block, touch)
}

// Has reports whether block is resident, without recording a use.
func (s *StorageCache) Has(block int64) bool {
	return s.inner.Has(block)
}

// Erase removes block, if present.
func (s *StorageCache) Erase(block int64) {
	s.inner.Erase(block)
}

// Len returns the number of blocks currently resident.
func (s *StorageCache) Len() int {
	return s.inner.Len()
}

// Capacity returns the cache's fixed capacity.
func (s *StorageCache) Capacity() int {
	return s.inner.Capacity()
}

// IsSequential reports whether next continues a run of sequential
// accesses — true iff |next - last| == 1 for the previously-seen
// block — and then records next as the new last-seen block. The very
// first call is always treated as non-sequential, since there is no
// prior block to compare against.
func (s *StorageCache) IsSequential(next int64) bool {
	seq := s.haveSeen && abs64(next-s.lastBlockSeen) == 1
	s.lastBlockSeen = next
	s.haveSeen = true
	return seq
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
