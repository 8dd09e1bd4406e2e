// SPDX-License-Identifier: GPL-2.0-or-later

package policy

import "github.com/seojungmin/machine/lib/containers"

// lfu is the Least-Frequently-Used replacement policy. Keys are kept
// in per-frequency buckets; the victim is always drawn from the
// lowest populated bucket, and within a bucket the most-recent
// arrival wins ties (the bucket is itself a LinkedList, so each
// Insert/Touch that lands a key in a bucket pushes it to that
// bucket's newest end).
type lfu[K comparable] struct {
	buckets map[uint64]*containers.LinkedList[K]
	entries map[K]*lfuLoc[K]
	minFreq uint64
	size    int
}

type lfuLoc[K comparable] struct {
	freq  uint64
	entry *containers.LinkedListEntry[K]
}

// NewLFU returns a new, empty LFU policy.
func NewLFU[K comparable]() Policy[K] {
	return &lfu[K]{
		buckets: make(map[uint64]*containers.LinkedList[K]),
		entries: make(map[K]*lfuLoc[K]),
	}
}

func (p *lfu[K]) bucket(freq uint64) *containers.LinkedList[K] {
	b, ok := p.buckets[freq]
	if !ok {
		b = &containers.LinkedList[K]{}
		p.buckets[freq] = b
	}
	return b
}

func (p *lfu[K]) Insert(k K) {
	b := p.bucket(1)
	p.entries[k] = &lfuLoc[K]{freq: 1, entry: b.PushNewest(k)}
	p.minFreq = 1
	p.size++
}

func (p *lfu[K]) Touch(k K) {
	loc, ok := p.entries[k]
	if !ok {
		// Missing key: silently ignored, per the LFU touch contract.
		return
	}
	oldBucket := p.bucket(loc.freq)
	oldBucket.Delete(loc.entry)
	wasMin := loc.freq == p.minFreq && oldBucket.IsEmpty()

	loc.freq++
	loc.entry = p.bucket(loc.freq).PushNewest(k)

	if wasMin {
		p.minFreq++
	}
}

func (p *lfu[K]) Erase(k K) {
	loc, ok := p.entries[k]
	if !ok {
		return
	}
	b := p.bucket(loc.freq)
	b.Delete(loc.entry)
	delete(p.entries, k)
	p.size--

	if loc.freq == p.minFreq && b.IsEmpty() {
		p.recomputeMinFreq()
	}
}

// recomputeMinFreq scans upward from the just-vacated minimum until it
// finds a populated bucket or runs out of tracked keys.
func (p *lfu[K]) recomputeMinFreq() {
	if p.size == 0 {
		p.minFreq = 0
		return
	}
	for f := p.minFreq + 1; ; f++ {
		if b, ok := p.buckets[f]; ok && !b.IsEmpty() {
			p.minFreq = f
			return
		}
	}
}

// Victim returns the key at the lowest tracked frequency. Within that
// bucket the most-recently-inserted-or-touched key wins the tie: the
// bucket's Newest entry, not its Oldest — i.e. ties favor evicting
// whichever key most recently arrived at this frequency tier, leaving
// longer-standing tenants of the bucket alone.
func (p *lfu[K]) Victim() (K, bool) {
	if p.size == 0 {
		var zero K
		return zero, false
	}
	b := p.buckets[p.minFreq]
	return b.Newest.Value, true
}
