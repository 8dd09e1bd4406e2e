// SPDX-License-Identifier: GPL-2.0-or-later

package policy

import "github.com/seojungmin/machine/lib/containers"

// arc is the Adaptive Replacement Cache policy. It maintains four
// recency/frequency lists — T1 (recent), T2 (frequent), and their
// ghost counterparts B1/B2 — plus an adaptation parameter p that
// shifts the live T1/T2 split toward whichever of recency or frequency
// is winning for the current workload.
//
// Boundary with the containing cache: the cache always previews the
// eviction candidate with Victim() and commits it with Erase() before
// calling Insert() for a new key when the cache is at capacity. That
// means Insert never needs to evict a *live* entry on its own account
// — by the time it runs, the cache has already freed a slot if one was
// needed. What Insert still owns is the ARC-specific bookkeeping that
// has nothing to do with the cache's own capacity accounting: ghost
// hits (which move a key from a ghost list into T2 and adapt p) and
// trimming the ghost lists themselves so the DBL(2c)-style size bounds
// (|T1|+|B1| ≤ c, |T1|+|T2|+|B1|+|B2| ≤ 2c) keep holding as entries
// flow in. This is the one place this implementation deliberately
// departs from a literal reading of the single self-contained
// replace() procedure in the ARC paper, in order to fit the uniform
// four-op Policy capability every other policy also implements; see
// DESIGN.md for the worked-through justification.
type arc[K comparable] struct {
	cap int

	t1, t2 containers.LinkedList[K]
	b1, b2 containers.LinkedList[K]

	liveByKey  map[K]*liveLoc[K]
	ghostByKey map[K]*containers.LinkedListEntry[K]

	p int // recentLiveTarget, 0 <= p <= cap
}

type liveLoc[K comparable] struct {
	inT2  bool
	entry *containers.LinkedListEntry[K]
}

// NewARC returns a new, empty ARC policy for a cache of the given
// capacity. It is invalid (runtime-panic) to call NewARC with a
// non-positive capacity.
func NewARC[K comparable](cap int) Policy[K] {
	if cap <= 0 {
		panic("policy.NewARC: non-positive capacity")
	}
	return &arc[K]{
		cap:        cap,
		liveByKey:  make(map[K]*liveLoc[K], cap),
		ghostByKey: make(map[K]*containers.LinkedListEntry[K], cap),
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Insert implements the insert(k) algorithm of ARC(c). See the type
// doc comment for how the live-eviction step is handled relative to
// the containing cache.
func (a *arc[K]) Insert(k K) {
	if ghost, ok := a.ghostByKey[k]; ok {
		if ghost.List() == &a.b1 {
			a.p = min(a.cap, a.p+max(1, a.b2.Len/max(1, a.b1.Len)))
		} else {
			a.p = max(0, a.p-max(1, a.b1.Len/max(1, a.b2.Len)))
		}
		a.removeGhost(k, ghost)
		a.pushLive(k, true)
		return
	}

	// Case 3: k is new to the directory entirely.
	if a.t1.Len+a.b1.Len == a.cap {
		if a.t1.Len < a.cap && !a.b1.IsEmpty() {
			a.dropOldestGhost(&a.b1)
		}
		// else: T1 is already at capacity and B1 is empty; the live
		// slot this key needs was already freed by the cache's
		// Victim()+Erase() call before Insert was invoked.
	} else if total := a.t1.Len + a.t2.Len + a.b1.Len + a.b2.Len; total >= a.cap {
		if total == 2*a.cap {
			a.dropOldestGhost(&a.b2)
		}
	}
	a.pushLive(k, false)
}

func (a *arc[K]) dropOldestGhost(list *containers.LinkedList[K]) {
	if list.IsEmpty() {
		return
	}
	entry := list.Oldest
	delete(a.ghostByKey, entry.Value)
	list.Delete(entry)
}

func (a *arc[K]) removeGhost(k K, entry *containers.LinkedListEntry[K]) {
	delete(a.ghostByKey, k)
	entry.List().Delete(entry)
}

func (a *arc[K]) pushLive(k K, fromGhost bool) {
	var entry *containers.LinkedListEntry[K]
	if fromGhost {
		entry = a.t2.PushNewest(k)
		a.liveByKey[k] = &liveLoc[K]{inT2: true, entry: entry}
		return
	}
	entry = a.t1.PushNewest(k)
	a.liveByKey[k] = &liveLoc[K]{inT2: false, entry: entry}
}

// Touch implements the touch(k) algorithm: a hit on a T1 entry
// promotes it to T2; a hit on a T2 entry just refreshes its recency.
func (a *arc[K]) Touch(k K) {
	loc, ok := a.liveByKey[k]
	if !ok {
		return
	}
	if loc.inT2 {
		a.t2.MoveToNewest(loc.entry)
		return
	}
	a.t1.Delete(loc.entry)
	loc.entry = a.t2.PushNewest(k)
	loc.inT2 = true
}

// Erase stops tracking k and, since the only way a live ARC entry ever
// legitimately goes away is by being evicted, records its key as a
// ghost — trimming the ghost lists as needed to respect the DBL(2c)
// size bounds.
func (a *arc[K]) Erase(k K) {
	loc, ok := a.liveByKey[k]
	if !ok {
		return
	}
	delete(a.liveByKey, k)
	if loc.inT2 {
		a.t2.Delete(loc.entry)
		a.ghostByKey[k] = a.b2.PushNewest(k)
		for a.t1.Len+a.t2.Len+a.b1.Len+a.b2.Len > 2*a.cap {
			a.dropOldestGhost(&a.b2)
		}
		return
	}
	a.t1.Delete(loc.entry)
	a.ghostByKey[k] = a.b1.PushNewest(k)
	for a.t1.Len+a.b1.Len > a.cap {
		a.dropOldestGhost(&a.b1)
	}
}

// Victim mirrors the Replace() decision tree using only the current
// list sizes (it has no candidate key to test ghost membership
// against, since it is a pure, key-independent query per the Policy
// contract). On the rare exact tie (|T1| == p), this implementation
// defaults to evicting from T2 unless T2 is empty, matching the
// "arbitrary" tie-break the original paper explicitly allows.
func (a *arc[K]) Victim() (K, bool) {
	switch {
	case a.t1.Len > a.p && !a.t1.IsEmpty():
		return a.t1.Oldest.Value, true
	case a.t1.Len < a.p && !a.t2.IsEmpty():
		return a.t2.Oldest.Value, true
	case !a.t2.IsEmpty():
		return a.t2.Oldest.Value, true
	case !a.t1.IsEmpty():
		return a.t1.Oldest.Value, true
	default:
		var zero K
		return zero, false
	}
}
