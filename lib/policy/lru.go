// SPDX-License-Identifier: GPL-2.0-or-later

package policy

import "github.com/seojungmin/machine/lib/containers"

// lru is the Least-Recently-Used replacement policy: a touch moves the
// key to the most-recent end, so the victim is always whichever key
// has gone the longest without a hit.
type lru[K comparable] struct {
	order containers.LinkedList[K]
	byKey map[K]*containers.LinkedListEntry[K]
}

// NewLRU returns a new, empty LRU policy.
func NewLRU[K comparable]() Policy[K] {
	return &lru[K]{byKey: make(map[K]*containers.LinkedListEntry[K])}
}

func (p *lru[K]) Insert(k K) {
	p.byKey[k] = p.order.PushNewest(k)
}

func (p *lru[K]) Touch(k K) {
	if entry, ok := p.byKey[k]; ok {
		p.order.MoveToNewest(entry)
	}
}

func (p *lru[K]) Erase(k K) {
	entry, ok := p.byKey[k]
	if !ok {
		return
	}
	p.order.Delete(entry)
	delete(p.byKey, k)
}

func (p *lru[K]) Victim() (K, bool) {
	if p.order.IsEmpty() {
		var zero K
		return zero, false
	}
	return p.order.Oldest.Value, true
}
