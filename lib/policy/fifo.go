// SPDX-License-Identifier: GPL-2.0-or-later

package policy

import "github.com/seojungmin/machine/lib/containers"

// fifo is the First-In-First-Out replacement policy: whichever key has
// been tracked the longest is always the next victim, regardless of
// how many times it has been touched.
type fifo[K comparable] struct {
	order containers.LinkedList[K]
	byKey map[K]*containers.LinkedListEntry[K]
}

// NewFIFO returns a new, empty FIFO policy.
func NewFIFO[K comparable]() Policy[K] {
	return &fifo[K]{byKey: make(map[K]*containers.LinkedListEntry[K])}
}

func (p *fifo[K]) Insert(k K) {
	p.byKey[k] = p.order.PushNewest(k)
}

// Touch is a no-op for FIFO: insertion order, not use, decides eviction.
func (p *fifo[K]) Touch(K) {}

func (p *fifo[K]) Erase(k K) {
	entry, ok := p.byKey[k]
	if !ok {
		return
	}
	p.order.Delete(entry)
	delete(p.byKey, k)
}

func (p *fifo[K]) Victim() (K, bool) {
	if p.order.IsEmpty() {
		var zero K
		return zero, false
	}
	return p.order.Oldest.Value, true
}
