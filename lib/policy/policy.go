// SPDX-License-Identifier: GPL-2.0-or-later

// Package policy implements the four block-replacement policies shared
// by every bounded cache in the simulator: FIFO, LRU, LFU, and ARC.
//
// Every policy satisfies the same four-operation capability: Insert
// starts tracking a key, Touch records a hit, Erase stops tracking a
// key, and Victim previews (without mutating anything) the key that
// would be evicted next. Policies never decide on their own to drop an
// entry; the containing cache calls Erase once it has committed to
// evicting the key Victim named.
package policy

// Policy is the replacement-policy capability. K is the cache's key
// type; policies are value-agnostic, so they never see V.
type Policy[K comparable] interface {
	// Insert starts tracking k. It is invalid to call Insert for a
	// key that is already tracked.
	Insert(k K)

	// Touch records a hit on k. It is invalid to call Touch for a
	// key that is not tracked.
	Touch(k K)

	// Erase stops tracking k. It is invalid to call Erase for a key
	// that is not tracked.
	Erase(k K)

	// Victim reports the key that would be evicted next, without
	// changing any state. It returns ok=false if no key is tracked.
	Victim() (k K, ok bool)
}

// Kind identifies which replacement policy a cache should use. It is
// the wire/config representation; lib/config.CachingKind is the
// validated configuration enum that maps onto it.
type Kind int

const (
	FIFO Kind = iota
	LRU
	LFU
	ARC
)

func (k Kind) String() string {
	switch k {
	case FIFO:
		return "fifo"
	case LRU:
		return "lru"
	case LFU:
		return "lfu"
	case ARC:
		return "arc"
	default:
		return "unknown"
	}
}

// New constructs the Policy named by kind, sized for cap entries (only
// ARC uses cap; it is ignored by the other three, which are
// capacity-agnostic and rely entirely on their containing cache to
// decide when an eviction is needed).
func New[K comparable](kind Kind, cap int) Policy[K] {
	switch kind {
	case FIFO:
		return NewFIFO[K]()
	case LRU:
		return NewLRU[K]()
	case LFU:
		return NewLFU[K]()
	case ARC:
		return NewARC[K](cap)
	default:
		panic("policy.New: unknown kind")
	}
}
