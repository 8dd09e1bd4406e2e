// SPDX-License-Identifier: GPL-2.0-or-later

// Package device models one tier of the storage hierarchy: its kind,
// its fixed block capacity, and the storagecache.StorageCache that
// actually holds resident blocks for it.
package device

import (
	"github.com/seojungmin/machine/lib/devicekind"
	"github.com/seojungmin/machine/lib/policy"
	"github.com/seojungmin/machine/lib/storagecache"
)

// Device is one tier: Cache, Dram, Nvm, Ssd, or Hdd. Per-access
// latency is not stored here: it depends on the access pattern
// (sequential vs random) at the moment of the access, so the
// migration engine resolves it from the shared latency.Table instead.
type Device struct {
	Kind     devicekind.Kind
	Capacity int
	Cache    *storagecache.StorageCache
}

// New returns a Device of the given kind, capacity, and caching
// policy.
func New(kind devicekind.Kind, capacity int, caching policy.Kind) *Device {
	return &Device{
		Kind:     kind,
		Capacity: capacity,
		Cache:    storagecache.New(kind, caching, capacity),
	}
}

// List is an ordered sequence of devices, fastest/smallest first, as
// the machine's hierarchy configures them.
type List []*Device

// Find returns the device of the given kind, or nil if the hierarchy
// does not include one.
func (l List) Find(kind devicekind.Kind) *Device {
	for _, d := range l {
		if d.Kind == kind {
			return d
		}
	}
	return nil
}

// IndexOf returns the position of the device of the given kind within
// l, or -1 if the hierarchy does not include one. Lower indices are
// faster/smaller tiers.
func (l List) IndexOf(kind devicekind.Kind) int {
	for i, d := range l {
		if d.Kind == kind {
			return i
		}
	}
	return -1
}
