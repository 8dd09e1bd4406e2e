// SPDX-License-Identifier: GPL-2.0-or-later

package machine

import (
	"github.com/seojungmin/machine/lib/devicekind"
	"github.com/seojungmin/machine/lib/latency"
	"github.com/seojungmin/machine/lib/storagecache"
)

// Copy writes block into devices[dest] with the given status (forced
// to Clean if dest is the backing device, which has no dirty
// semantics), charges the read latency against src and the write
// latency against dest (src == devicekind.Invalid contributes no read
// latency), and recursively pushes any victim that eviction displaced
// further down the hierarchy via MoveVictim.
//
// Recursion bottoms out within len(devices) frames: every recursive
// call through MoveVictim strictly decreases the source device's
// position in the hierarchy, and the backing device's Copy never
// itself produces a victim that needs moving further (everything on
// the backing device is Clean, and MoveVictim only moves Dirty
// victims).
func (m *Machine) Copy(dest, src devicekind.Kind, block int64, status storagecache.BlockStatus) {
	d := m.deviceOrFatal(dest)

	finalStatus := status
	if d == m.backing {
		finalStatus = storagecache.Clean
	}

	m.chargeLatency(src, block, latency.Read)
	m.chargeLatency(dest, block, latency.Write)

	victim := d.Cache.Put(block, finalStatus)
	if victim.Valid() {
		m.MoveVictim(dest, victim.Block, victim.Status)
	}
}

// MoveVictim pushes an evicted (block, status) pair one tier further
// down the hierarchy, but only when all three conditions hold: it is a
// real victim, its source tier is part of the memory partition
// (Cache, Dram, or Nvm — i.e. volatile or intermediate), and its
// status is Dirty. A Clean victim simply vanishes: the tier below
// already holds an authoritative copy of it.
func (m *Machine) MoveVictim(sourceTier devicekind.Kind, block int64, status storagecache.BlockStatus) {
	if block == storagecache.Invalid {
		return
	}
	if !sourceTier.IsMemory() {
		return
	}
	if status != storagecache.Dirty {
		return
	}
	m.Copy(m.lower(sourceTier), sourceTier, block, status)
}
