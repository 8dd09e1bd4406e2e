// SPDX-License-Identifier: GPL-2.0-or-later

package machine

import (
	"github.com/seojungmin/machine/lib/devicekind"
	"github.com/seojungmin/machine/lib/latency"
	"github.com/seojungmin/machine/lib/simerr"
	"github.com/seojungmin/machine/lib/storagecache"
)

// Read brings block into memory, charges its read latency at wherever
// it ends up located, and counts the operation. It is a fatal
// InvariantViolation for block to still be unlocated afterward —
// Bootstrap guarantees every referenced block exists at the backing
// device, so BringBlockToMemory must always be able to find it there.
func (m *Machine) Read(block int64) {
	m.BringBlockToMemory(block)
	loc := m.locate(block)
	m.chargeLatency(loc, block, latency.Read)
	if loc == devicekind.Invalid {
		simerr.Violate("Read: block %d unlocated after BringBlockToMemory", block)
	}
	m.OperationCount++
}

// Write admits a net-new block, or marks a block resident on a
// volatile tier Dirty in place (a block located on Nvm keeps its
// status). Copy already accounts for its own latency when
// the net-new path runs; the in-place mark-dirty path charges its
// write latency here since no Copy is involved.
func (m *Machine) Write(block int64) {
	m.BringBlockToMemory(block)
	loc := m.locate(block)

	if loc == devicekind.Invalid {
		top := m.topVolatileTier()
		status := storagecache.Dirty
		if top == devicekind.Nvm {
			status = storagecache.Clean
		}
		m.Copy(top, devicekind.Invalid, block, status)
		m.OperationCount++
		return
	}

	if loc.IsVolatile() {
		d := m.deviceOrFatal(loc)
		victim := d.Cache.Put(block, storagecache.Dirty)
		if victim.Valid() {
			simerr.Violate("Write: unexpected eviction of block %d while marking dirty on %s", victim.Block, loc)
		}
	}
	m.chargeLatency(loc, block, latency.Write)
	m.OperationCount++
}

// Update marks an already-existing block Dirty if it is on a volatile
// tier (a block located on Nvm keeps its status), after first ensuring
// it is resident in memory. Unlike Write, it is a fatal
// InvariantViolation for the block to be unlocated — Update is only
// ever issued against blocks the trace already wrote or that
// Bootstrap seeded at the backing device.
func (m *Machine) Update(block int64) {
	m.BringBlockToMemory(block)
	loc := m.locate(block)
	if loc == devicekind.Invalid {
		simerr.Violate("Update: block %d unlocated after BringBlockToMemory", block)
	}

	if loc.IsVolatile() {
		d := m.deviceOrFatal(loc)
		victim := d.Cache.Put(block, storagecache.Dirty)
		if victim.Valid() {
			simerr.Violate("Update: unexpected eviction of block %d while marking dirty on %s", victim.Block, loc)
		}
	}
	m.chargeLatency(loc, block, latency.Write)
	m.OperationCount++
}

// Flush writes a Dirty block down to storage if it currently lives on
// a volatile tier; it is a no-op for a Clean block, an already-storage
// block, or a block not resident anywhere.
func (m *Machine) Flush(block int64) {
	defer func() { m.OperationCount++ }()

	loc := m.locate(block)
	if loc == devicekind.Invalid || !loc.IsVolatile() {
		return
	}
	status := m.mustGet(loc, block)
	if status != storagecache.Dirty {
		return
	}
	m.BringBlockToStorage(block, status)
}

// BringBlockToMemory ensures block has a resident copy somewhere in
// the memory partition, promoting it from storage if necessary, then
// applies the migration_frequency random-promotion coin flip: NVM ->
// DRAM, and (having landed in DRAM) DRAM -> CACHE. A block that is not
// resident anywhere yet (a genuinely new block) is left untouched;
// Write is responsible for admitting it.
func (m *Machine) BringBlockToMemory(block int64) {
	loc := m.locate(block)

	if loc != devicekind.Invalid && !loc.IsMemory() {
		target := devicekind.Dram
		if m.exists(devicekind.Nvm) {
			target = devicekind.Nvm
		}
		status := m.mustGet(loc, block)
		m.Copy(target, loc, block, status)
		loc = target
	}

	if loc == devicekind.Nvm && m.exists(devicekind.Dram) && m.rollPromotion() {
		status := m.mustGet(devicekind.Nvm, block)
		m.Copy(devicekind.Dram, devicekind.Nvm, block, status)
		loc = devicekind.Dram
	}

	if loc == devicekind.Dram && m.exists(devicekind.Cache) && m.rollPromotion() {
		status := m.mustGet(devicekind.Dram, block)
		m.Copy(devicekind.Cache, devicekind.Dram, block, status)
	}
}

// BringBlockToStorage writes a Dirty volatile block down to the
// highest storage tier (NVM if present, else SSD — SSD admission is
// always forced Clean, and Copy itself forces Clean if the target
// happens to be the backing device), then rewrites the volatile copy
// as Clean and charges one volatile-device write latency. It is a
// no-op if block is not currently on a volatile tier.
func (m *Machine) BringBlockToStorage(block int64, status storagecache.BlockStatus) {
	loc := m.locate(block)
	if loc == devicekind.Invalid || !loc.IsVolatile() {
		return
	}

	target := devicekind.Ssd
	finalStatus := storagecache.Clean
	if m.exists(devicekind.Nvm) {
		target = devicekind.Nvm
		finalStatus = status
	}
	m.Copy(target, loc, block, finalStatus)

	d := m.deviceOrFatal(loc)
	victim := d.Cache.Put(block, storagecache.Clean)
	if victim.Valid() {
		simerr.Violate("BringBlockToStorage: unexpected eviction of block %d while marking clean on %s", victim.Block, loc)
	}
	m.chargeLatency(loc, block, latency.Write)
}
