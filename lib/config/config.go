// SPDX-License-Identifier: GPL-2.0-or-later

// Package config defines the simulator's typed configuration record
// and the closed enums it is built from, plus a Validate that rejects
// malformed configuration with a *simerr.ConfigurationError.
package config

import (
	"github.com/seojungmin/machine/lib/devicekind"
	"github.com/seojungmin/machine/lib/latency"
	"github.com/seojungmin/machine/lib/policy"
	"github.com/seojungmin/machine/lib/simerr"
)

// HierarchyKind is a closed choice of device stacks, each a
// subsequence of devicekind.Kind ordered fastest-to-slowest. The last
// entry of every hierarchy is its backing device.
type HierarchyKind int

const (
	HierarchyNvm HierarchyKind = iota
	HierarchyDramNvm
	HierarchyDramSsd
	HierarchyDramNvmSsd
	HierarchyDramNvmSsdHdd
	HierarchyCacheDramNvmSsd
)

func (h HierarchyKind) String() string {
	switch h {
	case HierarchyNvm:
		return "nvm"
	case HierarchyDramNvm:
		return "dram+nvm"
	case HierarchyDramSsd:
		return "dram+ssd"
	case HierarchyDramNvmSsd:
		return "dram+nvm+ssd"
	case HierarchyDramNvmSsdHdd:
		return "dram+nvm+ssd+hdd"
	case HierarchyCacheDramNvmSsd:
		return "cache+dram+nvm+ssd"
	default:
		return "invalid"
	}
}

// Devices returns the ordered device-kind list the hierarchy selects,
// fastest/smallest first. The last element is always the backing
// device.
func (h HierarchyKind) Devices() []devicekind.Kind {
	switch h {
	case HierarchyNvm:
		return []devicekind.Kind{devicekind.Nvm}
	case HierarchyDramNvm:
		return []devicekind.Kind{devicekind.Dram, devicekind.Nvm}
	case HierarchyDramSsd:
		return []devicekind.Kind{devicekind.Dram, devicekind.Ssd}
	case HierarchyDramNvmSsd:
		return []devicekind.Kind{devicekind.Dram, devicekind.Nvm, devicekind.Ssd}
	case HierarchyDramNvmSsdHdd:
		return []devicekind.Kind{devicekind.Dram, devicekind.Nvm, devicekind.Ssd, devicekind.Hdd}
	case HierarchyCacheDramNvmSsd:
		return []devicekind.Kind{devicekind.Cache, devicekind.Dram, devicekind.Nvm, devicekind.Ssd}
	default:
		return nil
	}
}

func (h HierarchyKind) valid() bool {
	return h >= HierarchyNvm && h <= HierarchyCacheDramNvmSsd
}

// CachingKind is the replacement policy every Storage Cache in the
// hierarchy is built with. It is an alias of policy.Kind so that
// config stays the single place enums are named, while the policy
// package itself stays free of any config-layer dependency.
type CachingKind = policy.Kind

// SizeType selects a row of the per-device capacity table (DRAM/NVM
// capacity, in 4 KiB-block units).
type SizeType = latency.SizeType

// LatencyType selects a row of the NVM latency-multiplier table.
type LatencyType = latency.LatencyType

// sizeRows[row] gives the (Dram, Nvm) capacity in blocks for each
// SizeType row 1..5. Ssd and Hdd are never capacity-limited except
// the backing device bump described in Config.DeviceCapacity.
var sizeRows = map[SizeType][2]int{
	latency.Size1: {4, 16},
	latency.Size2: {8, 32},
	latency.Size3: {16, 64},
	latency.Size4: {32, 128},
	latency.Size5: {64, 256},
}

// cacheCapacity is the fixed capacity of the Cache tier when present;
// it's small and not configured by SizeType since it models an
// on-chip cache rather than addressable memory.
const cacheCapacity = 4

// backingWorkingSetBlocks is the multiplier applied to MachineSize to
// size the backing device's capacity, so the backing tier can always
// hold the full working set (spec: machine_size * 1024).
const backingWorkingSetBlocks = 1024

// Config is the simulator's full configuration record.
type Config struct {
	Hierarchy          HierarchyKind
	Caching            CachingKind
	SizeRow            SizeType
	LatencyRow         LatencyType
	MigrationFrequency uint
	OperationCount     uint
	FileName           string
	Verbose            bool

	// MachineSize is the working-set multiplier used to size the
	// backing device's capacity (machine_size * 1024 blocks).
	MachineSize uint
}

// Validate rejects an out-of-range enum or a zero MigrationFrequency,
// returning a *simerr.ConfigurationError, and defaults a zero
// MachineSize to 1. FileName is not checked: an empty FileName is
// accepted (spec: "means no-op run"), and a non-empty one is only
// opened later by the caller.
func (c *Config) Validate() error {
	if !c.Hierarchy.valid() {
		return simerr.Configf("unknown hierarchy_type %d", c.Hierarchy)
	}
	switch c.Caching {
	case policy.FIFO, policy.LRU, policy.LFU, policy.ARC:
	default:
		return simerr.Configf("unknown caching_type %d", c.Caching)
	}
	if _, ok := sizeRows[c.SizeRow]; !ok {
		return simerr.Configf("unknown size_type %d", c.SizeRow)
	}
	switch c.LatencyRow {
	case latency.Latency1, latency.Latency2, latency.Latency3, latency.Latency4, latency.Latency5:
	default:
		return simerr.Configf("unknown latency_type %d", c.LatencyRow)
	}
	if c.MigrationFrequency == 0 {
		return simerr.Configf("migration_frequency must be positive")
	}
	if c.MachineSize == 0 {
		c.MachineSize = 1
	}
	return nil
}

// DeviceCapacity returns the capacity, in blocks, for a device of
// kind within this configuration, honoring the backing-device bump
// described in spec §3 (machine_size * 1024).
func (c *Config) DeviceCapacity(kind devicekind.Kind, isBacking bool) int {
	if isBacking {
		return int(c.MachineSize) * backingWorkingSetBlocks
	}
	row := sizeRows[c.SizeRow]
	switch kind {
	case devicekind.Cache:
		return cacheCapacity
	case devicekind.Dram:
		return row[0]
	case devicekind.Nvm:
		return row[1]
	default:
		// Ssd/Hdd are never capacity-limited unless they are the
		// backing device, handled above.
		return int(c.MachineSize) * backingWorkingSetBlocks
	}
}
