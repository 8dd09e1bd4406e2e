// SPDX-License-Identifier: GPL-2.0-or-later

// Package machine implements the tier-migration engine: the device
// list built from a config.Config, the block-location primitives, the
// recursive Copy/MoveVictim eviction-propagation algorithm, the
// Read/Write/Update/Flush operation handlers, and the running
// simulated-latency accumulator.
//
// Everything the source kept as process-wide globals (the device
// list, the latency table, the running duration) lives on one Machine
// value instead, threaded explicitly through every handler.
package machine

import (
	"github.com/seojungmin/machine/lib/config"
	"github.com/seojungmin/machine/lib/device"
	"github.com/seojungmin/machine/lib/devicekind"
	"github.com/seojungmin/machine/lib/latency"
	"github.com/seojungmin/machine/lib/simerr"
	"github.com/seojungmin/machine/lib/storagecache"
	"github.com/seojungmin/machine/lib/workload"
)

// Machine owns the device hierarchy and the simulation's running
// state: total simulated latency, in microseconds, and the random
// source driving the migration_frequency promotion coin flip.
type Machine struct {
	devices device.List
	backing *device.Device
	latency *latency.Table
	migFreq uint
	rng     workload.Source

	// TotalDurationUS is the running sum of simulated latency, in
	// microseconds. It is monotonically non-decreasing across
	// operations (spec §8 property 5).
	TotalDurationUS float64

	// OperationCount is the number of trace operations replayed so
	// far; used only for the final throughput summary.
	OperationCount uint64
}

// New builds a Machine from a validated configuration. rng supplies
// the uniform draws used for tier-promotion decisions; tests
// typically pass a workload.NewUniform with a fixed seed for
// reproducibility.
func New(cfg *config.Config, rng workload.Source) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kinds := cfg.Hierarchy.Devices()
	devices := make(device.List, 0, len(kinds))
	for i, kind := range kinds {
		isBacking := i == len(kinds)-1
		capacity := cfg.DeviceCapacity(kind, isBacking)
		devices = append(devices, device.New(kind, capacity, cfg.Caching))
	}

	m := &Machine{
		devices: devices,
		backing: devices[len(devices)-1],
		latency: latency.Default(cfg.SizeRow, cfg.LatencyRow),
		migFreq: cfg.MigrationFrequency,
		rng:     rng,
	}
	return m, nil
}

// NewWithDevices builds a Machine directly from a pre-built device
// list, bypassing config.Config's capacity table. It exists for tests
// that need to pin exact per-tier capacities (e.g. "DRAM capacity 2,
// NVM capacity 2") rather than picking one of the five config size
// rows.
func NewWithDevices(devices device.List, lt *latency.Table, migFreq uint, rng workload.Source) *Machine {
	if len(devices) == 0 {
		simerr.Violate("machine.NewWithDevices: empty device list")
	}
	return &Machine{
		devices: devices,
		backing: devices[len(devices)-1],
		latency: lt,
		migFreq: migFreq,
		rng:     rng,
	}
}

// Bootstrap implements spec §4.4.7: for every unique block observed in
// the trace, seed the backing device with a Clean copy exactly once,
// guaranteeing "every block exists at the backing tier" before the
// simulated run begins. total_duration is reset to 0 afterward so the
// bootstrap pass never appears in the reported throughput.
func (m *Machine) Bootstrap(blocks []int64) {
	seen := make(map[int64]struct{}, len(blocks))
	for _, b := range blocks {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		m.backing.Cache.Put(b, storagecache.Clean)
	}
	m.TotalDurationUS = 0
	m.OperationCount = 0
}

// Locate returns the DeviceKind of the first device, in hierarchy
// order, whose cache contains block, or devicekind.Invalid if block is
// resident nowhere. It is exported for verbose tracing; the operation
// handlers use the identical unexported locate for their own logic.
func (m *Machine) Locate(block int64) devicekind.Kind {
	return m.locate(block)
}

func (m *Machine) locate(block int64) devicekind.Kind {
	for _, d := range m.devices {
		if d.Cache.Has(block) {
			return d.Kind
		}
	}
	return devicekind.Invalid
}

// exists reports whether the hierarchy contains a device of kind.
func (m *Machine) exists(kind devicekind.Kind) bool {
	return m.devices.Find(kind) != nil
}

// deviceOrFatal returns the device of kind, or raises an
// InvariantViolation if the hierarchy has none — every caller of this
// is expected to have already checked exists(), a locate() result, or
// otherwise know the device must be present.
func (m *Machine) deviceOrFatal(kind devicekind.Kind) *device.Device {
	d := m.devices.Find(kind)
	if d == nil {
		simerr.Violate("machine: no device of kind %s in this hierarchy", kind)
	}
	return d
}

// lower returns the next tier down from source: the device
// immediately following source in hierarchy order. This generalizes
// spec §4.4's literal "Dram -> Nvm if present else Ssd; Nvm -> Ssd"
// table: both rules are exactly "the next device in the ordered
// list", which also gives Cache -> Dram the same way without a
// separate case. It is a fatal InvariantViolation to ask for the tier
// below the backing device.
func (m *Machine) lower(source devicekind.Kind) devicekind.Kind {
	idx := m.devices.IndexOf(source)
	if idx < 0 {
		simerr.Violate("machine: lower() of absent device kind %s", source)
	}
	if idx+1 >= len(m.devices) {
		simerr.Violate("machine: no tier below backing device %s", source)
	}
	return m.devices[idx+1].Kind
}

// mustGet returns the status of block on the device of kind, raising
// an InvariantViolation if it is not actually resident there — callers
// only call this right after locate() or Has() confirmed residency.
func (m *Machine) mustGet(kind devicekind.Kind, block int64) storagecache.BlockStatus {
	status, err := m.deviceOrFatal(kind).Cache.Get(block, false)
	if err != nil {
		simerr.Violate("machine: block %d expected at %s but missing: %v", block, kind, err)
	}
	return status
}

// rollPromotion draws the migration_frequency coin flip: true with
// probability 1/migFreq.
func (m *Machine) rollPromotion() bool {
	return m.rng.Uniform(m.migFreq) == 0
}

// chargeLatency adds the latency of one access of op against the
// device of kind to TotalDurationUS, determining sequential vs random
// from that device's own sequentiality detector. kind ==
// devicekind.Invalid contributes 0 (used by Copy for a brand-new
// block with no source device).
func (m *Machine) chargeLatency(kind devicekind.Kind, block int64, op latency.Op) {
	if kind == devicekind.Invalid {
		return
	}
	d := m.deviceOrFatal(kind)
	pattern := latency.Random
	if d.Cache.IsSequential(block) {
		pattern = latency.Sequential
	}
	ns := m.latency.Lookup(kind, pattern, op)
	m.TotalDurationUS += float64(ns) / 1000.0
}

// topVolatileTier returns the fastest volatile-or-NVM tier present:
// Cache if present, else Dram, else Nvm. It is the admission tier for
// a brand-new block written for the first time.
func (m *Machine) topVolatileTier() devicekind.Kind {
	switch {
	case m.exists(devicekind.Cache):
		return devicekind.Cache
	case m.exists(devicekind.Dram):
		return devicekind.Dram
	case m.exists(devicekind.Nvm):
		return devicekind.Nvm
	default:
		simerr.Violate("machine: hierarchy has no volatile or nvm tier")
		return devicekind.Invalid
	}
}
