// SPDX-License-Identifier: GPL-2.0-or-later

// Package latency holds the fixed per-device-kind, per-access-pattern,
// per-operation latency catalog the migration engine charges against
// its running total_duration accumulator.
package latency

import (
	"git.lukeshu.com/go/typedsync"

	"github.com/seojungmin/machine/lib/devicekind"
	"github.com/seojungmin/machine/lib/simerr"
)

// Pattern distinguishes a sequential access from a random one; the
// catalog charges a lower latency for sequential access on Ssd and
// Hdd, while Cache, Dram and Nvm charge the same for both patterns.
type Pattern int

const (
	Sequential Pattern = iota
	Random
)

// Op is the direction of a single device access.
type Op int

const (
	Read Op = iota
	Write
)

// SizeType selects a row of the per-device capacity table (spec §6).
type SizeType int

const (
	Size1 SizeType = iota + 1
	Size2
	Size3
	Size4
	Size5
)

// LatencyType selects a row of the NVM read/write latency multiplier
// table: {2/4, 2/10, 4/4, 4/8, 8/8} applied to the base NVM latency.
type LatencyType int

const (
	Latency1 LatencyType = iota + 1
	Latency2
	Latency3
	Latency4
	Latency5
)

// nvmMultiplier returns the (read, write) multiplier pair for row t.
func nvmMultiplier(t LatencyType) (read, write int64) {
	switch t {
	case Latency1:
		return 2, 4
	case Latency2:
		return 2, 10
	case Latency3:
		return 4, 4
	case Latency4:
		return 4, 8
	case Latency5:
		return 8, 8
	default:
		simerr.Violate("latency: invalid LatencyType row %d", t)
		return 0, 0
	}
}

// base table, in nanoseconds, for the non-NVM tiers. Cache and Dram
// don't distinguish sequential from random; Ssd and Hdd do, heavily
// favoring sequential access. These are deliberately simple
// order-of-magnitude figures for a simulator, not a real device
// profile.
const (
	cacheLatencyNS = 1
	dramLatencyNS  = 20

	ssdSeqReadNS  = 2_000
	ssdSeqWriteNS = 4_000
	ssdRndReadNS  = 20_000
	ssdRndWriteNS = 40_000

	hddSeqReadNS  = 50_000
	hddSeqWriteNS = 60_000
	hddRndReadNS  = 5_000_000
	hddRndWriteNS = 8_000_000

	nvmBaseReadNS  = 200
	nvmBaseWriteNS = 200
)

// Table is a built, read-only latency[kind][pattern][op] catalog.
type Table struct {
	rows map[devicekind.Kind][2][2]int64
}

// Build constructs the latency table for the given NVM latency row.
// SizeType does not affect latency (it only affects device capacity,
// see lib/config), but is accepted for symmetry with the spec's
// description of the two size/latency config rows and so that callers
// don't need to know which rows matter where.
func Build(_ SizeType, lt LatencyType) *Table {
	readMul, writeMul := nvmMultiplier(lt)
	t := &Table{rows: make(map[devicekind.Kind][2][2]int64, 5)}

	t.rows[devicekind.Cache] = [2][2]int64{
		{cacheLatencyNS, cacheLatencyNS},
		{cacheLatencyNS, cacheLatencyNS},
	}
	t.rows[devicekind.Dram] = [2][2]int64{
		{dramLatencyNS, dramLatencyNS},
		{dramLatencyNS, dramLatencyNS},
	}
	t.rows[devicekind.Nvm] = [2][2]int64{
		{nvmBaseReadNS * readMul, nvmBaseWriteNS * writeMul},
		{nvmBaseReadNS * readMul, nvmBaseWriteNS * writeMul},
	}
	t.rows[devicekind.Ssd] = [2][2]int64{
		{ssdSeqReadNS, ssdSeqWriteNS},
		{ssdRndReadNS, ssdRndWriteNS},
	}
	t.rows[devicekind.Hdd] = [2][2]int64{
		{hddSeqReadNS, hddSeqWriteNS},
		{hddRndReadNS, hddRndWriteNS},
	}
	return t
}

// Lookup returns the latency, in nanoseconds, charged for one access
// of the given pattern and op against a device of kind. It is a fatal
// InvariantViolation to look up an unknown device kind; kind ==
// devicekind.Invalid is handled by the caller (contributes 0) before
// ever reaching Lookup.
func (t *Table) Lookup(kind devicekind.Kind, pattern Pattern, op Op) int64 {
	row, ok := t.rows[kind]
	if !ok {
		simerr.Violate("latency: unknown device kind %s", kind)
	}
	return row[pattern][op]
}

// tableKey identifies one (SizeType, LatencyType) row combination.
// SizeType doesn't currently affect the built Table (see Build), but
// is part of the key regardless so that Default's cache semantics
// don't quietly depend on that happening to be true.
type tableKey struct {
	st SizeType
	lt LatencyType
}

var tables typedsync.Map[tableKey, *Table]

// Default returns the built *Table for (st, lt), constructing and
// caching it on first request. Unlike a single package-global table,
// this lets a process that runs more than one configuration in
// sequence (as the test suite does) get a distinct, correctly-built
// table per row combination rather than silently reusing whichever
// table happened to be built first.
func Default(st SizeType, lt LatencyType) *Table {
	key := tableKey{st, lt}
	if t, ok := tables.Load(key); ok {
		return t
	}
	t, _ := tables.LoadOrStore(key, Build(st, lt))
	return t
}
