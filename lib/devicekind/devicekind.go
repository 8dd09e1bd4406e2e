// SPDX-License-Identifier: GPL-2.0-or-later

// Package devicekind defines the closed set of storage-tier kinds the
// migration engine routes blocks through, and the volatile/memory/
// storage partitions used to decide how a victim is handled.
package devicekind

// Kind is one tier of the storage hierarchy, ordered from
// fastest/smallest to slowest/largest.
type Kind int

const (
	Cache Kind = iota
	Dram
	Nvm
	Ssd
	Hdd

	// Invalid is a reserved value denoting "no device" — e.g. the
	// result of locate() for a block that is not resident anywhere,
	// or Copy's source tier for a brand-new block.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case Cache:
		return "cache"
	case Dram:
		return "dram"
	case Nvm:
		return "nvm"
	case Ssd:
		return "ssd"
	case Hdd:
		return "hdd"
	default:
		return "invalid"
	}
}

// IsVolatile reports whether kind loses its state across a flush
// boundary: Cache and Dram.
func (k Kind) IsVolatile() bool {
	return k == Cache || k == Dram
}

// IsMemory reports whether kind is in the memory partition: Cache,
// Dram, or Nvm. Nvm is always in the memory partition, wherever it
// sits in the hierarchy, and is also in the storage partition (see
// IsStorage, and DESIGN.md for the open-question resolution).
func (k Kind) IsMemory() bool {
	return k == Cache || k == Dram || k == Nvm
}

// IsStorage reports whether kind is in the durable-storage partition:
// Nvm, Ssd, or Hdd.
func (k Kind) IsStorage() bool {
	return k == Nvm || k == Ssd || k == Hdd
}
