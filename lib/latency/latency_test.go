// SPDX-License-Identifier: GPL-2.0-or-later

package latency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seojungmin/machine/lib/devicekind"
)

func TestLookupDefinedForEveryKindPatternOp(t *testing.T) {
	tbl := Build(Size1, Latency1)
	kinds := []devicekind.Kind{devicekind.Cache, devicekind.Dram, devicekind.Nvm, devicekind.Ssd, devicekind.Hdd}
	for _, kind := range kinds {
		for _, pattern := range []Pattern{Sequential, Random} {
			for _, op := range []Op{Read, Write} {
				ns := tbl.Lookup(kind, pattern, op)
				assert.Greater(t, ns, int64(0), "kind=%v pattern=%v op=%v", kind, pattern, op)
			}
		}
	}
}

func TestLookupUnknownKindPanics(t *testing.T) {
	tbl := Build(Size1, Latency1)
	assert.Panics(t, func() { tbl.Lookup(devicekind.Invalid, Sequential, Read) })
}

func TestNVMLatencyRowSelection(t *testing.T) {
	row1 := Build(Size1, Latency1)
	row5 := Build(Size1, Latency5)

	assert.Less(t, row1.Lookup(devicekind.Nvm, Sequential, Read), row5.Lookup(devicekind.Nvm, Sequential, Read))
	assert.Less(t, row1.Lookup(devicekind.Nvm, Sequential, Write), row5.Lookup(devicekind.Nvm, Sequential, Write))
}

func TestSsdHddFavorSequentialAccess(t *testing.T) {
	tbl := Build(Size1, Latency1)
	assert.Less(t, tbl.Lookup(devicekind.Ssd, Sequential, Read), tbl.Lookup(devicekind.Ssd, Random, Read))
	assert.Less(t, tbl.Lookup(devicekind.Hdd, Sequential, Read), tbl.Lookup(devicekind.Hdd, Random, Read))
}

func TestDefaultCachesPerRowCombination(t *testing.T) {
	a := Default(Size2, Latency2)
	b := Default(Size2, Latency2)
	assert.Same(t, a, b)

	c := Default(Size3, Latency4)
	assert.NotSame(t, a, c)
	assert.Equal(t, c.Lookup(devicekind.Nvm, Sequential, Read), Build(Size3, Latency4).Lookup(devicekind.Nvm, Sequential, Read))
}
