// SPDX-License-Identifier: GPL-2.0-or-later

package storagecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojungmin/machine/lib/boundedcache"
	"github.com/seojungmin/machine/lib/devicekind"
	"github.com/seojungmin/machine/lib/policy"
)

func TestPutGetRoundTrip(t *testing.T) {
	sc := New(devicekind.Dram, policy.LRU, 2)
	v := sc.Put(1, Dirty)
	assert.False(t, v.Valid())

	status, err := sc.Get(1, true)
	require.NoError(t, err)
	assert.Equal(t, Dirty, status)
}

func TestGetAbsentBlockIsNotFound(t *testing.T) {
	sc := New(devicekind.Dram, policy.LRU, 2)
	_, err := sc.Get(42, true)
	assert.ErrorIs(t, err, boundedcache.ErrNotFound)
}

func TestPutEvictionReturnsValidVictim(t *testing.T) {
	sc := New(devicekind.Dram, policy.FIFO, 1)
	v := sc.Put(1, Clean)
	assert.False(t, v.Valid())

	v = sc.Put(2, Dirty)
	assert.True(t, v.Valid())
	assert.Equal(t, int64(1), v.Block)
	assert.Equal(t, Clean, v.Status)
}

func TestIsSequentialFirstCallIsNotSequential(t *testing.T) {
	sc := New(devicekind.Ssd, policy.LRU, 4)
	assert.False(t, sc.IsSequential(10))
}

func TestIsSequentialDetectsForwardAndBackwardRuns(t *testing.T) {
	sc := New(devicekind.Ssd, policy.LRU, 4)
	sc.IsSequential(10)
	assert.True(t, sc.IsSequential(11))
	assert.True(t, sc.IsSequential(10))
	assert.False(t, sc.IsSequential(50))
}

func TestBlockStatusString(t *testing.T) {
	assert.Equal(t, "clean", Clean.String())
	assert.Equal(t, "dirty", Dirty.String())
}

func TestInvalidVictimSentinel(t *testing.T) {
	v := Victim{Block: Invalid}
	assert.False(t, v.Valid())
}
