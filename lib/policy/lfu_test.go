// SPDX-License-Identifier: GPL-2.0-or-later

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLFUVictimIsLeastFrequent(t *testing.T) {
	p := NewLFU[int]()
	p.Insert(1)
	p.Insert(2)
	p.Insert(3)
	p.Touch(1)
	p.Touch(1)

	v, ok := p.Victim()
	assert.True(t, ok)
	assert.Equal(t, 3, v) // 2 and 3 tie at freq 1; 3 arrived at that tier most recently.
}

func TestLFUTieBreaksOnMostRecentArrivalWithinBucket(t *testing.T) {
	p := NewLFU[int]()
	p.Insert(1)
	p.Insert(2)
	p.Insert(3)

	v, ok := p.Victim()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestLFUEraseRecomputesMinFreq(t *testing.T) {
	p := NewLFU[int]()
	p.Insert(1)
	p.Insert(2)
	p.Touch(2)
	p.Touch(2)
	p.Erase(1)

	v, ok := p.Victim()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLFUTouchUnknownKeyIgnored(t *testing.T) {
	p := NewLFU[int]()
	p.Insert(1)
	assert.NotPanics(t, func() { p.Touch(99) })
}
