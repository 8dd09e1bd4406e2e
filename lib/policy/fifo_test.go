// SPDX-License-Identifier: GPL-2.0-or-later

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFIFOEvictionOrder(t *testing.T) {
	p := NewFIFO[int]()
	p.Insert(1)
	p.Insert(2)
	p.Insert(3)

	v, ok := p.Victim()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestFIFOTouchDoesNotReorder(t *testing.T) {
	p := NewFIFO[int]()
	p.Insert(1)
	p.Insert(2)
	p.Touch(1)

	v, ok := p.Victim()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestFIFOEraseAndVictim(t *testing.T) {
	p := NewFIFO[int]()
	p.Insert(1)
	p.Insert(2)
	p.Erase(1)

	v, ok := p.Victim()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestFIFOVictimEmpty(t *testing.T) {
	p := NewFIFO[int]()
	_, ok := p.Victim()
	assert.False(t, ok)
}
