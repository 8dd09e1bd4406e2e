// SPDX-License-Identifier: GPL-2.0-or-later

package textui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHotBlocksStringEmpty(t *testing.T) {
	h := NewHotBlocks(4)
	assert.Equal(t, "", h.String())
}

func TestHotBlocksStringListsTouchedBlocks(t *testing.T) {
	h := NewHotBlocks(4)
	h.Touch(1)
	h.Touch(2)
	h.Touch(3)
	assert.Equal(t, "1, 2, 3", h.String())
}

func TestHotBlocksRingEvictsBeyondSize(t *testing.T) {
	h := NewHotBlocks(2)
	h.Touch(1)
	h.Touch(2)
	h.Touch(3)
	assert.Equal(t, 2, h.ring.Len())
}
