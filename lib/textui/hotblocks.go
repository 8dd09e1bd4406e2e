// SPDX-License-Identifier: GPL-2.0-or-later

package textui

import (
	"fmt"
	"strings"

	"github.com/seojungmin/machine/lib/containers"
)

// HotBlocks tracks the most recently touched blocks purely for a
// human-readable line in the run summary. It never participates in
// any eviction decision: the replacement policies and the migration
// engine are entirely unaware of it.
type HotBlocks struct {
	ring *containers.LRUCache[int64, struct{}]
}

// NewHotBlocks returns a HotBlocks ring remembering up to size
// recently touched blocks.
func NewHotBlocks(size int) *HotBlocks {
	return &HotBlocks{ring: containers.NewLRUCache[int64, struct{}](size)}
}

// Touch records a use of block.
func (h *HotBlocks) Touch(block int64) {
	h.ring.Add(block, struct{}{})
}

// String renders the ring's current contents as a comma-separated
// list, oldest first, for the "recently hot blocks" summary line.
func (h *HotBlocks) String() string {
	keys := h.ring.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d", k)
	}
	return strings.Join(parts, ", ")
}
