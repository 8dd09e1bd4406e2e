// SPDX-License-Identifier: GPL-2.0-or-later

package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderParsesKnownOps(t *testing.T) {
	r := NewReader(strings.NewReader("r 0 1\nw 0 2\nf 0 1\n"))

	op, fork, block, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Read, op)
	assert.Equal(t, uint64(0), fork)
	assert.Equal(t, uint64(1), block)

	op, _, block, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Write, op)
	assert.Equal(t, uint64(2), block)

	op, _, _, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Flush, op)

	_, _, _, ok, err = r.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uint64(0), r.InvalidCount)
}

func TestReaderSkipsUnknownOpsWithoutAborting(t *testing.T) {
	r := NewReader(strings.NewReader("x 0 1\nr 0 2\nbogus line here\n"))

	op, _, block, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Read, op)
	assert.Equal(t, uint64(2), block)

	_, _, _, ok, err = r.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uint64(2), r.InvalidCount)
}

func TestReaderSkipsBlankLines(t *testing.T) {
	r := NewReader(strings.NewReader("\n\nr 0 1\n\n"))
	_, _, _, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	_, _, _, ok, err = r.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestGlobalBlockFormula(t *testing.T) {
	assert.Equal(t, int64(23), GlobalBlock(2, 3))
	assert.Equal(t, int64(0), GlobalBlock(0, 0))
}
