// SPDX-License-Identifier: GPL-2.0-or-later

package textui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryComputesThroughput(t *testing.T) {
	var buf bytes.Buffer
	n, err := Summary(&buf, 2_000_000, 1_000_000)
	assert.NoError(t, err)
	assert.Greater(t, n, 0)
	assert.Equal(t, "2,000,000.00\n", buf.String())
}

func TestSummaryZeroDurationDoesNotDivideByZero(t *testing.T) {
	var buf bytes.Buffer
	_, err := Summary(&buf, 500, 0)
	assert.NoError(t, err)
	assert.Equal(t, "0.00\n", buf.String())
}

func TestSprintfAppliesThousandsSeparators(t *testing.T) {
	got := Sprintf("%d", 1234567)
	assert.Equal(t, "1,234,567", got)
}

func TestFprintfWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	n, err := Fprintf(&buf, "%s-%d", "block", 42)
	assert.NoError(t, err)
	assert.Greater(t, n, 0)
	assert.Equal(t, "block-42", buf.String())
}
