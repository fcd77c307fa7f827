//go:build !tinygo

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTime(t *testing.T) {
	var out strings.Builder
	require.NoError(t, run(&out, 125, -1, -1))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "slot 1: seg=0x24 sel=0xF2  bits 00100100 11110010", lines[1])
	assert.Equal(t, "display: 02.05", lines[4])
}

func TestRunPot(t *testing.T) {
	var out strings.Builder
	require.NoError(t, run(&out, -1, -1, 0.5))
	assert.Contains(t, out.String(), "display: 1.650\n")
}

func TestRunRejectsBadInput(t *testing.T) {
	var out strings.Builder
	assert.Error(t, run(&out, 6000, -1, -1))
	assert.Error(t, run(&out, -1, 10000, -1))
	assert.Error(t, run(&out, -1, -1, -1))
}
