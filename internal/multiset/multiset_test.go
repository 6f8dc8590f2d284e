package multiset_test

import (
	"testing"

	"github.com/lonnen/anagramist/internal/multiset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfIgnoresSpaceCount(t *testing.T) {
	m := multiset.Of("a b")
	assert.Equal(t, int32(0), m.Get(' '))
	assert.Equal(t, int32(1), m.Get('a'))
	assert.Equal(t, int32(1), m.Get('b'))
}

func TestSubAndNonNegative(t *testing.T) {
	bank := multiset.Of("aab")
	used := multiset.Of("aaab")
	diff := bank.Sub(used)
	assert.False(t, diff.NonNegative())
}

func TestSubsetAndConservation(t *testing.T) {
	bank := multiset.Of("bishbashbosh")
	placed := multiset.Of("bish")
	remaining := bank.Sub(placed)
	require.True(t, remaining.NonNegative())
	assert.True(t, placed.Subset(bank))
	assert.True(t, placed.Add(remaining).Equal(bank))
}

func TestElementsIsDeterministic(t *testing.T) {
	m := multiset.Of("dcba")
	assert.Equal(t, "abcd", m.Elements())
	// Calling twice yields an identical string; no map iteration involved.
	assert.Equal(t, m.Elements(), m.Elements())
}
