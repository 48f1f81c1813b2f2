// Copyright © 2018 The ELPS authors

package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocZeroValue(t *testing.T) {
	a := New[int](4)
	p := a.Alloc()
	assert.Equal(t, 0, *p)
	*p = 7
	assert.Equal(t, 7, *p)
}

func TestGrowthPreservesOldAllocations(t *testing.T) {
	a := New[int](2)
	ptrs := make([]*int, 10)
	for i := range ptrs {
		ptrs[i] = a.Alloc()
		*ptrs[i] = i
	}
	for i, p := range ptrs {
		assert.Equal(t, i, *p, "allocation %d was corrupted by a later grow", i)
	}
}

func TestResetReusesMemory(t *testing.T) {
	a := New[int](4)
	first := a.Alloc()
	*first = 42
	a.Reset()
	second := a.Alloc()
	require.Equal(t, first, second, "reset should rewind the bump cursor to the start of the first slab")
	assert.Equal(t, 0, *second, "Alloc must zero the slot it hands back, even if reused after Reset")
}

func TestResetThenGrowDoesNotLoseCapacity(t *testing.T) {
	a := New[int](2)
	for i := 0; i < 20; i++ {
		a.Alloc()
	}
	_, capBefore := a.Stats()
	a.Reset()
	for i := 0; i < 20; i++ {
		a.Alloc()
	}
	used, capAfter := a.Stats()
	assert.Equal(t, 20, used)
	assert.Equal(t, capBefore, capAfter, "re-filling after Reset should not allocate new slabs when old ones suffice")
}

func TestStats(t *testing.T) {
	a := New[int](8)
	used, capacity := a.Stats()
	assert.Equal(t, 0, used)
	assert.Equal(t, 8, capacity)
	a.Alloc()
	a.Alloc()
	used, capacity = a.Stats()
	assert.Equal(t, 2, used)
	assert.Equal(t, 8, capacity)
}

func TestDestroy(t *testing.T) {
	a := New[int](4)
	a.Alloc()
	a.Destroy()
	used, capacity := a.Stats()
	assert.Equal(t, 0, used)
	assert.Equal(t, 0, capacity)
}
