package smallbitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTestClear(t *testing.T) {
	b := New(10)
	assert.False(t, b.Test(3))
	b.Set(3)
	assert.True(t, b.Test(3))
	b.Clear(3)
	assert.False(t, b.Test(3))
}

func TestSetAcrossWordBoundary(t *testing.T) {
	b := New(200)
	b.Set(0)
	b.Set(63)
	b.Set(64)
	b.Set(199)
	assert.Equal(t, 4, b.PopCount())
	assert.Equal(t, []int{0, 63, 64, 199}, b.Bits())
}

func TestIndexOutOfRangePanics(t *testing.T) {
	b := New(5)
	assert.Panics(t, func() { b.Set(5) })
	assert.Panics(t, func() { b.Set(-1) })
	assert.Panics(t, func() { b.Test(100) })
}

func TestUnionIntersectDifference(t *testing.T) {
	a := New(8)
	a.Set(0)
	a.Set(1)
	a.Set(2)

	b := New(8)
	b.Set(1)
	b.Set(2)
	b.Set(3)

	union := a.Clone().Union(b)
	assert.Equal(t, []int{0, 1, 2, 3}, union.Bits())

	inter := a.Clone().Intersect(b)
	assert.Equal(t, []int{1, 2}, inter.Bits())

	diff := a.Clone().Difference(b)
	assert.Equal(t, []int{0}, diff.Bits())
}

func TestIsSubsetOf(t *testing.T) {
	small := New(8)
	small.Set(1)

	big := New(8)
	big.Set(1)
	big.Set(5)

	assert.True(t, small.IsSubsetOf(big))
	assert.False(t, big.IsSubsetOf(small))
}

func TestEqualAndIsEmpty(t *testing.T) {
	a := New(8)
	b := New(8)
	assert.True(t, a.Equal(b))
	assert.True(t, a.IsEmpty())

	a.Set(4)
	assert.False(t, a.Equal(b))
	assert.False(t, a.IsEmpty())
}

func TestCapacityMismatchPanics(t *testing.T) {
	a := New(8)
	b := New(16)
	assert.Panics(t, func() { a.Union(b) })
}

func TestIterateStopsEarly(t *testing.T) {
	b := New(100)
	b.Set(1)
	b.Set(2)
	b.Set(3)

	var seen []int
	b.Iterate(func(i int) bool {
		seen = append(seen, i)
		return len(seen) < 2
	})
	require.Equal(t, []int{1, 2}, seen)
}

func TestCloneIsIndependent(t *testing.T) {
	a := New(8)
	a.Set(1)
	clone := a.Clone()
	clone.Set(2)
	assert.False(t, a.Test(2))
	assert.True(t, clone.Test(2))
}
