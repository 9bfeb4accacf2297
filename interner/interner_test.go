package interner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupInternReturnsStableHandles(t *testing.T) {
	d := NewDedup[string]()

	h1 := d.Intern("quick")
	h2 := d.Intern("fox")
	h3 := d.Intern("quick") // duplicate: must reuse h1

	assert.Equal(t, h1, h3)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 2, d.Len())
}

func TestDedupGetRoundTrips(t *testing.T) {
	d := NewDedup[string]()
	h := d.Intern("brown")

	assert.Equal(t, "brown", d.Get(h))

	v, ok := d.TryGet(Handle(999))
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestDedupLookupDoesNotIntern(t *testing.T) {
	d := NewDedup[string]()
	_, ok := d.Lookup("ghost")
	require.False(t, ok)
	assert.Equal(t, 0, d.Len())
}

func TestFreezeSnapshotsHandleOrder(t *testing.T) {
	d := NewDedup[string]()
	a := d.Intern("a")
	b := d.Intern("b")

	fixed := d.Freeze()
	require.Equal(t, 2, fixed.Len())
	assert.Equal(t, "a", fixed.Get(a))
	assert.Equal(t, "b", fixed.Get(b))

	// mutating the live Dedup after Freeze must not retroactively change
	// the frozen snapshot's cardinality.
	d.Intern("c")
	assert.Equal(t, 2, fixed.Len())
}

func TestIterVisitsInHandleOrder(t *testing.T) {
	d := NewDedup[string]()
	d.Intern("x")
	d.Intern("y")
	d.Intern("z")
	fixed := d.Freeze()

	var seen []Handle
	fixed.Iter(func(h Handle, v string) bool {
		seen = append(seen, h)
		return true
	})
	assert.Equal(t, []Handle{0, 1, 2}, seen)
}

func TestIterStopsEarly(t *testing.T) {
	d := NewDedup[string]()
	d.Intern("x")
	d.Intern("y")
	d.Intern("z")
	fixed := d.Freeze()

	count := 0
	fixed.Iter(func(h Handle, v string) bool {
		count++
		return h != 0
	})
	assert.Equal(t, 1, count)
}

func TestGetPanicsOnOutOfRangeHandle(t *testing.T) {
	d := NewDedup[string]()
	d.Intern("a")
	assert.Panics(t, func() {
		d.Get(Handle(5))
	})
}
