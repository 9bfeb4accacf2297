package condcache

import (
	"context"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResolver struct {
	calls int
	// byCondition returns exactly the docids of universe whose uint32
	// value is <= the condition, simulating a real monotone resolver.
	byCondition map[string]uint32
}

func (r *countingResolver) ResolveCondition(_ context.Context, c string, universe *roaring.Bitmap) (*roaring.Bitmap, error) {
	r.calls++
	max := r.byCondition[c]
	out := roaring.New()
	it := universe.Iterator()
	for it.HasNext() {
		v := it.Next()
		if v <= max {
			out.Add(v)
		}
	}
	return out, nil
}

func universeOf(vs ...uint32) *roaring.Bitmap {
	b := roaring.New()
	b.AddMany(vs)
	return b
}

func TestResolverPurity(t *testing.T) {
	r := &countingResolver{byCondition: map[string]uint32{"a": 2}}
	c := New[string](r)

	u := universeOf(1, 2, 3, 4)
	out, err := c.Resolve(context.Background(), "a", u)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{1, 2}, out.ToArray())
	assert.Equal(t, 1, r.calls)

	// asking again for the same (condition, universe) yields the same
	// bitmap.
	again, err := c.Resolve(context.Background(), "a", u)
	require.NoError(t, err)
	assert.Equal(t, out.ToArray(), again.ToArray())
}

func TestCacheSoundness(t *testing.T) {
	r := &countingResolver{byCondition: map[string]uint32{"a": 3}}
	c := New[string](r)

	big := universeOf(1, 2, 3, 4, 5)
	out1, err := c.Resolve(context.Background(), "a", big)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{1, 2, 3}, out1.ToArray())
	assert.Equal(t, 1, r.calls)

	// a narrower universe must be served from the cache by
	// intersection, not by re-invoking the resolver.
	small := universeOf(2, 3, 4)
	out2, err := c.Resolve(context.Background(), "a", small)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{2, 3}, out2.ToArray())
	assert.Equal(t, 1, r.calls, "narrower universe should hit the cache")

	// a universe not covered by any cached entry must re-resolve.
	disjoint := universeOf(9, 10)
	_, err = c.Resolve(context.Background(), "a", disjoint)
	require.NoError(t, err)
	assert.Equal(t, 2, r.calls)
}
