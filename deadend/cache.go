// Package deadend implements the dead-end path cache described in
// spec.md §4.7: a small memory of condition-bitmap "markers" that have
// already been proven to resolve no documents, so the path enumerator
// in package cheapestpath can skip re-walking paths doomed to the same
// fate.
//
// The antichain-insert/prune logic is new — it is directly specified by
// spec.md §4.7 rather than adapted from any one teacher file — but the
// path-set trie in pathset.go borrows its branch-on-next-discriminating-
// element shape from gaissmai-bart's internal sparse-array node
// branching, here keyed on sorted interner handles instead of byte
// strides.
package deadend

import "github.com/kharrow/rankgraph/smallbitmap"

// Cache holds an antichain of condition-bitmap markers: no marker in the
// set is ever a subset of another. A marker m means "any path whose
// condition set contains every condition in m has already been proven to
// resolve no documents", so smaller markers are stronger statements and
// the antichain keeps only the minimal ones.
//
// Cache is not safe for concurrent use without external synchronization,
// matching the single-threaded-per-rule-invocation model described in
// spec.md §5.
type Cache struct {
	markers []*smallbitmap.Bitmap
}

// NewCache returns an empty dead-end cache.
func NewCache() *Cache {
	return &Cache{}
}

// Len returns the number of markers currently held.
func (c *Cache) Len() int { return len(c.markers) }

// Markers returns a read-only snapshot of the current marker set, for
// Rule.LogState. Callers must not mutate the returned slice or its
// elements.
func (c *Cache) Markers() []*smallbitmap.Bitmap {
	return c.markers
}

// Insert records marker as a proven dead end, maintaining the antichain
// invariant:
//
//   - if some existing marker is a subset of marker, marker adds no
//     information (paths containing it are already condemned by the
//     smaller marker) and is dropped;
//   - otherwise, every existing marker that marker is a subset of is
//     superseded and removed, and marker is added.
func (c *Cache) Insert(marker *smallbitmap.Bitmap) {
	for _, existing := range c.markers {
		if existing.IsSubsetOf(marker) {
			return
		}
	}

	kept := c.markers[:0:0]
	for _, existing := range c.markers {
		if !marker.IsSubsetOf(existing) {
			kept = append(kept, existing)
		}
	}
	c.markers = append(kept, marker)
}

// ContainsSupersetOf reports whether some recorded marker is a subset of
// conds, i.e. whether a path carrying the conds condition set is already
// known to be a dead end.
func (c *Cache) ContainsSupersetOf(conds *smallbitmap.Bitmap) bool {
	for _, marker := range c.markers {
		if marker.IsSubsetOf(conds) {
			return true
		}
	}
	return false
}
