// Package condcache memoizes edge-condition resolution
// (spec.md §4.6): resolve(condition, universe) -> docids. A cache hit
// under a larger previously-seen universe is downgraded to the current
// universe by intersection rather than re-resolved, since resolution is
// required to be a pure, universe-monotone function of its condition
// (spec.md §8 "Resolver purity").
//
// The cache-by-key-then-intersect shape is grounded on the roaring
// posting-list cache pattern in the retrieval pack's compressed-postings
// reference file (cache a broader result, narrow it with IntersectWith
// rather than recomputing).
package condcache

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"
)

// Resolver resolves one condition against a universe of candidate
// docids. Implemented by rankgraph.Rule via its ResolveCondition method;
// declared locally (rather than importing rankgraph.Rule) so this
// package has no dependency on the rule-graph package it serves.
type Resolver[C comparable] interface {
	ResolveCondition(ctx context.Context, c C, universe *roaring.Bitmap) (*roaring.Bitmap, error)
}

type entry struct {
	universe *roaring.Bitmap
	result   *roaring.Bitmap
}

// Cache memoizes resolution results per condition. Not safe for
// concurrent use without external synchronization, matching the
// single-threaded-per-invocation model of spec.md §5.
type Cache[C comparable] struct {
	resolver Resolver[C]
	entries  map[C]entry
}

// New returns a Cache delegating misses to resolver.
func New[C comparable](resolver Resolver[C]) *Cache[C] {
	return &Cache[C]{resolver: resolver, entries: make(map[C]entry)}
}

// Resolve returns exactly the docids in universe satisfying c.
//
// If c was previously resolved against a universe that is a superset of
// the current one, the cached result is intersected with universe
// instead of calling the resolver again. Otherwise the resolver is
// invoked and its result cached under universe.
func (c *Cache[C]) Resolve(ctx context.Context, cond C, universe *roaring.Bitmap) (*roaring.Bitmap, error) {
	// universe is covered by the cached entry's universe iff intersecting
	// loses nothing.
	if e, ok := c.entries[cond]; ok && universe.AndCardinality(e.universe) == universe.GetCardinality() {
		return roaring.And(e.result, universe), nil
	}

	result, err := c.resolver.ResolveCondition(ctx, cond, universe)
	if err != nil {
		return nil, err
	}

	c.entries[cond] = entry{universe: universe.Clone(), result: result.Clone()}
	return result, nil
}

// Len returns the number of distinct conditions currently memoized.
func (c *Cache[C]) Len() int { return len(c.entries) }
