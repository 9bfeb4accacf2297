package rankgraph

import (
	"github.com/kharrow/rankgraph/interner"
	"github.com/kharrow/rankgraph/querygraph"
	"github.com/kharrow/rankgraph/smallbitmap"
)

// Graph is a ranking rule graph overlaid on a query graph (spec.md §3):
// same nodes as Query, but with Query's edges replaced by Edge values
// carrying a cost and an optional interned condition.
//
// A Graph is built once via Build and then mutated only through
// RemoveEdgesWithCondition, which tombstones matching edges in place.
// Handles (both NodeHandle and EdgeHandle) remain stable across removal.
type Graph[C comparable] struct {
	Query       *querygraph.Graph
	conditions  *interner.Fixed[C]
	edges       []*Edge[C]              // nil slot == tombstone
	edgesOfNode []*smallbitmap.Bitmap   // indexed by query NodeHandle
}

// Conditions returns the frozen interner backing this graph's edge
// conditions.
func (g *Graph[C]) Conditions() *interner.Fixed[C] {
	return g.conditions
}

// EdgeCount returns the total number of edge slots, including
// tombstoned ones. EdgeHandle values are always in [0, EdgeCount()).
func (g *Graph[C]) EdgeCount() int {
	return len(g.edges)
}

// Edge returns the edge at h, or (nil, false) if h names a tombstoned
// slot.
func (g *Graph[C]) Edge(h EdgeHandle) (*Edge[C], bool) {
	e := g.edges[h]
	return e, e != nil
}

// EdgesOfNode returns the bitmap of outgoing edge handles for query node
// n. Bits for tombstoned edges are cleared by RemoveEdgesWithCondition;
// callers must not mutate the returned bitmap.
func (g *Graph[C]) EdgesOfNode(n querygraph.NodeHandle) *smallbitmap.Bitmap {
	return g.edgesOfNode[n]
}

// Edges calls fn for every live (non-tombstoned) edge, in ascending
// handle order, stopping early if fn returns false.
func (g *Graph[C]) Edges(fn func(EdgeHandle, *Edge[C]) bool) {
	for i, e := range g.edges {
		if e == nil {
			continue
		}
		if !fn(EdgeHandle(i), e) {
			return
		}
	}
}

// RemoveEdgesWithCondition tombstones every live edge whose condition is
// c, clearing its bit from its source node's outgoing index (spec.md §4,
// "Edge removal"). It is a no-op for edges that are free (no condition)
// or already removed.
//
// Per the Open Question decision recorded in DESIGN.md, this does not
// track or clear any per-destination-node bookkeeping: the graph keeps
// none.
func (g *Graph[C]) RemoveEdgesWithCondition(c interner.Handle) {
	for i, e := range g.edges {
		if e == nil || e.Condition == nil || *e.Condition != c {
			continue
		}
		g.edgesOfNode[e.Source].Clear(i)
		g.edges[i] = nil
	}
}
