// Package rankgraph overlays a ranking rule's edges onto a query graph
// (spec.md §2 item 4, §4.3, §4.4): same nodes as the querygraph.Graph it
// is built from, but with edges replaced according to a pluggable [Rule].
//
// The edge-table-plus-adjacency-index shape (tombstone-on-removal, stable
// handles) is adapted from core/methods_edges.go's edge catalog + the
// per-vertex adjacency index it keeps in sync on removal.
package rankgraph

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/kharrow/rankgraph/interner"
	"github.com/kharrow/rankgraph/querygraph"
	"github.com/kharrow/rankgraph/searchlog"
	"github.com/kharrow/rankgraph/smallbitmap"
)

// EdgeHandle is a dense index into a Graph's edge table. Handles are
// never reused within one query, even after the edge they named is
// removed (spec.md §3 "Edge table").
type EdgeHandle = interner.Handle

// Edge is one edge of the ranking rule graph (spec.md §3).
//
// Condition is nil for a "free" edge: unconditionally satisfied, but
// still contributing Cost. Equality is structural across all four
// fields, matching the original's Edge<E> Eq/Hash impl.
type Edge[C comparable] struct {
	Source    querygraph.NodeHandle
	Dest      querygraph.NodeHandle
	Cost      uint8
	Condition *interner.Handle
}

// Equal reports whether e and other describe the same edge (same
// endpoints, cost, and condition handle).
func (e *Edge[C]) Equal(other *Edge[C]) bool {
	if e.Source != other.Source || e.Dest != other.Dest || e.Cost != other.Cost {
		return false
	}
	switch {
	case e.Condition == nil && other.Condition == nil:
		return true
	case e.Condition == nil || other.Condition == nil:
		return false
	default:
		return *e.Condition == *other.Condition
	}
}

// EdgeSpec is one candidate edge a Rule contributes for a given (u, v)
// query-node pair, before its condition (if any) has been interned into
// the graph's condition space (spec.md §4.3 step 1-2).
type EdgeSpec[C comparable] struct {
	Cost      uint8
	Condition *C // nil => free edge
}

// NodeDistance is one entry of a node's distances-to-sink table: with
// RemainingCost left to spend, Reachable names the node's outgoing edge
// handles that start some path to the sink costing exactly
// RemainingCost (spec.md §4.5).
type NodeDistance struct {
	RemainingCost uint16
	Reachable     *smallbitmap.Bitmap
}

// DistanceSnapshot is the distances-to-sink table passed to Rule.LogState,
// keyed by query node handle. Defined here (rather than in cheapestpath)
// so Rule has no import-cycle dependency on the enumerator that computes
// it.
type DistanceSnapshot map[querygraph.NodeHandle][]NodeDistance

// DeadEndSnapshot is a read-only view of the dead-end marker set passed
// to Rule.LogState. Defined here for the same import-cycle reason as
// DistanceSnapshot.
type DeadEndSnapshot struct {
	Markers []*smallbitmap.Bitmap
}

// Rule is the capability pack a graph-based ranking rule implements
// (spec.md §4.4). C is the rule's edge-condition type: an atomic,
// hashable, comparable constraint on documents (e.g. proximity.Condition
// or typo.Condition).
//
// Go generics stand in for the original's associated-type trait, per the
// closed/tagged-variant recommendation in spec.md §9 ("Rule
// polymorphism") — appropriate here since the rule set is small and
// stable (exactly Proximity and Typo).
type Rule[C comparable] interface {
	// BuildEdges returns the list of (cost, optional condition) edges
	// from u to v. Called once per (u, v) query-node pair where u is a
	// direct predecessor of v.
	BuildEdges(ctx context.Context, qg *querygraph.Graph, u, v querygraph.NodeHandle) ([]EdgeSpec[C], error)

	// ResolveCondition returns exactly the docids in universe satisfying
	// c. Must be a pure function of (c, universe) — see spec.md §8
	// "Resolver purity".
	ResolveCondition(ctx context.Context, c C, universe *roaring.Bitmap) (*roaring.Bitmap, error)

	// Label returns a human-readable label for c, for logging.
	Label(c C) string

	// WordsUsed and PhrasesUsed return the term/phrase handles c depends
	// on, for cache invalidation and logging.
	WordsUsed(c C) []interner.Handle
	PhrasesUsed(c C) []interner.Handle

	// LogState emits a structured snapshot of the current enumeration
	// state to sink.
	LogState(g *Graph[C], paths [][]interner.Handle, deadEnd DeadEndSnapshot, universe *roaring.Bitmap, distances DistanceSnapshot, cost uint16, sink searchlog.Sink)
}
