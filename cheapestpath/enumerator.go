package cheapestpath

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/kharrow/rankgraph/condcache"
	"github.com/kharrow/rankgraph/deadend"
	"github.com/kharrow/rankgraph/interner"
	"github.com/kharrow/rankgraph/querygraph"
	"github.com/kharrow/rankgraph/rankerr"
	"github.com/kharrow/rankgraph/rankgraph"
	"github.com/kharrow/rankgraph/searchlog"
	"github.com/kharrow/rankgraph/smallbitmap"
)

// Enumerator walks a ranking rule graph in non-decreasing total-cost
// order, delivering one document bitmap per distinct cost bucket
// (spec.md §4.5). It owns the condition-resolution cache and the
// dead-end cache for the query it enumerates; both are scoped to one
// Enumerator and must not be reused across queries.
//
// The DFS path walk, its context.Context cancellation checkpoints, and
// the recursive pre-order visit shape are grounded on algorithms/dfs.go.
type Enumerator[C comparable] struct {
	g         *rankgraph.Graph[C]
	distances *Distances[C]
	rule      rankgraph.Rule[C]
	cache     *condcache.Cache[C]
	dead      *deadend.Cache
	paths     *deadend.PathSet
	sink      searchlog.Sink
}

// New returns an Enumerator over g, delegating condition resolution to
// rule and logging to sink (use searchlog.Nop{} to discard).
func New[C comparable](g *rankgraph.Graph[C], distances *Distances[C], rule rankgraph.Rule[C], sink searchlog.Sink) *Enumerator[C] {
	return &Enumerator[C]{
		g:         g,
		distances: distances,
		rule:      rule,
		cache:     condcache.New[C](rule),
		dead:      deadend.NewCache(),
		paths:     deadend.NewPathSet(),
		sink:      sink,
	}
}

// DeadEndCount returns the number of proven-dead condition combinations
// recorded so far, for tests and diagnostics.
func (en *Enumerator[C]) DeadEndCount() int { return en.dead.Len() }

// Enumerate walks every source-to-sink path of the rule graph,
// restricted to universe, grouping their resulting docids by total cost
// and calling fn once per distinct cost in non-decreasing order. fn may
// return false to stop early.
//
// A globally useless edge condition — one that resolves to no
// documents at all against universe — is pruned from the graph via
// Graph.RemoveEdgesWithCondition as soon as it is discovered, so later
// cost buckets never re-walk it (the "Supplemented features" pruning
// behavior noted in SPEC_FULL.md).
func (en *Enumerator[C]) Enumerate(ctx context.Context, universe *roaring.Bitmap, fn func(cost uint16, docids *roaring.Bitmap) bool) error {
	src := en.g.Query.Source()
	for _, b := range en.distances.Buckets(src) {
		if err := rankerr.FromContext(ctx); err != nil {
			return err
		}

		acc := roaring.New()
		noConds := smallbitmap.New(en.g.Conditions().Len())
		if err := en.walk(ctx, src, b.cost, universe, nil, noConds, acc); err != nil {
			return err
		}

		en.rule.LogState(en.g, nil, en.deadEndSnapshot(), universe, en.distanceSnapshot(), b.cost, en.sink)

		if !fn(b.cost, acc) {
			return nil
		}
	}
	return nil
}

// walk extends a path currently at node, with remainingCost left to
// spend before reaching the sink, live docids so far restricted to
// conditions already applied, and the set of condition handles applied
// so far (carried both as a slice, for trie queries, and as a bitmap,
// for marker queries). Matching docids are unioned into acc.
func (en *Enumerator[C]) walk(ctx context.Context, node querygraph.NodeHandle, remainingCost uint16, universe *roaring.Bitmap, condsSoFar []interner.Handle, condBits *smallbitmap.Bitmap, acc *roaring.Bitmap) error {
	if err := rankerr.FromContext(ctx); err != nil {
		return err
	}

	if node == en.g.Query.Sink() {
		acc.Or(universe)
		return nil
	}

	if en.knownDeadEnd(condsSoFar, condBits) {
		// a subset of this combination is already proven dead; every
		// extension of it is too.
		return nil
	}

	var reachable *smallbitmap.Bitmap
	for _, b := range en.distances.Buckets(node) {
		if b.cost == remainingCost {
			reachable = b.reachable
			break
		}
	}
	if reachable == nil {
		return nil // no continuation from node spends exactly remainingCost
	}

	var walkErr error
	reachable.Iterate(func(eh int) bool {
		e, ok := en.g.Edge(rankgraph.EdgeHandle(eh))
		if !ok {
			return true // tombstoned since distances were computed
		}

		nextCost := remainingCost - uint16(e.Cost)
		nextUniverse := universe
		nextConds := condsSoFar
		nextBits := condBits

		if e.Condition != nil {
			value := en.g.Conditions().Get(*e.Condition)
			resolved, err := en.cache.Resolve(ctx, value, universe)
			if err != nil {
				walkErr = err
				return false
			}
			if resolved.IsEmpty() && len(condsSoFar) == 0 {
				// no condition narrowed universe yet, so c is empty against
				// the whole enumeration universe and can go from the graph.
				en.g.RemoveEdgesWithCondition(*e.Condition)
				return true
			}

			nextUniverse = roaring.And(universe, resolved)
			if nextUniverse.IsEmpty() {
				en.recordDeadEnd(append(append([]interner.Handle(nil), condsSoFar...), *e.Condition))
				return true
			}
			nextConds = append(append([]interner.Handle(nil), condsSoFar...), *e.Condition)
			nextBits = condBits.Clone()
			nextBits.Set(int(*e.Condition))
		}

		if err := en.walk(ctx, e.Dest, nextCost, nextUniverse, nextConds, nextBits, acc); err != nil {
			walkErr = err
			return false
		}
		return true
	})
	return walkErr
}

// deadEndTrieCutover is the marker-set size past which the path-set
// trie answers subset queries instead of scanning the marker antichain
// linearly.
const deadEndTrieCutover = 32

// knownDeadEnd reports whether the conditions applied so far already
// contain a proven dead-end marker. The marker antichain's
// ContainsSupersetOf is the primary query; the path-set trie is its
// accelerator for large dead-end sets, kept in lockstep by
// recordDeadEnd.
func (en *Enumerator[C]) knownDeadEnd(conds []interner.Handle, condBits *smallbitmap.Bitmap) bool {
	if en.dead.Len() > deadEndTrieCutover {
		return en.paths.HasSubsetOf(conds)
	}
	return en.dead.ContainsSupersetOf(condBits)
}

func (en *Enumerator[C]) recordDeadEnd(conds []interner.Handle) {
	en.paths.Insert(conds)

	marker := smallbitmap.New(en.g.Conditions().Len())
	for _, h := range conds {
		marker.Set(int(h))
	}
	en.dead.Insert(marker)
}

func (en *Enumerator[C]) deadEndSnapshot() rankgraph.DeadEndSnapshot {
	return rankgraph.DeadEndSnapshot{Markers: en.dead.Markers()}
}

func (en *Enumerator[C]) distanceSnapshot() rankgraph.DistanceSnapshot {
	snap := make(rankgraph.DistanceSnapshot, en.g.Query.NodeCount())
	for v := 0; v < en.g.Query.NodeCount(); v++ {
		node := querygraph.NodeHandle(v)
		buckets := en.distances.Buckets(node)
		nds := make([]rankgraph.NodeDistance, len(buckets))
		for i, b := range buckets {
			nds[i] = rankgraph.NodeDistance{RemainingCost: b.cost, Reachable: b.reachable}
		}
		snap[node] = nds
	}
	return snap
}
