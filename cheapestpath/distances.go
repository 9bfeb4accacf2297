// Package cheapestpath enumerates paths through a ranking rule graph in
// non-decreasing total-cost order (spec.md §4.5), delivering one
// document bitmap per distinct cost bucket.
//
// The distances-to-sink table is grounded on dijkstra/dijkstra.go's
// relaxation idea (a per-node table of best-cost-to-target, built by a
// single backward pass over a DAG instead of a priority queue, since the
// rule graph is acyclic by construction), generalized from a scalar
// distance to a sorted list of (remaining cost, reachable edge bitmap)
// entries per spec.md §4.5's explicit design.
package cheapestpath

import (
	"sort"

	"github.com/kharrow/rankgraph/querygraph"
	"github.com/kharrow/rankgraph/rankerr"
	"github.com/kharrow/rankgraph/rankgraph"
	"github.com/kharrow/rankgraph/smallbitmap"
)

// bucket is one entry of a node's distances-to-sink table: at Cost
// remaining, the edges set in Reachable are exactly those that start
// some continuation to the sink totalling exactly Cost.
type bucket struct {
	cost      uint16
	reachable *smallbitmap.Bitmap
}

// Distances is the distances-to-sink table for every node of a ranking
// rule graph, computed once per enumeration.
type Distances[C comparable] struct {
	g      *rankgraph.Graph[C]
	byNode [][]bucket
}

// Buckets returns node's (cost, reachable-edge-bitmap) entries, sorted
// by ascending cost. The returned slice and its bitmaps must not be
// mutated.
func (d *Distances[C]) Buckets(node querygraph.NodeHandle) []bucket {
	return d.byNode[node]
}

// MinCost returns the minimum total cost from the graph's source to its
// sink, and whether the sink is reachable at all.
func (d *Distances[C]) MinCost() (uint16, bool) {
	b := d.byNode[d.g.Query.Source()]
	if len(b) == 0 {
		return 0, false
	}
	return b[0].cost, true
}

// Compute builds the distances-to-sink table for g by a single backward
// pass over its underlying query DAG in reverse topological order.
func Compute[C comparable](g *rankgraph.Graph[C]) (*Distances[C], error) {
	qg := g.Query
	order, err := topoOrder(qg)
	if err != nil {
		return nil, err
	}

	n := qg.NodeCount()
	byNode := make([][]bucket, n)
	byNode[qg.Sink()] = []bucket{{cost: 0, reachable: smallbitmap.New(g.EdgeCount())}}

	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		if v == qg.Sink() {
			continue
		}

		merged := make(map[uint16]*smallbitmap.Bitmap)
		g.EdgesOfNode(v).Iterate(func(eh int) bool {
			e, ok := g.Edge(rankgraph.EdgeHandle(eh))
			if !ok {
				return true
			}
			for _, sb := range byNode[e.Dest] {
				total := uint16(e.Cost) + sb.cost
				bm, ok := merged[total]
				if !ok {
					bm = smallbitmap.New(g.EdgeCount())
					merged[total] = bm
				}
				bm.Set(eh)
			}
			return true
		})

		costs := make([]uint16, 0, len(merged))
		for c := range merged {
			costs = append(costs, c)
		}
		sort.Slice(costs, func(i, j int) bool { return costs[i] < costs[j] })

		list := make([]bucket, len(costs))
		for i, c := range costs {
			list[i] = bucket{cost: c, reachable: merged[c]}
		}
		byNode[v] = list
	}

	return &Distances[C]{g: g, byNode: byNode}, nil
}

// topoOrder returns qg's nodes in topological order (every predecessor
// before every successor), via Kahn's algorithm. It fails only if qg
// were somehow not a DAG, which querygraph.Builder.Freeze never
// produces — a failure here indicates Corruption, not a normal runtime
// condition.
func topoOrder(qg *querygraph.Graph) ([]querygraph.NodeHandle, error) {
	n := qg.NodeCount()
	indeg := make([]int, n)
	for v := 0; v < n; v++ {
		indeg[v] = len(qg.Predecessors(querygraph.NodeHandle(v)))
	}

	queue := make([]querygraph.NodeHandle, 0, n)
	for v := 0; v < n; v++ {
		if indeg[v] == 0 {
			queue = append(queue, querygraph.NodeHandle(v))
		}
	}

	order := make([]querygraph.NodeHandle, 0, n)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)
		for _, s := range qg.Successors(v) {
			indeg[s]--
			if indeg[s] == 0 {
				queue = append(queue, s)
			}
		}
	}

	if len(order) != n {
		return nil, rankerr.New(rankerr.Corruption, "query graph is not acyclic")
	}
	return order, nil
}
