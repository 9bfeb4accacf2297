package rankgraph

import (
	"context"

	"github.com/kharrow/rankgraph/interner"
	"github.com/kharrow/rankgraph/querygraph"
	"github.com/kharrow/rankgraph/rankerr"
	"github.com/kharrow/rankgraph/smallbitmap"
)

// Build constructs a ranking rule graph from qg by asking rule for edges
// along every direct predecessor/successor pair of query nodes, interning
// each edge's condition, then freezing the condition interner and the
// edge table together (spec.md §4.3):
//
//  1. For every ordered pair (u, v) of query nodes with u a predecessor
//     of v in the query graph, ask rule for the list of (cost, optional
//     condition) edges.
//  2. Intern each condition into the graph's condition interner, yielding
//     an edge record.
//  3. Once the full pass completes, freeze the condition interner and the
//     edge table.
//  4. Build the per-node outgoing-edge bitmap index over the frozen edge
//     table.
//
// Build checks ctx for cancellation once per query node visited; a
// cancelled context aborts with a [rankerr.ErrCancelled]-wrapping error.
func Build[C comparable](ctx context.Context, qg *querygraph.Graph, rule Rule[C]) (*Graph[C], error) {
	conditions := interner.NewDedup[C]()

	type rawEdge struct {
		src, dst querygraph.NodeHandle
		cost     uint8
		cond     *interner.Handle
	}

	var raw []rawEdge
	perNode := make([][]int, qg.NodeCount())

	var buildErr error
	qg.Nodes(func(v querygraph.NodeHandle) bool {
		if err := rankerr.FromContext(ctx); err != nil {
			buildErr = err
			return false
		}
		for _, u := range qg.Predecessors(v) {
			specs, err := rule.BuildEdges(ctx, qg, u, v)
			if err != nil {
				buildErr = err
				return false
			}
			for _, spec := range specs {
				var cond *interner.Handle
				if spec.Condition != nil {
					h := conditions.Intern(*spec.Condition)
					cond = &h
				}
				idx := len(raw)
				raw = append(raw, rawEdge{src: u, dst: v, cost: spec.Cost, cond: cond})
				perNode[u] = append(perNode[u], idx)
			}
		}
		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}

	n := len(raw)
	edges := make([]*Edge[C], n)
	for i, r := range raw {
		edges[i] = &Edge[C]{Source: r.src, Dest: r.dst, Cost: r.cost, Condition: r.cond}
	}

	edgesOfNode := make([]*smallbitmap.Bitmap, qg.NodeCount())
	for node := range edgesOfNode {
		bm := smallbitmap.New(n)
		for _, idx := range perNode[node] {
			bm.Set(idx)
		}
		edgesOfNode[node] = bm
	}

	return &Graph[C]{
		Query:       qg,
		conditions:  conditions.Freeze(),
		edges:       edges,
		edgesOfNode: edgesOfNode,
	}, nil
}
