// File: graph.go
// Role: immutable, frozen Graph and its read-only accessors, mirroring
// core/api.go's "thin deterministic public facade" convention.

package querygraph

// Graph is an immutable query-interpretation DAG with a unique source
// and sink (spec.md §3). It is produced by Builder.Freeze and is safe
// for concurrent read-only use by any number of goroutines, since it
// never changes after construction.
type Graph struct {
	nodes        []Interpretation
	successors   [][]NodeHandle
	predecessors [][]NodeHandle
	source, sink NodeHandle
}

// Source returns the graph's unique source node.
func (g *Graph) Source() NodeHandle { return g.source }

// Sink returns the graph's unique sink node.
func (g *Graph) Sink() NodeHandle { return g.sink }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Interpretation returns the interpretation carried by node h.
func (g *Graph) Interpretation(h NodeHandle) Interpretation {
	return g.nodes[h]
}

// Successors returns the direct successors of h, sorted by handle
// ascending.
//
// Complexity: O(1) (returns the precomputed slice; callers must treat it
// as read-only).
func (g *Graph) Successors(h NodeHandle) []NodeHandle {
	return g.successors[h]
}

// Predecessors returns the direct predecessors of h, sorted by handle
// ascending.
func (g *Graph) Predecessors(h NodeHandle) []NodeHandle {
	return g.predecessors[h]
}

// Nodes calls fn for every node handle in ascending order, stopping
// early if fn returns false.
func (g *Graph) Nodes(fn func(NodeHandle) bool) {
	for i := range g.nodes {
		if !fn(NodeHandle(i)) {
			return
		}
	}
}
