// File: builder.go
// Role: mutable construction phase for a Graph, mirroring the teacher's
// construction-then-freeze duality (core.Graph's GraphOption pattern,
// generalized to an explicit Freeze step matching interner.Dedup/Fixed).

package querygraph

import "sync"

// Builder accumulates nodes and edges for a query graph under
// construction. It is safe for concurrent use while building (mirroring
// core.Graph's muVert/muEdgeAdj split), but callers typically build a
// query graph on a single goroutine and then share the frozen [Graph]
// read-only.
type Builder struct {
	mu sync.Mutex

	nodes        []Interpretation
	successors   [][]NodeHandle
	predecessors [][]NodeHandle

	hasSource, hasSink bool
	source, sink       NodeHandle
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddNode appends a new node with the given interpretation and returns
// its handle. Unlike interner.Dedup, nodes are never deduplicated by
// value: two distinct positions in a query can carry identical
// interpretations (e.g. the same word appearing twice).
//
// Complexity: O(1) amortised.
func (b *Builder) AddNode(interp Interpretation) NodeHandle {
	b.mu.Lock()
	defer b.mu.Unlock()

	h := NodeHandle(len(b.nodes))
	b.nodes = append(b.nodes, interp)
	b.successors = append(b.successors, nil)
	b.predecessors = append(b.predecessors, nil)
	return h
}

// AddEdge records that v is a direct successor of u. The caller is
// responsible for acyclicity (spec.md §3: the query graph's acyclicity is
// assumed, not enforced, by the ranking rule graph built on top of it).
//
// Complexity: O(1) amortised.
func (b *Builder) AddEdge(u, v NodeHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if int(u) < 0 || int(u) >= len(b.nodes) {
		return ErrNodeNotFound
	}
	if int(v) < 0 || int(v) >= len(b.nodes) {
		return ErrNodeNotFound
	}
	b.successors[u] = append(b.successors[u], v)
	b.predecessors[v] = append(b.predecessors[v], u)
	return nil
}

// SetSource marks h as the graph's unique source node.
func (b *Builder) SetSource(h NodeHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.source, b.hasSource = h, true
}

// SetSink marks h as the graph's unique sink node.
func (b *Builder) SetSink(h NodeHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sink, b.hasSink = h, true
}

// Freeze validates and returns an immutable Graph. After Freeze, further
// mutation of b does not affect the returned Graph (its adjacency slices
// are copied), matching interner.Dedup.Freeze's snapshot semantics.
func (b *Builder) Freeze() (*Graph, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hasSource {
		return nil, ErrSourceNotSet
	}
	if !b.hasSink {
		return nil, ErrSinkNotSet
	}
	if b.source == b.sink {
		return nil, ErrSourceEqualsSink
	}

	g := &Graph{
		nodes:        append([]Interpretation(nil), b.nodes...),
		successors:   make([][]NodeHandle, len(b.nodes)),
		predecessors: make([][]NodeHandle, len(b.nodes)),
		source:       b.source,
		sink:         b.sink,
	}
	for i := range b.nodes {
		g.successors[i] = sortedCopy(b.successors[i])
		g.predecessors[i] = sortedCopy(b.predecessors[i])
	}
	return g, nil
}

func sortedCopy(in []NodeHandle) []NodeHandle {
	out := append([]NodeHandle(nil), in...)
	// Insertion sort: adjacency fan-out per node is small (synonym/typo
	// alternative counts), so this avoids pulling in sort.Slice's
	// reflection overhead for the common case.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
