// Package fixtures builds small, deterministic query graphs for tests and
// the cmd/rankdemo program.
//
// Grounded on builder/impl_path.go's functional-Constructor shape and
// builder/id_fn.go's pure-deterministic-ID-function convention, rewritten
// without weights or randomness (query graph edges carry neither — cost
// is a property of the ranking rule graph overlaid on top, not of the
// query graph itself) and specialized to the handle/interpretation model
// instead of string-keyed vertices.
package fixtures

import (
	"github.com/kharrow/rankgraph/interner"
	"github.com/kharrow/rankgraph/querygraph"
)

// Linear builds source -> term(words[0]) -> term(words[1]) -> ... ->
// sink: a single straight-line interpretation of a query with no
// alternatives. Returns the frozen graph and the term handle for each
// input word, in order.
func Linear(words *interner.Dedup[string], terms []string) (*querygraph.Graph, []querygraph.NodeHandle) {
	b := querygraph.NewBuilder()
	src := b.AddNode(querygraph.Start())
	prev := src

	nodes := make([]querygraph.NodeHandle, len(terms))
	for i, w := range terms {
		h := interner.Handle(words.Intern(w))
		n := b.AddNode(querygraph.Term(h))
		mustAddEdge(b, prev, n)
		nodes[i] = n
		prev = n
	}

	sink := b.AddNode(querygraph.End())
	mustAddEdge(b, prev, sink)

	b.SetSource(src)
	b.SetSink(sink)

	g, err := b.Freeze()
	if err != nil {
		panic(err) // Linear always builds a valid source/sink pair.
	}
	return g, nodes
}

// Branch builds a query graph representing one position in the query
// having several alternative interpretations (synonyms, typo variants):
//
//	source -> { alt_0, alt_1, ..., alt_{k-1} } -> sink
//
// Every alternative is a direct source->sink edge's intermediate node,
// i.e. all alternatives are mutually exclusive single-word paths of
// equal query "depth". Returns the frozen graph and one node handle per
// alternative, in the order given.
func Branch(words *interner.Dedup[string], alternatives []string) (*querygraph.Graph, []querygraph.NodeHandle) {
	b := querygraph.NewBuilder()
	src := b.AddNode(querygraph.Start())
	sink := b.AddNode(querygraph.End())

	nodes := make([]querygraph.NodeHandle, len(alternatives))
	for i, w := range alternatives {
		h := interner.Handle(words.Intern(w))
		n := b.AddNode(querygraph.Term(h))
		mustAddEdge(b, src, n)
		mustAddEdge(b, n, sink)
		nodes[i] = n
	}

	b.SetSource(src)
	b.SetSink(sink)

	g, err := b.Freeze()
	if err != nil {
		panic(err)
	}
	return g, nodes
}

func mustAddEdge(b *querygraph.Builder, u, v querygraph.NodeHandle) {
	if err := b.AddEdge(u, v); err != nil {
		panic(err) // fixtures only ever reference handles they just created.
	}
}
