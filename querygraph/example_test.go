// Package querygraph_test provides runnable examples for building and
// inspecting a query graph.
package querygraph_test

import (
	"fmt"

	"github.com/kharrow/rankgraph/interner"
	"github.com/kharrow/rankgraph/querygraph"
)

// ExampleBuilder demonstrates the build-then-freeze lifecycle: a query
// "quick fox" where "fox" also has a typo-variant alternative "fax".
func ExampleBuilder() {
	words := interner.NewDedup[string]()

	b := querygraph.NewBuilder()
	src := b.AddNode(querygraph.Start())
	quick := b.AddNode(querygraph.Term(words.Intern("quick")))
	fox := b.AddNode(querygraph.Term(words.Intern("fox")))
	fax := b.AddNode(querygraph.Term(words.Intern("fax")))
	sink := b.AddNode(querygraph.End())

	_ = b.AddEdge(src, quick)
	_ = b.AddEdge(quick, fox)
	_ = b.AddEdge(quick, fax)
	_ = b.AddEdge(fox, sink)
	_ = b.AddEdge(fax, sink)
	b.SetSource(src)
	b.SetSink(sink)

	g, err := b.Freeze()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(g.NodeCount())
	fmt.Println(g.Successors(quick))
	fmt.Println(g.Predecessors(sink))
	fmt.Println(g.Interpretation(fox).Kind)
	// Output:
	// 5
	// [2 3]
	// [2 3]
	// term
}
