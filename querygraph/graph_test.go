package querygraph

import (
	"testing"

	"github.com/kharrow/rankgraph/interner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLinear builds source -> quick -> fox -> sink, returning the graph
// and the two term handles in order.
func buildLinear(t *testing.T) (*Graph, NodeHandle, NodeHandle) {
	t.Helper()
	words := interner.NewDedup[string]()
	b := NewBuilder()

	src := b.AddNode(Start())
	quick := b.AddNode(Term(words.Intern("quick")))
	fox := b.AddNode(Term(words.Intern("fox")))
	sink := b.AddNode(End())

	require.NoError(t, b.AddEdge(src, quick))
	require.NoError(t, b.AddEdge(quick, fox))
	require.NoError(t, b.AddEdge(fox, sink))

	b.SetSource(src)
	b.SetSink(sink)

	g, err := b.Freeze()
	require.NoError(t, err)
	return g, quick, fox
}

func TestFreezeValidatesSourceAndSink(t *testing.T) {
	b := NewBuilder()
	n := b.AddNode(Start())
	_, err := b.Freeze()
	assert.ErrorIs(t, err, ErrSourceNotSet)

	b.SetSource(n)
	_, err = b.Freeze()
	assert.ErrorIs(t, err, ErrSinkNotSet)

	b.SetSink(n)
	_, err = b.Freeze()
	assert.ErrorIs(t, err, ErrSourceEqualsSink)
}

func TestLinearGraphTopology(t *testing.T) {
	g, quick, fox := buildLinear(t)

	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, []NodeHandle{quick}, g.Successors(g.Source()))
	assert.Equal(t, []NodeHandle{fox}, g.Successors(quick))
	assert.Equal(t, []NodeHandle{g.Sink()}, g.Successors(fox))
	assert.Empty(t, g.Successors(g.Sink()))

	assert.Equal(t, []NodeHandle{quick}, g.Predecessors(fox))
	assert.Equal(t, KindTerm, g.Interpretation(quick).Kind)
}

func TestBuilderMutationAfterFreezeIsIsolated(t *testing.T) {
	b := NewBuilder()
	src := b.AddNode(Start())
	sink := b.AddNode(End())
	require.NoError(t, b.AddEdge(src, sink))
	b.SetSource(src)
	b.SetSink(sink)

	g, err := b.Freeze()
	require.NoError(t, err)

	extra := b.AddNode(Term(0))
	require.NoError(t, b.AddEdge(src, extra))

	// the frozen graph must be unaffected by further builder mutation.
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, []NodeHandle{sink}, g.Successors(src))
}

func TestAddEdgeRejectsUnknownHandle(t *testing.T) {
	b := NewBuilder()
	n := b.AddNode(Start())
	err := b.AddEdge(n, NodeHandle(99))
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestNodesIteratesAscending(t *testing.T) {
	g, _, _ := buildLinear(t)
	var seen []NodeHandle
	g.Nodes(func(h NodeHandle) bool {
		seen = append(seen, h)
		return true
	})
	assert.Equal(t, []NodeHandle{0, 1, 2, 3}, seen)
}
