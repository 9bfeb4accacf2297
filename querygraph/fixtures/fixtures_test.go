package fixtures

import (
	"testing"

	"github.com/kharrow/rankgraph/interner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearTopology(t *testing.T) {
	words := interner.NewDedup[string]()
	g, nodes := Linear(words, []string{"quick", "fox"})

	require.Len(t, nodes, 2)
	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, []uint32{uint32(nodes[0])}, toUint32(g.Successors(g.Source())))
	assert.Equal(t, []uint32{uint32(nodes[1])}, toUint32(g.Successors(nodes[0])))
	assert.Equal(t, []uint32{uint32(g.Sink())}, toUint32(g.Successors(nodes[1])))
}

func TestBranchTopology(t *testing.T) {
	words := interner.NewDedup[string]()
	g, nodes := Branch(words, []string{"quick", "kwik", "quik"})

	require.Len(t, nodes, 3)
	assert.Len(t, g.Successors(g.Source()), 3)
	for _, n := range nodes {
		assert.Equal(t, []uint32{uint32(g.Sink())}, toUint32(g.Successors(n)))
	}
}

func toUint32(hs []interner.Handle) []uint32 {
	out := make([]uint32, len(hs))
	for i, h := range hs {
		out[i] = uint32(h)
	}
	return out
}
