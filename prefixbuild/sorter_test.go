package prefixbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSorterMergesAcrossSpills checks that entries sharing a key are
// unioned together even when some of them were spilled to disk and
// others stayed in the in-memory buffer.
func TestSorterMergesAcrossSpills(t *testing.T) {
	s := newSorter()
	s.maxInMemory = 2

	require.NoError(t, s.add("do", bitmapOf(1)))
	require.NoError(t, s.add("ca", bitmapOf(2)))
	require.NoError(t, s.add("do", bitmapOf(3)))

	merged, err := s.finish()
	require.NoError(t, err)

	assert.ElementsMatch(t, []uint32{1, 3}, merged["do"].ToArray())
	assert.ElementsMatch(t, []uint32{2}, merged["ca"].ToArray())
	assert.Empty(t, s.runFiles, "finish must remove every spilled run file")
}
