// Package proximity implements the proximity ranking rule (spec.md
// §4.8): documents rank better the closer two query terms occur to one
// another. Its edge condition is (term_a, term_b, gap), cost is gap-1,
// and resolution delegates to the store's word-pair-proximity
// postings.
//
// Resolver logic follows spec.md §4.8 directly; the Rule[C]
// implementation shape (small struct holding a store handle plus a
// words interner, BuildEdges switching on node Kind) mirrors
// rules/typo's, which in turn is grounded on the teacher's small
// algorithm-as-a-struct convention (e.g. dijkstra/dijkstra.go).
package proximity

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/kharrow/rankgraph/interner"
	"github.com/kharrow/rankgraph/querygraph"
	"github.com/kharrow/rankgraph/rankgraph"
	"github.com/kharrow/rankgraph/searchlog"
)

// MaxGap is the largest gap this rule considers between two terms
// (spec.md §4.8): beyond this distance, proximity stops discriminating
// between documents.
const MaxGap = 8

// Condition is the proximity rule's edge condition: the pair
// (TermA, TermB) is indexed at proximity Gap, Gap in [1, MaxGap].
//
// Direction policy: the resolver only ever consults the forward
// (TermA, TermB) posting key. Reversed occurrences — TermB before
// TermA in a document — are folded into that same key at indexing time
// with a one-step penalty (a reversed pair at distance d is indexed at
// gap d+1), so no reverse lookup happens at query time. See the
// Open Question decisions in DESIGN.md.
type Condition struct {
	TermA, TermB interner.Handle
	Gap          uint8
}

// Source resolves word-pair-proximity postings. Implemented by
// store.ReadTxn; declared locally so this package does not depend on
// package store.
type Source interface {
	WordPairProximityDocids(ctx context.Context, a, b string, gap uint8) (*roaring.Bitmap, error)
}

// Rule implements rankgraph.Rule[Condition].
type Rule struct {
	Words  *interner.Fixed[string]
	Source Source
}

var _ rankgraph.Rule[Condition] = (*Rule)(nil)

// BuildEdges emits one candidate edge per gap in [1, MaxGap] when both u
// and v stand for a single word; query nodes that are not term nodes
// (start, end, or a quoted phrase) are bridged with a single free edge
// so the rule graph stays connected. Multi-word phrase adjacency is out
// of scope (spec.md §1 Non-goals), so phrase endpoints always take the
// free-edge branch.
func (r *Rule) BuildEdges(_ context.Context, qg *querygraph.Graph, u, v querygraph.NodeHandle) ([]rankgraph.EdgeSpec[Condition], error) {
	ui, vi := qg.Interpretation(u), qg.Interpretation(v)
	if ui.Kind != querygraph.KindTerm || vi.Kind != querygraph.KindTerm {
		return []rankgraph.EdgeSpec[Condition]{{Cost: 0, Condition: nil}}, nil
	}

	specs := make([]rankgraph.EdgeSpec[Condition], 0, MaxGap)
	for gap := uint8(1); gap <= MaxGap; gap++ {
		c := Condition{TermA: ui.Term, TermB: vi.Term, Gap: gap}
		specs = append(specs, rankgraph.EdgeSpec[Condition]{Cost: gap - 1, Condition: &c})
	}
	return specs, nil
}

// ResolveCondition returns the docids in universe indexed under the
// forward (TermA, TermB, Gap) posting key: TermA exactly Gap positions
// before TermB, or TermB exactly Gap-1 positions before TermA (see the
// direction policy on Condition).
func (r *Rule) ResolveCondition(ctx context.Context, c Condition, universe *roaring.Bitmap) (*roaring.Bitmap, error) {
	a, b := r.Words.Get(c.TermA), r.Words.Get(c.TermB)
	docids, err := r.Source.WordPairProximityDocids(ctx, a, b, c.Gap)
	if err != nil {
		return nil, err
	}
	return roaring.And(universe, docids), nil
}

// Label returns a human-readable label for c.
func (r *Rule) Label(c Condition) string {
	return fmt.Sprintf("proximity(%s, %s, gap=%d)", r.Words.Get(c.TermA), r.Words.Get(c.TermB), c.Gap)
}

// WordsUsed returns the two term handles c depends on.
func (r *Rule) WordsUsed(c Condition) []interner.Handle {
	return []interner.Handle{c.TermA, c.TermB}
}

// PhrasesUsed always returns nil: proximity conditions never depend on
// a phrase handle.
func (r *Rule) PhrasesUsed(Condition) []interner.Handle { return nil }

// LogState emits a summary record of the current enumeration state.
func (r *Rule) LogState(_ *rankgraph.Graph[Condition], paths [][]interner.Handle, deadEnd rankgraph.DeadEndSnapshot, _ *roaring.Bitmap, _ rankgraph.DistanceSnapshot, cost uint16, sink searchlog.Sink) {
	sink.Log(searchlog.Record{
		Rule:               "proximity",
		Cost:               cost,
		LivePathCount:      len(paths),
		DeadEndMarkerCount: len(deadEnd.Markers),
	})
}
