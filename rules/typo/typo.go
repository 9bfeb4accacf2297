// Package typo implements the typo-tolerance ranking rule (spec.md
// §4.9): documents rank better when the query terms they contain needed
// fewer character edits to match. Its edge condition is (term,
// n_typos), cost is n_typos, and resolution walks the index's words FST
// with a bounded Levenshtein automaton (automaton.go) rather than
// scanning every indexed word, per the original's actual resolution
// strategy (SPEC_FULL.md "Supplemented features").
package typo

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/blevesearch/vellum"
	"github.com/kharrow/rankgraph/interner"
	"github.com/kharrow/rankgraph/querygraph"
	"github.com/kharrow/rankgraph/rankgraph"
	"github.com/kharrow/rankgraph/searchlog"
)

// MaxTypos is the largest edit distance this rule tolerates (spec.md
// §4.9): n_typos in [0, MaxTypos].
const MaxTypos = 2

// Condition is the typo rule's edge condition: Term was matched with
// exactly NTypos character edits — not "up to", so the docids of
// consecutive conditions on the same term are disjoint.
type Condition struct {
	Term   interner.Handle
	NTypos uint8
}

// Source resolves typo-tolerant word postings. Implemented by
// store.ReadTxn; declared locally so this package does not depend on
// package store.
type Source interface {
	WordsFST(ctx context.Context) (*vellum.FST, error)
	WordDocids(ctx context.Context, word string) (*roaring.Bitmap, error)
}

// Rule implements rankgraph.Rule[Condition].
type Rule struct {
	Words  *interner.Fixed[string]
	Source Source
}

var _ rankgraph.Rule[Condition] = (*Rule)(nil)

// BuildEdges emits one candidate edge per n_typos in [0, MaxTypos] for
// every term node entered; non-term nodes (start, end, phrase — phrases
// are matched exactly, spec.md §1 Non-goals) take a single free edge.
func (r *Rule) BuildEdges(_ context.Context, qg *querygraph.Graph, _, v querygraph.NodeHandle) ([]rankgraph.EdgeSpec[Condition], error) {
	vi := qg.Interpretation(v)
	if vi.Kind != querygraph.KindTerm {
		return []rankgraph.EdgeSpec[Condition]{{Cost: 0, Condition: nil}}, nil
	}

	specs := make([]rankgraph.EdgeSpec[Condition], 0, MaxTypos+1)
	for n := uint8(0); n <= MaxTypos; n++ {
		c := Condition{Term: vi.Term, NTypos: n}
		specs = append(specs, rankgraph.EdgeSpec[Condition]{Cost: n, Condition: &c})
	}
	return specs, nil
}

// ResolveCondition returns the docids in universe containing some word
// exactly c.NTypos edits away from c.Term. The FST automaton walk is
// inclusive ("within n edits"), so the candidates reachable within
// n-1 edits are subtracted: a document already matched in a cheaper
// bucket must not reappear in this one.
func (r *Rule) ResolveCondition(ctx context.Context, c Condition, universe *roaring.Bitmap) (*roaring.Bitmap, error) {
	word := r.Words.Get(c.Term)

	if c.NTypos == 0 {
		docids, err := r.Source.WordDocids(ctx, word)
		if err != nil {
			return nil, err
		}
		return roaring.And(universe, docids), nil
	}

	fst, err := r.Source.WordsFST(ctx)
	if err != nil {
		return nil, err
	}
	within, err := candidatesWithinDistance(fst, word, c.NTypos)
	if err != nil {
		return nil, err
	}

	closer := []string{word}
	if c.NTypos > 1 {
		closer, err = candidatesWithinDistance(fst, word, c.NTypos-1)
		if err != nil {
			return nil, err
		}
	}
	closerSet := make(map[string]struct{}, len(closer))
	closerDocids := roaring.New()
	for _, w := range closer {
		closerSet[w] = struct{}{}
		docids, err := r.Source.WordDocids(ctx, w)
		if err != nil {
			return nil, err
		}
		closerDocids.Or(docids)
	}

	result := roaring.New()
	for _, candidate := range within {
		if _, ok := closerSet[candidate]; ok {
			continue
		}
		docids, err := r.Source.WordDocids(ctx, candidate)
		if err != nil {
			return nil, err
		}
		result.Or(docids)
	}
	result.AndNot(closerDocids)
	return roaring.And(universe, result), nil
}

// Label returns a human-readable label for c.
func (r *Rule) Label(c Condition) string {
	return fmt.Sprintf("typo(%s, n=%d)", r.Words.Get(c.Term), c.NTypos)
}

// WordsUsed returns the single term handle c depends on.
func (r *Rule) WordsUsed(c Condition) []interner.Handle { return []interner.Handle{c.Term} }

// PhrasesUsed always returns nil: typo conditions never depend on a
// phrase handle.
func (r *Rule) PhrasesUsed(Condition) []interner.Handle { return nil }

// LogState emits a summary record of the current enumeration state.
func (r *Rule) LogState(_ *rankgraph.Graph[Condition], paths [][]interner.Handle, deadEnd rankgraph.DeadEndSnapshot, _ *roaring.Bitmap, _ rankgraph.DistanceSnapshot, cost uint16, sink searchlog.Sink) {
	sink.Log(searchlog.Record{
		Rule:               "typo",
		Cost:               cost,
		LivePathCount:      len(paths),
		DeadEndMarkerCount: len(deadEnd.Markers),
	})
}
