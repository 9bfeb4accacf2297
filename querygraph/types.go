// Package querygraph is a reference implementation of the query graph
// that spec.md §2 and §6 describe as an external collaborator: "a DAG of
// query-interpretation nodes with a unique source and sink ... consumed
// read-only" by the ranking rule graph.
//
// Query parsing, synonym expansion, and typo/split/concatenation
// candidate generation are genuinely out of this module's scope (spec.md
// §1). What this package provides is the minimal data model a consumer
// needs in order to hand a [Graph] to rankgraph.Build, plus a [Builder]
// to construct one — enough to exercise and test the ranking engine
// end-to-end without depending on a real tokenizer/query-parser.
//
// The node/edge/locking shape is adapted from the teacher's core.Graph
// (split mutable-builder vs. frozen-result lifecycle, sentinel errors,
// deterministic sorted accessors) generalized from string-keyed
// vertices/weighted edges to dense-handle DAG nodes with no edge weights
// (cost belongs to the ranking rule graph overlaid on top, not to the
// query graph itself).
package querygraph

import "github.com/kharrow/rankgraph/interner"

// NodeHandle identifies a node within one Graph. It is only meaningful
// relative to the Graph (or Builder) that produced it.
type NodeHandle = interner.Handle

// Kind discriminates the four query-node interpretations named in
// spec.md §3.
type Kind int

const (
	// KindStart marks the graph's unique source node. It carries no
	// term/phrase payload.
	KindStart Kind = iota
	// KindEnd marks the graph's unique sink node. It carries no
	// term/phrase payload.
	KindEnd
	// KindTerm marks a node standing for a single word (or word
	// variant — synonym, typo-correction, n-gram fusion, split part).
	KindTerm
	// KindPhrase marks a node standing for a fixed multi-word phrase
	// (e.g. a quoted query segment).
	KindPhrase
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	case KindTerm:
		return "term"
	case KindPhrase:
		return "phrase"
	default:
		return "unknown"
	}
}

// Interpretation is the payload carried by a query node (spec.md §3
// "Query Node ... carries an interpretation"). Only one of Term/Phrase is
// meaningful, depending on Kind.
type Interpretation struct {
	Kind   Kind
	Term   interner.Handle // valid iff Kind == KindTerm; handle into a caller-owned word interner
	Phrase interner.Handle // valid iff Kind == KindPhrase; handle into a caller-owned phrase interner
}

// Term builds a KindTerm interpretation.
func Term(h interner.Handle) Interpretation {
	return Interpretation{Kind: KindTerm, Term: h}
}

// Phrase builds a KindPhrase interpretation.
func Phrase(h interner.Handle) Interpretation {
	return Interpretation{Kind: KindPhrase, Phrase: h}
}

// Start builds the unique KindStart interpretation.
func Start() Interpretation { return Interpretation{Kind: KindStart} }

// End builds the unique KindEnd interpretation.
func End() Interpretation { return Interpretation{Kind: KindEnd} }
