// Package searchlog defines the opaque logging sink consumed by ranking
// rules (spec.md §4.4 log_state, §6 "Logger sink").
//
// The sink is deliberately not bound to any serialisation format: a rule
// hands it a structured Record and the sink decides what, if anything, to
// do with it. This mirrors the teacher repo's own choice to carry no
// logging library anywhere (see SPEC_FULL.md's ambient-stack note) —
// callers that want structured logs wire their own zap/zerolog/slog-backed
// Sink.
package searchlog

// Record is one structured snapshot emitted during enumeration
// (spec.md §6 "Logger sink").
type Record struct {
	// Rule names the ranking rule producing this record (e.g.
	// "proximity", "typo").
	Rule string
	// Cost is the cost bucket currently being enumerated.
	Cost uint16
	// LivePathCount is the number of paths found at Cost so far.
	LivePathCount int
	// DeadEndMarkerCount is the current size of the dead-end cache.
	DeadEndMarkerCount int
	// Message is a free-form human-readable summary, built by the rule's
	// label_for_edge_condition-style formatting.
	Message string
}

// Sink receives structured [Record]s during enumeration. Implementations
// must not block indefinitely and must not retain Record after Log
// returns without copying it, since callers may reuse backing slices.
type Sink interface {
	Log(Record)
}

// Nop is a Sink that discards every record.
type Nop struct{}

// Log implements Sink.
func (Nop) Log(Record) {}

// Collecting is a Sink that appends every record to Records, useful in
// tests that assert on the shape of emitted logging.
type Collecting struct {
	Records []Record
}

// Log implements Sink.
func (c *Collecting) Log(r Record) {
	c.Records = append(c.Records, r)
}
