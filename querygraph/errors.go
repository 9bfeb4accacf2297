// File: errors.go
// Role: sentinel errors for the querygraph package, in the teacher's
// per-package sentinel-error convention (see core/types.go).

package querygraph

import "errors"

var (
	// ErrNodeNotFound is returned when a handle does not name a node in
	// this graph.
	ErrNodeNotFound = errors.New("querygraph: node not found")
	// ErrSourceNotSet is returned by Freeze if no source node was set.
	ErrSourceNotSet = errors.New("querygraph: source node not set")
	// ErrSinkNotSet is returned by Freeze if no sink node was set.
	ErrSinkNotSet = errors.New("querygraph: sink node not set")
	// ErrSourceEqualsSink is returned by Freeze if source and sink were
	// set to the same node (the graph must have at least a source and a
	// sink, per spec.md §3 "unique source and sink").
	ErrSourceEqualsSink = errors.New("querygraph: source and sink must differ")
)
