// Package rankerr defines the error taxonomy shared by every package in
// this module (spec.md §7).
//
// Errors propagate to the nearest invocation boundary — one rule on one
// query, or one prefix-build — and are never retried inside the core.
// Every returned error can be classified with [KindOf] and tested with
// [errors.Is] against the four sentinel kinds.
package rankerr

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// Io marks a failure from the underlying store, a temp file, or the
	// external sorter. Fatal to the current operation.
	Io Kind = iota
	// Encoding marks a byte slice that is not valid UTF-8 where text was
	// required. Fatal.
	Encoding
	// Corruption marks an interner handle that resolves to no value, or
	// an edge referencing a dead node. Fatal, and indicates a bug.
	Corruption
	// Cancelled marks cooperative cancellation having been observed.
	// Non-fatal: the caller may retry.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "io"
	case Encoding:
		return "encoding"
	case Corruption:
		return "corruption"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// sentinel is the comparable value embedded in every error produced by
// this package, so errors.Is can match on Kind without string comparison.
type sentinel struct{ kind Kind }

func (s sentinel) Error() string { return "rankerr: " + s.kind.String() }

var (
	// ErrIo is the sentinel matched by errors.Is for Kind Io.
	ErrIo error = sentinel{Io}
	// ErrEncoding is the sentinel matched by errors.Is for Kind Encoding.
	ErrEncoding error = sentinel{Encoding}
	// ErrCorruption is the sentinel matched by errors.Is for Kind
	// Corruption.
	ErrCorruption error = sentinel{Corruption}
	// ErrCancelled is the sentinel matched by errors.Is for Kind
	// Cancelled.
	ErrCancelled error = sentinel{Cancelled}
)

func sentinelFor(k Kind) error {
	switch k {
	case Io:
		return ErrIo
	case Encoding:
		return ErrEncoding
	case Corruption:
		return ErrCorruption
	case Cancelled:
		return ErrCancelled
	default:
		return ErrCorruption
	}
}

// New builds an error of the given kind, wrapping the matching sentinel
// so callers can use errors.Is(err, rankerr.ErrIo) etc., with a
// formatted message in the style of fmt.Errorf.
func New(k Kind, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinelFor(k))
}

// FromContext converts a context error (ctx.Err()) into a Cancelled
// rankerr, or returns nil if ctx carries no error.
func FromContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return New(Cancelled, "operation cancelled: %v", err)
	}
	return nil
}

// KindOf reports the Kind of err, defaulting to Corruption if err does
// not match any of the four sentinels (an error from outside this
// module's taxonomy indicates a bug in how it was produced).
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrIo):
		return Io
	case errors.Is(err, ErrEncoding):
		return Encoding
	case errors.Is(err, ErrCancelled):
		return Cancelled
	default:
		return Corruption
	}
}
