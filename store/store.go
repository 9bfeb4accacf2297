// Package store declares the read/write surface the ranking rules and
// the prefix builder need from the underlying index (spec.md §6,
// "External Interfaces" EXPANSION): word postings, word-pair-proximity
// postings, and the two FSTs (all words, popular prefixes).
//
// The real, on-disk store behind these interfaces is out of this
// module's scope (spec.md §1 Non-goals). memstore.go provides a small
// in-memory implementation for tests and cmd/rankdemo.
package store

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/blevesearch/vellum"
)

// ReadTxn is a read-only snapshot of the index data the ranking engine
// consumes.
type ReadTxn interface {
	// WordDocids returns the docids containing word.
	WordDocids(ctx context.Context, word string) (*roaring.Bitmap, error)

	// WordPairProximityDocids returns the docids indexed under the
	// (a, b, gap) key (spec.md §4.8): a exactly gap positions before b,
	// plus reversed pairs folded in at indexing time one gap higher.
	WordPairProximityDocids(ctx context.Context, a, b string, gap uint8) (*roaring.Bitmap, error)

	// WordsFST returns the FST of every word in the index, for
	// bounded-edit-distance typo search (spec.md §4.9).
	WordsFST(ctx context.Context) (*vellum.FST, error)

	// WordPrefixDocids returns the docids of every word sharing prefix,
	// when prefix is popular enough to have its own projection (spec.md
	// §4.10); ok is false otherwise.
	WordPrefixDocids(ctx context.Context, prefix string) (*roaring.Bitmap, bool, error)

	// WordsPrefixesFST returns the FST of every popular prefix produced
	// by the prefix builder.
	WordsPrefixesFST(ctx context.Context) (*vellum.FST, error)
}

// WriteTxn extends ReadTxn with the mutations the prefix builder needs
// to publish its output.
type WriteTxn interface {
	ReadTxn

	SetWordPrefixDocids(ctx context.Context, prefix string, docids *roaring.Bitmap) error
	SetWordsPrefixesFST(ctx context.Context, fst *vellum.FST) error
	// ClearWordPrefixDocids removes every word_prefix_docids entry,
	// matching the atomic full-replace semantics of spec.md §4.10.
	ClearWordPrefixDocids(ctx context.Context) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store opens read and write transactions.
type Store interface {
	Read(ctx context.Context) (ReadTxn, error)
	Write(ctx context.Context) (WriteTxn, error)
}
