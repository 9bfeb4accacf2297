// Package prefixbuild ports the original's words_prefixes.rs: it scans
// every indexed word, finds the prefixes frequent enough to deserve
// their own docids projection, and rebuilds word_prefix_docids plus the
// popular-prefixes FST from scratch (spec.md §4.10, full-replace, never
// incremental).
package prefixbuild

import (
	"bytes"
	"context"
	"sort"

	"github.com/blevesearch/vellum"
	"github.com/kharrow/rankgraph/rankerr"
	"github.com/kharrow/rankgraph/store"
)

// DefaultThreshold is the minimum fraction of the word list a prefix's
// run of sharing words must cover to be "popular" (spec.md §4.10).
const DefaultThreshold = 0.01

// DefaultMaxPrefixLength is the longest prefix, in runes, this builder
// will ever consider.
const DefaultMaxPrefixLength = 4

// Builder rebuilds the popular-prefixes projection for a word list.
// The zero value is not usable; construct with New.
type Builder struct {
	threshold    float64
	maxPrefixLen int
}

// New returns a Builder configured with DefaultThreshold and
// DefaultMaxPrefixLength.
func New() *Builder {
	return &Builder{threshold: DefaultThreshold, maxPrefixLen: DefaultMaxPrefixLength}
}

// Threshold sets the minimum share of the word list, in [0, 1], a
// prefix's run must cover to be considered popular. Out-of-range values
// are clamped.
func (b *Builder) Threshold(r float64) *Builder {
	switch {
	case r < 0:
		r = 0
	case r > 1:
		r = 1
	}
	b.threshold = r
	return b
}

// MaxPrefixLength sets the longest prefix, in runes, this builder will
// consider. Out-of-range values are clamped to [1, 25].
func (b *Builder) MaxPrefixLength(l int) *Builder {
	switch {
	case l < 1:
		l = 1
	case l > 25:
		l = 25
	}
	b.maxPrefixLen = l
	return b
}

// Execute rebuilds word_prefix_docids and the popular-prefixes FST for
// words, replacing whatever was there before. The whole rebuild is
// staged inside txn and published by its Commit; any failure rolls the
// transaction back, so a partial rebuild is never observable.
func (b *Builder) Execute(ctx context.Context, txn store.WriteTxn, words []string) (err error) {
	defer func() {
		if err != nil {
			_ = txn.Rollback(ctx)
		}
	}()

	if err := rankerr.FromContext(ctx); err != nil {
		return err
	}

	sorted := append([]string(nil), words...)
	sort.Strings(sorted)

	popular := b.popularPrefixes(sorted)

	if err := txn.ClearWordPrefixDocids(ctx); err != nil {
		return err
	}

	s := newSorter()
	for _, w := range sorted {
		if err := rankerr.FromContext(ctx); err != nil {
			return err
		}
		docids, err := txn.WordDocids(ctx, w)
		if err != nil {
			return err
		}
		for n := 1; n <= b.maxPrefixLen; n++ {
			prefix, ok := prefixAt(w, n)
			if !ok {
				break
			}
			if !popular[prefix] {
				continue
			}
			if err := s.add(prefix, docids); err != nil {
				return err
			}
		}
	}

	projected, err := s.finish()
	if err != nil {
		return err
	}

	fstWords := make([]string, 0, len(projected))
	for prefix, docids := range projected {
		if err := txn.SetWordPrefixDocids(ctx, prefix, docids); err != nil {
			return err
		}
		fstWords = append(fstWords, prefix)
	}
	sort.Strings(fstWords)

	var buf bytes.Buffer
	fstBuilder, err := vellum.New(&buf, nil)
	if err != nil {
		return rankerr.New(rankerr.Encoding, "prefixbuild: create fst builder: %v", err)
	}
	for i, w := range fstWords {
		if err := fstBuilder.Insert([]byte(w), uint64(i)); err != nil {
			return rankerr.New(rankerr.Encoding, "prefixbuild: insert into fst: %v", err)
		}
	}
	if err := fstBuilder.Close(); err != nil {
		return rankerr.New(rankerr.Encoding, "prefixbuild: close fst builder: %v", err)
	}

	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return rankerr.New(rankerr.Encoding, "prefixbuild: load fst: %v", err)
	}
	if err := txn.SetWordsPrefixesFST(ctx, fst); err != nil {
		return err
	}

	return txn.Commit(ctx)
}

// popularPrefixes scans sorted (already lexicographically ordered) and
// returns the set of prefixes, up to b.maxPrefixLen runes long, whose
// run of consecutive sharing words reaches minCount = floor(|W| *
// threshold).
//
// At threshold 0 the floor yields minCount 0, so every distinct prefix
// at every length qualifies, including ones shared by a single word —
// that degenerate behavior is preserved, not guarded against (see the
// Open Question decision in DESIGN.md).
func (b *Builder) popularPrefixes(sorted []string) map[string]bool {
	popular := make(map[string]bool)
	total := len(sorted)
	if total == 0 {
		return popular
	}
	minCount := int(float64(total) * b.threshold)

	for n := 1; n <= b.maxPrefixLen; n++ {
		runStart := 0
		var runPrefix string
		runHasPrefix := false

		flush := func(end int) {
			if !runHasPrefix {
				return
			}
			if end-runStart >= minCount {
				popular[runPrefix] = true
			}
		}

		for i, w := range sorted {
			prefix, ok := prefixAt(w, n)
			if !ok || (runHasPrefix && prefix != runPrefix) {
				flush(i)
				runHasPrefix = false
			}
			if ok && !runHasPrefix {
				runStart = i
				runPrefix = prefix
				runHasPrefix = true
			}
		}
		flush(total)
	}

	return popular
}

// prefixAt returns the first n runes of w, and false if w has fewer
// than n runes. Iteration walks byte offsets via range, so multi-byte
// runes are never split mid-codepoint.
func prefixAt(w string, n int) (string, bool) {
	count := 0
	for i := range w {
		if count == n {
			return w[:i], true
		}
		count++
	}
	if count == n {
		return w, true
	}
	return "", false
}
