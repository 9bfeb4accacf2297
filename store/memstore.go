package store

import (
	"context"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/blevesearch/vellum"
)

type pairKey struct {
	a, b string
	gap  uint8
}

// MemStore is a map-backed, in-memory Store for tests and
// cmd/rankdemo — test/demo scaffolding, not a production index. Write
// transactions buffer every mutation and publish it atomically on
// Commit; a Rollback (or an abandoned transaction) leaves the store
// exactly as it was, so a failed prefix rebuild never exposes a
// half-cleared projection.
type MemStore struct {
	mu        sync.RWMutex
	words     map[string]*roaring.Bitmap
	pairs     map[pairKey]*roaring.Bitmap
	prefixes  map[string]*roaring.Bitmap
	wordsFST  *vellum.FST
	prefixFST *vellum.FST
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		words:    make(map[string]*roaring.Bitmap),
		pairs:    make(map[pairKey]*roaring.Bitmap),
		prefixes: make(map[string]*roaring.Bitmap),
	}
}

// Read returns a ReadTxn over the store's live contents. It is not a
// snapshot: writes committed, or made through the Set* loaders, after
// Read returns are visible through the returned ReadTxn.
func (m *MemStore) Read(context.Context) (ReadTxn, error) {
	return &memTxn{store: m}, nil
}

// Write returns a WriteTxn buffering its mutations until Commit.
func (m *MemStore) Write(context.Context) (WriteTxn, error) {
	return &memWriteTxn{memTxn: memTxn{store: m}, staged: make(map[string]*roaring.Bitmap)}, nil
}

// SetWordDocids, SetWordPairProximityDocids and SetWordsFST are direct
// loaders for tests and cmd/rankdemo; they are not part of WriteTxn
// because the prefix builder — the one real writer this module ships —
// only ever touches word_prefix_docids and the prefixes FST.
func (m *MemStore) SetWordDocids(word string, docids *roaring.Bitmap) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.words[word] = docids
}

func (m *MemStore) SetWordPairProximityDocids(a, b string, gap uint8, docids *roaring.Bitmap) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairs[pairKey{a, b, gap}] = docids
}

func (m *MemStore) SetWordsFST(fst *vellum.FST) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wordsFST = fst
}

type memTxn struct {
	store *MemStore
}

func (t *memTxn) WordDocids(_ context.Context, word string) (*roaring.Bitmap, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if bm, ok := t.store.words[word]; ok {
		return bm.Clone(), nil
	}
	return roaring.New(), nil
}

func (t *memTxn) WordPairProximityDocids(_ context.Context, a, b string, gap uint8) (*roaring.Bitmap, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if bm, ok := t.store.pairs[pairKey{a, b, gap}]; ok {
		return bm.Clone(), nil
	}
	return roaring.New(), nil
}

func (t *memTxn) WordsFST(_ context.Context) (*vellum.FST, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.store.wordsFST, nil
}

func (t *memTxn) WordPrefixDocids(_ context.Context, prefix string) (*roaring.Bitmap, bool, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	bm, ok := t.store.prefixes[prefix]
	if !ok {
		return nil, false, nil
	}
	return bm.Clone(), true, nil
}

func (t *memTxn) WordsPrefixesFST(_ context.Context) (*vellum.FST, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.store.prefixFST, nil
}

// memWriteTxn stages prefix-table mutations privately and applies them
// to the store only on Commit. Reads within the transaction see its own
// staged writes layered over the store's committed state.
type memWriteTxn struct {
	memTxn
	cleared   bool
	staged    map[string]*roaring.Bitmap
	stagedFST *vellum.FST
	hasFST    bool
}

func (t *memWriteTxn) WordPrefixDocids(ctx context.Context, prefix string) (*roaring.Bitmap, bool, error) {
	if bm, ok := t.staged[prefix]; ok {
		return bm.Clone(), true, nil
	}
	if t.cleared {
		return nil, false, nil
	}
	return t.memTxn.WordPrefixDocids(ctx, prefix)
}

func (t *memWriteTxn) WordsPrefixesFST(ctx context.Context) (*vellum.FST, error) {
	if t.hasFST {
		return t.stagedFST, nil
	}
	return t.memTxn.WordsPrefixesFST(ctx)
}

func (t *memWriteTxn) SetWordPrefixDocids(_ context.Context, prefix string, docids *roaring.Bitmap) error {
	t.staged[prefix] = docids
	return nil
}

func (t *memWriteTxn) SetWordsPrefixesFST(_ context.Context, fst *vellum.FST) error {
	t.stagedFST = fst
	t.hasFST = true
	return nil
}

func (t *memWriteTxn) ClearWordPrefixDocids(context.Context) error {
	t.cleared = true
	t.staged = make(map[string]*roaring.Bitmap)
	return nil
}

// Commit publishes every staged mutation atomically under the store's
// write lock.
func (t *memWriteTxn) Commit(context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.cleared {
		t.store.prefixes = make(map[string]*roaring.Bitmap)
	}
	for prefix, docids := range t.staged {
		t.store.prefixes[prefix] = docids
	}
	if t.hasFST {
		t.store.prefixFST = t.stagedFST
	}

	t.cleared = false
	t.staged = make(map[string]*roaring.Bitmap)
	t.hasFST = false
	return nil
}

// Rollback discards every staged mutation, leaving the store untouched.
func (t *memWriteTxn) Rollback(context.Context) error {
	t.cleared = false
	t.staged = make(map[string]*roaring.Bitmap)
	t.stagedFST = nil
	t.hasFST = false
	return nil
}
