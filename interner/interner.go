// Package interner implements process-local, deduplicating value stores.
//
// A value is interned once and thereafter referred to by a dense,
// zero-based [Handle]. Two handles from the same interner are equal if and
// only if they identify the same (by value-equality) interned value, which
// makes handles cheap to compare, hash, and use as bitmap indices.
//
// Every interner starts life as a [Dedup], which supports incremental
// insertion during graph construction. Once construction is complete it is
// frozen into a [Fixed], a read-only, concurrency-safe snapshot whose
// handle range `[0, N)` becomes the capacity passed to
// github.com/kharrow/rankgraph/smallbitmap.New.
package interner

import "sync"

// Handle is a dense, zero-based identifier into a specific interner.
// Handles are only comparable across values produced by the same
// interner instance.
type Handle uint32

// Dedup is a growable, deduplicating interner under construction. It is
// safe for concurrent use, though under the engine's single-threaded-per-
// invocation model it is typically only ever touched by one goroutine
// while being built.
//
// mu guards both byValue and values so Intern/Get/Len always observe a
// consistent pair, mirroring the split-lock-per-aggregate convention used
// throughout this module's graph types.
type Dedup[V comparable] struct {
	mu      sync.RWMutex
	byValue map[V]Handle
	values  []V
}

// NewDedup creates an empty deduplicating interner.
func NewDedup[V comparable]() *Dedup[V] {
	return &Dedup[V]{byValue: make(map[V]Handle)}
}

// Intern returns the handle for v, assigning a new one if v has not been
// seen by this interner before.
//
// Complexity: O(1) amortised.
func (d *Dedup[V]) Intern(v V) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	if h, ok := d.byValue[v]; ok {
		return h
	}
	h := Handle(len(d.values))
	d.values = append(d.values, v)
	d.byValue[v] = h
	return h
}

// Lookup returns the handle already assigned to v, if any, without
// interning it.
func (d *Dedup[V]) Lookup(v V) (Handle, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	h, ok := d.byValue[v]
	return h, ok
}

// Get returns the value for handle h. It panics if h was not produced by
// this interner — callers that might pass a foreign or stale handle
// should use [Dedup.TryGet] instead, matching the distinction spec.md §7
// draws between programmer-bug corruption and recoverable conditions.
func (d *Dedup[V]) Get(h Handle) V {
	v, ok := d.TryGet(h)
	if !ok {
		panic("interner: handle out of range")
	}
	return v
}

// TryGet returns the value for handle h and whether h is in range.
func (d *Dedup[V]) TryGet(h Handle) (V, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if int(h) < 0 || int(h) >= len(d.values) {
		var zero V
		return zero, false
	}
	return d.values[h], true
}

// Len reports the number of distinct values interned so far.
func (d *Dedup[V]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.values)
}

// Freeze produces a [Fixed] snapshot of the current contents. The Dedup
// interner remains usable afterwards (Freeze does not consume it), but
// callers should treat the returned Fixed as the authoritative, immutable
// key space from that point on — e.g. as the capacity for a
// smallbitmap.Bitmap.
func (d *Dedup[V]) Freeze() *Fixed[V] {
	d.mu.RLock()
	defer d.mu.RUnlock()

	values := make([]V, len(d.values))
	copy(values, d.values)
	return &Fixed[V]{values: values}
}

// Fixed is an immutable, frozen interner. Once created it never changes,
// so it is safe to share by read-only reference across goroutines/queries
// (see spec.md §5).
type Fixed[V comparable] struct {
	values []V
}

// Len returns the handle-space cardinality N; valid handles are
// [0, Len()).
func (f *Fixed[V]) Len() int { return len(f.values) }

// Get returns the value for handle h. Panics if h is out of range — a
// Fixed interner derived from a consistent graph should never be asked
// for an out-of-range handle; if it is, that is the Corruption case from
// spec.md §7.
func (f *Fixed[V]) Get(h Handle) V {
	return f.values[h]
}

// Iter calls fn(handle, value) for every interned value in ascending
// handle order. Iteration stops early if fn returns false.
func (f *Fixed[V]) Iter(fn func(Handle, V) bool) {
	for i, v := range f.values {
		if !fn(Handle(i), v) {
			return
		}
	}
}
