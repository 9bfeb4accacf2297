package interner

import (
	"strconv"
	"testing"
)

var benchSink Handle

// BenchmarkIntern_Miss measures interning a value not seen before:
// one map lookup, one map insert, one slice append per iteration.
//
// Complexity: O(1) amortised.
func BenchmarkIntern_Miss(b *testing.B) {
	d := NewDedup[string]()
	values := make([]string, b.N)
	for i := 0; i < b.N; i++ {
		values[i] = strconv.Itoa(i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = d.Intern(values[i])
	}
}

// BenchmarkIntern_Hit measures re-interning an already-seen value: a
// single read-path map lookup per iteration.
func BenchmarkIntern_Hit(b *testing.B) {
	d := NewDedup[string]()
	d.Intern("proximity")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = d.Intern("proximity")
	}
}
