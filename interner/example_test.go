// Package interner_test provides runnable examples for the interner
// package, demonstrating handle assignment, deduplication, and the
// dedup-then-freeze lifecycle.
package interner_test

import (
	"fmt"

	"github.com/kharrow/rankgraph/interner"
)

// ExampleDedup_Intern demonstrates that interning the same value twice
// yields the same handle, while distinct values get dense consecutive
// handles.
func ExampleDedup_Intern() {
	words := interner.NewDedup[string]()

	quick := words.Intern("quick")
	fox := words.Intern("fox")
	again := words.Intern("quick")

	fmt.Println(quick, fox, again)
	fmt.Println(words.Len())
	// Output:
	// 0 1 0
	// 2
}

// ExampleDedup_Freeze demonstrates freezing a construction-time interner
// into a read-only snapshot whose handle range [0, N) becomes the key
// space for fixed-capacity bitmaps.
func ExampleDedup_Freeze() {
	words := interner.NewDedup[string]()
	words.Intern("quick")
	words.Intern("brown")
	words.Intern("fox")

	fixed := words.Freeze()

	// Further interning does not affect the frozen snapshot.
	words.Intern("jumps")

	fmt.Println(fixed.Len())
	fixed.Iter(func(h interner.Handle, v string) bool {
		fmt.Println(h, v)
		return true
	})
	// Output:
	// 3
	// 0 quick
	// 1 brown
	// 2 fox
}
