// Command rankdemo builds a small query graph, runs both ranking rules
// over it against a tiny in-memory store, and prints the cost buckets
// each rule produces.
//
// Adapted from the teacher's examples/*.go programs: bare fmt.Printf and
// log.Fatal, no CLI framework, one linear main with numbered steps.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/blevesearch/vellum"
	"github.com/kharrow/rankgraph/cheapestpath"
	"github.com/kharrow/rankgraph/interner"
	"github.com/kharrow/rankgraph/querygraph"
	"github.com/kharrow/rankgraph/querygraph/fixtures"
	"github.com/kharrow/rankgraph/rankgraph"
	"github.com/kharrow/rankgraph/rules/proximity"
	"github.com/kharrow/rankgraph/rules/typo"
	"github.com/kharrow/rankgraph/searchlog"
	"github.com/kharrow/rankgraph/store"
)

func main() {
	// 1) Build the index fixture: docs {1: "quick brown fox", 2: "quick
	// fox", 3: "fox quick"}, matching spec.md §8 scenario 1.
	mem := store.NewMemStore()
	mem.SetWordDocids("quick", bm(1, 2, 3))
	mem.SetWordDocids("fox", bm(1, 2, 3))
	// doc 2 is adjacent forward; doc 1 is forward at distance 2; doc 3
	// is reversed-adjacent, folded into the forward key at gap 1+1.
	mem.SetWordPairProximityDocids("quick", "fox", 1, bm(2))
	mem.SetWordPairProximityDocids("quick", "fox", 2, bm(1, 3))

	wordsFST, err := buildWordsFST([]string{"fox", "quick"})
	if err != nil {
		log.Fatalf("rankdemo: build words fst: %v", err)
	}
	mem.SetWordsFST(wordsFST)

	ctx := context.Background()
	universe := bm(1, 2, 3)

	txn, err := mem.Read(ctx)
	if err != nil {
		log.Fatalf("rankdemo: read txn: %v", err)
	}

	// 2) Run the proximity rule over "quick fox".
	proxWords := interner.NewDedup[string]()
	proxGraph, terms := fixtures.Linear(proxWords, []string{"quick", "fox"})
	fmt.Printf("proximity query graph: %d nodes, terms=%v\n", proxGraph.NodeCount(), terms)

	proxRule := &proximity.Rule{Words: proxWords.Freeze(), Source: txn}
	runRule[proximity.Condition](ctx, "proximity", proxGraph, proxRule, universe)

	// 3) Run the typo rule over a misspelled "quikc".
	typoWords := interner.NewDedup[string]()
	typoGraph, _ := fixtures.Linear(typoWords, []string{"quikc"})

	typoRule := &typo.Rule{Words: typoWords.Freeze(), Source: txn}
	runRule[typo.Condition](ctx, "typo", typoGraph, typoRule, universe)
}

// runRule builds a ranking rule graph for rule over qg, enumerates every
// cost bucket in non-decreasing order, and prints the docids found at
// each cost.
func runRule[C comparable](ctx context.Context, name string, qg *querygraph.Graph, rule rankgraph.Rule[C], universe *roaring.Bitmap) {
	g, err := rankgraph.Build[C](ctx, qg, rule)
	if err != nil {
		log.Fatalf("rankdemo: %s: build rank graph: %v", name, err)
	}

	distances, err := cheapestpath.Compute[C](g)
	if err != nil {
		log.Fatalf("rankdemo: %s: compute distances: %v", name, err)
	}

	en := cheapestpath.New[C](g, distances, rule, searchlog.Nop{})
	fmt.Printf("%s buckets:\n", name)
	err = en.Enumerate(ctx, universe, func(cost uint16, docids *roaring.Bitmap) bool {
		fmt.Printf("  cost %d -> docs %v\n", cost, docids.ToArray())
		return true
	})
	if err != nil {
		log.Fatalf("rankdemo: %s: enumerate: %v", name, err)
	}
}

func buildWordsFST(words []string) (*vellum.FST, error) {
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)

	var buf bytes.Buffer
	b, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}
	for i, w := range sorted {
		if err := b.Insert([]byte(w), uint64(i)); err != nil {
			return nil, err
		}
	}
	if err := b.Close(); err != nil {
		return nil, err
	}
	return vellum.Load(buf.Bytes())
}

func bm(ids ...uint32) *roaring.Bitmap {
	return roaring.BitmapOf(ids...)
}
