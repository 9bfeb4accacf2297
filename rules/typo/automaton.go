package typo

import (
	"github.com/blevesearch/vellum"
	"github.com/blevesearch/vellum/levenshtein"
)

// candidatesWithinDistance walks fst with a bounded-Levenshtein DFA
// centered on word, returning every indexed word within maxEdits edits
// (inclusive, transpositions counted as one edit). This reconstructs the
// original implementation's FST-driven typo resolution (the original
// walks a compiled words FST with a Damerau-Levenshtein automaton rather
// than scanning the whole word list) — one of the "Supplemented
// features" recorded in SPEC_FULL.md, since the distilled spec only
// states the edit-distance bound, not how candidates are found.
func candidatesWithinDistance(fst *vellum.FST, word string, maxEdits uint8) ([]string, error) {
	if fst == nil {
		return nil, nil
	}

	builder, err := levenshtein.NewLevenshteinAutomatonBuilder(maxEdits, true)
	if err != nil {
		return nil, err
	}
	dfa, err := builder.BuildDfa(word, maxEdits)
	if err != nil {
		return nil, err
	}

	itr, err := fst.Search(dfa, nil, nil)
	if err == vellum.ErrIteratorDone {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []string
	for err == nil {
		key, _ := itr.Current()
		out = append(out, string(key))
		err = itr.Next()
	}
	if err != vellum.ErrIteratorDone {
		return nil, err
	}
	return out, nil
}
