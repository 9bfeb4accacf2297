package deadend

import (
	"sort"

	"github.com/kharrow/rankgraph/interner"
)

// PathSet is a trie over sorted condition-handle sequences, used to
// accelerate "has some previously-seen path already failed with a subset
// of these conditions" queries during enumeration (spec.md §4.7).
//
// Each inserted path is treated as a set: duplicates are removed and
// order does not matter, since what is recorded is "this combination of
// conditions was a dead end", not a sequence.
type PathSet struct {
	root *trieNode
}

type trieNode struct {
	children map[interner.Handle]*trieNode
	terminal bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[interner.Handle]*trieNode)}
}

// NewPathSet returns an empty path set.
func NewPathSet() *PathSet {
	return &PathSet{root: newTrieNode()}
}

// Insert records path as a dead-end combination of conditions.
func (p *PathSet) Insert(path []interner.Handle) {
	node := p.root
	for _, h := range sortedUnique(path) {
		child, ok := node.children[h]
		if !ok {
			child = newTrieNode()
			node.children[h] = child
		}
		node = child
	}
	node.terminal = true
}

// Contains reports whether path was inserted exactly (as a set).
func (p *PathSet) Contains(path []interner.Handle) bool {
	node := p.root
	for _, h := range sortedUnique(path) {
		child, ok := node.children[h]
		if !ok {
			return false
		}
		node = child
	}
	return node.terminal
}

// HasSubsetOf reports whether any previously inserted path is a subset
// of path, i.e. whether path's condition set is already known to extend
// a combination already proven dead.
func (p *PathSet) HasSubsetOf(path []interner.Handle) bool {
	return hasSubset(p.root, sortedUnique(path))
}

// hasSubset walks remaining, at each node either consuming its head
// handle (if the trie branches on it) or skipping it, since a subset may
// omit elements of the superset it is being tested against. Reaching any
// terminal node along the way means the prefix consumed so far — itself
// a subset of path — was previously inserted.
func hasSubset(node *trieNode, remaining []interner.Handle) bool {
	if node.terminal {
		return true
	}
	for i, h := range remaining {
		if child, ok := node.children[h]; ok {
			if hasSubset(child, remaining[i+1:]) {
				return true
			}
		}
	}
	return false
}

func sortedUnique(path []interner.Handle) []interner.Handle {
	cp := append([]interner.Handle(nil), path...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out := cp[:0]
	for i, h := range cp {
		if i == 0 || h != cp[i-1] {
			out = append(out, h)
		}
	}
	return out
}
