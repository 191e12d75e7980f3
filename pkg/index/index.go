// Package index is the core, providing the in-memory prefix index that backs
// word suggestions: case-insensitive membership and bounded, deterministic
// prefix enumeration over a static dictionary.
package index

import (
	"sort"
	"strings"
)

// child maps one lowercase rune to the arena slot of the node it leads to.
// Slices of children stay sorted by rune so traversal order is stable.
type child struct {
	r   rune
	idx int32
}

// node is one trie node. Nodes live in the arena owned by Index and refer to
// each other by slot, never by pointer.
type node struct {
	children []child
	terminal bool
	original string
}

// Index is a trie over the lowercased forms of inserted words. The root
// occupies slot 0 and is never terminal. Build it once at startup, then treat
// it as read-only: lookups take no locks, so concurrent reads are safe only
// after all inserts have finished.
type Index struct {
	nodes []node
}

// New returns an empty index containing only the root node.
func New() *Index {
	return &Index{nodes: make([]node, 1)}
}

// Insert adds a word under its lowercase form. The original casing is kept
// for the first insert of a given lowercase key; later inserts of other
// casings of the same word change nothing. Empty input is a no-op.
func (ix *Index) Insert(word string) {
	if word == "" {
		return
	}
	cur := int32(0)
	for _, r := range strings.ToLower(word) {
		cur = ix.walkOrGrow(cur, r)
	}
	n := &ix.nodes[cur]
	if !n.terminal {
		n.terminal = true
		n.original = word
	}
}

// BuildFromWords inserts every word in order. Insertion order decides
// first-insert-wins ties between casings.
func (ix *Index) BuildFromWords(words []string) {
	for _, w := range words {
		ix.Insert(w)
	}
}

// Contains reports whether the word was inserted, compared case-insensitively.
// Empty input is never contained.
func (ix *Index) Contains(word string) bool {
	if word == "" {
		return false
	}
	cur := int32(0)
	for _, r := range strings.ToLower(word) {
		next, ok := ix.walk(cur, r)
		if !ok {
			return false
		}
		cur = next
	}
	return ix.nodes[cur].terminal
}

// SearchPrefix returns up to maxResults originally-cased words whose lowercase
// form starts with the lowercased prefix. Results come back in pre-order over
// the trie with siblings in rune order, so the order is identical across calls
// for the same index. An empty prefix matches nothing, as does a prefix whose
// path is absent. Cost is O(len(prefix)) to descend plus O(k) to collect.
func (ix *Index) SearchPrefix(prefix string, maxResults int) []string {
	results := []string{}
	if prefix == "" || maxResults <= 0 {
		return results
	}
	cur := int32(0)
	for _, r := range strings.ToLower(prefix) {
		next, ok := ix.walk(cur, r)
		if !ok {
			return results
		}
		cur = next
	}

	// Explicit stack instead of recursion; long shared prefixes would
	// otherwise grow the call stack with dictionary depth. Children are
	// pushed in reverse so the smallest rune pops first.
	stack := []int32{cur}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &ix.nodes[n]
		if nd.terminal {
			results = append(results, nd.original)
			if len(results) >= maxResults {
				return results
			}
		}
		for i := len(nd.children) - 1; i >= 0; i-- {
			stack = append(stack, nd.children[i].idx)
		}
	}
	return results
}

// Size returns the number of distinct words held. Diagnostics only.
func (ix *Index) Size() int {
	count := 0
	for i := range ix.nodes {
		if ix.nodes[i].terminal {
			count++
		}
	}
	return count
}

// NodeCount returns the number of allocated trie nodes, root included.
func (ix *Index) NodeCount() int {
	return len(ix.nodes)
}

// walk follows one edge, reporting whether it exists.
func (ix *Index) walk(cur int32, r rune) (int32, bool) {
	kids := ix.nodes[cur].children
	i := sort.Search(len(kids), func(i int) bool { return kids[i].r >= r })
	if i < len(kids) && kids[i].r == r {
		return kids[i].idx, true
	}
	return 0, false
}

// walkOrGrow follows one edge, allocating the child node when missing.
func (ix *Index) walkOrGrow(cur int32, r rune) int32 {
	kids := ix.nodes[cur].children
	i := sort.Search(len(kids), func(i int) bool { return kids[i].r >= r })
	if i < len(kids) && kids[i].r == r {
		return kids[i].idx
	}
	ix.nodes = append(ix.nodes, node{})
	idx := int32(len(ix.nodes) - 1)
	// Re-index the parent: the append above may have moved the arena.
	kids = append(ix.nodes[cur].children, child{})
	copy(kids[i+1:], kids[i:])
	kids[i] = child{r: r, idx: idx}
	ix.nodes[cur].children = kids
	return idx
}
