package trie

import (
	"sort"
	"strings"
)

// SearchResult is the payload returned for an autocomplete match.
type SearchResult struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

type node struct {
	children map[rune]*node
	keys     []rune // sorted child edges
	terminal bool
	payload  SearchResult
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

func (n *node) child(r rune) *node {
	if c, ok := n.children[r]; ok {
		return c
	}
	c := newNode()
	n.children[r] = c
	idx := sort.Search(len(n.keys), func(i int) bool { return n.keys[i] >= r })
	n.keys = append(n.keys, 0)
	copy(n.keys[idx+1:], n.keys[idx:])
	n.keys[idx] = r
	return c
}

// Trie is a character trie over lower-cased company names.
// It is filled once per refresh and must not be written while being searched.
type Trie struct {
	root  *node
	count int
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: newNode()}
}

// BuildFromCompanies inserts the companies in list order.
func BuildFromCompanies(companies []SearchResult) *Trie {
	t := New()
	for _, c := range companies {
		t.Insert(c)
	}
	return t
}

// Insert stores company under its lower-cased name. A later insert with the
// same name replaces the earlier payload.
func (t *Trie) Insert(company SearchResult) {
	cur := t.root
	for _, r := range strings.ToLower(company.Name) {
		cur = cur.child(r)
	}
	if !cur.terminal {
		t.count++
	}
	cur.terminal = true
	cur.payload = company
}

// Len returns the number of distinct names stored.
func (t *Trie) Len() int { return t.count }

// Search returns up to limit companies whose lower-cased name starts with the
// lower-cased prefix. Matches are collected depth first with child edges in
// ascending rune order, and collection stops once limit matches are found.
// An empty prefix matches from the root.
func (t *Trie) Search(prefix string, limit int) []SearchResult {
	out := []SearchResult{}
	if limit <= 0 {
		return out
	}

	cur := t.root
	for _, r := range strings.ToLower(prefix) {
		next, ok := cur.children[r]
		if !ok {
			return out
		}
		cur = next
	}

	var collect func(n *node) bool
	collect = func(n *node) bool {
		if n.terminal {
			out = append(out, n.payload)
			if len(out) >= limit {
				return true
			}
		}
		for _, r := range n.keys {
			if collect(n.children[r]) {
				return true
			}
		}
		return false
	}
	collect(cur)
	return out
}
