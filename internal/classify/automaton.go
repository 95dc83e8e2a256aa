// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package classify

import "strings"

// automaton is an Aho-Corasick matcher over a fixed keyword set.
// It finds every occurrence of every keyword in O(n + m + z), where n is the
// text length, m the total keyword length and z the number of matches.
//
// Matching is case-insensitive and substring based: "excellent" is counted
// inside "excellently". The automaton is immutable after construction and
// safe for concurrent use without locking.
type automaton struct {
	root     *node
	keywords []string
}

type node struct {
	children map[rune]*node
	fail     *node
	// out holds indices into keywords that end at this node, including
	// those inherited through the failure chain.
	out []int
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// newAutomaton builds the matcher. Keywords are lower-cased, blanks are
// dropped and duplicates collapse into one entry.
func newAutomaton(keywords []string) *automaton {
	a := &automaton{root: newNode()}

	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		a.insert(len(a.keywords), kw)
		a.keywords = append(a.keywords, kw)
	}

	a.link()
	return a
}

func (a *automaton) insert(index int, kw string) {
	n := a.root
	for _, ch := range kw {
		next := n.children[ch]
		if next == nil {
			next = newNode()
			n.children[ch] = next
		}
		n = next
	}
	n.out = append(n.out, index)
}

// link computes failure links breadth-first.
func (a *automaton) link() {
	queue := make([]*node, 0, len(a.root.children))
	for _, child := range a.root.children {
		child.fail = a.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.fail
			for fail != nil && fail.children[ch] == nil {
				fail = fail.fail
			}
			if fail == nil {
				child.fail = a.root
				continue
			}
			child.fail = fail.children[ch]
			child.out = append(child.out, child.fail.out...)
		}
	}
}

// count returns the number of occurrences of each keyword in text, indexed
// like a.keywords. The text is lower-cased before matching.
func (a *automaton) count(text string) []int {
	counts := make([]int, len(a.keywords))
	if len(a.keywords) == 0 || text == "" {
		return counts
	}

	n := a.root
	for _, ch := range strings.ToLower(text) {
		for n != a.root && n.children[ch] == nil {
			n = n.fail
		}
		if next := n.children[ch]; next != nil {
			n = next
		}
		for _, idx := range n.out {
			counts[idx]++
		}
	}
	return counts
}

// total returns the number of keyword occurrences in text.
func (a *automaton) total(text string) int {
	sum := 0
	for _, c := range a.count(text) {
		sum += c
	}
	return sum
}

// contains reports whether any keyword occurs in text.
func (a *automaton) contains(text string) bool {
	if len(a.keywords) == 0 {
		return false
	}
	n := a.root
	for _, ch := range strings.ToLower(text) {
		for n != a.root && n.children[ch] == nil {
			n = n.fail
		}
		if next := n.children[ch]; next != nil {
			n = next
		}
		if len(n.out) > 0 {
			return true
		}
	}
	return false
}
