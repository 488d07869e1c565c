// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package treemap

import (
	"cmp"
	"iter"
	"strings"

	"github.com/cockroachdb/errors"
)

// tree holds what every back-end shares: the root, the entry count and the
// modification counters. The navigation layer works only through the
// treeNode methods, so it never depends on the balancing discipline.
type tree[K cmp.Ordered, V any, N treeNode[K, V, N]] struct {
	kind  Kind
	root  N
	count int
	mods  uint64 // structural changes: insert, remove, clear
	shape uint64 // shape-only restructuring done by reads (splay)
}

func (t *tree[K, V, N]) isNil(n N) bool {
	var none N
	return n == none
}

// Kind - the balancer behind the map
func (t *tree[K, V, N]) Kind() Kind {
	return t.kind
}

// Len - number of entries currently in the map
func (t *tree[K, V, N]) Len() int {
	return t.count
}

// IsEmpty - true if the map holds no entries
func (t *tree[K, V, N]) IsEmpty() bool {
	return t.count == 0
}

// Clear drops every node
func (t *tree[K, V, N]) Clear() {
	var none N
	t.root = none
	t.count = 0
	t.mods++
}

// find walks down from the root without restructuring anything
func (t *tree[K, V, N]) find(key K) (N, bool) {
	n := t.root
	for !t.isNil(n) {
		k, _ := n.entry()
		left, right := n.children()
		switch c := cmp.Compare(key, k); {
		case c < 0:
			n = left
		case c > 0:
			n = right
		default:
			return n, true
		}
	}
	return n, false
}

func (t *tree[K, V, N]) first() (N, bool) {
	n := t.root
	if t.isNil(n) {
		return n, false
	}
	for {
		left, _ := n.children()
		if t.isNil(left) {
			return n, true
		}
		n = left
	}
}

func (t *tree[K, V, N]) last() (N, bool) {
	n := t.root
	if t.isNil(n) {
		return n, false
	}
	for {
		_, right := n.children()
		if t.isNil(right) {
			return n, true
		}
		n = right
	}
}

// FirstKey - lowest key, ErrEmptyMap if there is none
func (t *tree[K, V, N]) FirstKey() (K, error) {
	n, ok := t.first()
	if !ok {
		var none K
		return none, ErrEmptyMap
	}
	k, _ := n.entry()
	return k, nil
}

// LastKey - highest key, ErrEmptyMap if there is none
func (t *tree[K, V, N]) LastKey() (K, error) {
	n, ok := t.last()
	if !ok {
		var none K
		return none, ErrEmptyMap
	}
	k, _ := n.entry()
	return k, nil
}

func (t *tree[K, V, N]) FirstEntry() (Entry[K, V], bool) {
	n, ok := t.first()
	return t.entryOf(n, ok)
}

func (t *tree[K, V, N]) LastEntry() (Entry[K, V], bool) {
	n, ok := t.last()
	return t.entryOf(n, ok)
}

func (t *tree[K, V, N]) entryOf(n N, ok bool) (Entry[K, V], bool) {
	if !ok {
		return Entry[K, V]{}, false
	}
	k, v := n.entry()
	return Entry[K, V]{Key: k, Value: v}, true
}

// below finds the greatest node with a key less than key, or less than or
// equal to it when inclusive is set.
func (t *tree[K, V, N]) below(key K, inclusive bool) (N, bool) {
	var best N
	found := false
	n := t.root
	for !t.isNil(n) {
		k, _ := n.entry()
		left, right := n.children()
		c := cmp.Compare(k, key)
		if c == 0 && inclusive {
			return n, true
		}
		if c < 0 {
			best, found = n, true
			n = right
		} else {
			n = left
		}
	}
	return best, found
}

// above mirrors below: the least node with a key greater than key (or equal
// when inclusive).
func (t *tree[K, V, N]) above(key K, inclusive bool) (N, bool) {
	var best N
	found := false
	n := t.root
	for !t.isNil(n) {
		k, _ := n.entry()
		left, right := n.children()
		c := cmp.Compare(k, key)
		if c == 0 && inclusive {
			return n, true
		}
		if c > 0 {
			best, found = n, true
			n = left
		} else {
			n = right
		}
	}
	return best, found
}

func (t *tree[K, V, N]) keyOf(n N, ok bool) (K, bool) {
	if !ok {
		var none K
		return none, false
	}
	k, _ := n.entry()
	return k, true
}

// LowerKey - greatest key strictly less than key
func (t *tree[K, V, N]) LowerKey(key K) (K, bool) {
	return t.keyOf(t.below(key, false))
}

// FloorKey - greatest key less than or equal to key
func (t *tree[K, V, N]) FloorKey(key K) (K, bool) {
	return t.keyOf(t.below(key, true))
}

// CeilingKey - least key greater than or equal to key
func (t *tree[K, V, N]) CeilingKey(key K) (K, bool) {
	return t.keyOf(t.above(key, true))
}

// HigherKey - least key strictly greater than key
func (t *tree[K, V, N]) HigherKey(key K) (K, bool) {
	return t.keyOf(t.above(key, false))
}

// bound is one end of a range; an unset bound is open
type bound[K cmp.Ordered] struct {
	key       K
	inclusive bool
	set       bool
}

func boundAt[K cmp.Ordered](key K, inclusive bool) bound[K] {
	return bound[K]{key: key, inclusive: inclusive, set: true}
}

// excludesBelow is true if k falls under a lower bound
func (b bound[K]) excludesBelow(k K) bool {
	if !b.set {
		return false
	}
	c := cmp.Compare(k, b.key)
	return c < 0 || (c == 0 && !b.inclusive)
}

// excludesAbove is true if k falls over an upper bound
func (b bound[K]) excludesAbove(k K) bool {
	if !b.set {
		return false
	}
	c := cmp.Compare(k, b.key)
	return c > 0 || (c == 0 && !b.inclusive)
}

// collect returns, in ascending order, every entry between lo and hi.
// A node under lo is skipped together with its left subtree and the walk
// stops at the first key over hi, so only the matching part of the tree and
// the path leading to it are visited.
func (t *tree[K, V, N]) collect(lo, hi bound[K]) []Entry[K, V] {
	var results []Entry[K, V]
	var stack []N
	n := t.root
	for {
		for !t.isNil(n) {
			k, _ := n.entry()
			left, right := n.children()
			if lo.excludesBelow(k) {
				n = right
				continue
			}
			stack = append(stack, n)
			n = left
		}
		if len(stack) == 0 {
			return results
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		k, v := n.entry()
		if hi.excludesAbove(k) {
			return results
		}
		results = append(results, Entry[K, V]{Key: k, Value: v})
		_, n = n.children()
	}
}

// spawn builds a range view of the same kind from entries of this tree
func (t *tree[K, V, N]) spawn(entries []Entry[K, V]) Map[K, V] {
	var m Map[K, V]
	switch t.kind {
	case AVL:
		m = NewAVL[K, V]()
	case RedBlack:
		m = NewRedBlack[K, V]()
	case Splay:
		m = NewSplay[K, V]()
	default:
		panic(errors.AssertionFailedf("treemap: range view of %s", t.kind))
	}
	for _, e := range entries {
		// every key here was already accepted by this tree
		if _, _, err := m.Put(e.Key, e.Value); err != nil {
			panic(errors.NewAssertionErrorWithWrappedErrf(err, "treemap: range view rejected key %v", e.Key))
		}
	}
	return m
}

// HeadMap - entries with keys below to (or equal when inclusive)
func (t *tree[K, V, N]) HeadMap(to K, inclusive bool) Map[K, V] {
	return t.spawn(t.collect(bound[K]{}, boundAt(to, inclusive)))
}

// TailMap - entries with keys above from (or equal when inclusive)
func (t *tree[K, V, N]) TailMap(from K, inclusive bool) Map[K, V] {
	return t.spawn(t.collect(boundAt(from, inclusive), bound[K]{}))
}

// SubMap - entries between from and to, each end independently inclusive
func (t *tree[K, V, N]) SubMap(from K, fromInclusive bool, to K, toInclusive bool) Map[K, V] {
	return t.spawn(t.collect(boundAt(from, fromInclusive), boundAt(to, toInclusive)))
}

// Entries - snapshot of every entry in ascending key order
func (t *tree[K, V, N]) Entries() []Entry[K, V] {
	return t.collect(bound[K]{}, bound[K]{})
}

// Keys - snapshot of every key in ascending order
func (t *tree[K, V, N]) Keys() []K {
	keys := make([]K, 0, t.count)
	for k := range t.All() {
		keys = append(keys, k)
	}
	return keys
}

// Values - snapshot of every value in ascending key order
func (t *tree[K, V, N]) Values() []V {
	values := make([]V, 0, t.count)
	for _, v := range t.All() {
		values = append(values, v)
	}
	return values
}

// ContainsValue reports whether any value satisfies match
func (t *tree[K, V, N]) ContainsValue(match func(V) bool) bool {
	for _, v := range t.All() {
		if match(v) {
			return true
		}
	}
	return false
}

// Iterator - ascending cursor over the live tree
func (t *tree[K, V, N]) Iterator() Iterator[K, V] {
	return t.cursor(false)
}

// All - ascending range-over-func form of Iterator. Structural modification
// inside the loop body panics with ErrConcurrentModification.
func (t *tree[K, V, N]) All() iter.Seq2[K, V] {
	return t.seq(false)
}

// Backward - descending counterpart of All
func (t *tree[K, V, N]) Backward() iter.Seq2[K, V] {
	return t.seq(true)
}

func (t *tree[K, V, N]) seq(reverse bool) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c := t.cursor(reverse)
		for c.Next() {
			if !yield(c.key, c.value) {
				return
			}
		}
		if c.err != nil {
			panic(c.err)
		}
	}
}

// Height - number of nodes on the longest root to leaf path. Level order so
// a degenerate splay tree cannot exhaust the stack.
func (t *tree[K, V, N]) Height() int {
	if t.isNil(t.root) {
		return 0
	}
	height := 0
	level := []N{t.root}
	for len(level) > 0 {
		height++
		var next []N
		for _, n := range level {
			left, right := n.children()
			if !t.isNil(left) {
				next = append(next, left)
			}
			if !t.isNil(right) {
				next = append(next, right)
			}
		}
		level = next
	}
	return height
}

// String renders the map as {key=value, key=value}
func (t *tree[K, V, N]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for k, v := range t.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(Entry[K, V]{Key: k, Value: v}.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
