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

import "cmp"

// Iterator is a lazy cursor over a map in key order.
//
//	it := m.Iterator()
//	for it.Next() {
//		use(it.Key(), it.Value())
//	}
//	if err := it.Err(); err != nil {
//		// the map was modified while iterating
//	}
type Iterator[K cmp.Ordered, V any] interface {
	// Next advances to the next entry, false at the end or on failure
	Next() bool
	Key() K
	Value() V
	// Err is ErrConcurrentModification if the map gained or lost entries
	// since the iterator was created, nil otherwise
	Err() error
	// Step is the pull form of Next: the next entry, ErrEndOfSequence once
	// exhausted, or ErrConcurrentModification
	Step() (Entry[K, V], error)
}

// cursor keeps the path of pending ancestors on an explicit stack. It holds
// live nodes, so it checks the map's counters at every step: a structural
// change invalidates it, a shape-only change (splay reads) makes it seek
// again from the current root past the last key produced.
type cursor[K cmp.Ordered, V any, N treeNode[K, V, N]] struct {
	t       *tree[K, V, N]
	reverse bool
	stack   []N
	mods    uint64
	shape   uint64
	key     K
	value   V
	yielded bool
	done    bool
	err     error
}

func (t *tree[K, V, N]) cursor(reverse bool) *cursor[K, V, N] {
	c := &cursor[K, V, N]{
		t:       t,
		reverse: reverse,
		mods:    t.mods,
		shape:   t.shape,
	}
	c.descend(t.root)
	return c
}

// sides orders the children so that near is visited first
func (c *cursor[K, V, N]) sides(n N) (near N, far N) {
	left, right := n.children()
	if c.reverse {
		return right, left
	}
	return left, right
}

func (c *cursor[K, V, N]) descend(n N) {
	for !c.t.isNil(n) {
		c.stack = append(c.stack, n)
		n, _ = c.sides(n)
	}
}

// seek rebuilds the stack so that the next entry is the first one after
// the last key produced
func (c *cursor[K, V, N]) seek() {
	c.stack = c.stack[:0]
	if !c.yielded {
		c.descend(c.t.root)
		return
	}
	n := c.t.root
	for !c.t.isNil(n) {
		k, _ := n.entry()
		near, far := c.sides(n)
		cmpr := cmp.Compare(k, c.key)
		if c.reverse {
			cmpr = -cmpr
		}
		if cmpr > 0 {
			c.stack = append(c.stack, n)
			n = near
		} else {
			n = far
		}
	}
}

func (c *cursor[K, V, N]) Next() bool {
	if c.err != nil || c.done {
		return false
	}
	if c.t.mods != c.mods {
		c.err = ErrConcurrentModification
		return false
	}
	if c.t.shape != c.shape {
		c.seek()
		c.shape = c.t.shape
	}
	if len(c.stack) == 0 {
		c.done = true
		return false
	}
	n := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.key, c.value = n.entry()
	c.yielded = true
	_, far := c.sides(n)
	c.descend(far)
	return true
}

func (c *cursor[K, V, N]) Key() K {
	return c.key
}

func (c *cursor[K, V, N]) Value() V {
	return c.value
}

func (c *cursor[K, V, N]) Err() error {
	return c.err
}

func (c *cursor[K, V, N]) Step() (Entry[K, V], error) {
	if c.Next() {
		return Entry[K, V]{Key: c.key, Value: c.value}, nil
	}
	if c.err != nil {
		return Entry[K, V]{}, c.err
	}
	return Entry[K, V]{}, ErrEndOfSequence
}
