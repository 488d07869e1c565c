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

// SplayMap moves every accessed node to the root. There is no balance
// metadata; costs are logarithmic amortized over any sequence of operations
// but a single access can walk a long path.
type SplayMap[K cmp.Ordered, V any] struct {
	tree[K, V, *splayNode[K, V]]
}

// NewSplay - create an initially empty splay map
func NewSplay[K cmp.Ordered, V any]() *SplayMap[K, V] {
	return &SplayMap[K, V]{tree: tree[K, V, *splayNode[K, V]]{kind: Splay}}
}

// splay brings the node holding key, or the last node on its search path,
// to the top of the subtree rooted at node. Top-down: the nodes passed on
// the way are hung off a left tree (all smaller than key) and a right tree
// (all larger), a zig-zig pair is rotated before being hung, a zig-zag pair
// just falls out of linking. Iterative, so path length never matters.
func splay[K cmp.Ordered, V any](node *splayNode[K, V], key K) *splayNode[K, V] {
	if node == nil {
		return nil
	}

	// header.right collects the left tree, header.left the right tree
	var header splayNode[K, V]
	l, r := &header, &header

	for {
		c := cmp.Compare(key, node.key)
		if c < 0 {
			if node.left == nil {
				break
			}
			if cmp.Less(key, node.left.key) {
				// zig-zig: rotate right
				pivot := node.left
				node.left = pivot.right
				pivot.right = node
				node = pivot
				if node.left == nil {
					break
				}
			}
			// link right
			r.left = node
			r = node
			node = node.left
		} else if c > 0 {
			if node.right == nil {
				break
			}
			if cmp.Less(node.right.key, key) {
				// zig-zig: rotate left
				pivot := node.right
				node.right = pivot.left
				pivot.left = node
				node = pivot
				if node.right == nil {
					break
				}
			}
			// link left
			l.right = node
			l = node
			node = node.right
		} else {
			break
		}
	}

	// assemble
	l.right = node.left
	r.left = node.right
	node.left = header.right
	node.right = header.left
	return node
}

func (m *SplayMap[K, V]) splay(key K) {
	m.root = splay(m.root, key)
	m.shape++
}

// Get looks up key and moves it (or its nearest neighbour on the search
// path) to the root
func (m *SplayMap[K, V]) Get(key K) (V, bool) {
	var none V
	if m.root == nil {
		return none, false
	}
	m.splay(key)
	if cmp.Compare(key, m.root.key) != 0 {
		return none, false
	}
	return m.root.value, true
}

func (m *SplayMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Put inserts key or overwrites its value; either way key ends at the root
func (m *SplayMap[K, V]) Put(key K, value V) (old V, replaced bool, err error) {
	if !validKey(key) {
		return old, false, ErrInvalidKey
	}
	if m.root == nil {
		m.root = &splayNode[K, V]{key: key, value: value}
		m.count++
		m.mods++
		return old, false, nil
	}

	m.splay(key)
	c := cmp.Compare(key, m.root.key)
	if c == 0 {
		old = m.root.value
		m.root.value = value
		return old, true, nil
	}

	// split the old root around the new key
	node := &splayNode[K, V]{key: key, value: value}
	if c < 0 {
		node.left = m.root.left
		node.right = m.root
		m.root.left = nil
	} else {
		node.right = m.root.right
		node.left = m.root
		m.root.right = nil
	}
	m.root = node
	m.count++
	m.mods++
	if invariantsEnabled {
		m.mustCheck()
	}
	return old, false, nil
}

// Remove splays key to the root and unlinks it. The largest key of the left
// subtree becomes the new root with the old right subtree attached.
func (m *SplayMap[K, V]) Remove(key K) (V, bool) {
	var none V
	if m.root == nil {
		return none, false
	}
	m.splay(key)
	if cmp.Compare(key, m.root.key) != 0 {
		return none, false
	}

	old := m.root.value
	if m.root.left == nil {
		m.root = m.root.right
	} else {
		right := m.root.right
		// every key on the left is smaller, so this lands the maximum on top
		// with no right child
		m.root = splay(m.root.left, key)
		m.root.right = right
	}
	m.count--
	m.mods++
	if invariantsEnabled {
		m.mustCheck()
	}
	return old, true
}

func (m *SplayMap[K, V]) PutAll(src Map[K, V]) error {
	return putAll[K, V](m, src)
}

func (m *SplayMap[K, V]) PollFirst() (Entry[K, V], bool) {
	return pollFirst[K, V](m)
}

func (m *SplayMap[K, V]) PollLast() (Entry[K, V], bool) {
	return pollLast[K, V](m)
}
