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

// RBMap is a left-leaning red-black tree: a binary encoding of a 2-3 tree
// where a red node is glued to its parent as part of one 3-node. Red links
// lean left, no node has two red links in a row and every path from the
// root to an absent child crosses the same number of black links.
type RBMap[K cmp.Ordered, V any] struct {
	tree[K, V, *rbNode[K, V]]
}

// NewRedBlack - create an initially empty red-black map
func NewRedBlack[K cmp.Ordered, V any]() *RBMap[K, V] {
	return &RBMap[K, V]{tree: tree[K, V, *rbNode[K, V]]{kind: RedBlack}}
}

func isRed[K cmp.Ordered, V any](node *rbNode[K, V]) bool {
	return node != nil && node.color == red
}

// rotateLeft turns a right-leaning red link into a left-leaning one
func (m *RBMap[K, V]) rotateLeft(node *rbNode[K, V]) *rbNode[K, V] {
	pivot := node.right
	node.right = pivot.left
	pivot.left = node
	pivot.color = node.color
	node.color = red
	return pivot
}

func (m *RBMap[K, V]) rotateRight(node *rbNode[K, V]) *rbNode[K, V] {
	pivot := node.left
	node.left = pivot.right
	pivot.right = node
	pivot.color = node.color
	node.color = red
	return pivot
}

// flipColors inverts a node and both children: splits a temporary 4-node
// on the way up, merges siblings into one on the way down
func (m *RBMap[K, V]) flipColors(node *rbNode[K, V]) {
	node.color = !node.color
	node.left.color = !node.left.color
	node.right.color = !node.right.color
}

// balance restores the left-leaning shape of a subtree on the way up
func (m *RBMap[K, V]) balance(node *rbNode[K, V]) *rbNode[K, V] {
	if isRed(node.right) && !isRed(node.left) {
		node = m.rotateLeft(node)
	}
	if isRed(node.left) && isRed(node.left.left) {
		node = m.rotateRight(node)
	}
	if isRed(node.left) && isRed(node.right) {
		m.flipColors(node)
	}
	return node
}

// Get looks up key without changing the tree
func (m *RBMap[K, V]) Get(key K) (V, bool) {
	if n, ok := m.find(key); ok {
		return n.value, true
	}
	var none V
	return none, false
}

func (m *RBMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.find(key)
	return ok
}

// Put inserts key or overwrites its value
func (m *RBMap[K, V]) Put(key K, value V) (old V, replaced bool, err error) {
	if !validKey(key) {
		return old, false, ErrInvalidKey
	}
	m.root = m.insert(m.root, key, value, &old, &replaced)
	m.root.color = black
	if !replaced {
		m.count++
		m.mods++
	}
	if invariantsEnabled {
		m.mustCheck()
	}
	return old, replaced, nil
}

func (m *RBMap[K, V]) insert(node *rbNode[K, V], key K, value V, old *V, replaced *bool) *rbNode[K, V] {
	if node == nil {
		return &rbNode[K, V]{key: key, value: value, color: red}
	}

	switch c := cmp.Compare(key, node.key); {
	case c < 0:
		node.left = m.insert(node.left, key, value, old, replaced)
	case c > 0:
		node.right = m.insert(node.right, key, value, old, replaced)
	default:
		*old, *replaced = node.value, true
		node.value = value
		return node
	}

	return m.balance(node)
}

// Remove deletes key and returns the value it held
func (m *RBMap[K, V]) Remove(key K) (V, bool) {
	// the delete walk relies on the key being present
	n, ok := m.find(key)
	if !ok {
		var none V
		return none, false
	}
	old := n.value

	if !isRed(m.root.left) && !isRed(m.root.right) {
		m.root.color = red
	}
	m.root = m.delete(m.root, key)
	if m.root != nil {
		m.root.color = black
	}
	m.count--
	m.mods++
	if invariantsEnabled {
		m.mustCheck()
	}
	return old, true
}

// moveRedLeft borrows a red link so that node.left or one of its children
// is red before the walk descends left
func (m *RBMap[K, V]) moveRedLeft(node *rbNode[K, V]) *rbNode[K, V] {
	m.flipColors(node)
	if isRed(node.right.left) {
		node.right = m.rotateRight(node.right)
		node = m.rotateLeft(node)
		m.flipColors(node)
	}
	return node
}

// moveRedRight is the mirror of moveRedLeft for a walk going right
func (m *RBMap[K, V]) moveRedRight(node *rbNode[K, V]) *rbNode[K, V] {
	m.flipColors(node)
	if isRed(node.left.left) {
		node = m.rotateRight(node)
		m.flipColors(node)
	}
	return node
}

func (m *RBMap[K, V]) deleteMin(node *rbNode[K, V]) *rbNode[K, V] {
	if node.left == nil {
		return nil
	}
	if !isRed(node.left) && !isRed(node.left.left) {
		node = m.moveRedLeft(node)
	}
	node.left = m.deleteMin(node.left)
	return m.balance(node)
}

func (m *RBMap[K, V]) delete(node *rbNode[K, V], key K) *rbNode[K, V] {
	if cmp.Less(key, node.key) {
		if !isRed(node.left) && !isRed(node.left.left) {
			node = m.moveRedLeft(node)
		}
		node.left = m.delete(node.left, key)
		return m.balance(node)
	}

	if isRed(node.left) {
		node = m.rotateRight(node)
	}
	// the rotation may have changed which node holds key, so compare again
	if cmp.Compare(key, node.key) == 0 && node.right == nil {
		return nil
	}
	if !isRed(node.right) && !isRed(node.right.left) {
		node = m.moveRedRight(node)
	}
	if cmp.Compare(key, node.key) == 0 {
		successor := node.right
		for successor.left != nil {
			successor = successor.left
		}
		node.key = successor.key
		node.value = successor.value
		node.right = m.deleteMin(node.right)
	} else {
		node.right = m.delete(node.right, key)
	}
	return m.balance(node)
}

func (m *RBMap[K, V]) PutAll(src Map[K, V]) error {
	return putAll[K, V](m, src)
}

func (m *RBMap[K, V]) PollFirst() (Entry[K, V], bool) {
	return pollFirst[K, V](m)
}

func (m *RBMap[K, V]) PollLast() (Entry[K, V], bool) {
	return pollLast[K, V](m)
}
