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

// AVLMap keeps every node's subtree heights within one of each other
type AVLMap[K cmp.Ordered, V any] struct {
	tree[K, V, *avlNode[K, V]]
}

// NewAVL - create an initially empty AVL map
func NewAVL[K cmp.Ordered, V any]() *AVLMap[K, V] {
	return &AVLMap[K, V]{tree: tree[K, V, *avlNode[K, V]]{kind: AVL}}
}

func (m *AVLMap[K, V]) getHeight(node *avlNode[K, V]) int {
	if node == nil {
		return 0
	}
	return node.height
}

func (m *AVLMap[K, V]) updateHeight(node *avlNode[K, V]) {
	node.height = max(m.getHeight(node.left), m.getHeight(node.right)) + 1
}

func (m *AVLMap[K, V]) getBalanceFactor(node *avlNode[K, V]) int {
	if node == nil {
		return 0
	}
	return m.getHeight(node.left) - m.getHeight(node.right)
}

func (m *AVLMap[K, V]) rotateLeft(node *avlNode[K, V]) *avlNode[K, V] {
	pivot := node.right

	node.right = pivot.left
	pivot.left = node

	// node is now below pivot, so its height goes first
	m.updateHeight(node)
	m.updateHeight(pivot)

	return pivot
}

func (m *AVLMap[K, V]) rotateRight(node *avlNode[K, V]) *avlNode[K, V] {
	pivot := node.left

	node.left = pivot.right
	pivot.right = node

	m.updateHeight(node)
	m.updateHeight(pivot)

	return pivot
}

// Get looks up key without changing the tree
func (m *AVLMap[K, V]) Get(key K) (V, bool) {
	if n, ok := m.find(key); ok {
		return n.value, true
	}
	var none V
	return none, false
}

func (m *AVLMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.find(key)
	return ok
}

// Put inserts key or overwrites its value
func (m *AVLMap[K, V]) Put(key K, value V) (old V, replaced bool, err error) {
	if !validKey(key) {
		return old, false, ErrInvalidKey
	}
	m.root = m.insertRecursive(m.root, key, value, &old, &replaced)
	if !replaced {
		m.count++
		m.mods++
	}
	if invariantsEnabled {
		m.mustCheck()
	}
	return old, replaced, nil
}

func (m *AVLMap[K, V]) insertRecursive(node *avlNode[K, V], key K, value V, old *V, replaced *bool) *avlNode[K, V] {
	if node == nil {
		return &avlNode[K, V]{key: key, value: value, height: 1}
	}

	switch c := cmp.Compare(key, node.key); {
	case c < 0:
		node.left = m.insertRecursive(node.left, key, value, old, replaced)
	case c > 0:
		node.right = m.insertRecursive(node.right, key, value, old, replaced)
	default:
		// existing key: new value, same shape
		*old, *replaced = node.value, true
		node.value = value
		return node
	}

	m.updateHeight(node)

	balanceFactor := m.getBalanceFactor(node)
	if balanceFactor > 1 {
		if key < node.left.key {
			return m.rotateRight(node)
		}
		// Left-Right case
		node.left = m.rotateLeft(node.left)
		return m.rotateRight(node)
	} else if balanceFactor < -1 {
		if key > node.right.key {
			return m.rotateLeft(node)
		}
		// Right-Left case
		node.right = m.rotateRight(node.right)
		return m.rotateLeft(node)
	}

	return node
}

// Remove deletes key and returns the value it held
func (m *AVLMap[K, V]) Remove(key K) (V, bool) {
	var old V
	var found bool
	m.root = m.deleteRecursive(m.root, key, &old, &found)
	if found {
		m.count--
		m.mods++
	}
	if invariantsEnabled {
		m.mustCheck()
	}
	return old, found
}

func (m *AVLMap[K, V]) deleteRecursive(node *avlNode[K, V], key K, old *V, found *bool) *avlNode[K, V] {
	if node == nil {
		return nil // Key not found
	}

	switch c := cmp.Compare(key, node.key); {
	case c < 0:
		node.left = m.deleteRecursive(node.left, key, old, found)
	case c > 0:
		node.right = m.deleteRecursive(node.right, key, old, found)
	default:
		*old, *found = node.value, true
		if node.left == nil {
			return node.right
		}
		if node.right == nil {
			return node.left
		}
		// Two children: take over the in-order successor's entry
		pivot := m.findMin(node.right)
		node.key = pivot.key
		node.value = pivot.value
		node.right = m.deleteMin(node.right)
	}

	m.updateHeight(node)
	return m.rebalance(node)
}

func (m *AVLMap[K, V]) findMin(node *avlNode[K, V]) *avlNode[K, V] {
	for node.left != nil {
		node = node.left
	}
	return node
}

func (m *AVLMap[K, V]) deleteMin(node *avlNode[K, V]) *avlNode[K, V] {
	if node.left == nil {
		return node.right
	}
	node.left = m.deleteMin(node.left)
	m.updateHeight(node)
	return m.rebalance(node)
}

// rebalance after a deletion. The removed key is gone, so the rotation is
// chosen from the balance of the heavy child.
func (m *AVLMap[K, V]) rebalance(node *avlNode[K, V]) *avlNode[K, V] {
	balanceFactor := m.getBalanceFactor(node)

	// Left-heavy
	if balanceFactor > 1 {
		if m.getBalanceFactor(node.left) >= 0 {
			return m.rotateRight(node)
		}
		node.left = m.rotateLeft(node.left)
		return m.rotateRight(node)
	}

	// Right-heavy
	if balanceFactor < -1 {
		if m.getBalanceFactor(node.right) <= 0 {
			return m.rotateLeft(node)
		}
		node.right = m.rotateRight(node.right)
		return m.rotateLeft(node)
	}

	return node
}

func (m *AVLMap[K, V]) PutAll(src Map[K, V]) error {
	return putAll[K, V](m, src)
}

func (m *AVLMap[K, V]) PollFirst() (Entry[K, V], bool) {
	return pollFirst[K, V](m)
}

func (m *AVLMap[K, V]) PollLast() (Entry[K, V], bool) {
	return pollLast[K, V](m)
}
