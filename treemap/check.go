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

	"github.com/cockroachdb/errors"
)

// checkOrder verifies the binary search tree order and that the entry count
// matches the number of reachable nodes
func (t *tree[K, V, N]) checkOrder() error {
	var prev K
	seen := 0
	var stack []N
	n := t.root
	for !t.isNil(n) || len(stack) > 0 {
		for !t.isNil(n) {
			stack = append(stack, n)
			n, _ = n.children()
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		k, _ := n.entry()
		if seen > 0 && cmp.Compare(prev, k) >= 0 {
			return errors.Wrapf(ErrCorrupt, "%s: key %v follows %v in order", t.kind, k, prev)
		}
		prev = k
		seen++
		_, n = n.children()
	}
	if seen != t.count {
		return errors.Wrapf(ErrCorrupt, "%s: count %d but %d reachable nodes", t.kind, t.count, seen)
	}
	return nil
}

// Check verifies order, count, stored heights and the height balance
func (m *AVLMap[K, V]) Check() error {
	if err := m.checkOrder(); err != nil {
		return err
	}
	_, err := m.checkHeights(m.root)
	return err
}

func (m *AVLMap[K, V]) checkHeights(node *avlNode[K, V]) (int, error) {
	if node == nil {
		return 0, nil
	}
	lh, err := m.checkHeights(node.left)
	if err != nil {
		return 0, err
	}
	rh, err := m.checkHeights(node.right)
	if err != nil {
		return 0, err
	}
	h := 1 + max(lh, rh)
	if node.height != h {
		return 0, errors.Wrapf(ErrCorrupt, "avl: node %v stores height %d, actual %d", node.key, node.height, h)
	}
	if d := lh - rh; d < -1 || d > 1 {
		return 0, errors.Wrapf(ErrCorrupt, "avl: node %v balance factor %d", node.key, d)
	}
	return h, nil
}

// Check verifies order, count and the left-leaning red-black rules
func (m *RBMap[K, V]) Check() error {
	if err := m.checkOrder(); err != nil {
		return err
	}
	if isRed(m.root) {
		return errors.Wrapf(ErrCorrupt, "redblack: root %v is red", m.root.key)
	}
	_, err := m.blackHeight(m.root)
	return err
}

// blackHeight returns the number of black links below node, the same on
// every path or an error
func (m *RBMap[K, V]) blackHeight(node *rbNode[K, V]) (int, error) {
	if node == nil {
		return 0, nil
	}
	if isRed(node.right) {
		return 0, errors.Wrapf(ErrCorrupt, "redblack: right leaning red link below %v", node.key)
	}
	if isRed(node) && isRed(node.left) {
		return 0, errors.Wrapf(ErrCorrupt, "redblack: two red links in a row at %v", node.key)
	}
	lb, err := m.blackHeight(node.left)
	if err != nil {
		return 0, err
	}
	rb, err := m.blackHeight(node.right)
	if err != nil {
		return 0, err
	}
	if lb != rb {
		return 0, errors.Wrapf(ErrCorrupt, "redblack: node %v black heights %d and %d", node.key, lb, rb)
	}
	if !isRed(node) {
		lb++
	}
	return lb, nil
}

// Check verifies order and count; a splay tree has no shape invariant
func (m *SplayMap[K, V]) Check() error {
	return m.checkOrder()
}

type checker interface {
	Check() error
}

func mustCheck(c checker, kind Kind) {
	if err := c.Check(); err != nil {
		panic(errors.WithAssertionFailure(errors.Wrapf(err, "%s map corrupted", kind)))
	}
}

func (m *AVLMap[K, V]) mustCheck()   { mustCheck(m, AVL) }
func (m *RBMap[K, V]) mustCheck()    { mustCheck(m, RedBlack) }
func (m *SplayMap[K, V]) mustCheck() { mustCheck(m, Splay) }
