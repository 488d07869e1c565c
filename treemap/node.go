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
	"fmt"
)

// treeNode is what the shared navigation, iteration and printing code needs
// from a back-end node. N is the node pointer type itself.
type treeNode[K cmp.Ordered, V any, N any] interface {
	comparable
	entry() (K, V)
	children() (left N, right N)
	meta() string // balance metadata for diagrams, empty if none
}

type color bool

const (
	red   color = true
	black color = false
)

func (c color) String() string {
	if c == red {
		return "RED"
	}
	return "BLACK"
}

type avlNode[K cmp.Ordered, V any] struct {
	key    K
	value  V
	height int // 1 + max(height(left), height(right)), absent child counts 0
	left   *avlNode[K, V]
	right  *avlNode[K, V]
}

func (n *avlNode[K, V]) entry() (K, V) { return n.key, n.value }
func (n *avlNode[K, V]) children() (*avlNode[K, V], *avlNode[K, V]) {
	return n.left, n.right
}
func (n *avlNode[K, V]) meta() string { return fmt.Sprintf("h=%d", n.height) }

// rbNode.color is the color of the link from the parent
type rbNode[K cmp.Ordered, V any] struct {
	key   K
	value V
	color color
	left  *rbNode[K, V]
	right *rbNode[K, V]
}

func (n *rbNode[K, V]) entry() (K, V) { return n.key, n.value }
func (n *rbNode[K, V]) children() (*rbNode[K, V], *rbNode[K, V]) {
	return n.left, n.right
}
func (n *rbNode[K, V]) meta() string { return n.color.String() }

type splayNode[K cmp.Ordered, V any] struct {
	key   K
	value V
	left  *splayNode[K, V]
	right *splayNode[K, V]
}

func (n *splayNode[K, V]) entry() (K, V) { return n.key, n.value }
func (n *splayNode[K, V]) children() (*splayNode[K, V], *splayNode[K, V]) {
	return n.left, n.right
}
func (n *splayNode[K, V]) meta() string { return "" }
