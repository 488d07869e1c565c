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
	"fmt"
	"io"
)

// to control the print routine
type branch int

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

// Print draws the tree sideways, right subtree on top, one node per line:
//
//	       /------+ 30=c h=1
//	|------+ 20=b h=2
//	       \------+ 10=a h=1
//
// It returns the height of the tree.
func (t *tree[K, V, N]) Print(w io.Writer) int {
	return t.printTree(w, t.root, "", rootBranch)
}

func (t *tree[K, V, N]) printTree(w io.Writer, node N, prefix string, br branch) int {
	if t.isNil(node) {
		return 0
	}
	left, right := node.children()
	rd := 0
	ld := 0
	if !t.isNil(right) {
		p := "       "
		if br == leftBranch {
			p = "|      "
		}
		rd = t.printTree(w, right, prefix+p, rightBranch)
	}
	switch br {
	case rootBranch:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case leftBranch:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case rightBranch:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	k, v := node.entry()
	if meta := node.meta(); meta != "" {
		fmt.Fprintf(w, "%v=%v %s\n", k, v, meta)
	} else {
		fmt.Fprintf(w, "%v=%v\n", k, v)
	}
	if !t.isNil(left) {
		p := "       "
		if br == rightBranch {
			p = "|      "
		}
		ld = t.printTree(w, left, prefix+p, leftBranch)
	}
	return 1 + max(ld, rd)
}
