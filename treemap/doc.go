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

// Package treemap implements ordered key-value maps on top of three
// self-balancing binary search trees:
//
//   - AVL: every node keeps its height and sibling heights never differ
//     by more than one.
//   - RedBlack: a left-leaning red-black tree (Sedgewick), red links lean
//     left and every root to leaf path carries the same number of black links.
//   - Splay: every access moves the touched node to the root, giving
//     amortized logarithmic cost with no balance metadata at all.
//
// All back-ends satisfy the same Map interface, so callers pick a Kind and
// never see the balancing discipline.
//
// Note: a map is not thread safe, so either access it from a single go
// routine or guard it with a mutex. A splay map mutates its shape on reads,
// so even concurrent Get calls need exclusive access.
//
// Building with the `invariants` tag re-verifies the balance invariants
// after every mutation and panics on the first violation.
package treemap
