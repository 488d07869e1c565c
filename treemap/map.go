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
	"io"
	"iter"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind selects the balancing discipline of a map
type Kind int

const (
	AVL Kind = iota
	RedBlack
	Splay
)

// Kinds lists every back-end in declaration order
func Kinds() []Kind {
	return []Kind{AVL, RedBlack, Splay}
}

func (k Kind) String() string {
	switch k {
	case AVL:
		return "avl"
	case RedBlack:
		return "redblack"
	case Splay:
		return "splay"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a balancer name (case insensitive) to its Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "avl":
		return AVL, nil
	case "rb", "redblack", "red-black", "llrb":
		return RedBlack, nil
	case "splay":
		return Splay, nil
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", name)
}

// Entry is one key/value pair
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v=%v", e.Key, e.Value)
}

// Map is the ordered-map contract shared by every back-end.
//
// Missing keys are never errors: lookups and navigation report them through
// the boolean result. Only FirstKey/LastKey on an empty map and Put with an
// invalid key return errors.
type Map[K cmp.Ordered, V any] interface {
	Kind() Kind
	Len() int
	IsEmpty() bool

	// Get returns the value stored for key. On a splay map the nearest
	// node is moved to the root.
	Get(key K) (V, bool)
	// Put inserts or overwrites; replaced reports whether key already
	// existed, in which case old holds the previous value.
	Put(key K, value V) (old V, replaced bool, err error)
	// Remove deletes key and returns its value.
	Remove(key K) (V, bool)
	ContainsKey(key K) bool
	ContainsValue(match func(V) bool) bool
	Clear()
	PutAll(src Map[K, V]) error

	// Iterator returns a lazy ascending cursor that fails fast on
	// structural modification.
	Iterator() Iterator[K, V]
	All() iter.Seq2[K, V]
	Backward() iter.Seq2[K, V]
	Keys() []K
	Values() []V
	Entries() []Entry[K, V]

	FirstKey() (K, error)
	LastKey() (K, error)
	FirstEntry() (Entry[K, V], bool)
	LastEntry() (Entry[K, V], bool)
	PollFirst() (Entry[K, V], bool)
	PollLast() (Entry[K, V], bool)
	LowerKey(key K) (K, bool)
	FloorKey(key K) (K, bool)
	CeilingKey(key K) (K, bool)
	HigherKey(key K) (K, bool)

	// Range views are materialized copies with the same Kind, later
	// changes to either map are not reflected in the other.
	HeadMap(to K, inclusive bool) Map[K, V]
	TailMap(from K, inclusive bool) Map[K, V]
	SubMap(from K, fromInclusive bool, to K, toInclusive bool) Map[K, V]

	Height() int
	Check() error
	Print(w io.Writer) int
	String() string
}

var (
	_ Map[int, string] = (*AVLMap[int, string])(nil)
	_ Map[int, string] = (*RBMap[int, string])(nil)
	_ Map[int, string] = (*SplayMap[int, string])(nil)
)

// New creates an empty map using the given balancer
func New[K cmp.Ordered, V any](kind Kind) (Map[K, V], error) {
	switch kind {
	case AVL:
		return NewAVL[K, V](), nil
	case RedBlack:
		return NewRedBlack[K, V](), nil
	case Splay:
		return NewSplay[K, V](), nil
	}
	return nil, errors.Wrapf(ErrUnknownKind, "%d", int(kind))
}

// Rebuild copies every entry of src into a new map of the requested kind
func Rebuild[K cmp.Ordered, V any](src Map[K, V], kind Kind) (Map[K, V], error) {
	dst, err := New[K, V](kind)
	if err != nil {
		return nil, err
	}
	if err := dst.PutAll(src); err != nil {
		return nil, err
	}
	return dst, nil
}

func putAll[K cmp.Ordered, V any](dst, src Map[K, V]) error {
	for _, e := range src.Entries() {
		if _, _, err := dst.Put(e.Key, e.Value); err != nil {
			return errors.Wrapf(err, "put %v", e.Key)
		}
	}
	return nil
}

func pollFirst[K cmp.Ordered, V any](m Map[K, V]) (Entry[K, V], bool) {
	e, ok := m.FirstEntry()
	if ok {
		m.Remove(e.Key)
	}
	return e, ok
}

func pollLast[K cmp.Ordered, V any](m Map[K, V]) (Entry[K, V], bool) {
	e, ok := m.LastEntry()
	if ok {
		m.Remove(e.Key)
	}
	return e, ok
}
