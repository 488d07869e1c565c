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

// error instances, compare with errors.Is
var (
	// ErrInvalidKey is returned by Put for a key that has no place in a
	// total order (a floating point NaN). Nothing is modified.
	ErrInvalidKey = errors.New("treemap: invalid key")

	// ErrEmptyMap is the "no such element" condition of FirstKey and LastKey.
	ErrEmptyMap = errors.New("treemap: map is empty")

	// ErrConcurrentModification reports that an insert, remove or clear
	// happened after an iterator was created.
	ErrConcurrentModification = errors.New("treemap: map modified during iteration")

	// ErrEndOfSequence is returned by Iterator.Step once every entry has
	// been produced.
	ErrEndOfSequence = errors.New("treemap: end of sequence")

	// ErrUnknownKind is returned when a balancer name or Kind is not recognised.
	ErrUnknownKind = errors.New("treemap: unknown balancer kind")

	// ErrCorrupt is the base of every invariant violation found by Check.
	ErrCorrupt = errors.New("treemap: invariant violated")
)

// validKey reports whether key is usable. NaN is the only ordered value
// unequal to itself.
func validKey[K cmp.Ordered](key K) bool {
	return key == key
}
