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

package main

import (
	"encoding/binary"
	"math/rand"

	"github.com/willf/bloom"
)

type opKind int

const (
	opPut opKind = iota
	opGet
	opRemove
)

func (o opKind) String() string {
	switch o {
	case opPut:
		return "put"
	case opGet:
		return "get"
	default:
		return "remove"
	}
}

// op is one step of a workload. absent marks a lookup of a key that was
// never inserted.
type op struct {
	kind   opKind
	key    int
	absent bool
}

// workload is a fixed sequence of operations, replayed unchanged on every
// balancer so their timings are comparable
type workload struct {
	ops      []op
	keySpace int
	seed     int64
	absent   int
}

// maximum draws for an absent key before falling outside the key space
const absentProbeTries = 8

func keyBytes(k int) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	return b[:]
}

// generateWorkload mixes 50% puts, 30% gets and 20% removes over
// [0, keySpace). Half the gets look up a key already put; the other half
// probe a key the bloom filter proves was never put.
func generateWorkload(n, keySpace int, seed int64) *workload {
	r := rand.New(rand.NewSource(seed))
	filter := bloom.NewWithEstimates(uint(keySpace), 0.01)
	var inserted []int

	w := &workload{ops: make([]op, 0, n), keySpace: keySpace, seed: seed}
	for i := 0; i < n; i++ {
		switch p := r.Intn(10); {
		case p < 5:
			k := r.Intn(keySpace)
			filter.Add(keyBytes(k))
			inserted = append(inserted, k)
			w.ops = append(w.ops, op{kind: opPut, key: k})
		case p < 8:
			if len(inserted) > 0 && r.Intn(2) == 0 {
				w.ops = append(w.ops, op{kind: opGet, key: inserted[r.Intn(len(inserted))]})
				continue
			}
			w.ops = append(w.ops, op{kind: opGet, key: absentKey(r, filter, keySpace), absent: true})
			w.absent++
		default:
			w.ops = append(w.ops, op{kind: opRemove, key: r.Intn(keySpace)})
		}
	}
	return w
}

// absentKey draws keys until the filter rules one out. Bloom filters have
// no false negatives, so a key it has not seen was never inserted.
func absentKey(r *rand.Rand, filter *bloom.BloomFilter, keySpace int) int {
	for i := 0; i < absentProbeTries; i++ {
		k := r.Intn(keySpace)
		if !filter.Test(keyBytes(k)) {
			return k
		}
	}
	return keySpace + r.Intn(keySpace)
}
