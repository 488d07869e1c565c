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
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/btree"

	"github.com/cybrota/arbor/treemap"
)

// navigation queries are compared with the reference every navigationEvery steps
const navigationEvery = 64

// FuzzReport is the outcome of fuzzing one balancer
type FuzzReport struct {
	Kind      treemap.Kind
	Steps     int // steps completed before a failure, or all of them
	MaxHeight int
	MaxSize   int
	Err       error
}

// fuzzKind applies random inserts and deletes to a map of the given kind,
// verifying its invariants after every step and comparing its contents
// with a B-tree fed the same operations
func fuzzKind(kind treemap.Kind, steps, keySpace int, seed int64, show bool) FuzzReport {
	report := FuzzReport{Kind: kind}
	m, err := treemap.New[int, int](kind)
	if err != nil {
		report.Err = err
		return report
	}
	var ref btree.Map[int, int]

	bar := newProgressBar(steps, fmt.Sprintf("🔎 %-8s", kind), show)
	defer func() {
		if bar != nil {
			bar.Finish()
		}
	}()

	r := rand.New(rand.NewSource(seed))
	for i := 0; i < steps; i++ {
		k := r.Intn(keySpace)
		var desc string
		if r.Intn(5) < 3 {
			desc = fmt.Sprintf("put %d", k)
			_, replaced, err := m.Put(k, i)
			if err != nil {
				report.Err = errors.Wrapf(err, "step %d: %s", i, desc)
				return report
			}
			if _, refReplaced := ref.Set(k, i); refReplaced != replaced {
				report.Err = errors.Newf("step %d: %s: replaced=%t, reference says %t", i, desc, replaced, refReplaced)
				return report
			}
		} else {
			desc = fmt.Sprintf("remove %d", k)
			_, found := m.Remove(k)
			if _, refFound := ref.Delete(k); refFound != found {
				report.Err = errors.Newf("step %d: %s: found=%t, reference says %t", i, desc, found, refFound)
				return report
			}
		}

		if err := m.Check(); err != nil {
			report.Err = errors.Wrapf(err, "step %d: after %s", i, desc)
			return report
		}
		if m.Len() != ref.Len() {
			report.Err = errors.Newf("step %d: after %s: size %d, reference %d", i, desc, m.Len(), ref.Len())
			return report
		}
		if i%navigationEvery == 0 {
			// query keys may fall just outside the key space
			if err := checkNavigation(m, &ref, r.Intn(keySpace+2)-1, keySpace); err != nil {
				report.Err = errors.Wrapf(err, "step %d: after %s", i, desc)
				return report
			}
		}
		report.Steps = i + 1
		report.MaxHeight = max(report.MaxHeight, m.Height())
		report.MaxSize = max(report.MaxSize, m.Len())
		if bar != nil {
			bar.Add(1)
		}
	}

	if err := sameContents(m, &ref); err != nil {
		report.Err = err
	}
	return report
}

// checkNavigation compares the navigation queries, range views and extremes
// of m at key with the answers derived from ref
func checkNavigation(m treemap.Map[int, int], ref *btree.Map[int, int], key, keySpace int) error {
	type answer struct {
		key int
		ok  bool
	}
	var floor, lower, ceiling, higher answer
	ref.Descend(key, func(k, _ int) bool {
		if !floor.ok {
			floor = answer{k, true}
		}
		if k < key {
			lower = answer{k, true}
			return false
		}
		return true
	})
	ref.Ascend(key, func(k, _ int) bool {
		if !ceiling.ok {
			ceiling = answer{k, true}
		}
		if k > key {
			higher = answer{k, true}
			return false
		}
		return true
	})

	queries := []struct {
		name  string
		query func(int) (int, bool)
		want  answer
	}{
		{"floor", m.FloorKey, floor},
		{"lower", m.LowerKey, lower},
		{"ceiling", m.CeilingKey, ceiling},
		{"higher", m.HigherKey, higher},
	}
	for _, q := range queries {
		got, ok := q.query(key)
		if ok != q.want.ok || (ok && got != q.want.key) {
			return errors.Newf("%s %d = %d, %t; reference %d, %t", q.name, key, got, ok, q.want.key, q.want.ok)
		}
	}

	span := max(keySpace/10, 1)
	views := []struct {
		name string
		got  treemap.Map[int, int]
		want []int
	}{
		{"head", m.HeadMap(key, false), refKeys(ref, math.MinInt, key)},
		{"tail", m.TailMap(key, true), refKeys(ref, key, math.MaxInt)},
		{"sub", m.SubMap(key, true, key+span, false), refKeys(ref, key, key+span)},
	}
	for _, v := range views {
		if got := v.got.Keys(); !slices.Equal(got, v.want) {
			return errors.Newf("%s %d = %v; reference %v", v.name, key, got, v.want)
		}
	}

	first, firstErr := m.FirstKey()
	last, lastErr := m.LastKey()
	minKey, _, ok := ref.Min()
	if !ok {
		if !errors.Is(firstErr, treemap.ErrEmptyMap) || !errors.Is(lastErr, treemap.ErrEmptyMap) {
			return errors.Newf("first/last on an empty map: %v, %v", firstErr, lastErr)
		}
		return nil
	}
	maxKey, _, _ := ref.Max()
	if firstErr != nil || lastErr != nil || first != minKey || last != maxKey {
		return errors.Newf("first/last = %d, %d (%v, %v); reference %d, %d", first, last, firstErr, lastErr, minKey, maxKey)
	}
	return nil
}

// refKeys lists the reference keys in [lo, hi)
func refKeys(ref *btree.Map[int, int], lo, hi int) []int {
	keys := []int{}
	ref.Ascend(lo, func(k, _ int) bool {
		if k >= hi {
			return false
		}
		keys = append(keys, k)
		return true
	})
	return keys
}

// sameContents walks both maps in order and reports the first difference
func sameContents(m treemap.Map[int, int], ref *btree.Map[int, int]) error {
	it := m.Iterator()
	var diff error
	ref.Scan(func(k, v int) bool {
		if !it.Next() {
			diff = errors.Newf("missing key %d", k)
			return false
		}
		if it.Key() != k || it.Value() != v {
			diff = errors.Newf("found %d=%d, reference has %d=%d", it.Key(), it.Value(), k, v)
			return false
		}
		return true
	})
	if diff != nil {
		return diff
	}
	if it.Next() {
		return errors.Newf("unexpected key %d", it.Key())
	}
	return it.Err()
}

// runFuzz fuzzes every kind with the same seed
func runFuzz(kinds []treemap.Kind, steps, keySpace int, seed int64, show bool) []FuzzReport {
	var reports []FuzzReport
	for _, kind := range kinds {
		report := fuzzKind(kind, steps, keySpace, seed, show)
		entry := logrus.WithFields(logrus.Fields{
			"kind":       kind,
			"steps":      report.Steps,
			"max_height": report.MaxHeight,
		})
		if report.Err != nil {
			entry.WithError(report.Err).Error("invariant violated")
		} else {
			entry.Info("fuzz run passed")
		}
		reports = append(reports, report)
	}
	return reports
}
