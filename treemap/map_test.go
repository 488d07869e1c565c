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
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/btree"
)

// forEachKind runs fn once per back-end on a fresh map
func forEachKind(t *testing.T, fn func(t *testing.T, m Map[int, string])) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			m, err := New[int, string](kind)
			require.NoError(t, err)
			fn(t, m)
		})
	}
}

func putKeys(t *testing.T, m Map[int, string], keys ...int) {
	t.Helper()
	for _, k := range keys {
		_, _, err := m.Put(k, "v")
		require.NoError(t, err)
	}
}

func TestPutGetRemove(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		assert.True(t, m.IsEmpty())

		old, replaced, err := m.Put(7, "seven")
		require.NoError(t, err)
		assert.False(t, replaced)
		assert.Equal(t, "", old)

		v, ok := m.Get(7)
		assert.True(t, ok)
		assert.Equal(t, "seven", v)
		assert.True(t, m.ContainsKey(7))
		assert.False(t, m.ContainsKey(8))

		_, ok = m.Get(8)
		assert.False(t, ok)

		v, ok = m.Remove(7)
		assert.True(t, ok)
		assert.Equal(t, "seven", v)
		_, ok = m.Get(7)
		assert.False(t, ok)

		// a second remove is a no-op
		_, ok = m.Remove(7)
		assert.False(t, ok)
		assert.Equal(t, 0, m.Len())
		assert.NoError(t, m.Check())
	})
}

func TestPutOverwriteKeepsSize(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		putKeys(t, m, 3, 1, 2)
		old, replaced, err := m.Put(2, "two")
		require.NoError(t, err)
		assert.True(t, replaced)
		assert.Equal(t, "v", old)
		assert.Equal(t, 3, m.Len())

		v, _ := m.Get(2)
		assert.Equal(t, "two", v)
	})
}

func TestPutRejectsNaN(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			m, err := New[float64, int](kind)
			require.NoError(t, err)
			_, _, err = m.Put(1.5, 1)
			require.NoError(t, err)

			_, _, err = m.Put(math.NaN(), 2)
			assert.True(t, errors.Is(err, ErrInvalidKey))
			assert.Equal(t, 1, m.Len())
			assert.Equal(t, []float64{1.5}, m.Keys())

			// infinities are ordinary keys
			_, _, err = m.Put(math.Inf(-1), 3)
			assert.NoError(t, err)
			first, err := m.FirstKey()
			require.NoError(t, err)
			assert.True(t, math.IsInf(first, -1))
		})
	}
}

func TestEmptyMapEnds(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		_, err := m.FirstKey()
		assert.True(t, errors.Is(err, ErrEmptyMap))
		_, err = m.LastKey()
		assert.True(t, errors.Is(err, ErrEmptyMap))

		_, ok := m.FirstEntry()
		assert.False(t, ok)
		_, ok = m.PollLast()
		assert.False(t, ok)
		_, ok = m.FloorKey(1)
		assert.False(t, ok)

		assert.Equal(t, 0, m.Height())
		assert.Equal(t, "{}", m.String())
		assert.Empty(t, m.Entries())
		assert.Equal(t, 0, m.HeadMap(10, true).Len())
	})
}

func TestClear(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		putKeys(t, m, 5, 3, 8)
		m.Clear()
		assert.Equal(t, 0, m.Len())
		assert.True(t, m.IsEmpty())
		assert.False(t, m.ContainsKey(5))
		assert.NoError(t, m.Check())

		// still usable
		putKeys(t, m, 1)
		assert.Equal(t, 1, m.Len())
	})
}

func TestStringRendering(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		m.Put(2, "b")
		m.Put(1, "a")
		assert.Equal(t, "{1=a, 2=b}", m.String())
	})
}

func TestFirstLastAndPoll(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		for _, k := range []int{40, 10, 30, 20} {
			m.Put(k, "")
		}
		first, err := m.FirstKey()
		require.NoError(t, err)
		assert.Equal(t, 10, first)
		last, err := m.LastKey()
		require.NoError(t, err)
		assert.Equal(t, 40, last)

		e, ok := m.PollFirst()
		assert.True(t, ok)
		assert.Equal(t, 10, e.Key)
		e, ok = m.PollLast()
		assert.True(t, ok)
		assert.Equal(t, 40, e.Key)
		assert.Equal(t, []int{20, 30}, m.Keys())
		assert.NoError(t, m.Check())
	})
}

func TestKeysValuesEntries(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		m.Put(3, "c")
		m.Put(1, "a")
		m.Put(2, "b")
		assert.Equal(t, []int{1, 2, 3}, m.Keys())
		assert.Equal(t, []string{"a", "b", "c"}, m.Values())
		assert.Equal(t, []Entry[int, string]{{1, "a"}, {2, "b"}, {3, "c"}}, m.Entries())

		assert.True(t, m.ContainsValue(func(v string) bool { return v == "b" }))
		assert.False(t, m.ContainsValue(func(v string) bool { return v == "z" }))
	})
}

func TestPutAllAndRebuild(t *testing.T) {
	src := NewAVL[int, string]()
	for i := 0; i < 50; i++ {
		src.Put(i, "x")
	}
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			dst, err := Rebuild[int, string](src, kind)
			require.NoError(t, err)
			assert.Equal(t, kind, dst.Kind())
			assert.Equal(t, src.Entries(), dst.Entries())
			assert.NoError(t, dst.Check())

			// PutAll overwrites shared keys and keeps the rest
			other, _ := New[int, string](kind)
			other.Put(10, "old")
			other.Put(100, "kept")
			require.NoError(t, other.PutAll(src))
			assert.Equal(t, 51, other.Len())
			v, _ := other.Get(10)
			assert.Equal(t, "x", v)
		})
	}
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		Input string
		Kind  Kind
		Err   bool
	}{
		{"avl", AVL, false},
		{"AVL", AVL, false},
		{"rb", RedBlack, false},
		{"llrb", RedBlack, false},
		{" red-black ", RedBlack, false},
		{"splay", Splay, false},
		{"btree", 0, true},
		{"", 0, true},
	}
	for _, tc := range testCases {
		got, err := ParseKind(tc.Input)
		if tc.Err {
			assert.True(t, errors.Is(err, ErrUnknownKind), "input %q", tc.Input)
			continue
		}
		require.NoError(t, err, "input %q", tc.Input)
		assert.Equal(t, tc.Kind, got)
	}

	_, err := New[int, int](Kind(9))
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestNavigation(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		putKeys(t, m, 10, 20, 30, 40)

		testCases := []struct {
			Name  string
			Query func(int) (int, bool)
			Key   int
			Want  int
			Found bool
		}{
			{"floor between", m.FloorKey, 25, 20, true},
			{"ceiling between", m.CeilingKey, 25, 30, true},
			{"floor exact", m.FloorKey, 30, 30, true},
			{"ceiling exact", m.CeilingKey, 30, 30, true},
			{"lower exact", m.LowerKey, 30, 20, true},
			{"higher exact", m.HigherKey, 30, 40, true},
			{"lower at min", m.LowerKey, 10, 0, false},
			{"higher at max", m.HigherKey, 40, 0, false},
			{"floor below all", m.FloorKey, 5, 0, false},
			{"ceiling above all", m.CeilingKey, 45, 0, false},
			{"floor above all", m.FloorKey, 99, 40, true},
			{"ceiling below all", m.CeilingKey, -1, 10, true},
		}
		for _, tc := range testCases {
			got, ok := tc.Query(tc.Key)
			assert.Equal(t, tc.Found, ok, tc.Name)
			if tc.Found {
				assert.Equal(t, tc.Want, got, tc.Name)
			}
		}
	})
}

func TestRangeViews(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		putKeys(t, m, 10, 20, 30, 40)

		testCases := []struct {
			Name string
			View Map[int, string]
			Want []int
		}{
			{"head exclusive", m.HeadMap(30, false), []int{10, 20}},
			{"head inclusive", m.HeadMap(30, true), []int{10, 20, 30}},
			{"head between", m.HeadMap(25, false), []int{10, 20}},
			{"tail inclusive", m.TailMap(30, true), []int{30, 40}},
			{"tail exclusive", m.TailMap(30, false), []int{40}},
			{"sub closed", m.SubMap(10, true, 40, true), []int{10, 20, 30, 40}},
			{"sub half open", m.SubMap(10, true, 40, false), []int{10, 20, 30}},
			{"sub open", m.SubMap(10, false, 40, false), []int{20, 30}},
			{"sub single", m.SubMap(20, true, 20, true), []int{20}},
			{"sub empty point", m.SubMap(20, false, 20, true), []int{}},
			{"sub inverted", m.SubMap(30, true, 10, true), []int{}},
			{"sub outside", m.SubMap(41, true, 99, true), []int{}},
		}
		for _, tc := range testCases {
			assert.Equal(t, m.Kind(), tc.View.Kind(), tc.Name)
			assert.Equal(t, tc.Want, tc.View.Keys(), tc.Name)
			assert.NoError(t, tc.View.Check(), tc.Name)
		}

		// views are copies
		head := m.HeadMap(30, false)
		m.Remove(10)
		head.Put(15, "new")
		assert.Equal(t, []int{10, 15, 20}, head.Keys())
		assert.Equal(t, []int{20, 30, 40}, m.Keys())
	})
}

func TestRangeViewsKeepBackend(t *testing.T) {
	for _, m := range []Map[int, string]{NewAVL[int, string](), NewRedBlack[int, string](), NewSplay[int, string]()} {
		putKeys(t, m, 1, 2, 3)
		views := []Map[int, string]{m.HeadMap(3, true), m.TailMap(1, true), m.SubMap(1, true, 3, true)}
		for _, view := range views {
			assert.IsType(t, m, view, m.Kind().String())
			assert.Equal(t, []int{1, 2, 3}, view.Keys())
		}
	}

	// a tree of an unknown kind cannot silently change balancer
	broken := &tree[int, string, *avlNode[int, string]]{kind: Kind(9)}
	assert.Panics(t, func() { broken.HeadMap(1, true) })
}

func TestIterator(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		putKeys(t, m, 3, 1, 4, 5, 9, 2, 6)
		var got []int
		it := m.Iterator()
		for it.Next() {
			got = append(got, it.Key())
		}
		assert.NoError(t, it.Err())
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 9}, got)

		var back []int
		for k := range m.Backward() {
			back = append(back, k)
		}
		assert.Equal(t, []int{9, 6, 5, 4, 3, 2, 1}, back)
	})
}

func TestIteratorStep(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		_, err := m.Iterator().Step()
		assert.True(t, errors.Is(err, ErrEndOfSequence))

		m.Put(1, "a")
		m.Put(2, "b")
		it := m.Iterator()
		e, err := it.Step()
		require.NoError(t, err)
		assert.Equal(t, Entry[int, string]{1, "a"}, e)
		e, err = it.Step()
		require.NoError(t, err)
		assert.Equal(t, 2, e.Key)
		_, err = it.Step()
		assert.True(t, errors.Is(err, ErrEndOfSequence))
		_, err = it.Step()
		assert.True(t, errors.Is(err, ErrEndOfSequence))
	})
}

func TestIteratorFailsFast(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		putKeys(t, m, 1, 2, 3)

		it := m.Iterator()
		require.True(t, it.Next())
		m.Put(4, "v")
		assert.False(t, it.Next())
		assert.True(t, errors.Is(it.Err(), ErrConcurrentModification))
		_, err := it.Step()
		assert.True(t, errors.Is(err, ErrConcurrentModification))

		// failure surfaces at the next step, not at creation
		it = m.Iterator()
		m.Remove(4)
		_, err = it.Step()
		assert.True(t, errors.Is(err, ErrConcurrentModification))

		it = m.Iterator()
		m.Clear()
		assert.False(t, it.Next())
		assert.True(t, errors.Is(it.Err(), ErrConcurrentModification))
	})
}

func TestIteratorSurvivesOverwrite(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		putKeys(t, m, 1, 2, 3)
		var got []string
		it := m.Iterator()
		for it.Next() {
			m.Put(it.Key(), "w")
			got = append(got, it.Value())
		}
		assert.NoError(t, it.Err())
		assert.Len(t, got, 3)
		assert.Equal(t, []string{"w", "w", "w"}, m.Values())
	})
}

func TestIteratorSurvivesReads(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		keys := rand.New(rand.NewSource(3)).Perm(100)
		putKeys(t, m, keys...)

		// on a splay map every Get reshapes the tree under the cursor
		r := rand.New(rand.NewSource(4))
		var got []int
		it := m.Iterator()
		for it.Next() {
			got = append(got, it.Key())
			m.Get(r.Intn(120))
			m.ContainsKey(it.Key())
		}
		require.NoError(t, it.Err())
		assert.Equal(t, ascending(100), got)

		var back []int
		for k := range m.Backward() {
			back = append(back, k)
			m.Get(r.Intn(120))
		}
		assert.Equal(t, descending(100), back)
	})
}

func TestAllPanicsOnModification(t *testing.T) {
	forEachKind(t, func(t *testing.T, m Map[int, string]) {
		putKeys(t, m, 1, 2, 3)
		assert.PanicsWithError(t, ErrConcurrentModification.Error(), func() {
			for k := range m.All() {
				m.Remove(k)
			}
		})

		// breaking out early is fine
		n := 0
		for range m.All() {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})
}

func TestPrint(t *testing.T) {
	m := NewAVL[int, string]()
	m.Put(10, "a")
	m.Put(20, "b")
	m.Put(30, "c")
	var buf bytes.Buffer
	h := m.Print(&buf)
	assert.Equal(t, 2, h)
	assert.Equal(t, ""+
		"       /------+ 30=c h=1\n"+
		"|------+ 20=b h=2\n"+
		"       \\------+ 10=a h=1\n", buf.String())

	rb := NewRedBlack[int, string]()
	rb.Put(10, "a")
	rb.Put(20, "b")
	buf.Reset()
	assert.Equal(t, 2, rb.Print(&buf))
	assert.Equal(t, ""+
		"|------+ 20=b BLACK\n"+
		"       \\------+ 10=a RED\n", buf.String())

	sp := NewSplay[int, string]()
	sp.Put(1, "a")
	buf.Reset()
	assert.Equal(t, 1, sp.Print(&buf))
	assert.Equal(t, "|------+ 1=a\n", buf.String())

	buf.Reset()
	assert.Equal(t, 0, NewSplay[int, string]().Print(&buf))
	assert.Empty(t, buf.String())
}

// TestAgainstBTree drives every back-end and a tidwall/btree map with the
// same random workload and compares them after each step
func TestAgainstBTree(t *testing.T) {
	const (
		steps    = 4000
		keySpace = 500
	)
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			m, err := New[int, int](kind)
			require.NoError(t, err)
			var oracle btree.Map[int, int]
			r := rand.New(rand.NewSource(int64(kind) + 1))

			for i := 0; i < steps; i++ {
				k := r.Intn(keySpace)
				switch op := r.Intn(10); {
				case op < 5:
					oldWant, replacedWant := oracle.Set(k, i)
					old, replaced, err := m.Put(k, i)
					require.NoError(t, err)
					require.Equal(t, replacedWant, replaced, "put %d", k)
					require.Equal(t, oldWant, old, "put %d", k)
				case op < 8:
					want, foundWant := oracle.Delete(k)
					got, found := m.Remove(k)
					require.Equal(t, foundWant, found, "remove %d", k)
					require.Equal(t, want, got, "remove %d", k)
				default:
					want, foundWant := oracle.Get(k)
					got, found := m.Get(k)
					require.Equal(t, foundWant, found, "get %d", k)
					require.Equal(t, want, got, "get %d", k)
				}
				require.Equal(t, oracle.Len(), m.Len())
				require.NoError(t, m.Check(), "step %d", i)

				if i%100 == 0 {
					compareNavigation(t, &oracle, m, r.Intn(keySpace))
				}
			}

			var want []int
			oracle.Scan(func(k, _ int) bool {
				want = append(want, k)
				return true
			})
			if want == nil {
				want = []int{}
			}
			assert.Equal(t, want, m.Keys())
		})
	}
}

func compareNavigation(t *testing.T, oracle *btree.Map[int, int], m Map[int, int], probe int) {
	t.Helper()

	floor, floorOK := 0, false
	lower, lowerOK := 0, false
	oracle.Descend(probe, func(k, _ int) bool {
		if !floorOK {
			floor, floorOK = k, true
		}
		if k < probe {
			lower, lowerOK = k, true
			return false
		}
		return true
	})
	ceil, ceilOK := 0, false
	higher, higherOK := 0, false
	oracle.Ascend(probe, func(k, _ int) bool {
		if !ceilOK {
			ceil, ceilOK = k, true
		}
		if k > probe {
			higher, higherOK = k, true
			return false
		}
		return true
	})

	got, ok := m.FloorKey(probe)
	require.Equal(t, floorOK, ok, "floor %d", probe)
	require.Equal(t, floor, got, "floor %d", probe)
	got, ok = m.LowerKey(probe)
	require.Equal(t, lowerOK, ok, "lower %d", probe)
	require.Equal(t, lower, got, "lower %d", probe)
	got, ok = m.CeilingKey(probe)
	require.Equal(t, ceilOK, ok, "ceiling %d", probe)
	require.Equal(t, ceil, got, "ceiling %d", probe)
	got, ok = m.HigherKey(probe)
	require.Equal(t, higherOK, ok, "higher %d", probe)
	require.Equal(t, higher, got, "higher %d", probe)

	var tail []int
	oracle.Ascend(probe, func(k, _ int) bool {
		tail = append(tail, k)
		return true
	})
	if tail == nil {
		tail = []int{}
	}
	require.Equal(t, tail, m.TailMap(probe, true).Keys(), "tail %d", probe)

	if minKey, _, ok := oracle.Min(); ok {
		first, err := m.FirstKey()
		require.NoError(t, err)
		require.Equal(t, minKey, first)
	}
	if maxKey, _, ok := oracle.Max(); ok {
		last, err := m.LastKey()
		require.NoError(t, err)
		require.Equal(t, maxKey, last)
	}
}
