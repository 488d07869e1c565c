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
	"testing"
)

func TestSplayGetMovesKeyToRoot(t *testing.T) {
	m := NewSplay[int, string]()
	for k := 1; k <= 7; k++ {
		m.Put(k, "")
	}
	if m.root.key != 7 {
		t.Fatalf("root after ascending inserts = %d; want 7", m.root.key)
	}

	if _, ok := m.Get(1); !ok {
		t.Fatal("Get(1) missed")
	}
	if m.root.key != 1 {
		t.Errorf("root after Get(1) = %d; want 1", m.root.key)
	}
	if err := m.Check(); err != nil {
		t.Error(err)
	}
}

func TestSplayAccessedKeyIsRoot(t *testing.T) {
	m := NewSplay[int, int]()
	keys := []int{50, 20, 80, 10, 30, 70, 90, 25, 35, 60}
	for _, k := range keys {
		m.Put(k, k)
		if m.root.key != k {
			t.Fatalf("root after Put(%d) = %d", k, m.root.key)
		}
	}
	for _, k := range []int{35, 10, 90, 60, 25} {
		m.Get(k)
		if m.root.key != k {
			t.Errorf("root after Get(%d) = %d", k, m.root.key)
		}
		m.Put(k, -k)
		if m.root.key != k {
			t.Errorf("root after overwrite Put(%d) = %d", k, m.root.key)
		}
	}
	if m.Len() != len(keys) {
		t.Errorf("Len() = %d; want %d", m.Len(), len(keys))
	}
}

func TestSplayGetMissingSplaysNeighbour(t *testing.T) {
	m := NewSplay[int, int]()
	for _, k := range []int{10, 20, 30, 40} {
		m.Put(k, k)
	}
	if _, ok := m.Get(25); ok {
		t.Fatal("Get(25) should miss")
	}
	// the last node on the search path is one of the two neighbours
	if m.root.key != 20 && m.root.key != 30 {
		t.Errorf("root after Get(25) = %d; want 20 or 30", m.root.key)
	}
	if err := m.Check(); err != nil {
		t.Error(err)
	}
}

func TestSplayRemove(t *testing.T) {
	testCases := []struct {
		Name     string
		Keys     []int
		Remove   int
		Found    bool
		Expected []int
	}{
		{"Two Children", []int{1, 2, 3, 4, 5}, 3, true, []int{1, 2, 4, 5}},
		{"Smallest", []int{3, 1, 2}, 1, true, []int{2, 3}},
		{"Largest", []int{1, 2, 3}, 3, true, []int{1, 2}},
		{"Only Key", []int{9}, 9, true, []int{}},
		{"Missing", []int{1, 3, 5}, 4, false, []int{1, 3, 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			m := NewSplay[int, int]()
			for _, k := range tc.Keys {
				m.Put(k, k*10)
			}
			v, ok := m.Remove(tc.Remove)
			if ok != tc.Found {
				t.Fatalf("Remove(%d) found = %v; want %v", tc.Remove, ok, tc.Found)
			}
			if ok && v != tc.Remove*10 {
				t.Errorf("Remove(%d) = %d; want %d", tc.Remove, v, tc.Remove*10)
			}
			got := m.Keys()
			if len(got) != len(tc.Expected) {
				t.Fatalf("Keys() = %v; want %v", got, tc.Expected)
			}
			for i := range got {
				if got[i] != tc.Expected[i] {
					t.Fatalf("Keys() = %v; want %v", got, tc.Expected)
				}
			}
			if err := m.Check(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestSplayRemoveLiftsPredecessor(t *testing.T) {
	m := NewSplay[int, int]()
	for _, k := range []int{1, 2, 3, 4, 5} {
		m.Put(k, k)
	}
	m.Remove(3)
	if m.root.key != 2 {
		t.Errorf("root after Remove(3) = %d; want predecessor 2", m.root.key)
	}
}

func TestSplayDegenerateTreeNeedsNoRecursion(t *testing.T) {
	if invariantsEnabled {
		t.Skip("quadratic when every Put re-verifies the tree")
	}
	m := NewSplay[int, int]()
	const n = 200000
	for i := 0; i < n; i++ {
		m.Put(i, i)
	}
	// ascending inserts leave a left spine n nodes deep
	if h := m.Height(); h != n {
		t.Fatalf("Height() = %d; want %d", h, n)
	}
	if _, ok := m.Get(0); !ok {
		t.Fatal("Get(0) missed")
	}
	if err := m.Check(); err != nil {
		t.Error(err)
	}
	if got := len(m.Entries()); got != n {
		t.Errorf("len(Entries()) = %d; want %d", got, n)
	}
}
