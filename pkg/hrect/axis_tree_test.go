// Copyright 2026 The hrect Authors
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
package hrect

import (
	"cmp"
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperrect/hrect/pkg/adt"
)

// checkMaxEnd verifies by an independent scan that every node's maxEnd is
// the largest end in its subtree, and returns that value.
func checkMaxEnd[T cmp.Ordered](t *testing.T, n adt.Node[T, *AxisEntry[T]]) (T, bool) {
	t.Helper()
	if n == nil {
		var zero T
		return zero, false
	}
	e := n.Value()
	require.NotEmpty(t, e.ends, "entry %v has no ends", e.start)
	want := e.ends[0]
	for _, v := range e.ends {
		want = max(want, v)
	}
	if lm, ok := checkMaxEnd(t, n.Left()); ok {
		want = max(want, lm)
	}
	if rm, ok := checkMaxEnd(t, n.Right()); ok {
		want = max(want, rm)
	}
	require.Equalf(t, want, e.maxEnd, "entry %v: wrong maxEnd", e.start)
	return want, true
}

func TestAxisTreeInsertMaxEnd(t *testing.T) {
	// "Introduction to Algorithms" (Cormen et al, 3rd ed.) chapter 14, Figure 14.4
	tr := NewAxisTree[int]()
	for _, iv := range [][2]int{{16, 21}, {8, 9}, {0, 3}, {5, 8}, {6, 10}, {15, 23}, {17, 19}, {25, 30}, {26, 26}, {19, 20}} {
		tr.Insert(iv[0], iv[1])
	}

	assert.Equal(t, 10, tr.Count())
	m, ok := tr.MaxEnd()
	require.True(t, ok)
	assert.Equal(t, 30, m)
	checkMaxEnd(t, tr.m.Root())
}

func TestAxisTreeNormalize(t *testing.T) {
	tr := NewAxisTree[int]()
	tr.Insert(9, 3)

	var starts, ends []int
	tr.Ascend(func(e *AxisEntry[int]) bool {
		starts = append(starts, e.Start())
		ends = append(ends, e.Ends()...)
		return true
	})
	assert.Equal(t, []int{3}, starts)
	assert.Equal(t, []int{9}, ends)
	require.NoError(t, tr.Delete(9, 3))
	assert.Equal(t, 0, tr.Count())
}

func TestAxisTreeDuplicateMerge(t *testing.T) {
	tr := NewAxisTree[int]()
	tr.Insert(4, 10)
	tr.Insert(4, 6)
	require.Equal(t, 1, tr.Count())

	m, ok := tr.FindFirstOverlap(7, 8)
	require.True(t, ok)
	assert.Equal(t, 4, m.Entry.Start())
	assert.Equal(t, 10, m.End())
	assert.ElementsMatch(t, []int{10, 6}, m.Entry.Ends())

	require.NoError(t, tr.Delete(4, 10))
	require.Equal(t, 1, tr.Count(), "node removed while an end is left")
	assert.Equal(t, []int{6}, tr.m.FindNode(4).Value().Ends())
	m4, _ := tr.MaxEnd()
	assert.Equal(t, 6, m4)

	_, ok = tr.FindFirstOverlap(7, 8)
	assert.False(t, ok)

	require.NoError(t, tr.Delete(4, 6))
	assert.Equal(t, 0, tr.Count())
	_, ok = tr.MaxEnd()
	assert.False(t, ok)
}

func TestAxisTreeDeleteNotFound(t *testing.T) {
	tr := NewAxisTree[int]()
	tr.Insert(1, 5)

	tests := []struct {
		start, end int
	}{
		{2, 5}, // no such start
		{1, 6}, // start present, end missing
	}
	for i, tt := range tests {
		err := tr.Delete(tt.start, tt.end)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("#%d: expected ErrNotFound, got %v", i, err)
		}
	}
	assert.Equal(t, 1, tr.Count())
}

func TestAxisTreeMatchIndex(t *testing.T) {
	tr := NewAxisTree[int]()
	tr.Insert(0, 2)
	tr.Insert(0, 8)
	tr.Insert(0, 5)

	// ends are scanned in insertion order: 2 is too short, 8 is first to reach 4
	m, ok := tr.FindFirstOverlap(4, 4)
	require.True(t, ok)
	assert.Equal(t, 1, m.EndIndex)
	assert.Equal(t, 8, m.End())

	m, ok = tr.FindFirstOverlap(-3, 0)
	require.True(t, ok)
	assert.Equal(t, 0, m.EndIndex)
}

func TestAxisTreeFindAllOverlaps(t *testing.T) {
	tr := NewAxisTree[int]()
	for _, iv := range [][2]int{{0, 1}, {0, 2}, {5, 6}, {6, 8}, {0, 3}} {
		tr.Insert(iv[0], iv[1])
	}

	tests := []struct {
		start, end int
		starts     []int
	}{
		{0, 0, []int{0}},
		{1, 1, []int{0}},
		{3, 3, []int{0}},
		{4, 4, nil},
		{6, 6, []int{5, 6}},
		{2, 5, []int{0, 5}},
		{9, 9, nil},
		{-10, 100, []int{0, 5, 6}},
	}
	for i, tt := range tests {
		var got []int
		for _, m := range tr.FindAllOverlaps(tt.start, tt.end) {
			got = append(got, m.Entry.Start())
		}
		sort.Ints(got)
		assert.Equalf(t, tt.starts, got, "#%d: query [%d,%d]", i, tt.start, tt.end)
	}
}

type span struct{ start, end int }

func TestAxisTreeRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	tr := NewAxisTree[int]()
	var stored []span

	for i := 0; i < 3000; i++ {
		if len(stored) > 0 && rnd.Intn(3) == 0 {
			j := rnd.Intn(len(stored))
			require.NoError(t, tr.Delete(stored[j].start, stored[j].end))
			stored[j] = stored[len(stored)-1]
			stored = stored[:len(stored)-1]
		} else {
			s, e := rnd.Intn(200), rnd.Intn(200)
			tr.Insert(s, e)
			s, e = normalize(s, e)
			stored = append(stored, span{s, e})
		}
		checkMaxEnd(t, tr.m.Root())

		qs, qe := normalize(rnd.Intn(220)-10, rnd.Intn(220)-10)
		want := make(map[int]bool)
		for _, sp := range stored {
			if !(sp.start > qe || sp.end < qs) {
				want[sp.start] = true
			}
		}
		got := make(map[int]bool)
		for _, m := range tr.FindAllOverlaps(qs, qe) {
			require.False(t, got[m.Entry.Start()], "entry %d reported twice", m.Entry.Start())
			got[m.Entry.Start()] = true
			require.GreaterOrEqual(t, m.End(), qs)
		}
		require.Equal(t, want, got, "query [%d,%d]", qs, qe)

		_, ok := tr.FindFirstOverlap(qs, qe)
		require.Equal(t, len(want) > 0, ok)
	}

	for _, sp := range stored {
		require.NoError(t, tr.Delete(sp.start, sp.end))
	}
	require.Equal(t, 0, tr.Count())
}
