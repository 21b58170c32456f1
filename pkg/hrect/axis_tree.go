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

	"github.com/hyperrect/hrect/pkg/adt"
)

// AxisEntry is the payload of one AxisTree node: every interval on this axis
// that starts at Start.
type AxisEntry[T cmp.Ordered] struct {
	start T
	// ends holds one value per interval sharing start; order is irrelevant.
	ends []T
	// maxEnd is the largest end in the subtree rooted at this entry's node.
	maxEnd T
	// next indexes the remaining dimensions; nil on the last dimension.
	next *AxisTree[T]
}

// Start returns the shared start of the entry's intervals.
func (e *AxisEntry[T]) Start() T { return e.start }

// Ends returns the end of every interval merged into the entry.
func (e *AxisEntry[T]) Ends() []T { return append([]T(nil), e.ends...) }

// MaxEnd returns the largest end stored in the entry's subtree.
func (e *AxisEntry[T]) MaxEnd() T { return e.maxEnd }

// Next returns the nested tree for the following dimension, or nil.
func (e *AxisEntry[T]) Next() *AxisTree[T] { return e.next }

// Match is a stored entry that overlaps a query, together with the index in
// its ends of the first interval that does.
type Match[T cmp.Ordered] struct {
	Entry    *AxisEntry[T]
	EndIndex int
}

// End returns the end value of the matching interval.
func (m Match[T]) End() T { return m.Entry.ends[m.EndIndex] }

// AxisTree is a one-dimensional overlap-search tree over closed intervals.
type AxisTree[T cmp.Ordered] struct {
	m adt.OrderedMap[T, *AxisEntry[T]]
	// remaining is the number of dimensions below this tree; entries own a
	// nested tree when it is positive.
	remaining int
}

// NewAxisTree returns an empty one-dimensional tree.
func NewAxisTree[T cmp.Ordered]() *AxisTree[T] {
	return newAxisTree[T](0)
}

func newAxisTree[T cmp.Ordered](remaining int) *AxisTree[T] {
	return &AxisTree[T]{
		m:         adt.NewRBTree[T, *AxisEntry[T]](cmp.Compare[T], recomputeMax[T]),
		remaining: remaining,
	}
}

func (t *AxisTree[T]) newEntry(start, end T) *AxisEntry[T] {
	e := &AxisEntry[T]{start: start, ends: []T{end}, maxEnd: end}
	if t.remaining > 0 {
		e.next = newAxisTree[T](t.remaining - 1)
	}
	return e
}

// Count returns the number of entries, not the number of merged intervals.
func (t *AxisTree[T]) Count() int { return t.m.Len() }

// Height returns the height of the underlying tree.
func (t *AxisTree[T]) Height() int { return t.m.Height() }

// MaxEnd returns the largest end stored in the tree.
func (t *AxisTree[T]) MaxEnd() (T, bool) {
	return subtreeMax(t.m.Root())
}

// Ascend calls f on every entry in start order until f returns false.
func (t *AxisTree[T]) Ascend(f func(e *AxisEntry[T]) bool) {
	t.m.Ascend(func(n adt.Node[T, *AxisEntry[T]]) bool { return f(n.Value()) })
}

func normalize[T cmp.Ordered](start, end T) (T, T) {
	if start > end {
		return end, start
	}
	return start, end
}

// subtreeMax returns the maxEnd of n, reporting false for an absent node.
func subtreeMax[T cmp.Ordered](n adt.Node[T, *AxisEntry[T]]) (T, bool) {
	if n == nil {
		var zero T
		return zero, false
	}
	return n.Value().maxEnd, true
}

// recomputeMax sets maxEnd of n from its own ends and its children's maxEnd.
func recomputeMax[T cmp.Ordered](n adt.Node[T, *AxisEntry[T]]) {
	e := n.Value()
	m := e.ends[0]
	for _, end := range e.ends[1:] {
		m = max(m, end)
	}
	if lm, ok := subtreeMax(n.Left()); ok {
		m = max(m, lm)
	}
	if rm, ok := subtreeMax(n.Right()); ok {
		m = max(m, rm)
	}
	e.maxEnd = m
}

// fixUpward recomputes maxEnd from n to the root. The children of every node
// on the path are recomputed first so that a rebalance of the map that did
// not report a node cannot leave a stale value behind.
func (t *AxisTree[T]) fixUpward(n adt.Node[T, *AxisEntry[T]]) {
	for ; n != nil; n = n.Parent() {
		if l := n.Left(); l != nil {
			recomputeMax(l)
		}
		if r := n.Right(); r != nil {
			recomputeMax(r)
		}
		recomputeMax(n)
	}
}

// Insert stores the closed interval [start, end], swapping the bounds if
// they are reversed. An interval whose start is already present is merged
// into the existing entry.
func (t *AxisTree[T]) Insert(start, end T) {
	t.insert(start, end)
}

func (t *AxisTree[T]) insert(start, end T) *AxisEntry[T] {
	start, end = normalize(start, end)
	n := t.m.FindNode(start)
	if n != nil {
		e := n.Value()
		e.ends = append(e.ends, end)
	} else {
		n = t.m.Insert(start, t.newEntry(start, end))
	}
	t.fixUpward(n)
	return n.Value()
}

// Delete removes one interval [start, end]. The entry is removed from the
// tree, together with its nested tree, once its last interval is gone.
// It returns an error wrapping ErrNotFound if no such interval is stored.
func (t *AxisTree[T]) Delete(start, end T) error {
	start, end = normalize(start, end)
	n := t.m.FindNode(start)
	if n == nil {
		return notFound(start, end)
	}
	e := n.Value()
	i := indexOf(e.ends, end)
	if i < 0 {
		return notFound(start, end)
	}

	if len(e.ends) > 1 {
		last := len(e.ends) - 1
		e.ends[i] = e.ends[last]
		e.ends = e.ends[:last]
		t.fixUpward(n)
		return nil
	}

	parent := n.Parent()
	t.m.Delete(start)
	t.fixUpward(parent)
	return nil
}

// contains reports whether [start, end] is stored.
func (t *AxisTree[T]) contains(start, end T) bool {
	start, end = normalize(start, end)
	n := t.m.FindNode(start)
	return n != nil && indexOf(n.Value().ends, end) >= 0
}

func indexOf[T cmp.Ordered](ends []T, v T) int {
	for i, end := range ends {
		if end == v {
			return i
		}
	}
	return -1
}

// overlapIndex returns the index of the first of e's intervals that overlaps
// [start, end], or -1.
func (e *AxisEntry[T]) overlapIndex(start, end T) int {
	if e.start > end {
		return -1
	}
	for i, v := range e.ends {
		if v >= start {
			return i
		}
	}
	return -1
}

// FindFirstOverlap returns the first entry overlapping [start, end] in search
// order.
func (t *AxisTree[T]) FindFirstOverlap(start, end T) (Match[T], bool) {
	var first Match[T]
	found := false
	t.visit(start, end, func(m Match[T]) bool {
		first, found = m, true
		return false
	})
	return first, found
}

// FindAllOverlaps returns every entry with at least one interval overlapping
// [start, end].
func (t *AxisTree[T]) FindAllOverlaps(start, end T) []Match[T] {
	var ms []Match[T]
	t.visit(start, end, func(m Match[T]) bool {
		ms = append(ms, m)
		return true
	})
	return ms
}

// visit calls f on every overlapping entry until f returns false. It reports
// whether the search ran to completion.
func (t *AxisTree[T]) visit(start, end T, f func(m Match[T]) bool) bool {
	start, end = normalize(start, end)
	return visitNode(t.m.Root(), start, end, f)
}

// visitNode searches depth first. The left subtree is pruned when its maxEnd
// ends before start; the right subtree is always searched.
func visitNode[T cmp.Ordered](n adt.Node[T, *AxisEntry[T]], start, end T, f func(m Match[T]) bool) bool {
	if n == nil {
		return true
	}
	e := n.Value()
	if i := e.overlapIndex(start, end); i >= 0 {
		if !f(Match[T]{Entry: e, EndIndex: i}) {
			return false
		}
	}
	if lm, ok := subtreeMax(n.Left()); ok && lm >= start {
		if !visitNode(n.Left(), start, end, f) {
			return false
		}
	}
	return visitNode(n.Right(), start, end, f)
}
