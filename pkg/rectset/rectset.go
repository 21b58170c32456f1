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
// Package rectset is an ordered multiset of rectangles answering overlap
// queries by scanning. It is slow and obviously correct, which makes it the
// reference the index is checked against.
package rectset

import (
	"cmp"
	"slices"

	"github.com/google/btree"

	"github.com/hyperrect/hrect/pkg/hrect"
)

const degree = 32

type item[T cmp.Ordered] struct {
	start, end []T
	// seq tells apart copies of the same rectangle.
	seq uint64
}

func (a *item[T]) Less(than btree.Item) bool {
	b := than.(*item[T])
	if c := slices.Compare(a.start, b.start); c != 0 {
		return c < 0
	}
	if c := slices.Compare(a.end, b.end); c != 0 {
		return c < 0
	}
	return a.seq < b.seq
}

// Set holds rectangles ordered by start vector, then end vector.
// Duplicates are kept. Set is not safe for concurrent use.
type Set[T cmp.Ordered] struct {
	tree *btree.BTree
	seq  uint64
}

// New returns an empty set.
func New[T cmp.Ordered]() *Set[T] {
	return &Set[T]{tree: btree.New(degree)}
}

// Len returns the number of rectangles, duplicates included.
func (s *Set[T]) Len() int { return s.tree.Len() }

// Add stores a copy of the rectangle.
func (s *Set[T]) Add(start, end []T) {
	s.seq++
	s.tree.ReplaceOrInsert(&item[T]{start: slices.Clone(start), end: slices.Clone(end), seq: s.seq})
}

// Remove drops one copy of the rectangle and reports whether one was held.
func (s *Set[T]) Remove(start, end []T) bool {
	var found *item[T]
	s.tree.AscendGreaterOrEqual(&item[T]{start: start, end: end}, func(i btree.Item) bool {
		it := i.(*item[T])
		if slices.Equal(it.start, start) && slices.Equal(it.end, end) {
			found = it
		}
		return false
	})
	if found == nil {
		return false
	}
	s.tree.Delete(found)
	return true
}

// Ascend calls f for every rectangle in order until f returns false.
func (s *Set[T]) Ascend(f func(r hrect.MultiDimInterval[T]) bool) {
	s.tree.Ascend(func(i btree.Item) bool {
		it := i.(*item[T])
		return f(hrect.MultiDimInterval[T]{Start: slices.Clone(it.start), End: slices.Clone(it.end)})
	})
}

// Overlapping returns every stored rectangle that overlaps [start, end]
// on all axes, in set order. Bounds are inclusive.
func (s *Set[T]) Overlapping(start, end []T) []hrect.MultiDimInterval[T] {
	var rs []hrect.MultiDimInterval[T]
	s.tree.Ascend(func(i btree.Item) bool {
		it := i.(*item[T])
		if len(end) > 0 && len(it.start) > 0 && it.start[0] > end[0] {
			// every later item starts past the query on the first axis
			return false
		}
		if Overlaps(it.start, it.end, start, end) {
			rs = append(rs, hrect.MultiDimInterval[T]{Start: slices.Clone(it.start), End: slices.Clone(it.end)})
		}
		return true
	})
	return rs
}

// Overlaps reports whether two rectangles of equal dimension intersect.
// Both must already be normalized so that start <= end on every axis.
func Overlaps[T cmp.Ordered](aStart, aEnd, bStart, bEnd []T) bool {
	for i := range aStart {
		if aStart[i] > bEnd[i] || bStart[i] > aEnd[i] {
			return false
		}
	}
	return true
}

// Normalize returns copies of start and end with each axis ordered so that
// start <= end.
func Normalize[T cmp.Ordered](start, end []T) ([]T, []T) {
	s, e := slices.Clone(start), slices.Clone(end)
	for i := range s {
		if s[i] > e[i] {
			s[i], e[i] = e[i], s[i]
		}
	}
	return s, e
}
