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
)

// frontiers returns, for every dimension, the trees an interval with the
// given bounds fans out to: the root tree for dimension 0, then the nested
// tree of every entry on the previous frontier that overlaps the interval's
// projection. When insert is set each tree receives the projection before it
// is searched, so the entry just written is part of its own fan-out.
func frontiers[T cmp.Ordered](root *AxisTree[T], start, end []T, insert bool) [][]*AxisTree[T] {
	dims := len(start)
	fs := make([][]*AxisTree[T], dims)
	fs[0] = []*AxisTree[T]{root}
	for i := 0; i < dims; i++ {
		var next []*AxisTree[T]
		for _, tr := range fs[i] {
			if insert {
				tr.insert(start[i], end[i])
			}
			if i == dims-1 {
				continue
			}
			for _, m := range tr.FindAllOverlaps(start[i], end[i]) {
				next = append(next, m.Entry.next)
			}
		}
		if i < dims-1 {
			fs[i+1] = next
		}
	}
	return fs
}

// fanOutInsert records the interval in every tree of its fan-out.
func fanOutInsert[T cmp.Ordered](root *AxisTree[T], start, end []T) {
	frontiers(root, start, end, true)
}

// fanInDelete undoes fanOutInsert, deepest dimension first. Trees emptied
// earlier in the unwind are skipped. Below dimension 0 a tree that no longer
// holds the projection is skipped as well: it was added to the fan-out after
// the interval was inserted, or another deletion already removed the copy.
func fanInDelete[T cmp.Ordered](root *AxisTree[T], start, end []T) error {
	fs := frontiers(root, start, end, false)
	for i := len(fs) - 1; i > 0; i-- {
		for _, tr := range fs[i] {
			if tr.Count() == 0 {
				continue
			}
			if err := tr.Delete(start[i], end[i]); err != nil && !errors.Is(err, ErrNotFound) {
				return err
			}
		}
	}
	return root.Delete(start[0], end[0])
}

// visitOverlaps walks the forest depth first from tree at dimension level,
// extending the bounds collected so far with the matching interval of each
// axis. f receives every complete result and stops the walk by returning
// false. It reports whether the walk ran to completion.
func visitOverlaps[T cmp.Ordered](tree *AxisTree[T], level int, start, end, accStart, accEnd []T, f func(MultiDimInterval[T]) bool) bool {
	last := level == len(start)-1
	return tree.visit(start[level], end[level], func(m Match[T]) bool {
		accStart[level] = m.Entry.start
		accEnd[level] = m.End()
		if last {
			return f(MultiDimInterval[T]{
				Start: append([]T(nil), accStart...),
				End:   append([]T(nil), accEnd...),
			})
		}
		return visitOverlaps(m.Entry.next, level+1, start, end, accStart, accEnd, f)
	})
}
