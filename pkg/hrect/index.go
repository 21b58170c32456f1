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
	"fmt"
)

// Index stores D-dimensional closed intervals and answers overlap queries.
type Index[T cmp.Ordered] struct {
	dims int
	root *AxisTree[T]
	// count is the number of D-dimensional intervals inserted and not yet
	// deleted.
	count int
	// stored holds exactly the intervals counted by count.
	stored *storedSet[T]

	checkSentinel bool
	sentinel      T
}

// Option configures an Index.
type Option func(*options)

type options struct {
	noSentinel bool
}

// WithoutSentinel accepts the minimum value of the element type as a
// coordinate. By default it is rejected.
func WithoutSentinel() Option {
	return func(o *options) { o.noSentinel = true }
}

// New returns an empty index over dims dimensions. It returns an error
// wrapping ErrConfiguration if dims is not positive.
func New[T cmp.Ordered](dims int, opts ...Option) (*Index[T], error) {
	if dims <= 0 {
		return nil, fmt.Errorf("%w: dimension count must be positive, got %d", ErrConfiguration, dims)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Index[T]{
		dims:          dims,
		root:          newAxisTree[T](dims - 1),
		stored:        newStoredSet[T](),
		checkSentinel: !o.noSentinel,
		sentinel:      reservedMin[T](),
	}, nil
}

// Dimensions returns the dimension count fixed at construction.
func (ix *Index[T]) Dimensions() int { return ix.dims }

// Count returns the number of intervals currently inserted.
func (ix *Index[T]) Count() int { return ix.count }

// Root returns the tree for dimension 0.
func (ix *Index[T]) Root() *AxisTree[T] { return ix.root }

func (ix *Index[T]) validate(start, end []T) error {
	for _, v := range []struct {
		field string
		vec   []T
	}{{"start", start}, {"end", end}} {
		if v.vec == nil {
			return &ValidationError{Field: v.field, Axis: -1, Reason: "is missing"}
		}
		if len(v.vec) != ix.dims {
			return &ValidationError{
				Field:  v.field,
				Axis:   -1,
				Reason: fmt.Sprintf("has %d coordinates, expected %d", len(v.vec), ix.dims),
			}
		}
		for i, c := range v.vec {
			if isNaN(c) {
				return &ValidationError{Field: v.field, Axis: i, Reason: "is NaN"}
			}
			if ix.checkSentinel && c == ix.sentinel {
				return &ValidationError{Field: v.field, Axis: i, Reason: fmt.Sprintf("is the reserved value %v", c)}
			}
		}
	}
	return nil
}

// normalized validates start and end and returns copies with every axis
// ordered so that start <= end.
func (ix *Index[T]) normalized(start, end []T) ([]T, []T, error) {
	if err := ix.validate(start, end); err != nil {
		return nil, nil, err
	}
	s := make([]T, ix.dims)
	e := make([]T, ix.dims)
	for i := range start {
		s[i], e[i] = normalize(start[i], end[i])
	}
	return s, e, nil
}

// Insert stores the interval with the given bounds. Reversed bounds on an
// axis are swapped.
func (ix *Index[T]) Insert(start, end []T) error {
	s, e, err := ix.normalized(start, end)
	if err != nil {
		return err
	}
	fanOutInsert(ix.root, s, e)
	ix.stored.add(s, e)
	ix.count++
	return nil
}

// Delete removes one interval with the given bounds. It returns an error
// wrapping ErrNotFound, and leaves the index untouched, if no such interval
// was inserted, even when every one of its projections is present in the
// forest on behalf of other intervals.
func (ix *Index[T]) Delete(start, end []T) error {
	s, e, err := ix.normalized(start, end)
	if err != nil {
		return err
	}
	if !ix.stored.contains(s, e) {
		return notFound(start, end)
	}
	if err := fanInDelete(ix.root, s, e); err != nil {
		return err
	}
	ix.stored.remove(s, e)
	ix.count--
	return nil
}

// DoOverlap reports whether any stored interval overlaps the query.
func (ix *Index[T]) DoOverlap(start, end []T) (bool, error) {
	found := false
	err := ix.visit(start, end, func(MultiDimInterval[T]) bool {
		found = true
		return false
	})
	return found, err
}

// GetOverlaps returns the stored intervals overlapping the query in depth
// first search order.
func (ix *Index[T]) GetOverlaps(start, end []T) ([]MultiDimInterval[T], error) {
	var rs []MultiDimInterval[T]
	err := ix.visit(start, end, func(m MultiDimInterval[T]) bool {
		rs = append(rs, m)
		return true
	})
	return rs, err
}

// Visit calls f on every overlapping interval until f returns false.
func (ix *Index[T]) Visit(start, end []T, f func(MultiDimInterval[T]) bool) error {
	return ix.visit(start, end, f)
}

func (ix *Index[T]) visit(start, end []T, f func(MultiDimInterval[T]) bool) error {
	s, e, err := ix.normalized(start, end)
	if err != nil {
		return err
	}
	visitOverlaps(ix.root, 0, s, e, make([]T, ix.dims), make([]T, ix.dims), f)
	return nil
}

// LevelStats summarizes the trees of one dimension.
type LevelStats struct {
	Dimension int `json:"dimension"`
	// Trees is the number of non-empty trees at this dimension.
	Trees int `json:"trees"`
	// Entries is the number of entries over all trees.
	Entries int `json:"entries"`
	// Intervals is the number of intervals, counting merged ends.
	Intervals int `json:"intervals"`
	// MaxHeight is the height of the tallest tree.
	MaxHeight int `json:"max-height"`
}

// Stats walks the whole forest and returns one summary per dimension.
func (ix *Index[T]) Stats() []LevelStats {
	st := make([]LevelStats, ix.dims)
	for i := range st {
		st[i].Dimension = i
	}
	var walk func(t *AxisTree[T], level int)
	walk = func(t *AxisTree[T], level int) {
		if t == nil || t.Count() == 0 {
			return
		}
		ls := &st[level]
		ls.Trees++
		ls.Entries += t.Count()
		ls.MaxHeight = max(ls.MaxHeight, t.Height())
		t.Ascend(func(e *AxisEntry[T]) bool {
			ls.Intervals += len(e.ends)
			walk(e.next, level+1)
			return true
		})
	}
	walk(ix.root, 0)
	return st
}
