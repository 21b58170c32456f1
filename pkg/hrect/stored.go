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
	"slices"

	"github.com/hyperrect/hrect/pkg/adt"
)

type storedKey[T cmp.Ordered] struct {
	start, end []T
}

func compareStored[T cmp.Ordered](a, b storedKey[T]) int {
	if c := slices.Compare(a.start, b.start); c != 0 {
		return c
	}
	return slices.Compare(a.end, b.end)
}

// storedSet counts the normalized intervals inserted into an Index. The
// forest alone cannot tell an inserted interval from one whose projections
// were all contributed by other intervals.
type storedSet[T cmp.Ordered] struct {
	m adt.OrderedMap[storedKey[T], int]
}

func newStoredSet[T cmp.Ordered]() *storedSet[T] {
	return &storedSet[T]{m: adt.NewRBTree[storedKey[T], int](compareStored[T], nil)}
}

// add records one more copy of [start, end]; the slices are retained.
func (s *storedSet[T]) add(start, end []T) {
	n := s.m.Insert(storedKey[T]{start: start, end: end}, 0)
	n.SetValue(n.Value() + 1)
}

func (s *storedSet[T]) contains(start, end []T) bool {
	return s.m.FindNode(storedKey[T]{start: start, end: end}) != nil
}

// remove drops one copy of [start, end] and reports whether one was held.
func (s *storedSet[T]) remove(start, end []T) bool {
	k := storedKey[T]{start: start, end: end}
	n := s.m.FindNode(k)
	if n == nil {
		return false
	}
	if n.Value() > 1 {
		n.SetValue(n.Value() - 1)
		return true
	}
	return s.m.Delete(k)
}
