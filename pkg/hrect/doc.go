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

// Package hrect indexes axis-aligned hyper-rectangles held in memory and
// answers overlap queries against them.
//
// Each dimension is served by an AxisTree, a red-black tree keyed by interval
// start whose nodes carry the maximum end of their subtree. Intervals sharing
// a start on one axis are merged into a single entry. Every entry of a
// non-final dimension owns a nested AxisTree for the next dimension; an insert
// is replicated into the nested tree of every entry its projection overlaps,
// so a query may descend from any overlapping entry.
//
// An Index is not safe for concurrent use. Callers must serialize access, for
// example with one lock per index (see package syncindex).
//
// # Usage
//
//	ix, err := hrect.New[int64](2)
//	if err != nil {
//		return err
//	}
//	_ = ix.Insert([]int64{0, 0}, []int64{10, 10})
//	ok, _ := ix.DoOverlap([]int64{5, 5}, []int64{6, 6})
package hrect
