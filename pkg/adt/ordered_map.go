// Copyright 2016 The etcd Authors
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

// Package adt implements abstract data types used by the interval indexes.
package adt

// Node is a handle to one entry of an OrderedMap. Links to absent children
// or to the parent of the root are nil.
type Node[K, V any] interface {
	Key() K
	Value() V
	SetValue(v V)
	Left() Node[K, V]
	Right() Node[K, V]
	Parent() Node[K, V]
}

// OrderedMap is a balanced binary search tree keyed by a single scalar.
// Keys are unique; callers that need several values per key keep them in V.
type OrderedMap[K, V any] interface {
	// Insert adds key with the given value and returns its node. If the key
	// is already present the existing node is returned unchanged.
	Insert(key K, val V) Node[K, V]
	// Delete removes the node with the given key, returning true if a node
	// is in fact removed.
	Delete(key K) bool
	// FindNode returns the node for key, or nil.
	FindNode(key K) Node[K, V]
	// Root returns the root node, or nil for an empty map.
	Root() Node[K, V]
	// Len gives the number of nodes in the map.
	Len() int
	// Height is the number of levels in the tree; one node has height 1.
	Height() int
	// Ascend calls f on every node in key order until f returns false.
	Ascend(f func(n Node[K, V]) bool)
}

// AugmentFunc recomputes subtree aggregates stored in a node's value from the
// node itself and its current children. The map calls it bottom-up on every
// node whose subtree changed shape or content.
type AugmentFunc[K, V any] func(n Node[K, V])
