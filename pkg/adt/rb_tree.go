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

package adt

import (
	"fmt"
	"math"
)

type rbcolor int

const (
	black rbcolor = iota
	red
)

func (c rbcolor) String() string {
	switch c {
	case black:
		return "black"
	case red:
		return "red"
	default:
		panic(fmt.Errorf("unknown color %d", c))
	}
}

type rbNode[K, V any] struct {
	key K
	val V
	// left and right are sorted by key
	left, right *rbNode[K, V]
	// parent is the direct ancestor of the node
	parent *rbNode[K, V]
	c      rbcolor
}

func (x *rbNode[K, V]) handle() Node[K, V] {
	if x == nil {
		return nil
	}
	return x
}

func (x *rbNode[K, V]) Key() K             { return x.key }
func (x *rbNode[K, V]) Value() V           { return x.val }
func (x *rbNode[K, V]) SetValue(v V)       { x.val = v }
func (x *rbNode[K, V]) Left() Node[K, V]   { return x.left.handle() }
func (x *rbNode[K, V]) Right() Node[K, V]  { return x.right.handle() }
func (x *rbNode[K, V]) Parent() Node[K, V] { return x.parent.handle() }

func (x *rbNode[K, V]) color() rbcolor {
	if x == nil {
		return black
	}
	return x.c
}

func (x *rbNode[K, V]) height() int {
	if x == nil {
		return 0
	}
	ld := x.left.height()
	rd := x.right.height()
	if ld < rd {
		return rd + 1
	}
	return ld + 1
}

func (x *rbNode[K, V]) min() *rbNode[K, V] {
	for x.left != nil {
		x = x.left
	}
	return x
}

// successor is the next in-order node in the tree
func (x *rbNode[K, V]) successor() *rbNode[K, V] {
	if x.right != nil {
		return x.right.min()
	}
	y := x.parent
	for y != nil && x == y.right {
		x = y
		y = y.parent
	}
	return y
}

// rbTree is a (mostly) textbook implementation of the "Introduction to
// Algorithms" (Cormen et al, 3rd ed.) chapter 13 red-black tree. Leaves and
// the root's parent are nil.
type rbTree[K, V any] struct {
	root    *rbNode[K, V]
	count   int
	cmp     func(a, b K) int
	augment AugmentFunc[K, V]
}

// NewRBTree returns an empty red-black OrderedMap ordered by cmp. augment
// may be nil.
func NewRBTree[K, V any](cmp func(a, b K) int, augment AugmentFunc[K, V]) OrderedMap[K, V] {
	return &rbTree[K, V]{cmp: cmp, augment: augment}
}

func (t *rbTree[K, V]) fix(x *rbNode[K, V]) {
	if t.augment != nil && x != nil {
		t.augment(x)
	}
}

// fixPath recomputes augmentation from x up to the root.
func (t *rbTree[K, V]) fixPath(x *rbNode[K, V]) {
	if t.augment == nil {
		return
	}
	for ; x != nil; x = x.parent {
		t.augment(x)
	}
}

func (t *rbTree[K, V]) find(key K) *rbNode[K, V] {
	x := t.root
	for x != nil {
		switch c := t.cmp(key, x.key); {
		case c < 0:
			x = x.left
		case c > 0:
			x = x.right
		default:
			return x
		}
	}
	return nil
}

// FindNode returns the node for key, or nil.
func (t *rbTree[K, V]) FindNode(key K) Node[K, V] { return t.find(key).handle() }

// Root returns the root node, or nil for an empty tree.
func (t *rbTree[K, V]) Root() Node[K, V] { return t.root.handle() }

// Len gives the number of elements in the tree.
func (t *rbTree[K, V]) Len() int { return t.count }

// Height is the number of levels in the tree; one node has height 1.
func (t *rbTree[K, V]) Height() int { return t.root.height() }

// MaxHeight is the expected maximum tree height given the number of nodes.
func (t *rbTree[K, V]) MaxHeight() int {
	return int((2 * math.Log2(float64(t.Len()+1))) + 0.5)
}

// Ascend calls f on every node in key order until f returns false.
func (t *rbTree[K, V]) Ascend(f func(n Node[K, V]) bool) {
	if t.root == nil {
		return
	}
	for x := t.root.min(); x != nil; x = x.successor() {
		if !f(x) {
			return
		}
	}
}

// Insert adds a node with the given key into the tree.
//
// "Introduction to Algorithms" (Cormen et al, 3rd ed.), chapter 13.3, p315
//
//	 0. RB-INSERT(T, z)
//	 1.
//	 2. y = T.nil
//	 3. x = T.root
//	 4.
//	 5. while x ≠ T.nil
//	 6. 	y = x
//	 7. 	if z.key < x.key
//	 8. 		x = x.left
//	 9. 	else
//	10. 		x = x.right
//	11.
//	12. z.p = y
//	13.
//	14. if y == T.nil
//	15. 	T.root = z
//	16. else if z.key < y.key
//	17. 	y.left = z
//	18. else
//	19. 	y.right = z
//	20.
//	21. z.left = T.nil
//	22. z.right = T.nil
//	23. z.color = RED
//	24.
//	25. RB-INSERT-FIXUP(T, z)
func (t *rbTree[K, V]) Insert(key K, val V) Node[K, V] {
	// line 2-3
	var y *rbNode[K, V]
	x := t.root

	// line 5-10
	c := 0
	for x != nil {
		y = x
		c = t.cmp(key, x.key)
		switch {
		case c < 0:
			x = x.left
		case c > 0:
			x = x.right
		default:
			return x
		}
	}

	// line 12, 21-23
	z := &rbNode[K, V]{key: key, val: val, parent: y, c: red}

	// line 14-19
	switch {
	case y == nil:
		t.root = z
	case c < 0:
		y.left = z
	default:
		y.right = z
	}
	t.fixPath(z)

	// line 25
	t.insertFixup(z)
	t.count++
	return z
}

// "Introduction to Algorithms" (Cormen et al, 3rd ed.), chapter 13.3, p316
//
//	 0. RB-INSERT-FIXUP(T, z)
//	 1.
//	 2. while z.p.color == RED
//	 3. 	if z.p == z.p.p.left
//	 4. 		y = z.p.p.right
//	 5. 		if y.color == RED
//	 6. 			z.p.color = BLACK
//	 7. 			y.color = BLACK
//	 8. 			z.p.p.color = RED
//	 9. 			z = z.p.p
//	10. 		else if z == z.p.right
//	11. 				z = z.p
//	12. 				LEFT-ROTATE(T, z)
//	13. 			z.p.color = BLACK
//	14. 			z.p.p.color = RED
//	15. 			RIGHT-ROTATE(T, z.p.p)
//	16. 	else
//	17. 		y = z.p.p.left
//	18. 		if y.color == RED
//	19. 			z.p.color = BLACK
//	20. 			y.color = BLACK
//	21. 			z.p.p.color = RED
//	22. 			z = z.p.p
//	23. 		else if z == z.p.right
//	24. 				z = z.p
//	25. 				RIGHT-ROTATE(T, z)
//	26. 			z.p.color = BLACK
//	27. 			z.p.p.color = RED
//	28. 			LEFT-ROTATE(T, z.p.p)
//	29.
//	30. T.root.color = BLACK
func (t *rbTree[K, V]) insertFixup(z *rbNode[K, V]) {
	// a red parent is never the root, so z.parent.parent is set
	for z.parent.color() == red {
		if z.parent == z.parent.parent.left { // line 3-15
			y := z.parent.parent.right
			if y.color() == red {
				y.c = black
				z.parent.c = black
				z.parent.parent.c = red
				z = z.parent.parent
			} else {
				if z == z.parent.right {
					z = z.parent
					t.rotateLeft(z)
				}
				z.parent.c = black
				z.parent.parent.c = red
				t.rotateRight(z.parent.parent)
			}
		} else { // line 16-28
			// same as then with left/right exchanged
			y := z.parent.parent.left
			if y.color() == red {
				y.c = black
				z.parent.c = black
				z.parent.parent.c = red
				z = z.parent.parent
			} else {
				if z == z.parent.left {
					z = z.parent
					t.rotateRight(z)
				}
				z.parent.c = black
				z.parent.parent.c = red
				t.rotateLeft(z.parent.parent)
			}
		}
	}

	// line 30
	t.root.c = black
}

// "Introduction to Algorithms" (Cormen et al, 3rd ed.), chapter 13.4, p323
//
//	 0. RB-TRANSPLANT(T, u, v)
//	 1.
//	 2. if u.p == T.nil
//	 3. 	T.root = v
//	 4. else if u == u.p.left
//	 5. 	u.p.left = v
//	 6. else
//	 7. 	u.p.right = v
//	 8.
//	 9. v.p = u.p
func (t *rbTree[K, V]) transplant(u, v *rbNode[K, V]) {
	// line 2-7
	switch {
	case u.parent == nil:
		t.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}

	// line 9
	if v != nil {
		v.parent = u.parent
	}
}

// Delete removes the node with the given key from the tree, returning
// true if a node is in fact removed.
//
// "Introduction to Algorithms" (Cormen et al, 3rd ed.), chapter 13.4, p324
//
//	 0. RB-DELETE(T, z)
//	 1.
//	 2. y = z
//	 3. y-original-color = y.color
//	 4.
//	 5. if z.left == T.nil
//	 6. 	x = z.right
//	 7. 	RB-TRANSPLANT(T, z, z.right)
//	 8. else if z.right == T.nil
//	 9. 	x = z.left
//	10. 	RB-TRANSPLANT(T, z, z.left)
//	11. else
//	12. 	y = TREE-MINIMUM(z.right)
//	13. 	y-original-color = y.color
//	14. 	x = y.right
//	15. 	if y.p == z
//	16. 		x.p = y
//	17. 	else
//	18. 		RB-TRANSPLANT(T, y, y.right)
//	19. 		y.right = z.right
//	20. 		y.right.p = y
//	21. 	RB-TRANSPLANT(T, z, y)
//	22. 	y.left = z.left
//	23. 	y.left.p = y
//	24. 	y.color = z.color
//	25.
//	26. if y-original-color == BLACK
//	27. 	RB-DELETE-FIXUP(T, x)
//
// With nil leaves x may be nil, so its parent is tracked separately.
func (t *rbTree[K, V]) Delete(key K) bool {
	z := t.find(key)
	if z == nil {
		return false
	}

	// line 2-3
	y := z
	yOriginalColor := y.color()

	var x, xParent *rbNode[K, V]
	switch {
	case z.left == nil: // line 5-7
		x, xParent = z.right, z.parent
		t.transplant(z, z.right)
	case z.right == nil: // line 8-10
		x, xParent = z.left, z.parent
		t.transplant(z, z.left)
	default: // line 12-24
		y = z.right.min()
		yOriginalColor = y.color()
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.c = z.color()
	}

	// every node from the splice point up lost z from its subtree
	t.fixPath(xParent)

	// line 26-27
	if yOriginalColor == black {
		t.deleteFixup(x, xParent)
	}

	z.left, z.right, z.parent = nil, nil, nil
	t.count--
	return true
}

// "Introduction to Algorithms" (Cormen et al, 3rd ed.), chapter 13.4, p326
//
//	 0. RB-DELETE-FIXUP(T, z)
//	 1.
//	 2. while x ≠ T.root and x.color == BLACK
//	 3. 	if x == x.p.left
//	 4. 		w = x.p.right
//	 5. 		if w.color == RED
//	 6. 			w.color = BLACK
//	 7. 			x.p.color = RED
//	 8. 			LEFT-ROTATE(T, x, p)
//	 9. 		if w.left.color == BLACK and w.right.color == BLACK
//	10. 			w.color = RED
//	11. 			x = x.p
//	12. 		else if w.right.color == BLACK
//	13. 				w.left.color = BLACK
//	14. 				w.color = RED
//	15. 				RIGHT-ROTATE(T, w)
//	16. 				w = w.p.right
//	17. 			w.color = x.p.color
//	18. 			x.p.color = BLACK
//	19. 			LEFT-ROTATE(T, w.p)
//	20. 			x = T.root
//	21. 	else
//	22. 		w = x.p.left
//	23. 		if w.color == RED
//	24. 			w.color = BLACK
//	25. 			x.p.color = RED
//	26. 			RIGHT-ROTATE(T, x, p)
//	27. 		if w.right.color == BLACK and w.left.color == BLACK
//	28. 			w.color = RED
//	29. 			x = x.p
//	30. 		else if w.left.color == BLACK
//	31. 				w.right.color = BLACK
//	32. 				w.color = RED
//	33. 				LEFT-ROTATE(T, w)
//	34. 				w = w.p.left
//	35. 			w.color = x.p.color
//	36. 			x.p.color = BLACK
//	37. 			RIGHT-ROTATE(T, w.p)
//	38. 			x = T.root
//	39.
//	40. x.color = BLACK
func (t *rbTree[K, V]) deleteFixup(x, parent *rbNode[K, V]) {
	for x != t.root && x.color() == black {
		if x == parent.left { // line 3-20
			w := parent.right
			if w.color() == red {
				w.c = black
				parent.c = red
				t.rotateLeft(parent)
				w = parent.right
			}
			if w.left.color() == black && w.right.color() == black {
				w.c = red
				x = parent
				parent = x.parent
			} else {
				if w.right.color() == black {
					w.left.c = black
					w.c = red
					t.rotateRight(w)
					w = parent.right
				}
				w.c = parent.color()
				parent.c = black
				w.right.c = black
				t.rotateLeft(parent)
				x, parent = t.root, nil
			}
		} else { // line 22-38
			// same as above but with left and right exchanged
			w := parent.left
			if w.color() == red {
				w.c = black
				parent.c = red
				t.rotateRight(parent)
				w = parent.left
			}
			if w.left.color() == black && w.right.color() == black {
				w.c = red
				x = parent
				parent = x.parent
			} else {
				if w.left.color() == black {
					w.right.c = black
					w.c = red
					t.rotateLeft(w)
					w = parent.left
				}
				w.c = parent.color()
				parent.c = black
				w.left.c = black
				t.rotateRight(parent)
				x, parent = t.root, nil
			}
		}
	}
	if x != nil {
		x.c = black
	}
}

// rotateLeft moves x so it is left of its right child
//
// "Introduction to Algorithms" (Cormen et al, 3rd ed.), chapter 13.2, p313
//
//	 0. LEFT-ROTATE(T, x)
//	 1.
//	 2. y = x.right
//	 3. x.right = y.left
//	 4.
//	 5. if y.left ≠ T.nil
//	 6. 	y.left.p = x
//	 7.
//	 8. y.p = x.p
//	 9.
//	10. if x.p == T.nil
//	11. 	T.root = y
//	12. else if x == x.p.left
//	13. 	x.p.left = y
//	14. else
//	15. 	x.p.right = y
//	16.
//	17. y.left = x
//	18. x.p = y
func (t *rbTree[K, V]) rotateLeft(x *rbNode[K, V]) {
	// line 2-3
	y := x.right
	x.right = y.left

	// line 5-6
	if y.left != nil {
		y.left.parent = x
	}

	// line 8, 10-15
	y.parent = x.parent
	switch {
	case x.parent == nil:
		t.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}

	// line 17-18
	y.left = x
	x.parent = y

	// the subtree under y holds the same nodes x held before, so only
	// x and y need recomputing
	t.fix(x)
	t.fix(y)
}

// rotateRight moves x so it is right of its left child
//
//	 0. RIGHT-ROTATE(T, x)
//	 1.
//	 2. y = x.left
//	 3. x.left = y.right
//	 4.
//	 5. if y.right ≠ T.nil
//	 6. 	y.right.p = x
//	 7.
//	 8. y.p = x.p
//	 9.
//	10. if x.p == T.nil
//	11. 	T.root = y
//	12. else if x == x.p.right
//	13. 	x.p.right = y
//	14. else
//	15. 	x.p.left = y
//	16.
//	17. y.right = x
//	18. x.p = y
func (t *rbTree[K, V]) rotateRight(x *rbNode[K, V]) {
	// line 2-3
	y := x.left
	x.left = y.right

	// line 5-6
	if y.right != nil {
		y.right.parent = x
	}

	// line 8, 10-15
	y.parent = x.parent
	switch {
	case x.parent == nil:
		t.root = y
	case x == x.parent.right:
		x.parent.right = y
	default:
		x.parent.left = y
	}

	// line 17-18
	y.right = x
	x.parent = y

	t.fix(x)
	t.fix(y)
}

type visitedNode[K any] struct {
	root  K
	left  *K
	right *K
	color rbcolor
	depth int
}

func (vn visitedNode[K]) String() string {
	return fmt.Sprintf("root [%v,%v], left %v, right %v, depth %d",
		vn.root, vn.color, deref(vn.left), deref(vn.right), vn.depth)
}

func deref[K any](k *K) any {
	if k == nil {
		return "nil"
	}
	return *k
}

// visitLevel traverses tree in level order.
// used for testing
func (t *rbTree[K, V]) visitLevel() []visitedNode[K] {
	if t.root == nil {
		return nil
	}

	rs := make([]visitedNode[K], 0, t.Len())

	type pair struct {
		node  *rbNode[K, V]
		depth int
	}
	queue := []pair{{t.root, 0}}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		nn := visitedNode[K]{
			root:  f.node.key,
			color: f.node.color(),
			depth: f.depth,
		}
		if f.node.left != nil {
			k := f.node.left.key
			nn.left = &k
			queue = append(queue, pair{f.node.left, f.depth + 1})
		}
		if f.node.right != nil {
			k := f.node.right.key
			nn.right = &k
			queue = append(queue, pair{f.node.right, f.depth + 1})
		}
		rs = append(rs, nn)
	}
	return rs
}

// checkInvariants verifies the red-black properties and the parent links,
// returning the black height of the tree.
// used for testing
func (t *rbTree[K, V]) checkInvariants() (int, error) {
	if t.root.color() != black {
		return 0, fmt.Errorf("root is %v", t.root.color())
	}
	var walk func(x *rbNode[K, V]) (int, error)
	walk = func(x *rbNode[K, V]) (int, error) {
		if x == nil {
			return 1, nil
		}
		for _, ch := range []*rbNode[K, V]{x.left, x.right} {
			if ch == nil {
				continue
			}
			if ch.parent != x {
				return 0, fmt.Errorf("node %v: broken parent link on child %v", x.key, ch.key)
			}
			if x.c == red && ch.c == red {
				return 0, fmt.Errorf("node %v: red node with red child %v", x.key, ch.key)
			}
		}
		if x.left != nil && t.cmp(x.left.key, x.key) >= 0 {
			return 0, fmt.Errorf("node %v: left child %v out of order", x.key, x.left.key)
		}
		if x.right != nil && t.cmp(x.right.key, x.key) <= 0 {
			return 0, fmt.Errorf("node %v: right child %v out of order", x.key, x.right.key)
		}
		lh, err := walk(x.left)
		if err != nil {
			return 0, err
		}
		rh, err := walk(x.right)
		if err != nil {
			return 0, err
		}
		if lh != rh {
			return 0, fmt.Errorf("node %v: black height %d != %d", x.key, lh, rh)
		}
		if x.c == black {
			lh++
		}
		return lh, nil
	}
	return walk(t.root)
}
