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
package dataset

import "math/rand"

// Generator produces pseudo-random rectangles inside [0, Span) on every axis.
// The same seed yields the same sequence.
type Generator struct {
	dims      int
	span      float64
	maxExtent float64
	r         *rand.Rand
}

// NewGenerator returns a generator of dims-dimensional rectangles whose
// side lengths do not exceed maxExtent. A non-positive maxExtent means span.
func NewGenerator(seed int64, dims int, span, maxExtent float64) *Generator {
	if maxExtent <= 0 || maxExtent > span {
		maxExtent = span
	}
	return &Generator{dims: dims, span: span, maxExtent: maxExtent, r: rand.New(rand.NewSource(seed))}
}

// Rect returns the next rectangle. Start is never above End.
func (g *Generator) Rect() Rect {
	r := Rect{Start: make([]float64, g.dims), End: make([]float64, g.dims)}
	for i := 0; i < g.dims; i++ {
		s := g.r.Float64() * g.span
		e := s + g.r.Float64()*g.maxExtent
		r.Start[i], r.End[i] = s, min(e, g.span)
	}
	return r
}

// File returns a file of n rectangles.
func (g *Generator) File(n int) *File {
	f := &File{Dims: g.dims, Rects: make([]Rect, n)}
	for i := range f.Rects {
		f.Rects[i] = g.Rect()
	}
	return f
}
