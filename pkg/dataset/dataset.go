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
// Package dataset reads, writes and generates rectangle files.
//
// A file is YAML or JSON:
//
//	dims: 2
//	rects:
//	- start: [0, 0]
//	  end: [10, 10]
package dataset

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// ErrDimensionMismatch is wrapped by every dimensionality error Validate reports.
var ErrDimensionMismatch = errors.New("dataset: dimension mismatch")

// Rect is one rectangle with inclusive bounds.
type Rect struct {
	Start []float64 `json:"start"`
	End   []float64 `json:"end"`
}

// File is a set of rectangles sharing one dimension count.
type File struct {
	// Dims is optional; when zero it is taken from the first rectangle.
	Dims  int    `json:"dims,omitempty"`
	Rects []Rect `json:"rects"`
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes and validates a YAML or JSON document.
func Parse(b []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("dataset: cannot decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate fills in Dims when absent and checks that every rectangle has
// Dims coordinates on both bounds.
func (f *File) Validate() error {
	if f.Dims < 0 {
		return fmt.Errorf("%w: negative dims %d", ErrDimensionMismatch, f.Dims)
	}
	if f.Dims == 0 && len(f.Rects) > 0 {
		f.Dims = len(f.Rects[0].Start)
	}
	for i, r := range f.Rects {
		if len(r.Start) != f.Dims || len(r.End) != f.Dims {
			return fmt.Errorf("%w: rects[%d] has %d start and %d end coordinates, want %d",
				ErrDimensionMismatch, i, len(r.Start), len(r.End), f.Dims)
		}
	}
	if f.Dims == 0 && len(f.Rects) > 0 {
		return fmt.Errorf("%w: rectangles have no coordinates", ErrDimensionMismatch)
	}
	return nil
}

// Save writes f to path as YAML.
func (f *File) Save(path string) error {
	b, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
