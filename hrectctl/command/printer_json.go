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
package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hyperrect/hrect/pkg/dataset"
	"github.com/hyperrect/hrect/pkg/hrect"
)

type jsonPrinter struct {
	w io.Writer
}

// Overlaps prints the results in the dataset file format so that they can
// be loaded again.
func (p *jsonPrinter) Overlaps(rs []hrect.MultiDimInterval[float64]) {
	f := dataset.File{Rects: make([]dataset.Rect, len(rs))}
	for i, r := range rs {
		f.Rects[i] = dataset.Rect{Start: r.Start, End: r.End}
	}
	if len(rs) > 0 {
		f.Dims = len(rs[0].Start)
	}
	p.print(f)
}

func (p *jsonPrinter) DoOverlap(ok bool) {
	p.print(struct {
		Overlap bool `json:"overlap"`
	}{ok})
}

func (p *jsonPrinter) Stats(st []hrect.LevelStats) { p.print(st) }
func (p *jsonPrinter) Check(r checkReport)         { p.print(r) }
func (p *jsonPrinter) Bench(r benchReport)         { p.print(r) }

func (p *jsonPrinter) print(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	fmt.Fprintln(p.w, string(b))
}
