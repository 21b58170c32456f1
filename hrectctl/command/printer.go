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
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/hyperrect/hrect/pkg/hrect"
)

var printerTypes = map[string]struct{}{
	"simple": {},
	"json":   {},
	"table":  {},
}

type printer interface {
	Overlaps(rs []hrect.MultiDimInterval[float64])
	DoOverlap(ok bool)
	Stats(st []hrect.LevelStats)
	Check(r checkReport)
	Bench(r benchReport)
}

// NewPrinter returns the printer for printerType writing to w, or nil if
// the type is unknown.
func NewPrinter(printerType string, w io.Writer) printer {
	switch printerType {
	case "simple":
		return &simplePrinter{w: w}
	case "json":
		return &jsonPrinter{w: w}
	case "table":
		return &tablePrinter{w: w}
	}
	return nil
}

type simplePrinter struct {
	w io.Writer
}

func (s *simplePrinter) Overlaps(rs []hrect.MultiDimInterval[float64]) {
	for _, r := range rs {
		fmt.Fprintln(s.w, r.String())
	}
}

func (s *simplePrinter) DoOverlap(ok bool) { fmt.Fprintln(s.w, ok) }

func (s *simplePrinter) Stats(st []hrect.LevelStats) {
	for _, l := range st {
		fmt.Fprintf(s.w, "dimension %d: %d trees, %d entries, %d intervals, max height %d\n",
			l.Dimension, l.Trees, l.Entries, l.Intervals, l.MaxHeight)
	}
}

func (s *simplePrinter) Check(r checkReport) {
	fmt.Fprintf(s.w, "%d queries against %d rectangles: %d results, %d misses, %d phantoms\n",
		r.Queries, r.Rects, r.Results, r.Misses, r.Phantoms)
	fmt.Fprintf(s.w, "deleted %d rectangles: %d errors, %d remaining\n",
		r.Deleted, r.DeleteErrors, r.Remaining)
	if r.OK() {
		fmt.Fprintln(s.w, "OK")
	} else {
		fmt.Fprintln(s.w, "FAILED")
	}
}

func (s *simplePrinter) Bench(r benchReport) {
	for _, p := range r.Phases {
		fmt.Fprintf(s.w, "%s: %s ops in %v (%s ops/sec), %d errors\n",
			p.Name, humanize.Comma(int64(p.Ops)), p.Duration, humanize.CommafWithDigits(p.OpsPerSec, 2), p.Errors)
	}
	fmt.Fprintf(s.w, "heap in use after inserts: %s\n", humanize.Bytes(r.HeapInuse))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatBounds(s, e float64) string {
	return "[" + formatCoord(s) + ", " + formatCoord(e) + "]"
}

func formatRect(r hrect.MultiDimInterval[float64]) []string {
	row := make([]string, len(r.Start))
	for i := range r.Start {
		row[i] = formatBounds(r.Start[i], r.End[i])
	}
	return row
}

func axisHeader(dims int) []string {
	h := make([]string, dims)
	for i := range h {
		h[i] = "AXIS " + strconv.Itoa(i)
	}
	return h
}
