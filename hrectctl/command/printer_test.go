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
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperrect/hrect/pkg/dataset"
	"github.com/hyperrect/hrect/pkg/hrect"
)

var testOverlaps = []hrect.MultiDimInterval[float64]{
	{Start: []float64{0, 0}, End: []float64{10, 10}},
	{Start: []float64{5, 5.5}, End: []float64{15, 15}},
}

func TestNewPrinter(t *testing.T) {
	for name := range printerTypes {
		assert.NotNil(t, NewPrinter(name, &bytes.Buffer{}), name)
	}
	assert.Nil(t, NewPrinter("fields", &bytes.Buffer{}))
}

func TestSimplePrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter("simple", &buf)

	p.Overlaps(testOverlaps)
	assert.Equal(t, "{[0,10] [0,10]}\n{[5,15] [5.5,15]}\n", buf.String())

	buf.Reset()
	p.DoOverlap(true)
	assert.Equal(t, "true\n", buf.String())

	buf.Reset()
	p.Stats([]hrect.LevelStats{{Dimension: 0, Trees: 1, Entries: 2, Intervals: 2, MaxHeight: 2}})
	assert.Equal(t, "dimension 0: 1 trees, 2 entries, 2 intervals, max height 2\n", buf.String())

	buf.Reset()
	p.Check(checkReport{Rects: 2, Queries: 3, Results: 4, Misses: 1})
	assert.True(t, strings.HasSuffix(buf.String(), "FAILED\n"), buf.String())

	buf.Reset()
	p.Bench(benchReport{Phases: []phaseReport{{Name: "insert", Ops: 12345, Duration: time.Second, OpsPerSec: 12345}}, HeapInuse: 2048})
	assert.Equal(t, "insert: 12,345 ops in 1s (12,345 ops/sec), 0 errors\nheap in use after inserts: 2.0 kB\n", buf.String())
}

func TestJSONPrinterOverlaps(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter("json", &buf).Overlaps(testOverlaps)

	f, err := dataset.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, f.Dims)
	require.Len(t, f.Rects, 2)
	assert.Equal(t, []float64{5, 5.5}, f.Rects[1].Start)
}

func TestJSONPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter("json", &buf)

	p.DoOverlap(false)
	assert.JSONEq(t, `{"overlap": false}`, buf.String())

	buf.Reset()
	p.Stats([]hrect.LevelStats{{Dimension: 1, Trees: 2, Entries: 3, Intervals: 4, MaxHeight: 1}})
	assert.JSONEq(t, `[{"dimension":1,"trees":2,"entries":3,"intervals":4,"max-height":1}]`, buf.String())

	buf.Reset()
	p.Check(checkReport{Rects: 1, Queries: 2, Results: 2, Deleted: 1})
	var r checkReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
	assert.True(t, r.OK())
}

func TestTablePrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter("table", &buf)

	p.Overlaps(testOverlaps)
	out := buf.String()
	assert.Contains(t, out, "AXIS 0")
	assert.Contains(t, out, "AXIS 1")
	assert.Contains(t, out, "[5, 15]")
	assert.Contains(t, out, "[5.5, 15]")

	buf.Reset()
	p.Check(checkReport{Rects: 1, Remaining: 1})
	assert.Contains(t, buf.String(), "FAILED")

	buf.Reset()
	p.Bench(benchReport{Phases: []phaseReport{{Name: "query", Ops: 1000, Duration: time.Millisecond, OpsPerSec: 1e6}}})
	assert.Contains(t, buf.String(), "1,000,000")
	assert.Contains(t, buf.String(), "query")
}
