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
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/hyperrect/hrect/pkg/hrect"
)

type tablePrinter struct {
	w io.Writer
}

func (tp *tablePrinter) newTable(hdr ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(tp.w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(hdr)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

func (tp *tablePrinter) Overlaps(rs []hrect.MultiDimInterval[float64]) {
	dims := 0
	if len(rs) > 0 {
		dims = len(rs[0].Start)
	}
	table := tp.newTable(append([]string{"#"}, axisHeader(dims)...)...)
	for i, r := range rs {
		table.Append(append([]string{strconv.Itoa(i)}, formatRect(r)...))
	}
	table.Render()
}

func (tp *tablePrinter) DoOverlap(ok bool) {
	table := tp.newTable("OVERLAP")
	table.Append([]string{strconv.FormatBool(ok)})
	table.Render()
}

func (tp *tablePrinter) Stats(st []hrect.LevelStats) {
	table := tp.newTable("DIMENSION", "TREES", "ENTRIES", "INTERVALS", "MAX HEIGHT")
	for _, l := range st {
		table.Append([]string{
			strconv.Itoa(l.Dimension),
			humanize.Comma(int64(l.Trees)),
			humanize.Comma(int64(l.Entries)),
			humanize.Comma(int64(l.Intervals)),
			strconv.Itoa(l.MaxHeight),
		})
	}
	table.Render()
}

func (tp *tablePrinter) Check(r checkReport) {
	table := tp.newTable("RECTS", "QUERIES", "RESULTS", "MISSES", "PHANTOMS", "DELETED", "DELETE ERRORS", "REMAINING", "STATUS")
	status := "OK"
	if !r.OK() {
		status = "FAILED"
	}
	table.Append([]string{
		strconv.Itoa(r.Rects),
		strconv.Itoa(r.Queries),
		strconv.Itoa(r.Results),
		strconv.Itoa(r.Misses),
		strconv.Itoa(r.Phantoms),
		strconv.Itoa(r.Deleted),
		strconv.Itoa(r.DeleteErrors),
		strconv.Itoa(r.Remaining),
		status,
	})
	table.Render()
}

func (tp *tablePrinter) Bench(r benchReport) {
	table := tp.newTable("PHASE", "OPS", "ERRORS", "DURATION", "OPS/SEC")
	for _, p := range r.Phases {
		table.Append([]string{
			p.Name,
			humanize.Comma(int64(p.Ops)),
			strconv.Itoa(p.Errors),
			p.Duration.String(),
			humanize.CommafWithDigits(p.OpsPerSec, 2),
		})
	}
	table.SetFooter([]string{"", "", "", "HEAP IN USE", humanize.Bytes(r.HeapInuse)})
	table.Render()
}
