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
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperrect/hrect/pkg/cobrautl"
	"github.com/hyperrect/hrect/pkg/dataset"
	"github.com/hyperrect/hrect/pkg/hrect"
	"github.com/hyperrect/hrect/pkg/rectset"
	"github.com/hyperrect/hrect/pkg/syncindex"
)

var (
	checkData    string
	checkQueries int
	checkSeed    int64
)

// NewCheckCommand returns the cobra command for "check".
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check --data <file>",
		Short: "Cross-checks an index built from a rectangle file against a brute-force scan",
		Long: `Builds an index from the file, then runs every stored rectangle and a set
of random queries against both the index and a brute-force set. A rectangle
the scan finds but the index does not is a miss. Finally every rectangle is
deleted and the index must end up empty.`,
		Run: checkCommandFunc,
	}
	cmd.Flags().StringVar(&checkData, "data", "", "path to a YAML or JSON rectangle file")
	cmd.Flags().IntVar(&checkQueries, "queries", 1000, "number of random queries")
	cmd.Flags().Int64Var(&checkSeed, "seed", 1, "seed of the random queries")
	cmd.MarkFlagRequired("data")
	return cmd
}

type checkReport struct {
	Rects        int `json:"rects"`
	Queries      int `json:"queries"`
	Results      int `json:"results"`
	Misses       int `json:"misses"`
	Phantoms     int `json:"phantoms"`
	Deleted      int `json:"deleted"`
	DeleteErrors int `json:"delete-errors"`
	Remaining    int `json:"remaining"`
}

// OK reports whether the index found everything the scan found and emptied
// cleanly. Phantoms are reported but tolerated.
func (r checkReport) OK() bool {
	return r.Misses == 0 && r.DeleteErrors == 0 && r.Remaining == 0
}

func checkCommandFunc(cmd *cobra.Command, args []string) {
	if len(args) != 0 {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, fmt.Errorf("check command takes no arguments"))
	}
	if checkQueries < 0 {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, fmt.Errorf("expected non-negative --queries, got %d", checkQueries))
	}
	cfg := mustConfigFromCmd(cmd)
	lg := mustLogger(cfg)
	defer lg.Sync()

	ix, f, err := loadIndex(cfg, lg, checkData)
	if err != nil {
		cobrautl.ExitWithError(cobrautl.ExitInvalidInput, err)
	}
	queries := append(append([]dataset.Rect{}, f.Rects...), randomQueries(f, cfg.Dims, checkQueries, checkSeed)...)

	r, err := runCheck(lg, ix, f.Rects, queries)
	if err != nil {
		cobrautl.ExitWithError(cobrautl.ExitError, err)
	}
	display.Check(r)
	if !r.OK() {
		cobrautl.ExitWithError(cobrautl.ExitCheckFailed, errors.New("index disagrees with the brute-force scan"))
	}
}

// runCheck compares ix, which must hold exactly rects, with a brute-force
// set on every query, then deletes every rectangle from ix.
func runCheck(lg *zap.Logger, ix *syncindex.Index[float64], rects, queries []dataset.Rect) (checkReport, error) {
	set := rectset.New[float64]()
	for _, r := range rects {
		set.Add(rectset.Normalize(r.Start, r.End))
	}
	rep := checkReport{Rects: len(rects), Queries: len(queries)}

	for _, q := range queries {
		got, err := ix.GetOverlaps(q.Start, q.End)
		if err != nil {
			return rep, err
		}
		rep.Results += len(got)
		want := set.Overlapping(rectset.Normalize(q.Start, q.End))

		found := keySet(got)
		expected := keySet(want)
		for k := range expected {
			if _, ok := found[k]; !ok {
				rep.Misses++
				lg.Warn("index missed an overlapping rectangle",
					zap.Float64s("query-start", q.Start), zap.Float64s("query-end", q.End), zap.String("rectangle", k))
			}
		}
		for k := range found {
			if _, ok := expected[k]; !ok {
				rep.Phantoms++
			}
		}
	}

	for _, r := range rects {
		if err := ix.Delete(r.Start, r.End); err != nil {
			rep.DeleteErrors++
			lg.Warn("failed to delete rectangle", zap.Float64s("start", r.Start), zap.Float64s("end", r.End), zap.Error(err))
			continue
		}
		rep.Deleted++
	}
	rep.Remaining = ix.Count()
	return rep, nil
}

func keySet(rs []hrect.MultiDimInterval[float64]) map[string]struct{} {
	m := make(map[string]struct{}, len(rs))
	for _, r := range rs {
		m[r.String()] = struct{}{}
	}
	return m
}

// randomQueries returns n query boxes spread over the bounding box of f.
func randomQueries(f *dataset.File, dims, n int, seed int64) []dataset.Rect {
	lo, hi := bounds(f, dims)
	g := dataset.NewGenerator(seed, dims, 1, 0.25)
	qs := make([]dataset.Rect, n)
	for i := range qs {
		u := g.Rect()
		for d := 0; d < dims; d++ {
			w := hi[d] - lo[d]
			u.Start[d] = lo[d] + u.Start[d]*w
			u.End[d] = lo[d] + u.End[d]*w
		}
		qs[i] = u
	}
	return qs
}

// bounds returns the smallest box holding every rectangle of f, or the
// unit box if f is empty.
func bounds(f *dataset.File, dims int) (lo, hi []float64) {
	lo, hi = make([]float64, dims), make([]float64, dims)
	if len(f.Rects) == 0 {
		for d := range hi {
			hi[d] = 1
		}
		return lo, hi
	}
	for d := 0; d < dims; d++ {
		lo[d], hi[d] = f.Rects[0].Start[d], f.Rects[0].Start[d]
	}
	for _, r := range f.Rects {
		for d := 0; d < dims; d++ {
			lo[d] = min(lo[d], r.Start[d], r.End[d])
			hi[d] = max(hi[d], r.Start[d], r.End[d])
		}
	}
	return lo, hi
}
