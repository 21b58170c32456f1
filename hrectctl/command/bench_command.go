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
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/hyperrect/hrect/pkg/cobrautl"
	"github.com/hyperrect/hrect/pkg/dataset"
)

var (
	benchTotal       int
	benchQueries     int
	benchClients     int
	benchSpan        float64
	benchExtent      float64
	benchSeed        int64
	benchDelete      bool
	benchMetricsAddr string
)

// NewBenchCommand returns the cobra command for "bench".
func NewBenchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmarks insert, query and delete on random rectangles",
		Run:   benchCommandFunc,
	}
	cmd.Flags().IntVar(&benchTotal, "total", 10000, "total number of rectangles to insert")
	cmd.Flags().IntVar(&benchQueries, "queries", 0, "total number of overlap queries (0 is --total)")
	cmd.Flags().IntVar(&benchClients, "clients", 4, "number of concurrent clients")
	cmd.Flags().Float64Var(&benchSpan, "span", 1000, "coordinates are drawn from [0, span) on every axis")
	cmd.Flags().Float64Var(&benchExtent, "extent", 10, "maximum side length of a rectangle")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "seed of the random rectangles")
	cmd.Flags().BoolVar(&benchDelete, "delete", false, "delete every rectangle after querying")
	cmd.Flags().StringVar(&benchMetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running, e.g. localhost:2112")
	return cmd
}

type phaseReport struct {
	Name      string        `json:"name"`
	Ops       int           `json:"ops"`
	Errors    int           `json:"errors"`
	Duration  time.Duration `json:"duration"`
	OpsPerSec float64       `json:"ops-per-sec"`
}

type benchReport struct {
	Dims      int           `json:"dims"`
	Clients   int           `json:"clients"`
	Phases    []phaseReport `json:"phases"`
	HeapInuse uint64        `json:"heap-inuse"`
}

func benchCommandFunc(cmd *cobra.Command, args []string) {
	if len(args) != 0 {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, fmt.Errorf("bench command takes no arguments"))
	}
	if benchTotal <= 0 || benchClients <= 0 {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, fmt.Errorf("expected positive --total and --clients, got %d and %d", benchTotal, benchClients))
	}
	if benchQueries < 0 {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, fmt.Errorf("expected non-negative --queries, got %d", benchQueries))
	}
	if benchSpan <= 0 {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, fmt.Errorf("expected positive --span, got %v", benchSpan))
	}
	cfg := mustConfigFromCmd(cmd)
	lg := mustLogger(cfg)
	defer lg.Sync()

	if benchMetricsAddr != "" {
		serveMetrics(lg, benchMetricsAddr)
	}

	ix, err := newIndex(cfg, lg)
	if err != nil {
		cobrautl.ExitWithError(cobrautl.ExitBadArgs, err)
	}
	nq := benchQueries
	if nq == 0 {
		nq = benchTotal
	}
	g := dataset.NewGenerator(benchSeed, cfg.Dims, benchSpan, benchExtent)
	rects, queries := g.File(benchTotal).Rects, g.File(nq).Rects

	rep := benchReport{Dims: cfg.Dims, Clients: benchClients}
	rep.Phases = append(rep.Phases, runPhase("insert", benchClients, rects, os.Stderr, func(r dataset.Rect) error {
		return ix.Insert(r.Start, r.End)
	}))

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	rep.HeapInuse = ms.HeapInuse

	rep.Phases = append(rep.Phases, runPhase("query", benchClients, queries, os.Stderr, func(r dataset.Rect) error {
		_, err := ix.GetOverlaps(r.Start, r.End)
		return err
	}))
	if benchDelete {
		rep.Phases = append(rep.Phases, runPhase("delete", benchClients, rects, os.Stderr, func(r dataset.Rect) error {
			return ix.Delete(r.Start, r.End)
		}))
	}
	lg.Debug("benchmark finished", zap.Int("remaining", ix.Count()))
	display.Bench(rep)
}

// runPhase feeds rs to clients goroutines running op and reports the
// throughput. A nil progress writer hides the progress bar.
func runPhase(name string, clients int, rs []dataset.Rect, progress io.Writer, op func(dataset.Rect) error) phaseReport {
	requests := make(chan dataset.Rect, clients)

	bar := pb.New(len(rs))
	bar.Prefix(name + " ")
	bar.Format("Bom !")
	if progress == nil {
		bar.NotPrint = true
	} else {
		bar.Output = progress
	}
	bar.Start()

	var (
		wg   sync.WaitGroup
		errs atomic.Int64
	)
	st := time.Now()
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range requests {
				if err := op(r); err != nil {
					errs.Add(1)
				}
				bar.Increment()
			}
		}()
	}
	for _, r := range rs {
		requests <- r
	}
	close(requests)
	wg.Wait()
	bar.Finish()

	took := time.Since(st)
	return phaseReport{
		Name:      name,
		Ops:       len(rs),
		Errors:    int(errs.Load()),
		Duration:  took,
		OpsPerSec: float64(len(rs)) / took.Seconds(),
	}
}

func serveMetrics(lg *zap.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Warn("metrics server stopped", zap.String("address", addr), zap.Error(err))
		}
	}()
	lg.Info("serving metrics", zap.String("address", addr), zap.String("path", "/metrics"))
}
