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
// Package syncindex guards an hrect.Index with one lock and instruments it.
//
// Mutations take the lock exclusively. Queries share it: overlap searches
// keep their match state on the stack and never write to the index.
package syncindex

import (
	"cmp"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperrect/hrect/pkg/hrect"
	"github.com/hyperrect/hrect/pkg/traceutil"
)

const (
	opInsert    = "insert"
	opDelete    = "delete"
	opDoOverlap = "do_overlap"
	opOverlaps  = "get_overlaps"

	// DefaultSlowThreshold is the duration past which an operation is logged.
	DefaultSlowThreshold = 100 * time.Millisecond
	// DefaultName labels the metrics of an index configured without a name.
	DefaultName = "default"
)

// Config configures a guarded index.
type Config struct {
	// Name labels the index in logs and per-index metrics. Indexes sharing
	// a name share their interval gauge. Defaults to DefaultName.
	Name string
	// Dimensions is the dimension count of the index.
	Dimensions int
	// Logger receives rejected operations and slow operation traces.
	// Defaults to a no-op logger.
	Logger *zap.Logger
	// SlowThreshold defaults to DefaultSlowThreshold; negative disables
	// slow operation logging.
	SlowThreshold time.Duration
	// Options are passed to hrect.New.
	Options []hrect.Option
}

// Index is an hrect.Index safe for concurrent use.
type Index[T cmp.Ordered] struct {
	mu sync.RWMutex
	ix *hrect.Index[T]

	name          string
	lg            *zap.Logger
	slowThreshold time.Duration
}

// New returns an empty guarded index.
func New[T cmp.Ordered](cfg Config) (*Index[T], error) {
	name := cfg.Name
	if name == "" {
		name = DefaultName
	}
	lg := cfg.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	lg = lg.With(zap.String("index", name))
	ix, err := hrect.New[T](cfg.Dimensions, cfg.Options...)
	if err != nil {
		lg.Warn("failed to create index", zap.Int("dimensions", cfg.Dimensions), zap.Error(err))
		return nil, err
	}
	st := cfg.SlowThreshold
	if st == 0 {
		st = DefaultSlowThreshold
	}
	return &Index[T]{ix: ix, name: name, lg: lg, slowThreshold: st}, nil
}

// Name returns the label of the index.
func (s *Index[T]) Name() string { return s.name }

// Dimensions returns the dimension count of the index.
func (s *Index[T]) Dimensions() int { return s.ix.Dimensions() }

// Count returns the number of intervals currently inserted.
func (s *Index[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ix.Count()
}

// Stats returns per-dimension statistics of the index forest.
func (s *Index[T]) Stats() []hrect.LevelStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ix.Stats()
}

// Insert stores an interval.
func (s *Index[T]) Insert(start, end []T) error {
	tr := s.trace(opInsert, start, end)
	s.mu.Lock()
	tr.Step("acquired lock")
	err := s.ix.Insert(start, end)
	s.mu.Unlock()
	tr.Step("fanned out")

	s.done(opInsert, tr, start, end, err)
	if err == nil {
		intervals.WithLabelValues(s.name).Inc()
	}
	return err
}

// Delete removes an interval.
func (s *Index[T]) Delete(start, end []T) error {
	tr := s.trace(opDelete, start, end)
	s.mu.Lock()
	tr.Step("acquired lock")
	err := s.ix.Delete(start, end)
	s.mu.Unlock()
	tr.Step("unwound fan-out")

	s.done(opDelete, tr, start, end, err)
	if err == nil {
		intervals.WithLabelValues(s.name).Dec()
	}
	return err
}

// DoOverlap reports whether any stored interval overlaps the query.
func (s *Index[T]) DoOverlap(start, end []T) (bool, error) {
	tr := s.trace(opDoOverlap, start, end)
	s.mu.RLock()
	tr.Step("acquired lock")
	ok, err := s.ix.DoOverlap(start, end)
	s.mu.RUnlock()
	tr.Step("searched", zap.Bool("found", ok))

	s.done(opDoOverlap, tr, start, end, err)
	return ok, err
}

// GetOverlaps returns every stored interval overlapping the query.
func (s *Index[T]) GetOverlaps(start, end []T) ([]hrect.MultiDimInterval[T], error) {
	tr := s.trace(opOverlaps, start, end)
	s.mu.RLock()
	tr.Step("acquired lock")
	rs, err := s.ix.GetOverlaps(start, end)
	s.mu.RUnlock()
	tr.Step("searched", zap.Int("results", len(rs)))

	s.done(opOverlaps, tr, start, end, err)
	if err == nil {
		overlapResults.Observe(float64(len(rs)))
	}
	return rs, err
}

func (s *Index[T]) trace(op string, start, end []T) *traceutil.Trace {
	return traceutil.New(s.lg, op, s.ix.Dimensions(), zap.Any("start", start), zap.Any("end", end))
}

func (s *Index[T]) done(op string, tr *traceutil.Trace, start, end []T, err error) {
	opsTotal.WithLabelValues(op).Inc()
	opDurations.WithLabelValues(op).Observe(tr.Duration().Seconds())
	if err != nil {
		reason := failureReason(err)
		opFailures.WithLabelValues(op, reason).Inc()
		if reason == "internal" {
			s.lg.Warn("index operation failed",
				zap.String("op", op), zap.Any("start", start), zap.Any("end", end), zap.Error(err))
		} else {
			s.lg.Debug("index operation rejected",
				zap.String("op", op), zap.String("reason", reason), zap.Error(err))
		}
	}
	if s.slowThreshold > 0 && tr.LogIfLong(s.slowThreshold) {
		slowOperations.Inc()
	}
}
