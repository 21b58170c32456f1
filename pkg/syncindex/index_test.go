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
package syncindex

import (
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hyperrect/hrect/pkg/hrect"
	"github.com/hyperrect/hrect/pkg/traceutil"
)

func TestNewInvalidDimensions(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	_, err := New[int](Config{Dimensions: 0, Logger: zap.New(core)})
	require.ErrorIs(t, err, hrect.ErrConfiguration)
	assert.Equal(t, 1, logs.FilterMessage("failed to create index").Len())
}

func TestIndexOperations(t *testing.T) {
	ix, err := New[int](Config{Name: "operations", Dimensions: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Dimensions())
	assert.Equal(t, "operations", ix.Name())

	inserts := testutil.ToFloat64(opsTotal.WithLabelValues(opInsert))
	gauge := intervals.WithLabelValues("operations")

	require.NoError(t, ix.Insert([]int{0, 0}, []int{10, 10}))
	require.NoError(t, ix.Insert([]int{5, 5}, []int{15, 15}))
	assert.Equal(t, 2, ix.Count())
	assert.Equal(t, inserts+2, testutil.ToFloat64(opsTotal.WithLabelValues(opInsert)))
	assert.Equal(t, float64(2), testutil.ToFloat64(gauge))

	ok, err := ix.DoOverlap([]int{12, 12}, []int{20, 20})
	require.NoError(t, err)
	assert.True(t, ok)

	rs, err := ix.GetOverlaps([]int{12, 12}, []int{20, 20})
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, []int{5, 5}, rs[0].Start)

	require.NoError(t, ix.Delete([]int{5, 5}, []int{15, 15}))
	assert.Equal(t, 1, ix.Count())
	assert.Equal(t, float64(1), testutil.ToFloat64(gauge))

	st := ix.Stats()
	require.Len(t, st, 2)
	assert.Equal(t, 1, st[0].Intervals)
}

func TestIndexFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ix, err := New[int](Config{Name: "failures", Dimensions: 2, Logger: zap.New(core)})
	require.NoError(t, err)

	invalid := testutil.ToFloat64(opFailures.WithLabelValues(opInsert, "validation"))
	missing := testutil.ToFloat64(opFailures.WithLabelValues(opDelete, "not_found"))

	err = ix.Insert([]int{0}, []int{1, 1})
	var verr *hrect.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, invalid+1, testutil.ToFloat64(opFailures.WithLabelValues(opInsert, "validation")))

	err = ix.Delete([]int{0, 0}, []int{1, 1})
	require.ErrorIs(t, err, hrect.ErrNotFound)
	assert.Equal(t, missing+1, testutil.ToFloat64(opFailures.WithLabelValues(opDelete, "not_found")))

	assert.Equal(t, float64(0), testutil.ToFloat64(intervals.WithLabelValues("failures")))
	assert.Equal(t, 0, ix.Count())

	rejected := logs.FilterMessage("index operation rejected").All()
	require.Len(t, rejected, 2)
	assert.Equal(t, "validation", rejected[0].ContextMap()["reason"])
	assert.Equal(t, "not_found", rejected[1].ContextMap()["reason"])
	assert.Equal(t, "failures", rejected[1].ContextMap()["index"])
}

func TestIntervalsByIndex(t *testing.T) {
	a, err := New[int](Config{Name: "by-index-a", Dimensions: 1})
	require.NoError(t, err)
	b, err := New[int](Config{Name: "by-index-b", Dimensions: 1})
	require.NoError(t, err)

	require.NoError(t, a.Insert([]int{0}, []int{1}))
	require.NoError(t, a.Insert([]int{2}, []int{3}))
	require.NoError(t, b.Insert([]int{0}, []int{1}))
	require.NoError(t, b.Delete([]int{0}, []int{1}))

	assert.Equal(t, float64(2), testutil.ToFloat64(intervals.WithLabelValues("by-index-a")))
	assert.Equal(t, float64(0), testutil.ToFloat64(intervals.WithLabelValues("by-index-b")))
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&hrect.ValidationError{Field: "start", Axis: 0, Reason: "NaN"}, "validation"},
		{hrect.ErrNotFound, "not_found"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, failureReason(tt.err), "%v", tt.err)
	}
}

func TestSlowOperation(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	// a one nanosecond threshold makes every operation slow
	ix, err := New[int](Config{Dimensions: 1, Logger: zap.New(core), SlowThreshold: 1})
	require.NoError(t, err)

	slow := testutil.ToFloat64(slowOperations)
	require.NoError(t, ix.Insert([]int{1}, []int{2}))
	assert.Equal(t, slow+1, testutil.ToFloat64(slowOperations))

	slowLogs := logs.FilterMessage(traceutil.SlowMessage).All()
	require.Len(t, slowLogs, 1)
	ctx := slowLogs[0].ContextMap()
	assert.Equal(t, opInsert, ctx["op"])
	assert.Equal(t, int64(1), ctx["dims"])
	assert.Equal(t, DefaultName, ctx["index"])
	steps, ok := ctx["steps"].([]any)
	require.True(t, ok)
	require.Len(t, steps, 2)
	assert.Equal(t, "acquired lock", steps[0].(map[string]any)["step"])
	assert.Equal(t, "fanned out", steps[1].(map[string]any)["step"])
}

func TestSlowOperationDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ix, err := New[int](Config{Dimensions: 1, Logger: zap.New(core), SlowThreshold: -1})
	require.NoError(t, err)

	slow := testutil.ToFloat64(slowOperations)
	require.NoError(t, ix.Insert([]int{1}, []int{2}))
	assert.Equal(t, slow, testutil.ToFloat64(slowOperations))
	assert.Equal(t, 0, logs.Len())
}

func TestConcurrentAccess(t *testing.T) {
	ix, err := New[int](Config{Dimensions: 2})
	require.NoError(t, err)

	const writers, perWriter = 4, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s := w*perWriter + i
				assert.NoError(t, ix.Insert([]int{s, s}, []int{s + 1, s + 1}))
			}
		}(w)
	}
	for r := 0; r < writers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := ix.GetOverlaps([]int{0, 0}, []int{writers * perWriter, writers * perWriter})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, ix.Count())
	rs, err := ix.GetOverlaps([]int{10, 10}, []int{10, 10})
	require.NoError(t, err)
	got := make([]string, 0, len(rs))
	for _, r := range rs {
		got = append(got, r.String())
	}
	// both squares touch the point on every axis
	assert.Contains(t, got, "{[9,10] [9,10]}")
	assert.Contains(t, got, "{[10,11] [10,11]}")
}
