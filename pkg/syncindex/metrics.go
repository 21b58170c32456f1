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

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hyperrect/hrect/pkg/hrect"
)

var (
	opsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hrect",
			Subsystem: "index",
			Name:      "operations_total",
			Help:      "The total number of index operations, by operation.",
		},
		[]string{"op"},
	)
	opFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hrect",
			Subsystem: "index",
			Name:      "operation_failures_total",
			Help:      "The total number of failed index operations, by operation and reason.",
		},
		[]string{"op", "reason"},
	)
	opDurations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hrect",
			Subsystem: "index",
			Name:      "operation_duration_seconds",
			Help:      "The latency distributions of index operations.",

			// lowest bucket start of upper bound 0.00001 sec (10 us) with factor 2
			// highest bucket start of 0.00001 sec * 2^15 == 0.32768 sec
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16),
		},
		[]string{"op"},
	)
	overlapResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hrect",
		Subsystem: "index",
		Name:      "overlap_results",
		Help:      "The number of intervals returned by overlap queries.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})
	intervals = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "hrect",
			Subsystem: "index",
			Name:      "intervals",
			Help:      "The number of intervals held, by index name.",
		},
		[]string{"index"},
	)
	slowOperations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hrect",
		Subsystem: "index",
		Name:      "slow_operations_total",
		Help:      "The total number of operations that exceeded the slow operation threshold.",
	})
)

func init() {
	prometheus.MustRegister(opsTotal)
	prometheus.MustRegister(opFailures)
	prometheus.MustRegister(opDurations)
	prometheus.MustRegister(overlapResults)
	prometheus.MustRegister(intervals)
	prometheus.MustRegister(slowOperations)
}

// failureReason maps an index error to a low-cardinality label value.
func failureReason(err error) string {
	switch {
	case errors.Is(err, hrect.ErrValidation):
		return "validation"
	case errors.Is(err, hrect.ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
