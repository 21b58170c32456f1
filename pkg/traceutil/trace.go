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


// Package traceutil times the stages of one index operation and logs the
// operation when it runs past a threshold.
package traceutil

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SlowMessage is the message of the entry logged for a slow operation.
const SlowMessage = "slow index operation"

// Trace records one operation on an index of a given dimension count.
type Trace struct {
	lg     *zap.Logger
	op     string
	dims   int
	fields []zap.Field
	start  time.Time
	steps  []step
}

type step struct {
	name   string
	at     time.Time
	fields []zap.Field
}

// New starts tracing op. A nil logger yields a trace that never logs.
func New(lg *zap.Logger, op string, dims int, fields ...zap.Field) *Trace {
	return &Trace{lg: lg, op: op, dims: dims, fields: fields, start: time.Now()}
}

// Step marks the end of the stage named name.
func (t *Trace) Step(name string, fields ...zap.Field) {
	t.steps = append(t.steps, step{name: name, at: time.Now(), fields: fields})
}

// AddField attaches fields to the whole operation.
func (t *Trace) AddField(fields ...zap.Field) {
	t.fields = append(t.fields, fields...)
}

// Duration is the time elapsed since the trace started.
func (t *Trace) Duration() time.Duration {
	return time.Since(t.start)
}

// LogIfLong logs the operation and the duration of each of its stages if it
// has run for longer than threshold, and reports whether it did.
func (t *Trace) LogIfLong(threshold time.Duration) bool {
	took := t.Duration()
	if took <= threshold {
		return false
	}
	if t.lg != nil {
		fs := make([]zap.Field, 0, len(t.fields)+4)
		fs = append(fs,
			zap.String("op", t.op),
			zap.Int("dims", t.dims),
			zap.Duration("took", took),
		)
		fs = append(fs, t.fields...)
		fs = append(fs, zap.Array("steps", t.stepArray()))
		t.lg.Warn(SlowMessage, fs...)
	}
	return true
}

// stepArray renders each stage with the time taken since the previous one.
func (t *Trace) stepArray() zapcore.ArrayMarshalerFunc {
	return func(enc zapcore.ArrayEncoder) error {
		last := t.start
		for _, s := range t.steps {
			took := s.at.Sub(last)
			last = s.at
			err := enc.AppendObject(zapcore.ObjectMarshalerFunc(func(oe zapcore.ObjectEncoder) error {
				oe.AddString("step", s.name)
				oe.AddDuration("took", took)
				for _, f := range s.fields {
					f.AddTo(oe)
				}
				return nil
			}))
			if err != nil {
				return err
			}
		}
		return nil
	}
}
