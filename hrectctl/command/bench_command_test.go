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
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hyperrect/hrect/pkg/dataset"
)

func TestRunPhase(t *testing.T) {
	rs := dataset.NewGenerator(1, 2, 10, 1).File(100).Rects

	var calls atomic.Int64
	rep := runPhase("insert", 4, rs, nil, func(r dataset.Rect) error {
		if calls.Add(1)%10 == 0 {
			return errors.New("boom")
		}
		return nil
	})
	assert.Equal(t, int64(100), calls.Load())
	assert.Equal(t, "insert", rep.Name)
	assert.Equal(t, 100, rep.Ops)
	assert.Equal(t, 10, rep.Errors)
	assert.Positive(t, rep.Duration)
	assert.Positive(t, rep.OpsPerSec)
}
