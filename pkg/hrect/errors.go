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

package hrect

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned by New for an unusable dimension count.
	ErrConfiguration = errors.New("hrect: invalid configuration")
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("hrect: invalid interval")
	// ErrNotFound is returned when deleting an interval that is not stored.
	ErrNotFound = errors.New("hrect: interval not found")
)

// ValidationError describes a rejected start or end vector.
type ValidationError struct {
	// Field is "start" or "end".
	Field string
	// Axis is the offending coordinate, or -1 when the whole vector is at fault.
	Axis   int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Axis < 0 {
		return fmt.Sprintf("%v: %s %s", ErrValidation, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s[%d] %s", ErrValidation, e.Field, e.Axis, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func notFound[T any](start, end T) error {
	return fmt.Errorf("%w: [%v, %v]", ErrNotFound, start, end)
}
