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
	"cmp"
	"fmt"
	"strings"
)

// MultiDimInterval is one overlap result. It is owned by the caller.
type MultiDimInterval[T cmp.Ordered] struct {
	Start []T
	End   []T
}

// Equal reports whether both intervals have the same bounds on every axis.
func (m MultiDimInterval[T]) Equal(o MultiDimInterval[T]) bool {
	if len(m.Start) != len(o.Start) || len(m.End) != len(o.End) {
		return false
	}
	for i := range m.Start {
		if m.Start[i] != o.Start[i] {
			return false
		}
	}
	for i := range m.End {
		if m.End[i] != o.End[i] {
			return false
		}
	}
	return true
}

func (m MultiDimInterval[T]) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i := range m.Start {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "[%v,%v]", m.Start[i], m.End[i])
	}
	b.WriteString("}")
	return b.String()
}
