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
	"math"
	"reflect"
)

// reservedMin returns the minimum representable value of T: the most
// negative integer, zero for unsigned types, negative infinity for floats
// and the empty string for strings.
func reservedMin[T cmp.Ordered]() T {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		rv.SetInt(-1 << (rv.Type().Bits() - 1))
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(math.Inf(-1))
	}
	// unsigned integers, uintptr and strings are already at their minimum
	return v
}

// isNaN reports whether v is a floating point NaN, which has no place in a
// total order.
func isNaN[T cmp.Ordered](v T) bool {
	return v != v
}
