/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reflect

import (
	"errors"
	"fmt"
	"reflect"
)

// DefaultMaxUnwrap is the pointer unwrap depth used when a caller passes a
// non-positive limit.
const DefaultMaxUnwrap = 8

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTooDeep indicates that the type is still a pointer after
	// unwrapping the allowed number of levels.
	ErrReflectTooDeep = errors.New("reflect: pointer nesting exceeds unwrap limit")
	// ErrReflectKind indicates that the base type is neither a struct nor
	// an integer type and therefore can never be reflected.
	ErrReflectKind = errors.New("reflect: type kind cannot be reflected")
)

// Normalize strips up to maxUnwrap pointer levels from t and returns the
// base type, which must be a struct or an integer (enum candidate) type.
//
// If maxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, maxUnwrap int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if maxUnwrap <= 0 {
		maxUnwrap = DefaultMaxUnwrap
	}

	for i := 0; t.Kind() == reflect.Ptr && i < maxUnwrap; i++ {
		t = t.Elem()
	}
	if t.Kind() == reflect.Ptr {
		return nil, fmt.Errorf("%w: %s", ErrReflectTooDeep, t)
	}

	if t.Kind() == reflect.Struct || IsEnumKind(t.Kind()) {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s (%s)", ErrReflectKind, t, t.Kind())
}

// IsEnumKind reports whether values of kind k can act as enumerators.
func IsEnumKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// IsSigned reports whether k is a signed integer kind.
func IsSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// Indirect follows pointers in v until it reaches a non-pointer value.
// It returns the zero Value if a nil pointer is encountered.
func Indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
