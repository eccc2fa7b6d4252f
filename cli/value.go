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

package cli

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"dirpx.dev/refl"
	"dirpx.dev/refl/mirror"
	uref "dirpx.dev/refl/utils/reflect"
)

var durationType = reflect.TypeFor[time.Duration]()

// isBool reports whether values of t are set without an argument.
func isBool(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	return t.Kind() == reflect.Bool
}

// setValue parses s into v, which must be settable. Slices append,
// nil pointers are allocated.
func setValue(v reflect.Value, s string) error {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return setValue(v.Elem(), s)
	}
	if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText([]byte(s))
	}
	if v.Kind() == reflect.Slice {
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := setValue(elem, s); err != nil {
			return err
		}
		v.Set(reflect.Append(v, elem))
		return nil
	}
	if v.Type() == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}
	if e, ok := enumOf(v.Type()); ok {
		return setEnum(e, v, s)
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
	return nil
}

// enumOf returns the descriptor of t if it is a reflected enum with
// named values.
func enumOf(t reflect.Type) (*mirror.Type, bool) {
	if !uref.IsEnumKind(t.Kind()) || t.Name() == "" || t.PkgPath() == "" || t == durationType {
		return nil, false
	}
	e, err := refl.TypeOf(t)
	if err != nil || e.Kind() != mirror.Enum {
		return nil, false
	}
	return e, true
}

// setEnum matches s against the enumerator names of e without regard to
// case, then falls back to a numeric value naming an enumerator.
func setEnum(e *mirror.Type, v reflect.Value, s string) error {
	fold := cases.Fold()
	want := fold.String(normalize(s))
	for _, val := range e.Values() {
		if fold.String(normalize(val.Name())) == want {
			v.Set(val.Reflect())
			return nil
		}
	}
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		if val, ok := e.LookupValue(n); ok {
			v.Set(val.Reflect())
			return nil
		}
	}
	return fmt.Errorf("want one of %s", strings.Join(choices(e), ", "))
}

func choices(e *mirror.Type) []string {
	vals := e.Values()
	out := make([]string, len(vals))
	for i, val := range vals {
		out[i] = val.Name()
	}
	return out
}
