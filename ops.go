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

package refl

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"dirpx.dev/refl/mirror"
	uref "dirpx.dev/refl/utils/reflect"
)

// ErrNotSettable is returned by Copy when a reflected field of dst cannot
// be assigned, either because dst is not a pointer or because the field
// is unexported.
var ErrNotSettable = errors.New("refl: field is not settable")

// FieldValue pairs a reflected field with its value in one instance.
type FieldValue struct {
	Field *mirror.Field
	Value reflect.Value
}

// Name returns the reflected field name.
func (fv FieldValue) Name() string { return fv.Field.Name() }

// Fields returns the reflected fields of v with their values, in
// declaration order. Values are settable when v is a pointer.
func Fields(v any) ([]FieldValue, error) {
	t, err := ValueOf(v)
	if err != nil {
		return nil, err
	}
	out := make([]FieldValue, 0, t.Len())
	err = t.Zip(func(f *mirror.Field, vs []reflect.Value) {
		out = append(out, FieldValue{Field: f, Value: vs[0]})
	}, v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Equal reports whether a and b agree on every reflected field. Fields
// left out of the reflection do not take part. a and b must have the same
// base type; each may be a value or a pointer.
func Equal(a, b any) (bool, error) {
	diff, err := Diff(a, b)
	if err != nil {
		return false, err
	}
	return len(diff) == 0, nil
}

// Diff returns the names of the reflected fields on which a and b differ,
// in declaration order. Field values are compared with reflect.DeepEqual.
func Diff(a, b any) ([]string, error) {
	t, err := ValueOf(a)
	if err != nil {
		return nil, err
	}
	var out []string
	err = t.Zip(func(f *mirror.Field, vs []reflect.Value) {
		if !reflect.DeepEqual(readable(vs[0]), readable(vs[1])) {
			out = append(out, f.Name())
		}
	}, addressable(a), addressable(b))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// addressable returns a pointer to a copy of the struct behind x, so that
// every field of it has an address. Other values are returned as is and
// rejected by Zip.
func addressable(x any) any {
	v := uref.Indirect(reflect.ValueOf(x))
	if !v.IsValid() {
		return x
	}
	c := reflect.New(v.Type())
	c.Elem().Set(v)
	return c.Interface()
}

// readable returns the field v as an interface. Unexported fields named
// by a Reflect method are read through their address.
func readable(v reflect.Value) any {
	if v.CanInterface() {
		return v.Interface()
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem().Interface()
}

// Copy assigns every reflected field of src to the same field of dst.
// dst must be a non-nil pointer. Fields left out of the reflection keep
// their values in dst. Nothing is written if any field is not settable.
func Copy(dst, src any) error {
	if reflect.ValueOf(dst).Kind() != reflect.Pointer {
		return fmt.Errorf("%w: dst is %T, want a pointer", ErrNotSettable, dst)
	}
	t, err := ValueOf(dst)
	if err != nil {
		return err
	}

	type assign struct{ to, from reflect.Value }
	var plan []assign
	var bad error
	err = t.Zip(func(f *mirror.Field, vs []reflect.Value) {
		if bad != nil {
			return
		}
		if !vs[0].CanSet() {
			bad = fmt.Errorf("%w: %s.%s", ErrNotSettable, t.Name(), f.Name())
			return
		}
		plan = append(plan, assign{to: vs[0], from: vs[1]})
	}, dst, src)
	if err != nil {
		return err
	}
	if bad != nil {
		return bad
	}
	for _, a := range plan {
		a.to.Set(a.from)
	}
	return nil
}
