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
	"reflect"
)

// FieldRef describes a (possibly promoted) field located by FieldByPointer.
type FieldRef struct {
	// Field is the struct field as declared in its immediate parent.
	Field reflect.StructField
	// Index is the index path from the outer struct, suitable for
	// reflect.Value.FieldByIndex.
	Index []int
	// Offset is the byte offset from the start of the outer struct.
	Offset uintptr
}

// FieldByPointer finds the field of the struct base that ptr points at.
//
// base must be a pointer to a struct and ptr a pointer into that struct.
// Non-pointer nested structs are searched as well, so &v.Inner.X resolves
// to the index path of X. When several fields share an offset (nested
// structs, zero-sized fields), the outermost field whose type matches
// ptr's element type wins.
func FieldByPointer(base, ptr any) (FieldRef, bool) {
	bv := reflect.ValueOf(base)
	pv := reflect.ValueOf(ptr)
	if !bv.IsValid() || !pv.IsValid() || bv.Kind() != reflect.Ptr || pv.Kind() != reflect.Ptr {
		return FieldRef{}, false
	}
	if bv.IsNil() || pv.IsNil() || bv.Elem().Kind() != reflect.Struct {
		return FieldRef{}, false
	}

	// Zero-sized trailing fields may sit exactly at Size().
	start, target := bv.Pointer(), pv.Pointer()
	if target < start || target-start > bv.Elem().Type().Size() {
		return FieldRef{}, false
	}
	return search(bv.Elem().Type(), target-start, 0, nil, pv.Type().Elem())
}

func search(st reflect.Type, off, base uintptr, path []int, want reflect.Type) (FieldRef, bool) {
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		at := base + f.Offset
		idx := append(append([]int(nil), path...), i)

		if at == off && f.Type == want {
			return FieldRef{Field: f, Index: idx, Offset: at}, true
		}
		if f.Type.Kind() == reflect.Struct && off >= at && off <= at+f.Type.Size() {
			if ref, ok := search(f.Type, off, at, idx, want); ok {
				return ref, true
			}
		}
	}
	return FieldRef{}, false
}
