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

package mirror

import (
	"reflect"

	"dirpx.dev/refl/tags"
	uref "dirpx.dev/refl/utils/reflect"
)

// Member is a reflected field or enumerator. The concrete type is *Field
// for struct reflections and *Value for enum reflections.
type Member interface {
	// Name returns the member name as registered.
	Name() string
	// Index returns the position of the member in its owner.
	Index() int
	// Tags returns the tags attached to the member.
	Tags() tags.List
	// Owner returns the reflection the member belongs to.
	Owner() *Type

	member()
}

// Field is a reflected struct field.
type Field struct {
	owner  *Type
	name   string
	index  int
	path   []int
	offset uintptr
	sf     reflect.StructField
	tags   tags.List
}

var _ Member = (*Field)(nil)

func (*Field) member() {}

// Name returns the registered field name.
func (f *Field) Name() string { return f.name }

// GoName returns the Go identifier of the field.
func (f *Field) GoName() string { return f.sf.Name }

// Index returns the position of f in its owner.
func (f *Field) Index() int { return f.index }

// Path returns the reflect index path of f from the outer struct.
func (f *Field) Path() []int { return append([]int(nil), f.path...) }

// Offset returns the byte offset of f from the start of the outer struct.
func (f *Field) Offset() uintptr { return f.offset }

// Type returns the Go type of the field.
func (f *Field) Type() reflect.Type { return f.sf.Type }

// StructTag returns the raw struct tag of the field.
func (f *Field) StructTag() reflect.StructTag { return f.sf.Tag }

// Tags returns the tags attached to f.
func (f *Field) Tags() tags.List { return f.tags }

// Owner returns the reflection f belongs to.
func (f *Field) Owner() *Type { return f.owner }

// Get returns the field of inst. inst is a value of, or a pointer to, the
// owner type; the result is settable only when inst is a pointer. It
// returns the zero Value if inst has the wrong type or is a nil pointer.
func (f *Field) Get(inst any) reflect.Value {
	return f.Of(reflect.ValueOf(inst))
}

// Of is like Get for a reflect.Value.
func (f *Field) Of(v reflect.Value) reflect.Value {
	v = uref.Indirect(v)
	if !v.IsValid() || v.Type() != f.owner.rtype {
		return reflect.Value{}
	}
	return v.FieldByIndex(f.path)
}

// Value is a reflected enumerator.
type Value struct {
	owner *Type
	name  string
	index int
	value reflect.Value
	tags  tags.List
}

var _ Member = (*Value)(nil)

func (*Value) member() {}

// Name returns the registered enumerator name.
func (v *Value) Name() string { return v.name }

// Index returns the position of v in its owner.
func (v *Value) Index() int { return v.index }

// Tags returns the tags attached to v.
func (v *Value) Tags() tags.List { return v.tags }

// Owner returns the reflection v belongs to.
func (v *Value) Owner() *Type { return v.owner }

// Interface returns the enumerator as a value of the enum type.
func (v *Value) Interface() any { return v.value.Interface() }

// Reflect returns the enumerator as a reflect.Value. It is not settable.
func (v *Value) Reflect() reflect.Value { return v.value }

// Int returns the enumerator as an int64. Unsigned enumerators above
// math.MaxInt64 wrap.
func (v *Value) Int() int64 { return int64(bits(v.value)) }

// Uint returns the enumerator as a uint64. Negative enumerators wrap.
func (v *Value) Uint() uint64 { return bits(v.value) }
