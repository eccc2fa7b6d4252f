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

// Package mirror builds immutable reflection descriptors for structs and
// integer enums, and answers queries over them.
//
// # Registration
//
// A type describes itself by implementing Reflector. The Mirror handed to
// Reflect owns a zero-valued prototype of the type; fields are identified
// by pointers into that prototype, which is how the receiver is used:
//
//	type Point struct{ X, Y int }
//
//	func (p *Point) Reflect(m *mirror.Mirror) *mirror.Info {
//		return m.Reflect("Point",
//			m.Field("x", &p.X),
//			m.Field("y", &p.Y, Unit("px")),
//		)
//	}
//
// Types may instead ask for inference and then amend the result:
//
//	func (p *Point) Reflect(m *mirror.Mirror) *mirror.Info {
//		return m.Infer().With(&p.Y, Unit("px"))
//	}
//
// Enums are integer types; enumerators are listed with Value, or inferred by
// scanning a value range through the type's String method.
//
// # Descriptors
//
// Build freezes an Info into a *Type. A *Type is never modified after it is
// built and may be read from any number of goroutines. Visitors passed to
// its query methods run synchronously on the calling goroutine.
package mirror

import (
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/refl/names"
	"dirpx.dev/refl/tags"
	uref "dirpx.dev/refl/utils/reflect"
)

// Reflector is implemented by types that describe their own members.
// Reflect is called on a pointer to the Mirror's prototype.
type Reflector interface {
	Reflect(m *Mirror) *Info
}

// Func produces the reflection of a type from a Mirror. It is the
// callback form of Reflector, used for types the caller does not own.
type Func func(m *Mirror) *Info

// Mirror is passed to reflection callbacks. It cannot be reused across
// types and is only valid for the duration of the callback.
type Mirror struct {
	typ   reflect.Type
	proto reflect.Value // *T
	opts  Options
}

// New returns a Mirror for the base type t (see utils/reflect.Normalize).
func New(t reflect.Type, opts Options) *Mirror {
	if opts.TagKey == "" {
		opts.TagKey = DefaultTagKey
	}
	return &Mirror{typ: t, proto: reflect.New(t), opts: opts}
}

// Describe runs fn against a fresh Mirror for t and builds the result.
func Describe(t reflect.Type, opts Options, fn Func) (*Type, error) {
	m := New(t, opts)
	return Build(fn(m))
}

// GoType returns the type being reflected.
func (m *Mirror) GoType() reflect.Type { return m.typ }

// Proto returns the prototype, a pointer to a zero value of the reflected
// type. Field identities are pointers into *Proto().
func (m *Mirror) Proto() any { return m.proto.Interface() }

// Options returns the inference options of m.
func (m *Mirror) Options() Options { return m.opts }

// Reflect declares that the type has the given name and members. An empty
// name uses the type's recovered identifier. With no members the result is
// a NoFields reflection.
func (m *Mirror) Reflect(name string, members ...*MemberInfo) *Info {
	info := &Info{m: m, name: name, kind: NoFields}
	if info.name == "" {
		info.name = names.Of(m.typ).Name()
	}

	var fields, values int
	for _, mi := range members {
		switch {
		case mi == nil:
			continue
		case mi.err != nil:
			return info.fail(mi.err)
		case mi.m != m:
			return info.fail(fmt.Errorf("%w: %q", ErrForeignMember, mi.name))
		case mi.isField():
			fields++
		default:
			values++
		}
		info.members = append(info.members, mi)
	}

	switch {
	case fields > 0 && values > 0:
		return info.fail(ErrMixedMembers)
	case fields > 0:
		info.kind = Struct
	case values > 0:
		info.kind = Enum
	}
	return info
}

// Field declares a field. ptr must point into *m.Proto(), either directly
// at a field or at a field of a nested (non-pointer) struct. An empty name
// uses the Go field name respelled by the Naming option.
func (m *Mirror) Field(name string, ptr any, tagList ...any) *MemberInfo {
	ref, ok := uref.FieldByPointer(m.Proto(), ptr)
	if !ok {
		return &MemberInfo{m: m, name: name, err: fmt.Errorf("%w: %T in %s", ErrUnknownField, ptr, m.typ)}
	}
	if name == "" {
		name = names.Convert(ref.Field.Name, m.opts.Naming)
	}
	return m.field(name, ref, tags.Of(tagList...))
}

func (m *Mirror) field(name string, ref uref.FieldRef, extra tags.List) *MemberInfo {
	var list tags.List
	if ref.Field.Tag != "" {
		list = tags.Of(ref.Field.Tag)
	}
	return &MemberInfo{m: m, name: name, ref: &ref, tags: list.Append(extra...)}
}

// Value declares an enumerator. v must be of the reflected type or an
// integer convertible to it. An empty name is recovered through the
// type's String method.
func (m *Mirror) Value(name string, v any, tagList ...any) *MemberInfo {
	rv, err := m.enumerator(v)
	if err != nil {
		return &MemberInfo{m: m, name: name, err: err}
	}
	if name == "" {
		n, ok := names.Value(rv.Interface())
		if !ok {
			return &MemberInfo{m: m, err: fmt.Errorf("%w: %s(%v)", ErrNoName, m.typ, v)}
		}
		name = n
	}
	return &MemberInfo{m: m, name: name, value: rv, tags: tags.Of(tagList...)}
}

// enumerator converts v to a value of the reflected type.
func (m *Mirror) enumerator(v any) (reflect.Value, error) {
	if !uref.IsEnumKind(m.typ.Kind()) {
		return reflect.Value{}, fmt.Errorf("%w: %s is a %s", ErrNotEnum, m.typ, m.typ.Kind())
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !uref.IsEnumKind(rv.Kind()) || !rv.Type().ConvertibleTo(m.typ) {
		return reflect.Value{}, fmt.Errorf("%w: %T for %s", ErrNotEnum, v, m.typ)
	}
	out := reflect.New(m.typ).Elem()
	if uref.IsSigned(rv.Kind()) {
		n := rv.Int()
		if !setInt(out, n) {
			return reflect.Value{}, fmt.Errorf("%w: %d overflows %s", ErrNotEnum, n, m.typ)
		}
		return out, nil
	}
	n := rv.Uint()
	if uref.IsSigned(out.Kind()) {
		if n > 1<<63-1 || out.OverflowInt(int64(n)) {
			return reflect.Value{}, fmt.Errorf("%w: %d overflows %s", ErrNotEnum, n, m.typ)
		}
		out.SetInt(int64(n))
		return out, nil
	}
	if out.OverflowUint(n) {
		return reflect.Value{}, fmt.Errorf("%w: %d overflows %s", ErrNotEnum, n, m.typ)
	}
	out.SetUint(n)
	return out, nil
}

// setInt stores n into the integer value v, reporting false on overflow.
func setInt(v reflect.Value, n int64) bool {
	if uref.IsSigned(v.Kind()) {
		if v.OverflowInt(n) {
			return false
		}
		v.SetInt(n)
		return true
	}
	if n < 0 || v.OverflowUint(uint64(n)) {
		return false
	}
	v.SetUint(uint64(n))
	return true
}

// Infer reflects the type from its layout. Structs contribute their
// exported fields in declaration order, flattening embedded non-pointer
// structs; integer enums are scanned over the configured range.
func (m *Mirror) Infer() *Info {
	switch {
	case m.typ.Kind() == reflect.Struct:
		var members []*MemberInfo
		m.collect(m.typ, nil, 0, &members)
		return m.Reflect("", members...)
	case uref.IsEnumKind(m.typ.Kind()):
		return m.InferEnum(m.opts.EnumScanMin, m.opts.EnumScanMax)
	default:
		info := &Info{m: m, name: names.Of(m.typ).Name()}
		return info.fail(fmt.Errorf("%w: %s", ErrNotReflectable, m.typ))
	}
}

func (m *Mirror) collect(st reflect.Type, path []int, base uintptr, out *[]*MemberInfo) {
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get(m.opts.TagKey), ",")
		if name == "-" {
			continue
		}

		idx := append(append([]int(nil), path...), i)
		at := base + f.Offset

		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			m.collect(f.Type, idx, at, out)
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = names.Convert(f.Name, m.opts.Naming)
		}
		*out = append(*out, m.field(name, uref.FieldRef{Field: f, Index: idx, Offset: at}, nil))
	}
}

// InferEnum reflects an integer enum by probing every value in [lo, hi]
// and keeping those whose String method yields a real name. Values that
// the type cannot represent are skipped; a name seen twice keeps its first
// value. The type must implement fmt.Stringer.
func (m *Mirror) InferEnum(lo, hi int64) *Info {
	fail := func(err error) *Info {
		return (&Info{m: m, name: names.Of(m.typ).Name()}).fail(err)
	}
	if !uref.IsEnumKind(m.typ.Kind()) {
		return fail(fmt.Errorf("%w: %s is a %s", ErrNotEnum, m.typ, m.typ.Kind()))
	}
	if hi < lo {
		return fail(fmt.Errorf("%w: [%d, %d]", ErrBadScanRange, lo, hi))
	}
	if !m.typ.Implements(stringerType) {
		return fail(fmt.Errorf("%w: %s does not implement fmt.Stringer", ErrNoName, m.typ))
	}

	var members []*MemberInfo
	seen := make(map[string]struct{})
	for n := lo; ; n++ {
		v := reflect.New(m.typ).Elem()
		if setInt(v, n) {
			if name, ok := names.Value(v.Interface()); ok {
				if _, dup := seen[name]; !dup {
					seen[name] = struct{}{}
					members = append(members, &MemberInfo{m: m, name: name, value: v})
				}
			}
		}
		if n == hi {
			break
		}
	}
	return m.Reflect("", members...)
}

var stringerType = reflect.TypeFor[fmt.Stringer]()
