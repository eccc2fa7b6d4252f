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
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"

	"dirpx.dev/refl/names"
	"dirpx.dev/refl/tags"
	uref "dirpx.dev/refl/utils/reflect"
)

// Type is the immutable reflection of a struct or enum.
type Type struct {
	rtype   reflect.Type
	names   names.TypeNames
	name    string
	kind    Kind
	tags    tags.List
	members []Member

	sortOnce sync.Once
	sorted   []int // member indices ordered by name
}

// Name returns the reflected type name.
func (t *Type) Name() string { return t.name }

// Names returns the names recovered from the Go type, independent of the
// registered name.
func (t *Type) Names() names.TypeNames { return t.names }

// Kind returns the reflection kind.
func (t *Type) Kind() Kind { return t.kind }

// GoType returns the reflected Go type.
func (t *Type) GoType() reflect.Type { return t.rtype }

// Tags returns the type-level tags.
func (t *Type) Tags() tags.List { return t.tags }

// Len returns the number of members.
func (t *Type) Len() int { return len(t.members) }

// At returns the i-th member in declaration order.
func (t *Type) At(i int) Member { return t.members[i] }

// Members returns the members in declaration order.
func (t *Type) Members() []Member { return slices.Clone(t.members) }

// Fields returns the fields of a struct reflection, or nil.
func (t *Type) Fields() []*Field {
	var out []*Field
	t.EachField(func(f *Field) { out = append(out, f) })
	return out
}

// Values returns the enumerators of an enum reflection, or nil.
func (t *Type) Values() []*Value {
	var out []*Value
	t.EachValue(func(v *Value) { out = append(out, v) })
	return out
}

// Apply calls fn once with all members in declaration order.
func (t *Type) Apply(fn func(members ...Member)) {
	fn(t.Members()...)
}

// Each calls fn once per member in declaration order.
func (t *Type) Each(fn func(Member)) {
	for _, m := range t.members {
		fn(m)
	}
}

// EachField calls fn once per field in declaration order.
func (t *Type) EachField(fn func(*Field)) {
	for _, m := range t.members {
		if f, ok := m.(*Field); ok {
			fn(f)
		}
	}
}

// EachValue calls fn once per enumerator in declaration order.
func (t *Type) EachValue(fn func(*Value)) {
	for _, m := range t.members {
		if v, ok := m.(*Value); ok {
			fn(v)
		}
	}
}

// Lookup returns the member called name.
func (t *Type) Lookup(name string) (Member, bool) {
	t.sortOnce.Do(t.sortNames)
	i := sort.Search(len(t.sorted), func(i int) bool {
		return t.members[t.sorted[i]].Name() >= name
	})
	if i < len(t.sorted) && t.members[t.sorted[i]].Name() == name {
		return t.members[t.sorted[i]], true
	}
	return nil, false
}

func (t *Type) sortNames() {
	t.sorted = make([]int, len(t.members))
	for i := range t.sorted {
		t.sorted[i] = i
	}
	sort.Slice(t.sorted, func(a, b int) bool {
		return t.members[t.sorted[a]].Name() < t.members[t.sorted[b]].Name()
	})
}

// Match calls found with the member called name, or otherwise if there is
// none. otherwise may be nil.
func (t *Type) Match(name string, found func(Member), otherwise func()) {
	if m, ok := t.Lookup(name); ok {
		found(m)
		return
	}
	if otherwise != nil {
		otherwise()
	}
}

// LookupValue returns the enumerator equal to v. v may be of the enum type
// or any integer convertible to it.
func (t *Type) LookupValue(v any) (*Value, bool) {
	if t.kind != Enum {
		return nil, false
	}
	// Convert through the enum type so that uint8(255) does not match
	// an int8 enumerator -1.
	cv, err := (&Mirror{typ: t.rtype}).enumerator(v)
	if err != nil {
		return nil, false
	}
	want := bits(cv)
	for _, m := range t.members {
		if val := m.(*Value); bits(val.value) == want {
			return val, true
		}
	}
	return nil, false
}

// MatchValue calls found with the enumerator equal to v, or otherwise if
// there is none. otherwise may be nil.
func (t *Type) MatchValue(v any, found func(*Value), otherwise func()) {
	if val, ok := t.LookupValue(v); ok {
		found(val)
		return
	}
	if otherwise != nil {
		otherwise()
	}
}

// ValueName returns the registered name of the enumerator v.
func (t *Type) ValueName(v any) (string, bool) {
	val, ok := t.LookupValue(v)
	if !ok {
		return "", false
	}
	return val.name, true
}

// Find calls found with the field that ptr points at inside the instance
// base, or otherwise if ptr does not address a reflected field. base must
// be a pointer to the reflected type.
func (t *Type) Find(base, ptr any, found func(*Field), otherwise func()) {
	if f, ok := t.FieldOf(base, ptr); ok {
		found(f)
		return
	}
	if otherwise != nil {
		otherwise()
	}
}

// FieldOf returns the field that ptr points at inside the instance base.
func (t *Type) FieldOf(base, ptr any) (*Field, bool) {
	if t.kind != Struct || reflect.TypeOf(base) != reflect.PointerTo(t.rtype) {
		return nil, false
	}
	ref, ok := uref.FieldByPointer(base, ptr)
	if !ok {
		return nil, false
	}
	for _, m := range t.members {
		if f := m.(*Field); slices.Equal(f.path, ref.Index) {
			return f, true
		}
	}
	return nil, false
}

// Zip calls fn once per field, in declaration order, with the values of
// that field in each of instances. Every instance must be a value of, or a
// non-nil pointer to, the reflected type; values reached through pointers
// are settable.
func (t *Type) Zip(fn func(f *Field, values []reflect.Value), instances ...any) error {
	if t.kind == Enum {
		return fmt.Errorf("%w: %s", ErrNotStruct, t.name)
	}

	bases := make([]reflect.Value, len(instances))
	for i, inst := range instances {
		v := uref.Indirect(reflect.ValueOf(inst))
		if !v.IsValid() || v.Type() != t.rtype {
			return fmt.Errorf("%w: argument %d is %T, want %s", ErrTypeMismatch, i, inst, t.rtype)
		}
		bases[i] = v
	}

	for _, m := range t.members {
		f := m.(*Field)
		values := make([]reflect.Value, len(bases))
		for i, b := range bases {
			values[i] = b.FieldByIndex(f.path)
		}
		fn(f, values)
	}
	return nil
}

// String renders the reflection as "Name{a, b, c}".
func (t *Type) String() string {
	var b strings.Builder
	b.WriteString(t.name)
	b.WriteByte('{')
	for i, m := range t.members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Name())
	}
	b.WriteByte('}')
	return b.String()
}
