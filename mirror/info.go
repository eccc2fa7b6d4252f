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

	"dirpx.dev/refl/tags"
	uref "dirpx.dev/refl/utils/reflect"
)

// Kind classifies a reflection.
type Kind uint8

const (
	// NoFields is a reflection without members.
	NoFields Kind = iota
	// Struct is a reflection whose members are *Field.
	Struct
	// Enum is a reflection whose members are *Value.
	Enum
)

// String returns the name of k.
func (k Kind) String() string {
	switch k {
	case NoFields:
		return "NoFields"
	case Struct:
		return "Struct"
	case Enum:
		return "Enum"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MemberInfo is a field or enumerator declared through Mirror.Field or
// Mirror.Value, not yet frozen into a *Type.
type MemberInfo struct {
	m    *Mirror
	name string
	tags tags.List
	err  error

	ref   *uref.FieldRef // fields only
	value reflect.Value  // enumerators only
}

func (mi *MemberInfo) isField() bool { return mi.ref != nil }

// Name returns the declared name.
func (mi *MemberInfo) Name() string { return mi.name }

// Err returns the error recorded while declaring the member, if any.
func (mi *MemberInfo) Err() error { return mi.err }

// Info is an unfrozen reflection produced by a Mirror. Its methods edit it
// in place and return it for chaining; the first error sticks and turns
// every later edit into a no-op.
type Info struct {
	m       *Mirror
	name    string
	kind    Kind
	tags    tags.List
	members []*MemberInfo
	err     error
}

func (i *Info) fail(err error) *Info {
	if i.err == nil {
		i.err = err
	}
	return i
}

// Err returns the first error recorded on i.
func (i *Info) Err() error { return i.err }

// Kind returns the kind the reflection will have once built.
func (i *Info) Kind() Kind { return i.kind }

// Mirror returns the mirror that produced i.
func (i *Info) Mirror() *Mirror { return i.m }

// Named overrides the reflected type name.
func (i *Info) Named(name string) *Info {
	if i.err == nil {
		i.name = name
	}
	return i
}

// Tag attaches type-level tags.
func (i *Info) Tag(tagList ...any) *Info {
	if i.err == nil {
		i.tags = i.tags.Append(tagList...)
	}
	return i
}

// With attaches tags to an existing member. member is a pointer into the
// mirror's prototype for structs, or an enumerator for enums.
func (i *Info) With(member any, tagList ...any) *Info {
	if i.err != nil {
		return i
	}
	idx, err := i.indexOf(member)
	if err != nil {
		return i.fail(err)
	}
	mi := i.members[idx]
	mi.tags = mi.tags.Append(tagList...)
	return i
}

// Rename changes the name of an existing member, keyed like With.
func (i *Info) Rename(member any, name string) *Info {
	if i.err != nil {
		return i
	}
	idx, err := i.indexOf(member)
	if err != nil {
		return i.fail(err)
	}
	i.members[idx].name = name
	return i
}

// indexOf maps a member identity to its position with a linear scan.
func (i *Info) indexOf(member any) (int, error) {
	switch i.kind {
	case Struct:
		ref, ok := uref.FieldByPointer(i.m.Proto(), member)
		if !ok {
			return -1, fmt.Errorf("%w: %T in %s", ErrUnknownField, member, i.m.typ)
		}
		for n, mi := range i.members {
			if slices.Equal(mi.ref.Index, ref.Index) {
				return n, nil
			}
		}
		return -1, fmt.Errorf("%w: field %s of %s", ErrUnknownMember, ref.Field.Name, i.m.typ)
	case Enum:
		v, err := i.m.enumerator(member)
		if err != nil {
			return -1, err
		}
		want := bits(v)
		for n, mi := range i.members {
			if bits(mi.value) == want {
				return n, nil
			}
		}
		return -1, fmt.Errorf("%w: %s(%v)", ErrUnknownMember, i.m.typ, member)
	default:
		return -1, fmt.Errorf("%w: %s has no members", ErrUnknownMember, i.m.typ)
	}
}

// bits returns the integer value of an enumerator as raw bits, so signed
// and unsigned enums compare the same way.
func bits(v reflect.Value) uint64 {
	if uref.IsSigned(v.Kind()) {
		return uint64(v.Int())
	}
	return v.Uint()
}
