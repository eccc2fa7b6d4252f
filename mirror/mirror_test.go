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

package mirror_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/refl/mirror"
	"dirpx.dev/refl/names"
	"dirpx.dev/refl/tags"
)

type callback struct{ fn func() int }

type note string

type single struct{}

func (single) ExclusiveTag() {}

type MyType struct {
	X, Y, Z int
	S1, S2  string
}

func (p *MyType) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Reflect("MyType",
		m.Field("x", &p.X),
		m.Field("y", &p.Y),
		m.Field("z", &p.Z, callback{func() int { return 42 }}),
		m.Field("s1", &p.S1),
		m.Field("s2", &p.S2),
	)
}

type MyEnum int

const (
	A MyEnum = iota
	B
	C
)

func (MyEnum) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Reflect("MyEnum",
		m.Value("A", A),
		m.Value("B", B, note("bee")),
		m.Value("C", C),
	)
}

type Base struct {
	ID      int
	Created string
}

type Inferred struct {
	Base
	FirstName string
	LastName  string `refl:"surname"`
	Secret    string `refl:"-"`
	hidden    int
	HTTPPort  int `json:"port"`
}

type Level uint8

const (
	Debug Level = iota + 1
	Info
	Warn
	_
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warn:
		return "Warn"
	case Error:
		return "Error"
	}
	return "Level(" + string(rune('0'+l)) + ")"
}

type NoStringer int

func describe[T any](t *testing.T, fn mirror.Func) *mirror.Type {
	t.Helper()
	typ, err := mirror.Describe(reflect.TypeFor[T](), mirror.DefaultOptions(), fn)
	require.NoError(t, err)
	return typ
}

func reflector[T any]() mirror.Func {
	return func(m *mirror.Mirror) *mirror.Info {
		return m.Proto().(mirror.Reflector).Reflect(m)
	}
}

func TestExplicitStruct_OrderAndNames(t *testing.T) {
	typ := describe[MyType](t, reflector[MyType]())

	assert.Equal(t, "MyType", typ.Name())
	assert.Equal(t, mirror.Struct, typ.Kind())
	assert.Equal(t, 5, typ.Len())

	var got []string
	typ.EachField(func(f *mirror.Field) { got = append(got, f.Name()) })
	assert.Equal(t, []string{"x", "y", "z", "s1", "s2"}, got)

	for i, f := range typ.Fields() {
		assert.Equal(t, i, f.Index())
		assert.Same(t, typ, f.Owner())
	}
	assert.Equal(t, "MyType{x, y, z, s1, s2}", typ.String())
}

func TestExplicitEnum(t *testing.T) {
	typ := describe[MyEnum](t, MyEnum(0).Reflect)

	assert.Equal(t, mirror.Enum, typ.Kind())
	require.Len(t, typ.Values(), 3)

	b := typ.Values()[1]
	assert.Equal(t, "B", b.Name())
	assert.Equal(t, B, b.Interface())
	assert.Equal(t, int64(1), b.Int())
	assert.Equal(t, []note{"bee"}, tags.Select[note](b.Tags()))

	name, ok := typ.ValueName(C)
	require.True(t, ok)
	assert.Equal(t, "C", name)

	_, ok = typ.ValueName(MyEnum(42))
	assert.False(t, ok)
}

func TestApply_AllMembersOnce(t *testing.T) {
	typ := describe[MyType](t, reflector[MyType]())

	calls := 0
	typ.Apply(func(ms ...mirror.Member) {
		calls++
		require.Len(t, ms, 5)
		assert.Equal(t, "x", ms[0].Name())
		assert.Equal(t, "s2", ms[4].Name())
	})
	assert.Equal(t, 1, calls)
}

func TestMatch(t *testing.T) {
	typ := describe[MyType](t, reflector[MyType]())

	for _, name := range []string{"x", "y", "z", "s1", "s2"} {
		var hit mirror.Member
		misses := 0
		typ.Match(name, func(m mirror.Member) { hit = m }, func() { misses++ })
		require.NotNil(t, hit, name)
		assert.Equal(t, name, hit.Name())
		assert.Zero(t, misses)
	}

	hits, misses := 0, 0
	typ.Match("nope", func(mirror.Member) { hits++ }, func() { misses++ })
	assert.Zero(t, hits)
	assert.Equal(t, 1, misses)

	// A nil fallback is allowed.
	typ.Match("nope", func(mirror.Member) { hits++ }, nil)
	assert.Zero(t, hits)
}

func TestMatchResult_FindsTag(t *testing.T) {
	typ := describe[MyType](t, reflector[MyType]())

	found := mirror.MatchResult(typ, "z",
		func(m mirror.Member) int {
			if cb, ok := tags.First[callback](m.Tags()); ok {
				return cb.fn()
			}
			return 0
		},
		func() int { return -1 },
	)
	assert.Equal(t, 42, found)

	missing := mirror.MatchResult(typ, "w",
		func(mirror.Member) int { return 1 },
		func() int { return -1 },
	)
	assert.Equal(t, -1, missing)
}

func TestMatchValue(t *testing.T) {
	typ := describe[MyEnum](t, MyEnum(0).Reflect)

	var got string
	typ.MatchValue(B, func(v *mirror.Value) { got = v.Name() }, func() { got = "miss" })
	assert.Equal(t, "B", got)

	// Plain integers convert to the enum type.
	typ.MatchValue(2, func(v *mirror.Value) { got = v.Name() }, func() { got = "miss" })
	assert.Equal(t, "C", got)

	typ.MatchValue(MyEnum(9), func(v *mirror.Value) { got = v.Name() }, func() { got = "miss" })
	assert.Equal(t, "miss", got)

	name := mirror.MatchValueResult(typ, A,
		func(v *mirror.Value) string { return v.Name() },
		func() string { return "?" })
	assert.Equal(t, "A", name)
}

func TestFind_ByPointer(t *testing.T) {
	typ := describe[MyType](t, reflector[MyType]())

	var v MyType
	var got string
	typ.Find(&v, &v.Z, func(f *mirror.Field) { got = f.Name() }, func() { got = "miss" })
	assert.Equal(t, "z", got)

	other := 0
	typ.Find(&v, &other, func(f *mirror.Field) { got = f.Name() }, func() { got = "miss" })
	assert.Equal(t, "miss", got)

	// Wrong base type never matches.
	typ.Find(v, &v.Z, func(f *mirror.Field) { got = f.Name() }, func() { got = "wrong base" })
	assert.Equal(t, "wrong base", got)
}

func TestField_Get(t *testing.T) {
	typ := describe[MyType](t, reflector[MyType]())
	v := MyType{X: 1, S1: "foo"}

	x := typ.Fields()[0]
	assert.Equal(t, int64(1), x.Get(v).Int())
	assert.False(t, x.Get(v).CanSet())

	x.Get(&v).SetInt(7)
	assert.Equal(t, 7, v.X)

	assert.False(t, x.Get(42).IsValid())
	assert.False(t, x.Get((*MyType)(nil)).IsValid())
	assert.Equal(t, reflect.TypeFor[int](), x.Type())
	assert.Equal(t, "X", x.GoName())
}

func TestZip(t *testing.T) {
	typ := describe[MyType](t, reflector[MyType]())

	a := MyType{1, 2, 3, "a", "b"}
	b := MyType{1, 5, 3, "a", "c"}
	c := MyType{9, 2, 3, "a", "b"}

	var order []string
	var diff []string
	err := mirror.ZipFields(typ, func(f *mirror.Field, vs []reflect.Value) {
		order = append(order, f.Name())
		require.Len(t, vs, 3)
		if !vs[0].Equal(vs[1]) || !vs[0].Equal(vs[2]) {
			diff = append(diff, f.Name())
		}
	}, &a, &b, &c)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z", "s1", "s2"}, order)
	assert.Equal(t, []string{"x", "y", "s2"}, diff)

	// Copy through settable values.
	require.NoError(t, typ.Zip(func(_ *mirror.Field, vs []reflect.Value) {
		vs[0].Set(vs[1])
	}, &a, b))
	assert.Equal(t, b, a)
}

func TestZip_Errors(t *testing.T) {
	typ := describe[MyType](t, reflector[MyType]())

	err := typ.Zip(func(*mirror.Field, []reflect.Value) {}, &MyType{}, 3)
	assert.ErrorIs(t, err, mirror.ErrTypeMismatch)

	err = typ.Zip(func(*mirror.Field, []reflect.Value) {}, (*MyType)(nil))
	assert.ErrorIs(t, err, mirror.ErrTypeMismatch)

	enum := describe[MyEnum](t, MyEnum(0).Reflect)
	err = enum.Zip(func(*mirror.Field, []reflect.Value) {})
	assert.ErrorIs(t, err, mirror.ErrNotStruct)
}

func TestFieldValues(t *testing.T) {
	typ := describe[MyType](t, reflector[MyType]())
	v := MyType{1, 2, 3, "foo", "bar"}

	vs, err := mirror.FieldValues(typ, v)
	require.NoError(t, err)
	got := make([]any, len(vs))
	for i, x := range vs {
		got[i] = x.Interface()
	}
	assert.Equal(t, []any{1, 2, 3, "foo", "bar"}, got)
}

func TestInfer_Struct(t *testing.T) {
	typ := describe[Inferred](t, func(m *mirror.Mirror) *mirror.Info { return m.Infer() })

	assert.Equal(t, "Inferred", typ.Name())
	var got []string
	typ.Each(func(m mirror.Member) { got = append(got, m.Name()) })
	assert.Equal(t, []string{"id", "created", "first_name", "surname", "http_port"}, got)

	id := typ.Fields()[0]
	assert.Equal(t, []int{0, 0}, id.Path())
	assert.Equal(t, "ID", id.GoName())

	port, ok := typ.Lookup("http_port")
	require.True(t, ok)
	st, ok := tags.First[reflect.StructTag](port.Tags())
	require.True(t, ok)
	assert.Equal(t, "port", st.Get("json"))

	v := Inferred{Base: Base{ID: 3}}
	assert.Equal(t, int64(3), typ.Fields()[0].Get(v).Int())
}

func TestInfer_NamingStyles(t *testing.T) {
	opts := mirror.DefaultOptions()
	opts.Naming = names.AsIs
	typ, err := mirror.Describe(reflect.TypeFor[Inferred](), opts, func(m *mirror.Mirror) *mirror.Info { return m.Infer() })
	require.NoError(t, err)

	var got []string
	typ.Each(func(m mirror.Member) { got = append(got, m.Name()) })
	assert.Equal(t, []string{"ID", "Created", "FirstName", "surname", "HTTPPort"}, got)
}

func TestInfer_WithTagsAndRename(t *testing.T) {
	typ := describe[Inferred](t, func(m *mirror.Mirror) *mirror.Info {
		p := m.Proto().(*Inferred)
		return m.Infer().
			Named("Person").
			Tag(note("type-level")).
			With(&p.FirstName, note("first"), note("second")).
			With(&p.ID, single{}).
			Rename(&p.Created, "created_at")
	})

	assert.Equal(t, "Person", typ.Name())
	assert.Equal(t, []note{"type-level"}, tags.Select[note](typ.Tags()))

	first, ok := typ.Lookup("first_name")
	require.True(t, ok)
	assert.Equal(t, []note{"first", "second"}, tags.Select[note](first.Tags()))

	_, ok = typ.Lookup("created_at")
	assert.True(t, ok)
	_, ok = typ.Lookup("created")
	assert.False(t, ok)
}

func TestInfer_Enum(t *testing.T) {
	typ := describe[Level](t, func(m *mirror.Mirror) *mirror.Info { return m.Infer() })

	assert.Equal(t, mirror.Enum, typ.Kind())
	var got []string
	typ.EachValue(func(v *mirror.Value) { got = append(got, v.Name()) })
	assert.Equal(t, []string{"Debug", "Info", "Warn", "Error"}, got)

	e := typ.Values()[3]
	assert.Equal(t, Error, e.Interface())
	assert.Equal(t, uint64(5), e.Uint())
}

func TestInferEnum_Range(t *testing.T) {
	typ := describe[Level](t, func(m *mirror.Mirror) *mirror.Info {
		return m.InferEnum(2, 3).With(Info, note("i"))
	})
	var got []string
	typ.EachValue(func(v *mirror.Value) { got = append(got, v.Name()) })
	assert.Equal(t, []string{"Info", "Warn"}, got)

	v, ok := typ.LookupValue(Info)
	require.True(t, ok)
	assert.Equal(t, []note{"i"}, tags.Select[note](v.Tags()))
}

func TestNoFields(t *testing.T) {
	type Empty struct{ hidden int }
	typ := describe[Empty](t, func(m *mirror.Mirror) *mirror.Info { return m.Infer().Tag(note("x")) })
	assert.Equal(t, mirror.NoFields, typ.Kind())
	assert.Zero(t, typ.Len())
	assert.Equal(t, 1, typ.Tags().Len())

	typ2 := describe[MyType](t, func(m *mirror.Mirror) *mirror.Info { return m.Reflect("") })
	assert.Equal(t, mirror.NoFields, typ2.Kind())
	assert.Equal(t, "MyType", typ2.Name())
}

func TestExplicit_RecoveredNames(t *testing.T) {
	typ := describe[MyType](t, func(m *mirror.Mirror) *mirror.Info {
		p := m.Proto().(*MyType)
		return m.Reflect("", m.Field("", &p.S1))
	})
	assert.Equal(t, "MyType", typ.Name())
	assert.Equal(t, "s1", typ.At(0).Name())

	enum := describe[Level](t, func(m *mirror.Mirror) *mirror.Info {
		return m.Reflect("", m.Value("", Warn))
	})
	assert.Equal(t, "Warn", enum.At(0).Name())
}

func TestBuild_Errors(t *testing.T) {
	build := func(typ reflect.Type, fn mirror.Func) error {
		_, err := mirror.Describe(typ, mirror.DefaultOptions(), fn)
		return err
	}
	myType := reflect.TypeFor[MyType]()
	myEnum := reflect.TypeFor[MyEnum]()

	cases := []struct {
		name string
		typ  reflect.Type
		fn   mirror.Func
		want error
	}{
		{"unknown field pointer", myType, func(m *mirror.Mirror) *mirror.Info {
			x := 0
			return m.Reflect("T", m.Field("x", &x))
		}, mirror.ErrUnknownField},
		{"field from another instance", myType, func(m *mirror.Mirror) *mirror.Info {
			var other MyType
			return m.Reflect("T", m.Field("x", &other.X))
		}, mirror.ErrUnknownField},
		{"duplicate name", myType, func(m *mirror.Mirror) *mirror.Info {
			p := m.Proto().(*MyType)
			return m.Reflect("T", m.Field("a", &p.X), m.Field("a", &p.Y))
		}, mirror.ErrDuplicateName},
		{"duplicate member", myType, func(m *mirror.Mirror) *mirror.Info {
			p := m.Proto().(*MyType)
			return m.Reflect("T", m.Field("a", &p.X), m.Field("b", &p.X))
		}, mirror.ErrDuplicateMember},
		{"duplicate exclusive tag", myType, func(m *mirror.Mirror) *mirror.Info {
			p := m.Proto().(*MyType)
			return m.Reflect("T", m.Field("a", &p.X, single{}, single{}))
		}, tags.ErrDuplicateExclusive},
		{"duplicate exclusive type tag", myType, func(m *mirror.Mirror) *mirror.Info {
			return m.Infer().Tag(single{}).Tag(single{})
		}, tags.ErrDuplicateExclusive},
		{"with unknown member", myType, func(m *mirror.Mirror) *mirror.Info {
			p := m.Proto().(*MyType)
			return m.Reflect("T", m.Field("x", &p.X)).With(&p.Y, note("n"))
		}, mirror.ErrUnknownMember},
		{"value on struct", myType, func(m *mirror.Mirror) *mirror.Info {
			return m.Reflect("T", m.Value("A", 1))
		}, mirror.ErrNotEnum},
		{"mixed members", myEnum, func(m *mirror.Mirror) *mirror.Info {
			other := mirror.New(myType, mirror.DefaultOptions())
			p := other.Proto().(*MyType)
			return m.Reflect("T", m.Value("A", A), other.Field("x", &p.X))
		}, mirror.ErrForeignMember},
		{"enum value overflow", reflect.TypeFor[Level](), func(m *mirror.Mirror) *mirror.Info {
			return m.Reflect("L", m.Value("Big", 300))
		}, mirror.ErrNotEnum},
		{"enum duplicate value", myEnum, func(m *mirror.Mirror) *mirror.Info {
			return m.Reflect("E", m.Value("A", A), m.Value("AA", 0))
		}, mirror.ErrDuplicateMember},
		{"enum name not recoverable", myEnum, func(m *mirror.Mirror) *mirror.Info {
			return m.Reflect("E", m.Value("", A))
		}, mirror.ErrNoName},
		{"infer enum without stringer", reflect.TypeFor[NoStringer](), func(m *mirror.Mirror) *mirror.Info {
			return m.Infer()
		}, mirror.ErrNoName},
		{"bad scan range", reflect.TypeFor[Level](), func(m *mirror.Mirror) *mirror.Info {
			return m.InferEnum(5, 1)
		}, mirror.ErrBadScanRange},
		{"infer non reflectable", reflect.TypeFor[string](), func(m *mirror.Mirror) *mirror.Info {
			return m.Infer()
		}, mirror.ErrNotReflectable},
		{"nil info", myType, func(*mirror.Mirror) *mirror.Info { return nil }, mirror.ErrNilInfo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, build(tc.typ, tc.fn), tc.want)
		})
	}
}

func TestBuild_ZeroInfo(t *testing.T) {
	_, err := mirror.Build(&mirror.Info{})
	assert.ErrorIs(t, err, mirror.ErrNilInfo)

	_, err = mirror.Build(nil)
	assert.ErrorIs(t, err, mirror.ErrNilInfo)
}

func TestInfer_DuplicateFlattenedNames(t *testing.T) {
	type Dup struct {
		Base
		ID int
	}
	_, err := mirror.Describe(reflect.TypeFor[Dup](), mirror.DefaultOptions(), func(m *mirror.Mirror) *mirror.Info {
		return m.Infer()
	})
	assert.ErrorIs(t, err, mirror.ErrDuplicateName)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Struct", mirror.Struct.String())
	assert.Equal(t, "Enum", mirror.Enum.String())
	assert.Equal(t, "NoFields", mirror.NoFields.String())
	assert.Equal(t, "Kind(7)", mirror.Kind(7).String())
}
