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

package format_test

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/refl/format"
	"dirpx.dev/refl/mirror"
)

type pair struct {
	Foo int
	Bar int
}

type MyType struct {
	X, Y, Z int
	S1, S2  string
}

func (t *MyType) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Reflect("MyType",
		m.Field("x", &t.X),
		m.Field("y", &t.Y),
		m.Field("z", &t.Z),
		m.Field("s1", &t.S1),
		m.Field("s2", &t.S2),
	)
}

type MyEnum int

const (
	A MyEnum = iota
	B
	C
)

func (*MyEnum) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Reflect("MyEnum",
		m.Value("A", A),
		m.Value("B", B),
		m.Value("C", C),
	)
}

type weekday uint8

func (d weekday) String() string {
	switch d {
	case 0:
		return "Sunday"
	case 1:
		return "Monday"
	}
	return fmt.Sprintf("weekday(%d)", uint8(d))
}

type login struct {
	User     string
	Password string
	Token    string
}

func (l *login) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Infer().With(&l.Token, format.Redact{})
}

type node struct {
	Name     string
	Children []node
	Secret   string
}

type stamped struct {
	At  time.Time
	Dur time.Duration
	Err error
}

func TestSprint_Struct(t *testing.T) {
	assert.Equal(t, "{foo: 1, bar: 2}", format.Sprint(pair{Foo: 1, Bar: 2}))
	assert.Equal(t, "{foo: 1, bar: 2}", format.Sprint(&pair{Foo: 1, Bar: 2}))
}

func TestDebug_Struct(t *testing.T) {
	got := format.Debug(MyType{1, 2, 3, "foo", "bar"})
	assert.Equal(t, `MyType {x: 1, y: 2, z: 3, s1: "foo", s2: "bar"}`, got)

	got = format.Sprint(MyType{1, 2, 3, "foo", "bar"})
	assert.Equal(t, `{x: 1, y: 2, z: 3, s1: foo, s2: bar}`, got)
}

func TestEnums(t *testing.T) {
	assert.Equal(t, "B", format.Sprint(B))
	assert.Equal(t, "MyEnum::B, MyEnum(42)", format.Debug(B)+", "+format.Debug(MyEnum(42)))

	// Inferred through String.
	assert.Equal(t, "Monday", format.Sprint(weekday(1)))
	assert.Equal(t, "weekday::Sunday", format.Debug(weekday(0)))
}

type logLine struct {
	Level slog.Level
}

func TestEnums_InferredFallBackToString(t *testing.T) {
	assert.Equal(t, "WARN", format.Sprint(slog.LevelWarn))
	assert.Equal(t, "DEBUG", format.Sprint(slog.LevelDebug))
	assert.Equal(t, "INFO+2", format.Sprint(slog.Level(2)))
	assert.Equal(t, "{level: DEBUG}", format.Sprint(logLine{Level: slog.LevelDebug}))

	// Explicit enums have no String to fall back on.
	assert.Equal(t, "MyEnum(42)", format.Sprint(MyEnum(42)))
}

func TestLeaves(t *testing.T) {
	var nilPtr *pair
	assert.Equal(t, "nil", format.Sprint(nilPtr))
	assert.Equal(t, "nil", format.Sprint(nil))
	assert.Equal(t, "[1, 2, 3]", format.Sprint([]int{1, 2, 3}))
	assert.Equal(t, `["a", "b"]`, format.Debug([]string{"a", "b"}))
	assert.Equal(t, "{a: 1, b: 2}", format.Sprint(map[string]int{"b": 2, "a": 1}))
	assert.Equal(t, "3.5", format.Sprint(3.5))

	s := stamped{Dur: 1500 * time.Millisecond, Err: errors.New("boom")}
	assert.Equal(t, "{at: 0001-01-01 00:00:00 +0000 UTC, dur: 1.5s, err: boom}", format.Sprint(s))
}

func TestNested(t *testing.T) {
	n := node{Name: "root", Children: []node{{Name: "leaf"}}}
	assert.Equal(t, "{name: root, children: [{name: leaf, children: [], secret: }], secret: }", format.Sprint(n))
}

func TestRedact(t *testing.T) {
	l := login{User: "ann", Password: "hunter2", Token: "t0k"}
	assert.Equal(t, "{user: ann, password: hunter2, token: <redacted>}", format.Sprint(l))
	assert.Equal(t, "{user: ann, password: <redacted>, token: <redacted>}",
		format.Sprint(l, format.WithRedact("password")))

	n := node{Name: "root", Secret: "a", Children: []node{{Name: "leaf", Secret: "b"}}}
	got := format.Sprint(n, format.WithRedact("**/secret", "[invalid"))
	assert.Equal(t, "{name: root, children: [{name: leaf, children: [], secret: <redacted>}], secret: <redacted>}", got)
}

func TestMaxDepth(t *testing.T) {
	n := node{Name: "a", Children: []node{{Name: "b", Children: []node{{Name: "c"}}}}}
	got := format.Sprint(n, format.WithMaxDepth(2))
	assert.Equal(t, "{name: a, children: [{name: ..., children: ..., secret: ...}], secret: }", got)
}

func TestFormatter(t *testing.T) {
	v := format.Of(pair{Foo: 1, Bar: 2})
	assert.Equal(t, "{foo: 1, bar: 2}", fmt.Sprintf("%v", v))
	assert.Equal(t, "pair {foo: 1, bar: 2}", fmt.Sprintf("%+v", v))
	assert.Equal(t, `"{foo: 1, bar: 2}"`, fmt.Sprintf("%q", v))
	assert.Equal(t, "{foo: 1, bar: 2}", v.String())
	assert.Equal(t, "{1 2}", fmt.Sprintf("%d", v))
}
