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

// Package format prints values through their reflection descriptors.
//
// Structs print their reflected fields in declaration order, enums print
// the name of their enumerator:
//
//	format.Sprint(Point{1, 2})  // {x: 1, y: 2}
//	format.Debug(Point{1, 2})   // Point {x: 1, y: 2}
//	format.Debug(Level(1))      // Level::High
//	format.Debug(Level(42))     // Level(42)
//
// Types without a descriptor are printed by package fmt.
package format

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"dirpx.dev/refl"
	"dirpx.dev/refl/internal/logger"
	"dirpx.dev/refl/mirror"
	"dirpx.dev/refl/tags"
	uref "dirpx.dev/refl/utils/reflect"
)

// Redacted replaces the value of a redacted field.
const Redacted = "<redacted>"

// DefaultMaxDepth bounds how deeply nested values are printed.
const DefaultMaxDepth = 32

// Redact is a field tag: the field's value is never printed.
type Redact struct{}

// ExclusiveTag marks Redact as appearing at most once per field.
func (Redact) ExclusiveTag() {}

type options struct {
	debug    bool
	redact   []string
	maxDepth int
}

// Option configures printing.
type Option func(*options)

// WithRedact redacts the fields whose path matches any of patterns. A
// field path joins reflected field names (and slice indices) with "/",
// so "**/password" redacts every field called password at any depth.
// Invalid patterns are logged and ignored.
func WithRedact(patterns ...string) Option {
	return func(o *options) {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				logger.ForComponent("format").Warn("ignoring invalid redact pattern", "pattern", p)
				continue
			}
			o.redact = append(o.redact, p)
		}
	}
}

// WithMaxDepth bounds nesting; deeper values print as "...".
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

func newOptions(debug bool, opts []Option) options {
	o := options{debug: debug, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Sprint renders v in the plain style: "{foo: 1, bar: 2}".
func Sprint(v any, opts ...Option) string {
	p := printer{opts: newOptions(false, opts)}
	p.value(reflect.ValueOf(v), "", 0)
	return p.b.String()
}

// Debug renders v in the debug style: `Type {foo: 1, bar: "x"}`, with
// strings quoted and enumerators qualified by their type.
func Debug(v any, opts ...Option) string {
	p := printer{opts: newOptions(true, opts)}
	p.value(reflect.ValueOf(v), "", 0)
	return p.b.String()
}

// Fprint writes Sprint(v) to w.
func Fprint(w io.Writer, v any, opts ...Option) (int, error) {
	return io.WriteString(w, Sprint(v, opts...))
}

// Value adapts a value to fmt.Formatter: %v prints it like Sprint and %+v
// like Debug. Other verbs go to package fmt unchanged.
type Value struct {
	v    any
	opts []Option
}

// Of wraps v for use with package fmt.
func Of(v any, opts ...Option) Value { return Value{v: v, opts: opts} }

// String returns Sprint of the wrapped value.
func (v Value) String() string { return Sprint(v.v, v.opts...) }

// Format implements fmt.Formatter.
func (v Value) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		if f.Flag('+') {
			io.WriteString(f, Debug(v.v, v.opts...))
			return
		}
		io.WriteString(f, Sprint(v.v, v.opts...))
	case 'q':
		io.WriteString(f, strconv.Quote(Sprint(v.v, v.opts...)))
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), v.v)
	}
}

type printer struct {
	b    strings.Builder
	opts options
}

var (
	stringerType  = reflect.TypeFor[fmt.Stringer]()
	errorType     = reflect.TypeFor[error]()
	reflectorType = reflect.TypeFor[mirror.Reflector]()
)

func (p *printer) value(v reflect.Value, path string, depth int) {
	if depth > p.opts.maxDepth {
		p.b.WriteString("...")
		return
	}
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			p.b.WriteString("nil")
			return
		}
		if v.Kind() == reflect.Pointer && v.CanInterface() && printsItself(v.Type()) && !explicit(v.Type().Elem()) {
			fmt.Fprint(&p.b, v.Interface())
			return
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		p.b.WriteString("nil")
		return
	}

	if !v.CanInterface() {
		fmt.Fprint(&p.b, v)
		return
	}
	if t, ok := describe(v.Type()); ok {
		if t.Kind() == mirror.Enum {
			p.enum(t, v)
		} else {
			p.record(t, v, path, depth)
		}
		return
	}

	switch v.Kind() {
	case reflect.String:
		if p.opts.debug {
			p.b.WriteString(strconv.Quote(v.String()))
		} else {
			p.b.WriteString(v.String())
		}
	case reflect.Slice, reflect.Array:
		p.b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.value(v.Index(i), join(path, strconv.Itoa(i)), depth+1)
		}
		p.b.WriteByte(']')
	case reflect.Map:
		p.mapValue(v, path, depth)
	default:
		fmt.Fprint(&p.b, v)
	}
}

// describe returns the descriptor used to print values of t. Structs
// with their own String or Error method keep it unless they describe
// themselves or are registered.
func describe(t reflect.Type) (*mirror.Type, bool) {
	if !explicit(t) {
		switch {
		case t.Kind() == reflect.Struct:
			if printsItself(t) {
				return nil, false
			}
		case uref.IsEnumKind(t.Kind()):
		default:
			return nil, false
		}
	}
	d, err := refl.TypeOf(t)
	if err != nil {
		return nil, false
	}
	// An integer type whose String yields no names is a number, not an enum.
	if d.Kind() == mirror.NoFields && t.Kind() != reflect.Struct {
		return nil, false
	}
	return d, true
}

// explicit reports whether t describes itself or is registered.
func explicit(t reflect.Type) bool {
	if reflect.PointerTo(t).Implements(reflectorType) {
		return true
	}
	_, ok := refl.Registry().Lookup(t)
	return ok
}

func printsItself(t reflect.Type) bool {
	return t.Implements(stringerType) || t.Implements(errorType)
}

func (p *printer) enum(t *mirror.Type, v reflect.Value) {
	if name, ok := t.ValueName(v.Interface()); ok {
		if p.opts.debug {
			p.b.WriteString(t.Name())
			p.b.WriteString("::")
		}
		p.b.WriteString(name)
		return
	}
	// Inferred enums only know the names found by the scan; the type's
	// own String covers the rest.
	if !explicit(t.GoType()) && printsItself(v.Type()) {
		fmt.Fprint(&p.b, v.Interface())
		return
	}
	p.b.WriteString(t.Name())
	p.b.WriteByte('(')
	if v.CanInt() {
		p.b.WriteString(strconv.FormatInt(v.Int(), 10))
	} else {
		p.b.WriteString(strconv.FormatUint(v.Uint(), 10))
	}
	p.b.WriteByte(')')
}

func (p *printer) record(t *mirror.Type, v reflect.Value, path string, depth int) {
	if p.opts.debug {
		p.b.WriteString(t.Name())
		p.b.WriteByte(' ')
	}
	p.b.WriteByte('{')
	// Zip cannot fail here: v has the descriptor's type.
	first := true
	_ = t.Zip(func(f *mirror.Field, vs []reflect.Value) {
		if !first {
			p.b.WriteString(", ")
		}
		first = false
		p.b.WriteString(f.Name())
		p.b.WriteString(": ")

		fp := join(path, f.Name())
		if p.redacted(f, fp) {
			p.b.WriteString(Redacted)
			return
		}
		p.value(vs[0], fp, depth+1)
	}, v.Interface())
	p.b.WriteByte('}')
}

func (p *printer) redacted(f *mirror.Field, path string) bool {
	if tags.Has[Redact](f.Tags()) {
		return true
	}
	for _, pat := range p.opts.redact {
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	return false
}

func (p *printer) mapValue(v reflect.Value, path string, depth int) {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		kp := printer{opts: p.opts}
		kp.value(iter.Key(), path, depth+1)
		entries = append(entries, entry{key: kp.b.String(), val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	p.b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.b.WriteString(e.key)
		p.b.WriteString(": ")
		p.value(e.val, join(path, e.key), depth+1)
	}
	p.b.WriteByte('}')
}

func join(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "/" + seg
}
