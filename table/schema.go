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

package table

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"dirpx.dev/refl"
	"dirpx.dev/refl/mirror"
	"dirpx.dev/refl/names"
	"dirpx.dev/refl/tags"
	uref "dirpx.dev/refl/utils/reflect"
)

var timeType = reflect.TypeFor[time.Time]()

type column struct {
	name    string
	field   *mirror.Field
	sqlType string
	pk      bool
	notNull bool
	pointer bool
	enum    *mirror.Type // reflected enum stored by name
}

type layout struct {
	name string
	cols []column
	pk   int // index into cols, -1 without a primary key
}

// Schema renders the CREATE TABLE statement for the struct descriptor t.
func Schema(t *mirror.Type) (string, error) {
	l, err := plan(t)
	if err != nil {
		return "", err
	}
	return l.create(), nil
}

func plan(t *mirror.Type) (*layout, error) {
	if t.Kind() == mirror.Enum {
		return nil, fmt.Errorf("%w: %s is an enum", ErrUnsupportedType, t.Name())
	}
	l := &layout{pk: -1}
	if tag, ok := tags.First[Table](t.Tags()); ok && tag.Name != "" {
		l.name = tag.Name
	} else {
		l.name = names.Convert(t.Name(), names.Snake)
	}

	for _, f := range t.Fields() {
		tag, _ := tags.First[Column](f.Tags())
		if tag.Skip {
			continue
		}
		c := column{name: tag.Name, field: f, pk: tag.PrimaryKey}
		if c.name == "" {
			c.name = f.Name()
		}

		ft := f.Type()
		if ft.Kind() == reflect.Pointer {
			c.pointer = true
			ft = ft.Elem()
		}
		typ, enum, err := sqlType(ft)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s is %s", err, t.Name(), f.Name(), f.Type())
		}
		c.sqlType, c.enum = typ, enum
		// A nil []byte is stored as NULL.
		c.notNull = tag.NotNull || !(c.pointer || typ == "BLOB")

		if c.pk {
			if l.pk >= 0 {
				return nil, fmt.Errorf("refl(table): %s has two primary keys", t.Name())
			}
			l.pk = len(l.cols)
		}
		l.cols = append(l.cols, c)
	}
	if len(l.cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoColumns, t.Name())
	}
	return l, nil
}

func sqlType(t reflect.Type) (string, *mirror.Type, error) {
	if t == timeType {
		return "TIMESTAMP", nil, nil
	}
	if e, ok := enumOf(t); ok {
		return "TEXT", e, nil
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "INTEGER", nil, nil
	case reflect.Float32, reflect.Float64:
		return "REAL", nil, nil
	case reflect.String:
		return "TEXT", nil, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return "BLOB", nil, nil
		}
	}
	return "", nil, ErrUnsupportedType
}

// enumOf returns the descriptor of t if it reflects as an enum.
func enumOf(t reflect.Type) (*mirror.Type, bool) {
	if !uref.IsEnumKind(t.Kind()) || t.Name() == "" || t.PkgPath() == "" {
		return nil, false
	}
	e, err := refl.TypeOf(t)
	if err != nil || e.Kind() != mirror.Enum {
		return nil, false
	}
	return e, true
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (l *layout) create() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (", quote(l.name))
	for i, c := range l.cols {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "\n\t%s %s", quote(c.name), c.sqlType)
		if c.notNull {
			b.WriteString(" NOT NULL")
		}
		if c.pk {
			b.WriteString(" PRIMARY KEY")
		}
	}
	b.WriteString("\n)")
	return b.String()
}

func (l *layout) columns() string {
	out := make([]string, len(l.cols))
	for i, c := range l.cols {
		out[i] = quote(c.name)
	}
	return strings.Join(out, ", ")
}
