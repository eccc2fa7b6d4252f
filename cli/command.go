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

package cli

import (
	"encoding"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"dirpx.dev/refl"
	"dirpx.dev/refl/internal/logger"
	"dirpx.dev/refl/mirror"
	"dirpx.dev/refl/tags"
)

// command is a flags struct bound to a destination value.
type command struct {
	path  string // "prog" or "prog sub"
	app   App
	about string

	flags    []*flag
	byLong   map[string]*flag
	byShort  map[rune]*flag
	groups   []*group
	byLetter map[rune]*group
	pos      []*positional
	subs     []*subcommand
	byName   map[string]*subcommand

	nesting []reflect.Type // struct types of the groups being added
}

type flag struct {
	names  []string // primary first, then aliases; group prefix included
	hidden []bool   // per name
	letter rune
	tag    Flag
	vis    Visibility
	target reflect.Value
	seen   int
}

type positional struct {
	tag    Positional
	name   string
	target reflect.Value
	seen   int
}

type subcommand struct {
	tag   Subcommand
	names []string
	vis   Visibility
	field reflect.Value
}

type group struct {
	name   string // prefix without the trailing dot
	letter rune
	tag    Group
	vis    Visibility
}

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

	reservedLong  = map[string]bool{"help": true, "help-hidden": true, "version": true}
	reservedShort = map[rune]bool{'h': true, 'V': true}
)

// normalize makes '_' and '-' interchangeable in names.
func normalize(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

func programName(app App) string {
	if app.Name != "" {
		return app.Name
	}
	if len(os.Args) > 0 {
		return filepath.Base(os.Args[0])
	}
	return "program"
}

// compile binds the struct v, which must be addressable, to a command.
func compile(path string, v reflect.Value) (*command, error) {
	t, err := refl.TypeOf(v.Type())
	if err != nil {
		return nil, err
	}
	if t.Kind() == mirror.Enum {
		return nil, fmt.Errorf("%w: %s is an enum", ErrNotStruct, t.Name())
	}

	c := &command{
		byLong:   make(map[string]*flag),
		byShort:  make(map[rune]*flag),
		byLetter: make(map[rune]*group),
		byName:   make(map[string]*subcommand),
	}
	c.app, _ = tags.First[App](t.Tags())
	c.about = c.app.About
	c.path = path
	if c.path == "" {
		c.path = programName(c.app)
	}

	c.nesting = []reflect.Type{v.Type()}
	if err := c.add(t, v, "", Public, true); err != nil {
		return nil, err
	}
	logger.ForComponent("cli").Debug("compiled command",
		"command", c.path, "flags", len(c.flags), "positionals", len(c.pos), "subcommands", len(c.subs))
	return c, nil
}

// add binds the fields of t in v. prefix is the group prefix ("" or
// "name.") and vis the visibility inherited from enclosing groups.
func (c *command) add(t *mirror.Type, v reflect.Value, prefix string, vis Visibility, top bool) error {
	for _, f := range t.Fields() {
		fv := f.Of(v)
		ft := f.Tags()

		n := tags.Count[Flag](ft) + tags.Count[Positional](ft) + tags.Count[Subcommand](ft) + tags.Count[Group](ft)
		if n > 1 {
			return fmt.Errorf("%w: %s.%s", ErrConflictingTags, t.Name(), f.Name())
		}
		if !fv.CanSet() {
			return fmt.Errorf("%w: %s.%s", ErrNotSettable, t.Name(), f.Name())
		}

		var err error
		if tag, ok := tags.First[Flag](ft); ok {
			err = c.addFlag(f, fv, tag, prefix, vis)
		} else if tag, ok := tags.First[Positional](ft); ok {
			if !top {
				return fmt.Errorf("%w: %s.%s", ErrPositionalInGroup, t.Name(), f.Name())
			}
			err = c.addPositional(f, fv, tag)
		} else if tag, ok := tags.First[Subcommand](ft); ok {
			err = c.addSubcommand(f, fv, tag, prefix, vis)
		} else if tag, ok := tags.First[Group](ft); ok {
			err = c.addGroup(fv, tag, prefix, vis)
		} else if isGroupType(fv.Type()) {
			err = c.addGroup(fv, Group{Name: f.Name()}, prefix, vis)
		} else {
			err = c.addFlag(f, fv, Flag{}, prefix, vis)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// isGroupType reports whether an untagged field of type t is a group
// rather than a flag: structs that do not parse themselves from text.
func isGroupType(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && !reflect.PointerTo(t).Implements(textUnmarshalerType)
}

func (c *command) addFlag(f *mirror.Field, fv reflect.Value, tag Flag, prefix string, vis Visibility) error {
	vis = max(vis, tag.Vis)
	if vis == Delete {
		return nil
	}
	name := tag.Name
	if name == "" {
		name = f.Name()
	}
	fl := &flag{letter: tag.Letter, tag: tag, vis: vis, target: fv}

	if err := c.bindLong(fl, prefix+name, vis); err != nil {
		return err
	}
	for _, a := range tags.Select[Alias](f.Tags()) {
		if av := max(vis, a.Vis); av != Delete {
			if err := c.bindLong(fl, prefix+a.Name, av); err != nil {
				return err
			}
		}
	}

	if tag.Letter != 0 {
		if reservedShort[tag.Letter] {
			return fmt.Errorf("%w: -%c", ErrReservedName, tag.Letter)
		}
		if c.byShort[tag.Letter] != nil || c.byLetter[tag.Letter] != nil {
			return fmt.Errorf("%w: -%c", ErrDuplicateName, tag.Letter)
		}
		c.byShort[tag.Letter] = fl
	}
	c.flags = append(c.flags, fl)
	return nil
}

func (c *command) bindLong(fl *flag, name string, vis Visibility) error {
	key := normalize(name)
	if reservedLong[key] {
		return fmt.Errorf("%w: --%s", ErrReservedName, key)
	}
	if _, dup := c.byLong[key]; dup {
		return fmt.Errorf("%w: --%s", ErrDuplicateName, key)
	}
	c.byLong[key] = fl
	fl.names = append(fl.names, key)
	fl.hidden = append(fl.hidden, vis != Public)
	return nil
}

func (c *command) addPositional(f *mirror.Field, fv reflect.Value, tag Positional) error {
	name := tag.Name
	if name == "" {
		name = strings.ToUpper(normalize(f.Name()))
	}
	c.pos = append(c.pos, &positional{tag: tag, name: name, target: fv})
	return nil
}

func (c *command) addSubcommand(f *mirror.Field, fv reflect.Value, tag Subcommand, prefix string, vis Visibility) error {
	vis = max(vis, tag.Vis)
	if vis == Delete {
		return nil
	}
	if !isGroupType(fv.Type()) {
		return fmt.Errorf("%w: subcommand %s is a %s", ErrNotStruct, f.Name(), fv.Type())
	}
	name := tag.Name
	if name == "" {
		name = f.Name()
	}
	sub := &subcommand{tag: tag, vis: vis, field: fv}
	names := []string{prefix + name}
	for _, a := range tags.Select[Alias](f.Tags()) {
		if max(vis, a.Vis) != Delete {
			names = append(names, prefix+a.Name)
		}
	}
	for _, n := range names {
		key := normalize(n)
		if _, dup := c.byName[key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateName, key)
		}
		c.byName[key] = sub
		sub.names = append(sub.names, key)
	}
	c.subs = append(c.subs, sub)
	return nil
}

func (c *command) addGroup(fv reflect.Value, tag Group, prefix string, vis Visibility) error {
	vis = max(vis, tag.Vis)
	if vis == Delete {
		return nil
	}
	st := fv.Type()
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if slices.Contains(c.nesting, st) {
		return fmt.Errorf("%w: %s contains itself", ErrRecursiveGroup, st)
	}
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			fv.Set(reflect.New(st))
		}
		fv = fv.Elem()
	}
	gt, err := refl.TypeOf(st)
	if err != nil {
		return err
	}

	g := &group{tag: tag, vis: vis, letter: tag.Letter}
	if tag.Name != "" {
		g.name = normalize(prefix + tag.Name)
		prefix = g.name + "."
	}
	if tag.Letter != 0 {
		if reservedShort[tag.Letter] {
			return fmt.Errorf("%w: -%c", ErrReservedName, tag.Letter)
		}
		if c.byShort[tag.Letter] != nil || c.byLetter[tag.Letter] != nil {
			return fmt.Errorf("%w: -%c", ErrDuplicateName, tag.Letter)
		}
		c.byLetter[tag.Letter] = g
	}
	c.groups = append(c.groups, g)
	c.nesting = append(c.nesting, st)
	defer func() { c.nesting = c.nesting[:len(c.nesting)-1] }()
	return c.add(gt, fv, prefix, vis, false)
}

// enter returns the command of sub, allocating a nil pointer field.
func (c *command) enter(sub *subcommand) (*command, error) {
	v := sub.field
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	child, err := compile(c.path+" "+sub.names[0], v)
	if err != nil {
		return nil, err
	}
	child.app.Version = c.app.Version
	child.about = sub.tag.About
	if child.about == "" {
		child.about = sub.tag.Help
	}
	return child, nil
}
