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
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"unicode/utf8"
)

// Parse binds args (without the program name) to the flags struct dst,
// which must be a non-nil pointer to a reflectable struct.
//
// Every reflected field is a flag unless tagged otherwise or of struct
// type, in which case it is a group named after the field. Flags are
// accepted as --name=value, --name value, -n value, -nvalue and clustered
// short booleans (-abc); "--" ends flag parsing.
//
// Parse returns an *Error. For --help, --help-hidden and --version its
// Message holds the text to print and errors.Is reports ErrHelp or
// ErrVersion.
func Parse(dst any, args []string) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fatal(ErrNotStruct, "%s: got %T", ErrNotStruct.Error(), dst)
	}
	c, err := compile("", v.Elem())
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return e
		}
		return &Error{Message: err.Error(), Fatal: true, err: err}
	}
	return c.parse(args)
}

// MustParse parses os.Args into dst and exits the process on help,
// version or error.
func MustParse(dst any) {
	if err := Parse(dst, os.Args[1:]); err != nil {
		Exit(err)
	}
}

func (c *command) parse(args []string) error {
	rest := false
	for i := 0; i < len(args); i++ {
		a := args[i]
		var err error
		switch {
		case rest:
			err = c.positional(a)
		case a == "--":
			rest = true
		case strings.HasPrefix(a, "--"):
			name, val, hasVal := strings.Cut(a[2:], "=")
			i, err = c.long(name, val, hasVal, args, i)
		case len(a) > 1 && a[0] == '-':
			i, err = c.shorts(a[1:], args, i)
		default:
			if sub, ok := c.byName[normalize(a)]; ok {
				if err := c.finish(); err != nil {
					return err
				}
				child, err := c.enter(sub)
				if err != nil {
					return &Error{Message: err.Error(), Fatal: true, err: err}
				}
				return child.parse(args[i+1:])
			}
			err = c.positional(a)
		}
		if err != nil {
			return err
		}
	}
	return c.finish()
}

// long handles --name[=val]; i is the index of the current argument and
// the returned index is the last one consumed.
func (c *command) long(name, val string, hasVal bool, args []string, i int) (int, error) {
	key := normalize(name)
	switch key {
	case "help":
		return i, c.help(false)
	case "help-hidden":
		return i, c.help(true)
	case "version":
		return i, c.version()
	}

	fl, ok := c.byLong[key]
	if !ok {
		return i, fatal(ErrUnknownFlag, "unknown flag --%s\n\ntry --help", name)
	}
	return c.take(fl, "--"+key, val, hasVal, args, i)
}

// shorts handles the text after a single '-'.
func (c *command) shorts(s string, args []string, i int) (int, error) {
	r, size := utf8.DecodeRuneInString(s)
	if g, ok := c.byLetter[r]; ok {
		name := s[size:]
		if name == "" {
			if i+1 >= len(args) {
				return i, fatal(ErrMissingValue, "-%c expects a flag name", r)
			}
			i++
			name = args[i]
		}
		name, val, hasVal := strings.Cut(name, "=")
		if g.name != "" {
			name = g.name + "." + name
		}
		return c.long(name, val, hasVal, args, i)
	}

	for j := 0; j < len(s); {
		r, size := utf8.DecodeRuneInString(s[j:])
		j += size
		switch r {
		case 'h':
			return i, c.help(false)
		case 'V':
			return i, c.version()
		}
		fl, ok := c.byShort[r]
		if !ok {
			return i, fatal(ErrUnknownFlag, "unknown flag -%c\n\ntry --help", r)
		}

		rest := s[j:]
		if isBool(fl.target.Type()) && !strings.HasPrefix(rest, "=") {
			if _, err := c.take(fl, fmt.Sprintf("-%c", r), "true", true, args, i); err != nil {
				return i, err
			}
			continue
		}
		rest = strings.TrimPrefix(rest, "=")
		return c.take(fl, fmt.Sprintf("-%c", r), rest, rest != "", args, i)
	}
	return i, nil
}

// take assigns a value to fl, reading it from the next argument if the
// flag expects one and none was attached.
func (c *command) take(fl *flag, spelled, val string, hasVal bool, args []string, i int) (int, error) {
	if !hasVal {
		if isBool(fl.target.Type()) {
			val = "true"
		} else {
			if i+1 >= len(args) {
				return i, fatal(ErrMissingValue, "%s expects a value", spelled)
			}
			i++
			val = args[i]
		}
	}

	fl.seen++
	if fl.seen > 1 && fl.tag.Count != Repeated && fl.target.Kind() != reflect.Slice {
		return i, fatal(ErrDuplicateFlag, "%s given more than once", spelled)
	}
	if err := setValue(fl.target, val); err != nil {
		return i, fatal(errors.Join(ErrBadValue, err), "bad value %q for %s: %v", val, spelled, err)
	}
	return i, nil
}

func (c *command) positional(a string) error {
	for _, p := range c.pos {
		if p.seen > 0 && p.tag.Count != Repeated && p.target.Kind() != reflect.Slice {
			continue
		}
		p.seen++
		if err := setValue(p.target, a); err != nil {
			return fatal(errors.Join(ErrBadValue, err), "bad value %q for %s: %v", a, p.name, err)
		}
		return nil
	}
	return fatal(ErrUnexpectedArgument, "unexpected argument %q\n\ntry --help", a)
}

// finish checks that every required item was given.
func (c *command) finish() error {
	for _, fl := range c.flags {
		if fl.tag.Count == Required && fl.seen == 0 {
			return fatal(ErrMissingFlag, "missing required flag --%s", fl.names[0])
		}
	}
	for _, p := range c.pos {
		if p.tag.Count == Required && p.seen == 0 {
			return fatal(ErrMissingArgument, "missing required argument %s", p.name)
		}
	}
	return nil
}

func (c *command) help(hidden bool) error {
	return &Error{Message: c.usage(hidden), err: ErrHelp}
}

func (c *command) version() error {
	v := c.app.Version
	if v == "" {
		v = "(unknown version)"
	}
	return &Error{Message: programName(c.app) + " " + v, err: ErrVersion}
}
