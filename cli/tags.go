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
	"dirpx.dev/refl/format"
	"dirpx.dev/refl/mirror"
)

// Visibility controls whether a flag, group or subcommand appears in help.
type Visibility uint8

const (
	// Public items are shown in --help. This is the default.
	Public Visibility = iota
	// Hidden items are shown only in --help-hidden.
	Hidden
	// Invisible items are never shown but still parsed.
	Invisible
	// Delete items are not parsed at all and report as unknown.
	Delete
)

func (*Visibility) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Reflect("Visibility",
		m.Value("public", Public),
		m.Value("hidden", Hidden),
		m.Value("invisible", Invisible),
		m.Value("delete", Delete),
	)
}

func (v Visibility) String() string { return format.Sprint(v) }

// Count is the number of times a flag or positional may occur.
type Count uint8

const (
	// Optional items occur at most once. This is the default.
	Optional Count = iota
	// Required items occur exactly once.
	Required
	// Repeated items occur any number of times. Slices are always
	// repeated; other values keep the last occurrence.
	Repeated
)

func (*Count) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Reflect("Count",
		m.Value("optional", Optional),
		m.Value("required", Required),
		m.Value("repeated", Repeated),
	)
}

func (c Count) String() string { return format.Sprint(c) }

// App is the type-level tag of a flags struct. It is optional.
type App struct {
	// Name is the program name. Defaults to the base name of os.Args[0].
	Name string
	// Authors, CopyrightYear and License are shown at the end of help.
	Authors       string
	CopyrightYear int
	License       string
	// About is the description shown at the top of help.
	About string
	// Version is printed by --version.
	Version string
	// URL is a website for the program.
	URL string
}

func (App) ExclusiveTag() {}

// Alias adds another name to a flag or subcommand. A member may carry
// any number of aliases.
type Alias struct {
	Name string
	// Vis is combined with the visibility of the aliased item; the less
	// visible of the two wins.
	Vis Visibility
}

// Flag marks a field as a flag. Untagged fields that are not structs are
// flags with default settings.
type Flag struct {
	// Name is the long name. Defaults to the field name. '_' and '-' are
	// interchangeable on the command line.
	Name string
	// Letter is an optional one-rune short name: -f, or clustered -abc.
	Letter rune
	Vis    Visibility
	// Arg names the flag's argument in help.
	Arg   string
	Count Count
	Help  string
}

func (Flag) ExclusiveTag() {}

// Positional marks a field as a positional argument.
type Positional struct {
	// Name is shown in help. Defaults to the upper-cased field name.
	Name  string
	Count Count
	Help  string
}

func (Positional) ExclusiveTag() {}

// Subcommand marks a struct (or pointer to struct) field as a subcommand.
// Once its name is seen, the rest of the command line belongs to it. A
// nil pointer field is allocated when its subcommand is chosen, so
// pointer fields tell which subcommand ran.
type Subcommand struct {
	// Name defaults to the field name.
	Name string
	Vis  Visibility
	// Help is shown in the parent's command list; About at the top of the
	// subcommand's own help, defaulting to Help.
	Help  string
	About string
}

func (Subcommand) ExclusiveTag() {}

// Group marks a struct field whose flags are merged into the parent.
// With a Name, they are spelled --name.flag; without one they are
// flattened. Untagged struct fields are groups named after the field.
// Groups cannot hold positionals.
type Group struct {
	Name string
	// Letter makes the group's flags reachable as -Xflag or -X flag.
	Letter rune
	Vis    Visibility
	Help   string
}

func (Group) ExclusiveTag() {}
