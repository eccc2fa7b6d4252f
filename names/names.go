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

// Package names recovers clean identifiers for Go types, struct fields and
// enumerators.
//
// Type names are parsed out of the strings reported by the reflect package,
// stripping package paths and generic instantiation parameters:
//
//	names.Of(reflect.TypeOf(pkg.Pair[int, string]{})).Name() // "Pair"
//
// Field names are recovered from a pointer into a struct, and enumerator
// names from a fmt.Stringer implementation.
package names

import (
	"path"
	"reflect"
	"strings"
)

// TypeNames holds the pretty-printed names of a type in various formats.
// The zero value describes no type and returns empty strings.
type TypeNames struct {
	full string
	// pkg is the length of the package path prefix, without the dot.
	pkg int
	// ident is the start of the identifier.
	ident int
	// params is the start of the type parameter list, or len(full).
	params int
}

// Of extracts the names of t. Unnamed types (slices, maps, anonymous
// structs, ...) report their whole type literal as Name.
func Of(t reflect.Type) TypeNames {
	if t == nil {
		return TypeNames{}
	}
	if t.Name() == "" {
		s := t.String()
		return TypeNames{full: s, params: len(s)}
	}

	pkg := t.PkgPath()
	n := TypeNames{full: t.Name()}
	if pkg != "" {
		n.full = pkg + "." + n.full
		n.pkg = len(pkg)
		n.ident = len(pkg) + 1
	}
	n.params = len(n.full)
	if i := strings.IndexByte(n.full[n.ident:], '['); i >= 0 {
		n.params = n.ident + i
	}
	return n
}

// For extracts the names of T.
func For[T any]() TypeNames {
	return Of(reflect.TypeFor[T]())
}

// TypeName returns the identifier of T: no package path, no type
// parameters.
func TypeName[T any]() string {
	return For[T]().Name()
}

// Name returns the identifier, i.e. without its package path or its type
// parameters.
func (n TypeNames) Name() string { return n.full[n.ident:n.params] }

// Path returns the full path (package path and identifier) without type
// parameters.
func (n TypeNames) Path() string { return n.full[:n.params] }

// Namespace returns the package path of the type. May be empty.
func (n TypeNames) Namespace() string { return n.full[:n.pkg] }

// Qualified returns "pkg.Name" using the last element of the package path.
func (n TypeNames) Qualified() string {
	if n.pkg == 0 {
		return n.Name()
	}
	return path.Base(n.Namespace()) + "." + n.Name()
}

// Params returns the type parameter list including brackets. May be empty.
func (n TypeNames) Params() string { return n.full[n.params:] }

// NameWithParams returns the identifier followed by its type parameters.
func (n TypeNames) NameWithParams() string { return n.full[n.ident:] }

// PathWithParams returns the full path with type parameters.
func (n TypeNames) PathWithParams() string { return n.full }

// String implements fmt.Stringer and returns Name.
func (n TypeNames) String() string { return n.Name() }
