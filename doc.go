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

// Package refl provides process-wide reflection descriptors for Go
// structs and integer enums.
//
// A descriptor (mirror.Type) lists the members of a type in declaration
// order together with their names, tags and Go identities. Consumers such
// as printers, argument parsers and table mappers walk descriptors instead
// of calling reflect directly, so a type controls how every consumer sees
// it from one place.
//
// # Design
//
// The core of refl is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: rules that control how types are normalized and inferred
//     (pointer unwrap depth, naming style, struct tag key, enum scan range).
//
//   - Registry: a process-wide mapping from Go types to reflection
//     callbacks, for types whose package cannot be changed (Register).
//
//   - Resolver: turns a reflect.Type into a memoized *mirror.Type. The
//     default resolver tries, in order:
//     1. the type's own Reflect method (mirror.Reflector);
//     2. a callback from the Registry;
//     3. inference from the struct layout, or from String for enums.
//
//   - Builder: a pluggable factory that constructs Registry and Resolver
//     instances for a given Config (and optional extension data).
//
// Readers load the current snapshot atomically and never take locks:
//
//	t := refl.Of[Point]()
//	t.Match("x", func(m mirror.Member) { ... }, nil)
//
// Writers (SetConfig, SetBuilder, SetExt, SetRegistry, SetResolver, SetAll,
// Register) take a short build mutex, derive a new snapshot and publish it
// with an atomic pointer swap.
//
// # Pinning
//
// SetRegistry and SetResolver pin the layer they set: later
// reconfiguration keeps it until UnpinRegistry or UnpinResolver. Pinning
// a resolver also keeps its cache, so reflections built before a
// Register call stay in use.
//
// # Errors
//
// A type that cannot be reflected, or whose Reflect method or callback
// produces an invalid description, has no descriptor at all. TypeOf and
// ValueOf return the error; Of panics with it.
//
// # Structural operations
//
// Fields, Equal, Diff and Copy work on any reflectable struct through its
// descriptor, so fields skipped by the description are skipped by them.
package refl
