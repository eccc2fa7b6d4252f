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

package apis

import (
	"reflect"

	"dirpx.dev/refl/mirror"
)

// Registry maps types the caller does not own to reflection callbacks.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register associates the base type of t with fn.
	// Implementations should be idempotent for the same callback and reject
	// a different callback for an already registered type.
	Register(t reflect.Type, fn mirror.Func) error
	// Lookup returns the callback for a type if present.
	Lookup(t reflect.Type) (fn mirror.Func, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, callback) association in a Registry snapshot.
type Entry struct {
	// Type is the registered base type.
	Type reflect.Type
	// Func is the associated reflection callback.
	Func mirror.Func
}
