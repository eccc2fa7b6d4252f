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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/config"
	"dirpx.dev/refl/mirror"
	uref "dirpx.dev/refl/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("refl(registry): nil reflect.Type provided")
	// ErrNilFunc is returned when a nil reflection callback is provided.
	ErrNilFunc = errors.New("refl(registry): nil reflection callback provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different callback.
	ErrConflictingRegistration = errors.New("refl(registry): conflicting type registration")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps the base reflect.Type to its mirror.Func.
	m sync.Map
	// count tracks the number of registered entries.
	count int
}

// Register associates the base type of t with fn.
// It is idempotent for the same (type, callback) pair; callbacks are
// compared by code pointer, so two distinct closures over the same
// function literal count as the same callback.
func (r *registry) Register(t reflect.Type, fn mirror.Func) error {
	if t == nil {
		return ErrNilType
	}
	if fn == nil {
		return ErrNilFunc
	}

	b, err := uref.Normalize(t, r.cfg.MaxUnwrap)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(b); ok {
		return sameFunc(old.(mirror.Func), fn)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		return sameFunc(old.(mirror.Func), fn)
	}

	r.m.Store(b, fn)
	r.count++
	return nil
}

func sameFunc(old, fn mirror.Func) error {
	if reflect.ValueOf(old).Pointer() == reflect.ValueOf(fn).Pointer() {
		return nil
	}
	return ErrConflictingRegistration
}

// Lookup returns the callback for a type if present.
func (r *registry) Lookup(t reflect.Type) (mirror.Func, bool) {
	if t == nil {
		return nil, false
	}
	b, err := uref.Normalize(t, r.cfg.MaxUnwrap)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(b); ok {
		return v.(mirror.Func), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type: key.(reflect.Type),
			Func: value.(mirror.Func),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
