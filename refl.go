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

package refl

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/builder"
	"dirpx.dev/refl/config"
	"dirpx.dev/refl/mirror"
	"dirpx.dev/refl/registry"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil)
	s.bld = b
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("refl: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("refl: builder returned nil resolver")
)

// Of returns the reflection of T using the global resolver. T may be a
// struct or integer enum type, or a pointer to one.
//
// Of panics if T cannot be reflected. Reflection errors are programming
// errors in the type's Reflect method or registration; use TypeOf to
// handle them as values.
func Of[T any]() *mirror.Type {
	t, err := TypeOf(reflect.TypeFor[T]())
	if err != nil {
		panic(err)
	}
	return t
}

// TypeOf returns the reflection of t using the global resolver.
func TypeOf(t reflect.Type) (*mirror.Type, error) {
	s := st.Load()
	return s.res.Resolve(t, s.cfg)
}

// ValueOf returns the reflection of the dynamic type of v.
func ValueOf(v any) (*mirror.Type, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil", mirror.ErrNotReflectable)
	}
	return TypeOf(reflect.TypeOf(v))
}

// Register associates T with fn in the global registry, for types that
// cannot implement mirror.Reflector themselves. fn receives the mirror and
// its prototype, whose field addresses identify the fields:
//
//	refl.Register(func(m *mirror.Mirror, p *net.TCPAddr) *mirror.Info {
//		return m.Reflect("TCPAddr", m.Field("ip", &p.IP), m.Field("port", &p.Port))
//	})
//
// Register must be called at most once per type; a second call returns
// registry.ErrConflictingRegistration. Unless the resolver is pinned it is
// rebuilt, so a reflection of T inferred before the call is discarded.
func Register[T any](fn func(m *mirror.Mirror, proto *T) *mirror.Info) error {
	if fn == nil {
		return registry.ErrNilFunc
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	t := reflect.TypeFor[T]()
	if _, ok := old.reg.Lookup(t); ok {
		return fmt.Errorf("%w: %s", registry.ErrConflictingRegistration, t)
	}
	err := old.reg.Register(t, func(m *mirror.Mirror) *mirror.Info {
		return fn(m, m.Proto().(*T))
	})
	if err != nil {
		return err
	}

	if !old.pres {
		next := *old
		next.res = old.bld.BuildResolver(old.cfg, old.reg, old.res, old.ext)
		publish(&next)
	}
	return nil
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced. A registry or resolver passed
// here is pinned; one built here is not.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := &state{cfg: old.cfg, ext: ext, bld: old.bld}
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}

	next.reg, next.preg = reg, reg != nil
	if reg == nil {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
	}
	next.res, next.pres = res, res != nil
	if res == nil {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
	}
	publish(next)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds the
// unpinned layers.
func SetConfig(cfg apis.Config) {
	swap(func(next *state) { next.cfg = cfg }, true)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets and pins the global registry. The resolver is rebuilt
// over it unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	swap(func(next *state) {
		next.reg, next.preg = reg, true
	}, true)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	swap(func(next *state) {
		next.res, next.pres = res, true
	}, false)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds the unpinned layers
// with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	swap(func(next *state) { next.bld = b }, true)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	swap(func(next *state) { next.ext = ext }, true)
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry keeps the global registry across reconfiguration.
func PinRegistry() {
	swap(func(next *state) { next.preg = true }, false)
}

// UnpinRegistry lets the next reconfiguration rebuild the registry.
func UnpinRegistry() {
	swap(func(next *state) { next.preg = false }, false)
}

// IsResolverPinned returns whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver keeps the global resolver across reconfiguration.
func PinResolver() {
	swap(func(next *state) { next.pres = true }, false)
}

// UnpinResolver lets the next reconfiguration rebuild the resolver.
func UnpinResolver() {
	swap(func(next *state) { next.pres = false }, false)
}

// swap publishes a copy of the current state edited by edit. With rebuild
// set, unpinned layers are rebuilt from the edited state; the registry
// first, so that the resolver is built over the new one.
func swap(edit func(next *state), rebuild bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	edit(&next)

	if rebuild {
		if !next.preg {
			next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
		}
		if !next.pres {
			next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
		}
	}
	publish(&next)
}

// publish stores s. Callers hold buildMu.
func publish(s *state) {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(s)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension configuration.
	ext any
	// reg is the global registry.
	reg apis.Registry
	// res is the global resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether the registry is pinned.
	preg bool
	// pres indicates whether the resolver is pinned.
	pres bool
}
