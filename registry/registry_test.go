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

package registry_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/refl/config"
	"dirpx.dev/refl/mirror"
	"dirpx.dev/refl/registry"
	uref "dirpx.dev/refl/utils/reflect"
)

type T1 struct{ A int }
type T2 struct{ B string }

func reflectT1(m *mirror.Mirror) *mirror.Info { return m.Infer() }
func reflectT2(m *mirror.Mirror) *mirror.Info { return m.Infer().Named("T2") }

func TestRegister_IdempotentAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	require.NoError(t, reg.Register(reflect.TypeOf(&T1{}), reflectT1))
	// idempotent re-register with the same callback
	require.NoError(t, reg.Register(reflect.TypeOf(T1{}), reflectT1))

	fn, ok := reg.Lookup(reflect.TypeOf(T1{}))
	require.True(t, ok)
	assert.Equal(t, reflect.ValueOf(reflectT1).Pointer(), reflect.ValueOf(fn).Pointer())

	// pointer levels normalize to the same base
	_, ok = reg.Lookup(reflect.TypeOf((**T1)(nil)))
	assert.True(t, ok)

	assert.Equal(t, 1, reg.Count())
}

func TestRegister_Conflict(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	require.NoError(t, reg.Register(reflect.TypeOf(&T1{}), reflectT1))
	err := reg.Register(reflect.TypeOf(T1{}), reflectT2)
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration)
}

func TestRegister_Errors(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	assert.ErrorIs(t, reg.Register(nil, reflectT1), registry.ErrNilType)
	assert.ErrorIs(t, reg.Register(reflect.TypeOf(T1{}), nil), registry.ErrNilFunc)
	assert.ErrorIs(t, reg.Register(reflect.TypeOf(""), reflectT1), uref.ErrReflectKind)
	assert.ErrorIs(t, reg.Register(reflect.TypeOf([]T1{}), reflectT1), uref.ErrReflectKind)
}

func TestNormalize_MaxUnwrapLimit(t *testing.T) {
	cfg := config.NewConfig(config.WithMaxUnwrap(1))
	reg := registry.New(cfg)

	var x **T1
	assert.ErrorIs(t, reg.Register(reflect.TypeOf(x), reflectT1), uref.ErrReflectTooDeep)

	reg2 := registry.New(config.DefaultConfig())
	assert.NoError(t, reg2.Register(reflect.TypeOf(x), reflectT1))
}

func TestEntriesAndReset(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	require.NoError(t, reg.Register(reflect.TypeOf(&T1{}), reflectT1))
	require.NoError(t, reg.Register(reflect.TypeOf(&T2{}), reflectT2))

	entries := reg.Entries()
	require.Len(t, entries, 2)
	got := map[reflect.Type]bool{}
	for _, e := range entries {
		got[e.Type] = e.Func != nil
	}
	assert.Equal(t, map[reflect.Type]bool{
		reflect.TypeOf(T1{}): true,
		reflect.TypeOf(T2{}): true,
	}, got)

	reg.Reset()

	assert.Equal(t, 0, reg.Count())
	_, ok := reg.Lookup(reflect.TypeOf(&T1{}))
	assert.False(t, ok)
	// the snapshot survives Reset
	assert.Len(t, entries, 2)
}

func TestLookupNilAndUnknown(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	_, ok := reg.Lookup(nil)
	assert.False(t, ok)
	_, ok = reg.Lookup(reflect.TypeOf(&T1{}))
	assert.False(t, ok)
	_, ok = reg.Lookup(reflect.TypeOf(map[string]int{}))
	assert.False(t, ok)
}
