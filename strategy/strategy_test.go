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

package strategy_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/config"
	"dirpx.dev/refl/mirror"
	"dirpx.dev/refl/registry"
	"dirpx.dev/refl/strategy"
)

type selfReflected struct {
	A int
	B string
}

func (s *selfReflected) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Reflect("Self", m.Field("alpha", &s.A))
}

type valueReceiver struct{ X int }

func (valueReceiver) Reflect(m *mirror.Mirror) *mirror.Info {
	return m.Reflect("ByValue")
}

type plain struct {
	Foo int
	Bar int
}

type color uint8

func (c color) String() string {
	switch c {
	case 0:
		return "Red"
	case 1:
		return "Green"
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

type rawInt int

func mirrorOf[T any]() *mirror.Mirror {
	return mirror.New(reflect.TypeFor[T](), config.DefaultConfig().MirrorOptions())
}

func TestReflectorStrategy(t *testing.T) {
	s := strategy.NewReflectorStrategy()
	cfg := config.DefaultConfig()

	info, ok := s.TryReflect(mirrorOf[selfReflected](), cfg)
	require.True(t, ok)
	typ, err := mirror.Build(info)
	require.NoError(t, err)
	assert.Equal(t, "Self{alpha}", typ.String())

	info, ok = s.TryReflect(mirrorOf[valueReceiver](), cfg)
	require.True(t, ok)
	assert.Equal(t, mirror.NoFields, info.Kind())

	_, ok = s.TryReflect(mirrorOf[plain](), cfg)
	assert.False(t, ok)

	_, ok = s.TryReflect(nil, cfg)
	assert.False(t, ok)
}

func TestRegistryStrategy(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	require.NoError(t, reg.Register(reflect.TypeFor[plain](), func(m *mirror.Mirror) *mirror.Info {
		return m.Infer().Named("Plain")
	}))

	s := strategy.NewRegistryStrategy(reg)

	info, ok := s.TryReflect(mirrorOf[plain](), cfg)
	require.True(t, ok)
	typ, err := mirror.Build(info)
	require.NoError(t, err)
	assert.Equal(t, "Plain{foo, bar}", typ.String())

	_, ok = s.TryReflect(mirrorOf[selfReflected](), cfg)
	assert.False(t, ok)

	_, ok = strategy.NewRegistryStrategy(nil).TryReflect(mirrorOf[plain](), cfg)
	assert.False(t, ok)
}

func TestInferStrategy(t *testing.T) {
	s := strategy.NewInferStrategy()
	cfg := config.DefaultConfig()

	info, ok := s.TryReflect(mirrorOf[plain](), cfg)
	require.True(t, ok)
	typ, err := mirror.Build(info)
	require.NoError(t, err)
	assert.Equal(t, mirror.Struct, typ.Kind())
	assert.Equal(t, "plain{foo, bar}", typ.String())

	info, ok = s.TryReflect(mirrorOf[color](), cfg)
	require.True(t, ok)
	typ, err = mirror.Build(info)
	require.NoError(t, err)
	assert.Equal(t, "color{Red, Green}", typ.String())

	_, ok = s.TryReflect(mirrorOf[rawInt](), cfg)
	assert.False(t, ok, "integers without String are not inferred")
}

// Compile-time checks.
var (
	_ apis.Strategy = strategy.NewReflectorStrategy()
	_ apis.Strategy = strategy.NewRegistryStrategy(nil)
	_ apis.Strategy = strategy.NewInferStrategy()
)
