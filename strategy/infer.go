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

package strategy

import (
	"fmt"
	"reflect"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/mirror"
	uref "dirpx.dev/refl/utils/reflect"
)

// NewInferStrategy creates an apis.Strategy that reflects types from their
// layout: structs by their exported fields, integer enums by scanning the
// configured range through String.
func NewInferStrategy() apis.Strategy {
	return inferStrategy{}
}

// inferStrategy is the universal fallback. It declines integer types that
// do not implement fmt.Stringer, since there is nothing to name their values.
type inferStrategy struct{}

// Ensure inferStrategy implements apis.Strategy.
var _ apis.Strategy = (*inferStrategy)(nil)

var stringerType = reflect.TypeFor[fmt.Stringer]()

// TryReflect infers the reflection of the mirror's type.
func (inferStrategy) TryReflect(m *mirror.Mirror, _ apis.Config) (*mirror.Info, bool) {
	if m == nil {
		return nil, false
	}
	t := m.GoType()
	switch {
	case t.Kind() == reflect.Struct:
		return m.Infer(), true
	case uref.IsEnumKind(t.Kind()) && t.Implements(stringerType):
		return m.Infer(), true
	default:
		return nil, false
	}
}
