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
	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/mirror"
)

// NewReflectorStrategy creates an apis.Strategy that uses mirror.Reflector.
func NewReflectorStrategy() apis.Strategy {
	return &reflectorStrategy{}
}

// reflectorStrategy is the fast path: if *T implements mirror.Reflector,
// call Reflect on the mirror's prototype and stop the chain.
type reflectorStrategy struct{}

// Ensure reflectorStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectorStrategy)(nil)

// TryReflect checks if the prototype implements mirror.Reflector and
// returns its reflection. A value-receiver Reflect is found as well,
// since the prototype is a pointer.
func (*reflectorStrategy) TryReflect(m *mirror.Mirror, _ apis.Config) (*mirror.Info, bool) {
	if m == nil {
		return nil, false
	}
	r, ok := m.Proto().(mirror.Reflector)
	if !ok {
		return nil, false
	}
	return r.Reflect(m), true
}
