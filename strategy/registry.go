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

// NewRegistryStrategy creates an apis.Strategy that uses an apis.Registry.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults a provided apis.Registry for a callback
// registered on behalf of a type the caller does not own.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryReflect looks up the mirror's type in the registry and runs the
// registered callback.
func (s *registryStrategy) TryReflect(m *mirror.Mirror, _ apis.Config) (*mirror.Info, bool) {
	if m == nil || s.reg == nil {
		return nil, false
	}
	fn, ok := s.reg.Lookup(m.GoType())
	if !ok {
		return nil, false
	}
	return fn(m), true
}
