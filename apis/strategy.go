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
	"dirpx.dev/refl/mirror"
)

// Strategy is a pluggable reflection step. A Resolver can chain multiple
// strategies in order (e.g., Reflector -> Registry -> Infer).
type Strategy interface {
	// TryReflect attempts to describe the mirror's type.
	// It returns (info, true) if handled; otherwise (nil, false) to fall through.
	// Errors are carried by the returned *mirror.Info.
	TryReflect(m *mirror.Mirror, cfg Config) (info *mirror.Info, handled bool)
}
