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
	"dirpx.dev/refl/names"
)

// Config carries read-only reflection knobs that influence strategies.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits how many pointer levels are stripped before the base
	// type is reflected. Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// Naming respells inferred field names (AsIs, Snake, Kebab, Camel).
	Naming names.Style

	// TagKey is the struct tag key consulted by inference.
	TagKey string

	// EnumScanMin and EnumScanMax bound the values probed when an integer
	// enum is inferred through its String method.
	EnumScanMin int64
	EnumScanMax int64
}

// MirrorOptions projects c onto the options understood by mirror.Mirror.
func (c Config) MirrorOptions() mirror.Options {
	return mirror.Options{
		Naming:      c.Naming,
		TagKey:      c.TagKey,
		EnumScanMin: c.EnumScanMin,
		EnumScanMax: c.EnumScanMax,
	}
}
