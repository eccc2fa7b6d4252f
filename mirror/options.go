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

package mirror

import "dirpx.dev/refl/names"

const (
	// DefaultTagKey is the struct tag key consulted by inference.
	DefaultTagKey = "refl"
	// DefaultNaming is the style applied to inferred field names.
	DefaultNaming = names.Snake
	// DefaultEnumScanMin is the first value probed by enum inference.
	DefaultEnumScanMin = 0
	// DefaultEnumScanMax is the last value probed by enum inference.
	DefaultEnumScanMax = 255
)

// Options controls how a Mirror infers members.
type Options struct {
	// Naming respells inferred field names. Explicit names and struct tag
	// names are used verbatim.
	Naming names.Style
	// TagKey is the struct tag key used for renaming (`refl:"name"`) and
	// skipping (`refl:"-"`) fields during inference.
	TagKey string
	// EnumScanMin and EnumScanMax bound the values probed by Infer for
	// integer enums. InferEnum takes an explicit range instead.
	EnumScanMin int64
	EnumScanMax int64
}

// DefaultOptions returns the options used when none are provided.
func DefaultOptions() Options {
	return Options{
		Naming:      DefaultNaming,
		TagKey:      DefaultTagKey,
		EnumScanMin: DefaultEnumScanMin,
		EnumScanMax: DefaultEnumScanMax,
	}
}
