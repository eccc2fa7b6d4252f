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

package config

import (
	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/mirror"
	"dirpx.dev/refl/names"
	uref "dirpx.dev/refl/utils/reflect"
)

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// Reflecting ***T is already unusual; 8 leaves plenty of room.
	DefaultMaxUnwrap = uref.DefaultMaxUnwrap
	// DefaultNaming represents the default for Naming: inferred fields are
	// spelled in snake case, which is also what cli flags expect.
	DefaultNaming = mirror.DefaultNaming
	// DefaultTagKey represents the default for TagKey.
	DefaultTagKey = mirror.DefaultTagKey
	// DefaultEnumScanMin represents the default for EnumScanMin.
	DefaultEnumScanMin = mirror.DefaultEnumScanMin
	// DefaultEnumScanMax represents the default for EnumScanMax.
	DefaultEnumScanMax = mirror.DefaultEnumScanMax
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.TagKey == "" {
		cfg.TagKey = DefaultTagKey
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap:   DefaultMaxUnwrap,
		Naming:      DefaultNaming,
		TagKey:      DefaultTagKey,
		EnumScanMin: DefaultEnumScanMin,
		EnumScanMax: DefaultEnumScanMax,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithNaming sets the style used for inferred field names.
func WithNaming(style names.Style) Option {
	return func(c *apis.Config) {
		c.Naming = style
	}
}

// WithTagKey sets the struct tag key consulted by inference.
// An empty key resets to the default.
func WithTagKey(key string) Option {
	return func(c *apis.Config) {
		if key == "" {
			key = DefaultTagKey
		}
		c.TagKey = key
	}
}

// WithEnumScan sets the value range probed by enum inference.
// The bounds are swapped if given in the wrong order.
func WithEnumScan(lo, hi int64) Option {
	return func(c *apis.Config) {
		if hi < lo {
			lo, hi = hi, lo
		}
		c.EnumScanMin, c.EnumScanMax = lo, hi
	}
}
