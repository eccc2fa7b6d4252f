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

// Package tags implements the attribute lists attached to reflected types,
// fields and enumerators.
//
// A tag is any Go value. Consumers choose their own tag types (for example
// cli.Flag or table.Column) and retrieve them later by type:
//
//	flags := tags.Select[cli.Flag](field.Tags())
//
// Lookups never fail: asking for a tag type that is not present yields an
// empty result.
package tags

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrDuplicateExclusive is returned by Validate when an Exclusive tag type
// appears more than once in the same list.
var ErrDuplicateExclusive = errors.New("refl(tags): exclusive tag attached more than once")

// Exclusive is implemented by tag types that may be attached at most once
// to a single type or member.
type Exclusive interface {
	ExclusiveTag()
}

// List is an ordered list of tags. A List handed out by a reflected
// descriptor is shared and must be treated as read-only.
type List []any

// Of builds a List from tags, dropping nils.
func Of(tags ...any) List {
	if len(tags) == 0 {
		return nil
	}
	out := make(List, 0, len(tags))
	for _, t := range tags {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of tags in l.
func (l List) Len() int { return len(l) }

// Append returns a new List holding l followed by more. l is not modified.
func (l List) Append(more ...any) List {
	more = Of(more...)
	if len(more) == 0 {
		return l
	}
	out := make(List, 0, len(l)+len(more))
	out = append(out, l...)
	return append(out, more...)
}

// Validate reports an error if an Exclusive tag type occurs twice in l.
func (l List) Validate() error {
	var seen map[reflect.Type]struct{}
	for _, t := range l {
		if _, ok := t.(Exclusive); !ok {
			continue
		}
		rt := reflect.TypeOf(t)
		if seen == nil {
			seen = make(map[reflect.Type]struct{})
		}
		if _, dup := seen[rt]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateExclusive, rt)
		}
		seen[rt] = struct{}{}
	}
	return nil
}

// Select returns the tags in l that are assignable to K, in attachment
// order. K may be an interface type.
func Select[K any](l List) []K {
	var out []K
	for _, t := range l {
		if k, ok := t.(K); ok {
			out = append(out, k)
		}
	}
	return out
}

// First returns the first tag in l assignable to K.
func First[K any](l List) (K, bool) {
	for _, t := range l {
		if k, ok := t.(K); ok {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// Has reports whether l contains a tag assignable to K.
func Has[K any](l List) bool {
	_, ok := First[K](l)
	return ok
}

// Count returns the number of tags in l assignable to K.
func Count[K any](l List) int {
	n := 0
	for _, t := range l {
		if _, ok := t.(K); ok {
			n++
		}
	}
	return n
}
