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

import "reflect"

// MatchResult is Match with a result: it returns found(member) for the
// member called name, or otherwise() when there is none.
func MatchResult[R any](t *Type, name string, found func(Member) R, otherwise func() R) R {
	if m, ok := t.Lookup(name); ok {
		return found(m)
	}
	return otherwise()
}

// MatchValueResult is MatchValue with a result.
func MatchValueResult[R any](t *Type, v any, found func(*Value) R, otherwise func() R) R {
	if val, ok := t.LookupValue(v); ok {
		return found(val)
	}
	return otherwise()
}

// ZipFields is a typed Zip over pointers to T.
func ZipFields[T any](t *Type, fn func(f *Field, values []reflect.Value), instances ...*T) error {
	args := make([]any, len(instances))
	for i, inst := range instances {
		args[i] = inst
	}
	return t.Zip(fn, args...)
}

// FieldValues returns the values of every field of inst in declaration
// order. Values are settable when inst is a pointer.
func FieldValues(t *Type, inst any) ([]reflect.Value, error) {
	out := make([]reflect.Value, 0, t.Len())
	err := t.Zip(func(_ *Field, vs []reflect.Value) {
		out = append(out, vs[0])
	}, inst)
	if err != nil {
		return nil, err
	}
	return out, nil
}
