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

package names

import (
	"fmt"
	"strings"
	"unicode"

	uref "dirpx.dev/refl/utils/reflect"
)

// Field returns the name of the field of the struct pointed to by base that
// ptr points at. Fields of nested structs resolve to their own name.
func Field(base, ptr any) (string, bool) {
	ref, ok := uref.FieldByPointer(base, ptr)
	if !ok {
		return "", false
	}
	return ref.Field.Name, true
}

// Value returns the name of the enumerator v, as reported by its String
// method. Values without a String method, and values whose String method
// falls back to a numeric rendering such as "Color(7)" or "7", have no
// recoverable name.
func Value(v any) (string, bool) {
	s, ok := v.(fmt.Stringer)
	if !ok {
		return "", false
	}
	name := s.String()
	if !IsValueName(name) {
		return "", false
	}
	return name, true
}

// IsValueName reports whether s looks like a real enumerator name rather
// than a stringer fallback: it starts with a letter or underscore and
// continues with letters, digits, '_' or '-'. This rejects "7", "Color(7)",
// "%!Color(7)" and numeric renderings such as "1ns".
func IsValueName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return !strings.HasSuffix(s, "-")
}
