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

import (
	"fmt"
	"strings"

	"dirpx.dev/refl/names"
)

// Build validates info and freezes it into an immutable *Type.
//
// Build fails if info carries an error, if two members share a name or an
// identity, or if an exclusive tag appears twice on the type or on one
// member. There is no partial result.
func Build(info *Info) (*Type, error) {
	if info == nil || info.m == nil {
		return nil, ErrNilInfo
	}
	if info.err != nil {
		return nil, info.err
	}
	if err := info.tags.Validate(); err != nil {
		return nil, fmt.Errorf("type %s: %w", info.name, err)
	}

	t := &Type{
		rtype: info.m.typ,
		names: names.Of(info.m.typ),
		name:  info.name,
		kind:  info.kind,
		tags:  info.tags,
	}

	byName := make(map[string]struct{}, len(info.members))
	byID := make(map[string]struct{}, len(info.members))
	t.members = make([]Member, 0, len(info.members))

	for n, mi := range info.members {
		if mi.name == "" {
			return nil, fmt.Errorf("%w: member %d of %s", ErrNoName, n, info.name)
		}
		if _, dup := byName[mi.name]; dup {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateName, mi.name, info.name)
		}
		byName[mi.name] = struct{}{}

		id := identity(mi)
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateMember, mi.name, info.name)
		}
		byID[id] = struct{}{}

		if err := mi.tags.Validate(); err != nil {
			return nil, fmt.Errorf("member %s.%s: %w", info.name, mi.name, err)
		}

		if mi.isField() {
			t.members = append(t.members, &Field{
				owner:  t,
				name:   mi.name,
				index:  n,
				path:   mi.ref.Index,
				offset: mi.ref.Offset,
				sf:     mi.ref.Field,
				tags:   mi.tags,
			})
			continue
		}
		t.members = append(t.members, &Value{
			owner: t,
			name:  mi.name,
			index: n,
			value: mi.value,
			tags:  mi.tags,
		})
	}
	return t, nil
}

func identity(mi *MemberInfo) string {
	if mi.isField() {
		var b strings.Builder
		for _, i := range mi.ref.Index {
			fmt.Fprintf(&b, "%d.", i)
		}
		return b.String()
	}
	return fmt.Sprintf("#%d", bits(mi.value))
}
