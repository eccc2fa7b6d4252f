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

import "errors"

var (
	// ErrNilInfo is returned by Build when given a nil *Info or one that
	// no Mirror produced.
	ErrNilInfo = errors.New("refl(mirror): nil info")
	// ErrNotReflectable indicates that a type kind has no reflection form:
	// inference only understands structs and integer enums.
	ErrNotReflectable = errors.New("refl(mirror): type cannot be reflected")
	// ErrUnknownField indicates that a pointer passed as a field identity
	// does not point at a field of the mirror's prototype.
	ErrUnknownField = errors.New("refl(mirror): pointer does not address a field of the prototype")
	// ErrNotEnum indicates that an enumerator was supplied for a type that is
	// not an integer type, or that cannot hold the value.
	ErrNotEnum = errors.New("refl(mirror): value is not an enumerator of the reflected type")
	// ErrNoName indicates that a member name was omitted and could not be
	// recovered.
	ErrNoName = errors.New("refl(mirror): member name cannot be recovered")
	// ErrMixedMembers indicates that fields and enumerators were passed to
	// the same Reflect call.
	ErrMixedMembers = errors.New("refl(mirror): fields and values cannot be mixed")
	// ErrForeignMember indicates that a member was built by another Mirror.
	ErrForeignMember = errors.New("refl(mirror): member belongs to a different mirror")
	// ErrDuplicateName indicates that two members share a name.
	ErrDuplicateName = errors.New("refl(mirror): duplicate member name")
	// ErrDuplicateMember indicates that the same field or enumerator was
	// listed twice.
	ErrDuplicateMember = errors.New("refl(mirror): member listed more than once")
	// ErrUnknownMember indicates that With was keyed by a member the
	// reflection does not contain.
	ErrUnknownMember = errors.New("refl(mirror): no such member")
	// ErrBadScanRange indicates an enum scan range with hi < lo.
	ErrBadScanRange = errors.New("refl(mirror): invalid enum scan range")
	// ErrNotStruct is returned by struct-only queries on enum reflections.
	ErrNotStruct = errors.New("refl(mirror): reflected type is not a struct")
	// ErrTypeMismatch indicates that an instance passed to a query is not of
	// the reflected type.
	ErrTypeMismatch = errors.New("refl(mirror): instance has the wrong type")
)
