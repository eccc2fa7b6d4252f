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

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrHelp is returned when help was requested.
	ErrHelp = errors.New("refl(cli): help requested")
	// ErrVersion is returned when the version was requested.
	ErrVersion = errors.New("refl(cli): version requested")

	// ErrNotStruct indicates that the destination is not a pointer to a
	// reflectable struct.
	ErrNotStruct = errors.New("refl(cli): destination must be a pointer to a struct")
	// ErrConflictingTags indicates a field tagged as more than one of
	// Flag, Positional, Subcommand and Group.
	ErrConflictingTags = errors.New("refl(cli): conflicting cli tags")
	// ErrDuplicateName indicates two items answering to the same name.
	ErrDuplicateName = errors.New("refl(cli): duplicate name")
	// ErrReservedName indicates a use of help, help-hidden, version, -h or -V.
	ErrReservedName = errors.New("refl(cli): reserved name")
	// ErrPositionalInGroup indicates a positional inside a group.
	ErrPositionalInGroup = errors.New("refl(cli): positional inside a group")
	// ErrRecursiveGroup indicates a group whose struct type also encloses
	// it, directly or through other groups.
	ErrRecursiveGroup = errors.New("refl(cli): recursive group")
	// ErrNotSettable indicates a field that cannot be assigned.
	ErrNotSettable = errors.New("refl(cli): field is not settable")

	// ErrUnknownFlag indicates a flag that nothing answers to.
	ErrUnknownFlag = errors.New("refl(cli): unknown flag")
	// ErrMissingValue indicates a flag at the end of the line without its value.
	ErrMissingValue = errors.New("refl(cli): missing flag value")
	// ErrBadValue indicates a value that does not parse as the field type.
	ErrBadValue = errors.New("refl(cli): bad value")
	// ErrUnsupportedType indicates a field type no value can be parsed into.
	ErrUnsupportedType = errors.New("refl(cli): unsupported field type")
	// ErrDuplicateFlag indicates an optional flag given twice.
	ErrDuplicateFlag = errors.New("refl(cli): flag given more than once")
	// ErrMissingFlag indicates a required flag that was not given.
	ErrMissingFlag = errors.New("refl(cli): missing required flag")
	// ErrMissingArgument indicates a required positional that was not given.
	ErrMissingArgument = errors.New("refl(cli): missing required argument")
	// ErrUnexpectedArgument indicates a positional nothing accepts.
	ErrUnexpectedArgument = errors.New("refl(cli): unexpected argument")
)

// Error is returned by Parse. Help and version requests are non-fatal
// errors whose Message is the text to show; everything else is fatal.
type Error struct {
	Message string
	Fatal   bool
	err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.err }

// Exit prints the message and terminates the process: non-fatal
// messages go to stdout with status 0, fatal ones to stderr with status 2.
func (e *Error) Exit() {
	var w io.Writer = os.Stdout
	code := 0
	if e.Fatal {
		w, code = os.Stderr, 2
	}
	fmt.Fprintln(w, e.Message)
	os.Exit(code)
}

func fatal(kind error, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Fatal: true, err: kind}
}

// Exit terminates the process for err as (*Error).Exit does. Errors not
// produced by Parse are treated as fatal.
func Exit(err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Message: err.Error(), Fatal: true, err: err}
	}
	e.Exit()
}
