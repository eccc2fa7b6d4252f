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

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style selects how inferred member names are spelled.
//
// # Values
//
//   - AsIs: the Go identifier unchanged ("HTTPServer").
//   - Snake: lower snake case ("http_server").
//   - Kebab: lower kebab case ("http-server").
//   - Camel: lower camel case ("httpServer").
//
// Style is a plain integer and is safe to share between goroutines. Names
// given explicitly during registration, or through a struct tag, are never
// restyled.
type Style int

const (
	// AsIs keeps the Go identifier.
	AsIs Style = iota
	// Snake joins lower-cased words with underscores.
	Snake
	// Kebab joins lower-cased words with dashes.
	Kebab
	// Camel lower-cases the first word and title-cases the rest.
	Camel
)

// String returns the canonical token for s, or "Unknown(<n>)" for values
// outside the defined set. It never panics.
func (s Style) String() string {
	switch s {
	case AsIs:
		return "AsIs"
	case Snake:
		return "Snake"
	case Kebab:
		return "Kebab"
	case Camel:
		return "Camel"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ParseStyle parses the token produced by Style.String, case-insensitively
// and ignoring surrounding whitespace. On failure it returns AsIs and a
// non-nil error.
func ParseStyle(s string) (Style, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return AsIs, fmt.Errorf("names: empty style")
	}

	switch strings.ToUpper(trimmed) {
	case "ASIS":
		return AsIs, nil
	case "SNAKE":
		return Snake, nil
	case "KEBAB":
		return Kebab, nil
	case "CAMEL":
		return Camel, nil
	default:
		return AsIs, fmt.Errorf("names: unknown style %q", s)
	}
}

// MustParseStyle is like ParseStyle but panics on invalid input.
func MustParseStyle(s string) Style {
	style, err := ParseStyle(s)
	if err != nil {
		panic(err)
	}
	return style
}

// MarshalText implements encoding.TextMarshaler. Unknown values are an
// error rather than being serialized as "Unknown(n)".
func (s Style) MarshalText() ([]byte, error) {
	switch s {
	case AsIs, Snake, Kebab, Camel:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("names: cannot marshal unknown style %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure *s is left
// unchanged.
func (s *Style) UnmarshalText(text []byte) error {
	value, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = value
	return nil
}

// Convert respells the identifier ident in the given style.
func Convert(ident string, style Style) string {
	if style == AsIs || ident == "" {
		return ident
	}

	// Casers are stateful and must not be shared between goroutines.
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	words := Words(ident)
	for i, w := range words {
		w = lower.String(w)
		if style == Camel && i > 0 {
			w = title.String(w)
		}
		words[i] = w
	}

	switch style {
	case Snake:
		return strings.Join(words, "_")
	case Kebab:
		return strings.Join(words, "-")
	case Camel:
		return strings.Join(words, "")
	default:
		return ident
	}
}

// Words splits an identifier into words at case changes and at '_', '-'
// and space separators. Runs of capitals are kept together as an acronym:
// "HTTPServerID" splits into "HTTP", "Server", "ID".
func Words(ident string) []string {
	rs := []rune(ident)
	var words []string
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(rs[start:end]))
		}
		start = -1
	}

	for i, r := range rs {
		if r == '_' || r == '-' || r == ' ' {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if unicode.IsUpper(r) {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush(i)
				start = i
			}
		}
	}
	flush(len(rs))
	return words
}
