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
	"fmt"
	"reflect"
	"strings"
	"text/tabwriter"
)

// Usage renders the help text of the flags struct dst, as --help would.
func Usage(dst any) (string, error) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return "", fmt.Errorf("%w: got %T", ErrNotStruct, dst)
	}
	// Compile against a scratch copy so that allocating nil groups does
	// not touch dst.
	scratch := reflect.New(v.Elem().Type())
	scratch.Elem().Set(v.Elem())
	c, err := compile("", scratch.Elem())
	if err != nil {
		return "", err
	}
	return c.usage(false), nil
}

func (c *command) usage(hidden bool) string {
	var b strings.Builder

	if c.app.Name != "" && c.app.Version != "" && !strings.Contains(c.path, " ") {
		fmt.Fprintf(&b, "%s %s\n", c.app.Name, c.app.Version)
	}
	if c.about != "" {
		b.WriteString(c.about)
		b.WriteString("\n\n")
	}

	b.WriteString("Usage: ")
	b.WriteString(c.path)
	b.WriteString(" [OPTIONS]")
	for _, p := range c.pos {
		b.WriteByte(' ')
		b.WriteString(p.synopsis())
	}
	if c.visibleSubs(hidden) > 0 {
		b.WriteString(" [COMMAND]")
	}
	b.WriteString("\n")

	if c.visibleSubs(hidden) > 0 {
		b.WriteString("\nCommands:\n")
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, s := range c.subs {
			if !shown(s.vis, hidden) {
				continue
			}
			row(tw, "  "+strings.Join(s.names, ", "), s.tag.Help)
		}
		tw.Flush()
	}

	if len(c.pos) > 0 {
		b.WriteString("\nArguments:\n")
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, p := range c.pos {
			row(tw, "  "+p.synopsis(), p.tag.Help)
		}
		tw.Flush()
	}

	b.WriteString("\nOptions:\n")
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, fl := range c.flags {
		if !shown(fl.vis, hidden) {
			continue
		}
		row(tw, "  "+fl.synopsis(hidden), fl.tag.Help)
	}
	row(tw, "  -h, --help", "print help")
	if hidden {
		row(tw, "      --help-hidden", "print help, including hidden options")
	}
	row(tw, "  -V, --version", "print version")
	tw.Flush()

	for _, g := range c.groups {
		if g.tag.Help == "" || !shown(g.vis, hidden) {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n  %s\n", g.heading(), strings.ReplaceAll(g.tag.Help, "\n", "\n  "))
	}

	if c.app.Authors != "" {
		b.WriteString("\n")
		if c.app.CopyrightYear != 0 {
			fmt.Fprintf(&b, "Copyright %d %s", c.app.CopyrightYear, c.app.Authors)
		} else {
			fmt.Fprintf(&b, "Authors: %s", c.app.Authors)
		}
		if c.app.License != "" {
			fmt.Fprintf(&b, " (%s)", c.app.License)
		}
		b.WriteString("\n")
	}
	if c.app.URL != "" {
		fmt.Fprintf(&b, "%s\n", c.app.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}

// row writes one two-column line; continuation lines of help are
// aligned under the first.
func row(tw *tabwriter.Writer, left, help string) {
	lines := strings.Split(help, "\n")
	fmt.Fprintf(tw, "%s\t%s\n", left, lines[0])
	for _, l := range lines[1:] {
		fmt.Fprintf(tw, "\t%s\n", l)
	}
}

func shown(vis Visibility, hidden bool) bool {
	return vis == Public || (hidden && vis == Hidden)
}

func (c *command) visibleSubs(hidden bool) int {
	n := 0
	for _, s := range c.subs {
		if shown(s.vis, hidden) {
			n++
		}
	}
	return n
}

func (fl *flag) synopsis(hidden bool) string {
	var b strings.Builder
	if fl.letter != 0 {
		fmt.Fprintf(&b, "-%c, ", fl.letter)
	} else {
		b.WriteString("    ")
	}
	first := true
	for i, n := range fl.names {
		if fl.hidden[i] && !hidden && i > 0 {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString("--")
		b.WriteString(n)
	}
	if !isBool(fl.target.Type()) {
		b.WriteString(" <")
		b.WriteString(argName(fl))
		b.WriteString(">")
	}
	if fl.tag.Count == Required {
		b.WriteString(" (required)")
	}
	return b.String()
}

func argName(fl *flag) string {
	if fl.tag.Arg != "" {
		return fl.tag.Arg
	}
	t := fl.target.Type()
	for t.Kind() == reflect.Pointer || (t.Kind() == reflect.Slice && !isText(t)) {
		t = t.Elem()
	}
	if e, ok := enumOf(t); ok {
		return strings.Join(choices(e), "|")
	}
	return "VALUE"
}

func isText(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(textUnmarshalerType)
}

func (p *positional) synopsis() string {
	name := p.name
	if p.tag.Count == Repeated || p.target.Kind() == reflect.Slice {
		name += "..."
	}
	if p.tag.Count == Required {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}

func (g *group) heading() string {
	switch {
	case g.name != "" && g.letter != 0:
		return fmt.Sprintf("--%s.*, -%c", g.name, g.letter)
	case g.name != "":
		return "--" + g.name + ".*"
	case g.letter != 0:
		return fmt.Sprintf("-%c", g.letter)
	default:
		return "Group"
	}
}
