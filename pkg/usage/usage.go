// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package usage renders usage lines and help text for bargs parsers.
package usage

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/yeetrun/bargs/pkg/bargs"
)

const (
	lead = "    "
	gap  = 2
)

// Placeholder returns the name shown for f's value.
func Placeholder(f bargs.FieldInfo) string {
	if f.ValueName != "" {
		return f.ValueName
	}
	return strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
}

// Line returns the one-line usage of d, such as
// "memdump [OPTIONS] START LEN [FILE]".
func Line(d bargs.Description) string {
	parts := []string{d.Name}
	if hasOptions(d) {
		parts = append(parts, "[OPTIONS]")
	}
	for _, f := range d.Fields {
		if f.Kind != bargs.KindPositional {
			continue
		}
		p := Placeholder(f)
		if f.Collection {
			p += "..."
		}
		if f.Optional {
			p = "[" + p + "]"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

func hasOptions(d bargs.Description) bool {
	if len(d.Metas) > 0 {
		return true
	}
	for _, f := range d.Fields {
		if f.Kind != bargs.KindPositional {
			return true
		}
	}
	return false
}

type row struct {
	left, help string
}

func flagColumn(short rune, long string) string {
	switch {
	case short != 0 && long != "":
		return fmt.Sprintf("-%c, --%s", short, long)
	case short != 0:
		return fmt.Sprintf("-%c", short)
	}
	return "    --" + long
}

func rows(d bargs.Description) (args, opts []row) {
	for _, f := range d.Fields {
		switch f.Kind {
		case bargs.KindPositional:
			args = append(args, row{left: Placeholder(f), help: f.Help})
		case bargs.KindFlag:
			opts = append(opts, row{left: flagColumn(f.Short, f.Long), help: f.Help})
		case bargs.KindOption:
			opts = append(opts, row{left: flagColumn(f.Short, f.Long) + " <" + Placeholder(f) + ">", help: f.Help})
		}
	}
	// Metas follow the fields, innermost first.
	for _, m := range d.Metas {
		opts = append(opts, row{left: flagColumn(m.Short, m.Long), help: m.Description})
	}
	return args, opts
}

// Help returns the help text for d. Descriptions start at column indent,
// which is at least minIndent and wide enough for every flag column. The
// indent used is returned so related output can line up with it.
func Help(d bargs.Description, minIndent int) (string, int) {
	args, opts := rows(d)
	indent := minIndent
	for _, r := range slices.Concat(args, opts) {
		indent = max(indent, len(lead)+len(r.left)+gap)
	}

	var b strings.Builder
	b.WriteString(d.Name)
	if d.About != "" {
		b.WriteString(" - ")
		b.WriteString(d.About)
	}
	b.WriteString("\n\n")

	b.WriteString("USAGE:\n")
	b.WriteString(lead + Line(d) + "\n")

	section := func(title string, rs []row) {
		if len(rs) == 0 {
			return
		}
		b.WriteString("\n" + title + ":\n")
		for _, r := range rs {
			if r.help == "" {
				b.WriteString(lead + r.left + "\n")
				continue
			}
			fmt.Fprintf(&b, "%-*s%s\n", indent, lead+r.left, r.help)
		}
	}
	section("ARGUMENTS", args)
	section("OPTIONS", opts)
	return b.String(), indent
}

// WriteHelp writes Help(d, minIndent) to w and returns the indent used.
func WriteHelp(w io.Writer, d bargs.Description, minIndent int) (int, error) {
	text, indent := Help(d, minIndent)
	_, err := io.WriteString(w, text)
	return indent, err
}
