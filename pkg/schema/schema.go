// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema builds bargs commands from field tables stored in TOML or
// YAML files.
//
//	name = "memdump"
//	about = "A simple memory dump program"
//
//	[[field]]
//	name = "group"
//	short = "g"
//	long = "group"
//	type = "?u8"
//	help = "How many bytes to show at once"
//
//	[[field]]
//	name = "start"
//	type = "usize"
//
// A field with a short or long flag is a flag when its type is bool or
// empty, and an option otherwise. Fields without flags are positional.
// Types are the integer names i8 through i64, u8 through u64, int, uint and
// usize, plus string, path, f32, f64, duration and url. A "?" prefix makes
// a field optional and a "[]" prefix makes it a list: "?[]string".
package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yeetrun/bargs/pkg/bargs"
)

// Formats accepted by Decode.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Schema is a command described by data.
type Schema struct {
	Name    string  `toml:"name" yaml:"name"`
	Version string  `toml:"version,omitempty" yaml:"version,omitempty"`
	About   string  `toml:"about,omitempty" yaml:"about,omitempty"`
	Fields  []Field `toml:"field" yaml:"field"`
}

// Field is one entry of a Schema.
type Field struct {
	Name string `toml:"name" yaml:"name"`
	// Kind is flag, option or positional. It is inferred when empty.
	Kind  string `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Short string `toml:"short,omitempty" yaml:"short,omitempty"`
	Long  string `toml:"long,omitempty" yaml:"long,omitempty"`
	Type  string `toml:"type,omitempty" yaml:"type,omitempty"`
	Help  string `toml:"help,omitempty" yaml:"help,omitempty"`
	Value string `toml:"value,omitempty" yaml:"value,omitempty"`
}

// Load reads a schema, choosing the format from the file extension.
func Load(path string) (*Schema, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = FormatTOML
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return nil, fmt.Errorf("unknown schema format for %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// Decode parses a schema in the given format.
func Decode(data []byte, format string) (*Schema, error) {
	var s Schema
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, err
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, fmt.Errorf("unknown key %q", keys[0].String())
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown schema format %q", format)
	}
	if s.Name == "" {
		return nil, errors.New("schema has no name")
	}
	return &s, nil
}

// Value is the result for one field.
type Value struct {
	Name string
	// Value is the bound Go value: a number, string, time.Duration,
	// *url.URL, a pointer for optional types and a slice for lists.
	Value any
	// Set reports whether the value came from the arguments.
	Set bool
}

// Values are the results of a parse, in field order.
type Values []Value

// Get returns the value named name.
func (vs Values) Get(name string) (Value, bool) {
	for _, v := range vs {
		if v.Name == name {
			return v, true
		}
	}
	return Value{}, false
}

// Map returns the values keyed by field name.
func (vs Values) Map() map[string]any {
	m := make(map[string]any, len(vs))
	for _, v := range vs {
		m[v.Name] = v.Value
	}
	return m
}

// Command returns a command binding the schema's fields.
func (s *Schema) Command() (cmd *bargs.Command[Values], err error) {
	regs := make([]func(*bargs.Table) func() Value, 0, len(s.Fields))
	for _, f := range s.Fields {
		r, err := f.registrar()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		regs = append(regs, r)
	}

	cmd = bargs.Define(s.Name, func(t *bargs.Table) func() Values {
		get := make([]func() Value, len(regs))
		for i, r := range regs {
			get[i] = r(t)
		}
		return func() Values {
			out := make(Values, len(get))
			for i, g := range get {
				out[i] = g()
			}
			return out
		}
	}, bargs.Version(s.Version), bargs.About(s.About))

	// Duplicate flags and misplaced collections panic at registration.
	defer func() {
		if r := recover(); r != nil {
			cmd, err = nil, fmt.Errorf("invalid schema: %v", r)
		}
	}()
	cmd.Describe()
	return cmd, nil
}

func (f Field) kind() (bargs.Kind, error) {
	hasFlag := f.Short != "" || f.Long != ""
	switch f.Kind {
	case "":
		switch {
		case !hasFlag:
			return bargs.KindPositional, nil
		case f.Type == "" || f.Type == "bool":
			return bargs.KindFlag, nil
		}
		return bargs.KindOption, nil
	case "flag":
		return bargs.KindFlag, nil
	case "option":
		return bargs.KindOption, nil
	case "positional":
		return bargs.KindPositional, nil
	}
	return 0, fmt.Errorf("unknown kind %q", f.Kind)
}

func (f Field) options() ([]bargs.FieldOption, error) {
	var opts []bargs.FieldOption
	if f.Short != "" {
		if utf8.RuneCountInString(f.Short) != 1 {
			return nil, fmt.Errorf("short flag %q must be a single character", f.Short)
		}
		r, _ := utf8.DecodeRuneInString(f.Short)
		opts = append(opts, bargs.Short(r))
	}
	if f.Long != "" {
		opts = append(opts, bargs.Long(strings.TrimPrefix(f.Long, "--")))
	}
	if f.Help != "" {
		opts = append(opts, bargs.Help(f.Help))
	}
	if f.Value != "" {
		opts = append(opts, bargs.ValueName(f.Value))
	}
	return opts, nil
}

func (f Field) registrar() (func(*bargs.Table) func() Value, error) {
	if f.Name == "" {
		return nil, errors.New("missing name")
	}
	kind, err := f.kind()
	if err != nil {
		return nil, err
	}
	opts, err := f.options()
	if err != nil {
		return nil, err
	}
	if kind == bargs.KindFlag {
		if f.Type != "" && f.Type != "bool" {
			return nil, fmt.Errorf("flag cannot have type %q", f.Type)
		}
		return func(t *bargs.Table) func() Value {
			s := bargs.Flag(t, f.Name, opts...)
			return func() Value { return Value{Name: f.Name, Value: s.Get(), Set: s.IsSet()} }
		}, nil
	}
	b, err := resolve(f.Type)
	if err != nil {
		return nil, err
	}
	return func(t *bargs.Table) func() Value {
		return b(t, f.Name, kind, opts)
	}, nil
}
