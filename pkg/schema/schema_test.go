// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/bargs/pkg/bargs"
	"github.com/yeetrun/bargs/pkg/token"
)

func parse(t *testing.T, s *Schema, line string) (Values, error) {
	t.Helper()
	cmd, err := s.Command()
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	return cmd.Parse(token.FromSlice(strings.Fields(line)))
}

func TestLoadTOML(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "memdump.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "memdump" || s.Version != "0.1.0" || len(s.Fields) != 5 {
		t.Fatalf("Load = %+v", s)
	}

	got, err := parse(t, s, "-cg 0x10 --tags a,b --tags c 0x1000 64")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	group := uint8(16)
	want := Values{
		{Name: "color", Value: true, Set: true},
		{Name: "group", Value: &group, Set: true},
		{Name: "tags", Value: []string{"a", "b", "c"}, Set: true},
		{Name: "start", Value: uint(0x1000), Set: true},
		{Name: "len", Value: uint(64), Set: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}

	// tags has no absent default.
	_, err = parse(t, s, "1 2")
	var e *bargs.Error
	if !errors.As(err, &e) || e.Kind != bargs.ExpectedValue || e.Field != "tags" {
		t.Fatalf("Parse without tags = %v, want ExpectedValue(tags)", err)
	}
}

func TestLoadYAML(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "pupkick.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := parse(t, s, "3 -e 1 --timeout 2s 4")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := got.Map()
	if m["eat"] != true {
		t.Fatalf("eat = %v, want true", m["eat"])
	}
	if d, ok := m["timeout"].(*time.Duration); !ok || d == nil || *d != 2*time.Second {
		t.Fatalf("timeout = %#v, want 2s", m["timeout"])
	}
	nums, ok := m["numbers"].(*[]int32)
	if !ok || nums == nil {
		t.Fatalf("numbers = %#v", m["numbers"])
	}
	if diff := cmp.Diff([]int32{3, 1, 4}, *nums); diff != "" {
		t.Fatalf("numbers mismatch (-want +got):\n%s", diff)
	}

	got, err = parse(t, s, "")
	if err != nil {
		t.Fatalf("Parse(): %v", err)
	}
	if v, _ := got.Get("numbers"); v.Set || v.Value.(*[]int32) != nil {
		t.Fatalf("numbers without arguments = %+v", v)
	}
}

func TestDescribe(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "memdump.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cmd, err := s.Command()
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	d := cmd.Describe()
	if d.About != "A simple memory dump program" || d.Version != "0.1.0" {
		t.Fatalf("Describe() = %+v", d)
	}
	if f := d.Fields[1]; f.Kind != bargs.KindOption || f.ValueName != "N" || f.Type != "?uint8" {
		t.Fatalf("group field = %+v", f)
	}
	if f := d.Fields[0]; f.Kind != bargs.KindFlag {
		t.Fatalf("color field = %+v", f)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{name: "no name", data: `about = "x"`, format: FormatTOML},
		{name: "unknown key", data: "name = \"x\"\ncolour = true", format: FormatTOML},
		{name: "bad toml", data: "name = ", format: FormatTOML},
		{name: "bad yaml", data: "name: [", format: FormatYAML},
		{name: "bad format", data: `name = "x"`, format: "json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data), tt.format); err == nil {
				t.Fatalf("Decode succeeded")
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		field []Field
	}{
		{name: "unknown type", field: []Field{{Name: "x", Type: "u128"}}},
		{name: "unknown kind", field: []Field{{Name: "x", Kind: "switch"}}},
		{name: "typed flag", field: []Field{{Name: "x", Kind: "flag", Short: "x", Type: "u8"}}},
		{name: "long short", field: []Field{{Name: "x", Short: "xy"}}},
		{name: "no name", field: []Field{{Type: "u8"}}},
		{name: "duplicate", field: []Field{{Name: "a", Short: "a"}, {Name: "b", Short: "a"}}},
		{name: "positional flag", field: []Field{{Name: "a", Kind: "positional", Short: "a"}}},
		{name: "after collection", field: []Field{{Name: "a", Type: "[]u8"}, {Name: "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Schema{Name: "x", Fields: tt.field}
			if _, err := s.Command(); err == nil {
				t.Fatalf("Command succeeded")
			}
		})
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load(.json) succeeded")
	}
}
