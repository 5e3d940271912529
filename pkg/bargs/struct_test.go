// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bargs

import (
	"errors"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/bargs/pkg/token"
)

type structDump struct {
	Color bool   `arg:"short,long" help:"Show color"`
	Force bool   `arg:"short=f,long=no-null-check" help:"Disable sanity checks"`
	Group *uint8 `arg:"short,long" help:"How many bytes to show at once" value:"N"`
	Start uint   `help:"Start address"`
	Len   uint   `help:"Number of bytes to show"`

	internal int
}

func TestStructParse(t *testing.T) {
	cmd := Struct[structDump]("memdump")
	tests := []struct {
		line string
		want structDump
	}{
		{line: "1 2", want: structDump{Start: 1, Len: 2}},
		{line: "-cg 0x10 1 2", want: structDump{Color: true, Group: u8(16), Start: 1, Len: 2}},
		{line: "--no-null-check --group 4 1 2", want: structDump{Force: true, Group: u8(4), Start: 1, Len: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parse(t, cmd, tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.line, err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(structDump{})); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestStructErrors(t *testing.T) {
	cmd := Struct[structDump]("memdump")

	_, err := parse(t, cmd, "--force 1 2")
	var e *Error
	if !errors.As(err, &e) || e.Kind != NoSuchLongFlag {
		t.Fatalf("Parse(--force) = %v, want NoSuchLongFlag", err)
	}

	_, err = parse(t, cmd, "-g 256 1 2")
	var ne *strconv.NumError
	if !errors.As(err, &e) || e.Kind != ParseValue || e.Field != "group" || !errors.As(err, &ne) || ne.Err != strconv.ErrRange {
		t.Fatalf("Parse(-g 256) = %v, want ParseValue(group) wrapping ErrRange", err)
	}

	_, err = parse(t, cmd, "1")
	if !errors.As(err, &e) || e.Kind != ExpectedValue || e.Field != "len" {
		t.Fatalf("Parse(1) = %v, want ExpectedValue(len)", err)
	}
}

type structKick struct {
	Puppies     []string `arg:"short,long"`
	PuppyToKick *string  `arg:"long"`
	Numbers     []int
}

func TestStructLists(t *testing.T) {
	cmd := Struct[structKick]("pupkick")
	got, err := parse(t, cmd, "--puppies Billy,Samantha -p Muffin --puppy-to-kick joe 3 -1 4")
	if err == nil {
		t.Fatalf("Parse with -1 succeeded, want NoSuchShortFlag")
	}

	got, err = parse(t, cmd, "--puppies Billy,Samantha -p Muffin --puppy-to-kick joe 3 -- -1 4")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	joe := "joe"
	want := structKick{
		Puppies:     []string{"Billy", "Samantha", "Muffin"},
		PuppyToKick: &joe,
		Numbers:     []int{3, -1, 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}
}

type structTypes struct {
	Timeout time.Duration `arg:"long"`
	Server  *url.URL      `arg:"long"`
	Addr    netip.Addr    `arg:"long"`
	Ratio   float32       `arg:"long"`
	Name    string
	Extra   *[]uint16
}

func TestStructTypes(t *testing.T) {
	cmd := Struct[structTypes]("types")
	line := "--timeout 1m --server https://example.com --addr 10.1.2.3 --ratio 0.5 box 0x10 2"
	got, err := cmd.Parse(token.FromSlice(strings.Fields(line)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Timeout != time.Minute {
		t.Fatalf("Timeout = %v, want 1m", got.Timeout)
	}
	if got.Server == nil || got.Server.Host != "example.com" {
		t.Fatalf("Server = %v", got.Server)
	}
	if got.Addr != netip.MustParseAddr("10.1.2.3") {
		t.Fatalf("Addr = %v", got.Addr)
	}
	if got.Ratio != 0.5 || got.Name != "box" {
		t.Fatalf("Ratio, Name = %v, %q", got.Ratio, got.Name)
	}
	if got.Extra == nil {
		t.Fatalf("Extra = nil, want [16 2]")
	}
	if diff := cmp.Diff([]uint16{16, 2}, *got.Extra); diff != "" {
		t.Fatalf("Extra mismatch (-want +got):\n%s", diff)
	}

	got, err = parse(t, cmd, "--timeout 1s --addr ::1 --ratio 1 box")
	if err != nil {
		t.Fatalf("Parse without optionals: %v", err)
	}
	if got.Server != nil || got.Extra != nil {
		t.Fatalf("optional fields bound without values: %+v", got)
	}
}

func TestStructDescribe(t *testing.T) {
	d := Struct[structDump]("memdump", About("A simple memory dump program")).Describe()
	want := []FieldInfo{
		{Name: "color", Kind: KindFlag, Short: 'c', Long: "color", Help: "Show color", Type: "bool", Optional: true},
		{Name: "force", Kind: KindFlag, Short: 'f', Long: "no-null-check", Help: "Disable sanity checks", Type: "bool", Optional: true},
		{Name: "group", Kind: KindOption, Short: 'g', Long: "group", Help: "How many bytes to show at once", ValueName: "N", Type: "?uint8", Optional: true},
		{Name: "start", Kind: KindPositional, Help: "Start address", Type: "uint"},
		{Name: "len", Kind: KindPositional, Help: "Number of bytes to show", Type: "uint"},
	}
	if diff := cmp.Diff(want, d.Fields); diff != "" {
		t.Fatalf("Describe().Fields mismatch (-want +got):\n%s", diff)
	}
	if d.About != "A simple memory dump program" {
		t.Fatalf("About = %q", d.About)
	}
}

func TestStructPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{name: "not a struct", fn: func() { Struct[int]("x") }},
		{name: "untagged bool", fn: func() {
			Struct[struct{ Verbose bool }]("x")
		}},
		{name: "bad tag key", fn: func() {
			Struct[struct {
				N int `arg:"shrt"`
			}]("x")
		}},
		{name: "long short", fn: func() {
			Struct[struct {
				N int `arg:"short=nn"`
			}]("x")
		}},
		{name: "unsupported type", fn: func() {
			Struct[struct{ M map[string]string }]("x")
		}},
		{name: "duplicate short", fn: func() {
			Struct[struct {
				Name  string `arg:"short"`
				Nodes string `arg:"short"`
			}]("x")
		}},
		{name: "positional after list", fn: func() {
			Struct[struct {
				All  []string
				Last string
			}]("x")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("Struct did not panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"Color":       "color",
		"NoNullCheck": "no-null-check",
		"HTTPPort":    "http-port",
		"URL":         "url",
		"Puppy_to":    "puppy-to",
		"Level2Cache": "level2-cache",
	}
	for in, want := range tests {
		if got := kebab(in); got != want {
			t.Fatalf("kebab(%q) = %q, want %q", in, got, want)
		}
	}
}
