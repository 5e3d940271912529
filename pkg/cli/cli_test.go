// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/yeetrun/bargs/pkg/bargs"
	"github.com/yeetrun/bargs/pkg/field"
	"github.com/yeetrun/bargs/pkg/tui"
)

type dumpArgs struct {
	Color bool
	Group uint8
	Start uint
	Len   uint
}

func dumpCommand() *bargs.Command[dumpArgs] {
	return bargs.Define("memdump", func(t *bargs.Table) func() dumpArgs {
		color := bargs.Flag(t, "color", bargs.Short('c'), bargs.Long("color"), bargs.Help("Show color"))
		group := bargs.Option(t, "group", field.Uint[uint8](), bargs.Short('g'), bargs.Long("group"))
		start := bargs.Positional(t, "start", field.Uint[uint]())
		n := bargs.Positional(t, "len", field.Uint[uint]())
		return func() dumpArgs {
			return dumpArgs{Color: color.Get(), Group: group.Get(), Start: start.Get(), Len: n.Get()}
		}
	}, bargs.About("A simple memory dump program"))
}

func run(info Info, args ...string) (dumpArgs, string, string, error) {
	var stdout, stderr bytes.Buffer
	v, err := Run(dumpCommand(), info, args, &stdout, &stderr)
	return v, stdout.String(), stderr.String(), err
}

func TestRunSuccess(t *testing.T) {
	got, stdout, stderr, err := run(Info{}, "-c", "-g", "0x4", "1", "2")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stdout != "" || stderr != "" {
		t.Fatalf("Run printed stdout=%q stderr=%q", stdout, stderr)
	}
	want := dumpArgs{Color: true, Group: 4, Start: 1, Len: 2}
	if got != want {
		t.Fatalf("Run = %+v, want %+v", got, want)
	}
}

func TestRunHelp(t *testing.T) {
	_, stdout, _, err := run(Info{Version: "1.0.0"}, "1", "--help")
	if !errors.Is(err, ErrShown) {
		t.Fatalf("Run(--help) error = %v, want ErrShown", err)
	}
	for _, want := range []string{
		"memdump - A simple memory dump program\n",
		"    memdump [OPTIONS] START LEN\n",
		"-v, --version",
		"-h, --help",
		"Show color",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("help output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{version: "v1.2", want: "memdump 1.2.0\n"},
		{version: "1.2.3-rc.1", want: "memdump 1.2.3-rc.1\n"},
		{version: "nightly", want: "memdump nightly\n"},
	}
	for _, tt := range tests {
		_, stdout, _, err := run(Info{Version: tt.version}, "-v")
		if !errors.Is(err, ErrShown) {
			t.Fatalf("Run(-v) error = %v, want ErrShown", err)
		}
		if stdout != tt.want {
			t.Fatalf("Run(-v) printed %q, want %q", stdout, tt.want)
		}
	}
}

func TestRunWithoutVersion(t *testing.T) {
	_, _, stderr, err := run(Info{}, "--version")
	var e *bargs.Error
	if !errors.As(err, &e) || e.Kind != bargs.NoSuchLongFlag {
		t.Fatalf("Run(--version) error = %v, want NoSuchLongFlag", err)
	}
	if !strings.HasPrefix(stderr, "memdump: error: unknown flag --version\n") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunError(t *testing.T) {
	_, stdout, stderr, err := run(Info{Name: "md"}, "--colour", "1", "2")
	if err == nil {
		t.Fatalf("Run(--colour) succeeded")
	}
	if ExitCode(err) != 1 {
		t.Fatalf("ExitCode = %d, want 1", ExitCode(err))
	}
	if stdout != "" {
		t.Fatalf("stdout = %q, want empty", stdout)
	}
	want := "md: error: unknown flag --colour\n" +
		"  did you mean --color?\n" +
		"USAGE: md [OPTIONS] START LEN\n" +
		"Run 'md --help' for more information.\n"
	if stderr != want {
		t.Fatalf("stderr = %q, want %q", stderr, want)
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 || ExitCode(ErrShown) != 0 || ExitCode(errors.New("x")) != 1 {
		t.Fatalf("ExitCode mapping is wrong")
	}
}

func TestSuggest(t *testing.T) {
	d := dumpCommand().Describe()
	d.Metas = []bargs.Meta{bargs.HelpMeta}
	tests := []struct {
		err  error
		want string
	}{
		{err: &bargs.Error{Kind: bargs.NoSuchLongFlag, Token: "col"}, want: "--color"},
		{err: &bargs.Error{Kind: bargs.NoSuchLongFlag, Token: "colour"}, want: "--color"},
		{err: &bargs.Error{Kind: bargs.NoSuchLongFlag, Token: "grp"}, want: "--group"},
		{err: &bargs.Error{Kind: bargs.NoSuchLongFlag, Token: "hlp"}, want: "--help"},
		{err: &bargs.Error{Kind: bargs.NoSuchLongFlag, Token: "zzz"}, want: ""},
		{err: &bargs.Error{Kind: bargs.NoSuchShortFlag, Short: 'x'}, want: ""},
		{err: errors.New("other"), want: ""},
	}
	for _, tt := range tests {
		if got := Suggest(d, tt.err); got != tt.want {
			t.Fatalf("Suggest(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRenderErrorColor(t *testing.T) {
	d := dumpCommand().Describe()
	err := &bargs.Error{Kind: bargs.UnexpectedValue, Token: "3"}
	plain := RenderError(d, err, tui.Colorizer{})
	if plain != "memdump: error: unexpected argument \"3\"\nUSAGE: memdump [OPTIONS] START LEN\n" {
		t.Fatalf("RenderError = %q", plain)
	}
	colored := RenderError(d, err, tui.Colorizer{Enabled: true})
	if colored == plain || !strings.Contains(colored, "\x1b[") {
		t.Fatalf("colored RenderError has no escape sequences: %q", colored)
	}
}
