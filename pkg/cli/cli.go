// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli runs a bargs parser against the process arguments, printing
// help, version and errors the way command line tools expect.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sahilm/fuzzy"
	"github.com/yeetrun/bargs/pkg/bargs"
	"github.com/yeetrun/bargs/pkg/token"
	"github.com/yeetrun/bargs/pkg/tui"
	"github.com/yeetrun/bargs/pkg/usage"
)

// ErrShown is returned by Run when help or the version was printed. Callers
// should exit successfully.
var ErrShown = errors.New("help or version displayed")

// Info overrides the description of the parser. Empty fields keep the
// parser's own values.
type Info struct {
	Name    string
	Version string
	About   string
}

// Main runs p on os.Args[1:] and exits for help, version and errors.
func Main[T any](p bargs.Parser[T], info Info) T {
	v, err := Run(p, info, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		os.Exit(ExitCode(err))
	}
	return v
}

// ExitCode returns the process exit status for an error returned by Run.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrShown) {
		return 0
	}
	return 1
}

// Run parses args with p, adding -h/--help and, when a version is known,
// -v/--version. Help goes to stdout; errors go to stderr and are returned.
func Run[T any](p bargs.Parser[T], info Info, args []string, stdout, stderr io.Writer) (T, error) {
	var zero T
	d := bargs.Describe(p)
	merge(&d, info)

	var vp bargs.Parser[bargs.Wrapped[T]] = passthrough[T]{p}
	if d.Version != "" {
		vp = bargs.WithVersion(p)
	}
	hp := bargs.WithHelp(vp)
	d.Metas = hp.Describe().Metas

	res, err := hp.Parse(token.FromSlice(args))
	switch {
	case err != nil:
		fmt.Fprint(stderr, RenderError(d, err, tui.NewColorizer(stderr)))
		return zero, err
	case res.Requested:
		if _, err := usage.WriteHelp(stdout, d, 0); err != nil {
			return zero, err
		}
		return zero, ErrShown
	case res.Args.Requested:
		fmt.Fprintf(stdout, "%s %s\n", d.Name, FormatVersion(d.Version))
		return zero, ErrShown
	}
	return res.Args.Args, nil
}

func merge(d *bargs.Description, info Info) {
	if info.Name != "" {
		d.Name = info.Name
	}
	if info.Version != "" {
		d.Version = info.Version
	}
	if info.About != "" {
		d.About = info.About
	}
}

// passthrough presents a parser as a wrapper that never triggers.
type passthrough[T any] struct {
	p bargs.Parser[T]
}

func (w passthrough[T]) Parse(src token.Source) (bargs.Wrapped[T], error) {
	v, err := w.p.Parse(src)
	return bargs.Wrapped[T]{Args: v}, err
}

func (w passthrough[T]) Describe() bargs.Description { return bargs.Describe(w.p) }

// FormatVersion normalizes semantic versions, so "v1.2" is "1.2.0". Other
// strings are returned unchanged.
func FormatVersion(v string) string {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return sv.String()
}

// RenderError formats err for the command described by d:
//
//	memdump: error: unknown flag --colour
//	  did you mean --color?
//	USAGE: memdump [OPTIONS] START LEN
//	Run 'memdump --help' for more information.
func RenderError(d bargs.Description, err error, c tui.Colorizer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %v\n", d.Name, c.Wrap(tui.StyleError, "error:"), err)
	if s := Suggest(d, err); s != "" {
		fmt.Fprintf(&b, "  did you mean %s?\n", c.Wrap(tui.StyleGood, s))
	}
	fmt.Fprintf(&b, "USAGE: %s\n", usage.Line(d))
	if len(d.Metas) > 0 {
		fmt.Fprintf(&b, "Run '%s --help' for more information.\n", d.Name)
	}
	return b.String()
}

// Suggest returns the known long flag closest to an unknown one, such as
// "--color" for "--col" or "--colour". It returns "" if err is not an
// unknown long flag or nothing is close.
func Suggest(d bargs.Description, err error) string {
	var e *bargs.Error
	if !errors.As(err, &e) || e.Kind != bargs.NoSuchLongFlag || e.Token == "" {
		return ""
	}
	var longs []string
	for _, f := range d.Fields {
		if f.Long != "" {
			longs = append(longs, f.Long)
		}
	}
	for _, m := range d.Metas {
		if m.Long != "" {
			longs = append(longs, m.Long)
		}
	}

	// The typed name abbreviates a flag.
	if matches := fuzzy.Find(e.Token, longs); len(matches) > 0 {
		return "--" + matches[0].Str
	}
	// A flag is hidden inside the typed name, as with extra letters.
	best := ""
	for _, l := range longs {
		if len(fuzzy.Find(l, []string{e.Token})) > 0 && len(l) > len(best) {
			best = l
		}
	}
	if best == "" {
		return ""
	}
	return "--" + best
}
