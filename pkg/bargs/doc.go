// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bargs binds command-line arguments to typed fields.
//
// A command declares its fields once, in a build function that runs at the
// start of every parse. Each registration returns a Slot that holds the
// bound value after the parse succeeds:
//
//	type Args struct {
//		Color bool
//		Group *uint8
//		Start uint
//		Len   uint
//	}
//
//	cmd := bargs.Define("memdump", func(t *bargs.Table) func() Args {
//		color := bargs.Flag(t, "color", bargs.Short('c'), bargs.Long("color"))
//		group := bargs.Option(t, "group", field.Optional(field.Uint[uint8]()), bargs.Short('g'))
//		start := bargs.Positional(t, "start", field.Uint[uint]())
//		n := bargs.Positional(t, "len", field.Uint[uint]())
//		return func() Args {
//			return Args{Color: color.Get(), Group: group.Get(), Start: start.Get(), Len: n.Get()}
//		}
//	})
//
//	args, err := cmd.Parse(token.Args("-cg", "8", "0x1000", "64"))
//
// Struct derives the same kind of command from struct tags:
//
//	type Args struct {
//		Color bool   `arg:"short,long" help:"Show color"`
//		Group *uint8 `arg:"short,long" help:"How many bytes to show at once"`
//		Start uint   `help:"Start address"`
//		Len   uint   `help:"Number of bytes to show"`
//	}
//
//	cmd := bargs.Struct[Args]("memdump")
//
// # Binding rules
//
// Short groups are expanded left to right. A flag in a group sets its field
// to true. An option takes the next argument as its value, even in the
// middle of a group, so "-cg 8" is "-c -g 8". Positionals are assigned in
// declaration order. A trailing collection, such as field.List, takes every
// remaining positional argument. After the last argument, every field that
// received no value uses its binder's absent default or fails with
// ExpectedValue.
//
// # Help and version
//
// Meta flags such as --help are layered on top of a command with Wrap:
//
//	p := bargs.WithHelp(bargs.WithVersion(cmd))
//	res, err := p.Parse(src)
//	switch {
//	case err != nil:
//	case res.Requested:      // -h or --help
//	case res.Args.Requested: // -v or --version
//	default:
//		run(res.Args.Args)
//	}
//
// The outermost wrapper is checked first. A wrapper only triggers when the
// wrapped command does not know its flag, so a command that defines its own
// -h keeps it.
package bargs
