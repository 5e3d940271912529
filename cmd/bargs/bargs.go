// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// bargs parses arguments against a field schema and prints what was bound.
//
//	bargs memdump.toml -- -c 0x10 32
//	bargs --env --prefix MEMDUMP memdump.toml -- -g 2 0 16
//	bargs --line '-c 0 "16"' memdump.toml
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/yeetrun/bargs/pkg/bargs"
	"github.com/yeetrun/bargs/pkg/cli"
	"github.com/yeetrun/bargs/pkg/env"
	"github.com/yeetrun/bargs/pkg/field"
	"github.com/yeetrun/bargs/pkg/schema"
	"github.com/yeetrun/bargs/pkg/token"
)

type flags struct {
	Env     bool
	Prefix  *string
	Line    *string
	Verbose bool
	Schema  string
	Args    *[]string
}

var command = bargs.Define("bargs", func(t *bargs.Table) func() flags {
	envFlag := bargs.Flag(t, "env", bargs.Short('e'), bargs.Long("env"),
		bargs.Help("Print KEY=value lines instead of JSON"))
	prefix := bargs.Option(t, "prefix", field.Optional(field.String()), bargs.Long("prefix"),
		bargs.Help("Prefix for --env keys"))
	line := bargs.Option(t, "line", field.Optional(field.String()), bargs.Short('l'), bargs.Long("line"),
		bargs.ValueName("STRING"), bargs.Help("Split STRING like a shell instead of using ARGS"))
	verbose := bargs.Flag(t, "verbose", bargs.Short('v'), bargs.Long("verbose"),
		bargs.Help("Log every token"))
	schemaPath := bargs.Positional(t, "schema", field.Path(),
		bargs.Help("Schema file, .toml or .yaml"))
	rest := bargs.Positional(t, "args", field.Optional(field.List(field.String())),
		bargs.Help("Arguments to parse, after --"))
	return func() flags {
		return flags{
			Env:     envFlag.Get(),
			Prefix:  prefix.Get(),
			Line:    line.Get(),
			Verbose: verbose.Get(),
			Schema:  schemaPath.Get(),
			Args:    rest.Get(),
		}
	}
}, bargs.About("Parse arguments against a field schema"))

func main() {
	log.SetFlags(0)
	log.SetPrefix("bargs: ")

	f := cli.Main(command, cli.Info{})
	err := run(f, os.Stdout, os.Stderr)
	var be *bargs.Error
	switch {
	case err == nil || errors.Is(err, cli.ErrShown):
	case errors.As(err, &be):
		// Already rendered by cli.Run.
		os.Exit(1)
	default:
		log.Fatalf("error: %v", err)
	}
}

// run parses the arguments against the schema in f. Parse errors are
// printed to stderr by cli.Run and returned as *bargs.Error.
func run(f flags, stdout, stderr io.Writer) error {
	s, err := schema.Load(f.Schema)
	if err != nil {
		return err
	}
	cmd, err := s.Command()
	if err != nil {
		return fmt.Errorf("%s: %w", f.Schema, err)
	}

	args, err := input(f)
	if err != nil {
		return err
	}
	if f.Verbose {
		for tok := range token.Tokenize(token.FromSlice(args)) {
			log.Printf("token %v", tok)
		}
	}

	vals, err := cli.Run(cmd, cli.Info{}, args, stdout, stderr)
	if err != nil {
		return err
	}
	if f.Env {
		prefix := ""
		if f.Prefix != nil {
			prefix = *f.Prefix
		}
		return env.Write(stdout, prefix, vals)
	}
	return writeJSON(stdout, vals)
}

// input returns the arguments to parse, from --line or ARGS.
func input(f flags) ([]string, error) {
	if f.Line == nil {
		if f.Args == nil {
			return nil, nil
		}
		return *f.Args, nil
	}
	if f.Args != nil {
		return nil, errors.New("--line cannot be combined with ARGS")
	}
	src, err := token.FromLine(*f.Line)
	if err != nil {
		return nil, fmt.Errorf("failed to split --line: %w", err)
	}
	var args []string
	for {
		a, ok := src.Next()
		if !ok {
			return args, nil
		}
		args = append(args, a)
	}
}
