// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// memdump prints a range of bytes from a file, which may be zstd or gzip
// compressed, as hex and ASCII.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/yeetrun/bargs/pkg/bargs"
	"github.com/yeetrun/bargs/pkg/cli"
	"github.com/yeetrun/bargs/pkg/compress"
	"github.com/yeetrun/bargs/pkg/tui"
)

var version = "0.1.0"

const (
	defaultWidth = 16
	maxWidth     = 4096
	// Dumps larger than this need --force.
	maxLen = 1 << 20
)

type Args struct {
	Color bool    `arg:"short,long" help:"Show color"`
	Force bool    `arg:"short,long" help:"Disable sanity checks"`
	Group *uint8  `arg:"short,long" value:"N" help:"How many bytes to show at once"`
	Width *uint   `arg:"short,long" value:"N" help:"How many bytes to show per line"`
	Start uint64  `help:"Start address"`
	Len   uint64  `help:"Number of bytes to show"`
	File  *string `help:"Input file, - for standard input"`
}

var command = bargs.Struct[Args]("memdump", bargs.About("A simple memory dump program"))

func main() {
	log.SetFlags(0)
	log.SetPrefix("memdump: ")

	args := cli.Main(command, cli.Info{Version: version})

	cfg, path, err := loadConfigFromCwd()
	if err != nil {
		log.Printf("failed to load config: %v", err)
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		log.Printf("ignoring environment: %v", err)
	}

	opts, err := resolve(args, cfg)
	if err != nil {
		log.Fatalf("error: %v", err)
	}
	if path != "" && debug() {
		log.Printf("using config %s", path)
	}
	if err := run(opts); err != nil {
		log.Fatalf("error: %v", err)
	}
}

type options struct {
	color bool
	group int
	width int
	start uint64
	len   uint64
	file  string
}

func debug() bool { return os.Getenv("MEMDUMP_DEBUG") != "" }

// resolve merges flags over configuration and checks the result.
func resolve(a Args, c Config) (options, error) {
	o := options{
		color: a.Color,
		group: 1,
		start: a.Start,
		len:   a.Len,
		file:  "-",
	}
	if !a.Color && c.Color != nil {
		o.color = *c.Color
	}
	if c.Group != nil {
		o.group = int(*c.Group)
	}
	if a.Group != nil {
		o.group = int(*a.Group)
	}
	width := uint(defaultWidth)
	if c.Width != nil {
		width = *c.Width
	}
	if a.Width != nil {
		width = *a.Width
	}
	if width > maxWidth {
		return o, fmt.Errorf("width must be at most %d", maxWidth)
	}
	o.width = int(width)
	if a.File != nil {
		o.file = *a.File
	}

	switch {
	case o.group == 0:
		return o, errors.New("group must be at least 1")
	case o.width == 0:
		return o, errors.New("width must be at least 1")
	case o.width%o.group != 0:
		return o, fmt.Errorf("width %d is not a multiple of group %d", o.width, o.group)
	case !a.Force && o.len > maxLen:
		return o, fmt.Errorf("refusing to dump %d bytes without --force", o.len)
	}
	return o, nil
}

func run(o options) error {
	r, enc, err := compress.Open(o.file)
	if err != nil {
		return err
	}
	defer r.Close()
	if enc != compress.Identity && debug() {
		log.Printf("decompressing %s input", enc)
	}
	d := dumper{
		w:     os.Stdout,
		group: o.group,
		width: o.width,
		color: tui.Force(o.color),
	}
	return d.dump(r, o.start, o.len)
}
