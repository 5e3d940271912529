// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// greet is a very important program to greet somebody.
package main

import (
	"fmt"

	"github.com/yeetrun/bargs/pkg/bargs"
	"github.com/yeetrun/bargs/pkg/cli"
)

type Args struct {
	KickShins bool   `arg:"short,long=kick" help:"Should we kick the person's shins after greeting them?"`
	Person    string `help:"Name of the person we're greeting"`
}

var command = bargs.Struct[Args]("greet", bargs.About("A very important program to greet somebody"))

func main() {
	args := cli.Main(command, cli.Info{})
	fmt.Println(greeting(args))
}

func greeting(a Args) string {
	s := fmt.Sprintf("Hello, %s!", a.Person)
	if a.KickShins {
		s += "\nNow I'm gonna kick your shins!"
	}
	return s
}
