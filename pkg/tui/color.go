// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Styles used by command output.
var (
	StyleError = []color.Attribute{color.FgRed, color.Bold}
	StyleGood  = []color.Attribute{color.FgGreen}
	StyleDim   = []color.Attribute{color.FgHiBlack}
)

type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer for output written to w. Color is only
// enabled when w is a terminal, NO_COLOR is unset and TERM is not dumb.
func NewColorizer(w io.Writer) Colorizer {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return Colorizer{}
	}
	return Force(true)
}

// Force returns a Colorizer that ignores the output file. The environment
// still disables color.
func Force(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(style []color.Attribute, text string) string {
	if !c.Enabled || len(style) == 0 {
		return text
	}
	col := color.New(style...)
	col.EnableColor()
	return col.Sprint(text)
}
