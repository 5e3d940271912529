// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/yeetrun/bargs/pkg/tui"
)

type dumper struct {
	w     io.Writer
	group int
	width int
	color tui.Colorizer
}

// dump writes n bytes of r starting at offset start. Input that ends early
// is dumped up to its end.
func (d dumper) dump(r io.Reader, start, n uint64) error {
	if start > math.MaxInt64 || n > math.MaxInt64 {
		return fmt.Errorf("range %#x+%#x is too large", start, n)
	}
	if _, err := io.CopyN(io.Discard, r, int64(start)); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("start %#x is past the end of the input", start)
		}
		return fmt.Errorf("failed to skip to %#x: %w", start, err)
	}

	bw := bufio.NewWriter(d.w)
	lr := io.LimitReader(r, int64(n))
	line := make([]byte, d.width)
	off := start
	for {
		k, err := io.ReadFull(lr, line)
		if k > 0 {
			d.writeLine(bw, off, line[:k])
			off += uint64(k)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
	return bw.Flush()
}

func (d dumper) writeLine(w *bufio.Writer, off uint64, data []byte) {
	fmt.Fprintf(w, "%08x:", off)
	for i := 0; i < d.width; i += d.group {
		w.WriteByte(' ')
		for j := i; j < i+d.group; j++ {
			if j >= len(data) {
				w.WriteString("  ")
				continue
			}
			w.WriteString(d.color.Wrap(byteStyle(data[j]), fmt.Sprintf("%02x", data[j])))
		}
	}
	w.WriteString("  ")
	for _, c := range data {
		ch := "."
		if isPrint(c) {
			ch = string(rune(c))
		}
		w.WriteString(d.color.Wrap(byteStyle(c), ch))
	}
	w.WriteByte('\n')
}

func isPrint(c byte) bool { return c >= 0x20 && c < 0x7f }

func byteStyle(c byte) []color.Attribute {
	switch {
	case c == 0:
		return tui.StyleDim
	case isPrint(c):
		return tui.StyleGood
	}
	return nil
}
