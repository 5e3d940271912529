// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bargs

import (
	"errors"

	"github.com/yeetrun/bargs/pkg/token"
)

// Meta is a flag handled outside of a command's own fields.
type Meta struct {
	Short       rune
	Long        string
	Description string
}

var (
	// HelpMeta is -h, --help.
	HelpMeta = Meta{Short: 'h', Long: "help", Description: "Print help"}
	// VersionMeta is -v, --version.
	VersionMeta = Meta{Short: 'v', Long: "version", Description: "Print version"}
)

// matches reports whether err is the unknown-flag error for m.
func (m Meta) matches(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case NoSuchShortFlag:
		return m.Short != 0 && e.Short == m.Short
	case NoSuchLongFlag:
		return m.Long != "" && e.Token == m.Long
	}
	return false
}

// Wrapped is the result of a Wrapper. Args is only valid when Requested is
// false.
type Wrapped[T any] struct {
	Args T
	// Requested reports that the wrapper's meta flag was given.
	Requested bool
}

// Wrapper adds a meta flag to another parser.
type Wrapper[T any] struct {
	inner Parser[T]
	meta  Meta
}

// Wrap returns a parser that reports m being given instead of failing with
// an unknown flag error for it.
func Wrap[T any](inner Parser[T], m Meta) *Wrapper[T] {
	return &Wrapper[T]{inner: inner, meta: m}
}

// WithHelp wraps inner with HelpMeta.
func WithHelp[T any](inner Parser[T]) *Wrapper[T] { return Wrap(inner, HelpMeta) }

// WithVersion wraps inner with VersionMeta.
func WithVersion[T any](inner Parser[T]) *Wrapper[T] { return Wrap(inner, VersionMeta) }

// Meta returns the wrapper's meta flag.
func (w *Wrapper[T]) Meta() Meta { return w.meta }

// Parse runs the inner parser over the whole source. The first unknown flag
// error is inspected: if it is the wrapper's flag, parsing stops and the
// result has Requested set.
func (w *Wrapper[T]) Parse(src token.Source) (Wrapped[T], error) {
	v, err := w.inner.Parse(src)
	if err == nil {
		return Wrapped[T]{Args: v}, nil
	}
	if w.meta.matches(err) {
		return Wrapped[T]{Requested: true}, nil
	}
	return Wrapped[T]{}, err
}

// Describe returns the inner description with the wrapper's meta flag
// appended.
func (w *Wrapper[T]) Describe() Description {
	d := Describe(w.inner)
	d.Metas = append(d.Metas, w.meta)
	return d
}
