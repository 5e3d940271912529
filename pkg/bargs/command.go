// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bargs

import "github.com/yeetrun/bargs/pkg/token"

// Parser binds a token source to a value of type T.
type Parser[T any] interface {
	Parse(src token.Source) (T, error)
}

// Description is everything help output needs to know about a parser.
type Description struct {
	Name    string
	Version string
	About   string
	Fields  []FieldInfo
	// Metas are the meta flags added by wrappers, innermost first.
	Metas []Meta
}

// Describer is implemented by parsers that can describe their fields.
type Describer interface {
	Describe() Description
}

// Describe returns p's description. It is empty if p does not implement
// Describer.
func Describe[T any](p Parser[T]) Description {
	if d, ok := p.(Describer); ok {
		return d.Describe()
	}
	return Description{}
}

// Command is a Parser defined by a build function.
type Command[T any] struct {
	name    string
	version string
	about   string
	build   func(*Table) func() T
}

// CommandOption configures a Command.
type CommandOption func(*commandInfo)

type commandInfo struct {
	version string
	about   string
}

// Version sets the version reported by the command's description.
func Version(v string) CommandOption { return func(c *commandInfo) { c.version = v } }

// About sets the one-line description of the command.
func About(text string) CommandOption { return func(c *commandInfo) { c.about = text } }

// Define returns a command named name. build registers the command's fields
// on a fresh Table and returns a function that assembles the result from
// the bound slots. build runs once per Parse and once per Describe.
func Define[T any](name string, build func(*Table) func() T, opts ...CommandOption) *Command[T] {
	var ci commandInfo
	for _, o := range opts {
		o(&ci)
	}
	return &Command[T]{
		name:    name,
		version: ci.version,
		about:   ci.about,
		build:   build,
	}
}

// Name returns the command's name.
func (c *Command[T]) Name() string { return c.name }

// Parse binds the arguments from src.
func (c *Command[T]) Parse(src token.Source) (T, error) {
	t := newTable()
	assemble := c.build(t)
	if err := t.bind(token.NewStream(src)); err != nil {
		var zero T
		return zero, err
	}
	return assemble(), nil
}

// Describe returns the command's fields without binding anything.
func (c *Command[T]) Describe() Description {
	t := newTable()
	c.build(t)
	return Description{
		Name:    c.name,
		Version: c.version,
		About:   c.about,
		Fields:  t.Fields(),
	}
}

// ParseArgs parses a slice of raw arguments, typically os.Args[1:].
func ParseArgs[T any](p Parser[T], args []string) (T, error) {
	return p.Parse(token.FromSlice(args))
}
