// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"iter"
	"reflect"
)

// Binder parses a single raw value.
type Binder[T any] interface {
	ParseOne(value string) (T, error)
}

// RestBinder is implemented by collection binders that consume value and
// every remaining positional argument yielded by rest.
type RestBinder[T any] interface {
	Binder[T]
	ParseWithRest(value string, rest iter.Seq[string]) (T, error)
}

// Absenter is implemented by binders for which a missing value is valid.
// AbsentDefault reports the value to use and true, or false if the field is
// mandatory.
type Absenter[T any] interface {
	AbsentDefault() (T, bool)
}

// Accumulator is implemented by binders that combine repeated option
// values.
type Accumulator[T any] interface {
	Accumulate(prev, next T) T
}

// Typer is implemented by binders that have a display name.
type Typer interface {
	TypeName() string
}

// ParseWithRest binds value through b. Binders without RestBinder ignore
// rest and parse value alone.
func ParseWithRest[T any](b Binder[T], value string, rest iter.Seq[string]) (T, error) {
	if rb, ok := b.(RestBinder[T]); ok {
		return rb.ParseWithRest(value, rest)
	}
	return b.ParseOne(value)
}

// AbsentDefault returns the default value for a field that received no
// value. The second result is false when the field is mandatory.
func AbsentDefault[T any](b Binder[T]) (T, bool) {
	if a, ok := b.(Absenter[T]); ok {
		return a.AbsentDefault()
	}
	var zero T
	return zero, false
}

// IsCollection reports whether b consumes the remaining positionals.
func IsCollection[T any](b Binder[T]) bool {
	_, ok := b.(RestBinder[T])
	return ok
}

// TypeName returns b's display name, falling back to the Go type name.
func TypeName[T any](b Binder[T]) string {
	if t, ok := b.(Typer); ok {
		return t.TypeName()
	}
	return reflect.TypeFor[T]().String()
}

// Func adapts a parse function to a Binder.
func Func[T any](name string, fn func(string) (T, error)) Binder[T] {
	return funcBinder[T]{name: name, fn: fn}
}

type funcBinder[T any] struct {
	name string
	fn   func(string) (T, error)
}

func (f funcBinder[T]) ParseOne(value string) (T, error) { return f.fn(value) }
func (f funcBinder[T]) TypeName() string                  { return f.name }
