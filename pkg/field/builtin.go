// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"encoding"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
)

const hexPrefix = "0x"

// splitBase strips the hexadecimal prefix, if any, and reports the base to
// parse the rest with.
func splitBase(value string) (string, int) {
	if rest, ok := strings.CutPrefix(value, hexPrefix); ok {
		return rest, 16
	}
	return value, 10
}

type intBinder[T constraints.Signed] struct{}

// Int returns a binder for signed integers of any size.
func Int[T constraints.Signed]() Binder[T] { return intBinder[T]{} }

func (intBinder[T]) ParseOne(value string) (T, error) {
	digits, base := splitBase(value)
	n, err := strconv.ParseInt(digits, base, reflect.TypeFor[T]().Bits())
	if err != nil {
		return 0, withNum(err, value)
	}
	return T(n), nil
}

func (intBinder[T]) TypeName() string { return reflect.TypeFor[T]().String() }

type uintBinder[T constraints.Unsigned] struct{}

// Uint returns a binder for unsigned integers of any size.
func Uint[T constraints.Unsigned]() Binder[T] { return uintBinder[T]{} }

func (uintBinder[T]) ParseOne(value string) (T, error) {
	digits, base := splitBase(value)
	n, err := strconv.ParseUint(digits, base, reflect.TypeFor[T]().Bits())
	if err != nil {
		return 0, withNum(err, value)
	}
	return T(n), nil
}

func (uintBinder[T]) TypeName() string { return reflect.TypeFor[T]().String() }

// withNum reports the full input, prefix included, in a *strconv.NumError.
func withNum(err error, value string) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		ne.Num = value
	}
	return err
}

type floatBinder[T constraints.Float] struct{}

// Float returns a binder for floating point numbers.
func Float[T constraints.Float]() Binder[T] { return floatBinder[T]{} }

func (floatBinder[T]) ParseOne(value string) (T, error) {
	f, err := strconv.ParseFloat(value, reflect.TypeFor[T]().Bits())
	if err != nil {
		return 0, err
	}
	return T(f), nil
}

func (floatBinder[T]) TypeName() string { return reflect.TypeFor[T]().String() }

type stringBinder struct{}

// String returns a binder that passes the value through unchanged.
func String() Binder[string] { return stringBinder{} }

func (stringBinder) ParseOne(value string) (string, error) { return value, nil }
func (stringBinder) TypeName() string                      { return "string" }

type pathBinder struct{}

// Path returns a binder for file system paths. The path is cleaned and
// must not be empty.
func Path() Binder[string] { return pathBinder{} }

func (pathBinder) ParseOne(value string) (string, error) {
	if value == "" {
		return "", errors.New("empty path")
	}
	return filepath.Clean(value), nil
}

func (pathBinder) TypeName() string { return "path" }

type durationBinder struct{}

// Duration returns a binder for time.ParseDuration strings such as "1m30s".
func Duration() Binder[time.Duration] { return durationBinder{} }

func (durationBinder) ParseOne(value string) (time.Duration, error) {
	return time.ParseDuration(value)
}

func (durationBinder) TypeName() string { return "duration" }

type urlBinder struct{}

// URL returns a binder for absolute URLs.
func URL() Binder[*url.URL] { return urlBinder{} }

func (urlBinder) ParseOne(value string) (*url.URL, error) {
	u, err := url.Parse(value)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("URL %q has no scheme", value)
	}
	return u, nil
}

func (urlBinder) TypeName() string { return "url" }

type portBinder struct {
	min, max uint16
}

// Port returns a binder for port numbers within [min, max].
func Port(min, max uint16) Binder[uint16] { return portBinder{min: min, max: max} }

func (p portBinder) ParseOne(value string) (uint16, error) {
	n, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && ne.Err == strconv.ErrRange {
			return 0, fmt.Errorf("port must be between %d and %d, got %q", p.min, p.max, value)
		}
		return 0, fmt.Errorf("invalid port value %q", value)
	}
	if port := uint16(n); port < p.min || port > p.max {
		return 0, fmt.Errorf("port must be between %d and %d, got %d", p.min, p.max, port)
	}
	return uint16(n), nil
}

func (portBinder) TypeName() string { return "port" }

type enumBinder struct {
	choices []string
}

// Enum returns a binder that accepts only the given choices.
func Enum(choices ...string) Binder[string] { return enumBinder{choices: choices} }

func (e enumBinder) ParseOne(value string) (string, error) {
	if slices.Contains(e.choices, value) {
		return value, nil
	}
	return "", fmt.Errorf("must be one of %s", strings.Join(e.choices, "|"))
}

func (e enumBinder) TypeName() string { return strings.Join(e.choices, "|") }

// textUnmarshaler constrains PT to be a pointer to T implementing
// encoding.TextUnmarshaler.
type textUnmarshaler[T any] interface {
	*T
	encoding.TextUnmarshaler
}

type textBinder[T any, PT textUnmarshaler[T]] struct{}

// Text returns a binder for any type whose pointer implements
// encoding.TextUnmarshaler, such as netip.Addr.
func Text[T any, PT textUnmarshaler[T]]() Binder[T] { return textBinder[T, PT]{} }

func (textBinder[T, PT]) ParseOne(value string) (T, error) {
	var v T
	if err := PT(&v).UnmarshalText([]byte(value)); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (textBinder[T, PT]) TypeName() string { return reflect.TypeFor[T]().String() }
