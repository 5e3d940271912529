// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"strings"

	"github.com/yeetrun/bargs/pkg/bargs"
	"github.com/yeetrun/bargs/pkg/field"
)

type binding func(t *bargs.Table, name string, kind bargs.Kind, opts []bargs.FieldOption) func() Value

// resolve maps a type name such as "?[]u8" to a binding.
func resolve(typ string) (binding, error) {
	name := typ
	optional := strings.HasPrefix(name, "?")
	name = strings.TrimPrefix(name, "?")
	list := strings.HasPrefix(name, "[]")
	name = strings.TrimPrefix(name, "[]")

	switch name {
	case "i8":
		return compose(field.Int[int8](), optional, list), nil
	case "i16":
		return compose(field.Int[int16](), optional, list), nil
	case "i32":
		return compose(field.Int[int32](), optional, list), nil
	case "i64":
		return compose(field.Int[int64](), optional, list), nil
	case "int":
		return compose(field.Int[int](), optional, list), nil
	case "u8":
		return compose(field.Uint[uint8](), optional, list), nil
	case "u16":
		return compose(field.Uint[uint16](), optional, list), nil
	case "u32":
		return compose(field.Uint[uint32](), optional, list), nil
	case "u64":
		return compose(field.Uint[uint64](), optional, list), nil
	case "uint", "usize":
		return compose(field.Uint[uint](), optional, list), nil
	case "f32":
		return compose(field.Float[float32](), optional, list), nil
	case "f64":
		return compose(field.Float[float64](), optional, list), nil
	case "string", "":
		return compose(field.String(), optional, list), nil
	case "path":
		return compose(field.Path(), optional, list), nil
	case "duration":
		return compose(field.Duration(), optional, list), nil
	case "url":
		return compose(field.URL(), optional, list), nil
	}
	return nil, fmt.Errorf("unknown type %q", typ)
}

func compose[T any](b field.Binder[T], optional, list bool) binding {
	switch {
	case optional && list:
		return bind(field.Optional(field.List(b)))
	case optional:
		return bind(field.Optional(b))
	case list:
		return bind(field.List(b))
	}
	return bind(b)
}

func bind[T any](b field.Binder[T]) binding {
	return func(t *bargs.Table, name string, kind bargs.Kind, opts []bargs.FieldOption) func() Value {
		var s *bargs.Slot[T]
		if kind == bargs.KindOption {
			s = bargs.Option(t, name, b, opts...)
		} else {
			s = bargs.Positional(t, name, b, opts...)
		}
		return func() Value { return Value{Name: name, Value: s.Get(), Set: s.IsSet()} }
	}
}
