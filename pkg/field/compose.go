// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"iter"
	"strings"
)

type optional[T any] struct {
	inner Binder[T]
}

// Optional makes inner's field optional. A missing value binds to nil.
// An optional collection is still a collection.
func Optional[T any](inner Binder[T]) Binder[*T] {
	if rb, ok := inner.(RestBinder[T]); ok {
		return optionalRest[T]{optional: optional[T]{inner: inner}, rest: rb}
	}
	return optional[T]{inner: inner}
}

func (o optional[T]) ParseOne(value string) (*T, error) {
	v, err := o.inner.ParseOne(value)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (optional[T]) AbsentDefault() (*T, bool) { return nil, true }

func (o optional[T]) TypeName() string { return "?" + TypeName(o.inner) }

type optionalRest[T any] struct {
	optional[T]
	rest RestBinder[T]
}

func (o optionalRest[T]) Accumulate(prev, next *T) *T {
	acc, ok := o.inner.(Accumulator[T])
	if !ok || prev == nil || next == nil {
		return next
	}
	v := acc.Accumulate(*prev, *next)
	return &v
}

func (o optionalRest[T]) ParseWithRest(value string, rest iter.Seq[string]) (*T, error) {
	v, err := o.rest.ParseWithRest(value, rest)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type list[T any] struct {
	elem Binder[T]
}

// List returns a binder for a list of elem values.
//
// A single option value is split on commas, so "--tags a,b" yields two
// elements. As a trailing positional, the list takes every remaining
// positional argument without splitting. Repeated options append.
func List[T any](elem Binder[T]) Binder[[]T] {
	return list[T]{elem: elem}
}

func (l list[T]) ParseOne(value string) ([]T, error) {
	parts := strings.Split(value, ",")
	out := make([]T, 0, len(parts))
	for _, p := range parts {
		v, err := l.elem.ParseOne(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (l list[T]) ParseWithRest(value string, rest iter.Seq[string]) ([]T, error) {
	first, err := l.elem.ParseOne(value)
	if err != nil {
		return nil, err
	}
	out := []T{first}
	for r := range rest {
		v, err := l.elem.ParseOne(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (list[T]) Accumulate(prev, next []T) []T { return append(prev, next...) }

func (l list[T]) TypeName() string { return "[]" + TypeName(l.elem) }
