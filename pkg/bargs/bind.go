// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bargs

import (
	"errors"
	"iter"

	"github.com/yeetrun/bargs/pkg/token"
)

// binder walks a token stream and fills the slots of a Table.
type binder struct {
	t   *Table
	s   *token.Stream
	pos int // index of the next positional field

	// last is the most recent value handed to a collection.
	last string
	// err is a failure hit while a collection was drawing from rest.
	err error
}

func (t *Table) bind(s *token.Stream) error {
	b := &binder{t: t, s: s}
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		if err := b.dispatch(tok); err != nil {
			return err
		}
	}
	return b.finish()
}

func (b *binder) dispatch(tok token.Token) error {
	switch tok.Kind {
	case token.ShortGroup:
		for _, c := range tok.Value {
			e, ok := b.t.short[c]
			if !ok {
				return &Error{Kind: NoSuchShortFlag, Short: c}
			}
			if err := b.flag(e); err != nil {
				return err
			}
		}
		return nil
	case token.LongFlag:
		e, ok := b.t.long[tok.Value]
		if !ok {
			return &Error{Kind: NoSuchLongFlag, Token: tok.Value}
		}
		return b.flag(e)
	}
	return b.positional(tok.Value)
}

// flag sets a flag, or binds an option to the next token.
func (b *binder) flag(e *entry) error {
	if e.Kind == KindFlag {
		e.setFlag()
		return nil
	}
	tok, ok := b.s.Next()
	if !ok || tok.Kind != token.Positional {
		return &Error{Kind: ExpectedValue, Field: e.Name}
	}
	return parseErr(e, tok.Value, e.bindOne(tok.Value))
}

func (b *binder) positional(v string) error {
	if b.pos >= len(b.t.positionals) {
		return &Error{Kind: UnexpectedValue, Token: v}
	}
	e := b.t.positionals[b.pos]
	b.pos++
	if !e.Collection {
		return parseErr(e, v, e.bindOne(v))
	}
	b.last = v
	err := e.bindRest(v, b.rest())
	if b.err != nil {
		return b.err
	}
	return parseErr(e, b.last, err)
}

// rest yields the remaining positional tokens. Flags met on the way are
// dispatched as usual; the first failure stops the sequence and is kept
// in b.err.
func (b *binder) rest() iter.Seq[string] {
	return func(yield func(string) bool) {
		for b.err == nil {
			tok, ok := b.s.Next()
			if !ok {
				return
			}
			if tok.Kind != token.Positional {
				if err := b.dispatch(tok); err != nil {
					b.err = err
					return
				}
				continue
			}
			b.last = tok.Value
			if !yield(tok.Value) {
				return
			}
		}
	}
}

// finish applies absent defaults in declaration order.
func (b *binder) finish() error {
	for _, e := range b.t.fields {
		if e.isSet() {
			continue
		}
		if !e.absent() {
			return &Error{Kind: ExpectedValue, Field: e.Name}
		}
	}
	return nil
}

func parseErr(e *entry, value string, err error) error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return err
	}
	return &Error{Kind: ParseValue, Field: e.Name, Token: value, Err: err}
}
