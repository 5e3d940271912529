// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

import (
	"fmt"
	"iter"
	"strings"
)

const terminator = "--"

// Kind is the classification of a Token.
type Kind int

const (
	// Positional is a plain value: anything that does not start with a
	// dash, a lone "-", or any string after the terminator.
	Positional Kind = iota
	// LongFlag is "--name" with the leading dashes stripped.
	LongFlag
	// ShortGroup is "-abc" with the leading dash stripped. It holds one or
	// more short flags.
	ShortGroup
)

func (k Kind) String() string {
	switch k {
	case Positional:
		return "positional"
	case LongFlag:
		return "long flag"
	case ShortGroup:
		return "short group"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one classified argument.
type Token struct {
	Kind  Kind
	Value string
}

// String renders the token the way it would appear on a command line.
func (t Token) String() string {
	switch t.Kind {
	case LongFlag:
		return "--" + t.Value
	case ShortGroup:
		return "-" + t.Value
	}
	return t.Value
}

// Classify returns the token for a raw string seen before the terminator.
// The terminator itself is reported with ok == false.
func Classify(raw string) (tok Token, ok bool) {
	switch {
	case raw == terminator:
		return Token{}, false
	case strings.HasPrefix(raw, terminator):
		return Token{Kind: LongFlag, Value: raw[len(terminator):]}, true
	case len(raw) > 1 && raw[0] == '-':
		return Token{Kind: ShortGroup, Value: raw[1:]}, true
	}
	return Token{Kind: Positional, Value: raw}, true
}

// Stream lazily classifies the strings of a Source.
type Stream struct {
	src        Source
	terminated bool
}

// NewStream returns a Stream reading from src.
func NewStream(src Source) *Stream {
	return &Stream{src: src}
}

// Next returns the next token. It reports false once the source is
// exhausted.
func (s *Stream) Next() (Token, bool) {
	for {
		raw, ok := s.src.Next()
		if !ok {
			return Token{}, false
		}
		if s.terminated {
			return Token{Kind: Positional, Value: raw}, true
		}
		tok, ok := Classify(raw)
		if !ok {
			s.terminated = true
			continue
		}
		return tok, true
	}
}

// Terminated reports whether the "--" terminator has been consumed.
func (s *Stream) Terminated() bool {
	return s.terminated
}

// All returns the remaining tokens of s as an iterator.
func (s *Stream) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := s.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize classifies every string of src.
func Tokenize(src Source) iter.Seq[Token] {
	return NewStream(src).All()
}
