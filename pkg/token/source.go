// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

import (
	"fmt"
	"iter"

	"github.com/google/shlex"
)

// Source yields raw argument strings one at a time.
type Source interface {
	// Next returns the next raw string, or false when there are no more.
	Next() (string, bool)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() (string, bool)

func (f SourceFunc) Next() (string, bool) { return f() }

type sliceSource struct {
	args []string
}

func (s *sliceSource) Next() (string, bool) {
	if len(s.args) == 0 {
		return "", false
	}
	a := s.args[0]
	s.args = s.args[1:]
	return a, true
}

// FromSlice returns a Source over args. The slice is not modified.
func FromSlice(args []string) Source {
	return &sliceSource{args: args}
}

// Args is FromSlice for literal arguments.
func Args(args ...string) Source {
	return FromSlice(args)
}

// Pull adapts a push iterator into a Source. The returned stop function
// must be called if the Source is abandoned before it is exhausted.
func Pull(seq iter.Seq[string]) (Source, func()) {
	next, stop := iter.Pull(seq)
	return SourceFunc(next), stop
}

// FromLine splits line into words using shell quoting rules.
func FromLine(line string) (Source, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split %q: %w", line, err)
	}
	return FromSlice(words), nil
}
