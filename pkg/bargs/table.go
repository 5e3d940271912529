// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bargs

import (
	"fmt"
	"iter"

	"github.com/yeetrun/bargs/pkg/field"
)

// Kind is the role of a field on the command line.
type Kind int

const (
	// KindFlag is a boolean switch such as -f or --force.
	KindFlag Kind = iota
	// KindOption is a flag that takes the next argument as its value.
	KindOption
	// KindPositional is bound by position.
	KindPositional
)

func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindOption:
		return "option"
	case KindPositional:
		return "positional"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// FieldInfo describes a registered field.
type FieldInfo struct {
	Name  string
	Kind  Kind
	Short rune   // 0 if none
	Long  string // "" if none
	Help  string
	// ValueName is shown in usage text. Empty means the upper-cased name.
	ValueName string
	// Type is the binder's display name.
	Type string
	// Optional reports whether the field may be omitted.
	Optional bool
	// Collection reports whether a positional takes all remaining
	// positionals.
	Collection bool
}

// FieldOption configures a field at registration.
type FieldOption func(*FieldInfo)

// Short sets the field's short flag.
func Short(c rune) FieldOption { return func(f *FieldInfo) { f.Short = c } }

// Long sets the field's long flag, without the leading dashes.
func Long(name string) FieldOption { return func(f *FieldInfo) { f.Long = name } }

// Help sets the field's help text.
func Help(text string) FieldOption { return func(f *FieldInfo) { f.Help = text } }

// ValueName sets the placeholder shown for the field's value in help.
func ValueName(name string) FieldOption { return func(f *FieldInfo) { f.ValueName = name } }

type entry struct {
	FieldInfo

	setFlag  func()
	bindOne  func(value string) error
	bindRest func(value string, rest iter.Seq[string]) error
	isSet    func() bool
	// absent stores the absent default, reporting false if there is none.
	absent func() bool
}

// Table is the set of fields of one parse. Tables are created by Command
// and passed to its build function; they are not reused.
type Table struct {
	fields      []*entry
	short       map[rune]*entry
	long        map[string]*entry
	positionals []*entry
}

func newTable() *Table {
	return &Table{
		short: make(map[rune]*entry),
		long:  make(map[string]*entry),
	}
}

// Fields returns the registered fields in declaration order.
func (t *Table) Fields() []FieldInfo {
	out := make([]FieldInfo, len(t.fields))
	for i, e := range t.fields {
		out[i] = e.FieldInfo
	}
	return out
}

// add validates e and appends it. Invalid declarations are programming
// errors and panic.
func (t *Table) add(e *entry) {
	if e.Name == "" {
		panic("bargs: field with empty name")
	}
	switch e.Kind {
	case KindFlag, KindOption:
		if e.Short == 0 && e.Long == "" {
			panic(fmt.Sprintf("bargs: %s %q has neither a short nor a long flag", e.Kind, e.Name))
		}
		if e.Short != 0 {
			if prev, ok := t.short[e.Short]; ok {
				panic(fmt.Sprintf("bargs: short flag -%c of %q is already used by %q", e.Short, e.Name, prev.Name))
			}
			t.short[e.Short] = e
		}
		if e.Long != "" {
			if prev, ok := t.long[e.Long]; ok {
				panic(fmt.Sprintf("bargs: long flag --%s of %q is already used by %q", e.Long, e.Name, prev.Name))
			}
			t.long[e.Long] = e
		}
	case KindPositional:
		if e.Short != 0 || e.Long != "" {
			panic(fmt.Sprintf("bargs: positional %q cannot have flags", e.Name))
		}
		if n := len(t.positionals); n > 0 && t.positionals[n-1].Collection {
			panic(fmt.Sprintf("bargs: positional %q follows collection %q", e.Name, t.positionals[n-1].Name))
		}
		t.positionals = append(t.positionals, e)
	}
	t.fields = append(t.fields, e)
}

func newEntry(name string, kind Kind, opts []FieldOption) *entry {
	e := &entry{FieldInfo: FieldInfo{Name: name, Kind: kind}}
	for _, o := range opts {
		o(&e.FieldInfo)
	}
	return e
}

// Slot holds the value bound to one field.
type Slot[T any] struct {
	value T
	set   bool
}

// Get returns the bound value. For a field that received no value it is
// the binder's absent default.
func (s *Slot[T]) Get() T { return s.value }

// IsSet reports whether a value was given on the command line.
func (s *Slot[T]) IsSet() bool { return s.set }

func (s *Slot[T]) store(v T, b field.Binder[T]) {
	if acc, ok := b.(field.Accumulator[T]); ok && s.set {
		v = acc.Accumulate(s.value, v)
	}
	s.value, s.set = v, true
}

// Flag registers a boolean flag. Flags are false unless given.
func Flag(t *Table, name string, opts ...FieldOption) *Slot[bool] {
	s := new(Slot[bool])
	e := newEntry(name, KindFlag, opts)
	e.Type = "bool"
	e.Optional = true
	e.setFlag = func() { s.value, s.set = true, true }
	e.isSet = s.IsSet
	e.absent = func() bool { return true }
	t.add(e)
	return s
}

// Option registers a flag that takes a value.
func Option[T any](t *Table, name string, b field.Binder[T], opts ...FieldOption) *Slot[T] {
	s := new(Slot[T])
	e := valueEntry(name, KindOption, s, b, opts)
	t.add(e)
	return s
}

// Positional registers a positional field. A binder implementing
// field.RestBinder makes it a trailing collection, which must be the last
// positional.
func Positional[T any](t *Table, name string, b field.Binder[T], opts ...FieldOption) *Slot[T] {
	s := new(Slot[T])
	e := valueEntry(name, KindPositional, s, b, opts)
	e.Collection = field.IsCollection(b)
	if e.Collection {
		e.bindRest = func(value string, rest iter.Seq[string]) error {
			v, err := field.ParseWithRest(b, value, rest)
			if err != nil {
				return err
			}
			s.store(v, b)
			return nil
		}
	}
	t.add(e)
	return s
}

func valueEntry[T any](name string, kind Kind, s *Slot[T], b field.Binder[T], opts []FieldOption) *entry {
	e := newEntry(name, kind, opts)
	e.Type = field.TypeName(b)
	_, e.Optional = field.AbsentDefault(b)
	e.bindOne = func(value string) error {
		v, err := b.ParseOne(value)
		if err != nil {
			return err
		}
		s.store(v, b)
		return nil
	}
	e.isSet = s.IsSet
	e.absent = func() bool {
		v, ok := field.AbsentDefault(b)
		if ok {
			s.value = v
		}
		return ok
	}
	return e
}
