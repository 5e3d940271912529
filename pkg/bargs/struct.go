// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bargs

import (
	"encoding"
	"fmt"
	"iter"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/yeetrun/bargs/pkg/field"
)

var (
	durationType        = reflect.TypeFor[time.Duration]()
	urlType             = reflect.TypeFor[url.URL]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Struct returns a command whose fields come from the exported fields of
// struct type T.
//
// Struct tags:
//
//	arg:"short,long"          flag or option; short is the first letter of
//	                          the name and long is the name
//	arg:"short=f,long=force"  explicit flags
//	arg:"-"                   field is ignored
//	help:"..."                help text
//	value:"NAME"              value placeholder in help
//
// Fields without an arg tag are positional, in declaration order. A bool
// field with an arg tag is a flag; any other type is an option. Field names
// are converted to kebab case, so NoNullCheck is --no-null-check.
//
// Supported types are strings, integers (decimal or 0x hex), floats,
// time.Duration, url.URL, types implementing encoding.TextUnmarshaler,
// pointers to those (optional) and slices of those (lists).
//
// Struct panics if T cannot be mapped.
func Struct[T any](name string, opts ...CommandOption) *Command[T] {
	fields, err := structFields(reflect.TypeFor[T]())
	if err != nil {
		panic("bargs: " + err.Error())
	}
	cmd := Define(name, func(t *Table) func() T {
		var out T
		v := reflect.ValueOf(&out).Elem()
		setters := make([]func(), 0, len(fields))
		for _, sf := range fields {
			target := v.FieldByIndex(sf.index)
			fo := sf.options()
			switch sf.info.Kind {
			case KindFlag:
				s := Flag(t, sf.info.Name, fo...)
				setters = append(setters, func() { target.SetBool(s.Get()) })
			case KindOption:
				setters = append(setters, assign(target, Option(t, sf.info.Name, sf.binder, fo...)))
			case KindPositional:
				setters = append(setters, assign(target, Positional(t, sf.info.Name, sf.binder, fo...)))
			}
		}
		return func() T {
			for _, set := range setters {
				set()
			}
			return out
		}
	}, opts...)
	// Registration errors, such as two fields with the same short flag,
	// panic here rather than on the first Parse.
	cmd.Describe()
	return cmd
}

func assign(target reflect.Value, s *Slot[reflect.Value]) func() {
	return func() {
		if v := s.Get(); v.IsValid() {
			target.Set(v)
		}
	}
}

type structField struct {
	index  []int
	info   FieldInfo
	binder field.Binder[reflect.Value]
}

func (sf structField) options() []FieldOption {
	var opts []FieldOption
	if sf.info.Short != 0 {
		opts = append(opts, Short(sf.info.Short))
	}
	if sf.info.Long != "" {
		opts = append(opts, Long(sf.info.Long))
	}
	if sf.info.Help != "" {
		opts = append(opts, Help(sf.info.Help))
	}
	if sf.info.ValueName != "" {
		opts = append(opts, ValueName(sf.info.ValueName))
	}
	return opts
}

func structFields(typ reflect.Type) ([]structField, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a struct", typ)
	}
	var out []structField
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, hasArg := sf.Tag.Lookup("arg")
		if tag == "-" {
			continue
		}
		f := structField{
			index: sf.Index,
			info: FieldInfo{
				Name:      kebab(sf.Name),
				Help:      sf.Tag.Get("help"),
				ValueName: sf.Tag.Get("value"),
			},
		}
		isBool := sf.Type.Kind() == reflect.Bool
		switch {
		case hasArg:
			if err := parseArgTag(&f.info, tag); err != nil {
				return nil, fmt.Errorf("field %s: %w", sf.Name, err)
			}
			f.info.Kind = KindOption
			if isBool {
				f.info.Kind = KindFlag
			}
		case isBool:
			return nil, fmt.Errorf("field %s: bool fields need an arg tag", sf.Name)
		default:
			f.info.Kind = KindPositional
		}
		if f.info.Kind != KindFlag {
			b, err := binderFor(sf.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", sf.Name, err)
			}
			f.binder = b
		}
		out = append(out, f)
	}
	return out, nil
}

func parseArgTag(info *FieldInfo, tag string) error {
	for part := range strings.SplitSeq(tag, ",") {
		key, val, hasVal := strings.Cut(strings.TrimSpace(part), "=")
		switch key {
		case "short":
			if !hasVal {
				info.Short, _ = utf8.DecodeRuneInString(info.Name)
				continue
			}
			if utf8.RuneCountInString(val) != 1 {
				return fmt.Errorf("short flag %q must be a single character", val)
			}
			info.Short, _ = utf8.DecodeRuneInString(val)
		case "long":
			info.Long = info.Name
			if hasVal {
				info.Long = val
			}
		case "":
		default:
			return fmt.Errorf("unknown arg tag key %q", key)
		}
	}
	if info.Short == 0 && info.Long == "" {
		return fmt.Errorf("arg tag %q names neither short nor long", tag)
	}
	return nil
}

// kebab converts a Go field name to a flag name: HTTPPort is http-port and
// Dry_Run is dry-run.
func kebab(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == '_':
			r = '-'
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('-')
				}
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func binderFor(typ reflect.Type) (field.Binder[reflect.Value], error) {
	if s, ok := scalarFor(typ); ok {
		return s, nil
	}
	switch typ.Kind() {
	case reflect.Pointer:
		inner, err := binderFor(typ.Elem())
		if err != nil {
			return nil, err
		}
		o := optionalValue{typ: typ, inner: inner}
		if rb, ok := inner.(field.RestBinder[reflect.Value]); ok {
			return optionalRestValue{optionalValue: o, rest: rb}, nil
		}
		return o, nil
	case reflect.Slice:
		elem, ok := scalarFor(typ.Elem())
		if !ok {
			return nil, fmt.Errorf("unsupported list element type %s", typ.Elem())
		}
		return sliceValue{typ: typ, elem: elem}, nil
	}
	return nil, fmt.Errorf("unsupported type %s", typ)
}

// scalarValue binds a single value of a reflected type.
type scalarValue struct {
	name  string
	parse func(string) (reflect.Value, error)
}

func (s scalarValue) ParseOne(value string) (reflect.Value, error) { return s.parse(value) }
func (s scalarValue) TypeName() string                             { return s.name }

func scalarFor(typ reflect.Type) (scalarValue, bool) {
	name := typ.String()
	switch {
	case typ == urlType:
		return scalarValue{name: "url", parse: func(v string) (reflect.Value, error) {
			u, err := field.URL().ParseOne(v)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(*u), nil
		}}, true
	case typ == durationType:
		return scalarValue{name: "duration", parse: func(v string) (reflect.Value, error) {
			d, err := field.Duration().ParseOne(v)
			return reflect.ValueOf(d), err
		}}, true
	case typ.Kind() != reflect.Pointer && reflect.PointerTo(typ).Implements(textUnmarshalerType):
		return scalarValue{name: name, parse: func(v string) (reflect.Value, error) {
			p := reflect.New(typ)
			if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(v)); err != nil {
				return reflect.Value{}, err
			}
			return p.Elem(), nil
		}}, true
	}

	switch typ.Kind() {
	case reflect.String:
		return scalarValue{name: "string", parse: func(v string) (reflect.Value, error) {
			return reflect.ValueOf(v).Convert(typ), nil
		}}, true
	case reflect.Bool:
		return scalarValue{name: name, parse: func(v string) (reflect.Value, error) {
			b, err := strconv.ParseBool(v)
			return reflect.ValueOf(b).Convert(typ), err
		}}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalarValue{name: name, parse: func(v string) (reflect.Value, error) {
			n, err := field.Int[int64]().ParseOne(v)
			if err != nil {
				return reflect.Value{}, err
			}
			out := reflect.New(typ).Elem()
			if out.OverflowInt(n) {
				return reflect.Value{}, &strconv.NumError{Func: "ParseInt", Num: v, Err: strconv.ErrRange}
			}
			out.SetInt(n)
			return out, nil
		}}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return scalarValue{name: name, parse: func(v string) (reflect.Value, error) {
			n, err := field.Uint[uint64]().ParseOne(v)
			if err != nil {
				return reflect.Value{}, err
			}
			out := reflect.New(typ).Elem()
			if out.OverflowUint(n) {
				return reflect.Value{}, &strconv.NumError{Func: "ParseUint", Num: v, Err: strconv.ErrRange}
			}
			out.SetUint(n)
			return out, nil
		}}, true
	case reflect.Float32, reflect.Float64:
		return scalarValue{name: name, parse: func(v string) (reflect.Value, error) {
			f, err := field.Float[float64]().ParseOne(v)
			if err != nil {
				return reflect.Value{}, err
			}
			out := reflect.New(typ).Elem()
			if out.OverflowFloat(f) {
				return reflect.Value{}, &strconv.NumError{Func: "ParseFloat", Num: v, Err: strconv.ErrRange}
			}
			out.SetFloat(f)
			return out, nil
		}}, true
	}
	return scalarValue{}, false
}

// sliceValue is field.List for reflected slices.
type sliceValue struct {
	typ  reflect.Type
	elem scalarValue
}

func (s sliceValue) ParseOne(value string) (reflect.Value, error) {
	out := reflect.MakeSlice(s.typ, 0, 1)
	for part := range strings.SplitSeq(value, ",") {
		v, err := s.elem.ParseOne(part)
		if err != nil {
			return reflect.Value{}, err
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

func (s sliceValue) ParseWithRest(value string, rest iter.Seq[string]) (reflect.Value, error) {
	first, err := s.elem.ParseOne(value)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.Append(reflect.MakeSlice(s.typ, 0, 1), first)
	for r := range rest {
		v, err := s.elem.ParseOne(r)
		if err != nil {
			return reflect.Value{}, err
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

func (s sliceValue) Accumulate(prev, next reflect.Value) reflect.Value {
	return reflect.AppendSlice(prev, next)
}

func (s sliceValue) TypeName() string { return "[]" + s.elem.name }

// optionalValue is field.Optional for reflected pointers.
type optionalValue struct {
	typ   reflect.Type
	inner field.Binder[reflect.Value]
}

func (o optionalValue) ParseOne(value string) (reflect.Value, error) {
	v, err := o.inner.ParseOne(value)
	if err != nil {
		return reflect.Value{}, err
	}
	return o.wrap(v), nil
}

func (o optionalValue) wrap(v reflect.Value) reflect.Value {
	p := reflect.New(o.typ.Elem())
	p.Elem().Set(v)
	return p
}

func (o optionalValue) AbsentDefault() (reflect.Value, bool) {
	return reflect.Zero(o.typ), true
}

func (o optionalValue) TypeName() string { return "?" + field.TypeName(o.inner) }

type optionalRestValue struct {
	optionalValue
	rest field.RestBinder[reflect.Value]
}

func (o optionalRestValue) ParseWithRest(value string, rest iter.Seq[string]) (reflect.Value, error) {
	v, err := o.rest.ParseWithRest(value, rest)
	if err != nil {
		return reflect.Value{}, err
	}
	return o.wrap(v), nil
}

func (o optionalRestValue) Accumulate(prev, next reflect.Value) reflect.Value {
	acc, ok := o.inner.(field.Accumulator[reflect.Value])
	if !ok || prev.IsNil() {
		return next
	}
	return o.wrap(acc.Accumulate(prev.Elem(), next.Elem()))
}
