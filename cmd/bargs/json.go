// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/yeetrun/bargs/pkg/schema"
)

// writeJSON writes vals as one object with keys in field order.
func writeJSON(w io.Writer, vals schema.Values) error {
	var b bytes.Buffer
	b.WriteString("{")
	for i, v := range vals {
		if i > 0 {
			b.WriteString(",")
		}
		k, err := json.Marshal(v.Name)
		if err != nil {
			return err
		}
		val, err := json.Marshal(plain(reflect.ValueOf(v.Value)))
		if err != nil {
			return fmt.Errorf("field %q: %w", v.Name, err)
		}
		fmt.Fprintf(&b, "\n  %s: %s", k, val)
	}
	if len(vals) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	_, err := w.Write(b.Bytes())
	return err
}

// plain converts bound values to what JSON shows: pointers are followed,
// durations and URLs become their strings.
func plain(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return plain(rv.Elem())
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	if rv.Kind() == reflect.Slice {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = plain(rv.Index(i))
		}
		return out
	}
	return rv.Interface()
}
