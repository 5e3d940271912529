// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env renders bound argument values as an environment file.
package env

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/yeetrun/bargs/pkg/schema"
)

// WriteFile writes an environment file with the given name and content.
func WriteFile(name, prefix string, vs schema.Values) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := Write(f, prefix, vs); err != nil {
		return fmt.Errorf("failed to marshal env: %v", err)
	}
	return f.Close()
}

// Write writes one KEY=value line per value. Absent optional values are
// skipped and lists are joined with commas.
func Write(w io.Writer, prefix string, vs schema.Values) error {
	for _, v := range vs {
		s, ok := format(reflect.ValueOf(v.Value))
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", Key(prefix, v.Name), quote(s)); err != nil {
			return err
		}
	}
	return nil
}

// Key returns the variable name for a field: Key("MEMDUMP", "no-null-check")
// is MEMDUMP_NO_NULL_CHECK.
func Key(prefix, name string) string {
	k := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	if prefix == "" {
		return k
	}
	return strings.ToUpper(prefix) + "_" + k
}

func format(rv reflect.Value) (string, bool) {
	if !rv.IsValid() {
		return "", false
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return s.String(), true
		}
		return format(rv.Elem())
	}
	if rv.Kind() == reflect.Slice {
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, ok := format(rv.Index(i))
			if ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true
	}
	return fmt.Sprint(rv.Interface()), true
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'$\\#") {
		return strconv.Quote(s)
	}
	return s
}
