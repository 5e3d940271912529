// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bargs

import "fmt"

// ErrorKind identifies why binding failed.
type ErrorKind int

const (
	// ParseValue means a field's binder rejected its value.
	ParseValue ErrorKind = iota
	// NoSuchShortFlag means a short group held an undeclared rune.
	NoSuchShortFlag
	// NoSuchLongFlag means a long flag was not declared.
	NoSuchLongFlag
	// UnexpectedValue means there were more positionals than fields.
	UnexpectedValue
	// ExpectedValue means a mandatory field, or an option's value, was
	// missing.
	ExpectedValue
)

func (k ErrorKind) String() string {
	switch k {
	case ParseValue:
		return "ParseValue"
	case NoSuchShortFlag:
		return "NoSuchShortFlag"
	case NoSuchLongFlag:
		return "NoSuchLongFlag"
	case UnexpectedValue:
		return "UnexpectedValue"
	case ExpectedValue:
		return "ExpectedValue"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned for every binding failure.
type Error struct {
	Kind ErrorKind
	// Field is the field name for ParseValue and ExpectedValue.
	Field string
	// Short is the rune for NoSuchShortFlag.
	Short rune
	// Token is the offending argument: the flag name without dashes for
	// NoSuchLongFlag, the positional for UnexpectedValue and the value
	// that failed for ParseValue.
	Token string
	// Err is the binder's error for ParseValue.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ParseValue:
		return fmt.Sprintf("invalid value %q for %s: %v", e.Token, e.Field, e.Err)
	case NoSuchShortFlag, NoSuchLongFlag:
		return "unknown flag " + e.Flag()
	case UnexpectedValue:
		return fmt.Sprintf("unexpected argument %q", e.Token)
	case ExpectedValue:
		return "expected value for " + e.Field
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Flag returns the unknown flag as it was typed, such as "-x" or "--foo".
// It returns "" for other kinds.
func (e *Error) Flag() string {
	switch e.Kind {
	case NoSuchShortFlag:
		return "-" + string(e.Short)
	case NoSuchLongFlag:
		return "--" + e.Token
	}
	return ""
}
