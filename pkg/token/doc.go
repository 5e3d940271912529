// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package token classifies raw command-line strings.
//
// Each raw string becomes exactly one Token, except the terminator "--",
// which is consumed silently and turns every later string into a
// Positional token:
//
//	--color   LongFlag("color")
//	-cfg      ShortGroup("cfg")
//	-         Positional("-")
//	--        (terminator, not emitted)
//	-5        Positional("-5") once the terminator was seen
//
// Streams are lazy and single-pass. Expanding short groups into individual
// flags is left to the binder.
package token
