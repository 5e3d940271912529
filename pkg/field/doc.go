// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field defines how a single argument value is turned into a typed
// Go value.
//
// Every field of a command is bound through a Binder. A Binder may also
// implement any of the optional interfaces in this package:
//
//   - RestBinder: the field is a trailing collection and wants the rest of
//     the positional arguments.
//   - Absenter: a missing value is acceptable and has a default.
//   - Accumulator: repeating an option combines values instead of
//     replacing them.
//   - Typer: the binder has a display name for help and tooling.
//
// Integers accept decimal input or hexadecimal with a "0x" prefix:
//
//	field.Uint[uint8]().ParseOne("0xfe") // 254
//
// Optional and List compose with any other binder:
//
//	field.Optional(field.Uint[uint8]()) // Binder[*uint8], absent is nil
//	field.List(field.String())          // Binder[[]string], "a,b" splits
package field
