// Package scale implements the compact binary codec used by the
// versioned runtime metadata format (SCALE: Simple Concatenated
// Aggregate Little-Endian).
//
// The package provides a position-tracking Reader and a buffered
// Writer. All multi-byte integers are little-endian. Collections and
// strings are prefixed with a compact-encoded length; options are a
// one-byte presence tag; tagged unions are a one-byte discriminant
// followed by the variant payload.
//
// Compact integers use a 2-bit mode tag in the low bits of the first
// byte:
//
//	0b00  single byte, value < 2^6
//	0b01  two bytes, value < 2^14
//	0b10  four bytes, value < 2^30
//	0b11  big-integer mode: ((len-4)<<2)|0b11 then len LE bytes
//
// Non-canonical encodings (a value encoded in a wider mode than
// required) are rejected, as are length prefixes that exceed the
// remaining input. Decoding is all-or-nothing: the Reader never
// allocates ahead of what the remaining input can actually supply.
package scale
