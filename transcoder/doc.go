// Package transcoder converts between textual values and SCALE bytes, driven by a
// runtime type registry.
//
// Argument values for contract calls are only known as text (command line
// arguments, JSON documents) and their types are only known from metadata loaded at
// runtime, so the transcoder walks the type graph instead of relying on Go types:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│ text / JSON ──[Encoder]──▶ SCALE bytes ──[Decoder]──▶ any  │
//	│                 ▲                          ▲                │
//	│                 └──── Resolver (type id → type node) ───┘   │
//	└─────────────────────────────────────────────────────────────┘
//
// # Wire Format
//
//	Type            Encoding
//	──────────────────────────────────────────────────────
//	bool            1 byte, 0 or 1
//	u8..u128        1/2/4/8/16 bytes little-endian
//	i8..i128        two's complement, same widths
//	char            Unicode scalar value as u32
//	str             compact length + UTF-8 bytes
//	compact<T>      compact integer (see package compact)
//	composite       fields concatenated in declaration order
//	variant         discriminant byte + fields
//	sequence        compact length + elements
//	array           elements only, length comes from the type
//	tuple           elements concatenated
//
// U256, I256 and bit sequences are not supported.
//
// # Value Text
//
// Primitives parse from their literal form ("true", "42", "-7"); strings pass
// through verbatim. Composites take a JSON object keyed by field name, generic
// variants take {"variant": "Name", "fields": [...]}, and sequences, arrays and
// tuples take a JSON array. Nested JSON values are handed to the element encoder
// as text, with JSON strings unquoted, so {"label": "abc"} encodes the str "abc".
//
// A few types are recognized by the final segment of their path:
//
//	AccountId32, AccountId   SS58 address or 0x-prefixed 32-byte hex
//	Option                   "null" or "" for None, anything else for Some
//	Result                   {"Ok": v} or {"Err": v}
//
// Option and Result payloads are always encoded as a length-prefixed string,
// whatever the declared payload type is. Existing consumers rely on this. An
// Option payload is the text as given. A Result payload is the compact JSON of
// the member with keys sorted, so {"Err": "x"} carries the three bytes "x"
// including the quotes.
//
// # Decoding
//
// Only primitives decode structurally: integers up to 64 bits become uint64 or
// int64, 128-bit integers become decimal strings, str and char become strings.
// Every other type decodes to "0x" followed by the lowercase hex of the remaining
// input. A call without a declared return type decodes to nil.
//
// # Recursion
//
// Encoding recurses once per level of type nesting. WithMaxDepth bounds the depth
// (default 256) so a cyclic or hostile registry fails with an overflow error
// instead of exhausting the stack.
//
// # Thread Safety
//
// Encoder and Decoder hold no mutable state and may be shared between goroutines,
// provided the Resolver supports concurrent reads (registry.Registry does).
package transcoder
