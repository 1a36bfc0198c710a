// Package compact implements the SCALE compact unsigned integer encoding.
//
// The encoding picks the narrowest of four modes by magnitude; the two low bits of the
// first byte name the mode:
//
//	value range        bytes   layout
//	───────────────────────────────────────────────────────────────
//	[0, 2^6)           1       value<<2 | 0b00
//	[2^6, 2^14)        2       LE u16 of value<<2 | 0b01
//	[2^14, 2^30)       4       LE u32 of value<<2 | 0b10
//	[2^30, 2^128)      1+n     ((n-4)<<2 | 0b11), then n LE bytes
//
// where n is the minimal number of bytes that holds the value. Values wider than
// 128 bits are not supported. Decoding rejects truncated input and non-minimal
// encodings; DecodeExact additionally rejects trailing bytes.
package compact
