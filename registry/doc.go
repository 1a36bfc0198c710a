// Package registry defines the portable type registry that drives the codec.
//
// A Registry maps a TypeID to a Type node. Each Type carries a path (e.g.
// ["ink_primitives", "types", "AccountId"]), generic parameters, and a definition
// from a closed set:
//
//	Primitive    bool, char, str, u8..u256, i8..i256
//	Composite    struct-like, ordered (optionally named) fields
//	Variant      tagged union, each case has a wire index and ordered fields
//	Sequence     dynamically sized list
//	Array        fixed-size list, length is part of the type
//	Tuple        ordered positional element types
//	Compact      numeric value in compact encoding
//	BitSequence  packed bits (not supported by the codec)
//
// The registry is built once from metadata (see Parse) and is read-only afterwards.
// Resolve is safe for concurrent use. Cyclic type graphs are representable; consumers
// that recurse through them must bound their own depth.
package registry
