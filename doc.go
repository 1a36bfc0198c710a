// Package scalecodec provides a metadata-driven SCALE codec for contract calls.
//
// Contract call arguments and return values are only known at runtime, from the
// contract's metadata. The library walks the metadata's type registry and converts
// human-readable values (plain text or JSON) into the compact little-endian SCALE wire
// format, and decodes returned bytes back into JSON-shaped values.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	scalecodec/          Root package with the Resolver interface
//	├── registry/        Type graph: TypeID → Type (primitive, composite, variant, ...)
//	├── compact/         Compact (variable-length) unsigned integer codec
//	├── ss58/            Checksummed account address codec
//	├── transcoder/      Encoder and Decoder driven by the registry
//	├── metadata/        Contract metadata parsing and file loading
//	├── engine/          Inspection of the contract Wasm blob in .contract bundles
//	├── contract/        Selector + argument encoding for named messages
//	├── errors/          Structured error types for debugging
//	└── cmd/scalec/      Command line front end
//
// # Quick Start
//
// Encode a message call and decode its result:
//
//	c, err := contract.Load(ctx, "flipper.contract")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := c.EncodeCall("transfer", []string{
//	    "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", "1000",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// data = selector ‖ SCALE(args), ready to submit
//
//	value, err := c.DecodeReturn("get", returned)
//	fmt.Println(value) // "0x000001"
//
// Or drive the transcoder directly with any Resolver:
//
//	enc := transcoder.NewEncoder(reg)
//	out, err := enc.EncodeArgs([]transcoder.Param{{Name: "flag", Type: 0}}, []string{"true"})
//
// # Value Text Format
//
//   - Primitives parse from their literal form: "true", "42", "-7"; str passes verbatim
//   - Composites and generic variants take JSON objects: {"variant": "Some", "fields": [5]}
//   - Sequences, arrays and tuples take JSON arrays
//   - Account ids take an SS58 address or 0x-prefixed 32-byte hex
//   - Option takes "null" or "" for None; Result takes {"Ok": ...} or {"Err": ...}
//
// # Decoding
//
// Primitives decode to JSON values (u128/i128 as decimal strings). Every compound
// type decodes to the 0x-prefixed hex of the remaining bytes; structural decoding of
// compound results is intentionally not provided.
//
// # Thread Safety
//
// Registries are immutable after construction. Encoder and Decoder hold no per-call
// state and are safe for concurrent use.
//
// # Recursion
//
// Encoding recurses along the type graph. Depth is bounded by the nesting depth of
// the schema and capped by transcoder.WithMaxDepth; exceeding the cap fails with an
// overflow error instead of exhausting the stack.
package scalecodec
