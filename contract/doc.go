// Package contract builds call data for named contract messages and decodes
// their results.
//
// A Contract pairs a parsed metadata project with an encoder and decoder bound
// to its type registry:
//
//	c, err := contract.Load(ctx, "flipper.contract")
//	data, err := c.EncodeCall("flip", nil)            // selector ‖ args
//	data, err := c.EncodeConstructor("", []string{"true"}) // default constructor
//	value, err := c.DecodeReturn("get", returned)
//
// Call data is the 4-byte selector followed by every argument SCALE-encoded in
// declaration order. The argument count must match the declaration exactly.
//
// For bundles, Inspect reports the Wasm entry points and VerifyCode checks the
// blob against the code hash recorded in the metadata.
package contract
