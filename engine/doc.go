// Package engine inspects the WebAssembly blob shipped in a contract bundle.
//
// The blob is compiled with wazero but never instantiated, so no host functions
// are needed. Compilation validates the module; the compiled form then reports
// what the contract exports and which host functions it imports.
//
//	WazeroEngine  - Owns a wazero runtime used for compilation
//	ModuleInfo    - Exports, imports grouped by host module, memory import
//
// # Contract Entry Points
//
// An ink! contract exports two functions:
//
//	deploy   - runs a constructor (selector + args read from host input)
//	call     - runs a message
//
// ModuleInfo.HasCall and ModuleInfo.HasDeploy report them, and
// ModuleInfo.Validate fails if either is missing.
//
// # Code Hash
//
// CodeHash returns the blake2b-256 digest of the blob, which is the code hash a
// chain assigns on upload and the value recorded in the metadata source.hash.
package engine
