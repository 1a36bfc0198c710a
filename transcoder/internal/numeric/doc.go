// Package numeric provides the textual parsing and formatting rules used by the
// transcoder for primitive values.
//
// # Contents
//
//   - parse.go: bool and fixed-width integer parsing, including 128-bit
//   - format.go: 128-bit decimal rendering and char validation
//
// Integer text follows the usual Rust literal-parsing rules: optional leading '+',
// '-' for signed types only, decimal digits, no whitespace or separators.
//
// This package is internal to the transcoder.
package numeric
