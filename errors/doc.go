// Package errors provides structured error types for the scale-codec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the value path inside the argument being encoded, the schema
// type involved, the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindValueFormat).
//		Path("arg[config]", "limit").
//		TypeName("u32").
//		Value("-1").
//		Detail("not an unsigned integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ArityMismatch(errors.PhaseEncode, path, "array length", 32, 31)
//	err := errors.TypeNotFound(errors.PhaseResolve, path, 17)
//
// All errors are terminal: encoding and decoding are deterministic, so a failure for a
// given input repeats for the same input. All errors support errors.Is/As.
package errors
