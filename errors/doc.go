// Package errors provides structured error types for the chain-metadata library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes a field path and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindMalformed).
//		Path("pallets", "Balances", "storage").
//		Detail("truncated entry list").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnsupportedVersion(17)
//	err := errors.DanglingType(errors.PhaseValidate, path, 42)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree,
// which is how callers distinguish "need a newer decoder" from "corrupt data".
package errors
