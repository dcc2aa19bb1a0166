// Package errors provides structured error types for the script-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: argument path, Go type
// name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhasePack, errors.KindCapacity).
//		Path("arg[32]").
//		Detail("argument buffer full (%d slots)", 32).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseUnpack, path, "string", "pointer")
//	err := errors.Native("entity not found")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
