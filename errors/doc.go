// Package errors provides structured error types for the tagfabric library.
//
// Errors are categorized by Phase (where in the transport lifecycle the error
// occurred) and Kind (error category). The Error type carries the native
// status text reported by the underlying fabric plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseWorker, errors.KindFabric).
//		Detail("create worker").
//		Cause(cause).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.WorkerCreate(cause)
//	err := errors.AddressInvalid("truncated address bytes", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when Phase and Kind are equal.
package errors
