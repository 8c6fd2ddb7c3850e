// Package errors provides structured error types for the script-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the script module, class and hook names
// involved, plus a cause chain holding the original runtime diagnostic.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConstruct, errors.KindConstructionFailure).
//		Module("enemy_ai").
//		Class("Chaser").
//		Detail("constructor raised").
//		Cause(jsErr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ImportFailure("enemy_ai", cause)
//	err := errors.StaleReference("invoke update")
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind, so callers can test for a failure category:
//
//	errors.Is(err, &errors.Error{Phase: errors.PhaseImport, Kind: errors.KindImportFailure})
package errors
