// Package errors provides structured error types for the virtual-list engine.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending value, a path into the section tree
// when one applies, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindInvalidSection).
//		Path("section[2]").
//		Value(node.Kind()).
//		Detail("section has no cell").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfRange(errors.PhaseMeasure, index, count)
//	err := errors.InvalidSize(index, size)
//
// All errors implement the standard error interface and support errors.Is/As.
// The sentinels ErrOutOfRange, ErrInvalidSize and ErrInvalidOffset match any
// error of the corresponding kind regardless of phase:
//
//	if errors.Is(err, errors.ErrOutOfRange) { ... }
package errors
