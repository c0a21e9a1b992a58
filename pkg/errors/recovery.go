package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"
)

// PanicError is an error created from a recovered panic. It keeps the
// original panic value and the stack at the recovery point.
type PanicError struct {
	Operation string
	Value     interface{}
	Stack     []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("vinum: panic in %s: %v", e.Operation, e.Value)
}

// String includes the captured stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("%s\n%s", e.Error(), e.Stack)
}

// NewPanicError creates a PanicError for the given operation.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		Operation: operation,
		Value:     panicValue,
		Stack:     debug.Stack(),
	}
}

// Recover converts a panic into an error assigned through err.
// gonum/mat panics on shape mismatches, so estimator entry points use
// this with defer rather than crashing the caller:
//
//	func (p *PCA) Fit(X mat.Matrix) (err error) {
//	    defer errors.Recover(&err, "PCA.Fit")
//	    ...
//	}
//
// An error already present in err is kept as a secondary cause.
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		panicErr := errors.WithStack(NewPanicError(operation, r))
		if *err != nil {
			*err = errors.CombineErrors(panicErr, *err)
			return
		}
		*err = panicErr
	}
}

// SafeExecute runs fn and converts any panic into an error.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
