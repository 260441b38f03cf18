// Package tferrors defines the error kinds used across the pipeline,
// following the shape of the teacher's internal/errors package (a small
// tagged error type with a machine-readable Code, a human Message, and an
// optional wrapped cause) but without the HTTP-status plumbing the teacher
// needed for its API surface — this module has none.
package tferrors

import "fmt"

// Kind classifies an error per spec.md §7: programmer errors are not
// recoverable and should never reach a caller as a returned error (they
// panic instead); invariant failures and I/O errors are returned.
type Kind string

const (
	KindInvariant Kind = "invariant"
	KindIO        Kind = "io"
)

// Error is a tagged application error with an optional wrapped cause.
type Error struct {
	Code    string
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap supports errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with no wrapped cause.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap creates an Error of the given kind wrapping err.
func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Domain error templates (spec.md §7).
var (
	ErrErosionDiverged  = New(KindInvariant, "EROSION_DIVERGED", "erosion did not converge within max_iterations")
	ErrFlowTraceOverrun = New(KindInvariant, "FLOW_TRACE_OVERRUN", "flow trace exceeded W*W steps")
	ErrIONotFound       = New(KindIO, "IO_NOT_FOUND", "heightmap source not found")
	ErrIOParse          = New(KindIO, "IO_PARSE", "failed to parse heightmap source")
	ErrNaNElevation     = New(KindIO, "IO_NAN_ELEVATION", "loader produced a NaN elevation")
)
