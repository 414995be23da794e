// Package upscale contains the domain rules of the upscaling pipeline:
// parameter validation, output geometry and the error taxonomy.
package upscale

import (
	"errors"
)

// Error categories. Every failure in the pipeline wraps exactly one of
// these sentinels so callers can tell "retry with different input" apart
// from "fix permissions" and "fix the runtime environment".
var (
	// ErrInvalidArgument marks failures detectable without touching any
	// resource: bad scale factor, unrecognized interpolation method,
	// unsupported output extension, resolution ceiling exceeded.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a missing source path.
	ErrNotFound = errors.New("not found")

	// ErrWrongType marks a source or destination of the wrong kind,
	// such as a directory where a file is expected.
	ErrWrongType = errors.New("wrong type")

	// ErrAlreadyExists marks a destination that would be overwritten.
	ErrAlreadyExists = errors.New("already exists")

	// ErrPermission marks a destination directory that is not writable.
	ErrPermission = errors.New("permission denied")

	// ErrUnavailable marks a required external tool that is absent or
	// not runnable.
	ErrUnavailable = errors.New("required tool unavailable")

	// ErrCorruptInput marks a stream that opens but yields invalid
	// properties, an invalid frame, or no frames at all.
	ErrCorruptInput = errors.New("corrupt input")

	// ErrProcessing marks an internal failure of the resampling or
	// encoding backend, including resized-dimension mismatches.
	ErrProcessing = errors.New("processing failed")
)

// Process exit codes. Input validation, dependency and processing
// failures are distinguishable by exit status.
const (
	ExitOK         = 0
	ExitProcessing = 1
	ExitInput      = 2
	ExitDependency = 3
)

// ExitCode maps an error to the process exit status for its category.
// Unknown errors are reported as processing failures.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrWrongType),
		errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrPermission):
		return ExitInput
	case errors.Is(err, ErrUnavailable):
		return ExitDependency
	default:
		return ExitProcessing
	}
}
