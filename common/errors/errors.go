// Package errors attaches process exit codes to errors.
package errors

import (
	"github.com/pkg/errors"
)

type ExitCodeError struct {
	code ExitCode
	error
}

// NewError returns nil for a nil err. Don't return its result through an
// error interface without checking err first.
func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

func (e *ExitCodeError) Unwrap() error {
	return e.error
}

// ExitCodeOf is the code of the outermost ExitCodeError in err's chain,
// GenericFailureExitCode if there is none, and 0 for a nil err.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return 0
	}
	var e *ExitCodeError
	if errors.As(err, &e) {
		return e.GetExitCode()
	}
	return GenericFailureExitCode
}
