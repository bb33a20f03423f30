package main

import (
	"errors"

	"okuyorum-admin/admin"
)

// reportedError wraps a failure the feedback layer has already shown, so
// main only sets the exit code.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reported marks err as already shown. A declined confirmation is not a
// failure.
func reported(err error) error {
	if err == nil || errors.Is(err, admin.ErrCancelled) {
		return nil
	}
	return &reportedError{err: err}
}

func alreadyReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
