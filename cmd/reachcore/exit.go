package main

import "errors"

// Exit codes.
const (
	exitOK                = 0
	exitInvalidInput      = 2
	exitCacheCorrupt      = 3
	exitKernelFailure     = 4
	exitValidationFailure = 5
)

// cliError pairs an error with the exit code its originating command wants
// to surface, since cobra's RunE only gives main a plain error.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func wrapExit(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// exitCodeFor extracts the exit code a command attached via wrapExit,
// defaulting to exitInvalidInput for any error that never went through it
// (e.g. cobra's own flag-parsing errors).
func exitCodeFor(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitInvalidInput
}
