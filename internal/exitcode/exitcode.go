// Package exitcode defines the fixed process exit codes for shipit.
// Every failure class has its own small integer so shell callers can
// distinguish what went wrong without parsing output.
package exitcode

import (
	"errors"
	"fmt"
)

const (
	// UncommittedChanges is returned when the working tree has tracked
	// modifications and a push was about to happen.
	UncommittedChanges = 2
	// PushFailed is returned when git push is rejected.
	PushFailed = 3
	// DownloadFailed is returned when the self-update download fails.
	DownloadFailed = 4
	// CopyFailed is returned when the self-update local copy fails.
	CopyFailed = 5
	// BuildFailed is returned for both build and test failures.
	BuildFailed = 6
	// MissingPR is returned when no target pull request can be resolved.
	MissingPR = 7
	// FastForwardFailed is returned when a fast-forward pull is impossible.
	FastForwardFailed = 8
	// MergeFailed is returned when both merge attempts are rejected.
	MergeFailed = 9
)

// ExitError carries a failure-class exit code alongside the underlying error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Errorf builds an ExitError with a formatted message.
func Errorf(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a failure-class code to an existing error.
// Returns nil if err is nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// From extracts the exit code from an error chain, defaulting to 1
// for errors that carry no failure class.
func From(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}
