package errors

import (
	"errors"
	"fmt"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, subprocess, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoCandidates indicates no package manager or runtime was detected,
	// so no installation or launch plan can be built.
	ErrNoCandidates = errors.New("no candidates detected")

	// ErrAllStrategiesFailed indicates every strategy in a plan, including
	// all fallbacks, failed to complete.
	ErrAllStrategiesFailed = errors.New("all strategies failed")

	// ErrStrategyFailed indicates a single install or launch attempt failed.
	// The executor treats this as non-fatal while fallbacks remain.
	ErrStrategyFailed = errors.New("strategy failed")

	// ErrNoWritableLocation indicates no config file location for a client
	// could be written to.
	ErrNoWritableLocation = errors.New("no writable config location")

	// ErrUnknownClient indicates the client kind is not in the supported set.
	ErrUnknownClient = errors.New("unknown client")

	// ErrNodeNotFound indicates Node.js was not found or its version is
	// below the supported minimum.
	ErrNodeNotFound = errors.New("node.js not found")

	// ErrInvalidMode indicates an unrecognized installation mode was requested.
	ErrInvalidMode = errors.New("invalid installation mode")

	// ErrProcessNotRunning indicates an operation on the launched server
	// process when no process is running.
	ErrProcessNotRunning = errors.New("server process not running")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Newf creates a new error from a format string.
func Newf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Is reports whether err matches target, mirroring the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
