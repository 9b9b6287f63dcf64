// Package errors provides error handling conventions for the mcpup CLI.
//
// This package defines sentinel errors for the failure taxonomy used
// across detection, planning, execution, and configuration, plus an
// ExitError type for CLI exit code handling.
//
// # Failure taxonomy
//
// Detection misses (a runtime, manager, or config location not found)
// are never surfaced as errors; detectors return partial or empty
// results instead. The sentinels here cover the conditions that do
// propagate:
//
//   - [ErrStrategyFailed]: one install/launch attempt failed; non-fatal
//     while fallbacks remain
//   - [ErrAllStrategiesFailed]: primary and every fallback failed
//   - [ErrNoCandidates]: nothing was detected, so no plan is possible
//   - [ErrNoWritableLocation], [ErrUnknownClient]: configuration errors,
//     terminal for one client but never for a batch
//
// Callers check conditions with [errors.Is]:
//
//	if errors.Is(err, mcperrors.ErrNoCandidates) {
//	    // nothing to fall back to
//	}
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion for the CLI layer:
//
//	var exitErr *mcperrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
