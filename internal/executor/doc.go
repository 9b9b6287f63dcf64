// Package executor carries out installation plans with retry-and-
// fallback semantics.
//
// The executor is polymorphic over the action being performed: callers
// pass an [Attempt] closure (install a package, start a server) and the
// same loop drives both. Each attempt is bounded by a timeout, failures
// are logged as non-fatal while fallbacks remain, and only exhaustion
// of the whole plan surfaces as an error.
package executor
