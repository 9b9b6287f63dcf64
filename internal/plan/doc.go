// Package plan turns detected capabilities and a requested installation
// mode into an ordered strategy: one primary candidate plus ranked
// fallbacks, annotated with rough time, disk, and success estimates.
//
// A plan only ever references candidates that were actually detected;
// the planner fails with ErrNoCandidates when the pool is empty rather
// than inventing a strategy that cannot run.
package plan
