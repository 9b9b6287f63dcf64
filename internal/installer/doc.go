// Package installer builds and runs the install invocation for each
// capability candidate. It plugs into the executor as an attempt, so
// install fallback follows the same chain as every other plan.
package installer
