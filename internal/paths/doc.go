// Package paths centralizes filesystem path resolution for mcpup.
//
// It provides home directory and XDG base directory lookups, tilde
// expansion, and the locations of mcpup's own configuration and cache
// directories. Client-specific config file paths live in the clients
// package; this package only supplies the primitives they build on.
package paths
