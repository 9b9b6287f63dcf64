// Package logging provides structured logging for the mcpup CLI built on
// log/slog.
//
// It offers a TTY-optimized text handler with color support, a JSON
// handler for machine consumption, and a multi-handler for writing to
// several sinks (e.g., terminal plus a log file) simultaneously.
//
// Components receive their logger explicitly at construction; there is
// no package-level mutable sink beyond slog's own default, which the CLI
// layer configures once at startup.
package logging
