package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is backed by a terminal. Interactive-only
// output such as the install spinner keys off this, so anything without
// an Fd method (buffers, pipes wrapped in other writers) counts as not
// a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether w should receive ANSI color codes. The
// console handler checks this once at construction, so redirecting
// stderr mid-run is not picked up.
func SupportsColor(w io.Writer) bool {
	return supportsColor(w, IsTTY(w))
}

// supportsColor is split out so tests can force the TTY answer.
func supportsColor(w io.Writer, isTTY bool) bool {
	// https://no-color.org: any value, even empty, disables color.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
