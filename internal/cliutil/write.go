// Package cliutil holds output helpers shared by the schemagen commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. A failed write is reported on
// stderr rather than returned; command output is best effort.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteSection writes a counted list of report lines:
//
//	Generation Issues (2):
//	  ⚠ Event.payload: OneOf composition mapped to any
//	  ℹ Event.pair: tuple mapped to []any
//
// followed by a blank line. An empty list writes nothing.
func WriteSection[T any](w io.Writer, heading string, items []T, line func(T) string) {
	if len(items) == 0 {
		return
	}
	Writef(w, "%s (%d):\n", heading, len(items))
	for _, item := range items {
		Writef(w, "  %s\n", line(item))
	}
	Writef(w, "\n")
}
