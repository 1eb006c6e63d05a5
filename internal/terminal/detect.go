// Package terminal reports whether the CLI is talking to a person.
package terminal

import (
	"os"

	"golang.org/x/term"
)

var isTerminal = term.IsTerminal

// IsInteractive reports whether stdin and stdout are both interactive terminals.
func IsInteractive() bool {
	return IsInteractiveFiles(os.Stdin, os.Stdout)
}

// IsInteractiveFiles reports whether in and out are both terminals.
func IsInteractiveFiles(in *os.File, out *os.File) bool {
	if in == nil || out == nil {
		return false
	}
	return isTerminal(int(in.Fd())) && isTerminal(int(out.Fd()))
}
