package system

import "os"

// IsTerminal reports whether f is attached to a terminal. The CLI uses it to
// refuse writing PNG bytes to an interactive stdout.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminal(f)
}
