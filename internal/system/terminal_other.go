//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package system

import "os"

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
