//go:build unix

package cli

import (
	"fmt"
	"os"
)

func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open stdio log: %w", err)
	}
	defer f.Close()

	// Panics from any goroutine are written to fd 2, so the descriptors
	// themselves are replaced.
	if err := dup2(int(f.Fd()), int(os.Stdout.Fd())); err != nil {
		return err
	}
	if err := dup2(int(f.Fd()), int(os.Stderr.Fd())); err != nil {
		return err
	}
	return nil
}
