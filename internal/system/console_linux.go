//go:build linux

package system

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A
)

var consolePaths = []string{"/dev/tty", "/dev/tty0"}

// SetGraphicsMode switches the active virtual terminal to graphics mode so the
// text cursor does not draw over a framebuffer preview.
func SetGraphicsMode(logger *slog.Logger) error {
	return logResult(logger, "KD_GRAPHICS", setConsoleMode(kdGraphics))
}

// RestoreTextMode undoes SetGraphicsMode.
func RestoreTextMode(logger *slog.Logger) error {
	return logResult(logger, "KD_TEXT", setConsoleMode(kdText))
}

func HideCursor(logger *slog.Logger) error {
	return logResult(logger, "hide cursor", writeConsole("\x1b[?25l"))
}

func ShowCursor(logger *slog.Logger) error {
	return logResult(logger, "show cursor", writeConsole("\x1b[?25h"))
}

func setConsoleMode(mode int) error {
	var lastErr error
	for _, p := range consolePaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE on %s: %w", p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeConsole(s string) error {
	var lastErr error
	for _, p := range consolePaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write console: %w", lastErr)
}

func logResult(logger *slog.Logger, op string, err error) error {
	if logger == nil {
		return err
	}
	if err != nil {
		logger.Warn(op+" failed", slog.String("component", "console"), slog.String("error", err.Error()))
	} else {
		logger.Debug(op, slog.String("component", "console"))
	}
	return err
}
