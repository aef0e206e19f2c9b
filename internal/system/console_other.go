//go:build !linux

package system

import (
	"errors"
	"log/slog"
)

func SetGraphicsMode(*slog.Logger) error { return errors.ErrUnsupported }
func RestoreTextMode(*slog.Logger) error { return errors.ErrUnsupported }
func HideCursor(*slog.Logger) error      { return errors.ErrUnsupported }
func ShowCursor(*slog.Logger) error      { return errors.ErrUnsupported }
