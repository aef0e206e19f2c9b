//go:build !linux

package system

import (
	"context"
	"log/slog"
)

var DefaultExitKeys []uint16

// WatchKeys has no input backend outside Linux.
func WatchKeys(context.Context, *slog.Logger, []uint16, func()) bool { return false }
