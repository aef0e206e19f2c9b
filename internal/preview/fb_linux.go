//go:build linux

package preview

import (
	"context"
	"log/slog"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/codeshot/internal/system"
)

type fbDisplay struct{ *fb.Device }

func (d fbDisplay) Close() error {
	d.Device.Close()
	return nil
}

func openFramebuffer(path string) (Display, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	return fbDisplay{dev}, nil
}

func prepareConsole(logger *slog.Logger) func() {
	graphics := system.SetGraphicsMode(logger) == nil
	_ = system.HideCursor(logger)
	return func() {
		if graphics {
			_ = system.RestoreTextMode(logger)
		}
		_ = system.ShowCursor(logger)
	}
}

func waitForExit(ctx context.Context, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if system.WatchKeys(ctx, logger, system.DefaultExitKeys, cancel) {
		logger.Info("press Esc, Q or F4 to close")
	}
	<-ctx.Done()
	return nil
}
