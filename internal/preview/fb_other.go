//go:build !linux

package preview

import (
	"context"
	"errors"
	"log/slog"
)

func openFramebuffer(string) (Display, error) { return nil, errors.ErrUnsupported }

func prepareConsole(*slog.Logger) func() { return func() {} }

func waitForExit(ctx context.Context, _ *slog.Logger) error {
	<-ctx.Done()
	return nil
}
