package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
	slogmulti "github.com/samber/slog-multi"
)

var (
	green = color.New(color.FgGreen, color.Bold).SprintFunc()
	red   = color.New(color.FgRed, color.Bold).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

// newLogger writes human readable records to w at level and, when logFile is
// set, every record down to debug as JSON lines to that file.
func newLogger(w io.Writer, level slog.Level, logFile string, extra ...slog.Handler) (*slog.Logger, func() error, error) {
	handlers := []slog.Handler{slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})}
	closer := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = f.Close
	}
	handlers = append(handlers, extra...)
	if len(handlers) == 1 {
		return slog.New(handlers[0]), closer, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// progressHandler prints one mark per finished render so batch runs show
// progress without the full log.
type progressHandler struct {
	mu *sync.Mutex
	w  io.Writer
}

func newProgressHandler(w io.Writer) *progressHandler {
	return &progressHandler{mu: &sync.Mutex{}, w: w}
}

func (h *progressHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (h *progressHandler) Handle(_ context.Context, r slog.Record) error {
	var mark string
	switch r.Message {
	case "rendered":
		mark = green(".")
	case "render failed":
		mark = red("x")
	default:
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, mark)
	return err
}

func (h *progressHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *progressHandler) WithGroup(string) slog.Handler { return h }
