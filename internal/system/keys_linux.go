//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const evKey = 0x01

// Linux input-event-codes.h
const (
	KeyEsc = 1
	KeyQ   = 16
	KeyF4  = 62
)

// DefaultExitKeys dismiss a framebuffer preview.
var DefaultExitKeys = []uint16{KeyEsc, KeyQ, KeyF4}

// WatchKeys reads evdev devices under /dev/input/event* and calls onPress
// once, the first time one of keys goes down. It returns false when no input
// device could be found, in which case only ctx ends the wait.
func WatchKeys(ctx context.Context, logger *slog.Logger, keys []uint16, onPress func()) bool {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("component", "input"))

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		logger.Info("no evdev devices found")
		return false
	}

	var once sync.Once
	fire := func(code uint16) {
		once.Do(func() {
			logger.Info("key pressed", slog.Int("code", int(code)))
			onPress()
		})
	}
	for _, p := range paths {
		go watchDevice(ctx, p, keys, fire)
	}
	return true
}

func watchDevice(ctx context.Context, path string, keys []uint16, fire func(uint16)) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	// input_event is a timeval followed by u16 type, u16 code and s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 8
	buf := make([]byte, 64*eventSize)

	for ctx.Err() == nil {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(fds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize:])
			code := binary.LittleEndian.Uint16(rec[tvSize+2:])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4:]))
			if typ == evKey && value == 1 && isKey(code, keys) {
				fire(code)
				return
			}
		}
	}
}

func isKey(code uint16, keys []uint16) bool {
	for _, k := range keys {
		if k == code {
			return true
		}
	}
	return false
}
