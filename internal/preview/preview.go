// Package preview shows a rendered snippet on a display device such as the
// Linux framebuffer.
package preview

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	xdraw "golang.org/x/image/draw"
)

const DefaultDevice = "/dev/fb0"

// ErrNoDevice is returned when the display cannot be opened.
var ErrNoDevice = errors.New("preview: display device unavailable")

// Display is a drawable output that must be closed after use.
type Display interface {
	draw.Image
	Close() error
}

// Options configure Show.
type Options struct {
	Device     string
	Background color.Color
	Logger     *slog.Logger
	// Open replaces the framebuffer opener, mainly in tests.
	Open func(path string) (Display, error)
	// Wait blocks until the preview should be dismissed. The default waits
	// for ctx or an exit key.
	Wait func(ctx context.Context) error
}

// Fit returns the largest rectangle with src's aspect ratio that fits in dst,
// centered. Images smaller than dst are not enlarged.
func Fit(src, dst image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	dw, dh := dst.Dx(), dst.Dy()
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return image.Rectangle{Min: dst.Min, Max: dst.Min}
	}
	w, h := sw, sh
	if w > dw || h > dh {
		// Compare sw/sh with dw/dh without floating point.
		if sw*dh > sh*dw {
			w, h = dw, max(1, sh*dw/sw)
		} else {
			w, h = max(1, sw*dh/sh), dh
		}
	}
	x := dst.Min.X + (dw-w)/2
	y := dst.Min.Y + (dh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Compose fills a canvas the size of bounds with bg and scales img into the
// fitted rectangle.
func Compose(bounds image.Rectangle, img image.Image, bg color.Color) *image.RGBA {
	canvas := image.NewRGBA(bounds)
	if bg == nil {
		bg = color.Black
	}
	draw.Draw(canvas, bounds, &image.Uniform{C: bg}, image.Point{}, draw.Src)
	target := Fit(img.Bounds(), bounds)
	if target.Empty() {
		return canvas
	}
	if target.Size() == img.Bounds().Size() {
		draw.Draw(canvas, target, img, img.Bounds().Min, draw.Over)
	} else {
		xdraw.CatmullRom.Scale(canvas, target, img, img.Bounds(), xdraw.Over, nil)
	}
	return canvas
}

// Blit copies canvas onto dst pixel by pixel. Framebuffer devices only
// implement Set, so this is the narrowest path that works for all of them.
func Blit(dst draw.Image, canvas *image.RGBA) {
	b := dst.Bounds().Intersect(canvas.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := canvas.RGBAAt(x, y)
			p.A = 0xff
			dst.Set(x, y, p)
		}
	}
}

// Show draws img on the display and blocks until Wait returns.
func Show(ctx context.Context, img image.Image, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	logger := opts.Logger.With(slog.String("component", "preview"))
	if opts.Device == "" {
		opts.Device = DefaultDevice
	}
	// The console is only switched for the real framebuffer.
	console := opts.Open == nil
	if console {
		opts.Open = openFramebuffer
	}
	if opts.Wait == nil {
		opts.Wait = func(ctx context.Context) error { return waitForExit(ctx, logger) }
	}

	dev, err := opts.Open(opts.Device)
	if err != nil {
		return errors.Join(ErrNoDevice, err)
	}
	defer dev.Close()

	bounds := dev.Bounds()
	logger.Info("display open", slog.String("device", opts.Device), slog.Int("width", bounds.Dx()), slog.Int("height", bounds.Dy()))

	if console {
		defer prepareConsole(logger)()
	}

	Blit(dev, Compose(bounds, img, opts.Background))
	return opts.Wait(ctx)
}
