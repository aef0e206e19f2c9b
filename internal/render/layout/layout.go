package layout

import (
	"fmt"
	"image"

	"github.com/rook-computer/codeshot/internal/config"
)

// ChromeHeight is the logical height of the window title bar.
const ChromeHeight = 40

// Geometry is the resolved placement of one render, in output pixels unless
// noted otherwise.
type Geometry struct {
	// Logical quantities, before export scaling.
	LineAdvance   int
	ContentHeight int
	PanelHeight   int

	Canvas   image.Rectangle
	Panel    image.Rectangle
	TitleBar image.Rectangle // empty without window controls
	Body     image.Rectangle // panel below the title bar

	ScaledPadding     int
	ScaledLineAdvance int
	FirstBaseline     int
	TextLeft          int
	Radius            float32
}

// Baseline returns the baseline of the zero-based line i.
func (g Geometry) Baseline(i int) int {
	return g.FirstBaseline + i*g.ScaledLineAdvance
}

// Compute lays out lineCount lines whose unscaled base line height is
// baseLineHeight. Content never collapses below one line.
func Compute(cfg config.RenderConfig, lineCount, baseLineHeight int) Geometry {
	var g Geometry
	g.LineAdvance = int(float32(baseLineHeight) * cfg.LineHeight)

	chrome := 0
	if cfg.WindowControls {
		chrome = ChromeHeight
	}
	if lineCount > 0 {
		g.ContentHeight = lineCount * g.LineAdvance
	} else {
		g.ContentHeight = g.LineAdvance
	}
	g.PanelHeight = g.ContentHeight + 2*int(cfg.Padding) + chrome

	pp := int(cfg.ScaledPanelPadding())
	pw := int(cfg.ActualWidth())
	ph := int(float32(g.PanelHeight) * cfg.ExportSize)
	if cfg.Height != nil {
		ph = int(cfg.ActualHeight(0))
	}

	g.Canvas = image.Rect(0, 0, pw+2*pp, ph+2*pp)
	g.Panel = image.Rect(pp, pp, pp+pw, pp+ph)

	scaledChrome := 0
	if cfg.WindowControls {
		scaledChrome = cfg.Scale(ChromeHeight)
	}
	g.TitleBar, g.Body = SplitHorizontal(g.Panel, scaledChrome)

	g.ScaledPadding = int(cfg.ScaledPadding())
	g.ScaledLineAdvance = int(float32(g.LineAdvance) * cfg.ExportSize)
	g.FirstBaseline = g.Panel.Min.Y + scaledChrome + g.ScaledPadding
	g.TextLeft = g.Panel.Min.X + g.ScaledPadding
	g.Radius = cfg.BorderRadius * cfg.ExportSize
	return g
}

// CheckSize rejects a canvas over config.MaxCanvasPixels, so oversized input
// fails before any pixel buffer is allocated.
func (g Geometry) CheckSize() error {
	w, h := int64(g.Canvas.Dx()), int64(g.Canvas.Dy())
	if w*h > config.MaxCanvasPixels {
		return fmt.Errorf("%w: canvas %dx%d exceeds %d pixels", config.ErrInvalid, w, h, config.MaxCanvasPixels)
	}
	return nil
}

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	topHeightPx = clamp(topHeightPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// AnchorBottomRight returns a rectangle of size (widthPx,heightPx) placed in
// the bottom-right of rect.
func AnchorBottomRight(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = clamp(widthPx, 0, rect.Dx())
	heightPx = clamp(heightPx, 0, rect.Dy())
	return image.Rect(rect.Max.X-widthPx, rect.Max.Y-heightPx, rect.Max.X, rect.Max.Y)
}

// Offset moves rect by (dx, dy) and grows it by grow on every side.
func Offset(rect image.Rectangle, dx, dy, grow int) image.Rectangle {
	rect = rect.Add(image.Pt(dx, dy))
	return Normalize(image.Rect(rect.Min.X-grow, rect.Min.Y-grow, rect.Max.X+grow, rect.Max.Y+grow))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
