package render

import (
	"image/color"

	"github.com/rook-computer/codeshot/internal/theme"
)

func blendPixel(bg color.RGBA, fg theme.Color, alpha uint8) color.RGBA {
	a := float32(alpha) / 255
	inv := 1 - a
	return color.RGBA{
		R: blendChannel(fg.R, bg.R, a, inv),
		G: blendChannel(fg.G, bg.G, a, inv),
		B: blendChannel(fg.B, bg.B, a, inv),
		A: 0xFF,
	}
}

func blendChannel(fg, bg uint8, a, inv float32) uint8 {
	return uint8(float32(float32(fg)*a) + float32(float32(bg)*inv))
}

// BlendGlyph composites g onto s with the pen at (penX, baseline).
// Glyphs on the same baseline share it regardless of their height.
func BlendGlyph(s *Surface, g Glyph, penX, baseline int, c theme.Color) {
	if g.Width <= 0 || g.Height <= 0 {
		return
	}
	left := penX + g.BearingX
	top := baseline - (g.Height + g.BearingY)
	for i, cov := range g.Coverage {
		if cov == 0 {
			continue
		}
		s.Blend(left+i%g.Width, top+i/g.Width, c, cov)
	}
}
