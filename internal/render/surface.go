package render

import (
	"image"
	"image/draw"

	"github.com/rook-computer/codeshot/internal/theme"
)

// Surface is an owned RGBA canvas with bounds-checked access. Writes outside
// the canvas are ignored.
type Surface struct {
	img *image.RGBA
}

func NewSurface(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the backing image. The surface must not be drawn on after
// the image has been handed off.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Bounds() image.Rectangle { return s.img.Rect }
func (s *Surface) Width() int              { return s.img.Rect.Dx() }
func (s *Surface) Height() int             { return s.img.Rect.Dy() }

func (s *Surface) inBounds(x, y int) bool {
	return image.Pt(x, y).In(s.img.Rect)
}

// Fill paints every pixel with c.
func (s *Surface) Fill(c theme.Color) {
	draw.Draw(s.img, s.img.Rect, image.NewUniform(c.Pixel()), image.Point{}, draw.Src)
}

// Set writes an opaque pixel.
func (s *Surface) Set(x, y int, c theme.Color) {
	if !s.inBounds(x, y) {
		return
	}
	s.img.SetRGBA(x, y, c.Pixel())
}

// At returns the color at (x, y), or black outside the canvas.
func (s *Surface) At(x, y int) theme.Color {
	if !s.inBounds(x, y) {
		return theme.Color{}
	}
	p := s.img.RGBAAt(x, y)
	return theme.Color{R: p.R, G: p.G, B: p.B}
}

// Blend composites c over the pixel at (x, y) with the given coverage.
// The result is always opaque.
func (s *Surface) Blend(x, y int, c theme.Color, alpha uint8) {
	if alpha == 0 || !s.inBounds(x, y) {
		return
	}
	if alpha == 255 {
		s.img.SetRGBA(x, y, c.Pixel())
		return
	}
	bg := s.img.RGBAAt(x, y)
	s.img.SetRGBA(x, y, blendPixel(bg, c, alpha))
}
