package render

import (
	"image"

	"github.com/rook-computer/codeshot/internal/theme"
)

// ClampRadius limits radius to half of the smaller side.
func ClampRadius(w, h int, radius float32) float32 {
	limit := float32(min(w, h)) / 2
	if radius > limit {
		radius = limit
	}
	if radius < 0 {
		radius = 0
	}
	return radius
}

// InsideRoundedRect reports whether the pixel whose top-left corner is
// (x, y) lies in a w × h rectangle with corners rounded by r.
//
// Pixels outside both straight bands belong to exactly one corner: the left
// corners own x < r and the top corners own y < r, everything else goes to
// the right or bottom corner. A pixel on the arc (distance exactly r) is
// inside.
func InsideRoundedRect(x, y, w, h, r float32, topOnly bool) bool {
	if x >= r && x <= w-r {
		return true
	}
	if topOnly {
		if y >= r {
			return true
		}
	} else if y >= r && y <= h-r {
		return true
	}

	cx := w - r
	if x < r {
		cx = r
	}
	cy := h - r
	if y < r || topOnly {
		cy = r
	}
	dx := x - cx
	dy := y - cy
	return float32(dx*dx)+float32(dy*dy) <= r*r
}

func eachRoundedRectPixel(s *Surface, rect image.Rectangle, radius float32, topOnly bool, fn func(px, py int)) {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	r := ClampRadius(w, h, radius)
	clip := rect.Intersect(s.Bounds())
	for py := clip.Min.Y; py < clip.Max.Y; py++ {
		for px := clip.Min.X; px < clip.Max.X; px++ {
			if InsideRoundedRect(float32(px-rect.Min.X), float32(py-rect.Min.Y), float32(w), float32(h), r, topOnly) {
				fn(px, py)
			}
		}
	}
}

// FillRoundedRect fills rect with c, rounding all four corners, or only the
// top two when topOnly is set. The radius is in output pixels.
func FillRoundedRect(s *Surface, rect image.Rectangle, radius float32, c theme.Color, topOnly bool) {
	eachRoundedRectPixel(s, rect, radius, topOnly, func(px, py int) {
		s.Set(px, py, c)
	})
}

// BlendRoundedRect is FillRoundedRect with a constant coverage.
func BlendRoundedRect(s *Surface, rect image.Rectangle, radius float32, c theme.Color, alpha uint8) {
	eachRoundedRectPixel(s, rect, radius, false, func(px, py int) {
		s.Blend(px, py, c, alpha)
	})
}

// FillCircle fills the disc of radius r centered on (cx, cy).
func FillCircle(s *Surface, cx, cy, r int, c theme.Color) {
	if r < 0 {
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				s.Set(cx+dx, cy+dy, c)
			}
		}
	}
}
