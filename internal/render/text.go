package render

import (
	"unicode"

	"github.com/rook-computer/codeshot/internal/theme"
)

// TextPainter lays glyphs left to right along a baseline.
type TextPainter struct {
	Source   GlyphSource
	Size     float32
	TabWidth int
}

func (p TextPainter) tabAdvance() int {
	if p.TabWidth <= 0 {
		return 0
	}
	return p.TabWidth * int(p.Source.Rasterize(' ', p.Size).Advance)
}

// Draw blends text onto s starting at (x, baseline) and returns how far the
// pen moved. Tabs advance by TabWidth spaces; other control characters are
// skipped.
func (p TextPainter) Draw(s *Surface, text string, x, baseline int, c theme.Color) int {
	pen := x
	for _, r := range text {
		if r == '\t' {
			pen += p.tabAdvance()
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		g := p.Source.Rasterize(r, p.Size)
		if s != nil {
			BlendGlyph(s, g, pen, baseline, c)
		}
		pen += int(g.Advance)
	}
	return pen - x
}

// Measure returns the advance of text without drawing it.
func (p TextPainter) Measure(text string) int {
	return p.Draw(nil, text, 0, 0, theme.Color{})
}
