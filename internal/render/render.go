package render

// Glyph is one rasterized character.
// Coverage is row-major, Width × Height samples in 0..255.
// BearingX is the offset from the pen to the left edge of the bitmap.
// BearingY is the offset from the baseline to the bottom edge of the bitmap,
// positive upwards; descenders make it negative.
type Glyph struct {
	Coverage []uint8
	Width    int
	Height   int
	Advance  float32
	BearingX int
	BearingY int
}

// GlyphSource produces glyph bitmaps and line metrics for one font.
// Implementations are not required to be safe for concurrent use; every
// render owns its own source.
type GlyphSource interface {
	Rasterize(r rune, size float32) Glyph
	// LineHeight is the baseline-to-baseline distance at size, in pixels.
	LineHeight(size float32) int
}

// Rand is the random source used by the backdrop. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NoopGlyphSource draws nothing and advances nothing. It is useful for
// exercising layout without a font.
type NoopGlyphSource struct{}

func (NoopGlyphSource) Rasterize(rune, float32) Glyph { return Glyph{} }
func (NoopGlyphSource) LineHeight(size float32) int   { return fallbackLineHeight(size) }
