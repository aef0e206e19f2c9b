package render

import "sync"

type glyphKey struct {
	r    rune
	size float32
}

// GlyphCache memoizes another GlyphSource by (rune, size).
type GlyphCache struct {
	src GlyphSource

	mu     sync.Mutex
	glyphs map[glyphKey]Glyph
	hits   uint64
	misses uint64
}

func NewGlyphCache(src GlyphSource) *GlyphCache {
	return &GlyphCache{src: src, glyphs: map[glyphKey]Glyph{}}
}

func (c *GlyphCache) Rasterize(r rune, size float32) Glyph {
	key := glyphKey{r: r, size: size}
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.glyphs[key]; ok {
		c.hits++
		return g
	}
	c.misses++
	g := c.src.Rasterize(r, size)
	c.glyphs[key] = g
	return g
}

func (c *GlyphCache) LineHeight(size float32) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.src.LineHeight(size)
}

// Stats returns the hit and miss counts so far.
func (c *GlyphCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
