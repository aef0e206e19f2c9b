package render

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/rook-computer/codeshot/internal/config"
	"github.com/rook-computer/codeshot/internal/render/layout"
	"github.com/rook-computer/codeshot/internal/syntax"
	"github.com/rook-computer/codeshot/internal/theme"
)

// Renderer composes one editor panel image. A Renderer is cheap to build and
// is meant to be used for a single render; it is not safe for concurrent use.
type Renderer struct {
	theme theme.Theme
	cfg   config.RenderConfig

	font       *Font
	glyphs     GlyphSource
	rng        Rand
	logger     *slog.Logger
	glyphCache bool
}

type Option func(*Renderer) error

// WithFont uses an already loaded font instead of searching for one.
func WithFont(f *Font) Option {
	return func(r *Renderer) error {
		r.font = f
		return nil
	}
}

// WithGlyphSource bypasses font loading entirely.
func WithGlyphSource(gs GlyphSource) Option {
	return func(r *Renderer) error {
		r.glyphs = gs
		return nil
	}
}

// WithRand fixes the backdrop random source.
func WithRand(rng Rand) Option {
	return func(r *Renderer) error {
		r.rng = rng
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) error {
		if l != nil {
			r.logger = l
		}
		return nil
	}
}

// WithGlyphCache memoizes rasterized glyphs for the lifetime of the renderer.
func WithGlyphCache() Option {
	return func(r *Renderer) error {
		r.glyphCache = true
		return nil
	}
}

// New validates cfg and prepares the glyph source. Font loading happens here,
// so a missing font fails before any drawing.
func New(th theme.Theme, cfg config.RenderConfig, opts ...Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{
		theme:  th,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With(slog.String("component", "render"))

	if r.glyphs == nil {
		if r.font == nil {
			f, err := LoadFont(FontOptions{
				Path:   cfg.FontPath,
				Family: cfg.FontFamily,
				Engine: cfg.FontEngine,
				Logger: r.logger,
			})
			if err != nil {
				return nil, err
			}
			r.font = f
		}
		gs := r.font.NewGlyphSource()
		for _, size := range []float32{cfg.FontSize, cfg.ScaledFontSize()} {
			if err := gs.Prepare(size); err != nil {
				return nil, err
			}
		}
		r.glyphs = gs
	}
	if r.glyphCache {
		r.glyphs = NewGlyphCache(r.glyphs)
	}
	if r.rng == nil {
		r.rng = NewRand()
	}
	return r, nil
}

// Geometry returns the layout lines would get.
func (r *Renderer) Geometry(lineCount int) layout.Geometry {
	return layout.Compute(r.cfg, lineCount, r.glyphs.LineHeight(r.cfg.FontSize))
}

// Render draws the backdrop, the panel, the window chrome and the text, in
// that order, and returns the finished image.
func (r *Renderer) Render(lines []syntax.Line) (*image.RGBA, error) {
	g := r.Geometry(len(lines))
	if err := g.CheckSize(); err != nil {
		return nil, err
	}
	if g.Canvas.Empty() {
		return nil, fmt.Errorf("empty canvas %v", g.Canvas)
	}
	s := NewSurface(g.Canvas.Dx(), g.Canvas.Dy())

	if r.cfg.GradientBackdrop {
		b := PaintBackdrop(s, r.theme.Background, r.cfg.NoiseEffect, r.rng)
		r.logger.Debug("backdrop painted",
			slog.String("kind", b.Kind.String()),
			slog.String("from", b.From.Hex()),
			slog.String("to", b.To.Hex()))
	} else {
		s.Fill(r.cfg.Background())
	}

	if r.cfg.DropShadow {
		r.drawShadow(s, g)
	}
	FillRoundedRect(s, g.Panel, g.Radius, r.theme.Background, false)

	if r.cfg.WindowControls {
		r.drawChrome(s, g)
	}
	r.drawLines(s, g, lines)

	if r.cfg.SourceURL != "" {
		if err := r.drawBadge(s, g); err != nil {
			r.logger.Warn("source badge skipped", slog.String("error", err.Error()))
		}
	}

	r.logger.Debug("rendered",
		slog.Int("width", s.Width()),
		slog.Int("height", s.Height()),
		slog.Int("lines", len(lines)))
	if c, ok := r.glyphs.(*GlyphCache); ok {
		hits, misses := c.Stats()
		r.logger.Debug("glyph cache", slog.Uint64("hits", hits), slog.Uint64("misses", misses))
	}
	return s.Image(), nil
}

func (r *Renderer) drawShadow(s *Surface, g layout.Geometry) {
	if g.Panel.Min.X <= 0 {
		return
	}
	offset := r.cfg.Scale(shadowOffset)
	step := max(1, r.cfg.Scale(shadowSpread))
	black := theme.Color{}
	for i := shadowLayers; i >= 1; i-- {
		rect := layout.Offset(g.Panel, 0, offset, i*step)
		BlendRoundedRect(s, rect, g.Radius+float32(i*step), black, shadowAlpha)
	}
}

func (r *Renderer) drawChrome(s *Surface, g layout.Geometry) {
	FillRoundedRect(s, g.TitleBar, g.Radius, r.theme.Background.Darken(titleBarDarken), true)

	radius := r.cfg.Scale(ControlRadius)
	spacing := r.cfg.Scale(ControlSpacing)
	cy := g.TitleBar.Min.Y + g.TitleBar.Dy()/2
	x := g.Panel.Min.X + int(r.cfg.Padding)/2
	for i, c := range []theme.Color{ControlClose, ControlMinimize, ControlZoom} {
		FillCircle(s, x+i*spacing, cy, radius, c)
	}

	if title := r.cfg.Title(); title != "" {
		p := r.painter()
		width := p.Measure(title)
		left := g.TitleBar.Min.X + (g.TitleBar.Dx()-width)/2
		baseline := cy + int(r.cfg.ScaledFontSize()*titleBaselineFactor)
		p.Draw(s, title, left, baseline, r.theme.Comment)
	}
}

func (r *Renderer) painter() TextPainter {
	return TextPainter{
		Source:   r.glyphs,
		Size:     r.cfg.ScaledFontSize(),
		TabWidth: int(r.cfg.TabWidth),
	}
}

func (r *Renderer) drawLines(s *Surface, g layout.Geometry, lines []syntax.Line) {
	p := r.painter()
	gap := r.cfg.Scale(LineNumberGap)
	for i, line := range lines {
		baseline := g.Baseline(i)
		x := g.TextLeft
		if r.cfg.LineNumbers {
			x += p.Draw(s, fmt.Sprintf("%03d ", i+1), x, baseline, r.theme.Comment)
			x += gap
		}
		for _, tok := range line.Tokens {
			x += p.Draw(s, tok.Text, x, baseline, tok.Color)
		}
	}
}

// drawBadge places a QR code of the source URL in the bottom-right padding.
func (r *Renderer) drawBadge(s *Surface, g layout.Geometry) error {
	size := g.ScaledPadding * 3 / 4
	if size < 16 {
		return fmt.Errorf("padding too small for a badge (%dpx)", g.ScaledPadding)
	}
	img, err := GenerateQRCodeImage(r.cfg.SourceURL, size, r.theme.Foreground, r.theme.Background)
	if err != nil {
		return err
	}
	area := layout.AnchorBottomRight(layout.Inset(g.Body, g.ScaledPadding/8), size, size)
	DrawImageInRect(s, area, img)
	return nil
}
