package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/rook-computer/codeshot/internal/config"
	"github.com/rook-computer/codeshot/internal/syntax"
	"github.com/rook-computer/codeshot/internal/theme"
)

func draculaTheme(t *testing.T) theme.Theme {
	t.Helper()
	th, err := theme.Lookup("dracula")
	if err != nil {
		t.Fatal(err)
	}
	return th
}

func newTestRenderer(t *testing.T, cfg config.RenderConfig, seed uint64) *Renderer {
	t.Helper()
	r, err := New(draculaTheme(t), cfg,
		WithFont(embeddedFont(t, config.FontEngineOpenType)),
		WithRand(NewSeededRand(seed)),
		WithGlyphCache())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func anyPixel(img *image.RGBA, rect image.Rectangle, want theme.Color) bool {
	rect = rect.Intersect(img.Rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			p := img.RGBAAt(x, y)
			if p.R == want.R && p.G == want.G && p.B == want.B {
				return true
			}
		}
	}
	return false
}

func TestRenderRustSnippet(t *testing.T) {
	th := draculaTheme(t)
	lines := syntax.NewHighlighter(nil).Highlight("fn main() {}", "rust", th)
	r := newTestRenderer(t, config.Default(), 1)

	img, err := r.Render(lines)
	if err != nil {
		t.Fatal(err)
	}
	data, err := PNGBytes(img)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	// 1200 wide panel plus 2×80 padding, at 2x.
	if got := decoded.Bounds().Dx(); got != 2720 {
		t.Errorf("width = %d, want 2720", got)
	}
	// Line advance int(18 × 1.25) = 22; panel 22 + 2×64 + 40 = 190.
	if got := decoded.Bounds().Dy(); got != 190*2+2*160 {
		t.Errorf("height = %d, want %d", got, 190*2+2*160)
	}

	g := r.Geometry(len(lines))
	textBand := image.Rect(g.TextLeft, g.FirstBaseline-g.ScaledLineAdvance, g.Panel.Max.X, g.FirstBaseline+g.ScaledLineAdvance)
	if !anyPixel(img, textBand, th.Keyword) {
		t.Error("no keyword-colored pixels for fn")
	}
	if !anyPixel(img, textBand, th.Function) {
		t.Error("no function-colored pixels for main")
	}
	if !anyPixel(img, textBand, th.Punctuation) {
		t.Error("no punctuation-colored pixels for the brackets")
	}
	if !anyPixel(img, g.TitleBar, ControlClose) {
		t.Error("close control not drawn")
	}
	if !anyPixel(img, g.TitleBar, th.Background.Darken(0.1)) {
		t.Error("title bar not drawn")
	}
}

// boxSource draws every non-space rune as a solid 8x10 box with a 10px
// advance and records the runes it was asked for.
type boxSource struct {
	runes []rune
	sizes []float32
}

func (b *boxSource) Rasterize(r rune, size float32) Glyph {
	b.runes = append(b.runes, r)
	b.sizes = append(b.sizes, size)
	if r == ' ' {
		return Glyph{Advance: 10}
	}
	cov := make([]uint8, 8*10)
	for i := range cov {
		cov[i] = 0xFF
	}
	return Glyph{Coverage: cov, Width: 8, Height: 10, Advance: 10}
}

func (b *boxSource) LineHeight(size float32) int { return int(size) }

func TestRenderLineNumberGutter(t *testing.T) {
	th := draculaTheme(t)
	cfg := config.Default()
	cfg.LineNumbers = true
	src := &boxSource{}
	r, err := New(th, cfg, WithGlyphSource(src), WithRand(NewSeededRand(1)))
	if err != nil {
		t.Fatal(err)
	}
	lines := []syntax.Line{{Tokens: []syntax.Token{{Text: "fn", Color: th.Keyword}}}}
	img, err := r.Render(lines)
	if err != nil {
		t.Fatal(err)
	}

	if len(src.runes) < 4 || string(src.runes[:4]) != "001 " {
		t.Fatalf("first runes = %q, want %q", string(src.runes), "001 ")
	}
	for i, size := range src.sizes {
		if size != cfg.ScaledFontSize() {
			t.Errorf("rune %d rasterized at %v, want %v", i, size, cfg.ScaledFontSize())
		}
	}

	g := r.Geometry(len(lines))
	y := g.Baseline(0) - 5
	at := func(x int) theme.Color {
		p := img.RGBAAt(x, y)
		return theme.Color{R: p.R, G: p.G, B: p.B}
	}
	for i := range 3 {
		if got := at(g.TextLeft + i*10 + 4); got != th.Comment {
			t.Errorf("digit %d color = %v, want comment %v", i, got, th.Comment)
		}
	}
	tokenX := g.TextLeft + 40 + cfg.Scale(LineNumberGap)
	if got := at(tokenX + 4); got != th.Keyword {
		t.Errorf("first token color at x=%d = %v, want keyword %v", tokenX+4, got, th.Keyword)
	}
	for x := g.TextLeft + 30; x < tokenX; x++ {
		if got := at(x); got != th.Background {
			t.Errorf("gutter gap at x=%d = %v, want background", x, got)
		}
	}
}

func TestRenderRejectsOversizedCanvas(t *testing.T) {
	r, err := New(draculaTheme(t), config.Default(), WithGlyphSource(NoopGlyphSource{}), WithRand(NewSeededRand(1)))
	if err != nil {
		t.Fatal(err)
	}
	lines := make([]syntax.Line, 200_000)
	if _, err := r.Render(lines); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Render(200000 lines) = %v, want ErrInvalid", err)
	}
}

func TestRenderEmpty(t *testing.T) {
	r := newTestRenderer(t, config.Default(), 1)
	img, err := r.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	one := r.Geometry(1)
	if img.Rect != one.Canvas {
		t.Errorf("empty render bounds = %v, want one-line canvas %v", img.Rect, one.Canvas)
	}
	if img.Rect.Dy() <= 2*int(config.Default().ScaledPanelPadding()) {
		t.Errorf("empty render has no panel height: %v", img.Rect)
	}
}

func TestRenderIdempotent(t *testing.T) {
	th := draculaTheme(t)
	cfg := config.Default()
	cfg.LineNumbers = true
	title := "main.rs"
	cfg.WindowTitle = &title
	lines := syntax.NewHighlighter(nil).Highlight("fn main() {\n\tprintln!(\"hi\");\n}\n", "rust", th)

	render := func() []byte {
		img, err := newTestRenderer(t, cfg, 99).Render(lines)
		if err != nil {
			t.Fatal(err)
		}
		data, err := PNGBytes(img)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}
	if !bytes.Equal(render(), render()) {
		t.Error("renders with the same seed differ")
	}
}

func TestRenderWindowTitle(t *testing.T) {
	th := draculaTheme(t)
	cfg := config.Default()
	cfg.GradientBackdrop = false
	title := "main.rs"
	cfg.WindowTitle = &title
	r := newTestRenderer(t, cfg, 1)
	img, err := r.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !anyPixel(img, r.Geometry(0).TitleBar, th.Comment) {
		t.Error("window title not drawn in the comment color")
	}
}

func TestRenderSolidBackdropAndShadow(t *testing.T) {
	cfg := config.Default()
	cfg.GradientBackdrop = false
	cfg.DropShadow = false
	plain, err := newTestRenderer(t, cfg, 1).Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	bg := cfg.Background()
	if got := plain.RGBAAt(0, 0); got != bg.Pixel() {
		t.Errorf("corner = %v, want background_color %v", got, bg)
	}

	cfg.DropShadow = true
	r := newTestRenderer(t, cfg, 1)
	shadowed, err := r.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	g := r.Geometry(0)
	x, y := g.Panel.Min.X+g.Panel.Dx()/2, g.Panel.Max.Y+2
	if shadowed.RGBAAt(x, y).R >= plain.RGBAAt(x, y).R {
		t.Errorf("pixel below the panel not darkened: %v vs %v", shadowed.RGBAAt(x, y), plain.RGBAAt(x, y))
	}
}

func TestRenderSourceBadge(t *testing.T) {
	th := draculaTheme(t)
	cfg := config.Default()
	cfg.SourceURL = "https://example.com/snippet"
	r := newTestRenderer(t, cfg, 1)
	img, err := r.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	g := r.Geometry(0)
	corner := image.Rect(g.Panel.Max.X-g.ScaledPadding, g.Panel.Max.Y-g.ScaledPadding, g.Panel.Max.X, g.Panel.Max.Y)
	if !anyPixel(img, corner, th.Foreground) {
		t.Error("source badge not drawn")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.BackgroundColor = "#12"
	_, err := New(draculaTheme(t), cfg, WithGlyphSource(NoopGlyphSource{}))
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New error = %v, want ErrInvalid", err)
	}
}

func TestRenderWithoutChrome(t *testing.T) {
	cfg := config.Default()
	cfg.WindowControls = false
	r, err := New(draculaTheme(t), cfg, WithGlyphSource(NoopGlyphSource{}), WithRand(NewSeededRand(3)))
	if err != nil {
		t.Fatal(err)
	}
	g := r.Geometry(2)
	if !g.TitleBar.Empty() {
		t.Errorf("TitleBar = %v, want empty", g.TitleBar)
	}
	if g.FirstBaseline != g.Panel.Min.Y+g.ScaledPadding {
		t.Errorf("FirstBaseline = %d, want %d", g.FirstBaseline, g.Panel.Min.Y+g.ScaledPadding)
	}
	if _, err := r.Render(make([]syntax.Line, 2)); err != nil {
		t.Fatal(err)
	}
}
