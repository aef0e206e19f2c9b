package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/codeshot/internal/assets"
	"github.com/rook-computer/codeshot/internal/config"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrNoFont is returned when no font in the search order can be loaded.
var ErrNoFont = errors.New("no usable font found")

// DefaultSearchPaths are tried in order after an explicit font path.
var DefaultSearchPaths = []string{
	"./fonts/jet-brains-mono-regular.ttf",
	"./fonts/fira-code-regular.ttf",
	"/System/Library/Fonts/Monaco.ttf",
	"/System/Library/Fonts/Menlo.ttc",
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/Windows/Fonts/consola.ttf",
}

const embeddedFontName = "embedded:gomono"

// Font is parsed font data. It is read-only once loaded and may be shared
// between renders; faces are created per render through NewGlyphSource.
type Font struct {
	Name   string
	Engine string

	otf *opentype.Font
	ttf *truetype.Font
}

// ParseFont parses data with the given engine. The opentype engine accepts
// font collections and uses their first face.
func ParseFont(name string, data []byte, engine string) (*Font, error) {
	f := &Font{Name: name, Engine: engine}
	switch engine {
	case config.FontEngineFreeType:
		tt, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s with freetype: %w", name, err)
		}
		f.ttf = tt
	case "", config.FontEngineOpenType:
		f.Engine = config.FontEngineOpenType
		otf, err := parseOpenType(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s with opentype: %w", name, err)
		}
		f.otf = otf
	default:
		return nil, fmt.Errorf("unknown font engine %q", engine)
	}
	return f, nil
}

func parseOpenType(data []byte) (*opentype.Font, error) {
	if bytes.HasPrefix(data, []byte("ttcf")) {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		return coll.Font(0)
	}
	return opentype.Parse(data)
}

// FontOptions controls LoadFont.
type FontOptions struct {
	// Path is tried first; a failure here is fatal.
	Path string
	// Family moves search paths whose file name matches it to the front.
	Family      string
	Engine      string
	SearchPaths []string
	// NoEmbedded disables the built-in last-resort font.
	NoEmbedded bool
	Logger     *slog.Logger
}

// LoadFont returns the first font that loads from opts.Path, the search
// paths and finally the embedded font.
func LoadFont(opts FontOptions) (*Font, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With(slog.String("component", "font"))

	if opts.Path != "" {
		f, err := loadFontFile(opts.Path, opts.Engine)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoFont, err)
		}
		logger.Debug("font loaded", slog.String("path", opts.Path), slog.String("engine", f.Engine))
		return f, nil
	}

	paths := opts.SearchPaths
	if paths == nil {
		paths = DefaultSearchPaths
	}
	for _, path := range orderByFamily(paths, opts.Family) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		f, err := loadFontFile(path, opts.Engine)
		if err != nil {
			logger.Warn("skipping font", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("font loaded", slog.String("path", path), slog.String("engine", f.Engine))
		return f, nil
	}

	if opts.NoEmbedded {
		return nil, ErrNoFont
	}
	f, err := ParseFont(embeddedFontName, assets.FontTTF, opts.Engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoFont, err)
	}
	logger.Debug("using embedded font", slog.String("engine", f.Engine))
	return f, nil
}

func loadFontFile(path, engine string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFont(path, data, engine)
}

func familyKey(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

func orderByFamily(paths []string, family string) []string {
	out := append([]string(nil), paths...)
	key := familyKey(family)
	if key == "" {
		return out
	}
	matches := func(p string) bool {
		return strings.Contains(familyKey(filepath.Base(p)), key)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return matches(out[i]) && !matches(out[j])
	})
	return out
}

// NewGlyphSource returns a face-backed source. Faces are created per point
// size, either up front with Prepare or on first use.
func (f *Font) NewGlyphSource() *FaceSource {
	return &FaceSource{font: f, faces: map[float32]font.Face{}}
}

func (f *Font) newFace(size float32) (font.Face, error) {
	if f.ttf == nil && f.otf == nil {
		return nil, fmt.Errorf("font %q has no parsed data", f.Name)
	}
	if f.ttf != nil {
		return truetype.NewFace(f.ttf, &truetype.Options{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		}), nil
	}
	return opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// FaceSource implements GlyphSource on x/image font faces.
// It is not safe for concurrent use.
type FaceSource struct {
	font  *Font
	faces map[float32]font.Face
}

// Prepare creates the face for size and reports why it cannot be built.
func (s *FaceSource) Prepare(size float32) error {
	if _, ok := s.faces[size]; ok {
		return nil
	}
	face, err := s.font.newFace(size)
	if err != nil {
		return fmt.Errorf("%w: face at %vpt: %w", ErrNoFont, size, err)
	}
	s.faces[size] = face
	return nil
}

// face returns nil only for a size whose face could not be built; Prepare
// reports that error.
func (s *FaceSource) face(size float32) font.Face {
	if face, ok := s.faces[size]; ok {
		return face
	}
	if err := s.Prepare(size); err != nil {
		return nil
	}
	return s.faces[size]
}

func (s *FaceSource) Rasterize(r rune, size float32) Glyph {
	face := s.face(size)
	if face == nil {
		return Glyph{}
	}
	dr, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		adv, _ = face.GlyphAdvance(r)
		return Glyph{Advance: float32(adv) / 64}
	}
	g := Glyph{
		Width:    dr.Dx(),
		Height:   dr.Dy(),
		Advance:  float32(adv) / 64,
		BearingX: dr.Min.X,
		BearingY: -dr.Max.Y,
	}
	g.Coverage = copyCoverage(mask, maskp, g.Width, g.Height)
	return g
}

// copyCoverage copies the mask since faces reuse their buffers.
func copyCoverage(mask image.Image, at image.Point, w, h int) []uint8 {
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]uint8, w*h)
	if alpha, ok := mask.(*image.Alpha); ok {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out[y*w+x] = alpha.AlphaAt(at.X+x, at.Y+y).A
			}
		}
		return out
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := mask.At(at.X+x, at.Y+y).RGBA()
			out[y*w+x] = uint8(a >> 8)
		}
	}
	return out
}

// LineHeight is the smaller of the font's ascent plus descent and 0.95 of
// the size, rounded up.
func (s *FaceSource) LineHeight(size float32) int {
	face := s.face(size)
	if face == nil {
		return fallbackLineHeight(size)
	}
	m := face.Metrics()
	natural := float32(m.Ascent+m.Descent) / 64
	if natural <= 0 {
		return fallbackLineHeight(size)
	}
	return int(math.Ceil(float64(min(natural, float32(size*0.95)))))
}

// Close releases the cached faces.
func (s *FaceSource) Close() error {
	var errs []error
	for size, face := range s.faces {
		if face != nil {
			errs = append(errs, face.Close())
		}
		delete(s.faces, size)
	}
	return errors.Join(errs...)
}

func fallbackLineHeight(size float32) int {
	return int(math.Ceil(float64(float32(size * 0.95))))
}
