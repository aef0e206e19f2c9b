package app

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	stackerrors "github.com/k1LoW/errors"
	"github.com/rook-computer/codeshot/internal/config"
	"github.com/rook-computer/codeshot/internal/render"
	"github.com/rook-computer/codeshot/internal/state"
	"github.com/rook-computer/codeshot/internal/syntax"
	"github.com/rook-computer/codeshot/internal/theme"
)

// ErrRenderFailed is the single failure callers of Render observe. The
// underlying cause stays reachable through errors.Is.
var ErrRenderFailed = errors.New("render failed")

const dataURIPrefix = "data:image/png;base64,"

type fontKey struct {
	path, family, engine string
}

// Service is the rendering boundary shared by the CLI and the HTTP API.
// It is safe for concurrent use; parsed fonts are shared between calls and
// everything else is per call.
type Service struct {
	Store  *state.Store
	Logger *slog.Logger
	// Rand, when set, supplies the backdrop random source of each render.
	Rand func() render.Rand
	// SearchPaths overrides the font search order.
	SearchPaths []string
	GlyphCache  bool

	highlighter *syntax.Highlighter

	mu    sync.Mutex
	fonts map[fontKey]*render.Font
}

func New(store *state.Store, logger *slog.Logger) *Service {
	if store == nil {
		store = state.NewStore()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With(slog.String("component", "app"))
	return &Service{
		Store:       store,
		Logger:      logger,
		highlighter: syntax.NewHighlighter(logger),
		fonts:       map[fontKey]*render.Font{},
	}
}

// ThemeNames lists the catalog in its fixed order.
func (s *Service) ThemeNames() []string { return theme.Names() }

func (s *Service) IsLanguageSupported(language string) bool {
	return syntax.IsLanguageSupported(language)
}

// IsRequestError reports whether err was caused by the caller's input rather
// than by the renderer.
func IsRequestError(err error) bool {
	return errors.Is(err, config.ErrInvalid) || errors.Is(err, theme.ErrUnknown)
}

// Render returns the PNG bytes of code drawn with the named theme. It never
// returns a partial image: any failure, including a panic while drawing,
// comes back as ErrRenderFailed.
func (s *Service) Render(code, language, themeName string, cfg config.RenderConfig) (_ []byte, err error) {
	defer func() {
		err = stackerrors.WithStack(err)
	}()
	return s.render(code, language, themeName, cfg)
}

// RenderDataURI is Render encoded as a data:image/png;base64 URI.
func (s *Service) RenderDataURI(code, language, themeName string, cfg config.RenderConfig) (_ string, err error) {
	defer func() {
		err = stackerrors.WithStack(err)
	}()
	data, err := s.render(code, language, themeName, cfg)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(data), nil
}

func fail(err error) error {
	return fmt.Errorf("%w: %w", ErrRenderFailed, err)
}

func (s *Service) render(code, language, themeName string, cfg config.RenderConfig) (data []byte, err error) {
	start := time.Now()
	info := state.RenderInfo{
		Theme:    strings.ToLower(strings.TrimSpace(themeName)),
		Language: language,
	}
	recovered := false
	s.Store.Begin()
	defer func() {
		if p := recover(); p != nil {
			recovered = true
			data = nil
			err = fail(fmt.Errorf("panic: %v", p))
			s.Logger.Error("render panicked",
				slog.Any("panic", p),
				slog.String("stack", string(debug.Stack())))
		}
		info.Duration = time.Since(start)
		if err != nil {
			info.Err = err.Error()
		} else {
			info.Bytes = len(data)
		}
		s.Store.Finish(info, recovered)
	}()

	th, err := theme.Lookup(themeName)
	if err != nil {
		return nil, fail(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fail(err)
	}
	f, err := s.font(cfg)
	if err != nil {
		return nil, fail(err)
	}

	opts := []render.Option{render.WithFont(f), render.WithLogger(s.Logger)}
	if s.Rand != nil {
		opts = append(opts, render.WithRand(s.Rand()))
	}
	if s.GlyphCache {
		opts = append(opts, render.WithGlyphCache())
	}
	r, err := render.New(th, cfg, opts...)
	if err != nil {
		return nil, fail(err)
	}

	lines := s.highlighter.Highlight(code, language, th)
	img, err := r.Render(lines)
	if err != nil {
		return nil, fail(err)
	}
	info.Lines = len(lines)
	info.Width, info.Height = img.Rect.Dx(), img.Rect.Dy()

	data, err = render.PNGBytes(img)
	if err != nil {
		return nil, fail(err)
	}
	s.Logger.Info("rendered",
		slog.String("theme", info.Theme),
		slog.String("language", language),
		slog.Int("lines", info.Lines),
		slog.Int("width", info.Width),
		slog.Int("height", info.Height),
		slog.Duration("elapsed", time.Since(start)))
	return data, nil
}

// font loads each distinct font configuration once.
func (s *Service) font(cfg config.RenderConfig) (*render.Font, error) {
	key := fontKey{path: cfg.FontPath, family: cfg.FontFamily, engine: cfg.FontEngine}
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fonts[key]; ok {
		return f, nil
	}
	f, err := render.LoadFont(render.FontOptions{
		Path:        cfg.FontPath,
		Family:      cfg.FontFamily,
		Engine:      cfg.FontEngine,
		SearchPaths: s.SearchPaths,
		Logger:      s.Logger,
	})
	if err != nil {
		return nil, err
	}
	s.fonts[key] = f
	return f, nil
}
