package app

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rook-computer/codeshot/internal/config"
	"github.com/rook-computer/codeshot/internal/render"
	"github.com/rook-computer/codeshot/internal/theme"
)

type panicRand struct{}

func (panicRand) Float64() float64 { panic("random source exhausted") }
func (panicRand) IntN(int) int     { panic("random source exhausted") }

func newService() *Service {
	s := New(nil, nil)
	s.SearchPaths = []string{}
	s.Rand = func() render.Rand { return render.NewSeededRand(5) }
	return s
}

func smallConfig() config.RenderConfig {
	cfg := config.Default()
	cfg.Width = 200
	cfg.PanelPadding = 10
	cfg.ExportSize = 1
	return cfg
}

func TestRender(t *testing.T) {
	s := newService()
	data, err := s.Render("fn main() {}", "rust", "Dracula", smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a PNG: %v", err)
	}
	if got := img.Bounds().Dx(); got != 220 {
		t.Errorf("width = %d, want 220", got)
	}

	snap := s.Store.Snapshot()
	if snap.Counters.Succeeded != 1 || snap.Last.Theme != "dracula" || snap.Last.Bytes != len(data) {
		t.Errorf("stats after render: %+v", snap)
	}
}

func TestRenderDataURI(t *testing.T) {
	s := newService()
	uri, err := s.RenderDataURI("x = 1", "python", "nord", smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	payload, ok := strings.CutPrefix(uri, "data:image/png;base64,")
	if !ok {
		t.Fatalf("unexpected prefix: %.40s", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Errorf("payload is not a PNG: %v", err)
	}
}

func TestRenderIdempotent(t *testing.T) {
	s := newService()
	a, err := s.Render("let a = 1;", "rust", "monokai", smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Render("let a = 1;", "rust", "monokai", smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs with a fixed source produced different PNGs")
	}
}

func TestRenderUnknownTheme(t *testing.T) {
	s := newService()
	data, err := s.Render("x", "go", "no-such-theme", smallConfig())
	if data != nil {
		t.Error("partial output on failure")
	}
	if !errors.Is(err, ErrRenderFailed) || !errors.Is(err, theme.ErrUnknown) {
		t.Fatalf("error = %v, want ErrRenderFailed and ErrUnknown", err)
	}
	if !IsRequestError(err) {
		t.Error("unknown theme should be a request error")
	}
	if got := s.Store.Snapshot().Counters.Failed; got != 1 {
		t.Errorf("failed = %d, want 1", got)
	}
}

func TestRenderInvalidConfig(t *testing.T) {
	s := newService()
	cfg := smallConfig()
	cfg.BackgroundColor = "nothex"
	_, err := s.Render("x", "go", "github", cfg)
	if !errors.Is(err, config.ErrInvalid) || !IsRequestError(err) {
		t.Fatalf("error = %v, want ErrInvalid", err)
	}
}

func TestRenderRejectsOversizedCanvas(t *testing.T) {
	s := newService()
	_, err := s.Render(strings.Repeat("\n", 200_000), "text", "dracula", config.Default())
	if !errors.Is(err, config.ErrInvalid) || !IsRequestError(err) {
		t.Fatalf("error = %v, want ErrInvalid", err)
	}
	if !errors.Is(err, ErrRenderFailed) {
		t.Errorf("error = %v, want it wrapped in ErrRenderFailed", err)
	}
}

func TestRenderRecoversPanics(t *testing.T) {
	s := newService()
	s.Rand = func() render.Rand { return panicRand{} }
	data, err := s.Render("x", "go", "github", smallConfig())
	if data != nil {
		t.Error("partial output after panic")
	}
	if !errors.Is(err, ErrRenderFailed) {
		t.Fatalf("error = %v, want ErrRenderFailed", err)
	}
	if IsRequestError(err) {
		t.Error("panic reported as request error")
	}
	if got := s.Store.Snapshot().Counters.Recovered; got != 1 {
		t.Errorf("recovered = %d, want 1", got)
	}
}

func TestRenderMissingFont(t *testing.T) {
	s := newService()
	cfg := smallConfig()
	cfg.FontPath = "/nonexistent/font.ttf"
	_, err := s.Render("x", "go", "github", cfg)
	if !errors.Is(err, render.ErrNoFont) {
		t.Fatalf("error = %v, want ErrNoFont", err)
	}
}

func TestThemeNamesAndLanguages(t *testing.T) {
	s := newService()
	if diff := cmp.Diff(theme.Names(), s.ThemeNames()); diff != "" {
		t.Errorf("ThemeNames mismatch (-want +got):\n%s", diff)
	}
	if !s.IsLanguageSupported("rust") || s.IsLanguageSupported("klingon-script") {
		t.Error("IsLanguageSupported gave unexpected answers")
	}
}
