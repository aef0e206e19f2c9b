package web

import (
	"io"
	"log/slog"

	"github.com/rook-computer/codeshot/internal/app"
	"github.com/rook-computer/codeshot/internal/config"
	"github.com/rook-computer/codeshot/internal/state"
	"golang.org/x/sync/semaphore"
)

// Renderer is the part of app.Service the API needs.
type Renderer interface {
	Render(code, language, themeName string, cfg config.RenderConfig) ([]byte, error)
	RenderDataURI(code, language, themeName string, cfg config.RenderConfig) (string, error)
	ThemeNames() []string
	IsLanguageSupported(language string) bool
}

// StatsSource exposes render counters, typically *state.Store.
type StatsSource interface {
	Snapshot() state.State
}

const defaultMaxConcurrentRenders = 4

type APIV1Deps struct {
	Renderer Renderer
	Stats    StatsSource
	// Limiter bounds concurrent renders; each render acquires one unit.
	Limiter *semaphore.Weighted
	Logger  *slog.Logger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Logger == nil {
		out.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if out.Stats == nil {
		out.Stats = state.NewStore()
	}
	if out.Renderer == nil {
		store, _ := out.Stats.(*state.Store)
		out.Renderer = app.New(store, out.Logger)
	}
	if out.Limiter == nil {
		out.Limiter = semaphore.NewWeighted(defaultMaxConcurrentRenders)
	}
	return out
}
