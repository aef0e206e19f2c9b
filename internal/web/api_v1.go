package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/rook-computer/codeshot/internal/app"
	"github.com/rook-computer/codeshot/internal/config"
)

const (
	maxRenderBodyBytes = 1 << 20
	defaultTheme       = "dracula"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type renderRequest struct {
	Code     string          `json:"code"`
	Language string          `json:"language"`
	Theme    string          `json:"theme"`
	Config   json.RawMessage `json:"config"`
}

type dataURIResponse struct {
	Image string `json:"image"`
}

type languageResponse struct {
	Language  string `json:"language"`
	Supported bool   `json:"supported"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/render", func(w http.ResponseWriter, r *http.Request) { handleRender(w, r, deps) })
	mux.HandleFunc("/themes", func(w http.ResponseWriter, r *http.Request) { handleThemes(w, r, deps) })
	mux.HandleFunc("/languages/", func(w http.ResponseWriter, r *http.Request) { handleLanguage(w, r, deps) })
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) { handleStats(w, r, deps) })
	return mux
}

func handleRender(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRenderBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAPIError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body exceeds "+strconv.Itoa(maxRenderBodyBytes)+" bytes")
			return
		}
		writeAPIError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	cfg, err := config.ParseJSON(req.Config)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_config", err.Error())
		return
	}
	themeName := req.Theme
	if strings.TrimSpace(themeName) == "" {
		themeName = defaultTheme
	}

	if err := deps.Limiter.Acquire(r.Context(), 1); err != nil {
		writeAPIError(w, http.StatusServiceUnavailable, "canceled", err.Error())
		return
	}
	defer deps.Limiter.Release(1)

	if r.URL.Query().Get("format") == "datauri" {
		uri, err := deps.Renderer.RenderDataURI(req.Code, req.Language, themeName, cfg)
		if err != nil {
			writeRenderError(w, deps.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, dataURIResponse{Image: uri})
		return
	}

	data, err := deps.Renderer.Render(req.Code, req.Language, themeName, cfg)
	if err != nil {
		writeRenderError(w, deps.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, bytes.NewReader(data))
}

func writeRenderError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if app.IsRequestError(err) {
		writeAPIError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	logger.Error("render failed", slog.String("component", "web"), slog.String("error", err.Error()))
	writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
}

func handleThemes(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, deps.Renderer.ThemeNames())
}

func handleLanguage(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	lang := strings.Trim(strings.TrimPrefix(r.URL.Path, "/languages/"), "/")
	if lang == "" {
		writeAPIError(w, http.StatusNotFound, "not_found", "language missing")
		return
	}
	writeJSON(w, http.StatusOK, languageResponse{
		Language:  lang,
		Supported: deps.Renderer.IsLanguageSupported(lang),
	})
}

func handleStats(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, deps.Stats.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
