package web

import "net/http"

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, deps APIV1Deps) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(deps)))
}

// NewHandler builds the complete handler: the API plus request logging, and
// dev CORS when devMode is set.
func NewHandler(deps APIV1Deps, devMode bool) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	RegisterAPIV1(mux, deps)
	var h http.Handler = mux
	if devMode {
		h = WithDevCORS(h)
	}
	return WithRequestLog(h, deps.Logger)
}
