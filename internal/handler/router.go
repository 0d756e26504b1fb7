package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joestump/gator-probe/internal/api"
	"github.com/joestump/gator-probe/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	API api.Deps

	// Provider names the LLM provider reported by /health.
	Provider string
}

// NewRouter assembles the full chi router with all middleware and routes.
// Named routes are registered before the SPA catch-all.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	// Static assets (embedded). Use fs.Sub so the file server sees
	// index.html directly, not static/index.html.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))

	health := NewHealthHandler(deps.Provider)
	r.Get("/health", health.Show)
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/api", api.NewAPIRouter(deps.API))

	// SPA fallback, must be last.
	spa := NewSPAHandler(staticSub)
	r.Get("/*", spa.Index)

	return r
}
