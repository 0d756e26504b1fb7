package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joestump/gator-probe/internal/catalog"
	"github.com/joestump/gator-probe/internal/llm"
	"github.com/joestump/gator-probe/internal/prompt"
)

// Assembler builds the prompt pair for a generate request.
type Assembler interface {
	Assemble(ctx context.Context, personaID, userInput, panelType string) (*prompt.Prompt, error)
}

// Catalog is the read side of the persona catalog used by the persona endpoints.
type Catalog interface {
	LoadPersona(ctx context.Context, id string) (*catalog.Persona, error)
	AllPersonaIDs(ctx context.Context) (map[string][]string, error)
	Panels() []catalog.Panel
}

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Assembler      Assembler
	Generator      llm.Generator
	Catalog        Catalog
	MaxInputLength int
}

// NewAPIRouter creates a chi sub-router for /api.
// All routes return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(jsonContentType)

	registerGenerateRoutes(r, deps.Assembler, deps.Generator, deps.MaxInputLength)
	registerPersonaRoutes(r, deps.Catalog)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Endpoint %s not found", r.URL.Path), "ENDPOINT_NOT_FOUND")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed on %s", r.Method, r.URL.Path), "METHOD_NOT_ALLOWED")
	})

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
