package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/go-chi/chi/v5"
	"github.com/joestump/gator-probe/internal/catalog"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds the persona loads issued by one listing.
const maxConcurrentLoads = 8

// personasAPIHandler provides the /api/personas endpoints.
type personasAPIHandler struct {
	catalog Catalog
}

func registerPersonaRoutes(r chi.Router, c Catalog) {
	h := &personasAPIHandler{catalog: c}
	r.Get("/personas", h.List)
	r.Get("/personas/{id}", h.Get)
}

// List returns every loadable persona grouped by panel. Panels without
// personas are omitted; personas that fail to load are skipped.
// GET /api/personas
func (h *personasAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ids, err := h.catalog.AllPersonaIDs(ctx)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	out := PersonaListResponse{Panels: map[string]PanelResponse{}}
	for _, panel := range h.catalog.Panels() {
		panelIDs := ids[panel.Type]
		if len(panelIDs) == 0 {
			continue
		}

		loaded := make([]*PersonaSummary, len(panelIDs))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentLoads)
		for i, id := range panelIDs {
			g.Go(func() error {
				p, err := h.catalog.LoadPersona(gctx, id)
				if err != nil {
					clog.FromContext(ctx).With("persona", id).Errorf("api: error loading persona: %v", err)
					return nil
				}
				loaded[i] = toPersonaSummary(p)
				return nil
			})
		}
		_ = g.Wait()

		summaries := []PersonaSummary{}
		for _, s := range loaded {
			if s != nil {
				summaries = append(summaries, *s)
			}
		}
		if len(summaries) == 0 {
			continue
		}
		out.Panels[panel.Type] = PanelResponse{
			DisplayName: panel.DisplayName,
			Description: panel.Description,
			Personas:    summaries,
		}
	}

	writeSuccess(w, out)
}

// Get returns the public part of a single persona.
// GET /api/personas/{id}
func (h *personasAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.catalog.LoadPersona(r.Context(), id)
	if err != nil {
		if catalog.IsNotFound(err) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Persona with ID %q not found", id), "PERSONA_NOT_FOUND")
			return
		}
		writeFailure(w, r, err)
		return
	}

	writeSuccess(w, PersonaResponse{
		ID:             p.ID,
		Name:           p.Name,
		Nickname:       p.Nickname,
		Archetype:      p.Archetype,
		ExpertiseAreas: p.ExpertiseAreas,
		CritiqueStyle:  p.CritiqueStyle,
		Tone:           p.Tone,
		VisualAppearance: AppearanceResponse{
			Description: p.Appearance.Description,
			Attire:      p.Appearance.Attire,
		},
		Strengths:  p.Strengths,
		Weaknesses: p.Weaknesses,
	})
}

func toPersonaSummary(p *catalog.Persona) *PersonaSummary {
	return &PersonaSummary{
		ID:               p.ID,
		Name:             p.Name,
		Nickname:         p.Nickname,
		Archetype:        p.Archetype,
		BriefDescription: p.BriefDescription,
		Expertise:        strings.Join(p.ExpertiseAreas, ", "),
	}
}
