package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chainguard-dev/clog"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joestump/gator-probe/internal/llm"
	"github.com/joestump/gator-probe/internal/metrics"
)

// defaultMaxInputLength applies when Deps.MaxInputLength is unset.
const defaultMaxInputLength = 7000

// generateAPIHandler provides the POST /api/generate endpoint.
type generateAPIHandler struct {
	assembler      Assembler
	generator      llm.Generator
	maxInputLength int
}

func registerGenerateRoutes(r chi.Router, assembler Assembler, generator llm.Generator, maxInputLength int) {
	if maxInputLength <= 0 {
		maxInputLength = defaultMaxInputLength
	}
	h := &generateAPIHandler{assembler: assembler, generator: generator, maxInputLength: maxInputLength}
	r.Post("/generate", h.Generate)
}

// Generate assembles the persona prompt for the submitted input and returns
// the model's reply.
// POST /api/generate
func (h *generateAPIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.GenerationsTotal.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body", "VALIDATION_ERROR")
		return
	}

	if problems := h.validate(req); len(problems) > 0 {
		metrics.GenerationsTotal.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, strings.Join(problems, ", "), "VALIDATION_ERROR")
		return
	}

	ctx := r.Context()
	p, err := h.assembler.Assemble(ctx, req.PersonaID, req.UserInput, req.PanelType)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("prompt_error").Inc()
		writeFailure(w, r, err)
		return
	}

	start := time.Now()
	resp, err := h.generator.Generate(ctx, llm.Request{
		SystemPrompt: p.SystemPrompt,
		UserPrompt:   p.UserPrompt,
	})
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("llm_error").Inc()
		clog.FromContext(ctx).With("persona", req.PersonaID).Warnf("api: generate failed: %v", err)
		writeFailure(w, r, err)
		return
	}
	metrics.GenerationsTotal.WithLabelValues("success").Inc()

	requestID := uuid.NewString()
	clog.FromContext(ctx).With("persona", req.PersonaID, "panel", p.PanelType, "request_id", requestID).
		Infof("api: generated %d characters with %s", utf8.RuneCountInString(resp.Content), resp.Model)

	writeSuccess(w, GenerateResponse{
		PersonaID: req.PersonaID,
		Content:   resp.Content,
		Metadata: GenerateMetadata{
			Model:        resp.Model,
			Usage:        resp.Usage,
			RequestID:    requestID,
			PanelType:    p.PanelType,
			FinishReason: resp.FinishReason,
			Simulated:    resp.Simulated,
		},
	})
}

func (h *generateAPIHandler) validate(req GenerateRequest) []string {
	var problems []string
	if req.PersonaID == "" {
		problems = append(problems, "personaId is required")
	}
	if req.UserInput == "" {
		problems = append(problems, "userInput is required")
	} else if utf8.RuneCountInString(req.UserInput) > h.maxInputLength {
		problems = append(problems, fmt.Sprintf("userInput exceeds maximum length of %d characters", h.maxInputLength))
	}
	return problems
}
