package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chainguard-dev/clog"
	"github.com/joestump/gator-probe/internal/catalog"
	"github.com/joestump/gator-probe/internal/llm"
	"github.com/joestump/gator-probe/internal/prompt"
)

type errorBody struct {
	Status  string         `json:"status"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type successBody struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeErrorDetails(w, status, message, code, nil)
}

func writeErrorDetails(w http.ResponseWriter, status int, message, code string, details map[string]any) {
	writeJSON(w, status, errorBody{Status: "error", Code: code, Message: message, Details: details})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeSuccess wraps data in the success envelope.
func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, successBody{Status: "success", Data: data})
}

// llmStatus maps LLM client codes onto response statuses.
var llmStatus = map[llm.Code]int{
	llm.CodeInvalidRequest:     http.StatusBadRequest,
	llm.CodeAuthentication:     http.StatusUnauthorized,
	llm.CodeAuthorization:      http.StatusForbidden,
	llm.CodeRateLimitExceeded:  http.StatusTooManyRequests,
	llm.CodeServerError:        http.StatusInternalServerError,
	llm.CodeServiceUnavailable: http.StatusServiceUnavailable,
	llm.CodeGatewayTimeout:     http.StatusGatewayTimeout,
}

// writeFailure renders err from the prompt assembler or the LLM client.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var perr *prompt.Error
	if errors.As(err, &perr) {
		status := http.StatusBadRequest
		if catalog.CodeOf(perr.Err) == catalog.CodePersonaNotFound {
			status = http.StatusNotFound
		}
		details := map[string]any{}
		if perr.PersonaID != "" {
			details["personaId"] = perr.PersonaID
		}
		if perr.Err != nil {
			details["cause"] = perr.Err.Error()
		}
		writeErrorDetails(w, status, perr.Msg, string(perr.Kind), details)
		return
	}

	var aerr *llm.APIError
	if errors.As(err, &aerr) {
		status, ok := llmStatus[aerr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		details := map[string]any{}
		if aerr.StatusCode != 0 {
			details["statusCode"] = aerr.StatusCode
		}
		writeErrorDetails(w, status, aerr.Msg, string(aerr.Code), details)
		return
	}

	clog.FromContext(r.Context()).Errorf("api: unexpected error: %v", err)
	writeError(w, http.StatusInternalServerError, "An unexpected error occurred", "SERVER_ERROR")
}
