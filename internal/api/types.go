package api

import "github.com/joestump/gator-probe/internal/llm"

// --- Generate types ---

// GenerateRequest is the request body for POST /api/generate.
type GenerateRequest struct {
	PersonaID string `json:"personaId"`
	UserInput string `json:"userInput"`
	PanelType string `json:"panelType,omitempty"`
}

// GenerateMetadata describes the model call behind a generated response.
type GenerateMetadata struct {
	Model        string    `json:"model"`
	Usage        llm.Usage `json:"usage"`
	RequestID    string    `json:"requestId"`
	PanelType    string    `json:"panelType"`
	FinishReason string    `json:"finishReason,omitempty"`
	Simulated    bool      `json:"simulated,omitempty"`
}

// GenerateResponse is the data payload of a successful generate call.
type GenerateResponse struct {
	PersonaID string           `json:"personaId"`
	Content   string           `json:"content"`
	Metadata  GenerateMetadata `json:"metadata"`
}

// --- Persona types ---

// PersonaSummary is the short form of a persona shown in panel listings.
type PersonaSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Nickname         string `json:"nickname"`
	Archetype        string `json:"archetype"`
	BriefDescription string `json:"briefDescription"`
	Expertise        string `json:"expertise"`
}

// PanelResponse groups the personas of one panel.
type PanelResponse struct {
	DisplayName string           `json:"displayName"`
	Description string           `json:"description"`
	Personas    []PersonaSummary `json:"personas"`
}

// PersonaListResponse is the data payload of GET /api/personas, keyed by panel type.
type PersonaListResponse struct {
	Panels map[string]PanelResponse `json:"panels"`
}

// AppearanceResponse is a persona's visual description.
type AppearanceResponse struct {
	Description string `json:"description"`
	Attire      string `json:"attire"`
}

// PersonaResponse is the data payload of GET /api/personas/{id}.
type PersonaResponse struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Nickname         string             `json:"nickname"`
	Archetype        string             `json:"archetype"`
	ExpertiseAreas   []string           `json:"expertiseAreas"`
	CritiqueStyle    string             `json:"critiqueStyle"`
	Tone             string             `json:"tone"`
	VisualAppearance AppearanceResponse `json:"visualAppearance"`
	Strengths        []string           `json:"strengths"`
	Weaknesses       []string           `json:"weaknesses"`
}
