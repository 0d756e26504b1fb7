package prompt

import (
	"context"
	"slices"
	"strings"

	"github.com/joestump/gator-probe/internal/catalog"
)

// DefaultPanelType is used when nothing else identifies a persona's panel.
const DefaultPanelType = "evaluation"

// InferPanelType picks the panel type for personaID. The first match wins:
//
//  1. persona's own panelType field, by panel type or directory name
//  2. the panel whose directory contains the persona
//  3. a panel type named in settings' promptSettings.systemPromptTemplate
//  4. DefaultPanelType
//
// persona may be nil. Only collaborator failures produce an error.
func (a *Assembler) InferPanelType(ctx context.Context, personaID string, persona *catalog.Persona) (string, error) {
	panels := a.src.Panels()

	if persona != nil && persona.PanelType != "" {
		for _, p := range panels {
			if persona.PanelType == p.Dir || persona.PanelType == p.Type {
				return p.Type, nil
			}
		}
	}

	ids, err := a.src.AllPersonaIDs(ctx)
	if err != nil {
		return "", &Error{Kind: PanelTypeInference, Msg: "error inferring panel type", PersonaID: personaID, Err: err}
	}
	for _, p := range panels {
		if slices.Contains(ids[p.Type], personaID) {
			return p.Type, nil
		}
	}

	settings, err := a.src.LoadSettings(ctx)
	if err != nil {
		return "", &Error{Kind: PanelTypeInference, Msg: "error inferring panel type", PersonaID: personaID, Err: err}
	}
	hint := settings.PromptSettings.SystemPromptTemplate
	for _, p := range panels {
		if strings.Contains(hint, p.Type) {
			return p.Type, nil
		}
	}

	return DefaultPanelType, nil
}
