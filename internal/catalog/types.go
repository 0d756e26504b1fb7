package catalog

import (
	"fmt"
	"strings"

	"github.com/joestump/gator-probe/internal/tmpl"
)

// Panel is one entry of the panel registry. Type is the canonical panel type
// used in requests and template file names; Dir is the directory under
// personas/ holding its members.
type Panel struct {
	Type        string `json:"type"`
	Dir         string `json:"dir"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// DefaultPanels is the registry used when no WithPanels option is given.
var DefaultPanels = []Panel{
	{
		Type:        "evaluation",
		Dir:         "evaluation-chamber",
		DisplayName: "Evaluation Chamber",
		Description: "Critical feedback and evaluation for startup ideas",
	},
	{
		Type:        "pathfinder",
		Dir:         "pathfinder-council",
		DisplayName: "Pathfinder Council",
		Description: "Guidance and direction for decision-making",
	},
	{
		Type:        "legal",
		Dir:         "legal-panel",
		DisplayName: "Legal Panel",
		Description: "Legal risk assessment and considerations",
	},
}

// Persona is a validated character profile. Data holds the complete decoded
// file and is the context templates are expanded against; the typed fields
// are conveniences for the HTTP and CLI surfaces.
type Persona struct {
	ID               string
	Name             string
	Nickname         string
	Archetype        string
	BriefDescription string
	PanelType        string
	ExpertiseAreas   []string
	CritiqueStyle    string
	Tone             string
	Appearance       Appearance
	Strengths        []string
	Weaknesses       []string
	Catchphrase      string

	Data tmpl.Value
}

// Appearance is the public part of a persona's visualAppearance.
type Appearance struct {
	Description string `json:"description"`
	Attire      string `json:"attire,omitempty"`
}

// Section is one named fragment of a system prompt.
type Section struct {
	Name     string
	Template string
}

// Template describes how to build the prompts for one panel type.
type Template struct {
	PanelType        string
	Sections         []Section
	UserPromptPrefix string
}

// Settings mirrors settings.json.
type Settings struct {
	DefaultGator       string         `json:"defaultGator"`
	APISettings        APISettings    `json:"apiSettings"`
	UserInterface      map[string]any `json:"userInterface"`
	PromptSettings     PromptSettings `json:"promptSettings"`
	ValidationSettings map[string]any `json:"validationSettings"`
}

type APISettings struct {
	Provider          string  `json:"provider"`
	Model             string  `json:"model"`
	Temperature       float64 `json:"temperature"`
	MaxTokens         int     `json:"maxTokens"`
	UseSimulationMode bool    `json:"useSimulationMode"`

	// BaseURL is left empty to use the provider's default endpoint.
	BaseURL string `json:"baseUrl"`
}

type PromptSettings struct {
	IncludeVisualDescription bool   `json:"includeVisualDescription"`
	MaxInputLength           int    `json:"maxInputLength"`
	SystemPromptTemplate     string `json:"systemPromptTemplate"`
}

// DefaultSettings returns the settings used when settings.json is absent.
func DefaultSettings() *Settings {
	return &Settings{
		DefaultGator: "rex",
		APISettings: APISettings{
			Provider:    "claude",
			Model:       "claude-3-sonnet-20240229",
			Temperature: 0.7,
			MaxTokens:   1500,
		},
		UserInterface: map[string]any{
			"includeGatorSelection":  true,
			"displayGatorAttributes": false,
			"showResponseMetadata":   false,
		},
		PromptSettings: PromptSettings{
			IncludeVisualDescription: true,
			MaxInputLength:           2000,
			SystemPromptTemplate:     "config/prompt-templates/evaluation.json",
		},
		ValidationSettings: map[string]any{
			"logResponses":             true,
			"trackToneConsistency":     true,
			"validatePersonaAdherence": true,
		},
	}
}

var personaRequiredFields = []string{
	"id", "name", "nickname", "archetype", "expertiseAreas",
	"critiqueStyle", "tone", "visualAppearance", "strengths",
	"weaknesses", "catchphrase", "responsePatterns", "evaluationFocus",
}

// newPersona validates data and extracts the typed fields.
func newPersona(data tmpl.Value) (*Persona, error) {
	var missing []string
	for _, f := range personaRequiredFields {
		if v, ok := data.Field(f); !ok || !v.Truthy() {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if v, ok := tmpl.Resolve(data, "responsePatterns.introFormats"); !ok || !v.IsList() {
		return nil, fmt.Errorf("responsePatterns.introFormats must be an array")
	}
	if v, ok := tmpl.Resolve(data, "evaluationFocus.primaryConcerns"); !ok || !v.IsList() {
		return nil, fmt.Errorf("evaluationFocus.primaryConcerns must be an array")
	}

	p := &Persona{
		ID:               fieldString(data, "id"),
		Name:             fieldString(data, "name"),
		Nickname:         fieldString(data, "nickname"),
		Archetype:        fieldString(data, "archetype"),
		BriefDescription: fieldString(data, "briefDescription"),
		PanelType:        fieldString(data, "panelType"),
		ExpertiseAreas:   fieldStrings(data, "expertiseAreas"),
		CritiqueStyle:    fieldString(data, "critiqueStyle"),
		Tone:             fieldString(data, "tone"),
		Strengths:        fieldStrings(data, "strengths"),
		Weaknesses:       fieldStrings(data, "weaknesses"),
		Catchphrase:      fieldString(data, "catchphrase"),
		Data:             data,
	}

	appearance, _ := data.Field("visualAppearance")
	if appearance.IsRecord() {
		p.Appearance.Description = fieldString(appearance, "description")
		p.Appearance.Attire = fieldString(appearance, "attire")
	} else {
		p.Appearance.Description = tmpl.Format(appearance)
	}
	return p, nil
}

// newTemplate validates data as a prompt template for panelType.
func newTemplate(panelType string, data tmpl.Value) (*Template, error) {
	structure, ok := data.Field("systemPromptStructure")
	if !ok || !structure.IsList() {
		return nil, fmt.Errorf("systemPromptStructure must be an array")
	}
	if structure.Len() == 0 {
		return nil, fmt.Errorf("systemPromptStructure must contain at least one section")
	}

	t := &Template{PanelType: panelType}
	for i, item := range structure.Items() {
		name, _ := item.Field("section")
		body, _ := item.Field("template")
		if name.Kind() != tmpl.KindString || body.Kind() != tmpl.KindString || name.Str() == "" || body.Str() == "" {
			return nil, fmt.Errorf("section %d must have non-empty section and template fields", i)
		}
		t.Sections = append(t.Sections, Section{Name: name.Str(), Template: body.Str()})
	}

	prefix, ok := data.Field("userPromptPrefix")
	if !ok || prefix.Kind() != tmpl.KindString {
		return nil, fmt.Errorf("missing userPromptPrefix")
	}
	t.UserPromptPrefix = prefix.Str()
	return t, nil
}

var settingsRequiredSections = []string{"apiSettings", "userInterface", "promptSettings", "validationSettings"}

// newSettings validates data and decodes it onto the defaults so optional
// keys keep their default values.
func newSettings(data tmpl.Value) (*Settings, error) {
	var missing []string
	for _, s := range settingsRequiredSections {
		if v, ok := data.Field(s); !ok || !v.Truthy() {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required sections: %s", strings.Join(missing, ", "))
	}
	provider, _ := tmpl.Resolve(data, "apiSettings.provider")
	model, _ := tmpl.Resolve(data, "apiSettings.model")
	if !provider.Truthy() || !model.Truthy() {
		return nil, fmt.Errorf("apiSettings must include provider and model")
	}

	s := DefaultSettings()
	if err := remarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func fieldString(v tmpl.Value, name string) string {
	f, ok := v.Field(name)
	if !ok || f.IsList() || f.IsRecord() {
		return ""
	}
	return tmpl.Format(f)
}

func fieldStrings(v tmpl.Value, name string) []string {
	f, ok := v.Field(name)
	if !ok {
		return nil
	}
	if f.IsList() {
		return f.Strings()
	}
	if f.IsScalar() {
		return []string{tmpl.Format(f)}
	}
	return nil
}
