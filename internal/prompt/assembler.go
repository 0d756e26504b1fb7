// Package prompt turns a persona and free-form user input into the system and
// user prompts sent to the LLM.
package prompt

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/chainguard-dev/clog"

	"github.com/joestump/gator-probe/internal/catalog"
	"github.com/joestump/gator-probe/internal/metrics"
	"github.com/joestump/gator-probe/internal/tmpl"
)

// Source supplies catalog data. *catalog.Loader implements it.
type Source interface {
	LoadPersona(ctx context.Context, id string) (*catalog.Persona, error)
	LoadTemplate(ctx context.Context, panelType string) (*catalog.Template, error)
	LoadSettings(ctx context.Context) (*catalog.Settings, error)
	AllPersonaIDs(ctx context.Context) (map[string][]string, error)
	Panels() []catalog.Panel
}

// Style selects how system prompt sections are rendered.
type Style string

const (
	// StyleStandard fails on any unresolved variable.
	StyleStandard Style = "standard"
	// StyleNatural blanks unresolved variables and appends a randomly chosen
	// instruction asking the model to vary its phrasing.
	StyleNatural Style = "natural"
)

// ParseStyle accepts "standard", "natural" or "" (standard).
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(s)) {
	case "", StyleStandard:
		return StyleStandard, nil
	case StyleNatural:
		return StyleNatural, nil
	}
	return "", fmt.Errorf("unknown prompt style %q (want standard or natural)", s)
}

// Prompt is the result of a successful assembly.
type Prompt struct {
	PersonaID    string
	PanelType    string
	SystemPrompt string
	UserPrompt   string
}

// Assembler builds prompts. It holds no per-request state and is safe for
// concurrent use.
type Assembler struct {
	src    Source
	style  Style
	engine *tmpl.Engine
	intn   func(n int) int
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithStyle sets the rendering style. The default is StyleStandard.
func WithStyle(s Style) Option {
	return func(a *Assembler) { a.style = s }
}

// WithIntn replaces the random source used to pick natural-style variations.
func WithIntn(intn func(n int) int) Option {
	return func(a *Assembler) { a.intn = intn }
}

// New returns an Assembler reading from src.
func New(src Source, opts ...Option) *Assembler {
	a := &Assembler{
		src:   src,
		style: StyleStandard,
		intn:  rand.IntN,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.style == StyleNatural {
		a.engine = tmpl.NewEngine(tmpl.Lenient)
	} else {
		a.engine = tmpl.NewEngine(tmpl.Strict)
	}
	return a
}

// Style returns the assembler's rendering style.
func (a *Assembler) Style() Style { return a.style }

// Assemble builds the prompts for personaID. panelType overrides inference
// when non-empty. Every failure is an *Error.
func (a *Assembler) Assemble(ctx context.Context, personaID, userInput, panelType string) (*Prompt, error) {
	p, err := a.assemble(ctx, personaID, userInput, panelType)
	if err != nil {
		kind := KindOf(err)
		metrics.PromptErrorsTotal.WithLabelValues(string(kind)).Inc()
		clog.FromContext(ctx).With("persona", personaID, "kind", kind).Warnf("prompt assembly failed: %v", err)
		return nil, err
	}
	return p, nil
}

func (a *Assembler) assemble(ctx context.Context, personaID, userInput, panelType string) (*Prompt, error) {
	if personaID == "" {
		return nil, &Error{Kind: MissingPersonaID, Msg: "persona id is required"}
	}
	if userInput == "" {
		return nil, &Error{Kind: MissingUserInput, Msg: "user input is required", PersonaID: personaID}
	}

	persona, err := a.src.LoadPersona(ctx, personaID)
	if err != nil {
		return nil, wrap(err, AssemblyFailed, "error assembling prompt", personaID)
	}

	if panelType == "" {
		if panelType, err = a.InferPanelType(ctx, personaID, persona); err != nil {
			return nil, err
		}
	}

	t, err := a.src.LoadTemplate(ctx, panelType)
	if err != nil {
		return nil, wrap(err, AssemblyFailed, "error assembling prompt", personaID)
	}

	system, err := a.renderSystem(t, persona.Data)
	if err != nil {
		return nil, wrap(err, AssemblyFailed, "error assembling prompt", personaID)
	}

	return &Prompt{
		PersonaID:    personaID,
		PanelType:    panelType,
		SystemPrompt: system,
		UserPrompt:   t.UserPromptPrefix + tmpl.Sanitize(userInput),
	}, nil
}

func (a *Assembler) renderSystem(t *catalog.Template, data tmpl.Value) (string, error) {
	sections := make([]string, 0, len(t.Sections))
	for _, s := range t.Sections {
		out, err := a.engine.Expand(s.Template, data)
		if err != nil {
			return "", fmt.Errorf("section %q: %w", s.Name, err)
		}
		sections = append(sections, out)
	}
	system := strings.Join(sections, "\n\n")

	if a.style == StyleNatural {
		system = addVariation(system, a.intn)
	}
	return system, nil
}
