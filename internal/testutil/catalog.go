package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// RexPersona is a complete evaluation-chamber persona.
const RexPersona = `{
  "id": "rex",
  "name": "Rex Revenue",
  "nickname": "The Roaster",
  "archetype": "Revenue Hawk",
  "briefDescription": "Cuts through hype to find the money.",
  "panelType": "evaluation-chamber",
  "expertiseAreas": ["Sales", "Pricing"],
  "critiqueStyle": "Blunt",
  "tone": "Sardonic",
  "visualAppearance": {"description": "A gator in a pinstripe suit", "attire": "pinstripes"},
  "strengths": ["Unit economics"],
  "weaknesses": ["Impatience"],
  "catchphrase": "Show me the money.",
  "responsePatterns": {"introFormats": ["Listen up."]},
  "evaluationFocus": {"primaryConcerns": ["revenue", "margins"]}
}`

// SagePersona is a pathfinder-council persona written in YAML.
const SagePersona = `id: sage
name: Sage Swampwise
nickname: The Navigator
archetype: Mentor
expertiseAreas: [Strategy]
critiqueStyle: Socratic
tone: Calm
visualAppearance:
  description: An old gator with a lantern
strengths: [Patience]
weaknesses: [Vagueness]
catchphrase: Which way is north?
responsePatterns:
  introFormats: [Consider this.]
evaluationFocus:
  primaryConcerns: [direction]
`

// EvaluationTemplate is a valid prompt template for the evaluation panel.
const EvaluationTemplate = `{
  "systemPromptStructure": [
    {"section": "identity", "template": "My name is {{name}} (\"{{nickname}}\")."},
    {"section": "expertise", "template": "Expertise: {{#expertiseAreas}}{{.}}, {{/expertiseAreas}}"}
  ],
  "userPromptPrefix": "Evaluate: "
}`

// PathfinderTemplate is a valid prompt template for the pathfinder panel.
const PathfinderTemplate = `{
  "systemPromptStructure": [
    {"section": "identity", "template": "I am {{name}}, {{archetype}}."}
  ],
  "userPromptPrefix": "Guide me: "
}`

// WriteFile writes content to rel under dir, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) {
	t.Helper()

	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

// NewCatalogDir creates a temporary catalog with rex in the evaluation
// chamber, sage in the pathfinder council, and templates for both panels.
// No settings.json is written, so the defaults apply.
func NewCatalogDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	WriteFile(t, dir, "personas/evaluation-chamber/rex.json", RexPersona)
	WriteFile(t, dir, "personas/pathfinder-council/sage.yaml", SagePersona)
	WriteFile(t, dir, "prompt-templates/evaluation.json", EvaluationTemplate)
	WriteFile(t, dir, "prompt-templates/pathfinder.json", PathfinderTemplate)
	return dir
}
