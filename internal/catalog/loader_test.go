package catalog_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/joestump/gator-probe/internal/catalog"
	"github.com/joestump/gator-probe/internal/testutil"
)

func file(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

func TestLoadPersona(t *testing.T) {
	l := catalog.New(testutil.NewCatalogDir(t))
	ctx := context.Background()

	p, err := l.LoadPersona(ctx, "rex")
	if err != nil {
		t.Fatalf("LoadPersona: %v", err)
	}
	if p.Name != "Rex Revenue" || p.Nickname != "The Roaster" {
		t.Errorf("name = %q nickname = %q", p.Name, p.Nickname)
	}
	if diff := cmp.Diff([]string{"Sales", "Pricing"}, p.ExpertiseAreas); diff != "" {
		t.Errorf("ExpertiseAreas mismatch (-want +got):\n%s", diff)
	}
	want := catalog.Appearance{Description: "A gator in a pinstripe suit", Attire: "pinstripes"}
	if p.Appearance != want {
		t.Errorf("Appearance = %+v, want %+v", p.Appearance, want)
	}
	if p.PanelType != "evaluation-chamber" {
		t.Errorf("PanelType = %q, want evaluation-chamber", p.PanelType)
	}
	if v, ok := p.Data.Field("catchphrase"); !ok || v.Str() != "Show me the money." {
		t.Errorf("Data.catchphrase = %v, %v", v, ok)
	}

	again, err := l.LoadPersona(ctx, "rex")
	if err != nil {
		t.Fatalf("LoadPersona (cached): %v", err)
	}
	if again != p {
		t.Error("second LoadPersona did not return the cached persona")
	}
}

func TestLoadPersona_YAML(t *testing.T) {
	l := catalog.New(testutil.NewCatalogDir(t))

	p, err := l.LoadPersona(context.Background(), "sage")
	if err != nil {
		t.Fatalf("LoadPersona: %v", err)
	}
	if p.Name != "Sage Swampwise" {
		t.Errorf("Name = %q, want Sage Swampwise", p.Name)
	}
	if p.Appearance.Description != "An old gator with a lantern" {
		t.Errorf("Appearance.Description = %q", p.Appearance.Description)
	}
}

func TestLoadPersona_Errors(t *testing.T) {
	flat := strings.Replace(testutil.RexPersona,
		`"responsePatterns": {"introFormats": ["Listen up."]}`,
		`"responsePatterns": {"introFormats": "Listen up."}`, 1)
	fsys := fstest.MapFS{
		"personas/evaluation-chamber/broken.json":  file(`{"id": "broken",`),
		"personas/evaluation-chamber/partial.json": file(`{"id": "partial", "name": "Partial"}`),
		"personas/legal-panel/flat.json":           file(flat),
	}
	l := catalog.NewFS(fsys)

	tests := []struct {
		name     string
		id       string
		wantCode catalog.Code
		wantMsg  string
	}{
		{name: "unknown id", id: "nobody", wantCode: catalog.CodePersonaNotFound},
		{name: "path traversal", id: "../settings", wantCode: catalog.CodePersonaNotFound},
		{name: "empty id", id: "", wantCode: catalog.CodePersonaNotFound},
		{name: "malformed json", id: "broken", wantCode: catalog.CodeInvalidFormat},
		{name: "missing fields", id: "partial", wantCode: catalog.CodeInvalidPersonaConfig, wantMsg: "nickname, archetype"},
		{name: "intro formats not a list", id: "flat", wantCode: catalog.CodeInvalidPersonaConfig, wantMsg: "introFormats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.LoadPersona(context.Background(), tt.id)
			if got := catalog.CodeOf(err); got != tt.wantCode {
				t.Fatalf("LoadPersona(%q) code = %q (err %v), want %q", tt.id, got, err, tt.wantCode)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	l := catalog.New(testutil.NewCatalogDir(t))

	tpl, err := l.LoadTemplate(context.Background(), "evaluation")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	want := &catalog.Template{
		PanelType: "evaluation",
		Sections: []catalog.Section{
			{Name: "identity", Template: `My name is {{name}} ("{{nickname}}").`},
			{Name: "expertise", Template: "Expertise: {{#expertiseAreas}}{{.}}, {{/expertiseAreas}}"},
		},
		UserPromptPrefix: "Evaluate: ",
	}
	if diff := cmp.Diff(want, tpl); diff != "" {
		t.Errorf("LoadTemplate mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTemplate_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"prompt-templates/evaluation.json": file(`{"systemPromptStructure": [], "userPromptPrefix": ""}`),
		"prompt-templates/pathfinder.yaml": file("systemPromptStructure:\n  - section: intro\n"),
	}
	l := catalog.NewFS(fsys)

	tests := []struct {
		name      string
		panelType string
		wantCode  catalog.Code
	}{
		{name: "unknown panel", panelType: "marketing", wantCode: catalog.CodeInvalidPanelType},
		{name: "missing file", panelType: "legal", wantCode: catalog.CodeFileNotFound},
		{name: "no sections", panelType: "evaluation", wantCode: catalog.CodeInvalidTemplateConfig},
		{name: "section without template", panelType: "pathfinder", wantCode: catalog.CodeInvalidTemplateConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.LoadTemplate(context.Background(), tt.panelType)
			if got := catalog.CodeOf(err); got != tt.wantCode {
				t.Errorf("LoadTemplate(%q) code = %q (err %v), want %q", tt.panelType, got, err, tt.wantCode)
			}
		})
	}
}

func TestLoadTemplate_EmptyPrefixAllowed(t *testing.T) {
	fsys := fstest.MapFS{
		"prompt-templates/legal.json": file(`{"systemPromptStructure": [{"section": "a", "template": "b"}], "userPromptPrefix": ""}`),
	}
	tpl, err := catalog.NewFS(fsys).LoadTemplate(context.Background(), "legal")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if tpl.UserPromptPrefix != "" {
		t.Errorf("UserPromptPrefix = %q, want empty", tpl.UserPromptPrefix)
	}
}

func TestLoadSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when missing", func(t *testing.T) {
		s, err := catalog.NewFS(fstest.MapFS{}).LoadSettings(ctx)
		if err != nil {
			t.Fatalf("LoadSettings: %v", err)
		}
		if diff := cmp.Diff(catalog.DefaultSettings(), s); diff != "" {
			t.Errorf("LoadSettings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		fsys := fstest.MapFS{"settings.json": file(`{
			"defaultGator": "sage",
			"apiSettings": {"provider": "simulation", "model": "claude-sonnet-4-5"},
			"userInterface": {"includeGatorSelection": false},
			"promptSettings": {"systemPromptTemplate": "config/prompt-templates/pathfinder.json"},
			"validationSettings": {"logResponses": false}
		}`)}
		s, err := catalog.NewFS(fsys).LoadSettings(ctx)
		if err != nil {
			t.Fatalf("LoadSettings: %v", err)
		}
		if s.DefaultGator != "sage" || s.APISettings.Provider != "simulation" || s.APISettings.Model != "claude-sonnet-4-5" {
			t.Errorf("settings = %+v", s)
		}
		if s.APISettings.MaxTokens != 1500 {
			t.Errorf("MaxTokens = %d, want default 1500", s.APISettings.MaxTokens)
		}
		if s.PromptSettings.SystemPromptTemplate != "config/prompt-templates/pathfinder.json" {
			t.Errorf("SystemPromptTemplate = %q", s.PromptSettings.SystemPromptTemplate)
		}
	})

	t.Run("missing sections", func(t *testing.T) {
		fsys := fstest.MapFS{"settings.json": file(`{"apiSettings": {"provider": "claude", "model": "m"}}`)}
		_, err := catalog.NewFS(fsys).LoadSettings(ctx)
		if got := catalog.CodeOf(err); got != catalog.CodeInvalidSettingsConfig {
			t.Fatalf("code = %q (err %v), want %q", got, err, catalog.CodeInvalidSettingsConfig)
		}
		if !strings.Contains(err.Error(), "userInterface, promptSettings, validationSettings") {
			t.Errorf("error %q does not list the missing sections", err)
		}
	})

	t.Run("missing model", func(t *testing.T) {
		fsys := fstest.MapFS{"settings.json": file(`{
			"apiSettings": {"provider": "claude"},
			"userInterface": {"x": true},
			"promptSettings": {"x": true},
			"validationSettings": {"x": true}
		}`)}
		_, err := catalog.NewFS(fsys).LoadSettings(ctx)
		if got := catalog.CodeOf(err); got != catalog.CodeInvalidSettingsConfig {
			t.Errorf("code = %q (err %v), want %q", got, err, catalog.CodeInvalidSettingsConfig)
		}
	})
}

func TestAllPersonaIDs(t *testing.T) {
	dir := testutil.NewCatalogDir(t)
	testutil.WriteFile(t, dir, "personas/evaluation-chamber/ana.json", "{}")
	testutil.WriteFile(t, dir, "personas/evaluation-chamber/README.md", "notes")

	ids, err := catalog.New(dir).AllPersonaIDs(context.Background())
	if err != nil {
		t.Fatalf("AllPersonaIDs: %v", err)
	}
	want := map[string][]string{
		"evaluation": {"ana", "rex"},
		"pathfinder": {"sage"},
		"legal":      {},
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("AllPersonaIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestClearCache(t *testing.T) {
	fsys := fstest.MapFS{
		"personas/evaluation-chamber/rex.json": file(testutil.RexPersona),
		"prompt-templates/evaluation.json":     file(testutil.EvaluationTemplate),
	}
	l := catalog.NewFS(fsys)
	ctx := context.Background()

	if _, err := l.LoadPersona(ctx, "rex"); err != nil {
		t.Fatalf("LoadPersona: %v", err)
	}
	if _, err := l.LoadTemplate(ctx, "evaluation"); err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}

	fsys["personas/evaluation-chamber/rex.json"] = file(strings.Replace(testutil.RexPersona, "Rex Revenue", "Rex Renamed", 1))
	fsys["prompt-templates/evaluation.json"] = file(strings.Replace(testutil.EvaluationTemplate, "Evaluate: ", "Judge: ", 1))

	l.ClearCache(catalog.CachePersonas)

	p, err := l.LoadPersona(ctx, "rex")
	if err != nil {
		t.Fatalf("LoadPersona after clear: %v", err)
	}
	if p.Name != "Rex Renamed" {
		t.Errorf("Name = %q, want reloaded value", p.Name)
	}
	tpl, err := l.LoadTemplate(ctx, "evaluation")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if tpl.UserPromptPrefix != "Evaluate: " {
		t.Errorf("template cache was cleared with personas: prefix = %q", tpl.UserPromptPrefix)
	}

	l.ClearCache(catalog.CacheAll)
	tpl, err = l.LoadTemplate(ctx, "evaluation")
	if err != nil {
		t.Fatalf("LoadTemplate after clear: %v", err)
	}
	if tpl.UserPromptPrefix != "Judge: " {
		t.Errorf("UserPromptPrefix = %q, want reloaded value", tpl.UserPromptPrefix)
	}
}

func TestLoadPersona_ConcurrentMissesConverge(t *testing.T) {
	l := catalog.New(testutil.NewCatalogDir(t))

	const n = 16
	got := make([]*catalog.Persona, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := l.LoadPersona(context.Background(), "rex")
			if err != nil {
				t.Errorf("LoadPersona: %v", err)
				return
			}
			got[i] = p
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if got[i] != got[0] {
			t.Fatalf("goroutine %d got a different persona instance", i)
		}
	}
}

func TestWithPanels(t *testing.T) {
	fsys := fstest.MapFS{
		"personas/growth/rex.json": file(testutil.RexPersona),
	}
	l := catalog.NewFS(fsys, catalog.WithPanels([]catalog.Panel{{Type: "growth", Dir: "growth", DisplayName: "Growth"}}))

	if _, err := l.LoadPersona(context.Background(), "rex"); err != nil {
		t.Fatalf("LoadPersona: %v", err)
	}
	if _, err := l.LoadTemplate(context.Background(), "evaluation"); catalog.CodeOf(err) != catalog.CodeInvalidPanelType {
		t.Errorf("LoadTemplate(evaluation) err = %v, want %s", err, catalog.CodeInvalidPanelType)
	}
	if p, ok := l.LookupPanel("growth"); !ok || p.DisplayName != "Growth" {
		t.Errorf("LookupPanel(growth) = %+v, %v", p, ok)
	}
}
