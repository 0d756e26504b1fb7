// Package catalog loads persona, prompt-template and settings files from a
// catalog directory:
//
//	personas/<panel-dir>/<id>.json|.yaml|.yml
//	prompt-templates/<panel-type>.json|.yaml|.yml
//	settings.json
//
// Loaded values are cached until ClearCache is called.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/singleflight"

	"github.com/joestump/gator-probe/internal/metrics"
)

// CacheKind selects which cache ClearCache empties.
type CacheKind string

const (
	CacheAll       CacheKind = ""
	CachePersonas  CacheKind = "personas"
	CacheTemplates CacheKind = "templates"
	CacheSettings  CacheKind = "settings"
)

const settingsFile = "settings.json"

// Loader reads the catalog. It is safe for concurrent use; concurrent misses
// for the same key share a single read.
type Loader struct {
	fsys   fs.FS
	panels []Panel

	mu        sync.RWMutex
	personas  map[string]*Persona
	templates map[string]*Template
	settings  *Settings

	group singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

// WithPanels replaces the panel registry.
func WithPanels(panels []Panel) Option {
	return func(l *Loader) {
		l.panels = append([]Panel(nil), panels...)
	}
}

// New returns a Loader rooted at dir.
func New(dir string, opts ...Option) *Loader {
	return NewFS(os.DirFS(dir), opts...)
}

// NewFS returns a Loader reading from fsys.
func NewFS(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{
		fsys:      fsys,
		panels:    DefaultPanels,
		personas:  map[string]*Persona{},
		templates: map[string]*Template{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Panels returns the panel registry in lookup order.
func (l *Loader) Panels() []Panel {
	return append([]Panel(nil), l.panels...)
}

// LookupPanel returns the registry entry for panelType.
func (l *Loader) LookupPanel(panelType string) (Panel, bool) {
	for _, p := range l.panels {
		if p.Type == panelType {
			return p, true
		}
	}
	return Panel{}, false
}

// LoadPersona returns the persona with the given id, searching the panel
// directories in registry order.
func (l *Loader) LoadPersona(ctx context.Context, id string) (*Persona, error) {
	if err := ValidatePersonaID(id); err != nil {
		return nil, &Error{
			Code: CodePersonaNotFound,
			File: path.Join("personas", id),
			Msg:  fmt.Sprintf("persona %q not found", id),
			Err:  err,
		}
	}
	return cached(ctx, l, "persona:"+id, "persona",
		func() (*Persona, bool) {
			p, ok := l.personas[id]
			return p, ok
		},
		func(p *Persona) { l.personas[id] = p },
		func() (*Persona, error) { return l.readPersona(id) },
	)
}

func (l *Loader) readPersona(id string) (*Persona, error) {
	for _, panel := range l.panels {
		name, data, err := l.readFirst(path.Join("personas", panel.Dir, id))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		doc, err := decodeDocument(name, data)
		if err != nil {
			return nil, &Error{Code: CodeInvalidFormat, File: name, Msg: "invalid format in " + name, Err: err}
		}
		p, err := newPersona(doc)
		if err != nil {
			return nil, &Error{Code: CodeInvalidPersonaConfig, File: name, Msg: "invalid persona configuration", Err: err}
		}
		return p, nil
	}
	return nil, &Error{
		Code: CodePersonaNotFound,
		File: path.Join("personas", id),
		Msg:  fmt.Sprintf("persona %q not found in any panel directory", id),
	}
}

// LoadTemplate returns the prompt template for panelType.
func (l *Loader) LoadTemplate(ctx context.Context, panelType string) (*Template, error) {
	if _, ok := l.LookupPanel(panelType); !ok {
		return nil, &Error{
			Code: CodeInvalidPanelType,
			File: path.Join("prompt-templates", panelType),
			Msg:  fmt.Sprintf("invalid panel type %q, must be one of: %s", panelType, strings.Join(l.panelTypes(), ", ")),
		}
	}
	return cached(ctx, l, "template:"+panelType, "template",
		func() (*Template, bool) {
			t, ok := l.templates[panelType]
			return t, ok
		},
		func(t *Template) { l.templates[panelType] = t },
		func() (*Template, error) { return l.readTemplate(panelType) },
	)
}

func (l *Loader) readTemplate(panelType string) (*Template, error) {
	base := path.Join("prompt-templates", panelType)
	name, data, err := l.readFirst(base)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &Error{Code: CodeFileNotFound, File: base + ".json", Msg: "configuration file not found: " + base + ".json"}
	}
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(name, data)
	if err != nil {
		return nil, &Error{Code: CodeInvalidFormat, File: name, Msg: "invalid format in " + name, Err: err}
	}
	t, err := newTemplate(panelType, doc)
	if err != nil {
		return nil, &Error{Code: CodeInvalidTemplateConfig, File: name, Msg: "invalid template configuration", Err: err}
	}
	return t, nil
}

// LoadSettings returns the global settings, falling back to DefaultSettings
// when settings.json does not exist.
func (l *Loader) LoadSettings(ctx context.Context) (*Settings, error) {
	return cached(ctx, l, "settings", "settings",
		func() (*Settings, bool) { return l.settings, l.settings != nil },
		func(s *Settings) { l.settings = s },
		func() (*Settings, error) { return l.readSettings(ctx) },
	)
}

func (l *Loader) readSettings(ctx context.Context) (*Settings, error) {
	data, err := fs.ReadFile(l.fsys, settingsFile)
	if errors.Is(err, fs.ErrNotExist) {
		clog.FromContext(ctx).Infof("catalog: %s not found, using default settings", settingsFile)
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, &Error{Code: CodeFileReadError, File: settingsFile, Msg: "error loading configuration file " + settingsFile, Err: err}
	}
	doc, err := decodeDocument(settingsFile, data)
	if err != nil {
		return nil, &Error{Code: CodeInvalidFormat, File: settingsFile, Msg: "invalid format in " + settingsFile, Err: err}
	}
	s, err := newSettings(doc)
	if err != nil {
		return nil, &Error{Code: CodeInvalidSettingsConfig, File: settingsFile, Msg: "invalid settings configuration", Err: err}
	}
	return s, nil
}

// AllPersonaIDs returns the persona ids found in each panel directory, keyed
// by panel type. Missing directories yield an empty list. Ids are sorted.
func (l *Loader) AllPersonaIDs(ctx context.Context) (map[string][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(l.panels))
	for _, panel := range l.panels {
		dir := path.Join("personas", panel.Dir)
		entries, err := fs.ReadDir(l.fsys, dir)
		if errors.Is(err, fs.ErrNotExist) {
			out[panel.Type] = []string{}
			continue
		}
		if err != nil {
			return nil, &Error{Code: CodeFileReadError, File: dir, Msg: "error reading directory " + dir, Err: err}
		}

		seen := map[string]bool{}
		ids := []string{}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := path.Ext(e.Name())
			if !hasExtension(ext) {
				continue
			}
			id := strings.TrimSuffix(e.Name(), ext)
			if seen[id] || ValidatePersonaID(id) != nil {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out[panel.Type] = ids
	}
	return out, nil
}

// ClearCache drops cached values of the given kind, or everything for CacheAll.
func (l *Loader) ClearCache(kind CacheKind) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch kind {
	case CacheAll:
		l.personas = map[string]*Persona{}
		l.templates = map[string]*Template{}
		l.settings = nil
	case CachePersonas:
		l.personas = map[string]*Persona{}
	case CacheTemplates:
		l.templates = map[string]*Template{}
	case CacheSettings:
		l.settings = nil
	}
}

// readFirst reads base plus the first accepted extension that exists.
// It returns an error wrapping fs.ErrNotExist when none does.
func (l *Loader) readFirst(base string) (string, []byte, error) {
	for _, ext := range extensions {
		name := base + ext
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return name, nil, &Error{Code: CodeFileReadError, File: name, Msg: "error loading configuration file " + name, Err: err}
		}
		return name, data, nil
	}
	return "", nil, fs.ErrNotExist
}

func (l *Loader) panelTypes() []string {
	types := make([]string, len(l.panels))
	for i, p := range l.panels {
		types[i] = p.Type
	}
	return types
}

func hasExtension(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// cached returns the value found by get, or loads it with read and stores it
// with put. get and put run under l.mu.
func cached[T any](ctx context.Context, l *Loader, key, kind string, get func() (T, bool), put func(T), read func() (T, error)) (T, error) {
	var zero T

	l.mu.RLock()
	v, ok := get()
	l.mu.RUnlock()
	if ok {
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	res, err, _ := l.group.Do(key, func() (any, error) {
		l.mu.RLock()
		v, ok := get()
		l.mu.RUnlock()
		if ok {
			return v, nil
		}

		v, err := read()
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		put(v)
		l.mu.Unlock()

		metrics.CatalogLoadsTotal.WithLabelValues(kind).Inc()
		clog.FromContext(ctx).Debugf("catalog: loaded %s", key)
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return res.(T), nil
}
