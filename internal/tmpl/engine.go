package tmpl

import (
	"regexp"
	"strings"
)

// Mode selects how unresolved scalar references are handled.
type Mode int

const (
	// Strict fails with UNDEFINED_VARIABLE.
	Strict Mode = iota
	// Lenient substitutes the empty string.
	Lenient
)

func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

const (
	openBlock  = "{{#"
	closeBlock = "{{/"
	tagEnd     = "}}"
	currentRef = "{{.}}"
)

// scalarRef matches {{path}} where path does not start with '#' or '/'.
// Braces are excluded from the path so "{{{x}}}" resolves the inner {{x}}.
var scalarRef = regexp.MustCompile(`\{\{([^#/{}][^{}]*)\}\}`)

// Engine expands templates written in a small mustache-like language:
//
//	{{path}}                   scalar reference, dotted with optional list indices
//	{{#path}} body {{/path}}   iteration over the list at path
//	{{.}}                      the current scalar item inside an iteration body
//
// Iteration blocks run first, then scalar references. A block extends from
// {{#NAME}} to the first {{/NAME}} with the identical NAME; blocks with the
// same name cannot nest and a block without a matching close is left as
// literal text. Inside a block, record items resolve references relative to
// the item; scalar items only replace {{.}}. A {{.}} outside any block is
// left untouched.
//
// An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	mode Mode
}

// NewEngine returns an Engine using the given substitution mode.
func NewEngine(mode Mode) *Engine {
	return &Engine{mode: mode}
}

// Mode returns the engine's substitution mode.
func (e *Engine) Mode() Mode { return e.mode }

// Expand renders template against ctx. A null ctx is rejected with
// MISSING_CONTEXT.
func (e *Engine) Expand(template string, ctx Value) (string, error) {
	if template == "" {
		return "", &Error{Kind: MissingTemplate}
	}
	if ctx.IsNull() {
		return "", &Error{Kind: MissingContext}
	}

	out, err := e.expandBlocks(template, ctx)
	if err != nil {
		return "", err
	}
	return e.substitute(out, ctx, true)
}

// expandBlocks performs the iteration pass.
func (e *Engine) expandBlocks(src string, ctx Value) (string, error) {
	var b strings.Builder
	rest := src
	for {
		start := strings.Index(rest, openBlock)
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}

		nameEnd := strings.Index(rest[start+len(openBlock):], tagEnd)
		if nameEnd < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		name := rest[start+len(openBlock) : start+len(openBlock)+nameEnd]
		bodyStart := start + len(openBlock) + nameEnd + len(tagEnd)

		closing := closeBlock + name + tagEnd
		bodyLen := strings.Index(rest[bodyStart:], closing)
		if name == "" || strings.ContainsAny(name, "{}") || bodyLen < 0 {
			// Not a well-formed block: keep "{{#" literally and scan on.
			b.WriteString(rest[:start+len(openBlock)])
			rest = rest[start+len(openBlock):]
			continue
		}

		b.WriteString(rest[:start])
		body := rest[bodyStart : bodyStart+bodyLen]
		expanded, err := e.expandBlock(strings.TrimSpace(name), body, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(expanded)
		rest = rest[bodyStart+bodyLen+len(closing):]
	}
}

func (e *Engine) expandBlock(path, body string, ctx Value) (string, error) {
	list, ok := Resolve(ctx, path)
	if !ok || list.IsNull() {
		return "", &Error{Kind: UndefinedArray, Path: path}
	}
	if !list.IsList() {
		return "", &Error{Kind: NotAnArray, Path: path, Actual: list.Kind()}
	}

	var b strings.Builder
	for _, item := range list.Items() {
		if item.IsScalar() {
			b.WriteString(strings.ReplaceAll(body, currentRef, Format(item)))
			continue
		}
		s, err := e.substitute(body, item, false)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// substitute performs the scalar pass. At the top level {{.}} has no item
// to refer to and is kept as literal text.
func (e *Engine) substitute(src string, ctx Value, topLevel bool) (string, error) {
	var firstErr error
	out := scalarRef.ReplaceAllStringFunc(src, func(match string) string {
		if firstErr != nil {
			return match
		}
		path := strings.TrimSpace(match[2 : len(match)-2])
		if path == "." && topLevel {
			return match
		}
		v, ok := Resolve(ctx, path)
		if !ok {
			if e.mode == Lenient {
				return ""
			}
			firstErr = &Error{Kind: UndefinedVariable, Path: path}
			return match
		}
		return Format(v)
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}
