package tmpl

import "fmt"

// ErrorKind classifies template expansion failures.
type ErrorKind string

const (
	MissingTemplate   ErrorKind = "MISSING_TEMPLATE"
	MissingContext    ErrorKind = "MISSING_CONTEXT"
	UndefinedVariable ErrorKind = "UNDEFINED_VARIABLE"
	UndefinedArray    ErrorKind = "UNDEFINED_ARRAY"
	NotAnArray        ErrorKind = "NOT_AN_ARRAY"
)

// Error is returned by Engine.Expand. Path names the offending reference
// for the data-mismatch kinds.
type Error struct {
	Kind ErrorKind
	Path string

	// Actual is the kind found at Path for NOT_AN_ARRAY.
	Actual Kind
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingTemplate:
		return "template string is required"
	case MissingContext:
		return "template context is required"
	case UndefinedVariable:
		return fmt.Sprintf("variable %q not found in context", e.Path)
	case UndefinedArray:
		return fmt.Sprintf("array %q not found in context", e.Path)
	case NotAnArray:
		return fmt.Sprintf("property %q is not an array (got %s)", e.Path, e.Actual)
	}
	return string(e.Kind)
}

// Is lets errors.Is match on kind alone, e.g. errors.Is(err, &Error{Kind: NotAnArray}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Path == "" || t.Path == e.Path)
}
