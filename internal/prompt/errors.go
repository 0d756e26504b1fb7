package prompt

import "errors"

// Kind is the stable code reported for an assembly failure.
type Kind string

const (
	MissingPersonaID   Kind = "MISSING_PERSONA_ID"
	MissingUserInput   Kind = "MISSING_USER_INPUT"
	PanelTypeInference Kind = "PANEL_TYPE_INFERENCE_ERROR"
	AssemblyFailed     Kind = "PROMPT_ASSEMBLY_ERROR"
)

// Error is the only error type returned by Assembler. Err holds the original
// cause when the failure came from the catalog or the template engine.
type Error struct {
	Kind      Kind
	Msg       string
	PersonaID string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}

// wrap converts err into an *Error of the given kind unless it already is one.
func wrap(err error, kind Kind, msg, personaID string) error {
	var perr *Error
	if errors.As(err, &perr) {
		return err
	}
	return &Error{Kind: kind, Msg: msg, PersonaID: personaID, Err: err}
}
